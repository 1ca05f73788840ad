// Package audit persiste el registro de accesos a portales sin bloquear el
// camino de decisión: los eventos entran a un buffer y un worker los escribe
// de fondo. Si el buffer se llena, el evento se descarta y se cuenta; una
// decisión de acceso nunca espera por su registro.
package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/portalgate/internal/metrics"
	"github.com/dropDatabas3/portalgate/internal/observability/logger"
	"github.com/dropDatabas3/portalgate/internal/store/core"
)

const (
	defaultBufferSize   = 256
	defaultWriteTimeout = 5 * time.Second
)

// Writer es el subconjunto del store que el sink necesita.
type Writer interface {
	InsertAccessEvent(ctx context.Context, ev *core.AccessEvent) error
}

// Sink acumula eventos de acceso y los escribe en segundo plano.
type Sink struct {
	w       Writer
	ch      chan core.AccessEvent
	timeout time.Duration

	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
	done      chan struct{}
}

// NewSink arranca el worker de escritura. bufferSize <= 0 usa el default.
func NewSink(w Writer, bufferSize int) *Sink {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	s := &Sink{
		w:       w,
		ch:      make(chan core.AccessEvent, bufferSize),
		timeout: defaultWriteTimeout,
		done:    make(chan struct{}),
	}
	go s.run()
	return s
}

// Record encola un evento sin bloquear. Completa ID y OccurredAt si faltan.
// Con el buffer lleno, o el sink ya cerrado, el evento se descarta.
func (s *Sink) Record(ev core.AccessEvent) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		metrics.AuditDropped.Inc()
		return
	}
	select {
	case s.ch <- ev:
	default:
		metrics.AuditDropped.Inc()
		logger.L().Warn("audit event dropped, buffer full",
			logger.Component("audit"),
			logger.ResourceID(string(ev.ResourceID)),
		)
	}
}

// Close cierra la cola y espera a que el worker drene lo pendiente.
func (s *Sink) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.ch)
		s.mu.Unlock()
	})
	<-s.done
}

func (s *Sink) run() {
	defer close(s.done)
	for ev := range s.ch {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		if err := s.w.InsertAccessEvent(ctx, &ev); err != nil {
			logger.L().Error("audit write failed",
				logger.Component("audit"),
				logger.ResourceID(string(ev.ResourceID)),
				logger.Err(err),
			)
		}
		cancel()
	}
}
