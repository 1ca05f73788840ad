package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/portalgate/internal/audit"
	"github.com/dropDatabas3/portalgate/internal/cache"
	"github.com/dropDatabas3/portalgate/internal/config"
	accessctrl "github.com/dropDatabas3/portalgate/internal/http/controllers/access"
	adminctrl "github.com/dropDatabas3/portalgate/internal/http/controllers/admin"
	healthctrl "github.com/dropDatabas3/portalgate/internal/http/controllers/health"
	portalctrl "github.com/dropDatabas3/portalgate/internal/http/controllers/portal"
	sessionctrl "github.com/dropDatabas3/portalgate/internal/http/controllers/session"
	"github.com/dropDatabas3/portalgate/internal/http/router"
	accesssvc "github.com/dropDatabas3/portalgate/internal/http/services/access"
	adminsvc "github.com/dropDatabas3/portalgate/internal/http/services/admin"
	healthsvc "github.com/dropDatabas3/portalgate/internal/http/services/health"
	portalsvc "github.com/dropDatabas3/portalgate/internal/http/services/portal"
	sessionsvc "github.com/dropDatabas3/portalgate/internal/http/services/session"
	"github.com/dropDatabas3/portalgate/internal/metrics"
	"github.com/dropDatabas3/portalgate/internal/observability/logger"
	"github.com/dropDatabas3/portalgate/internal/portal"
	"github.com/dropDatabas3/portalgate/internal/store"
	"github.com/dropDatabas3/portalgate/internal/store/core"
	"github.com/dropDatabas3/portalgate/internal/store/pg"
	migrations "github.com/dropDatabas3/portalgate/migrations/postgres"
)

func main() {
	// .env es opcional; en deploys reales las vars vienen del entorno.
	_ = godotenv.Load()

	var cfgPath string

	root := &cobra.Command{
		Use:   "portalgate",
		Short: "Motor de control de acceso a portales de clientes",
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", os.Getenv("CONFIG_PATH"), "ruta al config.yaml (opcional)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cfgPath)
		},
	}

	var checkUser string
	var checkAdmin bool
	checkCmd := &cobra.Command{
		Use:   "check <resource-id>",
		Short: "Evalúa un acceso puntual y escribe el veredicto en stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cfgPath, checkUser, checkAdmin, core.ResourceID(args[0]))
		},
	}
	checkCmd.Flags().StringVar(&checkUser, "user", "", "user id (vacío = anónimo)")
	checkCmd.Flags().BoolVar(&checkAdmin, "admin", false, "evaluar como administrador")

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones del esquema postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cfgPath)
		},
	}

	root.AddCommand(serveCmd, checkCmd, migrateCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// wiring arma el grafo completo de componentes a partir de la config.
type wiring struct {
	cfg      *config.Config
	store    core.ContentStore
	cacheCli cache.Client
	sink     *audit.Sink
	resolver *portal.Resolver
	state    *portal.StateMachine
	closers  []func()
}

func (w *wiring) close() {
	for i := len(w.closers) - 1; i >= 0; i-- {
		w.closers[i]()
	}
}

func buildWiring(ctx context.Context, cfgPath string, withAudit bool) (*wiring, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		ServiceName: "portalgate",
	})

	w := &wiring{cfg: cfg}
	w.closers = append(w.closers, func() { _ = logger.Sync() })

	st, closeStore, err := store.Open(ctx, store.Config{
		Driver: cfg.Storage.Driver,
		DSN:    cfg.Storage.DSN,
		Postgres: pg.Tuning{
			MaxOpenConns:    cfg.Storage.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Storage.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Storage.Postgres.ConnMaxLifetime,
		},
	})
	if err != nil {
		w.close()
		return nil, fmt.Errorf("store: %w", err)
	}
	w.store = st
	w.closers = append(w.closers, closeStore)

	cc, err := cache.New(cache.Config{
		Driver:   cfg.Cache.Kind,
		Addr:     cfg.Cache.Redis.Addr,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
		Prefix:   cfg.Cache.Redis.Prefix,
	})
	if err != nil {
		w.close()
		return nil, fmt.Errorf("cache: %w", err)
	}
	w.cacheCli = cc
	w.closers = append(w.closers, func() { _ = cc.Close() })

	var recorder portal.AccessRecorder
	if withAudit {
		w.sink = audit.NewSink(st, cfg.Audit.BufferSize)
		w.closers = append(w.closers, w.sink.Close)
		recorder = w.sink
	}

	w.state = portal.NewStateMachine(cc, cfg.ActiveTTL())
	w.resolver = portal.NewResolver(st, w.state, recorder, portal.Settings{
		LoginURL:          cfg.Portal.LoginURL,
		DeniedRedirectURL: cfg.Portal.DeniedRedirectURL,
		DeniedMessage:     cfg.Portal.DeniedMessage,
		DefaultMenuID:     core.MenuID(cfg.Portal.DefaultMenuID),
		FrontResourceID:   core.ResourceID(cfg.Portal.FrontResourceID),
	})

	return w, nil
}

func runServe(cfgPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w, err := buildWiring(ctx, cfgPath, true)
	if err != nil {
		return err
	}
	defer w.close()

	if err := metrics.Register(nil); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	cfg := w.cfg
	switcher := portal.NewSwitcher(w.store, w.state)
	menuFilter := portal.NewMenuFilter(w.store, core.MenuID(cfg.Portal.DefaultMenuID))
	landing := portal.NewLandingResolver(w.store, w.state,
		cfg.Portal.AdminURL, cfg.Portal.HomeURL, cfg.Portal.SelectionURL)
	listing := portal.NewListingFilter(w.store)

	accessService := accesssvc.NewAccessService(accesssvc.Deps{
		Store:    w.store,
		Resolver: w.resolver,
		State:    w.state,
		Listing:  listing,
		Message:  cfg.Portal.DeniedMessage,
	})
	portalService := portalsvc.NewPortalService(portalsvc.Deps{
		Store:    w.store,
		State:    w.state,
		Switcher: switcher,
		Menu:     menuFilter,
	})
	sessionService := sessionsvc.NewSessionService(landing)
	adminService := adminsvc.NewAdminService(adminsvc.Deps{
		Store:    w.store,
		Resolver: w.resolver,
	})
	healthService := healthsvc.NewHealthService(healthsvc.Deps{
		StoreCheck: w.store.Ping,
		CacheCheck: w.cacheCli.Ping,
	})

	handler := router.New(router.Deps{
		Access:    accessctrl.NewAccessController(accessService),
		Portal:    portalctrl.NewPortalController(portalService),
		Session:   sessionctrl.NewSessionController(sessionService),
		Admin:     adminctrl.NewAdminController(adminService),
		Health:    healthctrl.NewHealthController(healthService),
		JWTSecret: []byte(cfg.Auth.JWTSecret),
	})

	readTimeout, _ := time.ParseDuration(cfg.Server.ReadTimeout)
	writeTimeout, _ := time.ParseDuration(cfg.Server.WriteTimeout)
	shutdownTimeout, _ := time.ParseDuration(cfg.Server.ShutdownTimeout)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	log := logger.L()
	log.Info("server starting", logger.Any("addr", cfg.Server.Addr))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shCtx)
	})

	err = g.Wait()
	log.Info("server stopped")
	return err
}

func runMigrate(cfgPath string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if cfg.Storage.DSN == "" {
		return fmt.Errorf("migrate requiere storage.dsn configurado")
	}

	pool, err := pgxpool.New(ctx, cfg.Storage.DSN)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer pool.Close()

	entries, err := migrations.FS.ReadDir(".")
	if err != nil {
		return err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		sql, err := migrations.FS.ReadFile(name)
		if err != nil {
			return err
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("apply %s: %w", name, err)
		}
		fmt.Printf("applied %s\n", name)
	}
	return nil
}

func runCheck(cfgPath, userID string, admin bool, resourceID core.ResourceID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Sin auditoría: un check de consola no debe ensuciar el registro.
	w, err := buildWiring(ctx, cfgPath, false)
	if err != nil {
		return err
	}
	defer w.close()

	actor := core.Actor{Anonymous: true}
	if userID != "" || admin {
		actor = core.Actor{ID: core.UserID(userID), Admin: admin}
	}

	d, res, err := w.resolver.ResolveForActor(ctx, actor, resourceID)
	if err != nil {
		return err
	}

	out := map[string]any{
		"resource": string(res.ID),
		"kind":     string(res.Kind),
		"verdict":  string(d.Verdict),
	}
	if d.RedirectURL != "" {
		out["redirect_url"] = d.RedirectURL
	}
	if d.ActivatedPortal != "" {
		out["activated_portal"] = string(d.ActivatedPortal)
	}
	if d.Reason != "" {
		out["reason"] = d.Reason
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
