package logger

import (
	"context"

	"go.uber.org/zap"
)

// S devuelve el SugaredLogger del singleton, para logs puntuales con formato
// printf.
//
//	logger.S().Infof("portal %s activado para %s", portalID, userID)
func S() *zap.SugaredLogger {
	return L().Sugar()
}

// SFrom es la variante con contexto de S.
func SFrom(ctx context.Context) *zap.SugaredLogger {
	return From(ctx).Sugar()
}
