package features

import "context"

// FeatureStore хранилище переключателей
type FeatureStore interface {
	IsBookingEnabled(ctx context.Context, resourceID string) (bool, error)
	SetBookingEnabled(ctx context.Context, resourceID string, enabled bool) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
