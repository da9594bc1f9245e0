package exponents

import "go.uber.org/zap"

var logger = zap.NewNop()

// SetLogger sets the logger used by this package. Passing nil disables logging.
//
// This is not safe to call concurrently with ForField.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l.Named("exponents")
}
