package engine

import "go.uber.org/zap"

// NewLogger builds the engine's diagnostic logger. It never writes to
// stdout: that stream is reserved for the UCI wire, so diagnostics go to
// stderr via zap's production encoder config with a human-readable
// console format.
func NewLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
