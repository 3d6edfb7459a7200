package logger

import "go.uber.org/zap"

// Symbol-aware logging helpers.
// These functions log with the symbol as a structured field, not in the message.
//
// Usage:
//
//	// Instead of:
//	logger.Infow(SymbolJob + " job started", "job_id", id)
//
//	// Use:
//	logger.JobInfow("job started", "job_id", id)
//
// This makes logs queryable by symbol and keeps messages clean.

// Symbols tagging the subsystem a log line originates from.
const (
	SymbolJob      = "◈" // job lifecycle (submit/execute/complete)
	SymbolResource = "◉" // resource monitor (arm/fire/wakeup)
	SymbolWire     = "□" // codec/streamer (serialize/deserialize)
	SymbolPool     = "◆" // worker pool (start/stop/dispatch)
)

// JobInfow logs an info message tagged with the job symbol.
func JobInfow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, SymbolJob}, keysAndValues...)
		Logger.Infow(msg, fields...)
	}
}

// JobDebugw logs a debug message tagged with the job symbol.
func JobDebugw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, SymbolJob}, keysAndValues...)
		Logger.Debugw(msg, fields...)
	}
}

// JobWarnw logs a warning message tagged with the job symbol.
func JobWarnw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, SymbolJob}, keysAndValues...)
		Logger.Warnw(msg, fields...)
	}
}

// JobErrorw logs an error message tagged with the job symbol.
func JobErrorw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, SymbolJob}, keysAndValues...)
		Logger.Errorw(msg, fields...)
	}
}

// ResourceInfow logs an info message tagged with the resource-monitor symbol.
func ResourceInfow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, SymbolResource}, keysAndValues...)
		Logger.Infow(msg, fields...)
	}
}

// ResourceDebugw logs a debug message tagged with the resource-monitor symbol.
func ResourceDebugw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, SymbolResource}, keysAndValues...)
		Logger.Debugw(msg, fields...)
	}
}

// WireDebugw logs a debug message tagged with the codec/streamer symbol.
func WireDebugw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, SymbolWire}, keysAndValues...)
		Logger.Debugw(msg, fields...)
	}
}

// PoolInfow logs an info message tagged with the worker-pool symbol.
func PoolInfow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, SymbolPool}, keysAndValues...)
		Logger.Infow(msg, fields...)
	}
}

// PoolDebugw logs a debug message tagged with the worker-pool symbol.
func PoolDebugw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, SymbolPool}, keysAndValues...)
		Logger.Debugw(msg, fields...)
	}
}

// WithSymbol returns a logger with the given symbol as a field.
// For ad-hoc symbol usage not covered by the helpers above.
func WithSymbol(symbol string) *zap.SugaredLogger {
	return Logger.With(FieldSymbol, symbol)
}

// SymbolInfow logs with any symbol - for dynamic symbol usage.
func SymbolInfow(symbol, msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, symbol}, keysAndValues...)
		Logger.Infow(msg, fields...)
	}
}
