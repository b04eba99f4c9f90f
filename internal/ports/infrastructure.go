package ports

import "time"

// Logger defines the contract for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field represents a log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a log field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// TransportMetrics records the outcome of backend calls.
// Outcome is "success" or the lower-case error kind (application, server, network, client).
type TransportMetrics interface {
	RecordRequest(method, path, outcome string, duration time.Duration)
}
