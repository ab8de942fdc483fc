package loginfield_test

import (
	"context"

	"github.com/goliatone/go-loginfield"
	"github.com/stretchr/testify/mock"
)

// MockSchema implements loginfield.Schema
type MockSchema struct {
	mock.Mock
}

func (m *MockSchema) TypeName() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockSchema) DeclareProperty(ctx context.Context, prop loginfield.Property) error {
	args := m.Called(ctx, prop)
	return args.Error(0)
}

type logCall struct {
	level   string
	message string
	args    []any
}

type captureLogger struct {
	calls []logCall
}

func (l *captureLogger) record(level, message string, args ...any) {
	l.calls = append(l.calls, logCall{level: level, message: message, args: args})
}

func (l *captureLogger) Debug(message string, args ...any) { l.record("debug", message, args...) }
func (l *captureLogger) Info(message string, args ...any)  { l.record("info", message, args...) }
func (l *captureLogger) Error(message string, args ...any) { l.record("error", message, args...) }
