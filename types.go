package loginfield

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Schema is the declaration API of the persistence layer that stores
// the host user type
type Schema interface {
	// TypeName names the host user type, used in errors and logs
	TypeName() string
	// DeclareProperty adds prop to the host type. Implementations decide
	// how duplicates and reserved names fail.
	DeclareProperty(ctx context.Context, prop Property) error
}

// Config holds bootstrap options
type Config interface {
	GetLoginField() string
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] LOGINFIELD "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] LOGINFIELD "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] LOGINFIELD "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}

type nopLogger struct{}

func (nopLogger) Error(format string, args ...any) {}
func (nopLogger) Info(format string, args ...any)  {}
func (nopLogger) Debug(format string, args ...any) {}

// NopLogger discards everything
var NopLogger Logger = nopLogger{}
