// Package log builds the zap loggers used by bloomsync components and provides
// shared field helpers.
package log

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// where logs go by default.
var logWriter io.Writer = os.Stdout

// ShortString is implemented by ids and keys that have an abbreviated form for logging.
type ShortString interface {
	ShortString() string
}

// ZShortStringer returns a field that logs the short form of val.
func ZShortStringer(name string, val ShortString) zap.Field {
	return zap.Stringer(name, shortStringer{val})
}

type shortStringer struct {
	ShortString
}

func (s shortStringer) String() string {
	return s.ShortString.ShortString()
}

// NewWithLevel creates a named logger with a fixed level and a set of (optional) hooks.
func NewWithLevel(module string,
	level zap.AtomicLevel,
	encoder zapcore.Encoder,
	hooks ...func(zapcore.Entry) error,
) *zap.Logger {
	core := zapcore.NewCore(encoder, zapcore.AddSync(logWriter), level)
	return zap.New(zapcore.RegisterHooks(core, hooks...)).Named(module)
}

// Encoder returns the encoder for the given name: "json" or "console".
func Encoder(name string) (zapcore.Encoder, error) {
	switch name {
	case "json":
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), nil
	case "console", "":
		return zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), nil
	default:
		return nil, fmt.Errorf("unknown log encoder %q", name)
	}
}
