//go:build !(rp2040 || rp2350)

package logx

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

var root = zerolog.New(os.Stderr).With().Timestamp().Logger()

// SetOutput redirects every logger created afterwards. console selects the
// human-readable writer instead of JSON lines.
func SetOutput(w io.Writer, console bool) {
	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05.000"}
	}
	root = zerolog.New(w).With().Timestamp().Logger()
}

// SetLevel accepts zerolog level names ("debug", "info", ...).
func SetLevel(name string) error {
	lvl, err := zerolog.ParseLevel(name)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}

// Logger tags every line with its component.
type Logger struct {
	z zerolog.Logger
}

func New(component string) Logger {
	return Logger{z: root.With().Str("component", component).Logger()}
}

func (l Logger) Debug(msg string, kv ...any) { l.z.Debug().Fields(kv).Msg(msg) }
func (l Logger) Info(msg string, kv ...any)  { l.z.Info().Fields(kv).Msg(msg) }
func (l Logger) Warn(msg string, kv ...any)  { l.z.Warn().Fields(kv).Msg(msg) }

func (l Logger) Error(msg string, err error, kv ...any) {
	l.z.Error().Err(err).Fields(kv).Msg(msg)
}
