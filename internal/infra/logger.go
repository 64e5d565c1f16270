package infra

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Logger aliases the zerolog.Logger so callers outside the infra package can
// depend on the logging contract without importing the third-party module
// directly.
type Logger = zerolog.Logger

// NewLogger builds the API logger on stdout. Development switches to debug
// level and the console writer.
func NewLogger(appEnv string) zerolog.Logger {
	return newServiceLogger(os.Stdout, appEnv)
}

func newServiceLogger(out io.Writer, appEnv string) zerolog.Logger {
	dev := appEnv == "development"
	level := zerolog.InfoLevel
	if dev {
		level = zerolog.DebugLevel
	}
	return build(out, level, dev, time.RFC3339).
		With().
		Str("service", "comfygen-api").
		Str("env", appEnv).
		Logger()
}

// NewCLILogger writes to out, switching to the console writer when out is
// an interactive terminal. Verbose enables debug output.
func NewCLILogger(out io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return build(out, level, isTerminal(out), time.Kitchen)
}

func build(out io.Writer, level zerolog.Level, console bool, timeFormat string) zerolog.Logger {
	if console {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: timeFormat}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
