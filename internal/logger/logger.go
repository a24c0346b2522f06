package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/k1LoW/errors"
	"github.com/mattn/go-colorable"
	slogmulti "github.com/samber/slog-multi"
)

// Options configures New.
type Options struct {
	Verbose bool
	// LogFile receives every record as JSON at debug level when set.
	LogFile string
	// Console defaults to a colorable stderr.
	Console io.Writer
}

// New returns a logger that writes text to the console and, optionally,
// JSON to a log file. The returned closer flushes and closes the file.
func New(opts Options) (_ *slog.Logger, _ io.Closer, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()

	console := opts.Console
	if console == nil {
		console = colorable.NewColorableStderr()
	}
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handlers := []slog.Handler{
		slog.NewTextHandler(console, &slog.HandlerOptions{Level: level}),
	}

	var closer io.Closer = nopCloser{}
	if opts.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(opts.LogFile), 0755); err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, err
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
		closer = f
	}
	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
