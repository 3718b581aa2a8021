// Package shell provides the subprocess runner adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/cnwangjie/arch-backup/internal/core/domain"
	"github.com/cnwangjie/arch-backup/internal/core/ports"
	"go.trai.ch/zerr"
)

// waitDelay bounds how long Run waits for output pipes after the process is killed.
const waitDelay = time.Second

// maxStderrTail is the number of stderr bytes attached to a failure.
const maxStderrTail = 4 << 10

// Runner implements ports.CommandRunner using os/exec.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{
		logger: logger,
	}
}

// Run executes the command and returns its captured stdout.
// Stderr lines are logged at debug level and the tail of stderr is attached
// to any returned error.
func (r *Runner) Run(ctx context.Context, c domain.Command) ([]byte, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.Name, c.Args...) //nolint:gosec // configured command
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}
	cmd.WaitDelay = waitDelay

	stdout := &cappedBuffer{limit: c.MaxOutput}
	stderr := &cappedBuffer{limit: maxStderrTail}
	stderrLog := &logWriter{logger: r.logger, prefix: c.Name + ": "}
	cmd.Stdout = stdout
	cmd.Stderr = &teeWriter{stderr, stderrLog}

	r.logger.Debug("running " + c.String())
	err := cmd.Run()
	_ = stderrLog.Close()

	if err != nil {
		return nil, annotate(ctx, c, err, stderr.String())
	}
	if stdout.exceeded {
		err := zerr.Wrap(domain.ErrOutputTooLarge, "output of "+c.Name+" exceeds limit")
		err = zerr.With(err, "command", c.String())
		return nil, zerr.With(err, "limit", c.MaxOutput)
	}

	return stdout.Bytes(), nil
}

func annotate(ctx context.Context, c domain.Command, err error, stderr string) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		err = zerr.Wrap(domain.ErrCommandTimedOut, c.Name+" did not finish in time")
		err = zerr.With(err, "command", c.String())
		return zerr.With(err, "timeout", c.Timeout.String())
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return zerr.With(zerr.Wrap(ctxErr, c.Name+" was canceled"), "command", c.String())
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	wrapped := zerr.Wrap(errors.Join(domain.ErrCommandFailed, err), c.Name+" failed")
	wrapped = zerr.With(wrapped, "command", c.String())
	wrapped = zerr.With(wrapped, "exit_code", exitCode)
	if tail := strings.TrimSpace(stderr); tail != "" {
		wrapped = zerr.With(wrapped, "stderr", tail)
	}
	return wrapped
}

// cappedBuffer keeps at most limit bytes and silently drains the rest so the
// child never blocks on a full pipe. A zero limit keeps everything.
// The buffer is a named field so io.Copy cannot bypass Write through ReadFrom.
type cappedBuffer struct {
	buf      bytes.Buffer
	limit    int64
	exceeded bool
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	if b.limit <= 0 {
		return b.buf.Write(p)
	}
	room := b.limit - int64(b.buf.Len())
	if int64(len(p)) > room {
		b.exceeded = true
		if room > 0 {
			_, _ = b.buf.Write(p[:room])
		}
		return len(p), nil
	}
	return b.buf.Write(p)
}

func (b *cappedBuffer) Bytes() []byte  { return b.buf.Bytes() }
func (b *cappedBuffer) String() string { return b.buf.String() }
func (b *cappedBuffer) Len() int       { return b.buf.Len() }

// teeWriter writes to both writers and never fails.
type teeWriter [2]io.Writer

func (t *teeWriter) Write(p []byte) (int, error) {
	for _, w := range t {
		_, _ = w.Write(p)
	}
	return len(p), nil
}

// logWriter forwards complete lines to the logger at debug level.
type logWriter struct {
	logger ports.Logger
	prefix string
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")
	if msg == "" {
		return
	}
	w.logger.Debug(w.prefix + msg)
}
