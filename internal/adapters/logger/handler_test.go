package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/cnwangjie/arch-backup/internal/adapters/logger"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

func TestPrettyHandler_Handle_Levels(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		msg        string
		goldenName string
	}{
		{"info level", slog.LevelInfo, "information message", "handler_info"},
		{"warn level", slog.LevelWarn, "warning message", "handler_warn"},
		{"error level", slog.LevelError, "error message", "handler_error"},
		{"debug level filtered", slog.LevelDebug, "debug message", "handler_debug_filtered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			handler := logger.NewPrettyHandler(buf, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			})
			slog.New(handler).Log(t.Context(), tt.level, tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_DebugWithLevelVar(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	level := &slog.LevelVar{}
	buf := &bytes.Buffer{}
	lg := slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: level}))

	lg.Debug("hidden")
	level.Set(slog.LevelDebug)
	lg.Debug("running pacman -Qge")

	g := goldie.New(t)
	g.Assert(t, "handler_debug", buf.Bytes())
}

func TestPrettyHandler_Attrs(t *testing.T) {
	tests := []struct {
		name       string
		attrs      []slog.Attr
		goldenName string
	}{
		{"single attribute", []slog.Attr{slog.String("file", "pkglist")}, "handler_attrs_single"},
		{"multiple attributes", []slog.Attr{slog.Int("added", 3), slog.Int("removed", 1)}, "handler_attrs_multi"},
		{"nested group", []slog.Attr{slog.Group("diff", slog.Group("pkglist", slog.Int("added", 2)))}, "handler_attrs_nested_group"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			handler := logger.NewPrettyHandler(buf, nil).WithAttrs(tt.attrs)
			slog.New(handler).Info("write ok")

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_WithGroup(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	var handler slog.Handler = logger.NewPrettyHandler(buf, nil)
	handler = handler.WithGroup("collector").WithGroup("query")

	slog.New(handler).Info("done", "provenance", "aur")

	g := goldie.New(t)
	g.Assert(t, "handler_group_nested", buf.Bytes())
}

func TestPrettyHandler_WithGroup_EmptyName(t *testing.T) {
	handler := logger.NewPrettyHandler(&bytes.Buffer{}, nil)
	assert.Same(t, handler, handler.WithGroup(""))
}

func TestPrettyHandler_Enabled(t *testing.T) {
	tests := []struct {
		name         string
		handlerLevel slog.Level
		recordLevel  slog.Level
		wantEnabled  bool
	}{
		{"debug below info", slog.LevelInfo, slog.LevelDebug, false},
		{"info at info", slog.LevelInfo, slog.LevelInfo, true},
		{"warn above info", slog.LevelInfo, slog.LevelWarn, true},
		{"debug at debug", slog.LevelDebug, slog.LevelDebug, true},
		{"warn at error", slog.LevelError, slog.LevelWarn, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := logger.NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{
				Level: tt.handlerLevel,
			})
			assert.Equal(t, tt.wantEnabled, handler.Enabled(t.Context(), tt.recordLevel))
		})
	}
}
