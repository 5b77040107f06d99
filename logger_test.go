package easel

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestDefaultLoggerIsSilent(t *testing.T) {
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should be disabled")
	}
}

func TestSetLoggerCapturesDebugDraws(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	s, _ := newTestStage(StageConfig{})
	v, _, _ := mustView(t, s, "a", 10, 10)
	s.SetDebugMode(true)
	v.Draw(false)

	out := buf.String()
	for _, want := range []string{"easel: view created", "easel: draw", "view=a"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestWarnOnRejectedZoom(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { SetLogger(nil) })

	s, _ := newTestStage(StageConfig{})
	v, _, _ := mustView(t, s, "a", 10, 10)
	_ = v.SetZoom(-2)
	if !strings.Contains(buf.String(), "level=WARN") {
		t.Errorf("expected a warning, got:\n%s", buf.String())
	}
}
