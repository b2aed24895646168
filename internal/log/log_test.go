package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"chatty":  slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoggerAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Output: &buf, Level: slog.LevelDebug, Component: ComponentFinance})
	l.Info("saved", FieldCollection, "budgets")
	out := buf.String()
	if !strings.Contains(out, "component=finance") || !strings.Contains(out, "collection=budgets") {
		t.Fatalf("unexpected output %q", out)
	}

	buf.Reset()
	l.WithComponent(ComponentStorage).Debug("loaded")
	if !strings.Contains(buf.String(), "component=storage") {
		t.Fatalf("expected storage component, got %q", buf.String())
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Output: &buf, Level: slog.LevelWarn})
	l.Info("hidden")
	l.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("level not applied: %q", buf.String())
	}
}

func TestLogFields(t *testing.T) {
	f := NewFields().
		WithRecord("tx-1", -15000, "Food").
		WithCollection("transactions", 3).
		WithError(errors.New("boom")).
		WithError(nil)
	if f[FieldRecordID] != "tx-1" || f[FieldAmountCents] != int64(-15000) || f[FieldCategory] != "Food" {
		t.Fatalf("unexpected record fields %v", f)
	}
	if f[FieldRecords] != 3 || f[FieldError] != "boom" {
		t.Fatalf("unexpected fields %v", f)
	}
	if len(f.ToSlice()) != 2*len(f) {
		t.Fatalf("slice length mismatch")
	}
	if _, ok := NewFields().WithCollection("goals", -1)[FieldRecords]; ok {
		t.Fatalf("negative count must be omitted")
	}
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Output: &buf, Level: slog.LevelInfo, Component: ComponentHTTP}).With(FieldRequestID, "req-42")
	ctx := context.WithValue(context.Background(), LoggerContextKey, l)
	FromContext(ctx).Info("handled")
	if !strings.Contains(buf.String(), "request_id=req-42") || !strings.Contains(buf.String(), "component=http") {
		t.Fatalf("expected request id and component in %q", buf.String())
	}

	if got := FromContext(context.Background()).Component(); got != "unknown" {
		t.Fatalf("expected fallback logger, got %q", got)
	}
}

func TestStructuredLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(New(Config{Output: &buf, Level: slog.LevelDebug}))
	r := httptest.NewRequest(http.MethodPost, "/api/transactions", nil)
	sl.LogHTTPEnd(context.Background(), r, 422, 3, "1.2.3.4")
	if !strings.Contains(buf.String(), "level=WARN") || !strings.Contains(buf.String(), "status_code=422") {
		t.Fatalf("expected warn for 4xx, got %q", buf.String())
	}
	buf.Reset()
	sl.LogMutation(context.Background(), OpCreate, "transactions", "tx-1", -15000, "Food")
	if !strings.Contains(buf.String(), "operation=create") || !strings.Contains(buf.String(), "record_id=tx-1") {
		t.Fatalf("unexpected mutation log %q", buf.String())
	}
	buf.Reset()
	sl.LogError(context.Background(), "save failed", errors.New("disk full"), ComponentStorage, OpSave, nil)
	if !strings.Contains(buf.String(), "level=ERROR") || !strings.Contains(buf.String(), `error="disk full"`) {
		t.Fatalf("unexpected error log %q", buf.String())
	}
}
