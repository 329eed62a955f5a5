package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/geocoder89/fittrack/internal/actorctx"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestClassifyDBErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unique", &pgconn.PgError{Code: "23505"}, "unique_violation"},
		{"fk", &pgconn.PgError{Code: "23503"}, "foreign_key_violation"},
		{"check", &pgconn.PgError{Code: "23514"}, "check_violation"},
		{"other pg", &pgconn.PgError{Code: "42P01"}, "pg_42P01"},
		{"deadline", context.DeadlineExceeded, "timeout"},
		{"wrapped deadline", fmt.Errorf("list workouts: %w", context.DeadlineExceeded), "timeout"},
		{"canceled", context.Canceled, "canceled"},
		{"connection", errors.New("connection refused"), "connection"},
		{"unknown", errors.New("boom"), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyDBErr(tt.err); got != tt.want {
				t.Fatalf("classifyDBErr() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestObserveDBCountsErrorsButNotMissingRows(t *testing.T) {
	p := NewProm(prometheus.NewRegistry())

	_ = p.ObserveDB("workouts.get", func() error { return pgx.ErrNoRows })
	_ = p.ObserveDB("workouts.create", func() error { return &pgconn.PgError{Code: "23503"} })

	if got := testutil.ToFloat64(p.DbErrorsTotal.WithLabelValues("workouts.create", "foreign_key_violation")); got != 1 {
		t.Fatalf("expected 1 fk error, got %v", got)
	}
	if got := testutil.CollectAndCount(p.DbErrorsTotal); got != 1 {
		t.Fatalf("expected exactly one error series, got %d", got)
	}
}

func TestObserveDBNilPromRunsFn(t *testing.T) {
	var p *Prom
	called := false

	if err := p.ObserveDB("op", func() error { called = true; return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatalf("fn was not called")
	}
}

func TestLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "dev", "")

	log.Debug("hello", "user_id", "u-1")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not json: %v (%s)", err, buf.String())
	}
	if line["msg"] != "hello" || line["user_id"] != "u-1" || line["service"] != "fittrack-api" {
		t.Fatalf("unexpected log line: %v", line)
	}
}

func TestContextHandlerAddsRequestScope(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "prod", "")

	ctx := actorctx.WithUserID(context.Background(), "user-42")
	ctx = actorctx.WithRequestID(ctx, "req-7")
	log.InfoContext(ctx, "workout_created")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not json: %v", err)
	}
	if line["user_id"] != "user-42" || line["request_id"] != "req-7" {
		t.Fatalf("expected user_id and request_id attrs, got %v", line)
	}
	if _, ok := line["trace_id"]; ok {
		t.Fatalf("no span is active, trace_id must be absent: %v", line)
	}
}

func TestDomainCountersAreNilSafe(t *testing.T) {
	var nilProm *Prom
	nilProm.ObserveAuth("login", "ok")
	nilProm.ObserveRecordWrite("workout", "create")
	nilProm.ObserveCache("food_search", "hit")

	p := NewProm(prometheus.NewRegistry())
	p.ObserveAuth("login", "invalid_credentials")
	p.ObserveAuth("login", "invalid_credentials")
	p.ObserveRecordWrite("goal", "update")

	if got := testutil.ToFloat64(p.AuthEvents.WithLabelValues("login", "invalid_credentials")); got != 2 {
		t.Fatalf("expected 2 failed logins, got %v", got)
	}
	if got := testutil.ToFloat64(p.RecordWrites.WithLabelValues("goal", "update")); got != 1 {
		t.Fatalf("expected 1 goal update, got %v", got)
	}
}

func TestInitTracerWithoutEndpointIsNoop(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), TracerConfig{ServiceName: "fittrack-api"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestClampRatio(t *testing.T) {
	for in, want := range map[float64]float64{-1: 0, 0: 0, 0.25: 0.25, 1: 1, 3: 1} {
		if got := clampRatio(in); got != want {
			t.Fatalf("clampRatio(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestLoggerRedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "prod", "")

	log.Info("login attempt", "email", "a@b.c", "password", "hunter22", "refresh_token", "eyJ...")

	out := buf.String()
	if strings.Contains(out, "hunter22") || strings.Contains(out, "eyJ") {
		t.Fatalf("secret leaked into log: %s", out)
	}
	if !strings.Contains(out, "a@b.c") {
		t.Fatalf("non-secret attribute missing: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		env, level string
		want       slog.Level
	}{
		{"dev", "", slog.LevelDebug},
		{"prod", "", slog.LevelInfo},
		{"prod", "warn", slog.LevelWarn},
		{"dev", "ERROR", slog.LevelError},
		{"prod", "loud", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.env, tt.level); got != tt.want {
			t.Fatalf("parseLevel(%q, %q) = %v, want %v", tt.env, tt.level, got, tt.want)
		}
	}
}
