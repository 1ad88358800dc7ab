package config

import (
	"context"
	"testing"
	"time"

	"image-panel/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, fields ...interface{})             {}
func (nopLogger) Error(msg string, err error, fields ...interface{}) {}
func (nopLogger) Debug(msg string, fields ...interface{})            {}
func (nopLogger) Warn(msg string, fields ...interface{})             {}

func TestBuildContainer_WithoutSupabase(t *testing.T) {
	clearEnv(t)

	c := BuildContainer(NewConfig(), nopLogger{})

	if c.PanelService == nil || c.ReportService == nil || c.SessionRepository == nil {
		t.Fatalf("expected services to be wired")
	}
	if c.ReportArchive != nil {
		t.Fatalf("expected no report archive without Supabase settings")
	}
	if c.GetSupabaseClient().Enabled() {
		t.Fatalf("expected Supabase client to stay disabled")
	}
}

func TestContainer_SessionSweeper(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_TTL", "1ms")

	c := BuildContainer(NewConfig(), nopLogger{})
	c.SessionRepository.Save(&domain.Session{ID: "s1", Operation: domain.OperationBlur})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.StartSessionSweeper(ctx, 5*time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c.SessionRepository.Load("s1").Operation == "" {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected idle session to be swept")
}
