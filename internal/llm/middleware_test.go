package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func fastRetry(mock Provider, attempts int) *RetryProvider {
	p := WithRetry(mock, RetryConfig{
		MaxAttempts: attempts,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2,
	}).(*RetryProvider)
	return p
}

func TestRetry(t *testing.T) {
	down := &ErrProviderUnavailable{Err: errors.New("down")}

	tests := []struct {
		name      string
		queue     []MockResponse
		attempts  int
		wantErr   bool
		wantCalls int
	}{
		{
			name:      "first attempt succeeds",
			queue:     []MockResponse{{Content: []byte(`{"ok":true}`)}},
			attempts:  3,
			wantCalls: 1,
		},
		{
			name:      "transient then success",
			queue:     []MockResponse{{Err: down}, {Content: []byte(`{"ok":true}`)}},
			attempts:  3,
			wantCalls: 2,
		},
		{
			name:      "gives up after max attempts",
			queue:     []MockResponse{{Err: down}, {Err: down}, {Err: down}, {Content: []byte(`{}`)}},
			attempts:  3,
			wantErr:   true,
			wantCalls: 3,
		},
		{
			name:      "rate limit is retried",
			queue:     []MockResponse{{Err: &ErrRateLimit{RetryAfter: time.Millisecond}}, {Content: []byte(`{}`)}},
			attempts:  2,
			wantCalls: 2,
		},
		{
			name:      "truncation is not retried",
			queue:     []MockResponse{{Err: &ErrMaxTokensExceeded{}}, {Content: []byte(`{}`)}},
			attempts:  3,
			wantErr:   true,
			wantCalls: 1,
		},
		{
			name: "invalid response retried once",
			queue: []MockResponse{
				{Err: &ErrInvalidResponse{Err: errors.New("bad")}},
				{Err: &ErrInvalidResponse{Err: errors.New("bad")}},
				{Content: []byte(`{}`)},
			},
			attempts:  5,
			wantErr:   true,
			wantCalls: 2,
		},
		{
			name:      "zero attempts still tries once",
			queue:     []MockResponse{{Content: []byte(`{}`)}},
			attempts:  0,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.queue...)
			_, err := fastRetry(mock, tt.attempts).Generate(context.Background(), Request{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if mock.CallCount() != tt.wantCalls {
				t.Fatalf("calls = %d, want %d", mock.CallCount(), tt.wantCalls)
			}
		})
	}
}

func TestRetry_ContextCancelledDuringBackoff(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{}},
		MockResponse{Content: []byte(`{}`)},
	)
	p := fastRetry(mock, 3)
	ctx, cancel := context.WithCancel(context.Background())
	p.sleep = func(context.Context, time.Duration) error {
		cancel()
		return ctx.Err()
	}

	_, err := p.Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d, want 1", mock.CallCount())
	}
}

func TestRetry_BackoffBounds(t *testing.T) {
	p := &RetryProvider{config: RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: time.Second, Multiplier: 2}}
	for attempt, base := range []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 400 * time.Millisecond, time.Second, time.Second} {
		got := p.backoff(attempt, errors.New("x"))
		lo, hi := time.Duration(float64(base)*0.8), time.Duration(float64(base)*1.2)
		if got < lo || got > hi {
			t.Errorf("attempt %d: backoff %s outside [%s, %s]", attempt, got, lo, hi)
		}
	}
	if got := p.backoff(0, &ErrRateLimit{RetryAfter: 7 * time.Second}); got != 7*time.Second {
		t.Errorf("rate limit backoff = %s, want 7s", got)
	}
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	mock := NewMockProvider().
		Queue(MockResponse{Content: []byte(`{"summary":"ok"}`), Usage: Usage{InputTokens: 10, OutputTokens: 5}}).
		Fail(&ErrProviderUnavailable{})
	p := WithLogging(mock, zap.New(core))

	ctx := WithPurpose(context.Background(), "explain")
	if _, err := p.Generate(ctx, Request{Schema: testSchema()}); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Generate(ctx, Request{}); err == nil {
		t.Fatal("expected error")
	}

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("logged %d entries, want 2", len(entries))
	}
	ok := entries[0].ContextMap()
	if ok["purpose"] != "explain" || ok["schema"] != "test-explanation" || ok["input_tokens"] != int64(10) {
		t.Errorf("success fields = %v", ok)
	}
	if entries[1].Level != zapcore.WarnLevel {
		t.Errorf("failure level = %s, want warn", entries[1].Level)
	}
	if _, has := entries[1].ContextMap()["error"]; !has {
		t.Error("failure entry has no error field")
	}
}

func TestPurpose(t *testing.T) {
	if got := PurposeFrom(context.Background()); got != "unknown" {
		t.Fatalf("default purpose = %q", got)
	}
	if got := PurposeFrom(WithPurpose(context.Background(), "explain")); got != "explain" {
		t.Fatalf("purpose = %q", got)
	}
}

type slowProvider struct{}

func (slowProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowProvider) ModelID() string { return "slow" }

func TestTimeout(t *testing.T) {
	p := WithTimeout(slowProvider{}, 10*time.Millisecond)
	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if WithTimeout(slowProvider{}, 0) != (slowProvider{}) {
		t.Fatal("zero timeout should return the provider unchanged")
	}
}
