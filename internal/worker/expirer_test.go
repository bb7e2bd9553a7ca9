package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	domainErrors "github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/errors"
	testhelpers "github.com/ZeinabAndPixel/Z-One-Laptop/internal/test"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewExpirerDefaults(t *testing.T) {
	expirer := NewExpirer(&testhelpers.ExpiryFacadeStub{}, time.Hour, time.Second, 0, 0, testLogger())
	if expirer.batchSize != 1 {
		t.Fatalf("expected batch size default to 1, got %d", expirer.batchSize)
	}
	if expirer.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", expirer.workers)
	}
}

func TestExpirerDisabledWithoutTTL(t *testing.T) {
	called := int32(0)
	facade := &testhelpers.ExpiryFacadeStub{
		ExpiredFn: func(context.Context, time.Time, int) ([]string, error) {
			atomic.AddInt32(&called, 1)
			return nil, nil
		},
	}
	expirer := NewExpirer(facade, 0, 5*time.Millisecond, 1, 1, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	expirer.Start(ctx)
	time.Sleep(30 * time.Millisecond)
	expirer.Stop()

	if atomic.LoadInt32(&called) != 0 {
		t.Fatal("expirer must not scan when the TTL is zero")
	}
}

func TestExpirerCancelsExpiredOrders(t *testing.T) {
	facade := &testhelpers.ExpiryFacadeStub{Batches: [][]string{{"o1", "o2"}}}
	expirer := NewExpirer(facade, time.Hour, 10*time.Millisecond, 2, 2, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	expirer.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for {
		facade.Lock()
		done := len(facade.Cancelled) >= 2
		facade.Unlock()
		if done {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for expiry")
		case <-time.After(10 * time.Millisecond):
		}
	}

	expirer.Stop()
	facade.Lock()
	defer facade.Unlock()
	if len(facade.Cancelled) < 2 {
		t.Fatalf("expected both orders cancelled, got %v", facade.Cancelled)
	}
}

func TestExpirerPassesCutoffBeforeNow(t *testing.T) {
	var observed atomic.Value
	facade := &testhelpers.ExpiryFacadeStub{
		ExpiredFn: func(_ context.Context, cutoff time.Time, _ int) ([]string, error) {
			observed.Store(cutoff)
			return nil, nil
		},
	}
	expirer := NewExpirer(facade, 30*time.Minute, 10*time.Millisecond, 1, 1, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	expirer.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for observed.Load() == nil {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for scan")
		case <-time.After(10 * time.Millisecond):
		}
	}
	expirer.Stop()

	cutoff := observed.Load().(time.Time)
	if age := time.Since(cutoff); age < 29*time.Minute {
		t.Fatalf("expected cutoff about 30m in the past, got %v", age)
	}
}

func TestExpirerToleratesErrors(t *testing.T) {
	scans := int32(0)
	facade := &testhelpers.ExpiryFacadeStub{
		ExpiredFn: func(context.Context, time.Time, int) ([]string, error) {
			if atomic.AddInt32(&scans, 1) == 1 {
				return nil, errors.New("db down")
			}
			return []string{"gone", "o1"}, nil
		},
		CancelFn: func(_ context.Context, id string) error {
			if id == "gone" {
				return domainErrors.ErrNotFound
			}
			return nil
		},
	}
	expirer := NewExpirer(facade, time.Hour, 5*time.Millisecond, 2, 1, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	expirer.Start(ctx)

	deadline := time.After(time.Second)
	for atomic.LoadInt32(&scans) < 2 {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for second scan")
		case <-time.After(10 * time.Millisecond):
		}
	}
	expirer.Stop()
}

func TestExpirerStopBeforeStart(t *testing.T) {
	expirer := NewExpirer(&testhelpers.ExpiryFacadeStub{}, time.Hour, time.Second, 1, 1, testLogger())
	expirer.Stop()
}
