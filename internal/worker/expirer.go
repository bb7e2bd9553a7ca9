package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainErrors "github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/errors"
)

// StorefrontFacade exposes the subset of application functionality required
// by the expiry worker.
type StorefrontFacade interface {
	ExpiredPendingOrders(ctx context.Context, cutoff time.Time, limit int) ([]string, error)
	CancelExpiredOrder(ctx context.Context, id string) error
}

// Expirer scans for unpaid pending orders older than the configured TTL and
// cancels them concurrently, returning their stock to the shelves.
type Expirer struct {
	facade       StorefrontFacade
	pendingTTL   time.Duration
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan string
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewExpirer constructs the expiry worker pool. A zero TTL disables it.
func NewExpirer(facade StorefrontFacade, pendingTTL, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *Expirer {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Expirer{
		facade:       facade,
		pendingTTL:   pendingTTL,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan string, batchSize*workers),
	}
}

// Start launches background processing. No-op when the pending TTL is zero.
func (e *Expirer) Start(ctx context.Context) {
	if e.pendingTTL <= 0 {
		e.logger.Info("pending order expiry disabled")
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel

	for i := 0; i < e.workers; i++ {
		e.wg.Add(1)
		go e.worker(runCtx)
	}

	e.wg.Add(1)
	go e.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (e *Expirer) Stop() {
	e.mu.Lock()
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.mu.Unlock()

	e.wg.Wait()
}

func (e *Expirer) dispatch(ctx context.Context) {
	defer e.wg.Done()
	defer close(e.jobs)
	ticker := time.NewTicker(e.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.fetchAndDispatch(ctx)
		}
	}
}

func (e *Expirer) fetchAndDispatch(ctx context.Context) {
	cutoff := time.Now().Add(-e.pendingTTL)
	ids, err := e.facade.ExpiredPendingOrders(ctx, cutoff, e.batchSize)
	if err != nil {
		e.logger.Error("fetch expired pending orders failed", slog.String("error", err.Error()))
		return
	}
	for _, id := range ids {
		select {
		case <-ctx.Done():
			return
		case e.jobs <- id:
		}
	}
}

func (e *Expirer) worker(ctx context.Context) {
	defer e.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case id, ok := <-e.jobs:
			if !ok {
				return
			}
			e.expire(ctx, id)
		}
	}
}

func (e *Expirer) expire(ctx context.Context, id string) {
	if err := e.facade.CancelExpiredOrder(ctx, id); err != nil {
		// The order may have been paid or cancelled between scan and here.
		if errors.Is(err, domainErrors.ErrNotFound) {
			return
		}
		e.logger.Error("cancel expired order failed",
			slog.String("order_id", id),
			slog.String("error", err.Error()),
		)
		return
	}
	e.logger.Info("expired pending order cancelled", slog.String("order_id", id))
}
