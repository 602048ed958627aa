package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/claimwise/insurance-portal/internal/api/metrics"
	"github.com/claimwise/insurance-portal/internal/core/domain"
	"github.com/claimwise/insurance-portal/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Transitioner is the part of ports.ClaimService that the workers drive.
type Transitioner interface {
	TransitionClaim(ctx context.Context, claimID string, target domain.ClaimStatus) (*domain.Claim, error)
}

// Dispatcher routes queued claim actions to a fixed set of workers by hashing
// the claim id, so actions on one claim apply in the order they were queued.
type Dispatcher struct {
	workers []chan ports.ClaimActionInput
	claims  Transitioner
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, claims Transitioner, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.ClaimActionInput, numWorkers),
		claims:  claims,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ClaimActionInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands action to the worker owning its claim. It blocks while that
// worker's buffer is full and gives up when ctx is done.
func (d *Dispatcher) Enqueue(ctx context.Context, action ports.ClaimActionInput) error {
	idx := d.shardIndex(action.ClaimID)
	// Counted before the send so the worker's Dec never runs first.
	depth := metrics.ClaimActionsQueueDepth.WithLabelValues(strconv.Itoa(idx))
	depth.Inc()
	select {
	case d.workers[idx] <- action:
		return nil
	case <-ctx.Done():
		depth.Dec()
		return ctx.Err()
	}
}

// EnqueueBatch enqueues actions in order and returns how many were accepted
// before ctx ended.
func (d *Dispatcher) EnqueueBatch(ctx context.Context, actions []ports.ClaimActionInput) (int, error) {
	for i, a := range actions {
		if err := d.Enqueue(ctx, a); err != nil {
			return i, err
		}
	}
	return len(actions), nil
}

func (d *Dispatcher) shardIndex(claimID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(claimID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ClaimActionInput) {
	defer d.wg.Done()
	depth := metrics.ClaimActionsQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case action, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()
			if _, err := d.claims.TransitionClaim(ctx, action.ClaimID, action.Status); err != nil {
				d.log.Error().Err(err).
					Str("claim_id", action.ClaimID).
					Str("status", string(action.Status)).
					Int("worker_id", id).
					Msg("claim action failed")
			}
		}
	}
}
