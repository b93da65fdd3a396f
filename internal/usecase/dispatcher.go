package usecase

import (
	"context"
	"sync"

	"github.com/flight-search/cheapest-fly/internal/domain"
	"github.com/flight-search/cheapest-fly/internal/infrastructure/logger"
)

// Deliverer runs fn on the UI thread. It must not block waiting for fn to
// finish, and it must run fn at most once.
type Deliverer func(fn func())

// DeliverInline runs fn on the lookup's own goroutine. It suits callers
// without an event loop, such as tests and headless tools, and is only sound
// when Submit is never called concurrently with a delivery: the staleness
// check and onResult are not atomic with respect to a racing Submit. Use a
// Deliverer that runs fn on the goroutine that calls Submit to get the
// latest-wins guarantee under concurrency.
func DeliverInline(fn func()) { fn() }

// DispatcherConfig contains configuration options for the dispatcher.
type DispatcherConfig struct {
	// Deliver marshals results onto the UI thread; nil means DeliverInline,
	// which requires Submit and delivery not to overlap
	Deliver Deliverer

	// Logger records submissions and discarded results; nil disables logging
	Logger *logger.Logger
}

// Dispatcher submits fare searches in the background and reports only the
// most recently submitted one back to the UI. Earlier searches still run
// to completion; their outcomes are dropped on arrival.
type Dispatcher struct {
	search  FareSearchUseCase
	deliver Deliverer
	log     *logger.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	current domain.SequenceID
	closed  bool
}

// NewDispatcher creates a Dispatcher that runs lookups through search.
func NewDispatcher(search FareSearchUseCase, cfg DispatcherConfig) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		search:  search,
		deliver: cfg.Deliver,
		log:     cfg.Logger,
		ctx:     ctx,
		cancel:  cancel,
	}
	if d.deliver == nil {
		d.deliver = DeliverInline
	}
	if d.log == nil {
		d.log = logger.Nop()
	}
	return d
}

// Submit starts a search for query and returns its sequence number at once.
// onResult is called on the UI thread with the outcome, unless a later
// Submit happened first, in which case it is never called.
func (d *Dispatcher) Submit(query domain.FlightQuery, onResult func(domain.SearchOutcome)) domain.SequenceID {
	d.mu.Lock()
	d.current++
	seq := d.current
	d.mu.Unlock()

	d.log.WithSequence(uint64(seq)).Info().
		Str("route", query.String()).
		Msg("Search submitted")

	d.wg.Add(1)
	go d.run(seq, query, onResult)

	return seq
}

func (d *Dispatcher) run(seq domain.SequenceID, query domain.FlightQuery, onResult func(domain.SearchOutcome)) {
	defer d.wg.Done()

	outcome := d.search.Search(d.ctx, query)

	d.deliver(func() {
		log := d.log.WithSequence(uint64(seq))
		if !d.IsCurrent(seq) {
			log.Debug().Msg("Search superseded, outcome discarded")
			return
		}
		log.Info().
			Bool("ok", outcome.OK()).
			Str("result", outcome.Describe()).
			Msg("Search delivered")
		onResult(outcome)
	})
}

// IsCurrent reports whether seq is the latest submission and the
// dispatcher is still open.
func (d *Dispatcher) IsCurrent(seq domain.SequenceID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return !d.closed && seq == d.current
}

// Current returns the latest sequence number handed out, or 0 before the
// first Submit.
func (d *Dispatcher) Current() domain.SequenceID {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// Wait blocks until every submitted lookup has finished and been handed to
// the Deliverer.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Close stops delivery, cancels in-flight lookups and waits for them.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	d.cancel()
	d.wg.Wait()
}
