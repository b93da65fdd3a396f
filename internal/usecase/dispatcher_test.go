package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/flight-search/cheapest-fly/internal/domain"
)

// gatedSearch blocks each search until its departure airport's gate is released.
type gatedSearch struct {
	mu    sync.Mutex
	gates map[string]chan domain.SearchOutcome
}

func newGatedSearch(airports ...string) *gatedSearch {
	g := &gatedSearch{gates: make(map[string]chan domain.SearchOutcome)}
	for _, a := range airports {
		g.gates[a] = make(chan domain.SearchOutcome, 1)
	}
	return g
}

func (g *gatedSearch) Search(ctx context.Context, q domain.FlightQuery) domain.SearchOutcome {
	g.mu.Lock()
	gate := g.gates[q.DepartureFrom()]
	g.mu.Unlock()

	select {
	case out := <-gate:
		return out
	case <-ctx.Done():
		return domain.Failed(domain.Unavailable, "")
	}
}

func (g *gatedSearch) release(airport string, out domain.SearchOutcome) {
	g.mu.Lock()
	gate := g.gates[airport]
	g.mu.Unlock()
	gate <- out
}

// recorder collects delivered outcomes.
type recorder struct {
	mu       sync.Mutex
	outcomes []domain.SearchOutcome
}

func (r *recorder) onResult(o domain.SearchOutcome) {
	r.mu.Lock()
	r.outcomes = append(r.outcomes, o)
	r.mu.Unlock()
}

func (r *recorder) snapshot() []domain.SearchOutcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.SearchOutcome(nil), r.outcomes...)
}

func (r *recorder) waitFor(t *testing.T, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return len(r.snapshot()) >= n }, time.Second, 5*time.Millisecond)
}

func TestDispatcher_SequenceNumbersAreMonotonic(t *testing.T) {
	search := newGatedSearch("JFK")
	d := NewDispatcher(search, DispatcherConfig{})
	defer d.Close()

	assert.Equal(t, domain.SequenceID(0), d.Current())

	q := mustQuery(t, "JFK", "LAX", "2030-01-01")
	var last domain.SequenceID
	for i := 0; i < 10; i++ {
		seq := d.Submit(q, func(domain.SearchOutcome) {})
		assert.Greater(t, seq, last)
		last = seq
	}

	assert.Equal(t, domain.SequenceID(1), last-9, "numbering starts at 1")
	assert.Equal(t, last, d.Current())
}

func TestDispatcher_SubmitDoesNotBlock(t *testing.T) {
	search := newGatedSearch("JFK")
	d := NewDispatcher(search, DispatcherConfig{})

	done := make(chan domain.SequenceID, 1)
	go func() {
		done <- d.Submit(mustQuery(t, "JFK", "LAX", "2030-01-01"), func(domain.SearchOutcome) {})
	}()

	select {
	case seq := <-done:
		assert.Equal(t, domain.SequenceID(1), seq)
	case <-time.After(time.Second):
		t.Fatal("Submit blocked on the lookup")
	}

	search.release("JFK", domain.Failed(domain.Unavailable, ""))
	d.Wait()
}

func TestDispatcher_SingleSearchDeliveredOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := mustQuery(t, "JFK", "LAX", "2030-01-01")

	lookup := domain.NewMockFareLookup(ctrl)
	lookup.EXPECT().Name().Return("mock").AnyTimes()
	lookup.EXPECT().LookupCheapestFare(gomock.Any(), q).Return(usd("450.00"), nil).Times(1)

	d := NewDispatcher(NewFareSearchUseCase(lookup, FareSearchConfig{LookupTimeout: time.Second}), DispatcherConfig{})
	rec := &recorder{}

	seq := d.Submit(q, rec.onResult)
	d.Wait()

	assert.Equal(t, domain.SequenceID(1), seq)
	got := rec.snapshot()
	require.Len(t, got, 1)
	require.True(t, got[0].OK())
	assert.Equal(t, "450.00 USD", got[0].Describe())
}

func TestDispatcher_StaleOutcomeIsDiscarded(t *testing.T) {
	search := newGatedSearch("JFK", "VNO")
	d := NewDispatcher(search, DispatcherConfig{})
	rec := &recorder{}

	seqA := d.Submit(mustQuery(t, "JFK", "LAX", "2030-01-01"), rec.onResult)
	seqB := d.Submit(mustQuery(t, "VNO", "BCN", "2030-01-01"), rec.onResult)
	require.Greater(t, seqB, seqA)
	assert.False(t, d.IsCurrent(seqA), "A is superseded as soon as B is submitted")

	// B finishes first, A finishes last.
	search.release("VNO", domain.Success(usd("35.00")))
	rec.waitFor(t, 1)
	search.release("JFK", domain.Success(usd("450.00")))
	d.Wait()

	got := rec.snapshot()
	require.Len(t, got, 1, "only the latest submission is delivered")
	assert.Equal(t, "35.00 USD", got[0].Describe())
}

func TestDispatcher_StaleOutcomeDiscardedWhenItArrivesFirst(t *testing.T) {
	search := newGatedSearch("JFK", "VNO")
	d := NewDispatcher(search, DispatcherConfig{})
	rec := &recorder{}

	d.Submit(mustQuery(t, "JFK", "LAX", "2030-01-01"), rec.onResult)
	d.Submit(mustQuery(t, "VNO", "BCN", "2030-01-01"), rec.onResult)

	search.release("JFK", domain.Success(usd("450.00")))
	search.release("VNO", domain.Failed(domain.Timeout, ""))
	d.Wait()

	got := rec.snapshot()
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Failure)
	assert.Equal(t, domain.Timeout, got[0].Failure.Kind)
}

func TestDispatcher_IdenticalQueriesAreIndependent(t *testing.T) {
	search := newGatedSearch("JFK")
	d := NewDispatcher(search, DispatcherConfig{})
	rec := &recorder{}
	q := mustQuery(t, "JFK", "LAX", "2030-01-01")

	first := d.Submit(q, rec.onResult)
	second := d.Submit(q, rec.onResult)
	assert.NotEqual(t, first, second)

	search.release("JFK", domain.Success(usd("1.00")))
	search.release("JFK", domain.Success(usd("1.00")))
	d.Wait()

	assert.Len(t, rec.snapshot(), 1)
}

// uiLoop is a single goroutine standing in for an event loop.
type uiLoop struct {
	calls  chan func()
	inLoop atomic.Bool
	done   chan struct{}
}

func newUILoop() *uiLoop {
	l := &uiLoop{calls: make(chan func(), 16), done: make(chan struct{})}
	go func() {
		defer close(l.done)
		for fn := range l.calls {
			l.inLoop.Store(true)
			fn()
			l.inLoop.Store(false)
		}
	}()
	return l
}

func (l *uiLoop) deliver(fn func()) { l.calls <- fn }

func (l *uiLoop) stop() {
	close(l.calls)
	<-l.done
}

func TestDispatcher_DeliversOnUIThread(t *testing.T) {
	search := newGatedSearch("JFK")
	loop := newUILoop()
	d := NewDispatcher(search, DispatcherConfig{Deliver: loop.deliver})

	var onLoop atomic.Bool
	delivered := make(chan struct{})
	d.Submit(mustQuery(t, "JFK", "LAX", "2030-01-01"), func(domain.SearchOutcome) {
		onLoop.Store(loop.inLoop.Load())
		close(delivered)
	})

	search.release("JFK", domain.Success(usd("450.00")))

	select {
	case <-delivered:
	case <-time.After(time.Second):
		t.Fatal("outcome was never delivered")
	}
	d.Wait()
	loop.stop()

	assert.True(t, onLoop.Load(), "onResult must run on the UI loop")
}

func TestDispatcher_TimeoutIsDeliveredNotHung(t *testing.T) {
	lookup := &ignoringLookup{delay: 2 * time.Second}
	d := NewDispatcher(
		NewFareSearchUseCase(lookup, FareSearchConfig{LookupTimeout: 30 * time.Millisecond}),
		DispatcherConfig{},
	)
	rec := &recorder{}

	d.Submit(mustQuery(t, "JFK", "LAX", "2030-01-01"), rec.onResult)
	rec.waitFor(t, 1)

	got := rec.snapshot()
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Failure)
	assert.Equal(t, domain.Timeout, got[0].Failure.Kind)
}

func TestDispatcher_CloseStopsDelivery(t *testing.T) {
	search := newGatedSearch("JFK")
	d := NewDispatcher(search, DispatcherConfig{})
	rec := &recorder{}

	seq := d.Submit(mustQuery(t, "JFK", "LAX", "2030-01-01"), rec.onResult)
	d.Close()

	assert.False(t, d.IsCurrent(seq))
	assert.Empty(t, rec.snapshot(), "nothing is delivered after Close")
}

func TestDispatcher_SubmitAndDeliveryShareTheUILoop(t *testing.T) {
	search := newGatedSearch("JFK", "VNO")
	loop := newUILoop()
	d := NewDispatcher(search, DispatcherConfig{Deliver: loop.deliver})
	rec := &recorder{}

	qa := mustQuery(t, "JFK", "LAX", "2030-01-01")
	qb := mustQuery(t, "VNO", "BCN", "2030-01-01")

	loop.deliver(func() { d.Submit(qa, rec.onResult) })
	loop.deliver(func() { d.Submit(qb, rec.onResult) })
	require.Eventually(t, func() bool { return d.Current() == 2 }, time.Second, 5*time.Millisecond)

	search.release("JFK", domain.Success(usd("450.00")))
	search.release("VNO", domain.Success(usd("35.00")))
	d.Wait()
	loop.stop()

	got := rec.snapshot()
	require.Len(t, got, 1)
	assert.Equal(t, "35.00 USD", got[0].Describe())
}
