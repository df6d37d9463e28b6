// Package dashboard owns the dashboard's UI state: the selected location,
// the fetch status and the latest forecast response.
package dashboard

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"weather-dashboard/datasource"
	"weather-dashboard/models"
)

// Status is the state of the current location's fetch
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Snapshot is a consistent copy of the store. Response is only set in
// StatusSuccess; the response it points to is never modified.
type Snapshot struct {
	Seq       uint64                   `json:"seq"`
	Location  string                   `json:"location"`
	Status    Status                   `json:"status"`
	Response  *models.ForecastResponse `json:"response,omitempty"`
	Error     string                   `json:"error,omitempty"`
	UpdatedAt time.Time                `json:"updatedAt"`
}

// Store is the single writer of the dashboard state. Every Select starts
// a new fetch tagged with an increasing sequence number; a result whose
// number is no longer the latest is dropped, so the last selection wins
// regardless of the order responses arrive in.
type Store struct {
	source       datasource.ForecastSource
	fetchTimeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	// notifyMu serialises transitions and the subscriber calls that follow
	// them. It is always taken before mu, never while holding it.
	notifyMu sync.Mutex

	mu          sync.RWMutex
	snap        Snapshot
	seq         uint64
	closed      bool
	inflight    int
	idle        *sync.Cond // signalled on mu when inflight drops to zero
	subscribers map[int]func(Snapshot)
	nextSubID   int
}

// Option customises a Store
type Option func(*Store)

// WithFetchTimeout bounds each provider call
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// NewStore creates an idle store fetching from source
func NewStore(source datasource.ForecastSource, opts ...Option) *Store {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		source:       source,
		fetchTimeout: 15 * time.Second,
		ctx:          ctx,
		cancel:       cancel,
		snap:         Snapshot{Status: StatusIdle, UpdatedAt: time.Now()},
		subscribers:  make(map[int]func(Snapshot)),
	}
	s.idle = sync.NewCond(&s.mu)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select makes location current and starts fetching it. It returns the
// sequence number of the new fetch. Blank input is ignored and the
// current sequence number is returned.
func (s *Store) Select(location string) uint64 {
	location = strings.TrimSpace(location)

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if location == "" || s.closed {
		seq := s.seq
		s.mu.Unlock()
		return seq
	}

	s.seq++
	seq := s.seq
	s.snap = Snapshot{
		Seq:       seq,
		Location:  location,
		Status:    StatusLoading,
		UpdatedAt: time.Now(),
	}
	s.inflight++
	s.unlockAndNotify()

	go s.fetch(seq, location)
	return seq
}

// Refresh refetches the current location. It reports false when no
// location has been selected yet or the store is closed.
func (s *Store) Refresh() (uint64, bool) {
	s.mu.RLock()
	location, closed := s.snap.Location, s.closed
	s.mu.RUnlock()

	if location == "" || closed {
		return 0, false
	}
	return s.Select(location), true
}

// Snapshot returns the current state
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Subscribe registers fn to be called after every state change. Calls
// happen outside the store lock, one at a time and in transition order.
// fn may read Snapshot or unsubscribe, but must not call Select or
// Refresh itself. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// Wait blocks until no fetch is in flight. Selections made while waiting
// extend the wait.
func (s *Store) Wait() {
	s.mu.Lock()
	for s.inflight > 0 {
		s.idle.Wait()
	}
	s.mu.Unlock()
}

func (s *Store) fetchDone() {
	s.mu.Lock()
	s.inflight--
	if s.inflight == 0 {
		s.idle.Broadcast()
	}
	s.mu.Unlock()
}

// Close stops accepting selections, cancels in-flight fetches and waits
// for them to return.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.Wait()
}

// complete records the outcome of fetch seq. Errors clear the response
// so a failed location never shows an earlier location's data.
func (s *Store) complete(seq uint64, resp *models.ForecastResponse, err error) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if seq != s.seq {
		latest := s.seq
		s.mu.Unlock()
		log.Printf("Discarding stale forecast result (request %d, latest %d)", seq, latest)
		return
	}

	if err == nil && resp == nil {
		err = errors.New("empty forecast response")
	}
	if err != nil {
		s.snap.Status = StatusError
		s.snap.Error = datasource.UserMessage(err)
		s.snap.Response = nil
	} else {
		s.snap.Status = StatusSuccess
		s.snap.Error = ""
		s.snap.Response = resp
	}
	s.snap.UpdatedAt = time.Now()
	s.unlockAndNotify()
}

// unlockAndNotify must be called with s.notifyMu and s.mu held; it
// releases s.mu before calling subscribers.
func (s *Store) unlockAndNotify() {
	snap := s.snap
	subs := make([]func(Snapshot), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}
