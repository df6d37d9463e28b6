package dashboard

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"weather-dashboard/datasource"
	"weather-dashboard/models"

	"github.com/avast/retry-go/v4"
)

// gatedSource answers immediately unless a gate is registered for the
// location, in which case it blocks until the gate is closed.
type gatedSource struct {
	mu    sync.Mutex
	gates map[string]chan struct{}
	errs  map[string]error
}

func newGatedSource() *gatedSource {
	return &gatedSource{
		gates: make(map[string]chan struct{}),
		errs:  make(map[string]error),
	}
}

func (g *gatedSource) Name() string { return "Gated" }

func (g *gatedSource) gate(location string) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch := make(chan struct{})
	g.gates[location] = ch
	return ch
}

func (g *gatedSource) fail(location string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.errs[location] = err
}

func (g *gatedSource) FetchForecast(ctx context.Context, location string) (*models.ForecastResponse, error) {
	g.mu.Lock()
	gate := g.gates[location]
	err := g.errs[location]
	g.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return &models.ForecastResponse{City: models.City{Name: location}}, nil
}

func waitForStatus(t *testing.T, s *Store, seq uint64, want Status) Snapshot {
	t.Helper()
	var snap Snapshot
	err := retry.Do(
		func() error {
			snap = s.Snapshot()
			if snap.Seq != seq || snap.Status != want {
				return fmt.Errorf("request %d is %s", snap.Seq, snap.Status)
			}
			return nil
		},
		retry.Attempts(100),
		retry.Delay(10*time.Millisecond),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		t.Fatalf("store did not reach %s for request %d, last snapshot %+v", want, seq, snap)
	}
	return snap
}

func TestStoreStartsIdle(t *testing.T) {
	s := NewStore(newGatedSource())
	defer s.Close()

	snap := s.Snapshot()
	if snap.Status != StatusIdle || snap.Response != nil || snap.Seq != 0 {
		t.Errorf("unexpected initial snapshot %+v", snap)
	}
	if _, ok := s.Refresh(); ok {
		t.Errorf("Refresh without a location should report false")
	}
}

func TestStoreLoadingThenSuccess(t *testing.T) {
	src := newGatedSource()
	gate := src.gate("London")
	s := NewStore(src)
	defer s.Close()

	seq := s.Select("  London ")
	snap := s.Snapshot()
	if snap.Status != StatusLoading || snap.Location != "London" || snap.Seq != seq {
		t.Errorf("expected loading London, got %+v", snap)
	}

	close(gate)
	s.Wait()

	snap = s.Snapshot()
	if snap.Status != StatusSuccess || snap.Response == nil || snap.Response.City.Name != "London" {
		t.Errorf("expected success for London, got %+v", snap)
	}
}

func TestStoreIgnoresBlankSelection(t *testing.T) {
	s := NewStore(newGatedSource())
	defer s.Close()

	if seq := s.Select("   "); seq != 0 {
		t.Errorf("blank selection started request %d", seq)
	}
	if s.Snapshot().Status != StatusIdle {
		t.Errorf("blank selection changed the state")
	}
}

func TestStoreDiscardsStaleResult(t *testing.T) {
	src := newGatedSource()
	slow := src.gate("Slowtown")
	s := NewStore(src)
	defer s.Close()

	s.Select("Slowtown")
	latest := s.Select("Fastville")
	waitForStatus(t, s, latest, StatusSuccess)

	// the earlier request now resolves after the newer one
	close(slow)
	s.Wait()

	snap := s.Snapshot()
	if snap.Seq != latest || snap.Location != "Fastville" {
		t.Fatalf("stale result replaced the latest selection: %+v", snap)
	}
	if snap.Response == nil || snap.Response.City.Name != "Fastville" {
		t.Errorf("expected Fastville data, got %+v", snap.Response)
	}
}

func TestStoreErrorClearsPreviousData(t *testing.T) {
	src := newGatedSource()
	src.fail("Nowhere", &datasource.ProviderError{StatusCode: 404, Message: "city not found"})
	s := NewStore(src)
	defer s.Close()

	s.Select("London")
	s.Wait()
	if s.Snapshot().Response == nil {
		t.Fatal("expected London data")
	}

	s.Select("Nowhere")
	s.Wait()

	snap := s.Snapshot()
	if snap.Status != StatusError {
		t.Fatalf("expected error, got %s", snap.Status)
	}
	if snap.Error != "city not found" {
		t.Errorf("error = %q", snap.Error)
	}
	if snap.Response != nil {
		t.Errorf("stale data must not survive an error: %+v", snap.Response)
	}
}

func TestStoreRefreshRefetchesCurrentLocation(t *testing.T) {
	s := NewStore(newGatedSource())
	defer s.Close()

	first := s.Select("Paris")
	s.Wait()

	seq, ok := s.Refresh()
	if !ok || seq != first+1 {
		t.Fatalf("Refresh = %d, %v", seq, ok)
	}
	s.Wait()
	if snap := s.Snapshot(); snap.Location != "Paris" || snap.Status != StatusSuccess {
		t.Errorf("unexpected snapshot after refresh %+v", snap)
	}
}

func TestStoreSubscribers(t *testing.T) {
	s := NewStore(newGatedSource())
	defer s.Close()

	var mu sync.Mutex
	var seen []Status
	cancel := s.Subscribe(func(snap Snapshot) {
		mu.Lock()
		seen = append(seen, snap.Status)
		mu.Unlock()
	})

	s.Select("Rome")
	s.Wait()
	cancel()
	s.Select("Oslo")
	s.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 2 || seen[0] != StatusLoading || seen[1] != StatusSuccess {
		t.Errorf("subscriber saw %v, want [loading success]", seen)
	}
}

func TestStoreFetchTimeout(t *testing.T) {
	src := newGatedSource()
	src.gate("Stuck")
	s := NewStore(src, WithFetchTimeout(20*time.Millisecond))
	defer s.Close()

	s.Select("Stuck")
	s.Wait()

	snap := s.Snapshot()
	if snap.Status != StatusError || snap.Error == "" {
		t.Errorf("expected a timeout error, got %+v", snap)
	}
}

func TestStoreCloseCancelsFetches(t *testing.T) {
	src := newGatedSource()
	src.gate("Stuck")
	s := NewStore(src)

	s.Select("Stuck")
	done := make(chan struct{})
	go func() {
		s.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not cancel the in-flight fetch")
	}

	if seq := s.Select("Later"); seq != 1 {
		t.Errorf("Select after Close started request %d", seq)
	}
}

func TestStoreSubscriberMayReadSnapshot(t *testing.T) {
	s := NewStore(newGatedSource())

	started := make(chan struct{})
	var once sync.Once
	s.Subscribe(func(Snapshot) {
		first := false
		once.Do(func() {
			first = true
			close(started)
		})
		if first {
			// let the second selection start while this call is running
			time.Sleep(50 * time.Millisecond)
		}
		s.Snapshot()
	})

	var selects sync.WaitGroup
	selects.Add(2)
	go func() {
		defer selects.Done()
		s.Select("London")
	}()
	<-started
	go func() {
		defer selects.Done()
		s.Select("Paris")
	}()

	done := make(chan struct{})
	go func() {
		selects.Wait()
		s.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("store blocked while a subscriber read the snapshot")
	}

	waitForStatus(t, s, 2, StatusSuccess)
	if snap := s.Snapshot(); snap.Location != "Paris" {
		t.Errorf("location = %q", snap.Location)
	}
	s.Close()
}

func TestStoreSubscriberMayUnsubscribe(t *testing.T) {
	s := NewStore(newGatedSource())
	defer s.Close()

	var mu sync.Mutex
	calls := 0
	var cancel func()
	cancel = s.Subscribe(func(Snapshot) {
		mu.Lock()
		calls++
		mu.Unlock()
		cancel()
	})

	s.Select("Rome")
	s.Wait()

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Errorf("subscriber called %d times after unsubscribing itself", calls)
	}
}

func TestStoreWaitCoversLaterSelections(t *testing.T) {
	src := newGatedSource()
	madrid := src.gate("Madrid")
	berlin := src.gate("Berlin")
	s := NewStore(src)
	defer s.Close()

	s.Select("Madrid")

	waited := make(chan struct{})
	go func() {
		s.Wait()
		close(waited)
	}()

	s.Select("Berlin")
	close(madrid)

	select {
	case <-waited:
		t.Fatal("Wait returned while a fetch was outstanding")
	case <-time.After(50 * time.Millisecond):
	}

	close(berlin)
	select {
	case <-waited:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return after the last fetch finished")
	}
}

func TestStoreRefreshAfterClose(t *testing.T) {
	s := NewStore(newGatedSource())

	s.Select("Paris")
	s.Wait()
	s.Close()

	if seq, ok := s.Refresh(); ok {
		t.Errorf("Refresh after Close reported request %d", seq)
	}
}
