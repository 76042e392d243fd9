package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"points_checker/internal/app/port"
	"points_checker/internal/infrastructure/sessionstore"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...any)       {}
func (nopLogger) Debug(string, ...any)      {}
func (nopLogger) Warn(string, ...any)       {}
func (nopLogger) Error(string, ...any)      {}
func (l nopLogger) With(...any) port.Logger { return l }

// fakePointsClient answers from a per-address table and records call order.
// Addresses listed in block wait until their gate is closed or ctx ends.
// With ignoreCtx set they wait for the gate only, like a transport that
// cannot abort a request already on the wire.
type fakePointsClient struct {
	mu        sync.Mutex
	calls     []string
	inFlight  int
	maxInFl   int
	ignoreCtx bool

	answers map[string]any
	failing map[string]error
	block   map[string]chan struct{}
	started chan string
}

func newFakePointsClient() *fakePointsClient {
	return &fakePointsClient{
		answers: make(map[string]any),
		failing: make(map[string]error),
		block:   make(map[string]chan struct{}),
		started: make(chan string, 64),
	}
}

func (f *fakePointsClient) FetchPoints(ctx context.Context, address string) (any, error) {
	f.mu.Lock()
	f.calls = append(f.calls, address)
	f.inFlight++
	if f.inFlight > f.maxInFl {
		f.maxInFl = f.inFlight
	}
	gate := f.block[address]
	ignoreCtx := f.ignoreCtx
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	select {
	case f.started <- address:
	default:
	}

	if gate != nil && ignoreCtx {
		<-gate
	} else if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failing[address]; ok {
		return nil, err
	}
	if v, ok := f.answers[address]; ok {
		return v, nil
	}
	return nil, errors.New("Failed for " + address)
}

func (f *fakePointsClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.calls...)
}

func (f *fakePointsClient) MaxInFlight() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maxInFl
}

func (f *fakePointsClient) waitStarted(address string, timeout time.Duration) bool {
	deadline := time.After(timeout)
	for {
		select {
		case got := <-f.started:
			if got == address {
				return true
			}
		case <-deadline:
			return false
		}
	}
}

func pointsPayload(total, last24h float64) map[string]any {
	return map[string]any{"total_points": total, "last_24h_points": last24h}
}

func newTestStore() *sessionstore.Store {
	return sessionstore.NewStore(time.Minute, time.Minute, nopLogger{})
}
