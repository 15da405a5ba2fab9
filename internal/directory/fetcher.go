package directory

import (
	"context"
	"sync"
	"time"

	"github.com/msomdec/spartan-directory/internal/domain"
)

// Source supplies the raw dataset. The in-memory source below is the normal
// one; a real deployment could swap in an HTTP-backed source without touching
// the pipeline contract (dataset in, view in, page out).
type Source func(ctx context.Context) ([]domain.Spartan, error)

// StaticSource serves a fixed in-memory dataset. Callers get a copy so the
// canonical slice is never aliased by pipeline consumers.
func StaticSource(dataset []domain.Spartan) Source {
	return func(ctx context.Context) ([]domain.Spartan, error) {
		out := make([]domain.Spartan, len(dataset))
		copy(out, dataset)
		return out, nil
	}
}

// Fetcher simulates the remote spartans API: it answers from a local source
// after an artificial delay so loading states get exercised. Only one fetch
// is in flight at a time; concurrent callers queue behind the mutex. Tests
// collapse the latency by constructing the fetcher with a zero delay.
type Fetcher struct {
	mu     sync.Mutex
	source Source
	delay  time.Duration
}

// NewFetcher creates a Fetcher over the given source with the given
// simulated latency.
func NewFetcher(source Source, delay time.Duration) *Fetcher {
	return &Fetcher{source: source, delay: delay}
}

// Fetch returns the dataset after the simulated latency.
func (f *Fetcher) Fetch(ctx context.Context) ([]domain.Spartan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := sleepContext(ctx, f.delay); err != nil {
		return nil, err
	}
	return f.source(ctx)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
