package feed

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/scguardian/guardian/internal/models"
)

// Feed picks simulated news events.
type Feed struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// Option configures a Feed.
type Option func(*Feed)

// WithRand sets the random source. Tests pass a seeded one.
func WithRand(rng *rand.Rand) Option {
	return func(f *Feed) {
		if rng != nil {
			f.rng = rng
		}
	}
}

// WithClock sets the clock used to date feed items.
func WithClock(now func() time.Time) Option {
	return func(f *Feed) {
		if now != nil {
			f.now = now
		}
	}
}

// New creates a feed over MockNewsFeed.
func New(opts ...Option) *Feed {
	f := &Feed{
		rng: rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5c6a)),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Items returns every feed item.
func (f *Feed) Items() []models.RawNewsItem {
	return MockNewsFeed(f.now().UTC())
}

// Random returns one feed item chosen uniformly.
func (f *Feed) Random() models.RawNewsItem {
	items := f.Items()

	f.mu.Lock()
	idx := f.rng.IntN(len(items))
	f.mu.Unlock()

	return items[idx]
}
