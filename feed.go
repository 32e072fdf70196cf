package invers

import (
	"iter"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"
)

// Quote holds the current unit prices of both assets.
type Quote struct {
	A Money // BTC-like
	B Money // gold-like
}

// DefaultQuote is the quote every session starts from.
func DefaultQuote() Quote {
	return Quote{A: INR(8500000), B: INR(7200)}
}

// Random walk bounds: each tick multiplies a price by 1+U(-b, b).
const (
	BoundA = 0.001
	BoundB = 0.0005
)

// DefaultFeedInterval is the period between two quotes.
const DefaultFeedInterval = 3 * time.Second

// Feed is the price feed simulator. Quotes are never persisted: a new Feed
// always starts from its start quote.
type Feed struct {
	start Quote
	seed  uint64
}

// NewFeed returns a feed walking from start. The same seed always yields the
// same sequence.
func NewFeed(start Quote, seed uint64) *Feed {
	return &Feed{start: start, seed: seed}
}

// Start returns the first quote of the feed.
func (f *Feed) Start() Quote { return f.start }

// Quotes returns the lazy, infinite sequence of quotes following the start
// quote. Each call restarts the walk from the beginning.
func (f *Feed) Quotes() iter.Seq[Quote] {
	return func(yield func(Quote) bool) {
		rng := rand.New(rand.NewPCG(f.seed, f.seed^0x9e3779b97f4a7c15))
		q := f.start
		for {
			q = Quote{
				A: perturb(q.A, BoundA, rng),
				B: perturb(q.B, BoundB, rng),
			}
			if !yield(q) {
				return
			}
		}
	}
}

// perturb multiplies price by 1+U(-bound, bound). With bound < 1 the result
// stays strictly positive.
func perturb(price Money, bound float64, rng *rand.Rand) Money {
	factor := 1 + (rng.Float64()*2-1)*bound
	return Money{value: price.value.Mul(decimal.NewFromFloat(factor)).Round(6), cur: price.cur}
}
