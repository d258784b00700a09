package drill

import (
	"math/rand/v2"
	"time"
)

// Pool is the ordered working set of words for one pass.
type Pool struct {
	items    []*Word
	cursor   int
	shuffle  bool
	scramble bool
	rng      *rand.Rand
}

// NewPool creates an empty pool. A nil rng gets a time-seeded source.
func NewPool(rng *rand.Rand, shuffle, scramble bool) *Pool {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &Pool{rng: rng, shuffle: shuffle, scramble: scramble}
}

// SetItems replaces the working set, applies shuffle and scramble when enabled
// and rewinds the cursor.
func (p *Pool) SetItems(items []*Word) {
	p.items = append([]*Word(nil), items...)
	if p.shuffle {
		p.shuffleItems()
	}
	if p.scramble {
		for _, w := range p.items {
			w.scrambleWith(p.rng)
		}
	}
	p.cursor = 0
}

// Current returns the word at the cursor, or false when the pool is exhausted.
func (p *Pool) Current() (*Word, bool) {
	if p.cursor >= len(p.items) {
		return nil, false
	}
	return p.items[p.cursor], true
}

// Advance moves the cursor forward. It stops at len(items).
func (p *Pool) Advance() {
	if p.cursor < len(p.items) {
		p.cursor++
	}
}

// Exhausted reports whether the cursor has passed the last word.
func (p *Pool) Exhausted() bool {
	return p.cursor >= len(p.items)
}

// SetShuffleEnabled updates the flag. Enabling reshuffles the current items in
// place and keeps the cursor where it is, so the word just answered may come
// around again.
func (p *Pool) SetShuffleEnabled(enabled bool) {
	p.shuffle = enabled
	if enabled && len(p.items) > 0 {
		p.shuffleItems()
	}
}

// SetScrambleEnabled scrambles every word when enabled and resets every word
// when disabled.
func (p *Pool) SetScrambleEnabled(enabled bool) {
	p.scramble = enabled
	for _, w := range p.items {
		if enabled {
			w.scrambleWith(p.rng)
		} else {
			w.ResetScramble()
		}
	}
}

// ShuffleEnabled reports the shuffle flag.
func (p *Pool) ShuffleEnabled() bool { return p.shuffle }

// ScrambleEnabled reports the scramble flag.
func (p *Pool) ScrambleEnabled() bool { return p.scramble }

// Len returns the number of words in the pool.
func (p *Pool) Len() int { return len(p.items) }

// Cursor returns the 0-based position of the current word.
func (p *Pool) Cursor() int { return p.cursor }

// Items returns a copy of the words in pool order.
func (p *Pool) Items() []*Word {
	return append([]*Word(nil), p.items...)
}

// Fisher-Yates.
func (p *Pool) shuffleItems() {
	for i := len(p.items) - 1; i > 0; i-- {
		j := p.rng.IntN(i + 1)
		p.items[i], p.items[j] = p.items[j], p.items[i]
	}
}
