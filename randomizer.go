package metasim

import (
	"context"
	"math/rand"

	"github.com/metasim/metasim.go/randsim"
)

// A Randomizer mutates some aspect of simulated state using a seeded
// pseudo-random source.
//
// Concrete randomization policies embed Base to get the seeding contract
// and handler binding, and implement Randomize with their actual sampling
// logic.
type Randomizer interface {
	// BindHandler binds the live simulation context the randomizer
	// operates against.
	BindHandler(handler Handler)

	// Randomize performs the randomization against the bound handler.
	Randomize(ctx context.Context) error
}

// BaseConfig is the config for NewBase.
//
// All fields are optional.
type BaseConfig struct {
	// Seed initializes the owned random generator.
	//
	// If nil, a seed is derived from Entropy on first RNG use,
	// so runs that don't care about reproducibility never have to supply
	// one.
	Seed *int64

	// Entropy is the source used to derive a seed when none was supplied.
	//
	// If nil, it defaults to drawing from randsim.R,
	// which is itself seedable:
	// seeding randsim.R with a known value before constructing auto-seeded
	// randomizers makes the whole run reproducible.
	// If randsim.R was left unseeded, auto-seeded runs are explicitly
	// non-reproducible; supplying Seed is the documented reproducible path.
	Entropy func() int64

	// Options carries free-form per-policy configuration.
	Options map[string]interface{}
}

// Base carries the seeding contract and handler binding shared by all
// randomizers.
//
// The owned generator is exclusively owned by one Base and accessed only by
// its owner, so Base is not safe for concurrent use and doesn't try to be.
type Base struct {
	handler Handler
	options map[string]interface{}
	entropy func() int64

	seed   int64
	seeded bool
	rng    *rand.Rand
}

// NewBase creates a Base from the given config.
func NewBase(cfg BaseConfig) *Base {
	b := &Base{
		options: cfg.Options,
		entropy: cfg.Entropy,
	}
	if b.entropy == nil {
		b.entropy = randsim.R.Int63
	}
	if cfg.Seed != nil {
		b.SetSeed(*cfg.Seed)
	}
	return b
}

// SetSeed sets or updates the random seed.
//
// The owned generator is discarded and recreated from exactly seed,
// so draws after reseeding are not derivable from draws before,
// and two instances seeded with the same value produce identical draw
// sequences.
//
// It always succeeds.
func (b *Base) SetSeed(seed int64) {
	b.seed = seed
	b.seeded = true
	b.rng = rand.New(rand.NewSource(seed))
}

// AutoSeed derives a seed from the entropy source,
// stores it via SetSeed, and returns the resolved value.
func (b *Base) AutoSeed() int64 {
	seed := b.entropy()
	b.SetSeed(seed)
	return seed
}

// Seed returns the last resolved seed.
//
// ok is false if no seed has been set or derived yet.
func (b *Base) Seed() (seed int64, ok bool) {
	return b.seed, b.seeded
}

// RNG returns the owned random generator, lazily initializing it.
//
// If no generator exists yet it's created from the stored seed,
// or from an auto-derived one when no seed was ever supplied.
// The return value is guaranteed to be non-nil,
// and stays the same generator across calls until the next SetSeed.
func (b *Base) RNG() *rand.Rand {
	if b.rng == nil {
		if b.seeded {
			b.SetSeed(b.seed)
		} else {
			b.AutoSeed()
		}
	}
	return b.rng
}

// BindHandler stores a non-owning reference to the given handler.
//
// No validation is performed:
// a nil handler is tolerated and makes the settle barrier degrade to
// no-ops.
func (b *Base) BindHandler(handler Handler) {
	b.handler = handler
}

// Handler returns the bound handler, or nil if none was bound.
func (b *Base) Handler() Handler {
	return b.handler
}

// Option returns the free-form option stored under key.
func (b *Base) Option(key string) (value interface{}, ok bool) {
	value, ok = b.options[key]
	return
}

// Options returns the free-form options mapping.
//
// The returned map is the one owned by the Base, not a copy.
func (b *Base) Options() map[string]interface{} {
	return b.options
}
