package facade

// RNG is a small splitmix-style generator: a 32-bit accumulator advanced by a
// fixed odd constant, mixed with xor-shift/multiply steps. Fast, reproducible
// and statistically adequate for the few hundred draws a facade generation
// needs. Not cryptographic.
//
// Two generators created with the same seed produce the same infinite
// sequence; state is never shared between instances.
type RNG struct {
	state uint32
}

// NewRNG creates a deterministic generator for the given seed. The seed is
// treated as opaque; only its identity matters.
func NewRNG(seed int) *RNG {
	return &RNG{state: uint32(seed)}
}

// Next returns the next value in [0, 1).
func (r *RNG) Next() float64 {
	r.state += 0x9e3779b9
	z := r.state
	z ^= z >> 16
	z *= 0x21f0aaad
	z ^= z >> 15
	z *= 0x735a2d97
	z ^= z >> 15
	return float64(z) / (1 << 32)
}
