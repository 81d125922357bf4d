package simulation

// hashString is 32-bit FNV-1a. Used to derive stable seeds and pseudo
// coordinates from city names.
func hashString(s string) uint32 {
	h := uint32(2166136261)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	return h
}

// Rand is a Mulberry32 generator. It is small, fast, and reproduces the
// exact sequence of the original dashboard's local mode for a given seed,
// which keeps regenerated city layouts identical across processes.
type Rand struct {
	state uint32
}

// NewRand returns a generator seeded with the given value.
func NewRand(seed uint32) *Rand {
	return &Rand{state: seed}
}

// Float64 returns the next value in [0, 1).
func (r *Rand) Float64() float64 {
	r.state += 0x6D2B79F5
	z := r.state
	z = (z ^ (z >> 15)) * (z | 1)
	z ^= z + (z^(z>>7))*(z|61)
	z ^= z >> 14
	return float64(z) / 4294967296.0
}

// IntN returns the next value in [0, n).
func (r *Rand) IntN(n int) int {
	return int(r.Float64() * float64(n))
}
