package engine

import "math/rand/v2"

// Shuffler returns a permutation of its input. Implementations must not
// add, drop or duplicate elements and must not mutate the argument.
// All randomness in the engine flows through a Shuffler.
type Shuffler[T any] func([]T) []T

// StandardShuffler returns a fair shuffler backed by math/rand/v2.
func StandardShuffler[T any]() Shuffler[T] {
	return func(in []T) []T {
		out := make([]T, len(in))
		copy(out, in)
		rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		return out
	}
}

// IdentityShuffler returns a shuffler that keeps the input order.
func IdentityShuffler[T any]() Shuffler[T] {
	return func(in []T) []T {
		out := make([]T, len(in))
		copy(out, in)
		return out
	}
}

// SeededShuffler returns a reproducible Fisher-Yates shuffler driven by an
// xorshift64 generator. Two shufflers built from the same seed produce the
// same sequence of permutations.
func SeededShuffler[T any](seed uint64) Shuffler[T] {
	rng := xorshift(seed)
	return func(in []T) []T {
		out := make([]T, len(in))
		copy(out, in)
		for i := len(out) - 1; i > 0; i-- {
			j := int(rng.intn(uint64(i + 1)))
			out[i], out[j] = out[j], out[i]
		}
		return out
	}
}

type xorshiftRNG struct{ state uint64 }

func xorshift(seed uint64) *xorshiftRNG {
	if seed == 0 {
		seed = 1 // xorshift can't start at 0
	}
	return &xorshiftRNG{state: seed}
}

func (r *xorshiftRNG) next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	r.state = x
	return x
}

// intn returns a number in [0, n).
func (r *xorshiftRNG) intn(n uint64) uint64 { return r.next() % n }

// StackedShuffler returns a deterministic shuffler that moves the given
// elements, in order, to the front and keeps the rest in input order. An
// element of top missing from the input is ignored. It exists so tests can
// arrange a deal.
func StackedShuffler[T comparable](top ...T) Shuffler[T] {
	return func(in []T) []T {
		rest := make([]T, len(in))
		copy(rest, in)
		out := make([]T, 0, len(in))
		for _, want := range top {
			for i, v := range rest {
				if v == want {
					out = append(out, v)
					rest = append(rest[:i], rest[i+1:]...)
					break
				}
			}
		}
		return append(out, rest...)
	}
}
