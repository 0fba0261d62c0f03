package world

import "math/rand"

// RandInt returns a random int in [0, n).
func RandInt(n int) int {
	if n <= 0 {
		return 0
	}
	return rand.Intn(n)
}

// RandFloat returns a random float64 in [0.0, 1.0).
func RandFloat() float64 {
	return rand.Float64()
}

// RandRange returns a random int64 in [min, max] inclusive.
func RandRange(min, max int64) int64 {
	if max <= min {
		return min
	}
	return min + rand.Int63n(max-min+1)
}

// RandBetween returns a random int in [min, max] inclusive.
func RandBetween(min, max int) int {
	if max <= min {
		return min
	}
	return min + rand.Intn(max-min+1)
}
