// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

// Package bloom implements the fixed-size probabilistic set used to compress
// per-account block lists. A Filter answers membership queries with one-sided
// error: MightContain never returns false for an added item (no false
// negatives) but may return true for items that were never added (bounded
// false positives).
//
// Filters are immutable by convention once built for a sync pass: there is no
// removal operation, and updating an account's blocks means rebuilding its
// filter from a freshly fetched full list.
package bloom

import (
	"crypto/sha256"
	"encoding/binary"
	"math"
)

// Defaults chosen for roughly a 0.1% false-positive rate at expected load.
const (
	DefaultBitsPerElement = 15
	DefaultHashCount      = 10

	// minSizeBits is the floor for the bit vector so that tiny block lists
	// still get a usable filter.
	minSizeBits = 64
)

// Params tunes the size/accuracy tradeoff of a new Filter. Zero values fall
// back to the package defaults.
type Params struct {
	BitsPerElement int
	HashCount      int
}

// Filter is a bloom filter over string items. The exported fields exist for
// JSON persistence; callers must treat them as read-only and mutate the
// filter only through Add.
type Filter struct {
	Bits         []byte `json:"bits"`
	SizeBits     int    `json:"size_bits"`
	HashCount    int    `json:"hash_count"`
	ElementCount int    `json:"element_count"`
}

// New returns an empty Filter sized for expectedElements items.
// The bit vector holds max(64, expectedElements×BitsPerElement) bits,
// rounded up to a whole number of bytes.
func New(expectedElements int, params Params) *Filter {
	bitsPerElement := params.BitsPerElement
	if bitsPerElement <= 0 {
		bitsPerElement = DefaultBitsPerElement
	}
	hashCount := params.HashCount
	if hashCount <= 0 {
		hashCount = DefaultHashCount
	}

	sizeBits := expectedElements * bitsPerElement
	if sizeBits < minSizeBits {
		sizeBits = minSizeBits
	}
	sizeBytes := (sizeBits + 7) / 8

	return &Filter{
		Bits:      make([]byte, sizeBytes),
		SizeBits:  sizeBytes * 8,
		HashCount: hashCount,
	}
}

// Add inserts item into the filter. ElementCount only ever increases; items
// cannot be removed without rebuilding the filter from scratch.
func (f *Filter) Add(item string) {
	h1, h2 := hashPair(item)
	for i := 0; i < f.HashCount; i++ {
		pos := f.position(h1, h2, i)
		f.Bits[pos/8] |= 1 << (pos % 8)
	}
	f.ElementCount++
}

// MightContain reports whether item is possibly a member. A false result is
// definitive; a true result may be a false positive.
func (f *Filter) MightContain(item string) bool {
	h1, h2 := hashPair(item)
	for i := 0; i < f.HashCount; i++ {
		pos := f.position(h1, h2, i)
		if f.Bits[pos/8]&(1<<(pos%8)) == 0 {
			return false
		}
	}
	return true
}

// EstimateFalsePositiveRate computes (1 − e^(−k·n/m))^k for the current
// element count. Diagnostic only; correctness never depends on it.
func (f *Filter) EstimateFalsePositiveRate() float64 {
	if f.SizeBits == 0 {
		return 1
	}
	k := float64(f.HashCount)
	n := float64(f.ElementCount)
	m := float64(f.SizeBits)
	return math.Pow(1-math.Exp(-k*n/m), k)
}

// position derives the i-th bit position using the Kirsch–Mitzenmacher
// double-hashing scheme with a quadratic term: (h1 + i·h2 + i²) mod size.
// The quadratic term avoids the short cycles a plain linear combination can
// produce when h2 shares a factor with the filter size.
func (f *Filter) position(h1, h2 uint32, i int) int {
	ui := uint64(i)
	pos := (uint64(h1) + ui*uint64(h2) + ui*ui) % uint64(f.SizeBits)
	return int(pos)
}

// hashPair derives two independent 32-bit hashes of item from a single
// SHA-256 digest (first and second 4 bytes, big-endian).
func hashPair(item string) (uint32, uint32) {
	sum := sha256.Sum256([]byte(item))
	return binary.BigEndian.Uint32(sum[0:4]), binary.BigEndian.Uint32(sum[4:8])
}
