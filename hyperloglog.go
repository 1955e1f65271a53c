// Package hyperloglog implements the HyperLogLog cardinality estimation
// algorithm and a space-optimized variant, Presto, that stores each bucket as a
// fixed-width dense part plus an overflow part.
// These algorithms estimate the number of distinct keys in a stream using
// constant memory per bucket. Both estimators report the uncorrected raw
// estimate, without small or large range corrections.
//
// HyperLogLog is described here:
// http://algo.inria.fr/flajolet/Publications/FlFuGaMe07.pdf
//
// Estimators are not safe for concurrent use.
package hyperloglog

type HyperLogLog[K any] struct {
	hash        HashFunc[K]
	reg         []uint8 // rho never exceeds 65
	m           uint64
	p           uint8
	cardinality float64
}

// New returns a new initialized HyperLogLog using hash to turn keys into
// 64-bit values. A precision below zero is treated as zero, a single bucket.
func New[K any](precision int, hash HashFunc[K]) (*HyperLogLog[K], error) {
	p, err := checkParams(precision, hash)
	if err != nil {
		return nil, err
	}

	h := &HyperLogLog[K]{}
	h.hash = hash
	h.p = p
	h.m = 1 << p
	h.reg = make([]uint8, h.m)
	return h, nil
}

// Clear sets HyperLogLog h back to its initial state.
func (h *HyperLogLog[K]) Clear() {
	h.reg = make([]uint8, h.m)
	h.cardinality = 0
}

// Add hashes key and adds it to HyperLogLog h.
func (h *HyperLogLog[K]) Add(key K) {
	h.AddHash(h.hash(key))
}

// AddHash adds a new hash to HyperLogLog h.
func (h *HyperLogLog[K]) AddHash(x uint64) {
	i, rho := decompose(x, h.p)
	if v := uint8(rho); v > h.reg[i] {
		h.reg[i] = v
	}
}

// ComputeCardinality recomputes the estimate, caches it and returns it.
func (h *HyperLogLog[K]) ComputeCardinality() float64 {
	h.cardinality = rawEstimate(h.m, h.Bucket)
	return h.cardinality
}

// Cardinality returns the estimate from the last call to ComputeCardinality.
func (h *HyperLogLog[K]) Cardinality() float64 {
	return h.cardinality
}

// Bucket returns the largest leftmost-one position seen in bucket i.
func (h *HyperLogLog[K]) Bucket(i uint64) uint64 {
	return uint64(h.reg[i])
}

func (h *HyperLogLog[K]) NumBuckets() int {
	return int(h.m)
}

func (h *HyperLogLog[K]) Precision() int {
	return int(h.p)
}
