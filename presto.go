package hyperloglog

import (
	"github.com/bits-and-blooms/bitset"
)

// DenseWidth is the number of bits each Presto dense bucket holds.
const DenseWidth = 4

const denseMask = 1<<DenseWidth - 1

// Presto is a HyperLogLog whose buckets are split in two: the low DenseWidth
// bits of each value are packed into a shared bitset, and the remaining high
// bits are kept in a parallel overflow slice. Most bucket values fit in the
// dense part, so the overflow part is almost always zero.
//
// For every bucket i the stored value is overflow[i]<<DenseWidth | dense[i].
type Presto[K any] struct {
	hash        HashFunc[K]
	dense       *bitset.BitSet
	overflow    []uint8
	m           uint64
	leadingBits uint8
	cardinality float64
}

// NewPresto returns a new initialized Presto estimator using hash to turn keys
// into 64-bit values. leadingBits below zero are treated as zero.
func NewPresto[K any](leadingBits int, hash HashFunc[K]) (*Presto[K], error) {
	b, err := checkParams(leadingBits, hash)
	if err != nil {
		return nil, err
	}

	h := &Presto[K]{}
	h.hash = hash
	h.leadingBits = b
	h.m = 1 << b
	h.dense = bitset.New(uint(h.m * DenseWidth))
	h.overflow = make([]uint8, h.m)
	return h, nil
}

// Clear sets Presto h back to its initial state.
func (h *Presto[K]) Clear() {
	h.dense.ClearAll()
	h.overflow = make([]uint8, h.m)
	h.cardinality = 0
}

// Add hashes key and adds it to Presto h.
func (h *Presto[K]) Add(key K) {
	h.AddHash(h.hash(key))
}

// AddHash adds a new hash to Presto h. Both halves of the bucket are replaced
// together, and only when rho is strictly larger than the stored value.
func (h *Presto[K]) AddHash(x uint64) {
	i, rho := decompose(x, h.leadingBits)
	if rho <= h.Bucket(i) {
		return
	}
	h.setDense(i, rho&denseMask)
	h.overflow[i] = uint8(rho >> DenseWidth)
}

// ComputeCardinality recomputes the estimate, caches it and returns it.
func (h *Presto[K]) ComputeCardinality() float64 {
	h.cardinality = rawEstimate(h.m, h.Bucket)
	return h.cardinality
}

// Cardinality returns the estimate from the last call to ComputeCardinality.
func (h *Presto[K]) Cardinality() float64 {
	return h.cardinality
}

// Bucket returns the value of bucket i recombined from its dense and overflow parts.
func (h *Presto[K]) Bucket(i uint64) uint64 {
	return h.OverflowBucket(i)<<DenseWidth | h.DenseBucket(i)
}

// DenseBucket returns the low DenseWidth bits of bucket i.
func (h *Presto[K]) DenseBucket(i uint64) uint64 {
	var v uint64
	base := uint(i * DenseWidth)
	for j := uint(0); j < DenseWidth; j++ {
		if h.dense.Test(base + j) {
			v |= 1 << j
		}
	}
	return v
}

// OverflowBucket returns the bits of bucket i above DenseWidth.
func (h *Presto[K]) OverflowBucket(i uint64) uint64 {
	return uint64(h.overflow[i])
}

func (h *Presto[K]) setDense(i, v uint64) {
	base := uint(i * DenseWidth)
	for j := uint(0); j < DenseWidth; j++ {
		h.dense.SetTo(base+j, v>>j&1 == 1)
	}
}

func (h *Presto[K]) NumBuckets() int {
	return int(h.m)
}

func (h *Presto[K]) LeadingBits() int {
	return int(h.leadingBits)
}
