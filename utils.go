package hyperloglog

import (
	"math"

	bits "github.com/dgryski/go-bits"
)

const hashBits = 64

func alpha(m uint64) float64 {
	switch m {
	case 16:
		return 0.673
	case 32:
		return 0.697
	case 64:
		return 0.709
	}
	return 0.7213 / (1 + 1.079/float64(m))
}

// clampPrecision maps any non-positive precision to 0.
func clampPrecision(p int) uint8 {
	if p <= 0 {
		return 0
	}
	return uint8(p)
}

// decompose splits x into the bucket index held by its top b bits and the
// position of the leftmost one among the remaining 64-b bits. When those bits
// are all zero the position is one past the end of the range, 64-b+1.
func decompose(x uint64, b uint8) (index uint64, rho uint64) {
	if b > 0 {
		index = x >> (hashBits - b) // {x63,...,x64-b}
	}
	w := x << b // {x63-b,...,x0}, zero filled; shifts of 64 yield 0
	width := uint64(hashBits - b)
	if w == 0 {
		return index, width + 1
	}
	return index, bits.Clz(w) + 1
}

// rawEstimate returns alpha * m^2 / sum(2^-at(i)) over the m buckets.
// No small or large range correction is applied.
func rawEstimate(m uint64, at func(i uint64) uint64) float64 {
	sum := 0.0
	for i := uint64(0); i < m; i++ {
		sum += math.Exp2(-float64(at(i)))
	}
	fm := float64(m)
	return alpha(m) * fm * fm / sum
}
