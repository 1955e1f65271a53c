package hyperloglog

import "github.com/pkg/errors"

// MaxPrecision is the largest accepted precision, 2^26 buckets.
const MaxPrecision = 26

// Estimator is implemented by both HyperLogLog and Presto. Implementations are
// not safe for concurrent use; callers that share one must serialize access.
type Estimator[K any] interface {
	// Add observes key.
	Add(key K)
	// AddHash observes an already hashed key.
	AddHash(x uint64)
	// ComputeCardinality recomputes the estimate from the current buckets,
	// caches it and returns it.
	ComputeCardinality() float64
	// Cardinality returns the estimate cached by the last ComputeCardinality.
	Cardinality() float64
	// NumBuckets returns the bucket count, always a power of two.
	NumBuckets() int
}

var (
	_ Estimator[string] = (*HyperLogLog[string])(nil)
	_ Estimator[string] = (*Presto[string])(nil)
)

func checkParams[K any](precision int, hash HashFunc[K]) (uint8, error) {
	if precision > MaxPrecision {
		return 0, errors.Errorf("precision must be at most %d, got %d", MaxPrecision, precision)
	}
	if hash == nil {
		return 0, errors.New("hash function must not be nil")
	}
	return clampPrecision(precision), nil
}

// NewString returns a HyperLogLog over strings hashed with XXHashString.
func NewString(precision int) (*HyperLogLog[string], error) {
	return New[string](precision, XXHashString)
}

// NewInt64 returns a HyperLogLog over int64 keys hashed with Murmur3Int64.
func NewInt64(precision int) (*HyperLogLog[int64], error) {
	return New[int64](precision, Murmur3Int64)
}

// NewPrestoString returns a Presto estimator over strings hashed with XXHashString.
func NewPrestoString(leadingBits int) (*Presto[string], error) {
	return NewPresto[string](leadingBits, XXHashString)
}

// NewPrestoInt64 returns a Presto estimator over int64 keys hashed with Murmur3Int64.
func NewPrestoInt64(leadingBits int) (*Presto[int64], error) {
	return NewPresto[int64](leadingBits, Murmur3Int64)
}
