package hyperloglog

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecompose(t *testing.T) {
	for _, tc := range []struct {
		x          uint64
		b          uint8
		index, rho uint64
	}{
		{x: 1 << 63, b: 0, index: 0, rho: 1},
		{x: 1, b: 0, index: 0, rho: 64},
		{x: 0, b: 0, index: 0, rho: 65},
		{x: 0x4000000000000000, b: 2, index: 1, rho: 63},
		{x: 0xA000000000000000, b: 2, index: 2, rho: 1},
		{x: 0xD000000000000000, b: 2, index: 3, rho: 2},
		{x: 1, b: 2, index: 0, rho: 62},
		{x: 0, b: 16, index: 0, rho: 49},
		{x: 0xFFFF000000000000, b: 16, index: 0xFFFF, rho: 49},
		{x: 0x0001800000000000, b: 16, index: 1, rho: 1},
		{x: 1, b: 63, index: 0, rho: 1},
		{x: 0, b: 63, index: 0, rho: 2},
		{x: 0, b: 64, index: 0, rho: 1},
		{x: math.MaxUint64, b: 64, index: math.MaxUint64, rho: 1},
	} {
		t.Run(fmt.Sprintf("x=%#x/b=%d", tc.x, tc.b), func(t *testing.T) {
			index, rho := decompose(tc.x, tc.b)
			require.Equal(t, tc.index, index)
			require.Equal(t, tc.rho, rho)
		})
	}
}

// A zero run reaching the end of the hash stops at the range boundary.
func TestDecomposeAllZeroTail(t *testing.T) {
	for b := uint8(0); b <= 64; b++ {
		_, rho := decompose(0, b)
		require.Equal(t, uint64(64-b)+1, rho, "b=%d", b)
	}
}

func TestAlpha(t *testing.T) {
	require.Equal(t, 0.673, alpha(16))
	require.Equal(t, 0.697, alpha(32))
	require.Equal(t, 0.709, alpha(64))
	require.InDelta(t, 0.7213/(1+1.079/1024), alpha(1024), 1e-12)
}

func TestRawEstimateLargeBuckets(t *testing.T) {
	est := rawEstimate(4, func(uint64) uint64 { return 65 })
	require.False(t, math.IsInf(est, 0))
	require.InEpsilon(t, alpha(4)*16/(4*math.Exp2(-65)), est, 1e-12)
}
