package tuning

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHarmonicSeries(t *testing.T) {
	assert.Equal(t, []float64{1, 1.5}, HarmonicSeries(2))
	assert.InDeltaSlice(t, []float64{1, 4.0 / 3, 5.0 / 3}, HarmonicSeries(3), 1e-12)
	for n := 2; n <= 32; n++ {
		s := HarmonicSeries(n)
		require.Len(t, s, n)
		assert.Equal(t, 1.0, s[0])
		assert.True(t, sort.Float64sAreSorted(s), "n=%d", n)
	}
	assert.Nil(t, HarmonicSeries(0))
}

func TestSubharmonicSeries(t *testing.T) {
	assert.InDeltaSlice(t, []float64{1, 5.0 / 4, 5.0 / 3}, SubharmonicSeries(3), 1e-12)
	for n := 2; n <= 32; n++ {
		s := SubharmonicSeries(n)
		require.Len(t, s, n)
		assert.Equal(t, 1.0, s[0])
		assert.True(t, sort.Float64sAreSorted(s), "n=%d", n)
		assert.Less(t, s[n-1], 2.0)
	}
}

func TestHarmonicSubharmonicSeries(t *testing.T) {
	// 1, 4/3, 5/3 and 1, 5/4, 5/3 share two values
	assert.InDeltaSlice(t, []float64{1, 5.0 / 4, 4.0 / 3, 5.0 / 3}, HarmonicSubharmonicSeries(3), 1e-12)
	s := HarmonicSubharmonicSeries(16)
	assert.Equal(t, 1.0, s[0])
	assert.True(t, sort.Float64sAreSorted(s))
	for i := 1; i < len(s); i++ {
		assert.Greater(t, s[i]-s[i-1], ratioEpsilon)
	}
}

func TestHexany(t *testing.T) {
	assert.InDeltaSlice(t, []float64{1, 7.0 / 6, 5.0 / 4, 35.0 / 24, 5.0 / 3, 7.0 / 4},
		Hexany([4]float64{1, 3, 5, 7}), 1e-12)
	for _, g := range [][4]float64{
		{1, 3, 5, 7}, {1, 3, 5, 15}, {3, 2.111, 5.111, 8.111}, {9, 25, 49, 81}, {1, 45, 135, 225},
	} {
		s := Hexany(g)
		require.Len(t, s, 6)
		assert.Equal(t, 1.0, s[0])
		assert.True(t, sort.Float64sAreSorted(s))
		for _, r := range s {
			assert.GreaterOrEqual(t, r, 1.0)
			assert.Less(t, r, 2.0)
		}
	}
}

func TestDekany(t *testing.T) {
	for _, g := range [][5]float64{{1, 3, 5, 9, 81}, {1, 3, 5, 7, 11}} {
		s := Dekany(g)
		require.Len(t, s, 10)
		assert.Equal(t, 1.0, s[0])
		assert.True(t, sort.Float64sAreSorted(s))
	}
}

func TestEqualTemperament(t *testing.T) {
	s := EqualTemperament(31)
	require.Len(t, s, 31)
	assert.Equal(t, 1.0, s[0])
	assert.Equal(t, math.Pow(2, 30.0/31), s[30])
	assert.True(t, sort.Float64sAreSorted(s))
	assert.InDelta(t, math.Pow(2, 7.0/12), EqualTemperament(12)[7], 1e-15)
}

func TestMosDegrees(t *testing.T) {
	fifth := math.Log2(1.5)
	var sizes []int
	for level := 0; level < 6; level++ {
		sizes = append(sizes, mosDegrees(fifth, level))
	}
	assert.Equal(t, []int{2, 3, 5, 7, 12, 17}, sizes)
	// a rational generator stops growing
	assert.Equal(t, 4, mosDegrees(0.25, 7))
}

func TestMomentOfSymmetry(t *testing.T) {
	fifth := math.Log2(1.5)
	pentatonic := MomentOfSymmetry(fifth, 2, 0)
	require.Len(t, pentatonic, 5)
	assert.InDeltaSlice(t, []float64{1, 9.0 / 8, 81.0 / 64, 3.0 / 2, 27.0 / 16}, pentatonic, 1e-12)

	// rotating to the second degree starts the scale on 9/8
	rotated := MomentOfSymmetry(fifth, 2, 1)
	require.Len(t, rotated, 5)
	assert.Equal(t, 1.0, rotated[0])
	assert.InDelta(t, (81.0/64)/(9.0/8), rotated[1], 1e-12)

	for _, g := range []float64{0.2641, 0.292787, 0.618033, 0.855088} {
		for level := 0; level <= 7; level++ {
			s := MomentOfSymmetry(g, level, 0)
			assert.GreaterOrEqual(t, len(s), min(level+1, 2), "g=%v level=%d", g, level)
			assert.Equal(t, 1.0, s[0])
			assert.True(t, sort.Float64sAreSorted(s))
			for i := 1; i < len(s); i++ {
				assert.Greater(t, s[i]-s[i-1], ratioEpsilon)
			}
			assert.Less(t, s[len(s)-1], 2.0)
		}
	}
	// deterministic
	assert.Equal(t, MomentOfSymmetry(0.2641, 5, 2), MomentOfSymmetry(0.2641, 5, 2))
}

func TestOctaveReduce(t *testing.T) {
	assert.Equal(t, 1.5, octaveReduce(3))
	assert.Equal(t, 1.5, octaveReduce(0.75))
	assert.Equal(t, 1.0, octaveReduce(2))
	assert.Equal(t, 0.0, octaveReduce(0))
}

func TestPosMod(t *testing.T) {
	assert.Equal(t, 7.0, posMod(7, 12))
	assert.Equal(t, 7.0, posMod(19, 12))
	assert.Equal(t, 7.0, posMod(-5, 12))
}
