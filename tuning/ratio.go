package tuning

import (
	"math"
	"sort"

	"github.com/viterin/vek"
)

// two ratios closer than this are treated as the same scale degree
const ratioEpsilon = 1e-9

// modulo where result is always in the range [0, y)
func posMod(x, y float64) float64 {
	x = math.Mod(x, y)
	if x < 0 {
		x += y
	}
	return x
}

// divide every ratio by the first one, so that index 0 is unison
func normalize(set []float64) []float64 {
	if len(set) == 0 || set[0] == 0 {
		return set
	}
	return vek.DivNumber(set, set[0])
}

// move a ratio into the octave [1, 2)
func octaveReduce(r float64) float64 {
	if r <= 0 || math.IsInf(r, 0) || math.IsNaN(r) {
		return r
	}
	for r >= 2 {
		r /= 2
	}
	for r < 1 {
		r *= 2
	}
	return r
}

// sort ascending and drop entries within ratioEpsilon of their predecessor
func sortedUnique(set []float64) []float64 {
	out := append([]float64(nil), set...)
	sort.Float64s(out)
	n := 0
	for i, r := range out {
		if i > 0 && math.Abs(r-out[n-1]) < ratioEpsilon {
			continue
		}
		out[n] = r
		n++
	}
	return out[:n]
}

// HarmonicSeries returns the n harmonics n, n+1, ..., 2n-1 divided by n. A
// dyad is harmonics 2:3, a triad 3:4:5 and so on.
func HarmonicSeries(n int) []float64 {
	if n < 1 {
		return nil
	}
	set := make([]float64, n)
	for i := range set {
		set[i] = float64(n + i)
	}
	return normalize(set)
}

// SubharmonicSeries is the reciprocal of HarmonicSeries: 1/k for k in
// [n, 2n), scaled so the lowest term is unison and sorted ascending.
func SubharmonicSeries(n int) []float64 {
	if n < 1 {
		return nil
	}
	set := make([]float64, n)
	for i := range set {
		set[i] = 1 / float64(2*n-1-i)
	}
	return normalize(set)
}

// HarmonicSubharmonicSeries merges both series of size n.
func HarmonicSubharmonicSeries(n int) []float64 {
	if n < 1 {
		return nil
	}
	set := append(HarmonicSeries(n), SubharmonicSeries(n)...)
	return normalize(sortedUnique(set))
}

// Hexany returns the six pairwise products of four generators, divided by the
// smallest product and reduced into one octave.
func Hexany(g [4]float64) []float64 {
	return combinationProductSet(g[:])
}

// Dekany is the ten-note analogue of Hexany over five generators.
func Dekany(g [5]float64) []float64 {
	return combinationProductSet(g[:])
}

// all 2-of-n products, normalized to the minimum and octave reduced. equal
// products are kept so that the result always has C(n,2) entries.
func combinationProductSet(g []float64) []float64 {
	var products []float64
	for i := 0; i < len(g); i++ {
		for j := i + 1; j < len(g); j++ {
			products = append(products, g[i]*g[j])
		}
	}
	if len(products) == 0 {
		return nil
	}
	products = vek.DivNumber(products, vek.Min(products))
	for i, p := range products {
		products[i] = octaveReduce(p)
	}
	sort.Float64s(products)
	return products
}

// EqualTemperament divides the octave into n equal steps.
func EqualTemperament(n int) []float64 {
	if n < 1 {
		return nil
	}
	set := make([]float64, n)
	for k := range set {
		set[k] = math.Pow(2, float64(k)/float64(n))
	}
	return set
}

// mosDegrees returns the scale size of a moment of symmetry generated by g
// (in octaves) at the given level. The sizes are the denominators met when
// descending the Stern-Brocot tree towards g: 2, 3, 5, 7, 12, 17... for a
// fifth.
func mosDegrees(g float64, level int) int {
	ln, ld := 0, 1 // left bound 0/1
	rn, rd := 1, 1 // right bound 1/1
	d := 1
	for i := 0; i <= level; i++ {
		mn, md := ln+rn, ld+rd
		d = md
		m := float64(mn) / float64(md)
		if math.Abs(g-m) < ratioEpsilon {
			break // g is rational, the tree ends here
		} else if g < m {
			rn, rd = mn, md
		} else {
			ln, ld = mn, md
		}
	}
	return d
}

// MomentOfSymmetry stacks a generator (a fraction of the octave in log2
// units, e.g. 0.585 for a fifth) until the scale for the level is complete,
// reduces every step into the octave and sorts. Murchana rotates the scale so
// that degree murchana becomes the new unison.
func MomentOfSymmetry(generator float64, level, murchana int) []float64 {
	g := posMod(generator, 1)
	if g == 0 {
		return []float64{1}
	}
	level = min(max(level, 0), 7)
	n := mosDegrees(g, level)
	var pcs []float64
	for i := 0; i < n; i++ {
		pcs = append(pcs, posMod(float64(i)*g, 1))
	}
	pcs = sortedUnique(pcs)
	// floating point drift can leave a step just below the octave
	if len(pcs) > 1 && 1-pcs[len(pcs)-1] < ratioEpsilon {
		pcs = pcs[:len(pcs)-1]
	}
	m := min(max(murchana, 0), len(pcs)-1)
	root := pcs[m]
	for i, pc := range pcs {
		pcs[i] = posMod(pc-root, 1)
	}
	pcs = sortedUnique(pcs)
	set := make([]float64, len(pcs))
	for i, pc := range pcs {
		set[i] = math.Pow(2, pc)
	}
	return set
}
