package tuning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(b *Bank) []string {
	var s []string
	for _, t := range b.Tunings {
		s = append(s, t.Name)
	}
	return s
}

func TestTuningEncoding(t *testing.T) {
	assert.Equal(t, "1,1.5,1.25", NewTuning("x", []float64{1, 1.5, 1.25}).Encoding())
	assert.Equal(t, "", NewTuning("x", nil).Encoding())

	a := NewTuning("a", []float64{1, 1.5})
	assert.Equal(t, a.Key(), NewTuning("a", []float64{1, 1.5}).Key())
	assert.NotEqual(t, a.Key(), NewTuning("b", []float64{1, 1.5}).Key())
	assert.NotEqual(t, a.Key(), NewTuning("a", []float64{1, 1.5000001}).Key())
}

func TestNewTuningCopies(t *testing.T) {
	set := []float64{1, 1.5}
	tu := NewTuning("a", set)
	set[1] = 2
	assert.Equal(t, 1.5, tu.MasterSet[1])
}

func TestSortTypeNames(t *testing.T) {
	for _, st := range []SortType{SortByNoteCount, SortByName, SortByUserOrder} {
		got, ok := ParseSortType(st.String())
		assert.True(t, ok)
		assert.Equal(t, st, got)
	}
	got, ok := ParseSortType("NAME")
	assert.True(t, ok)
	assert.Equal(t, SortByName, got)
	_, ok = ParseSortType("size")
	assert.False(t, ok)
	assert.Equal(t, "SortType(9)", SortType(9).String())
}

func TestSortTuningsByNoteCount(t *testing.T) {
	b := &Bank{Tunings: []*Tuning{
		NewTuning("Nine", HarmonicSeries(9)),
		NewTuning("Twelve", HarmonicSeries(12)),
		NewTuning("Five", EqualTemperament(5)),
		TwelveET(),
		TwelveET(),
	}}
	sortTunings(b, SortByNoteCount)
	// counts are compared as unpadded strings
	assert.Equal(t, []string{DefaultName, "Twelve", "Five", "Nine"}, names(b))
}

func TestSortTuningsByName(t *testing.T) {
	b := &Bank{Tunings: []*Tuning{
		NewTuning("b", []float64{1, 1.5}),
		NewTuning("a", []float64{1, 1.25}),
		NewTuning("a", []float64{1, 1.125}),
	}}
	sortTunings(b, SortByName)
	require.Equal(t, []string{DefaultName, "a", "a", "b"}, names(b))
	assert.Equal(t, 1.125, b.Tunings[1].MasterSet[1])
}

func TestSortTuningsByUserOrder(t *testing.T) {
	b := &Bank{Tunings: []*Tuning{
		{Name: "x", MasterSet: []float64{1}, Order: 2},
		{Name: "y", MasterSet: []float64{1}, Order: 10},
		{Name: "z", MasterSet: []float64{1}, Order: 1},
	}}
	sortTunings(b, SortByUserOrder)
	// "10y" sorts before "1z"
	assert.Equal(t, []string{DefaultName, "y", "z", "x"}, names(b))
}

func TestSortTuningsInvariants(t *testing.T) {
	for _, st := range []SortType{SortByNoteCount, SortByName, SortByUserOrder} {
		b := newCuratedBank()
		sortTunings(b, st)
		require.Equal(t, DefaultName, b.Tunings[0].Name, st.String())
		assert.Equal(t, TwelveET().MasterSet, b.Tunings[0].MasterSet)
		n := 0
		for _, tu := range b.Tunings {
			if tu.Key() == TwelveET().Key() {
				n++
			}
		}
		assert.Equal(t, 1, n)

		// sorting twice changes nothing
		before := b.clone()
		sortTunings(b, st)
		assert.Equal(t, before, b)
	}

	empty := &Bank{}
	sortTunings(empty, SortByName)
	assert.Equal(t, []string{DefaultName}, names(empty))
}

func TestBankClone(t *testing.T) {
	b := &Bank{Name: "User", Order: 1, IsEditable: true, Tunings: []*Tuning{NewTuning("a", []float64{1, 2})}}
	c := b.clone()
	assert.Equal(t, b, c)
	c.Tunings[0].MasterSet[1] = 3
	assert.Equal(t, 2.0, b.Tunings[0].MasterSet[1])
	assert.Equal(t, 0, b.indexOf(NewTuning("a", []float64{1, 2}).Key()))
	assert.Equal(t, -1, b.indexOf(NewTuning("a", []float64{1, 3}).Key()))
}
