package tuning

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DefaultName is the name of the canonical 12-tone equal temperament tuning.
const DefaultName = "12ET"

// fields in these types are exported to expose them to the JSON encoder

// Tuning is a named scale. MasterSet holds frequency ratios relative to the
// reference pitch, conventionally starting at unison.
type Tuning struct {
	Name      string    `json:"name"`
	MasterSet []float64 `json:"masterSet"`
	Order     int       `json:"order,omitempty"`
}

// Key identifies a tuning for duplicate detection: two tunings are the same
// if both their names and their encoded master sets are equal.
type Key struct {
	Name     string
	Encoding string
}

// NewTuning returns a tuning with its own copy of set.
func NewTuning(name string, set []float64) *Tuning {
	return &Tuning{Name: name, MasterSet: append([]float64(nil), set...)}
}

// TwelveET returns the canonical default tuning.
func TwelveET() *Tuning {
	return &Tuning{Name: DefaultName, MasterSet: EqualTemperament(12)}
}

// NPO is the number of notes per octave, i.e. the size of the master set.
func (t *Tuning) NPO() int { return len(t.MasterSet) }

// Encoding is a stable string form of the master set. Every ratio is written
// with the shortest representation that parses back to the same float64.
func (t *Tuning) Encoding() string {
	var b strings.Builder
	for i, r := range t.MasterSet {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(r, 'g', -1, 64))
	}
	return b.String()
}

// Key returns the duplicate detection key of the tuning.
func (t *Tuning) Key() Key {
	return Key{Name: t.Name, Encoding: t.Encoding()}
}

// return a deep copy of the tuning
func (t *Tuning) clone() *Tuning {
	t2 := NewTuning(t.Name, t.MasterSet)
	t2.Order = t.Order
	return t2
}

// Bank is an ordered, named collection of tunings.
type Bank struct {
	Name       string    `json:"name"`
	Order      int       `json:"order"`
	IsEditable bool      `json:"isEditable"`
	Tunings    []*Tuning `json:"tunings"`
}

// return a deep copy of the bank
func (b *Bank) clone() *Bank {
	b2 := &Bank{Name: b.Name, Order: b.Order, IsEditable: b.IsEditable}
	b2.Tunings = make([]*Tuning, len(b.Tunings))
	for i, t := range b.Tunings {
		b2.Tunings[i] = t.clone()
	}
	return b2
}

// return the index of the first tuning matching key, or -1
func (b *Bank) indexOf(k Key) int {
	for i, t := range b.Tunings {
		if t.Key() == k {
			return i
		}
	}
	return -1
}

// SortType selects the key tunings are sorted by.
type SortType int

const (
	SortByNoteCount SortType = iota
	SortByName
	SortByUserOrder
)

var sortTypeNames = []string{"npo", "name", "order"}

func (st SortType) String() string {
	if st < 0 || int(st) >= len(sortTypeNames) {
		return fmt.Sprintf("SortType(%d)", int(st))
	}
	return sortTypeNames[st]
}

// ParseSortType is the inverse of SortType.String.
func ParseSortType(s string) (SortType, bool) {
	for i, name := range sortTypeNames {
		if strings.EqualFold(s, name) {
			return SortType(i), true
		}
	}
	return SortByNoteCount, false
}

// return the composite sort key of a tuning. counts and orders are not zero
// padded, so "12" sorts before "9".
func (st SortType) key(t *Tuning) string {
	switch st {
	case SortByName:
		return t.Name + t.Encoding()
	case SortByUserOrder:
		return strconv.Itoa(t.Order) + t.Name + t.Encoding()
	default:
		return strconv.Itoa(t.NPO()) + t.Name + t.Encoding()
	}
}

// sortTunings removes every copy of 12ET from the bank, stable sorts the rest
// by the sort type's key and puts a fresh 12ET at the top.
func sortTunings(b *Bank, st SortType) {
	twelve := TwelveET()
	twelveKey := twelve.Key()
	tunings := make([]*Tuning, 0, len(b.Tunings)+1)
	for _, t := range b.Tunings {
		if t.Key() != twelveKey {
			tunings = append(tunings, t)
		}
	}
	keys := make(map[*Tuning]string, len(tunings))
	for _, t := range tunings {
		keys[t] = st.key(t)
	}
	sort.SliceStable(tunings, func(i, j int) bool {
		return keys[tunings[i]] < keys[tunings[j]]
	})
	b.Tunings = append([]*Tuning{twelve}, tunings...)
}
