package tuning

import (
	"log/slog"
	"math"
	"sync"

	"github.com/viterin/vek"
	"gitlab.com/gomidi/midi/writer"
)

const (
	numMIDINotes     = 128
	middleCNote      = 60
	defaultA4        = 440.0
	referencePitchID = "A4 frequency"
)

// FrequencyTableBuilder receives the whole master set of every newly
// selected tuning.
type FrequencyTableBuilder interface {
	BuildTable(masterSet []float64)
}

// ReferencePitch is the synthesis parameter the tuning is anchored to.
type ReferencePitch interface {
	Value() float64
	SetValue(v float64)
	Default() float64
}

// Parameter is a named float parameter with a factory default and a range.
type Parameter struct {
	Name     string
	Min, Max float64

	mu    sync.Mutex
	def   float64
	value float64
}

// NewReferencePitch returns the "A4 frequency" parameter.
func NewReferencePitch(def, lo, hi float64) *Parameter {
	if lo > hi {
		lo, hi = hi, lo
	}
	def = min(max(def, lo), hi)
	return &Parameter{Name: referencePitchID, Min: lo, Max: hi, def: def, value: def}
}

func (p *Parameter) Value() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

// SetValue clamps v to the parameter range.
func (p *Parameter) SetValue(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.value = min(max(v, p.Min), p.Max)
}

func (p *Parameter) Default() float64 { return p.def }

// Table maps MIDI note numbers to frequencies.
type Table struct {
	Scale       []float64 // octave reduced, sorted degrees of the master set
	Frequencies [numMIDINotes]float64
}

// NewTable reduces the master set into one octave and lays it out over the
// MIDI note range, with degree 0 on middle C. a4 sets the pitch of middle C
// to a4 * 2^(-9/12), as in 12ET.
func NewTable(masterSet []float64, a4 float64) *Table {
	t := &Table{}
	for _, r := range masterSet {
		if r > 0 && !math.IsInf(r, 0) && !math.IsNaN(r) {
			t.Scale = append(t.Scale, r)
		}
	}
	if len(t.Scale) == 0 {
		t.Scale = []float64{1}
	}
	t.Scale = normalize(t.Scale)
	for i, r := range t.Scale {
		t.Scale[i] = octaveReduce(r)
	}
	t.Scale = sortedUnique(t.Scale)
	npo := len(t.Scale)
	middleC := a4 * math.Pow(2, -9.0/12)
	for n := range t.Frequencies {
		i := n - middleCNote
		degree := int(posMod(float64(i), float64(npo)))
		octave := math.Floor(float64(i) / float64(npo))
		t.Frequencies[n] = t.Scale[degree] * math.Exp2(octave)
	}
	freqs := vek.MulNumber(t.Frequencies[:], middleC)
	copy(t.Frequencies[:], freqs)
	return t
}

// TableBuilder is the default FrequencyTableBuilder. It keeps the last table
// built and sends it as an MTS bulk dump to every attached MIDI output.
type TableBuilder struct {
	ref     ReferencePitch
	logger  *slog.Logger
	program uint8

	mu      sync.Mutex
	current *Table
	name    string
	outputs []writer.ChannelWriter
}

// NewTableBuilder returns a builder anchored to ref. program is the MTS
// tuning program the dumps are written to.
func NewTableBuilder(ref ReferencePitch, program uint8, logger *slog.Logger) *TableBuilder {
	if logger == nil {
		logger = slog.Default()
	}
	return &TableBuilder{
		ref:     ref,
		logger:  logger,
		program: program & 0x7f,
		current: NewTable(EqualTemperament(12), ref.Value()),
		name:    DefaultName,
	}
}

// Attach adds a MIDI output that receives every table built from now on.
func (tb *TableBuilder) Attach(wr writer.ChannelWriter) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.outputs = append(tb.outputs, wr)
}

// SetName sets the tuning name written into the following bulk dumps.
func (tb *TableBuilder) SetName(name string) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.name = name
}

func (tb *TableBuilder) BuildTable(masterSet []float64) {
	t := NewTable(masterSet, tb.ref.Value())
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.current = t
	for _, wr := range tb.outputs {
		if err := SendBulkDump(wr, tb.program, tb.name, t); err != nil {
			tb.logger.Warn("send tuning dump", "error", err)
		}
	}
}

// Table returns the last table built.
func (tb *TableBuilder) Table() *Table {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.current
}
