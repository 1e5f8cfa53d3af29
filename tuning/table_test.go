package tuning

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/writer"
)

func TestReferencePitch(t *testing.T) {
	p := NewReferencePitch(440, 470, 410)
	assert.Equal(t, 410.0, p.Min)
	assert.Equal(t, 470.0, p.Max)
	assert.Equal(t, 440.0, p.Value())
	p.SetValue(500)
	assert.Equal(t, 470.0, p.Value())
	p.SetValue(300)
	assert.Equal(t, 410.0, p.Value())
	assert.Equal(t, 440.0, p.Default())
	assert.Equal(t, 420.0, NewReferencePitch(400, 420, 460).Default())
}

func TestNewTable12ET(t *testing.T) {
	tab := NewTable(EqualTemperament(12), 440)
	assert.Len(t, tab.Scale, 12)
	assert.InDelta(t, 440, tab.Frequencies[69], 1e-9)
	assert.InDelta(t, 880, tab.Frequencies[81], 1e-9)
	assert.InDelta(t, 440*math.Pow(2, -9.0/12), tab.Frequencies[60], 1e-9)
	for n := 1; n < numMIDINotes; n++ {
		assert.InDelta(t, math.Pow(2, 1.0/12), tab.Frequencies[n]/tab.Frequencies[n-1], 1e-9)
	}
}

func TestNewTableReducesSet(t *testing.T) {
	// unsorted, unnormalized, and spanning more than an octave
	tab := NewTable([]float64{2, 3, 2.5, 4, -1}, 440)
	assert.InDeltaSlice(t, []float64{1, 1.25, 1.5}, tab.Scale, 1e-12)
	c := 440 * math.Pow(2, -9.0/12)
	assert.InDelta(t, c, tab.Frequencies[60], 1e-9)
	assert.InDelta(t, c*1.25, tab.Frequencies[61], 1e-9)
	assert.InDelta(t, c*1.5, tab.Frequencies[62], 1e-9)
	assert.InDelta(t, c*2, tab.Frequencies[63], 1e-9)
	assert.InDelta(t, c*0.75, tab.Frequencies[59], 1e-9)

	assert.Equal(t, []float64{1}, NewTable(nil, 440).Scale)
}

func TestMTSFrequency(t *testing.T) {
	assert.Equal(t, [3]byte{69, 0, 0}, mtsFrequency(440))
	assert.Equal(t, [3]byte{60, 0x40, 0}, mtsFrequency(440*math.Pow(2, -8.5/12)))
	assert.Equal(t, [3]byte{0, 0, 0}, mtsFrequency(1))
	assert.Equal(t, [3]byte{0, 0, 0}, mtsFrequency(0))
	assert.Equal(t, [3]byte{127, 0x7f, 0x7e}, mtsFrequency(1e6))
}

func TestBulkDump(t *testing.T) {
	tab := NewTable(EqualTemperament(12), 440)
	data := BulkDump(3, "12ET", tab)
	require.Len(t, data, 5+mtsNameLength+numMIDINotes*3+1)
	assert.Equal(t, []byte{0x7e, 0x7f, 0x08, 0x01, 3}, data[:5])
	assert.Equal(t, "12ET            ", string(data[5:5+mtsNameLength]))
	a4 := 5 + mtsNameLength + 69*3
	assert.Equal(t, []byte{69, 0, 0}, data[a4:a4+3])

	var sum byte
	for _, b := range data[:len(data)-1] {
		sum ^= b
	}
	assert.Equal(t, sum&0x7f, data[len(data)-1])
	for _, b := range data {
		assert.Less(t, b, byte(0x80))
	}

	long := BulkDump(200, "a name longer than sixteen", tab)
	assert.Equal(t, byte(200&0x7f), long[4])
	assert.Equal(t, "a name longer th", string(long[5:5+mtsNameLength]))
}

func TestSendBulkDump(t *testing.T) {
	var buf bytes.Buffer
	wr := writer.New(&buf)
	tab := NewTable(EqualTemperament(12), 440)
	require.NoError(t, SendBulkDump(wr, 0, "12ET", tab))
	out := buf.Bytes()
	require.NotEmpty(t, out)
	assert.Equal(t, byte(0xf0), out[0])
	assert.Equal(t, byte(0xf7), out[len(out)-1])
	assert.True(t, bytes.Contains(out, BulkDump(0, "12ET", tab)))
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("port closed") }

func TestTableBuilder(t *testing.T) {
	ref := NewReferencePitch(440, 410, 470)
	var logs bytes.Buffer
	tb := NewTableBuilder(ref, 1, slog.New(slog.NewTextHandler(&logs, nil)))
	assert.InDelta(t, 440, tb.Table().Frequencies[69], 1e-9)

	var buf bytes.Buffer
	tb.Attach(writer.New(&buf))
	tb.Attach(writer.New(failWriter{}))
	tb.SetName("Fifths")
	ref.SetValue(415)
	tb.BuildTable([]float64{1, 1.5})
	assert.Equal(t, []float64{1, 1.5}, tb.Table().Scale)
	assert.InDelta(t, 415*math.Pow(2, -9.0/12), tb.Table().Frequencies[60], 1e-9)
	assert.True(t, bytes.Contains(buf.Bytes(), BulkDump(1, "Fifths", tb.Table())))
	assert.Contains(t, logs.String(), "send tuning dump")
}

func TestExportSMF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.mid")
	tab := NewTable(EqualTemperament(12), 440)
	require.NoError(t, ExportSMF(path, 0, "12ET", tab))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("MThd")))
	assert.True(t, bytes.Contains(data, BulkDump(0, "12ET", tab)))

	err = ExportSMF(filepath.Join(t.TempDir(), "missing", "x.mid"), 0, "12ET", tab)
	assert.Error(t, err)
}
