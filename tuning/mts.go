package tuning

import (
	"math"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"gitlab.com/gomidi/midi/writer"
)

// MIDI tuning standard constants
const (
	mtsUniversalNonRealTime = 0x7e
	mtsAllDevices           = 0x7f
	mtsSubID1               = 0x08 // MIDI tuning standard
	mtsBulkDump             = 0x01
	mtsNameLength           = 16
	mtsFractionSteps        = 1 << 14
)

// convert a frequency to MTS "xx yy zz" form: a semitone and a 14 bit
// fraction of a semitone above it. out of range values clamp, and 7f 7f 7f
// is avoided since it means "no change".
func mtsFrequency(f float64) [3]byte {
	if !(f > 0) {
		return [3]byte{}
	}
	semis := 69 + 12*math.Log2(f/440)
	if semis <= 0 {
		return [3]byte{}
	}
	note := math.Floor(semis)
	frac := math.Round((semis - note) * mtsFractionSteps)
	if frac >= mtsFractionSteps {
		note, frac = note+1, 0
	}
	if note > 127 || (note == 127 && frac >= mtsFractionSteps-1) {
		note, frac = 127, mtsFractionSteps-2
	}
	fr := int(frac)
	return [3]byte{byte(note), byte(fr >> 7), byte(fr & 0x7f)}
}

// BulkDump returns a bulk tuning dump sysex message for the table, without
// the leading f0 and trailing f7, as gomidi's writer adds those.
func BulkDump(program uint8, name string, t *Table) []byte {
	data := make([]byte, 0, 6+mtsNameLength+numMIDINotes*3)
	data = append(data, mtsUniversalNonRealTime, mtsAllDevices, mtsSubID1, mtsBulkDump, program&0x7f)
	for i := 0; i < mtsNameLength; i++ {
		c := byte(' ')
		if i < len(name) && name[i] >= 0x20 && name[i] < 0x7f {
			c = name[i]
		}
		data = append(data, c)
	}
	for _, f := range t.Frequencies {
		b := mtsFrequency(f)
		data = append(data, b[:]...)
	}
	var sum byte
	for _, b := range data {
		sum ^= b
	}
	return append(data, sum&0x7f)
}

// SendBulkDump writes the bulk dump of a table to a MIDI output.
func SendBulkDump(wr writer.ChannelWriter, program uint8, name string, t *Table) error {
	if err := writer.SysEx(wr, BulkDump(program, name, t)); err != nil {
		return fault.Wrap(err, fmsg.With("write tuning dump"), ftag.With(ftag.Internal))
	}
	return nil
}

// ExportSMF writes a single track standard MIDI file that carries the bulk
// dump of a table.
func ExportSMF(path string, program uint8, name string, t *Table) error {
	err := writer.WriteSMF(path, 1, func(wr *writer.SMF) error {
		if err := writer.SysEx(wr, BulkDump(program, name, t)); err != nil {
			return err
		}
		writer.EndOfTrack(wr)
		return nil
	})
	if err != nil {
		return fault.Wrap(err, fmsg.WithDesc("export "+path, "Could not export MIDI file."),
			ftag.With(ftag.Internal))
	}
	return nil
}
