package main

import (
	"fmt"
	"io"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"gitlab.com/gomidi/midi/writer"
	driver "gitlab.com/gomidi/rtmididrv"
)

// print the index and name of every MIDI output port
func listPorts(w io.Writer) error {
	drv, err := driver.New()
	if err != nil {
		return midiErr(err, "open MIDI driver")
	}
	defer drv.Close()
	outs, err := drv.Outs()
	if err != nil {
		return midiErr(err, "list MIDI outputs")
	}
	if len(outs) == 0 {
		fmt.Fprintln(w, "no MIDI output ports")
	}
	for i, out := range outs {
		fmt.Fprintf(w, "%d\t%s\n", i, out.String())
	}
	return nil
}

// send the selected tuning as a bulk dump to the configured port. the dump is
// written by the table builder when the selection is pushed again.
func (a *app) send() error {
	if a.port < 0 {
		return badArg("no MIDI output port; use --port or set MidiOutPort")
	}
	drv, err := driver.New()
	if err != nil {
		return midiErr(err, "open MIDI driver")
	}
	defer drv.Close()
	outs, err := drv.Outs()
	if err != nil {
		return midiErr(err, "list MIDI outputs")
	}
	if a.port >= len(outs) {
		return badArg(fmt.Sprintf("MIDI output port index %d out of range [%d, %d)",
			a.port, 0, len(outs)))
	}
	out := outs[a.port]
	if err := out.Open(); err != nil {
		return midiErr(err, "open "+out.String())
	}
	defer out.Close()
	a.builder.Attach(writer.New(out))

	a.store.SelectTuning(a.store.SelectedTuningIndex())
	name, _ := a.store.Selected()
	a.logger.Info("sent tuning", "name", name, "port", out.String())
	return nil
}

func midiErr(err error, msg string) error {
	return fault.Wrap(err, fmsg.WithDesc(msg, "MIDI is not available."), ftag.With(ftag.Internal))
}
