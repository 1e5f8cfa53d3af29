package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/jangler/microtune/tuning"
	"github.com/spf13/pflag"
)

const appName = "microtune"

const usage = `usage: microtune [flags] command [args]

commands:
  list                    list the tunings of the selected bank
  show                    show the selected tuning
  add NAME INTERVAL...    add a tuning to the user bank, e.g. add Just 9/8 5/4 3/2
  scl FILE                add a tuning from a scala file
  random                  select a random tuning of the selected bank
  reset                   select 12ET and restore the reference pitch
  export FILE             write the selected tuning to a MIDI file as a bulk dump
  ports                   list MIDI output ports
  send                    send the selected tuning to a MIDI output port

flags:
`

// command line flags; negative numbers mean "not set"
type flags struct {
	bank, tuning int
	port         int
	sort         string
	config       string
	data         string
	verbose      bool
}

func main() {
	var f flags
	pflag.IntVarP(&f.bank, "bank", "b", -1, "select bank (0 curated, 1 user) before the command")
	pflag.IntVarP(&f.tuning, "tuning", "t", -1, "select tuning index before the command")
	pflag.IntVarP(&f.port, "port", "p", -1, "MIDI output port index for send")
	pflag.StringVarP(&f.sort, "sort", "s", "", "sort tunings by npo, name or order")
	pflag.StringVar(&f.config, "config", "", "settings file")
	pflag.StringVar(&f.data, "data", "", "directory holding the tuning banks")
	pflag.BoolVarP(&f.verbose, "verbose", "v", false, "log debug messages")
	pflag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		pflag.PrintDefaults()
	}
	pflag.Parse()

	var warnings []string
	settings := tuning.LoadSettings(f.config, func(s string) { warnings = append(warnings, s) })
	level := settings.Level()
	if f.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	for _, w := range warnings {
		logger.Warn(w)
	}

	if err := run(f, pflag.Args(), settings, logger); err != nil {
		if issue := fmsg.GetIssue(err); issue != "" {
			fmt.Fprintf(os.Stderr, "%s: %s\n", appName, issue)
		}
		logger.Error("command failed", "error", err)
		if ftag.Get(err) == ftag.InvalidArgument {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// app ties the store to the outputs a command may need
type app struct {
	store    *tuning.Store
	ref      *tuning.Parameter
	builder  *tuning.TableBuilder
	settings *tuning.Settings
	logger   *slog.Logger
	out      io.Writer
	port     int
}

func run(f flags, args []string, settings *tuning.Settings, logger *slog.Logger) error {
	if len(args) == 0 {
		pflag.Usage()
		return fault.New("no command", fmsg.WithDesc("no command", "No command given."),
			ftag.With(ftag.InvalidArgument))
	}

	sortType := settings.Sort()
	if f.sort != "" {
		st, ok := tuning.ParseSortType(f.sort)
		if !ok {
			return badArg(fmt.Sprintf("unknown sort type %q", f.sort))
		}
		sortType = st
	}

	var storage tuning.Storage
	if f.data != "" {
		storage = tuning.DirStorage{Dir: f.data}
	} else {
		ds, err := settings.Storage()
		if err != nil {
			return err
		}
		storage = ds
	}

	ref := tuning.NewReferencePitch(settings.ReferencePitch, settings.ReferencePitchMin, settings.ReferencePitchMax)
	builder := tuning.NewTableBuilder(ref, uint8(settings.MTSProgram), logger)
	a := &app{
		store: tuning.NewStore(tuning.Options{
			Storage:  storage,
			Table:    builder,
			Ref:      ref,
			SortType: sortType,
			Logger:   logger,
		}),
		ref:      ref,
		builder:  builder,
		settings: settings,
		logger:   logger,
		out:      os.Stdout,
		port:     settings.MidiOutPort,
	}
	if f.port >= 0 {
		a.port = f.port
	}

	<-a.store.Load()
	logger.Debug("tuning store ready", "origin", a.store.Origin().String())
	changed, cancel := a.store.Subscribe()
	defer cancel()

	if f.bank >= 0 && !a.store.SelectBank(f.bank) {
		return badArg(fmt.Sprintf("no bank %d", f.bank))
	}
	if f.tuning >= 0 && !a.store.SelectTuning(f.tuning) {
		return badArg(fmt.Sprintf("no tuning %d in bank %d", f.tuning, a.store.SelectedBankIndex()))
	}

	if err := a.dispatch(args[0], args[1:]); err != nil {
		return err
	}
	select {
	case <-changed:
		name, _ := a.store.Selected()
		logger.Debug("selection changed", "bank", a.store.SelectedBankIndex(),
			"tuning", a.store.SelectedTuningIndex(), "name", name)
	default:
	}
	return a.store.SaveErr()
}

// run a single command
func (a *app) dispatch(cmd string, args []string) error {
	switch cmd {
	case "list":
		return a.list()
	case "show":
		return a.show()
	case "add":
		if len(args) < 2 {
			return badArg("add needs a name and at least one interval")
		}
		set, err := tuning.ParseMasterSet(args[1:])
		if err != nil {
			return err
		}
		return a.add(args[0], set)
	case "scl":
		if len(args) != 1 {
			return badArg("scl needs one file")
		}
		return a.scl(args[0])
	case "random":
		a.store.RandomTuning()
		return a.show()
	case "reset":
		a.store.ResetTuning()
		return a.show()
	case "export":
		if len(args) != 1 {
			return badArg("export needs one file")
		}
		return a.export(args[0])
	case "ports":
		return listPorts(a.out)
	case "send":
		return a.send()
	}
	return badArg(fmt.Sprintf("unknown command %q", cmd))
}

func (a *app) list() error {
	printBank(a.out, a.store)
	return nil
}

func (a *app) show() error {
	name, set := a.store.Selected()
	printTuning(a.out, name, set, tuning.NewTable(set, a.ref.Value()), a.ref.Value())
	return nil
}

// add a tuning to the user bank and show it
func (a *app) add(name string, set []float64) error {
	if _, added := a.store.SetTuning(name, set); !added {
		a.logger.Info("tuning already in user bank", "name", name)
	}
	return a.show()
}

func (a *app) scl(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fault.Wrap(err, fmsg.WithDesc("open "+path, "Could not open scale file."),
			ftag.With(ftag.NotFound))
	}
	defer file.Close()
	name, set, err := tuning.ReadScala(file)
	if err != nil {
		return fault.Wrap(err, fmsg.With(path))
	}
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return a.add(name, set)
}

func (a *app) export(path string) error {
	name, set := a.store.Selected()
	t := tuning.NewTable(set, a.ref.Value())
	if err := tuning.ExportSMF(path, uint8(a.settings.MTSProgram), name, t); err != nil {
		return err
	}
	a.logger.Info("exported tuning", "name", name, "path", path)
	return nil
}

func badArg(msg string) error {
	return fault.New(msg, fmsg.WithDesc(msg, msg+"."), ftag.With(ftag.InvalidArgument))
}
