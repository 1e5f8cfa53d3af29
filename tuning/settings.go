package tuning

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed config/settings.yml
var defaultSettings []byte

// SettingsFilename is the name of the user settings file in the data dir.
const SettingsFilename = "settings.yml"

// Settings are read from the embedded defaults, then from the user's file.
type Settings struct {
	DataDir           string  `yaml:"DataDir"`
	SortType          string  `yaml:"SortType"`
	ReferencePitch    float64 `yaml:"ReferencePitch"`
	ReferencePitchMin float64 `yaml:"ReferencePitchMin"`
	ReferencePitchMax float64 `yaml:"ReferencePitchMax"`
	MidiOutPort       int     `yaml:"MidiOutPort"`
	MTSProgram        int     `yaml:"MTSProgram"`
	LogLevel          string  `yaml:"LogLevel"`
}

// LoadSettings applies the factory settings and then the file at path, if it
// exists. An empty path means the settings file in DefaultDir. Problems are
// passed to warn and leave the previous value in place.
func LoadSettings(path string, warn func(string)) *Settings {
	s := &Settings{}
	if err := s.apply(defaultSettings, warn); err != nil {
		warn(err.Error())
	}
	if path == "" {
		dir, err := DefaultDir()
		if err != nil {
			warn(err.Error())
			return s
		}
		path = filepath.Join(dir, SettingsFilename)
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s
	} else if err != nil {
		warn(err.Error())
		return s
	}
	if err := s.apply(data, warn); err != nil {
		warn(fmt.Sprintf("%s: %v", path, err))
	}
	return s
}

// decode YAML on top of the current settings, then validate field by field
func (s *Settings) apply(data []byte, warn func(string)) error {
	next := *s
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&next); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if _, ok := ParseSortType(next.SortType); ok {
		s.SortType = next.SortType
	} else {
		warn(fmt.Sprintf("bad settings value: SortType %q", next.SortType))
	}
	if next.ReferencePitchMin > 0 && next.ReferencePitchMin <= next.ReferencePitchMax {
		s.ReferencePitchMin, s.ReferencePitchMax = next.ReferencePitchMin, next.ReferencePitchMax
	} else {
		warn(fmt.Sprintf("bad settings value: ReferencePitch range [%v, %v]",
			next.ReferencePitchMin, next.ReferencePitchMax))
	}
	if next.ReferencePitch >= s.ReferencePitchMin && next.ReferencePitch <= s.ReferencePitchMax {
		s.ReferencePitch = next.ReferencePitch
	} else {
		warn(fmt.Sprintf("bad settings value: ReferencePitch %v", next.ReferencePitch))
	}
	if next.MTSProgram >= 0 && next.MTSProgram < 128 {
		s.MTSProgram = next.MTSProgram
	} else {
		warn(fmt.Sprintf("bad settings value: MTSProgram %d", next.MTSProgram))
	}
	if _, ok := parseLogLevel(next.LogLevel); ok {
		s.LogLevel = next.LogLevel
	} else {
		warn(fmt.Sprintf("bad settings value: LogLevel %q", next.LogLevel))
	}
	s.DataDir = next.DataDir
	s.MidiOutPort = next.MidiOutPort
	return nil
}

// Sort returns the configured sort type.
func (s *Settings) Sort() SortType {
	st, _ := ParseSortType(s.SortType)
	return st
}

// Level returns the configured log level.
func (s *Settings) Level() slog.Level {
	l, _ := parseLogLevel(s.LogLevel)
	return l
}

func parseLogLevel(s string) (slog.Level, bool) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, false
	}
	return l, true
}

// Storage returns the storage the settings point at.
func (s *Settings) Storage() (DirStorage, error) {
	if s.DataDir != "" {
		return DirStorage{Dir: s.DataDir}, nil
	}
	dir, err := DefaultDir()
	return DirStorage{Dir: dir}, err
}
