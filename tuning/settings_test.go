package tuning

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestSettings(t *testing.T, yml string) (*Settings, []string) {
	path := filepath.Join(t.TempDir(), SettingsFilename)
	if yml != "" {
		require.NoError(t, os.WriteFile(path, []byte(yml), 0644))
	}
	var warnings []string
	s := LoadSettings(path, func(msg string) { warnings = append(warnings, msg) })
	return s, warnings
}

func TestLoadSettingsDefaults(t *testing.T) {
	s, warnings := loadTestSettings(t, "")
	assert.Empty(t, warnings)
	assert.Equal(t, SortByNoteCount, s.Sort())
	assert.Equal(t, 440.0, s.ReferencePitch)
	assert.Equal(t, 410.0, s.ReferencePitchMin)
	assert.Equal(t, 470.0, s.ReferencePitchMax)
	assert.Equal(t, -1, s.MidiOutPort)
	assert.Equal(t, 0, s.MTSProgram)
	assert.Equal(t, slog.LevelInfo, s.Level())
}

func TestLoadSettingsOverride(t *testing.T) {
	dir := t.TempDir()
	s, warnings := loadTestSettings(t, "SortType: Name\nReferencePitch: 432\nLogLevel: debug\nDataDir: "+dir+"\n")
	assert.Empty(t, warnings)
	assert.Equal(t, SortByName, s.Sort())
	assert.Equal(t, 432.0, s.ReferencePitch)
	assert.Equal(t, slog.LevelDebug, s.Level())
	st, err := s.Storage()
	require.NoError(t, err)
	assert.Equal(t, dir, st.Dir)
}

func TestLoadSettingsBadValues(t *testing.T) {
	s, warnings := loadTestSettings(t, "SortType: size\nReferencePitch: 999\nMTSProgram: 128\nLogLevel: loud\nMidiOutPort: 2\n")
	assert.Len(t, warnings, 4)
	assert.Equal(t, SortByNoteCount, s.Sort())
	assert.Equal(t, 440.0, s.ReferencePitch)
	assert.Equal(t, 0, s.MTSProgram)
	assert.Equal(t, slog.LevelInfo, s.Level())
	assert.Equal(t, 2, s.MidiOutPort)
}

func TestLoadSettingsBadRange(t *testing.T) {
	s, warnings := loadTestSettings(t, "ReferencePitchMin: 500\nReferencePitchMax: 400\n")
	assert.Len(t, warnings, 1)
	assert.Equal(t, 410.0, s.ReferencePitchMin)
	assert.Equal(t, 470.0, s.ReferencePitchMax)
}

func TestLoadSettingsUnknownField(t *testing.T) {
	s, warnings := loadTestSettings(t, "Colour: red\n")
	assert.Len(t, warnings, 1)
	assert.Equal(t, 440.0, s.ReferencePitch)
}

func TestLoadSettingsEmptyFile(t *testing.T) {
	s, warnings := loadTestSettings(t, "# nothing\n")
	assert.Empty(t, warnings)
	assert.Equal(t, SortByNoteCount, s.Sort())
}
