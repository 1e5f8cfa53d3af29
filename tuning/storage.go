package tuning

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
)

// file names of the two schema generations. v1 wins over v0 when both exist.
const (
	LegacyFilename  = "tunings.json"
	CurrentFilename = "tunings_v1.json"
)

// Storage holds named blobs. Read of an absent name returns an error tagged
// ftag.NotFound.
type Storage interface {
	Exists(name string) bool
	Read(name string) ([]byte, error)
	Write(name string, data []byte) error
}

// DirStorage keeps blobs as files in a directory.
type DirStorage struct {
	Dir string
}

// DefaultDir returns the per-user data directory.
func DefaultDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fault.Wrap(err, fmsg.With("locate user config dir"), ftag.With(ftag.Internal))
	}
	return filepath.Join(configDir, "microtune"), nil
}

func (d DirStorage) Exists(name string) bool {
	_, err := os.Stat(filepath.Join(d.Dir, name))
	return err == nil
}

func (d DirStorage) Read(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(d.Dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fault.Wrap(err, fmsg.With("read "+name), ftag.With(ftag.NotFound))
	} else if err != nil {
		return nil, fault.Wrap(err, fmsg.With("read "+name), ftag.With(ftag.Internal))
	}
	return data, nil
}

// Write replaces the file via a temporary file in the same directory, so a
// failed write never leaves a truncated blob behind.
func (d DirStorage) Write(name string, data []byte) error {
	if err := os.MkdirAll(d.Dir, 0755); err != nil {
		return fault.Wrap(err, fmsg.With("create "+d.Dir), ftag.With(ftag.Internal))
	}
	f, err := os.CreateTemp(d.Dir, name+".*.tmp")
	if err != nil {
		return fault.Wrap(err, fmsg.With("write "+name), ftag.With(ftag.Internal))
	}
	tmp := f.Name()
	_, err = f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp, filepath.Join(d.Dir, name))
	}
	if err != nil {
		os.Remove(tmp)
		return fault.Wrap(err, fmsg.With("write "+name), ftag.With(ftag.Internal))
	}
	return nil
}

// MemStorage keeps blobs in memory. The zero value is ready to use.
type MemStorage struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func (m *MemStorage) Exists(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.blobs[name]
	return ok
}

func (m *MemStorage) Read(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[name]
	if !ok {
		return nil, fault.New("read "+name, fmsg.With("no such blob"), ftag.With(ftag.NotFound))
	}
	return bytes.Clone(data), nil
}

func (m *MemStorage) Write(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.blobs == nil {
		m.blobs = make(map[string][]byte)
	}
	m.blobs[name] = bytes.Clone(data)
	return nil
}

// EncodeBanks serializes banks as a JSON array of bank objects.
func EncodeBanks(banks []*Bank) ([]byte, error) {
	if banks == nil {
		banks = []*Bank{}
	}
	data, err := json.MarshalIndent(banks, "", "  ")
	if err != nil {
		return nil, fault.Wrap(err, fmsg.With("encode tuning banks"), ftag.With(ftag.Internal))
	}
	return data, nil
}

// DecodeBanks is the inverse of EncodeBanks. Tunings with an empty master
// set are dropped.
func DecodeBanks(data []byte) ([]*Bank, error) {
	var banks []*Bank
	if err := json.Unmarshal(data, &banks); err != nil {
		return nil, fault.Wrap(err, fmsg.With("decode tuning banks"), ftag.With(ftag.InvalidArgument))
	}
	out := banks[:0]
	for _, b := range banks {
		if b == nil {
			continue
		}
		tunings := b.Tunings[:0]
		for _, t := range b.Tunings {
			if t != nil && len(t.MasterSet) > 0 {
				tunings = append(tunings, t)
			}
		}
		b.Tunings = tunings
		out = append(out, b)
	}
	return out, nil
}
