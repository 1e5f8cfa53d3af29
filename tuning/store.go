package tuning

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
)

// State is the position of a Store in its load pipeline.
type State int

const (
	Unloaded State = iota
	Loading
	FreshInstall
	Migrating
	Loaded
	Ready
)

var stateNames = []string{"unloaded", "loading", "fresh install", "migrating", "loaded", "ready"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

const (
	curatedBankIndex = 0
	userBankIndex    = 1
)

// Options configure a Store. Zero fields get defaults; a nil Storage keeps
// the banks in memory only.
type Options struct {
	Storage  Storage
	Table    FrequencyTableBuilder // default: a TableBuilder on Ref
	Ref      ReferencePitch        // default: NewReferencePitch(440, 410, 470)
	SortType SortType
	Logger   *slog.Logger
	Rand     *rand.Rand
}

// Store owns the tuning banks and the current selection. All exported
// methods are safe for concurrent use; before Load completes, queries return
// zero values and mutations do nothing.
type Store struct {
	storage Storage
	table   FrequencyTableBuilder
	ref     ReferencePitch
	logger  *slog.Logger

	mu             sync.Mutex
	state          State
	origin         State
	banks          []*Bank
	selectedBank   int
	selectedTuning int
	sortType       SortType
	rand           *rand.Rand
	saveErr        error
	loaded         chan struct{}

	subMu       sync.Mutex
	subscribers map[int]chan struct{}
	nextSubID   int
}

// NewStore returns an unloaded store.
func NewStore(opts Options) *Store {
	s := &Store{
		storage:     opts.Storage,
		table:       opts.Table,
		ref:         opts.Ref,
		logger:      opts.Logger,
		sortType:    opts.SortType,
		rand:        opts.Rand,
		loaded:      make(chan struct{}),
		subscribers: make(map[int]chan struct{}),
	}
	if s.storage == nil {
		s.storage = &MemStorage{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.ref == nil {
		s.ref = NewReferencePitch(defaultA4, 410, 470)
	}
	if s.table == nil {
		s.table = NewTableBuilder(s.ref, 0, s.logger)
	}
	if s.rand == nil {
		s.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

// Load populates the banks in a new goroutine: from the current schema if it
// is stored, by regenerating the factory bank if only the legacy schema is
// (user tunings in it are discarded), or from the factory presets on a fresh
// install. Both banks are then sorted and saved, and the user bank is
// selected if it holds anything besides 12ET. Since sorting always puts 12ET
// in the user bank, a user bank holding only 12ET counts as empty and the
// curated bank is selected instead. The returned channel is closed
// once the store is ready. Calling Load again returns the same channel.
func (s *Store) Load() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Unloaded {
		return s.loaded
	}
	s.state = Loading
	go s.load()
	return s.loaded
}

func (s *Store) load() {
	s.mu.Lock()
	switch {
	case s.storage.Exists(CurrentFilename):
		s.state = Loaded
		if banks, err := s.readBanks(); err == nil {
			s.banks = banks
		} else {
			s.logger.Warn("tuning banks unreadable, reinstalling factory presets", "error", err)
			s.state = FreshInstall
		}
	case s.storage.Exists(LegacyFilename):
		s.logger.Info("upgrading tuning banks, legacy tunings are replaced", "file", LegacyFilename)
		s.state = Migrating
	default:
		s.state = FreshInstall
	}
	if s.state != Loaded {
		s.banks = []*Bank{newCuratedBank(), newUserBank()}
	}
	s.logger.Info("tuning banks populated", "path", s.state.String(), "banks", len(s.banks))
	s.origin = s.state

	for _, b := range s.banks {
		sortTunings(b, s.sortType)
	}
	s.save()
	if len(s.banks[userBankIndex].Tunings) > 1 {
		s.selectedBank = userBankIndex
	} else {
		s.selectedBank = curatedBankIndex
	}
	s.selectedTuning = 0
	s.state = Ready
	s.mu.Unlock()
	close(s.loaded)
}

// decode the current schema, which must hold at least the two default banks
func (s *Store) readBanks() ([]*Bank, error) {
	data, err := s.storage.Read(CurrentFilename)
	if err != nil {
		return nil, err
	}
	banks, err := DecodeBanks(data)
	if err != nil {
		return nil, err
	}
	if len(banks) <= userBankIndex {
		return nil, fault.New("missing tuning banks",
			fmsg.With("expected curated and user banks"), ftag.With(ftag.InvalidArgument))
	}
	return banks, nil
}

// save while holding mu; failures are logged and kept for SaveErr
func (s *Store) save() {
	s.saveErr = s.saveLocked()
	if s.saveErr != nil {
		s.logger.Error("save tuning banks", "error", s.saveErr)
	}
}

func (s *Store) saveLocked() error {
	data, err := EncodeBanks(s.banks)
	if err != nil {
		return err
	}
	return s.storage.Write(CurrentFilename, data)
}

// Save writes the banks in the current schema and reports failure.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Ready {
		return fault.New("save before load", fmsg.With("tuning banks are not loaded"),
			ftag.With(ftag.InvalidArgument))
	}
	s.saveErr = s.saveLocked()
	return s.saveErr
}

// SaveErr returns the error of the last save, if it failed.
func (s *Store) SaveErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveErr
}

// Subscribe returns a channel that receives a value after every change of
// the selected tuning. Notifications coalesce: a subscriber that has not
// drained the channel gets one pending value, not one per change. Call
// cancel to unsubscribe.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	ch := make(chan struct{}, 1)
	s.subscribers[id] = ch
	return ch, func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subscribers, id)
	}
}

// notify every subscriber without blocking
func (s *Store) notify() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// send a master set to the frequency table builder
func (s *Store) push(name string, set []float64) {
	if n, ok := s.table.(interface{ SetName(string) }); ok {
		n.SetName(name)
	}
	s.table.BuildTable(append([]float64(nil), set...))
}

// IsReady reports whether Load has completed.
func (s *Store) IsReady() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == Ready
}

// State returns the current load state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Origin returns which of FreshInstall, Migrating or Loaded populated the
// banks, or Unloaded before that.
func (s *Store) Origin() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.origin
}

// SortType returns the active sort type.
func (s *Store) SortType() SortType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortType
}

// SetSortType re-sorts every bank. The selected tuning stays selected.
func (s *Store) SetSortType(st SortType) {
	s.mu.Lock()
	if s.state != Ready || st == s.sortType {
		s.mu.Unlock()
		return
	}
	s.sortType = st
	selected := s.banks[s.selectedBank].Tunings[s.selectedTuning].Key()
	for _, b := range s.banks {
		sortTunings(b, st)
	}
	s.selectedTuning = max(s.banks[s.selectedBank].indexOf(selected), 0)
	s.save()
	s.mu.Unlock()
	s.notify()
}

// BankNames returns the names of all banks.
func (s *Store) BankNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Ready {
		return nil
	}
	names := make([]string, len(s.banks))
	for i, b := range s.banks {
		names[i] = b.Name
	}
	return names
}

// Bank returns a copy of bank i, or nil if there is none.
func (s *Store) Bank(i int) *Bank {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Ready || i < 0 || i >= len(s.banks) {
		return nil
	}
	return s.banks[i].clone()
}

// SelectedBankIndex returns the index of the selected bank.
func (s *Store) SelectedBankIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedBank
}

// SelectedTuningIndex returns the index of the selected tuning within the
// selected bank.
func (s *Store) SelectedTuningIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedTuning
}

// Count returns the number of tunings in the selected bank.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Ready {
		return 0
	}
	return len(s.banks[s.selectedBank].Tunings)
}

// Selected returns the name and a copy of the master set of the selected
// tuning. Before Load completes it returns an empty name and unison.
func (s *Store) Selected() (string, []float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Ready {
		return "", []float64{1}
	}
	t := s.banks[s.selectedBank].Tunings[s.selectedTuning]
	return t.Name, append([]float64(nil), t.MasterSet...)
}

// GetTuning returns the name and a copy of the master set of tuning index in
// the selected bank. index must be in [0, Count()); anything else panics.
func (s *Store) GetTuning(index int) (string, []float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Ready {
		return "", []float64{1}
	}
	t := s.banks[s.selectedBank].Tunings[index]
	return t.Name, append([]float64(nil), t.MasterSet...)
}

// SetTuning adds a tuning to the user bank unless a tuning with the same name
// and master set is already there. It returns the index of the new tuning
// and true when one was added, -1 and false otherwise. An empty name or set,
// or a set holding a ratio that is not finite and positive, does nothing. Otherwise the set is sent to the frequency table and becomes
// the selection, whether it was new or not.
func (s *Store) SetTuning(name string, masterSet []float64) (int, bool) {
	if name == "" || len(masterSet) == 0 {
		return -1, false
	}
	for _, r := range masterSet {
		if !validRatio(r) {
			s.logger.Warn("tuning rejected, ratios must be finite and positive", "name", name, "ratio", r)
			return -1, false
		}
	}
	s.mu.Lock()
	if s.state != Ready {
		s.mu.Unlock()
		return -1, false
	}
	t := NewTuning(name, masterSet)
	key := t.Key()
	bank := s.banks[userBankIndex]
	index, added := -1, false
	if i := bank.indexOf(key); i >= 0 {
		s.logger.Debug("tuning already in user bank", "name", name)
		s.selectedBank, s.selectedTuning = userBankIndex, i
	} else {
		bank.Tunings = append(bank.Tunings, t)
		sortTunings(bank, s.sortType)
		if i := bank.indexOf(key); i >= 0 {
			index, added = i, true
			s.selectedBank, s.selectedTuning = userBankIndex, i
			s.save()
		} else {
			s.logger.Warn("tuning not found after insertion", "name", name)
		}
	}
	s.push(t.Name, t.MasterSet)
	s.mu.Unlock()
	s.notify()
	return index, added
}

// SelectTuning selects tuning index of the selected bank. Out of range
// indexes are ignored.
func (s *Store) SelectTuning(index int) bool {
	s.mu.Lock()
	if s.state != Ready || index < 0 || index >= len(s.banks[s.selectedBank].Tunings) {
		s.mu.Unlock()
		return false
	}
	s.selectedTuning = index
	t := s.banks[s.selectedBank].Tunings[index]
	s.push(t.Name, t.MasterSet)
	s.mu.Unlock()
	s.notify()
	return true
}

// SelectBank selects the curated (0) or user (1) bank. The first tuning of
// the bank becomes the selected index, but nothing is sent to the frequency
// table and subscribers are not notified, so the table keeps the previous
// tuning. Callers follow up with SelectTuning to make the selection sound.
func (s *Store) SelectBank(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Ready || (index != curatedBankIndex && index != userBankIndex) {
		return false
	}
	if index != s.selectedBank {
		s.selectedBank = index
		s.selectedTuning = 0
	}
	return true
}

// ResetTuning selects 12ET in the curated bank and restores the reference
// pitch to its default. It returns the selected tuning index.
func (s *Store) ResetTuning() int {
	s.mu.Lock()
	if s.state != Ready {
		s.mu.Unlock()
		return 0
	}
	s.selectedBank, s.selectedTuning = curatedBankIndex, 0
	t := s.banks[curatedBankIndex].Tunings[0]
	s.ref.SetValue(s.ref.Default())
	s.push(t.Name, t.MasterSet)
	s.mu.Unlock()
	s.notify()
	return 0
}

// RandomTuning selects a random tuning of the selected bank and returns its
// index, or -1 before Load completes.
func (s *Store) RandomTuning() int {
	s.mu.Lock()
	if s.state != Ready {
		s.mu.Unlock()
		return -1
	}
	b := s.banks[s.selectedBank]
	i := s.rand.Intn(len(b.Tunings))
	s.selectedTuning = i
	t := b.Tunings[i]
	s.push(t.Name, t.MasterSet)
	s.mu.Unlock()
	s.notify()
	return i
}
