// Package store owns the todo collection: it applies every mutation,
// derives filtered views and persists the collection to a Slot.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Makepad-fr/tada/internal/model"
)

// Options tune a Store. Zero values pick the defaults.
type Options struct {
	Key    string           // slot key, DefaultKey when empty
	Now    func() time.Time // clock for CreatedAt
	NewID  func() string    // id generator
	Logger logrus.FieldLogger
}

// Store is the single owner of the collection and the active filter.
// It is not safe for concurrent use; callers deliver intents one at a time.
type Store struct {
	slot   Slot
	key    string
	now    func() time.Time
	newID  func() string
	log    logrus.FieldLogger
	items  []model.Item
	filter model.Filter

	persistErr error
}

// New builds a Store and restores its collection from slot.
func New(slot Slot, opt Options) *Store {
	s := &Store{
		slot:   slot,
		key:    opt.Key,
		now:    opt.Now,
		newID:  opt.NewID,
		log:    opt.Logger,
		filter: model.FilterAll,
	}
	if s.key == "" {
		s.key = DefaultKey
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		s.log = l
	}
	s.log = s.log.WithField("key", s.key)
	s.items = s.restore()
	return s
}

// Create prepends a new open item. Blank text is ignored.
func (s *Store) Create(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	it := model.Item{
		ID:        s.newID(),
		Text:      text,
		CreatedAt: s.now().Format(model.CreatedAtLayout),
	}
	s.items = append([]model.Item{it}, s.items...)
	s.log.WithField("id", it.ID).Debug("created item")
	s.persist()
}

// Toggle flips the done flag of the item with id.
func (s *Store) Toggle(id string) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.items[i].Done = !s.items[i].Done
	s.log.WithFields(logrus.Fields{"id": id, "done": s.items[i].Done}).Debug("toggled item")
	s.persist()
}

// Remove deletes the item with id.
func (s *Store) Remove(id string) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.log.WithField("id", id).Debug("removed item")
	s.persist()
}

// Edit replaces the text of the item with id. Blank text leaves the
// previous text in place.
func (s *Store) Edit(id, text string) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	if text = strings.TrimSpace(text); text != "" {
		s.items[i].Text = text
	}
	s.log.WithField("id", id).Debug("edited item")
	s.persist()
}

// ClearDone drops every done item.
func (s *Store) ClearDone() {
	kept := s.items[:0]
	for _, it := range s.items {
		if !it.Done {
			kept = append(kept, it)
		}
	}
	s.items = kept
	s.log.Debug("cleared done items")
	s.persist()
}

func (s *Store) ClearAll() {
	s.items = []model.Item{}
	s.log.Debug("cleared all items")
	s.persist()
}

func (s *Store) MarkAllDone() {
	for i := range s.items {
		s.items[i].Done = true
	}
	s.log.Debug("marked all items done")
	s.persist()
}

// SetFilter changes the active view filter. Unknown filters are ignored.
func (s *Store) SetFilter(f model.Filter) {
	if !f.Valid() {
		return
	}
	s.filter = f
}

func (s *Store) Filter() model.Filter { return s.filter }

// View returns the items matching the active filter, in collection order.
func (s *Store) View() []model.Item {
	out := make([]model.Item, 0, len(s.items))
	for _, it := range s.items {
		if s.filter.Match(it) {
			out = append(out, it)
		}
	}
	return out
}

// Items returns a copy of the whole collection regardless of the filter.
func (s *Store) Items() []model.Item {
	return append([]model.Item{}, s.items...)
}

// Stats counts open and done items over the whole collection.
func (s *Store) Stats() (open, done int) {
	for _, it := range s.items {
		if it.Done {
			done++
		} else {
			open++
		}
	}
	return
}

// PersistErr reports the outcome of the most recent write to the slot.
func (s *Store) PersistErr() error { return s.persistErr }

func (s *Store) indexOf(id string) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persist() {
	s.persistErr = nil
	b, err := json.Marshal(s.items)
	if err != nil {
		s.persistErr = fmt.Errorf("json marshal: %w", err)
	} else if err := s.slot.Set(s.key, b); err != nil {
		s.persistErr = fmt.Errorf("write slot: %w", err)
	}
	if s.persistErr != nil {
		s.log.WithError(s.persistErr).Warn("persist failed")
	}
}

// restore never fails: a missing or unreadable slot yields an empty collection.
func (s *Store) restore() []model.Item {
	b, err := s.slot.Get(s.key)
	if err != nil {
		if !errors.Is(err, ErrNoValue) {
			s.log.WithError(err).Warn("read slot failed, starting empty")
		}
		return []model.Item{}
	}
	var items []model.Item
	if err := json.Unmarshal(b, &items); err != nil {
		s.log.WithError(err).Warn("stored collection is corrupt, starting empty")
		return []model.Item{}
	}
	if err := checkIDs(items); err != nil {
		s.log.WithError(err).Warn("stored collection is corrupt, starting empty")
		return []model.Item{}
	}
	if items == nil {
		items = []model.Item{}
	}
	s.log.WithField("count", len(items)).Debug("restored collection")
	return items
}

// checkIDs enforces id uniqueness on restored data.
func checkIDs(items []model.Item) error {
	seen := make(map[string]struct{}, len(items))
	for i, it := range items {
		if it.ID == "" {
			return fmt.Errorf("item %d has no id", i)
		}
		if _, dup := seen[it.ID]; dup {
			return fmt.Errorf("duplicate id %q", it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	return nil
}
