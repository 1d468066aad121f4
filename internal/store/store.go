// Package store owns the canonical ordered activity collection. Every
// mutation goes through it so the persisted blob stays consistent with the
// in-memory state.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sandeepkv93/habitd/internal/model"
	"github.com/sandeepkv93/habitd/internal/settings"
)

// SettingsKey is the single settings-store key the collection lives under.
const SettingsKey = "activities"

// Store applies mutations to the ordered collection and writes the whole
// collection back to the settings store after each one. Persistence
// failures never roll back the in-memory state: it stays authoritative for
// the rest of the process, and the error is logged and returned for the UI
// to surface.
type Store struct {
	mu       sync.Mutex
	items    []model.Activity
	settings settings.Store
	log      *slog.Logger
	now      func() time.Time
}

func New(s settings.Store, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		settings: s,
		log:      log,
		now:      time.Now,
	}
}

// Load replaces the in-memory collection from the persisted blob. A missing
// key or a blob that fails to decode both collapse to an empty collection;
// neither is an error from the caller's perspective.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	raw, err := s.settings.Get(ctx, SettingsKey)
	if err != nil {
		if !errors.Is(err, settings.ErrNotFound) {
			s.log.Warn("settings read failed, starting empty", "err", err)
		}
		return
	}
	var decoded []model.Activity
	if err := json.Unmarshal(raw, &decoded); err != nil {
		s.log.Warn("activities blob corrupt, starting empty", "err", err)
		return
	}
	s.items = decoded
}

// List returns a snapshot of the collection in canonical order.
func (s *Store) List() []model.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Activity, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item.Clone())
	}
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) Get(id string) (model.Activity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.items[i].Clone(), true
	}
	return model.Activity{}, false
}

// Add appends a new activity with a fresh id, zero counter, and empty
// history, then persists.
func (s *Store) Add(ctx context.Context, title, description string, category model.Category) (model.Activity, error) {
	act := model.Activity{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		History:     model.History{},
		Category:    category,
	}
	if err := act.Validate(); err != nil {
		return model.Activity{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, act)
	return act.Clone(), s.persist(ctx)
}

// Update replaces the mutable fields of the activity with the given id,
// preserving id, counter, and history. Unknown ids are a silent no-op.
func (s *Store) Update(ctx context.Context, id, title, description string, category model.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	next := s.items[i]
	next.Title = title
	next.Description = description
	next.Category = category
	if err := next.Validate(); err != nil {
		return err
	}
	s.items[i] = next
	return s.persist(ctx)
}

// Remove deletes the referenced activities from the canonical order.
// Unknown ids are skipped silently.
func (s *Store) Remove(ctx context.Context, ids ...string) error {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	removed := false
	for _, item := range s.items {
		if drop[item.ID] {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	s.items = kept
	if !removed {
		return nil
	}
	return s.persist(ctx)
}

// RemoveAt deletes the activity at the canonical index. Out-of-range
// indices are a silent no-op.
func (s *Store) RemoveAt(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.items) {
		return nil
	}
	s.items = append(s.items[:index], s.items[index+1:]...)
	return s.persist(ctx)
}

// Move relocates the element at canonical index from to index to,
// preserving the relative order of everything else.
func (s *Store) Move(ctx context.Context, from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.items)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return nil
	}
	item := s.items[from]
	rest := append(s.items[:from], s.items[from+1:]...)
	s.items = append(rest[:to], append([]model.Activity{item}, rest[to:]...)...)
	return s.persist(ctx)
}

// MoveWithinCategory reorders one category's subsequence. from and to index
// into that subsequence only. The reordered members are written back into
// the global slots the category previously occupied, so activities of other
// categories keep both their relative order and their absolute positions.
func (s *Store) MoveWithinCategory(ctx context.Context, category model.Category, from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots := make([]int, 0, len(s.items))
	for i, item := range s.items {
		if item.Category == category {
			slots = append(slots, i)
		}
	}
	n := len(slots)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return nil
	}

	sub := make([]model.Activity, 0, n)
	for _, slot := range slots {
		sub = append(sub, s.items[slot])
	}
	moved := sub[from]
	sub = append(sub[:from], sub[from+1:]...)
	sub = append(sub[:to], append([]model.Activity{moved}, sub[to:]...)...)
	for i, slot := range slots {
		s.items[slot] = sub[i]
	}
	return s.persist(ctx)
}

// SetCompletionCount writes the counter directly, clamped at zero. It does
// not touch history; see Increment and Decrement for the write-through
// path.
func (s *Store) SetCompletionCount(ctx context.Context, id string, count int) error {
	if count < 0 {
		count = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.items[i].CompletionCount = count
	return s.persist(ctx)
}

// Increment bumps the counter and records one completion against today's
// history entry, keeping the chart and the counter coherent.
func (s *Store) Increment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.items[i].CompletionCount++
	s.ensureHistory(i)
	s.items[i].History.Record(s.now(), 1)
	return s.persist(ctx)
}

// Decrement lowers the counter, never below zero, and removes one
// completion from today's history entry.
func (s *Store) Decrement(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 || s.items[i].CompletionCount == 0 {
		return nil
	}
	s.items[i].CompletionCount--
	s.ensureHistory(i)
	s.items[i].History.Record(s.now(), -1)
	return s.persist(ctx)
}

// ResetCount zeroes the counter. History is left intact: the chart shows
// what actually happened, a reset only restarts the running tally.
func (s *Store) ResetCount(ctx context.Context, id string) error {
	return s.SetCompletionCount(ctx, id, 0)
}

// RecordCompletion adds one completion to the history of the given day
// without moving the counter. Used for backfilling past days.
func (s *Store) RecordCompletion(ctx context.Context, id string, day time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.ensureHistory(i)
	s.items[i].History.Record(day, 1)
	return s.persist(ctx)
}

func (s *Store) indexOf(id string) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) ensureHistory(i int) {
	if s.items[i].History == nil {
		s.items[i].History = model.History{}
	}
}

func (s *Store) persist(ctx context.Context) error {
	payload, err := json.Marshal(s.items)
	if err != nil {
		s.log.Error("encode activities failed", "err", err)
		return err
	}
	if err := s.settings.Set(ctx, SettingsKey, payload); err != nil {
		s.log.Error("persist activities failed", "err", err)
		return err
	}
	return nil
}
