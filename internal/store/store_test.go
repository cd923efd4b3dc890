package store

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/model"
)

// newTestStore returns a store with a deterministic clock and ids id-1, id-2, ...
func newTestStore(t *testing.T, slot Slot) *Store {
	t.Helper()
	n := 0
	return New(slot, Options{
		Now: func() time.Time { return time.Date(2026, 3, 7, 9, 5, 0, 0, time.Local) },
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	})
}

func texts(items []model.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Text)
	}
	return out
}

func TestCreatePrependsAndSkipsBlank(t *testing.T) {
	s := newTestStore(t, NewMemorySlot())

	s.Create("first")
	s.Create("   ")
	s.Create("")
	s.Create("  second  ")
	s.Create("third")

	items := s.Items()
	require.Equal(t, []string{"third", "second", "first"}, texts(items))
	require.Equal(t, "id-3", items[0].ID)
	require.Equal(t, "07.03.2026 09:05", items[0].CreatedAt)
	for _, it := range items {
		require.False(t, it.Done)
	}
}

func TestToggleIsInvolution(t *testing.T) {
	s := newTestStore(t, NewMemorySlot())
	s.Create("task")
	id := s.Items()[0].ID

	s.Toggle(id)
	require.True(t, s.Items()[0].Done)
	s.Toggle(id)
	require.False(t, s.Items()[0].Done)
}

func TestUnknownIDIsNoop(t *testing.T) {
	slot := NewMemorySlot()
	s := newTestStore(t, slot)
	s.Create("keep")
	before := s.Items()

	s.Toggle("missing")
	s.Remove("missing")
	s.Edit("missing", "changed")

	require.Empty(t, cmp.Diff(before, s.Items()))
}

func TestRemoveIsIdempotent(t *testing.T) {
	s := newTestStore(t, NewMemorySlot())
	s.Create("a")
	s.Create("b")
	id := s.Items()[0].ID

	s.Remove(id)
	after := s.Items()
	s.Remove(id)

	require.Equal(t, []string{"a"}, texts(s.Items()))
	require.Empty(t, cmp.Diff(after, s.Items()))
}

func TestEditTrimsAndKeepsTextOnBlank(t *testing.T) {
	s := newTestStore(t, NewMemorySlot())
	s.Create("draft")
	id := s.Items()[0].ID

	s.Edit(id, "  final  ")
	require.Equal(t, "final", s.Items()[0].Text)

	s.Edit(id, "   ")
	require.Equal(t, "final", s.Items()[0].Text)
}

func TestClearAllAlwaysEmpties(t *testing.T) {
	s := newTestStore(t, NewMemorySlot())
	s.ClearAll()
	require.Empty(t, s.Items())

	s.Create("a")
	s.Create("b")
	s.Toggle(s.Items()[0].ID)
	s.ClearAll()
	require.Empty(t, s.Items())
}

func TestMarkAllDoneStats(t *testing.T) {
	s := newTestStore(t, NewMemorySlot())
	for _, txt := range []string{"a", "b", "c"} {
		s.Create(txt)
	}
	s.Toggle(s.Items()[1].ID)
	before := s.Items()

	s.MarkAllDone()

	open, done := s.Stats()
	require.Equal(t, 0, open)
	require.Equal(t, 3, done)
	after := s.Items()
	for i := range before {
		require.Equal(t, before[i].ID, after[i].ID)
		require.Equal(t, before[i].Text, after[i].Text)
		require.Equal(t, before[i].CreatedAt, after[i].CreatedAt)
	}
}

func TestViewFollowsFilter(t *testing.T) {
	s := newTestStore(t, NewMemorySlot())
	for _, txt := range []string{"a", "b", "c", "d"} {
		s.Create(txt)
	}
	// collection: d c b a
	items := s.Items()
	s.Toggle(items[0].ID)
	s.Toggle(items[2].ID)

	require.Equal(t, model.FilterAll, s.Filter())
	require.Equal(t, []string{"d", "c", "b", "a"}, texts(s.View()))

	s.SetFilter(model.FilterOpen)
	require.Equal(t, []string{"c", "a"}, texts(s.View()))

	s.SetFilter(model.FilterDone)
	require.Equal(t, []string{"d", "b"}, texts(s.View()))

	s.SetFilter(model.Filter("bogus"))
	require.Equal(t, model.FilterDone, s.Filter())

	open, done := s.Stats()
	require.Equal(t, 2, open)
	require.Equal(t, 2, done)
}

func TestViewReturnsCopies(t *testing.T) {
	s := newTestStore(t, NewMemorySlot())
	s.Create("original")

	v := s.View()
	v[0].Text = "tampered"
	all := s.Items()
	all[0].Done = true

	require.Equal(t, "original", s.Items()[0].Text)
	require.False(t, s.Items()[0].Done)
}

func TestScenario(t *testing.T) {
	s := newTestStore(t, NewMemorySlot())

	s.Create("Buy milk")
	require.Len(t, s.Items(), 1)
	milk := s.Items()[0]
	require.Equal(t, "Buy milk", milk.Text)
	require.False(t, milk.Done)

	s.Toggle(milk.ID)
	require.True(t, s.Items()[0].Done)
	open, done := s.Stats()
	require.Equal(t, [2]int{0, 1}, [2]int{open, done})

	s.Create("Walk dog")
	items := s.Items()
	require.Equal(t, []string{"Walk dog", "Buy milk"}, texts(items))
	require.False(t, items[0].Done)
	require.True(t, items[1].Done)

	s.ClearDone()
	require.Equal(t, []string{"Walk dog"}, texts(s.Items()))
	require.False(t, s.Items()[0].Done)

	s.MarkAllDone()
	require.True(t, s.Items()[0].Done)

	s.ClearAll()
	require.Empty(t, s.Items())
}

func TestRoundTripThroughSlot(t *testing.T) {
	slot := NewMemorySlot()
	s := newTestStore(t, slot)
	s.Create("one")
	s.Create("two")
	s.Create("three")
	s.Toggle(s.Items()[1].ID)
	s.Edit(s.Items()[2].ID, "one, edited")
	s.SetFilter(model.FilterDone)

	restored := New(slot, Options{})

	require.Empty(t, cmp.Diff(s.Items(), restored.Items()))
	require.Equal(t, model.FilterAll, restored.Filter(), "filter is not persisted")
}

func TestPersistedLayout(t *testing.T) {
	slot := NewMemorySlot()
	s := newTestStore(t, slot)
	s.Create("Buy milk")

	raw, err := slot.Get(DefaultKey)
	require.NoError(t, err)
	require.JSONEq(t, `[{"id":"id-1","text":"Buy milk","done":false,"createdAt":"07.03.2026 09:05"}]`, string(raw))
}

func TestRestoreRecoversFromBadState(t *testing.T) {
	cases := map[string][]byte{
		"corrupt":    []byte("{not json"),
		"wrong type": []byte(`{"id":"x"}`),
		"null":       []byte("null"),
		"duplicate id": []byte(`[{"id":"x","text":"a","done":false,"createdAt":""},` +
			`{"id":"x","text":"b","done":false,"createdAt":""}]`),
		"empty id": []byte(`[{"id":"","text":"a","done":false,"createdAt":""}]`),
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			slot := NewMemorySlot()
			require.NoError(t, slot.Set(DefaultKey, raw))

			s := New(slot, Options{})
			require.NotNil(t, s.Items())
			require.Empty(t, s.Items())

			s.Create("fresh")
			require.Len(t, s.Items(), 1)
		})
	}
}

type failingSlot struct {
	getErr, setErr error
}

func (f failingSlot) Get(string) ([]byte, error) { return nil, f.getErr }
func (f failingSlot) Set(string, []byte) error   { return f.setErr }

func TestPersistFailureIsRecordedNotRaised(t *testing.T) {
	boom := errors.New("disk full")
	s := New(failingSlot{getErr: errors.New("unreadable"), setErr: boom}, Options{})
	require.Empty(t, s.Items())

	s.Create("still works in memory")

	require.Len(t, s.Items(), 1)
	require.ErrorIs(t, s.PersistErr(), boom)
}

func TestCustomKey(t *testing.T) {
	slot := NewMemorySlot()
	s := New(slot, Options{Key: "todos_v3"})
	s.Create("x")

	_, err := slot.Get(DefaultKey)
	require.ErrorIs(t, err, ErrNoValue)
	_, err = slot.Get("todos_v3")
	require.NoError(t, err)
}
