// Copyright (c) 2025 Froydinger Media Group
// SPDX-License-Identifier: AGPL-3.0-or-later

package registry

import (
	"errors"
	"reflect"
	"testing"

	"github.com/froydinger/arcana-tui/internal/model"
	"github.com/froydinger/arcana-tui/internal/storage"
)

// recorder captures the last state handed to the persister.
type recorder struct {
	chats   []storage.StoredConversation
	pinned  []int
	current int
	saves   int
}

func (p *recorder) SaveChats(chats []storage.StoredConversation) {
	p.chats = chats
	p.saves++
}
func (p *recorder) SavePinned(pinned []int) { p.pinned = pinned }
func (p *recorder) SaveCurrent(current int) { p.current = current }

// addChats builds a registry of n named conversations, reusing the seed
// for the last one. Titles are "A".."D" in final display order: "A" at
// index 0, which is also current.
func addChats(t *testing.T, r *Registry, n int) {
	t.Helper()
	// Replace the empty seed by renaming it, then prepend the rest.
	if err := r.Rename(0, titleFor(n-1)); err != nil {
		t.Fatal(err)
	}
	for i := n - 2; i >= 0; i-- {
		r.NewChat()
		if err := r.Rename(0, titleFor(i)); err != nil {
			t.Fatal(err)
		}
	}
}

func titleFor(i int) string {
	return string(rune('A' + i))
}

func titles(r *Registry) []string {
	var out []string
	for _, c := range r.Conversations() {
		out = append(out, c.Title)
	}
	return out
}

func TestNewSeedsSingleConversation(t *testing.T) {
	p := &recorder{}
	r := New(p)

	if r.Count() != 1 {
		t.Fatalf("count = %d, want 1", r.Count())
	}
	if r.CurrentIndex() != 0 {
		t.Errorf("current index = %d, want 0", r.CurrentIndex())
	}
	if r.Current().Title != model.DefaultTitle {
		t.Errorf("seed title = %q", r.Current().Title)
	}
	if len(r.PinnedIndices()) != 0 {
		t.Error("seed should have no pins")
	}
	if p.saves == 0 {
		t.Error("seed state should be persisted")
	}
}

func TestNewChatPrependsAndShiftsPins(t *testing.T) {
	r := New(&recorder{})
	addChats(t, r, 3) // A B C

	// Pin B (index 1).
	if err := r.TogglePin(1); err != nil {
		t.Fatal(err)
	}

	r.NewChat()

	want := []string{model.DefaultTitle, "A", "B", "C"}
	if got := titles(r); !reflect.DeepEqual(got, want) {
		t.Fatalf("titles = %v, want %v", got, want)
	}
	if r.CurrentIndex() != 0 {
		t.Errorf("current index = %d, want 0", r.CurrentIndex())
	}
	// B shifted from index 1 to index 2, pin followed it.
	if got := r.PinnedIndices(); !reflect.DeepEqual(got, []int{2}) {
		t.Errorf("pinned = %v, want [2]", got)
	}
}

func TestSelect(t *testing.T) {
	r := New(&recorder{})
	addChats(t, r, 3)

	if err := r.Select(2); err != nil {
		t.Fatal(err)
	}
	if r.CurrentIndex() != 2 {
		t.Errorf("current index = %d, want 2", r.CurrentIndex())
	}

	// Out-of-range selection falls back to the first conversation.
	err := r.Select(7)
	if !errors.Is(err, ErrInvalidIndex) {
		t.Errorf("err = %v, want ErrInvalidIndex", err)
	}
	if r.CurrentIndex() != 0 {
		t.Errorf("current index after invalid select = %d, want 0", r.CurrentIndex())
	}
}

func TestDeleteCurrentSelectsPrevious(t *testing.T) {
	r := New(&recorder{})
	addChats(t, r, 3) // A B C
	r.Select(1)

	if err := r.Delete(1); err != nil {
		t.Fatal(err)
	}

	if got := titles(r); !reflect.DeepEqual(got, []string{"A", "C"}) {
		t.Fatalf("titles = %v", got)
	}
	// Deleting current index 1 selects max(0, 1-1) = 0.
	if r.CurrentIndex() != 0 {
		t.Errorf("current index = %d, want 0", r.CurrentIndex())
	}
}

func TestDeleteBeforeCurrentKeepsSelection(t *testing.T) {
	r := New(&recorder{})
	addChats(t, r, 3) // A B C
	r.Select(2)

	if err := r.Delete(0); err != nil {
		t.Fatal(err)
	}

	// C survives as current; its index shifted from 2 to 1.
	if r.Current().Title != "C" {
		t.Errorf("current = %q, want C", r.Current().Title)
	}
	if r.CurrentIndex() != 1 {
		t.Errorf("current index = %d, want 1", r.CurrentIndex())
	}
}

func TestDeleteAfterCurrentKeepsSelection(t *testing.T) {
	r := New(&recorder{})
	addChats(t, r, 3) // A B C
	r.Select(0)

	if err := r.Delete(2); err != nil {
		t.Fatal(err)
	}
	if r.Current().Title != "A" || r.CurrentIndex() != 0 {
		t.Errorf("current = %q at %d, want A at 0", r.Current().Title, r.CurrentIndex())
	}
}

func TestDeleteLastReseeds(t *testing.T) {
	p := &recorder{}
	r := New(p)

	oldID := r.Current().ID
	if err := r.Delete(0); err != nil {
		t.Fatal(err)
	}

	if r.Count() != 1 {
		t.Fatalf("count = %d, want 1", r.Count())
	}
	if r.Current().ID == oldID {
		t.Error("reseed should create a fresh conversation")
	}
	if !r.Current().IsEmpty() {
		t.Error("reseeded conversation should be empty")
	}
	if len(p.pinned) != 0 || p.current != 0 {
		t.Error("persisted state should reflect the fresh seed")
	}
}

func TestDeleteShiftsPinIndices(t *testing.T) {
	r := New(&recorder{})
	addChats(t, r, 2) // A B
	// Pin B (index 1), then delete A (index 0).
	if err := r.TogglePin(1); err != nil {
		t.Fatal(err)
	}
	if err := r.Delete(0); err != nil {
		t.Fatal(err)
	}

	// B is now index 0 and still pinned.
	if got := r.PinnedIndices(); !reflect.DeepEqual(got, []int{0}) {
		t.Errorf("pinned = %v, want [0]", got)
	}
}

func TestDeleteRemovesPin(t *testing.T) {
	r := New(&recorder{})
	addChats(t, r, 3)
	if err := r.TogglePin(1); err != nil {
		t.Fatal(err)
	}
	if err := r.Delete(1); err != nil {
		t.Fatal(err)
	}
	if len(r.PinnedIndices()) != 0 {
		t.Errorf("pinned = %v, want empty", r.PinnedIndices())
	}
}

func TestDeleteAll(t *testing.T) {
	p := &recorder{}
	r := New(p)
	addChats(t, r, 3)
	r.TogglePin(0)

	r.DeleteAll()

	if r.Count() != 1 || !r.Current().IsEmpty() {
		t.Error("delete-all should leave a single fresh conversation")
	}
	if len(r.PinnedIndices()) != 0 {
		t.Error("delete-all should clear pins")
	}
}

func TestTogglePinCapacity(t *testing.T) {
	r := New(&recorder{})
	addChats(t, r, 4) // A B C D

	for i := 0; i < 3; i++ {
		if err := r.TogglePin(i); err != nil {
			t.Fatal(err)
		}
	}

	err := r.TogglePin(3)
	if !errors.Is(err, ErrPinLimit) {
		t.Errorf("err = %v, want ErrPinLimit", err)
	}
	if got := r.PinnedIndices(); !reflect.DeepEqual(got, []int{0, 1, 2}) {
		t.Errorf("pinned = %v, want [0 1 2]", got)
	}

	// Unpin frees a slot.
	if err := r.TogglePin(1); err != nil {
		t.Fatal(err)
	}
	if err := r.TogglePin(3); err != nil {
		t.Errorf("pin after unpin failed: %v", err)
	}
	if got := r.PinnedIndices(); !reflect.DeepEqual(got, []int{0, 2, 3}) {
		t.Errorf("pinned = %v, want [0 2 3]", got)
	}
}

func TestBeginTurnMovesCurrentToFront(t *testing.T) {
	r := New(&recorder{})
	addChats(t, r, 3) // A B C
	r.TogglePin(0)    // pin A
	r.Select(2)       // current C

	conv := r.BeginTurn("hello")

	if got := titles(r); !reflect.DeepEqual(got, []string{"C", "A", "B"}) {
		t.Fatalf("titles = %v", got)
	}
	if r.CurrentIndex() != 0 {
		t.Errorf("current index = %d, want 0", r.CurrentIndex())
	}
	if conv.Title != "C" || conv.MessageCount() != 1 {
		t.Errorf("turn conversation = %q with %d messages", conv.Title, conv.MessageCount())
	}
	// A's pin followed it from index 0 to index 1.
	if got := r.PinnedIndices(); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("pinned = %v, want [1]", got)
	}
}

func TestBeginTurnAlreadyFirst(t *testing.T) {
	r := New(&recorder{})
	addChats(t, r, 2)
	r.Select(0)

	r.BeginTurn("first")
	r.BeginTurn("second")

	if got := r.Current().MessageCount(); got != 2 {
		t.Errorf("message count = %d, want 2", got)
	}
}

func TestApplyReplyTargetsDispatchConversation(t *testing.T) {
	r := New(&recorder{})
	addChats(t, r, 2) // A B
	r.Select(1)

	conv := r.BeginTurn("question") // B moves to front
	targetID := conv.ID

	// The user switches away before the reply arrives.
	r.Select(1)

	ok := r.ApplyReply(targetID, model.NewAssistantMessage("answer"))
	if !ok {
		t.Fatal("reply should have been applied")
	}

	b := r.ByID(targetID)
	if b.MessageCount() != 2 {
		t.Fatalf("message count = %d, want 2", b.MessageCount())
	}
	if b.LastMessage().Content != "answer" {
		t.Errorf("last message = %q", b.LastMessage().Content)
	}
	// The conversation the user switched to is untouched.
	if r.Current().MessageCount() != 0 {
		t.Error("reply leaked into the wrong conversation")
	}
}

func TestApplyReplyDeletedConversation(t *testing.T) {
	r := New(&recorder{})
	conv := r.BeginTurn("question")
	id := conv.ID
	r.Delete(0)

	if r.ApplyReply(id, model.NewAssistantMessage("answer")) {
		t.Error("reply to a deleted conversation should be dropped")
	}
}

func TestEditMessageTruncatesAndAppends(t *testing.T) {
	r := New(&recorder{})
	conv := r.Current()
	first := conv.AddUserMessage("one")
	conv.AddAssistantMessage("reply one")
	second := conv.AddUserMessage("two")
	conv.AddAssistantMessage("reply two")

	got, err := r.EditMessage(second.ID, "two revised")
	if err != nil {
		t.Fatal(err)
	}

	// one, reply one, then the fresh edited message.
	if got.MessageCount() != 3 {
		t.Fatalf("message count = %d, want 3", got.MessageCount())
	}
	last := got.LastMessage()
	if last.Content != "two revised" || last.IsBot() {
		t.Errorf("last message = %+v", last)
	}
	if last.ID == second.ID {
		t.Error("edit should append a fresh message, not reuse the old ID")
	}

	// Editing the first message discards everything.
	if _, err := r.EditMessage(first.ID, "one revised"); err != nil {
		t.Fatal(err)
	}
	if r.Current().MessageCount() != 1 {
		t.Errorf("message count = %d, want 1", r.Current().MessageCount())
	}
}

func TestEditMessageRejections(t *testing.T) {
	r := New(&recorder{})
	conv := r.Current()
	conv.AddUserMessage("one")
	bot := conv.AddAssistantMessage("reply")

	if _, err := r.EditMessage("no-such-id", "text"); !errors.Is(err, ErrMessageNotFound) {
		t.Errorf("err = %v, want ErrMessageNotFound", err)
	}
	if _, err := r.EditMessage(bot.ID, "text"); !errors.Is(err, ErrNotUserMessage) {
		t.Errorf("err = %v, want ErrNotUserMessage", err)
	}
	if conv.MessageCount() != 2 {
		t.Error("rejected edits must not modify the conversation")
	}
}

func TestPersistMirrorsEveryMutation(t *testing.T) {
	p := &recorder{}
	r := New(p)
	addChats(t, r, 2)
	r.TogglePin(1)
	r.Select(1)

	if len(p.chats) != 2 {
		t.Fatalf("persisted chats = %d, want 2", len(p.chats))
	}
	if !reflect.DeepEqual(p.pinned, []int{1}) {
		t.Errorf("persisted pinned = %v, want [1]", p.pinned)
	}
	if p.current != 1 {
		t.Errorf("persisted current = %d, want 1", p.current)
	}

	r.BeginTurn("hi")
	if p.chats[0].Messages[0].Text != "hi" {
		t.Error("persisted snapshot missing the new message")
	}
	if p.current != 0 {
		t.Errorf("persisted current after turn = %d, want 0", p.current)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	store, err := storage.NewStoreWithDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	r := Load(store, store)
	addChats(t, r, 3)
	r.TogglePin(2)
	r.Select(1)
	r.BeginTurn("remember me") // B to front: B A C, pin on C now index 2

	r2 := Load(store, store)

	if got := titles(r2); !reflect.DeepEqual(got, titles(r)) {
		t.Fatalf("titles = %v, want %v", got, titles(r))
	}
	if r2.CurrentIndex() != r.CurrentIndex() {
		t.Errorf("current = %d, want %d", r2.CurrentIndex(), r.CurrentIndex())
	}
	if !reflect.DeepEqual(r2.PinnedIndices(), r.PinnedIndices()) {
		t.Errorf("pinned = %v, want %v", r2.PinnedIndices(), r.PinnedIndices())
	}
	if r2.Current().MessageCount() != 1 {
		t.Errorf("messages = %d, want 1", r2.Current().MessageCount())
	}
}

func TestLoadEmptyStoreSeeds(t *testing.T) {
	store, err := storage.NewStoreWithDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := Load(store, store)

	if r.Count() != 1 || !r.Current().IsEmpty() {
		t.Error("empty store should seed a single fresh conversation")
	}
}

func TestLoadClampsBadIndices(t *testing.T) {
	store, err := storage.NewStoreWithDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	r := Load(store, store)
	addChats(t, r, 2)

	// Corrupt the derived state: out-of-range pin and current index.
	store.SavePinned([]int{0, 9})
	store.SaveCurrent(42)

	r2 := Load(store, store)
	if got := r2.PinnedIndices(); !reflect.DeepEqual(got, []int{0}) {
		t.Errorf("pinned = %v, want [0]", got)
	}
	if r2.CurrentIndex() != 0 {
		t.Errorf("current = %d, want 0", r2.CurrentIndex())
	}
}

func TestLoadDedupesPinnedIndices(t *testing.T) {
	store, err := storage.NewStoreWithDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	r := Load(store, store)
	addChats(t, r, 3)

	// A corrupt payload repeating one index must not eat the pin budget.
	store.SavePinned([]int{0, 0, 0})

	r2 := Load(store, store)
	if got := r2.PinnedIndices(); !reflect.DeepEqual(got, []int{0}) {
		t.Fatalf("pinned = %v, want [0]", got)
	}
	if err := r2.TogglePin(1); err != nil {
		t.Fatalf("pin second conversation: %v", err)
	}
	if err := r2.TogglePin(0); err != nil {
		t.Fatal(err)
	}
	if r2.IsPinned(0) {
		t.Error("conversation 0 still pinned after unpin")
	}
	if got := r2.PinnedIndices(); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("pinned = %v, want [1]", got)
	}
}

func TestScenarioPinOneDeleteZero(t *testing.T) {
	r := New(&recorder{})
	addChats(t, r, 2) // A B
	if err := r.TogglePin(1); err != nil {
		t.Fatal(err)
	}
	if err := r.Delete(0); err != nil {
		t.Fatal(err)
	}
	// The pinned conversation survives at index 0.
	if got := r.PinnedIndices(); !reflect.DeepEqual(got, []int{0}) {
		t.Errorf("pinned = %v, want [0]", got)
	}
	if r.Current().Title != "B" {
		t.Errorf("current = %q, want B", r.Current().Title)
	}
}
