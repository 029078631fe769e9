// Copyright (c) 2025 Froydinger Media Group
// SPDX-License-Identifier: AGPL-3.0-or-later

package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/froydinger/arcana-tui/internal/model"
	"github.com/froydinger/arcana-tui/internal/storage"
)

// =============================================================================
// CONVERSATION REGISTRY
// =============================================================================

// MaxPinned is the pin capacity.
const MaxPinned = 3

var (
	// ErrPinLimit indicates the pin capacity is already used up.
	ErrPinLimit = errors.New("pin limit reached")

	// ErrInvalidIndex indicates an out-of-range conversation index.
	ErrInvalidIndex = errors.New("invalid conversation index")

	// ErrMessageNotFound indicates the message ID is not in the conversation.
	ErrMessageNotFound = errors.New("message not found")

	// ErrNotUserMessage indicates an edit attempt on an assistant message.
	ErrNotUserMessage = errors.New("only user messages can be edited")
)

// Persister receives the registry state after every mutation. The
// storage.Store satisfies it; tests substitute a recorder.
type Persister interface {
	SaveChats(chats []storage.StoredConversation)
	SavePinned(pinned []int)
	SaveCurrent(current int)
}

// Registry holds the ordered conversation list, the pin set, and the
// current selection. Pins and the current selection are tracked by
// conversation ID internally so they follow their conversation through
// reorders; the public accessors expose them as list indices.
type Registry struct {
	mu            sync.Mutex
	conversations []*model.Conversation
	pinnedIDs     []string
	currentID     string
	persister     Persister
}

// New creates a registry seeded with a single empty conversation.
func New(p Persister) *Registry {
	r := &Registry{persister: p}
	r.seed()
	r.persist()
	return r
}

// Load creates a registry from persisted state. Missing or unusable
// state falls back to the fresh single-conversation seed.
func Load(store *storage.Store, p Persister) *Registry {
	r := &Registry{persister: p}

	stored, err := store.LoadChats()
	if err != nil || len(stored) == 0 {
		r.seed()
		r.persist()
		return r
	}

	for _, sc := range stored {
		r.conversations = append(r.conversations, storage.RestoreConversation(sc))
	}

	if pinned, err := store.LoadPinned(); err == nil {
		for _, idx := range pinned {
			if idx < 0 || idx >= len(r.conversations) || len(r.pinnedIDs) >= MaxPinned {
				continue
			}
			// A corrupt payload can repeat an index; pin each chat once.
			if id := r.conversations[idx].ID; !r.isPinnedIDLocked(id) {
				r.pinnedIDs = append(r.pinnedIDs, id)
			}
		}
	}

	current, err := store.LoadCurrent()
	if err != nil || current < 0 || current >= len(r.conversations) {
		current = 0
	}
	r.currentID = r.conversations[current].ID

	return r
}

// seed resets the registry to a single fresh conversation.
func (r *Registry) seed() {
	conv := model.NewConversation()
	r.conversations = []*model.Conversation{conv}
	r.pinnedIDs = nil
	r.currentID = conv.ID
}

// persist mirrors the full state to the persister. Called with the lock held.
func (r *Registry) persist() {
	if r.persister == nil {
		return
	}
	chats := make([]storage.StoredConversation, len(r.conversations))
	for i, conv := range r.conversations {
		chats[i] = storage.SnapshotConversation(conv)
	}
	r.persister.SaveChats(chats)
	r.persister.SavePinned(r.pinnedIndicesLocked())
	r.persister.SaveCurrent(r.currentIndexLocked())
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Conversations returns the conversation list in display order.
func (r *Registry) Conversations() []*model.Conversation {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.Conversation, len(r.conversations))
	copy(out, r.conversations)
	return out
}

// Count returns the number of conversations.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conversations)
}

// Current returns the current conversation.
func (r *Registry) Current() *model.Conversation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.conversations[r.currentIndexLocked()]
}

// CurrentIndex returns the index of the current conversation.
func (r *Registry) CurrentIndex() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currentIndexLocked()
}

func (r *Registry) currentIndexLocked() int {
	for i, conv := range r.conversations {
		if conv.ID == r.currentID {
			return i
		}
	}
	return 0
}

// PinnedIndices returns the pinned conversation indices in ascending order.
func (r *Registry) PinnedIndices() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pinnedIndicesLocked()
}

func (r *Registry) pinnedIndicesLocked() []int {
	indices := make([]int, 0, len(r.pinnedIDs))
	for i, conv := range r.conversations {
		for _, id := range r.pinnedIDs {
			if conv.ID == id {
				indices = append(indices, i)
				break
			}
		}
	}
	sort.Ints(indices)
	return indices
}

// IsPinned reports whether the conversation at index i is pinned.
func (r *Registry) IsPinned(i int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i < 0 || i >= len(r.conversations) {
		return false
	}
	return r.isPinnedIDLocked(r.conversations[i].ID)
}

func (r *Registry) isPinnedIDLocked(id string) bool {
	for _, pid := range r.pinnedIDs {
		if pid == id {
			return true
		}
	}
	return false
}

// ByID returns the conversation with the given ID, or nil.
func (r *Registry) ByID(id string) *model.Conversation {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, conv := range r.conversations {
		if conv.ID == id {
			return conv
		}
	}
	return nil
}

// =============================================================================
// MUTATIONS
// =============================================================================

// NewChat prepends a fresh conversation and makes it current. Pinned
// conversations keep their pins; their indices shift down by one.
func (r *Registry) NewChat() *model.Conversation {
	r.mu.Lock()
	defer r.mu.Unlock()

	conv := model.NewConversation()
	r.conversations = append([]*model.Conversation{conv}, r.conversations...)
	r.currentID = conv.ID
	r.persist()
	return conv
}

// Select makes the conversation at index i current. An out-of-range
// index falls back to the first conversation and reports the problem.
func (r *Registry) Select(i int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i < 0 || i >= len(r.conversations) {
		r.currentID = r.conversations[0].ID
		r.persist()
		return fmt.Errorf("%w: %d", ErrInvalidIndex, i)
	}
	r.currentID = r.conversations[i].ID
	r.persist()
	return nil
}

// Rename sets the title of the conversation at index i.
func (r *Registry) Rename(i int, title string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i < 0 || i >= len(r.conversations) {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, i)
	}
	r.conversations[i].SetTitle(title)
	r.persist()
	return nil
}

// Delete removes the conversation at index i. Deleting the current
// conversation selects the one before it (or the first). Deleting the
// last conversation reseeds a fresh empty one.
func (r *Registry) Delete(i int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i < 0 || i >= len(r.conversations) {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, i)
	}

	deleted := r.conversations[i]
	wasCurrent := deleted.ID == r.currentID

	r.conversations = append(r.conversations[:i], r.conversations[i+1:]...)
	r.removePinLocked(deleted.ID)

	if len(r.conversations) == 0 {
		r.seed()
	} else if wasCurrent {
		r.currentID = r.conversations[max(0, i-1)].ID
	}
	// A surviving current conversation keeps its identity; its index
	// adjusts implicitly.

	r.persist()
	return nil
}

// DeleteAll removes every conversation and reseeds a single fresh one.
func (r *Registry) DeleteAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seed()
	r.persist()
}

// TogglePin pins or unpins the conversation at index i. Pinning past
// the capacity returns ErrPinLimit and changes nothing.
func (r *Registry) TogglePin(i int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i < 0 || i >= len(r.conversations) {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, i)
	}

	id := r.conversations[i].ID
	if r.isPinnedIDLocked(id) {
		r.removePinLocked(id)
		r.persist()
		return nil
	}
	if len(r.pinnedIDs) >= MaxPinned {
		return ErrPinLimit
	}
	r.pinnedIDs = append(r.pinnedIDs, id)
	r.persist()
	return nil
}

func (r *Registry) removePinLocked(id string) {
	for idx, pid := range r.pinnedIDs {
		if pid == id {
			r.pinnedIDs = append(r.pinnedIDs[:idx], r.pinnedIDs[idx+1:]...)
			return
		}
	}
}

// BeginTurn moves the current conversation to the front of the list and
// appends the user's message to it. Pins follow their conversations.
// Returns the conversation the turn belongs to.
func (r *Registry) BeginTurn(text string) *model.Conversation {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.currentIndexLocked()
	conv := r.conversations[cur]
	if cur != 0 {
		r.conversations = append(r.conversations[:cur], r.conversations[cur+1:]...)
		r.conversations = append([]*model.Conversation{conv}, r.conversations...)
	}
	conv.AddUserMessage(text)
	r.persist()
	return conv
}

// ApplyReply appends a reply to the conversation with the given ID.
// The ID was captured when the turn was dispatched, so a reply landing
// after the user switched or reordered chats still reaches the right
// conversation. Returns false if that conversation no longer exists.
func (r *Registry) ApplyReply(convID string, reply *model.Message) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, conv := range r.conversations {
		if conv.ID == convID {
			conv.AddMessage(reply)
			r.persist()
			return true
		}
	}
	return false
}

// EditMessage rewrites a user message in the current conversation. The
// edited message and everything after it are discarded and a fresh user
// message with the new text is appended, ready to be resent. Returns
// the conversation for the resend.
func (r *Registry) EditMessage(messageID, newText string) (*model.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conv := r.conversations[r.currentIndexLocked()]
	msg, idx := conv.MessageByID(messageID)
	if idx == -1 {
		return nil, ErrMessageNotFound
	}
	if msg.IsBot() {
		return nil, ErrNotUserMessage
	}

	conv.TruncateBefore(idx)
	conv.AddUserMessage(newText)
	r.persist()
	return conv, nil
}
