// Copyright (c) 2025 Froydinger Media Group
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides local persistence for arcana.
package storage

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"

	"github.com/froydinger/arcana-tui/internal/util"
)

// Storage keys. Each key is an independent JSON file under the base
// directory; absence of any key means "use defaults", never an error
// the caller must abort on.
const (
	KeyChats   = "chats"
	KeyPinned  = "pinned"
	KeyCurrent = "current"
)

// ErrKeyAbsent is returned by Load when the key is missing, unreadable,
// or structurally corrupt. Corrupt keys are deleted so the next load
// starts clean.
var ErrKeyAbsent = errors.New("storage key absent")

// =============================================================================
// STORE
// =============================================================================

// Store persists JSON values keyed by name under a base directory,
// one file per key. Writes are atomic; write failures are logged and
// swallowed so a full disk or permission problem never crashes the app.
type Store struct {
	// BaseDir is the directory holding the key files.
	// Default: ~/.arcana
	BaseDir string
}

// NewStore creates a store rooted at ~/.arcana.
func NewStore() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewStoreWithDir(filepath.Join(home, ".arcana"))
}

// NewStoreWithDir creates a store rooted at a custom directory.
func NewStoreWithDir(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Store{BaseDir: dir}, nil
}

// =============================================================================
// SAVE / LOAD
// =============================================================================

// Save serializes v and writes it under key. Failures are logged and
// swallowed: a failed save must not propagate into the UI loop.
func (s *Store) Save(key string, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Printf("storage: failed to encode %q: %v", key, err)
		return
	}
	if err := util.AtomicWriteFile(s.filePath(key), data, 0644); err != nil {
		log.Printf("storage: failed to write %q: %v", key, err)
	}
}

// Load reads key into v. It returns ErrKeyAbsent when the key is missing
// or when its contents fail to parse; a corrupt file is deleted so the
// store self-heals.
func (s *Store) Load(key string, v any) error {
	path := s.filePath(key)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrKeyAbsent
		}
		log.Printf("storage: failed to read %q: %v", key, err)
		return ErrKeyAbsent
	}

	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("storage: corrupt data under %q, discarding: %v", key, err)
		s.Delete(key)
		return ErrKeyAbsent
	}

	return nil
}

// Delete removes a key. Missing keys are fine.
func (s *Store) Delete(key string) {
	if err := os.Remove(s.filePath(key)); err != nil && !os.IsNotExist(err) {
		log.Printf("storage: failed to delete %q: %v", key, err)
	}
}

// Clear removes every key file in the store directory.
func (s *Store) Clear() {
	entries, err := os.ReadDir(s.BaseDir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			os.Remove(filepath.Join(s.BaseDir, entry.Name()))
		}
	}
}

func (s *Store) filePath(key string) string {
	return filepath.Join(s.BaseDir, key+".json")
}

// =============================================================================
// TYPED HELPERS
// =============================================================================

// LoadChats returns the persisted conversation snapshots, or ErrKeyAbsent.
func (s *Store) LoadChats() ([]StoredConversation, error) {
	var chats []StoredConversation
	if err := s.Load(KeyChats, &chats); err != nil {
		return nil, err
	}
	for i := range chats {
		chats[i].normalize()
	}
	return chats, nil
}

// SaveChats persists the conversation snapshots.
func (s *Store) SaveChats(chats []StoredConversation) {
	s.Save(KeyChats, chats)
}

// LoadPinned returns the persisted pinned-index list. A payload that is
// not an array of non-negative integers is treated as corrupt, deleted,
// and reported absent.
func (s *Store) LoadPinned() ([]int, error) {
	var pinned []int
	if err := s.Load(KeyPinned, &pinned); err != nil {
		return nil, err
	}
	for _, idx := range pinned {
		if idx < 0 {
			log.Printf("storage: invalid pinned index %d, discarding pinned set", idx)
			s.Delete(KeyPinned)
			return nil, ErrKeyAbsent
		}
	}
	return pinned, nil
}

// SavePinned persists the pinned-index list.
func (s *Store) SavePinned(pinned []int) {
	if pinned == nil {
		pinned = []int{}
	}
	s.Save(KeyPinned, pinned)
}

// LoadCurrent returns the persisted current-conversation index.
func (s *Store) LoadCurrent() (int, error) {
	var current int
	if err := s.Load(KeyCurrent, &current); err != nil {
		return 0, err
	}
	if current < 0 {
		s.Delete(KeyCurrent)
		return 0, ErrKeyAbsent
	}
	return current, nil
}

// SaveCurrent persists the current-conversation index.
func (s *Store) SaveCurrent(current int) {
	s.Save(KeyCurrent, current)
}
