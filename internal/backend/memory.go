// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package backend

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-eas-sync/models"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/bcrypt"
)

// KindMemory names the in-memory backend.
const KindMemory = "memory"

type memoryItem struct {
	id       string
	version  uint64
	received time.Time
	item     models.Item
}

type memoryFolder struct {
	folder models.BackendFolder
	items  map[string]*memoryItem
	// version grows with every change in the folder and doubles as the
	// item version counter.
	version uint64
}

type memoryUser struct {
	name     string
	hash     []byte
	folders  map[string]*memoryFolder
	order    []string
	sinkList map[*memorySink]struct{}
}

// MemoryBackend keeps users, folders and items in process memory. It is
// used by tests and by single-node deployments seeded from a file.
type MemoryBackend struct {
	mu      sync.RWMutex
	users   map[string]*memoryUser
	clock   clockwork.Clock
	restart chan struct{}
}

// NewMemoryBackend returns an empty store.
func NewMemoryBackend(clock clockwork.Clock) *MemoryBackend {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryBackend{
		users:   make(map[string]*memoryUser),
		clock:   clock,
		restart: make(chan struct{}),
	}
}

func (b *MemoryBackend) Name() string {
	return KindMemory
}

// AddUser registers user with a plain password.
func (b *MemoryBackend) AddUser(name, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return fmt.Errorf("error hashing password of %s: %w", name, err)
	}
	return b.AddUserHash(name, string(hash))
}

// AddUserHash registers user with a bcrypt password hash.
func (b *MemoryBackend) AddUserHash(name, hash string) error {
	if name == "" {
		return fmt.Errorf("%w: empty user name", ErrNotFound)
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return fmt.Errorf("invalid password hash of %s: %w", name, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	key := strings.ToLower(name)
	if u, ok := b.users[key]; ok {
		u.hash = []byte(hash)
		return nil
	}
	b.users[key] = &memoryUser{
		name:     name,
		hash:     []byte(hash),
		folders:  make(map[string]*memoryFolder),
		sinkList: make(map[*memorySink]struct{}),
	}
	return nil
}

// AddFolder creates or renames a folder of user.
func (b *MemoryBackend) AddFolder(user string, folder models.BackendFolder) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	u, err := b.user(user)
	if err != nil {
		return err
	}
	if folder.ID == "" {
		folder.ID = uuid.NewString()
	}
	if f, ok := u.folders[folder.ID]; ok {
		f.folder = folder
		f.version++
		return nil
	}
	u.folders[folder.ID] = &memoryFolder{folder: folder, items: make(map[string]*memoryItem)}
	u.order = append(u.order, folder.ID)
	return nil
}

// RemoveFolder deletes a folder and its items.
func (b *MemoryBackend) RemoveFolder(user, folderID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	u, err := b.user(user)
	if err != nil {
		return err
	}
	if _, ok := u.folders[folderID]; !ok {
		return fmt.Errorf("%w: folder %s", ErrNotFound, folderID)
	}
	delete(u.folders, folderID)
	for i, id := range u.order {
		if id == folderID {
			u.order = append(u.order[:i], u.order[i+1:]...)
			break
		}
	}
	b.notify(u, folderID)
	return nil
}

// PutItem stores item in a folder. An empty itemID generates one. The
// stored id is returned.
func (b *MemoryBackend) PutItem(user, folderID, itemID string, item models.Item, received time.Time) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	u, err := b.user(user)
	if err != nil {
		return "", err
	}
	f, ok := u.folders[folderID]
	if !ok {
		return "", fmt.Errorf("%w: folder %s", ErrNotFound, folderID)
	}
	if received.IsZero() {
		received = b.clock.Now()
	}
	id := b.put(f, itemID, item, received)
	b.notify(u, folderID)
	return id, nil
}

// DeleteItem removes an item from a folder.
func (b *MemoryBackend) DeleteItem(user, folderID, itemID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	u, err := b.user(user)
	if err != nil {
		return err
	}
	f, ok := u.folders[folderID]
	if !ok {
		return fmt.Errorf("%w: folder %s", ErrNotFound, folderID)
	}
	if _, ok := f.items[itemID]; !ok {
		return fmt.Errorf("%w: item %s", ErrNotFound, itemID)
	}
	delete(f.items, itemID)
	f.version++
	b.notify(u, folderID)
	return nil
}

// Restart invalidates every change sink, the way a store restart drops
// notification subscriptions.
func (b *MemoryBackend) Restart() {
	b.mu.Lock()
	defer b.mu.Unlock()

	close(b.restart)
	b.restart = make(chan struct{})
	for _, u := range b.users {
		u.sinkList = make(map[*memorySink]struct{})
	}
}

func (b *MemoryBackend) Logon(_ context.Context, user, password string) (Session, error) {
	b.mu.RLock()
	u, ok := b.users[strings.ToLower(user)]
	var hash []byte
	if ok {
		hash = u.hash
	}
	b.mu.RUnlock()

	if !ok {
		return nil, ErrAuthFailed
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return nil, ErrAuthFailed
	}
	return &memorySession{backend: b, user: u.name}, nil
}

// put stores an item; callers hold the write lock.
func (b *MemoryBackend) put(f *memoryFolder, itemID string, item models.Item, received time.Time) string {
	if itemID == "" {
		itemID = uuid.NewString()
	}
	f.version++
	if existing, ok := f.items[itemID]; ok {
		existing.item = item
		existing.version = f.version
		return itemID
	}
	f.items[itemID] = &memoryItem{id: itemID, version: f.version, received: received, item: item}
	return itemID
}

// user resolves a user; callers hold the lock.
func (b *MemoryBackend) user(name string) (*memoryUser, error) {
	u, ok := b.users[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, name)
	}
	return u, nil
}

// folder resolves a folder of a user; callers hold the lock.
func (b *MemoryBackend) folder(user, folderID string) (*memoryUser, *memoryFolder, error) {
	u, err := b.user(user)
	if err != nil {
		return nil, nil, err
	}
	f, ok := u.folders[folderID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: folder %s", ErrNotFound, folderID)
	}
	return u, f, nil
}

// deletedItemsFolder returns the folder deletes are moved to, if any.
func (u *memoryUser) deletedItemsFolder() (*memoryFolder, bool) {
	for _, id := range u.order {
		if f := u.folders[id]; f.folder.Type == models.FolderTypeDeletedItems {
			return f, true
		}
	}
	return nil, false
}

// notify wakes the sinks watching folderID; callers hold the write lock.
func (b *MemoryBackend) notify(u *memoryUser, folderID string) {
	for sink := range u.sinkList {
		sink.signal(folderID)
	}
}

// sortedItems returns the items of f by receive time, oldest first.
func sortedItems(f *memoryFolder) []*memoryItem {
	items := make([]*memoryItem, 0, len(f.items))
	for _, it := range f.items {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].received.Equal(items[j].received) {
			return items[i].received.Before(items[j].received)
		}
		return items[i].id < items[j].id
	})
	return items
}
