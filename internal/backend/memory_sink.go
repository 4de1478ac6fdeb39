// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package backend

import (
	"context"
	"sync"
	"time"
)

type memorySink struct {
	backend *MemoryBackend
	user    string
	events  chan string
	restart <-chan struct{}

	mu      sync.Mutex
	watched map[string]struct{}
}

func newMemorySink(b *MemoryBackend, user string) *memorySink {
	b.mu.RLock()
	restart := b.restart
	b.mu.RUnlock()

	return &memorySink{
		backend: b,
		user:    user,
		events:  make(chan string, 64),
		restart: restart,
		watched: make(map[string]struct{}),
	}
}

func (s *memorySink) Watch(ctx context.Context, folderIDs []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	for _, id := range folderIDs {
		s.watched[id] = struct{}{}
	}
	s.mu.Unlock()

	b := s.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	select {
	case <-s.restart:
		return ErrSinkObsolete
	default:
	}
	u, err := b.user(s.user)
	if err != nil {
		return err
	}
	u.sinkList[s] = struct{}{}
	return nil
}

func (s *memorySink) Wait(ctx context.Context, timeout time.Duration) ([]string, error) {
	timer := s.backend.clock.NewTimer(timeout)
	defer timer.Stop()

	var changed []string
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.restart:
		return nil, ErrSinkObsolete
	case <-timer.Chan():
		return nil, nil
	case id := <-s.events:
		changed = append(changed, id)
	}

	for {
		select {
		case id := <-s.events:
			changed = append(changed, id)
		default:
			return dedup(changed), nil
		}
	}
}

func (s *memorySink) Close() error {
	b := s.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	if u, err := b.user(s.user); err == nil {
		delete(u.sinkList, s)
	}
	return nil
}

// signal is called with the backend write lock held and must not block.
func (s *memorySink) signal(folderID string) {
	s.mu.Lock()
	_, ok := s.watched[folderID]
	s.mu.Unlock()
	if !ok {
		return
	}
	select {
	case s.events <- folderID:
	default:
	}
}

func dedup(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
