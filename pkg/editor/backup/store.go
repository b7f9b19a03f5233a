// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package backup holds pre-edit file snapshots so an edit can be undone. The
// store is an explicit object owned by the hosting process and passed to
// whoever needs it; there is no package-level singleton.
package backup

import (
	"sync"
	"time"
)

// 📸 Snapshot is a file's content captured before a mutation
type Snapshot struct {
	Content   string    // file content at capture time
	Path      string    // file the snapshot was taken from
	Timestamp time.Time // when the snapshot was taken
}

// 🗄️ Store keeps at most one snapshot per path
type Store struct {
	mu        sync.Mutex
	snapshots map[string]Snapshot
}

// 🏭 NewStore creates an empty snapshot store
func NewStore() *Store {
	return &Store{
		snapshots: make(map[string]Snapshot),
	}
}

// Save captures content as the snapshot for path, replacing any prior one.
func (s *Store) Save(path, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshots[path] = Snapshot{
		Content:   content,
		Path:      path,
		Timestamp: time.Now().UTC(),
	}
}

// Take removes and returns the snapshot for path, if one exists. A snapshot is
// single-use: restoring from it consumes it.
func (s *Store) Take(path string) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.snapshots[path]
	if ok {
		delete(s.snapshots, path)
	}
	return snap, ok
}

// Len returns the number of stored snapshots.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.snapshots)
}
