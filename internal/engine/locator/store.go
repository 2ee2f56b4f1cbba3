// Package locator implements the module location cache: the in-memory store,
// its two-tier persistence, and the caching resolution engine.
package locator

import (
	"encoding/json"
	"sync"

	"go.trai.ch/fastboot/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store holds the active document in memory. It is the single source of truth
// for the lifetime of a cache.
type Store struct {
	mu         sync.RWMutex
	doc        *domain.Document
	versionTag string
	onChange   func()
}

// NewStore creates a Store holding an empty document tagged with versionTag.
func NewStore(versionTag string) *Store {
	return &Store{
		doc:        domain.NewDocument(versionTag),
		versionTag: versionTag,
	}
}

// OnChange registers fn to be called after every Set.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Get returns the canonical path recorded for key.
func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	canonical, ok := s.doc.Entries[key]
	return canonical, ok
}

// Set records the canonical path for key, overwriting any previous entry.
func (s *Store) Set(key, canonical string) {
	s.mu.Lock()
	s.doc.Entries[key] = canonical
	onChange := s.onChange
	s.mu.Unlock()

	if onChange != nil {
		onChange()
	}
}

// Reset replaces the document with an empty one carrying the configured tag.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = domain.NewDocument(s.versionTag)
}

// Replace adopts a loaded document.
func (s *Store) Replace(doc *domain.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
}

// Accepts reports whether doc may be adopted under the configured version tag.
func (s *Store) Accepts(doc *domain.Document) bool {
	return doc.Matches(s.versionTag)
}

// VersionTag returns the tag of the active document.
func (s *Store) VersionTag() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.VersionTag
}

// Len returns the number of entries in the active document.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Len()
}

// Snapshot returns a copy of the active document.
func (s *Store) Snapshot() *domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// Marshal serializes the active document.
func (s *Store) Marshal() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := json.Marshal(s.doc)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrDocumentMarshalFailed.Error())
	}
	return data, nil
}
