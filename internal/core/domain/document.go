package domain

import (
	"encoding/json"
	"maps"
	"slices"

	"go.trai.ch/zerr"
)

// VersionTagKey is the reserved document key that holds the version tag.
const VersionTagKey = "_cacheKiller"

// Document is the persisted unit of the module location cache: composite keys
// mapped to scope-relative paths, plus the version tag that invalidates it.
//
// On disk it is a single flat JSON object where VersionTagKey holds the tag
// and every other key is a composite key.
type Document struct {
	// VersionTag is the invalidation token. Empty means absent.
	VersionTag string
	// Entries maps composite keys to canonical relative paths.
	Entries map[string]string
}

// NewDocument returns an empty document carrying the given version tag.
func NewDocument(versionTag string) *Document {
	return &Document{
		VersionTag: versionTag,
		Entries:    make(map[string]string),
	}
}

// ParseDocument decodes a persisted document.
func ParseDocument(data []byte) (*Document, error) {
	doc := NewDocument("")
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, zerr.Wrap(err, ErrDocumentParseFailed.Error())
	}
	return doc, nil
}

// Matches reports whether the document may be adopted under the configured
// version tag. An empty configured tag accepts any document.
func (d *Document) Matches(versionTag string) bool {
	return versionTag == "" || d.VersionTag == versionTag
}

// Len returns the number of entries, not counting the version tag.
func (d *Document) Len() int {
	return len(d.Entries)
}

// Keys returns the composite keys in sorted order.
func (d *Document) Keys() []string {
	return slices.Sorted(maps.Keys(d.Entries))
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	return &Document{
		VersionTag: d.VersionTag,
		Entries:    maps.Clone(d.Entries),
	}
}

// MarshalJSON encodes the document as a flat JSON object.
func (d *Document) MarshalJSON() ([]byte, error) {
	flat := make(map[string]string, len(d.Entries)+1)
	maps.Copy(flat, d.Entries)
	if d.VersionTag != "" {
		flat[VersionTagKey] = d.VersionTag
	}
	return json.Marshal(flat)
}

// UnmarshalJSON decodes a flat JSON object. The version tag may be a string,
// null or absent; every other value must be a string.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return zerr.New("document is null")
	}

	entries := make(map[string]string, len(raw))
	var tag string
	for key, value := range raw {
		if key == VersionTagKey {
			if string(value) == "null" {
				continue
			}
			if err := json.Unmarshal(value, &tag); err != nil {
				return zerr.With(zerr.Wrap(err, "version tag is not a string"), "key", key)
			}
			continue
		}

		var path string
		if err := json.Unmarshal(value, &path); err != nil || string(value) == "null" {
			return zerr.With(ErrDocumentInvalidEntry, "key", key)
		}
		entries[key] = path
	}

	d.VersionTag = tag
	d.Entries = entries
	return nil
}
