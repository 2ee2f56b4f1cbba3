package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fastboot/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestParseDocument(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantTag string
		want    map[string]string
	}{
		{
			name:    "tagged",
			input:   `{"_cacheKiller":"1.0.0","./:express":"node_modules/express/index.js"}`,
			wantTag: "1.0.0",
			want:    map[string]string{"./:express": "node_modules/express/index.js"},
		},
		{
			name:  "untagged",
			input: `{"src/app.js:lodash":"node_modules/lodash/lodash.js"}`,
			want:  map[string]string{"src/app.js:lodash": "node_modules/lodash/lodash.js"},
		},
		{
			name:  "null tag",
			input: `{"_cacheKiller":null}`,
			want:  map[string]string{},
		},
		{
			name:  "empty object",
			input: `{}`,
			want:  map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := domain.ParseDocument([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.wantTag, doc.VersionTag)
			assert.Equal(t, tt.want, doc.Entries)
		})
	}
}

func TestParseDocument_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "truncated", input: `{"_cacheKiller":`},
		{name: "array", input: `["a","b"]`},
		{name: "null", input: `null`},
		{name: "numeric tag", input: `{"_cacheKiller":1}`},
		{name: "numeric entry", input: `{"./:express":1}`},
		{name: "null entry", input: `{"./:express":null}`},
		{name: "empty", input: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.ParseDocument([]byte(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), domain.ErrDocumentParseFailed.Error())
		})
	}
}

func TestParseDocument_InvalidEntryMetadata(t *testing.T) {
	var doc domain.Document
	err := json.Unmarshal([]byte(`{"./:express":true}`), &doc)
	require.Error(t, err)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, "./:express", zErr.Metadata()["key"])
}

func TestDocument_MarshalJSON(t *testing.T) {
	doc := domain.NewDocument("1.0.0")
	doc.Entries["./:express"] = "node_modules/express/index.js"

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"_cacheKiller":"1.0.0","./:express":"node_modules/express/index.js"}`, string(data))

	parsed, err := domain.ParseDocument(data)
	require.NoError(t, err)
	assert.Equal(t, doc, parsed)
}

func TestDocument_MarshalJSON_OmitsEmptyTag(t *testing.T) {
	data, err := json.Marshal(domain.NewDocument(""))
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestDocument_Matches(t *testing.T) {
	doc := domain.NewDocument("1.0.0")

	assert.True(t, doc.Matches("1.0.0"))
	assert.True(t, doc.Matches(""))
	assert.False(t, doc.Matches("1.0.1"))
}

func TestDocument_KeysAndClone(t *testing.T) {
	doc := domain.NewDocument("1.0.0")
	doc.Entries["b:x"] = "node_modules/x.js"
	doc.Entries["a:y"] = "node_modules/y.js"

	assert.Equal(t, []string{"a:y", "b:x"}, doc.Keys())
	assert.Equal(t, 2, doc.Len())

	clone := doc.Clone()
	clone.Entries["c:z"] = "node_modules/z.js"
	assert.Equal(t, 2, doc.Len())
	assert.Equal(t, "1.0.0", clone.VersionTag)
}
