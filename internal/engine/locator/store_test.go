package locator_test

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fastboot/internal/core/domain"
	"go.trai.ch/fastboot/internal/engine/locator"
)

func TestNewStore(t *testing.T) {
	s := locator.NewStore("1.0.0")

	assert.Equal(t, "1.0.0", s.VersionTag())
	assert.Equal(t, 0, s.Len())

	_, ok := s.Get("./:express")
	assert.False(t, ok)
}

func TestStore_Set(t *testing.T) {
	s := locator.NewStore("1.0.0")

	changes := 0
	s.OnChange(func() { changes++ })

	s.Set("./:express", "node_modules/express/index.js")
	s.Set("./:express", "node_modules/express/lib/express.js")

	got, ok := s.Get("./:express")
	require.True(t, ok)
	assert.Equal(t, "node_modules/express/lib/express.js", got)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 2, changes)
}

func TestStore_Reset(t *testing.T) {
	s := locator.NewStore("1.0.0")

	loaded := domain.NewDocument("0.9.0")
	loaded.Entries["./:express"] = "node_modules/express/index.js"
	s.Replace(loaded)
	require.Equal(t, "0.9.0", s.VersionTag())
	require.Equal(t, 1, s.Len())

	s.Reset()

	assert.Equal(t, "1.0.0", s.VersionTag())
	assert.Equal(t, 0, s.Len())
}

func TestStore_Accepts(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		document   string
		want       bool
	}{
		{name: "same tag", configured: "1.0.0", document: "1.0.0", want: true},
		{name: "different tag", configured: "1.0.1", document: "1.0.0", want: false},
		{name: "untagged document", configured: "1.0.0", document: "", want: false},
		{name: "no configured tag", configured: "", document: "1.0.0", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := locator.NewStore(tt.configured)
			assert.Equal(t, tt.want, s.Accepts(domain.NewDocument(tt.document)))
		})
	}
}

func TestStore_Snapshot_IsCopy(t *testing.T) {
	s := locator.NewStore("1.0.0")
	s.Set("./:a", "node_modules/a/index.js")

	snap := s.Snapshot()
	snap.Entries["./:b"] = "node_modules/b/index.js"

	assert.Equal(t, 1, s.Len())
}

func TestStore_Marshal(t *testing.T) {
	s := locator.NewStore("1.0.0")
	s.Set("./:express", "node_modules/express/index.js")
	s.Set("node_modules/express/index.js:./lib/express", "node_modules/express/lib/express.js")
	s.Set("src/app.js:lodash", "node_modules/lodash/lodash.js")

	data, err := s.Marshal()
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "store_marshal", data)
}

func TestStore_Marshal_Untagged(t *testing.T) {
	s := locator.NewStore("")
	s.Set("./:express", "node_modules/express/index.js")

	data, err := s.Marshal()
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "store_marshal_untagged", data)
}
