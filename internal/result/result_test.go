package result

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItem_OptionalAccessors(t *testing.T) {
	it := Item{Index: 1, Title: "Adventure Time S10E04", DetailsURL: "/en/subtitles/1", Season: 10, Episode: 4}

	u, ok := it.Details()
	assert.True(t, ok)
	assert.Equal(t, "/en/subtitles/1", u)

	s, ok := it.SeasonNumber()
	assert.True(t, ok)
	assert.Equal(t, 10, s)
	assert.True(t, it.IsEpisode())

	empty := Item{Index: 1, Title: "Midnight Gospel"}
	_, ok = empty.Details()
	assert.False(t, ok)
	_, ok = empty.SeasonNumber()
	assert.False(t, ok)
	_, ok = empty.EpisodeNumber()
	assert.False(t, ok)
	assert.False(t, empty.IsEpisode())
}

func TestItem_JSONFieldNames(t *testing.T) {
	b, err := json.Marshal(Item{Index: 2, Title: "t", Season: 1, Episode: 8})
	require.NoError(t, err)
	assert.JSONEq(t, `{"index":2,"title":"t","detailsUrl":"","season":1,"episode":8}`, string(b))
}

func TestBatch_Valid(t *testing.T) {
	assert.NoError(t, Batch{}.Valid())
	assert.NoError(t, Batch{{Index: 1}, {Index: 2}}.Valid())
	assert.Error(t, Batch{{Index: 1}, {Index: 3}}.Valid())
	assert.Error(t, Batch{{Index: 2}}.Valid())
	assert.Error(t, Batch{{Index: 1, Season: -1}}.Valid())
}
