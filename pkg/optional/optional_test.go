package optional

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Apply(t *testing.T) {
	title := "old"

	None[string]().Apply(&title)
	assert.Equal(t, "old", title)

	Of("new").Apply(&title)
	assert.Equal(t, "new", title)

	// 零值也是有效的更新
	Of("").Apply(&title)
	assert.Equal(t, "", title)
}

func TestValue_Get(t *testing.T) {
	_, ok := None[int]().Get()
	assert.False(t, ok)

	got, ok := Of(0).Get()
	assert.True(t, ok)
	assert.Equal(t, 0, got)
}

func TestValue_UnmarshalJSON(t *testing.T) {
	var body struct {
		Title  Value[string] `json:"title"`
		Author Value[string] `json:"author"`
		Genre  Value[string] `json:"genre"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Dune","genre":null}`), &body))

	title, ok := body.Title.Get()
	assert.True(t, ok)
	assert.Equal(t, "Dune", title)
	_, ok = body.Author.Get()
	assert.False(t, ok)
	_, ok = body.Genre.Get()
	assert.False(t, ok)
}
