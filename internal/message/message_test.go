package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePage(t *testing.T) {
	raw := []byte(`{"total": 2, "items": [
		{"id": "m1", "user_id": "u1", "user_name": "Alex", "timestamp": "2024-01-01T00:00:00Z", "message": "hi"},
		{"id": "m2", "user_id": "u1"}
	]}`)

	page, err := ParsePage(raw)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "hi", page.Items[0].Message)
	assert.Empty(t, page.Items[1].Timestamp, "absent fields decode to the empty string")
}

func TestParseCorpusBareArray(t *testing.T) {
	raw := []byte(`[{"id": "m1", "user_id": "u1", "message": "hi"}]`)

	items, err := ParseCorpus(raw)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "m1", items[0].ID)
}

func TestParseCorpusPageEnvelope(t *testing.T) {
	raw := []byte(`{"total": 1, "items": [{"id": "m1"}]}`)

	items, err := ParseCorpus(raw)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "m1", items[0].ID)
}

func TestParseCorpusGarbage(t *testing.T) {
	_, err := ParseCorpus([]byte(`"just a string"`))
	assert.Error(t, err)
}
