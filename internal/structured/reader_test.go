package structured_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/rommap/internal/structured"
)

func TestRead_ArrayOfObjects(t *testing.T) {
	t.Parallel()

	payload := `[
		{"game_id":"1","game_name":"Foo","ch_name":"富"},
		{"game_id":"2","game_name":"Bar","ch_name":""}
	]`

	headers, rows, err := structured.Read(payload)
	require.NoError(t, err)

	assert.Equal(t, []string{"game_id", "game_name", "ch_name"}, headers)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1", "Foo", "富"}, rows[0])
	assert.Equal(t, []string{"2", "Bar", ""}, rows[1])
}

func TestRead_HeaderOrderPreferredThenSorted(t *testing.T) {
	t.Parallel()

	payload := `[
		{"zeta":"z", "date":"2024-01-01", "alpha":"a", "game_name":"Foo", "UMD_ID":"ULJM0001"}
	]`

	headers, _, err := structured.Read(payload)
	require.NoError(t, err)

	assert.Equal(t, []string{"game_name", "UMD_ID", "date", "alpha", "zeta"}, headers)
}

func TestRead_MissingKeysBecomeEmpty(t *testing.T) {
	t.Parallel()

	payload := `[
		{"game_id":"1","game_name":"Foo"},
		{"game_id":"2","extra":"x"}
	]`

	headers, rows, err := structured.Read(payload)
	require.NoError(t, err)

	assert.Equal(t, []string{"game_id", "game_name", "extra"}, headers)
	assert.Equal(t, []string{"1", "Foo", ""}, rows[0])
	assert.Equal(t, []string{"2", "", "x"}, rows[1])
}

func TestRead_ValueStringification(t *testing.T) {
	t.Parallel()

	payload := `[
		{"game_id": 7, "tags": ["act", "rpg"], "date": null, "patched": true}
	]`

	headers, rows, err := structured.Read(payload)
	require.NoError(t, err)

	require.Equal(t, []string{"game_id", "date", "patched", "tags"}, headers)
	assert.Equal(t, []string{"7", "", "true", "act|rpg"}, rows[0])
}

func TestRead_NotStructured(t *testing.T) {
	t.Parallel()

	for name, payload := range map[string]string{
		"object":        `{"a": 1}`,
		"empty array":   `[]`,
		"scalar array":  `[1, 2, 3]`,
		"null first":    `[null, {"a": "b"}]`,
		"not json":      `<html><body>nope</body></html>`,
		"string scalar": `"hello"`,
	} {
		payload := payload
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, _, err := structured.Read(payload)
			assert.ErrorIs(t, err, structured.ErrNotStructured)
		})
	}
}
