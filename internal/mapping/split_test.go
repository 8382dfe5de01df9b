package mapping_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/rommap/internal/mapping"
)

func TestSplitPair(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		english string
		chinese string
	}{
		{
			name:    "cjk boundary",
			in:      "Light Crusader (JE) 光之十字军战士(日欧)",
			english: "Light Crusader (JE)",
			chinese: "光之十字军战士(日欧)",
		},
		{
			name:    "uppercase token glued to chinese reattaches",
			in:      "EA Hockey League (U) EA冰球联盟",
			english: "EA Hockey League (U)",
			chinese: "EA冰球联盟",
		},
		{
			name:    "lowercase token stays english",
			in:      "Sonic the Hedgehog 刺猬索尼克",
			english: "Sonic the Hedgehog",
			chinese: "刺猬索尼克",
		},
		{
			name:    "long uppercase token stays english",
			in:      "Game TECMO世界杯",
			english: "Game TECMO",
			chinese: "世界杯",
		},
		{
			name:    "no cjk means all english",
			in:      "Columns III",
			english: "Columns III",
			chinese: "",
		},
		{
			name:    "pure chinese",
			in:      "光明力量",
			english: "",
			chinese: "光明力量",
		},
		{
			name:    "internal whitespace collapsed",
			in:      "  Shining   Force   光明力量  ",
			english: "Shining Force",
			chinese: "光明力量",
		},
		{
			name:    "empty",
			in:      "   ",
			english: "",
			chinese: "",
		},
		{
			name:    "token at string start reattaches",
			in:      "GG米老鼠",
			english: "",
			chinese: "GG米老鼠",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			en, cn := mapping.SplitPair(tc.in)
			assert.Equal(t, tc.english, en, "english")
			assert.Equal(t, tc.chinese, cn, "chinese")
		})
	}
}

func TestSplitPair_MidWordTokenDoesNotReattach(t *testing.T) {
	t.Parallel()

	// The trailing "RPG" is glued to both the preceding lowercase word and
	// the CJK text; without a word boundary the split stays at the CJK
	// character.
	en, cn := mapping.SplitPair("SuperRPG世界")
	assert.Equal(t, "SuperRPG", en)
	assert.Equal(t, "世界", cn)
}

func TestExtractPairColumn(t *testing.T) {
	t.Parallel()

	headers := []string{"中英对照", "ROM名称"}
	rows := [][]string{
		{"Light Crusader (JE) 光之十字军战士(日欧)", "lightcru.bin"},
		{"", "ignored.bin"},
		{"Columns III", "columns3.bin"},
	}

	outHeaders, outRows := mapping.ExtractPairColumn(headers, rows)

	require.Equal(t, []string{"english_name", "chinese_name"}, outHeaders)
	require.Len(t, outRows, 2)
	assert.Equal(t, []string{"Light Crusader (JE)", "光之十字军战士(日欧)"}, outRows[0])
	assert.Equal(t, []string{"Columns III", ""}, outRows[1])
}

func TestExtractPairColumn_NoPairColumnIsNoOp(t *testing.T) {
	t.Parallel()

	headers := []string{"英文名", "中文名"}
	rows := [][]string{{"Sonic", "刺猬索尼克"}}

	outHeaders, outRows := mapping.ExtractPairColumn(headers, rows)

	assert.Equal(t, headers, outHeaders)
	assert.Equal(t, rows, outRows)
}
