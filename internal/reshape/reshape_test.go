package reshape_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/rommap/internal/reshape"
)

func TestExpand_TwoColumnPairing(t *testing.T) {
	t.Parallel()

	headers := []string{"中英对照", "ROM名称", "大小", "格式"}
	rows := [][]string{
		{"A\nB\nC", "X\nY", "16M", "bin"},
	}

	out := reshape.Expand(headers, rows)

	require.Len(t, out, 3)
	assert.Equal(t, []string{"A", "X", "16M", "bin"}, out[0])
	assert.Equal(t, []string{"B", "Y", "16M", "bin"}, out[1])
	assert.Equal(t, []string{"C", "", "16M", "bin"}, out[2])
}

func TestExpand_MixedRowsPassThrough(t *testing.T) {
	t.Parallel()

	headers := []string{"left", "right"}
	rows := [][]string{
		{"single", "row"},
		{"a\nb", "x\ny"},
		{"another", "single"},
	}

	out := reshape.Expand(headers, rows)

	require.Len(t, out, 4)
	assert.Equal(t, []string{"single", "row"}, out[0])
	assert.Equal(t, []string{"a", "x"}, out[1])
	assert.Equal(t, []string{"b", "y"}, out[2])
	assert.Equal(t, []string{"another", "single"}, out[3])
}

func TestExpand_SingleCellList(t *testing.T) {
	t.Parallel()

	lines := make([]string, 12)
	for i := range lines {
		lines[i] = fmt.Sprintf("Game %d 游戏%d", i+1, i+1)
	}

	headers := []string{"中英对照", "备注"}
	rows := [][]string{{strings.Join(lines, "\n"), ""}}

	out := reshape.Expand(headers, rows)

	require.Len(t, out, 12)
	assert.Equal(t, []string{"Game 1 游戏1", ""}, out[0])
	assert.Equal(t, []string{"Game 12 游戏12", ""}, out[11])
}

func TestExpand_SingleCellListBelowThresholdUnchanged(t *testing.T) {
	t.Parallel()

	// Nine lines is ambiguous content, not a packed record list.
	headers := []string{"notes"}
	rows := [][]string{{"a\nb\nc\nd\ne\nf\ng\nh\ni"}}

	out := reshape.Expand(headers, rows)

	require.Len(t, out, 1)
	assert.Equal(t, rows[0], out[0])
}

func TestExpand_SingleColumnTableSkipsPairing(t *testing.T) {
	t.Parallel()

	lines := make([]string, 15)
	for i := range lines {
		lines[i] = fmt.Sprintf("entry %d", i)
	}

	// One column: pairing expansion cannot apply, single-cell list can.
	out := reshape.Expand([]string{"中英对照"}, [][]string{{strings.Join(lines, "\n")}})

	require.Len(t, out, 15)
	assert.Equal(t, []string{"entry 0"}, out[0])
}

func TestExpand_NoTriggerNoChange(t *testing.T) {
	t.Parallel()

	headers := []string{"a", "b"}
	rows := [][]string{
		{"1", "2"},
		{"3", "4"},
	}

	assert.Equal(t, rows, reshape.Expand(headers, rows))
}

func TestStrategies_Order(t *testing.T) {
	t.Parallel()

	strategies := reshape.Strategies()
	require.Len(t, strategies, 2)
	assert.Equal(t, "two_column_pairing", strategies[0].Name)
	assert.Equal(t, "single_cell_list", strategies[1].Name)
}

func TestExpand_BlankLinesIgnoredInPairing(t *testing.T) {
	t.Parallel()

	headers := []string{"left", "right"}
	rows := [][]string{
		{"a\n\n\nb", "x\ny"},
	}

	out := reshape.Expand(headers, rows)

	require.Len(t, out, 2)
	assert.Equal(t, []string{"a", "x"}, out[0])
	assert.Equal(t, []string{"b", "y"}, out[1])
}
