package sources_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/rommap/internal/sources"
)

const baseURL = "http://emu.jy6d.com/dz/"

func TestDiscover(t *testing.T) {
	t.Parallel()

	indexHTML := `<html><body>
		<a href="/dz/psp/">PSP 游戏</a>
		<a href="md/">MD / Genesis</a>
		<a href="/dz/gba/">GBA</a>
	</body></html>`

	systems, err := sources.Discover(indexHTML, baseURL)
	require.NoError(t, err)
	require.Len(t, systems, 3)

	assert.Equal(t, sources.System{Key: "gba", Title: "GBA", URL: "http://emu.jy6d.com/dz/gba/"}, systems[0])
	assert.Equal(t, "md", systems[1].Key)
	assert.Equal(t, "http://emu.jy6d.com/dz/md/", systems[1].URL)
	assert.Equal(t, "psp", systems[2].Key)
	assert.Equal(t, "PSP 游戏", systems[2].Title)
}

func TestDiscover_FiltersNavigationLinks(t *testing.T) {
	t.Parallel()

	indexHTML := `<html><body>
		<a href="javascript:;">回到顶部</a>
		<a href="/dz/all/">全部</a>
		<a href="/dz/list/">列表</a>
		<a href="index/">首页</a>
		<a href="/dz/psv/">PSV</a>
		<a href="http://other.example.com/psp/">外站</a>
		<a href="/dz/article/123.html">新闻</a>
	</body></html>`

	systems, err := sources.Discover(indexHTML, baseURL)
	require.NoError(t, err)
	require.Len(t, systems, 1)
	assert.Equal(t, "psv", systems[0].Key)
}

func TestDiscover_DeduplicatesKeepingFirst(t *testing.T) {
	t.Parallel()

	indexHTML := `<html><body>
		<a href="/dz/psp/">PSP first</a>
		<a href="psp">PSP again</a>
	</body></html>`

	systems, err := sources.Discover(indexHTML, baseURL)
	require.NoError(t, err)
	require.Len(t, systems, 1)
	assert.Equal(t, "PSP first", systems[0].Title)
}

func TestDiscover_TitleWhitespaceCollapsed(t *testing.T) {
	t.Parallel()

	indexHTML := `<a href="/dz/nds/">NDS
		对照表</a>`

	systems, err := sources.Discover(indexHTML, baseURL)
	require.NoError(t, err)
	require.Len(t, systems, 1)
	assert.Equal(t, "NDS 对照表", systems[0].Title)
}

func TestDiscover_NoLinks(t *testing.T) {
	t.Parallel()

	systems, err := sources.Discover("<html><body><p>空</p></body></html>", baseURL)
	require.NoError(t, err)
	assert.Empty(t, systems)
}

func TestDiscover_BadBaseURL(t *testing.T) {
	t.Parallel()

	_, err := sources.Discover("<a href='md'>MD</a>", "http://bad url/")
	assert.Error(t, err)
}
