package media_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"harvestdesk/internal/media"
)

func TestResolveFallsBackToPlaceholder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mango.png"), []byte("png"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.png"), 0o755))
	r := media.NewResolver(dir)

	assert.Equal(t, "/static/images/mango.png", r.Resolve("drawable/mango"))
	assert.Equal(t, "/static/images/mango.png", r.Resolve("mango"))
	assert.Equal(t, "/static/images/placeholder.png", r.Resolve("drawable/missing"))
	assert.Equal(t, "/static/images/placeholder.png", r.Resolve(""))
	assert.Equal(t, "/static/images/placeholder.png", r.Resolve("drawable/folder"))
	assert.Equal(t, "/static/images/placeholder.png", r.Resolve("drawable/../../etc/passwd"))
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "ripe_mango", media.BaseName("ripe mango.jpg"))
	assert.Equal(t, "x", media.BaseName("../../x.png"))
	assert.NotEmpty(t, media.BaseName("###.png"))
	assert.Equal(t, "drawable/x", media.Ref("x"))
}
