package stats

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMissingReadWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")

	s, err := Open(path, ReadWrite)
	require.NoError(t, err)
	assert.Empty(t, s.Root().EntryNames())
	assert.Empty(t, s.Root().GroupNames())
}

func TestOpenMissingReadOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	_, err := Open(path, ReadOnly)
	require.Error(t, err)
}

func TestOpenIllegalContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := Open(path, ReadOnly)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot parse")
}

func TestSyncRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")

	s, err := Open(path, ReadWrite)
	require.NoError(t, err)

	grp := s.Root().AddGroup("lowering")
	require.NoError(t, grp.WriteEntry("nodes", 3))
	require.NoError(t, grp.WriteEntry("backend", "sophon"))
	require.NoError(t, grp.WriteEntry("scale", 0.5))
	require.NoError(t, grp.WriteEntry("tuned", true))
	require.NoError(t, s.Sync())

	reopened, err := Open(path, ReadOnly)
	require.NoError(t, err)
	got, ok := reopened.Root().Group("lowering")
	require.True(t, ok)
	assert.Equal(t, int64(3), got.EntryInt("nodes", -1))
	assert.Equal(t, "sophon", got.EntryString("backend", ""))
	assert.Equal(t, 0.5, got.EntryFloat("scale", 0))
	assert.True(t, got.EntryBool("tuned", false))
}

func TestReadContent(t *testing.T) {
	s, err := Read([]byte(`{"calibration":{"y":{"threshold":96}}}`))
	require.NoError(t, err)

	cal, ok := s.Root().Group("calibration")
	require.True(t, ok)
	y, ok := cal.Group("y")
	require.True(t, ok)
	assert.Equal(t, int64(96), y.EntryInt("threshold", 0))

	// Read-only stores sync as a no-op.
	require.NoError(t, s.Sync())
}

func TestEntryDefaults(t *testing.T) {
	g := NewGroup()
	assert.Equal(t, int64(7), g.EntryInt("missing", 7))
	assert.Equal(t, 1.5, g.EntryFloat("missing", 1.5))
	assert.Equal(t, "d", g.EntryString("missing", "d"))
	assert.True(t, g.EntryBool("missing", true))

	// A mistyped entry also falls back to the default.
	require.NoError(t, g.WriteEntry("name", "abs"))
	assert.Equal(t, int64(7), g.EntryInt("name", 7))
}

func TestWriteEntryRejectsUnsupported(t *testing.T) {
	g := NewGroup()
	err := g.WriteEntry("bad", []byte("nope"))
	require.Error(t, err)
}

func TestAddCounter(t *testing.T) {
	g := NewGroup()
	assert.Equal(t, int64(1), g.AddCounter("lowered", 1))
	assert.Equal(t, int64(3), g.AddCounter("lowered", 2))
	assert.Equal(t, int64(3), g.EntryInt("lowered", 0))
}

func TestGroupMerge(t *testing.T) {
	dst := NewGroup()
	require.NoError(t, dst.AddGroup("a").WriteEntry("keep", 1))
	require.NoError(t, dst.AddGroup("a").WriteEntry("old", 2))

	src := NewGroup()
	require.NoError(t, src.AddGroup("a").WriteEntry("old", 9))
	require.NoError(t, src.AddGroup("b").WriteEntry("fresh", 3))

	dst.Merge(src)

	a, _ := dst.Group("a")
	assert.Equal(t, int64(1), a.EntryInt("keep", 0))
	assert.Equal(t, int64(9), a.EntryInt("old", 0), "merge source wins")
	b, ok := dst.Group("b")
	require.True(t, ok)
	assert.Equal(t, int64(3), b.EntryInt("fresh", 0))
}

func TestDeleteGroup(t *testing.T) {
	g := NewGroup()
	g.AddGroup("gone")
	require.True(t, g.HasGroup("gone"))
	g.DeleteGroup("gone")
	assert.False(t, g.HasGroup("gone"))
}
