package hierarchy

import (
	"os"
	"testing"

	"github.com/ekiwi/fst-writer/compress"
	"github.com/ekiwi/fst-writer/errs"
	"github.com/ekiwi/fst-writer/section"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempFile(t *testing.T) *os.File {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "fst-hierarchy-*.bin")
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestBufferRecordFormats(t *testing.T) {
	b := NewBuffer(0)

	require.NoError(t, b.Scope("top", "mod", section.ScopeModule))
	require.NoError(t, b.Var("a", section.BitVector(1), section.VarWire, section.DirOutput, 0))
	require.NoError(t, b.UpScope())

	assert.Equal(t, uint64(1), b.ScopeCount())
	assert.Equal(t, uint64(1), b.VarCount())
	assert.Equal(t, 0, b.Depth())

	raw := b.Bytes()
	assert.Equal(t, byte(0xFE), raw[0])
}

func TestBufferUpScopeWithoutScopeFails(t *testing.T) {
	b := NewBuffer(0)
	assert.Error(t, b.UpScope())
}

func TestBufferFlushRejectsOpenScope(t *testing.T) {
	b := NewBuffer(0)
	require.NoError(t, b.Scope("top", "mod", section.ScopeModule))

	err := b.Flush(tempFile(t), compress.NewLZ4Compressor())
	assert.ErrorIs(t, err, errs.ErrScopeNotClosed)
}

func TestBufferFlushWritesHierarchyLZ4Block(t *testing.T) {
	b := NewBuffer(0)
	require.NoError(t, b.Scope("top", "mod", section.ScopeModule))
	require.NoError(t, b.Var("a", section.BitVector(1), section.VarWire, section.DirOutput, 0))
	require.NoError(t, b.UpScope())

	f := tempFile(t)
	require.NoError(t, b.Flush(f, compress.NewLZ4Compressor()))

	info, err := f.Stat()
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestBufferNameLimit(t *testing.T) {
	b := NewBuffer(4)
	assert.NoError(t, b.Scope("ab", "x", section.ScopeModule))
	assert.Error(t, b.Scope("abcd", "x", section.ScopeModule))
}
