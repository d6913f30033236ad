package cloudwriter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryWriter_VisibleAfterClose(t *testing.T) {
	f := NewMemoryWriterFactory()
	w, err := f.NewWriter("bucket", "a/b.txt")
	require.NoError(t, err)

	_, err = w.Write([]byte("hello "))
	require.NoError(t, err)
	_, err = w.Write([]byte("world"))
	require.NoError(t, err)

	_, ok := f.Object("bucket", "a/b.txt")
	assert.False(t, ok)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	b, ok := f.Object("bucket", "a/b.txt")
	require.True(t, ok)
	assert.Equal(t, "hello world", string(b))
	assert.Equal(t, []string{"bucket/a/b.txt"}, f.Keys())

	_, err = w.Write([]byte("late"))
	assert.Error(t, err)
}

func TestMemoryWriter_RequiresBucket(t *testing.T) {
	_, err := NewMemoryWriterFactory().NewWriter("", "x")
	assert.Error(t, err)
}
