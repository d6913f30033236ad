package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingBackend struct{}

func (failingBackend) Load(context.Context, string) ([]byte, error) {
	return nil, errors.New("disk on fire")
}
func (failingBackend) Save(context.Context, string, []byte) error { return errors.New("disk on fire") }
func (failingBackend) Delete(context.Context, string) error       { return errors.New("disk on fire") }

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestStore_RoundTrip(t *testing.T) {
	s := New(NewMemoryBackend(), 0)

	require.True(t, s.Set("k", payload{Name: "chicken", Count: 2}))
	require.True(t, s.Has("k"))

	got := GetOr(s, "k", payload{})
	assert.Equal(t, payload{Name: "chicken", Count: 2}, got)

	require.True(t, s.Remove("k"))
	require.False(t, s.Has("k"))
}

func TestGetOr_MissingKeyReturnsDefault(t *testing.T) {
	s := New(NewMemoryBackend(), 0)
	got := GetOr(s, "absent", map[string]int{"x": 1})
	assert.Equal(t, map[string]int{"x": 1}, got)
}

func TestGetOr_MalformedPayloadReturnsDefault(t *testing.T) {
	backend := NewMemoryBackend()
	require.NoError(t, backend.Save(context.Background(), "k", []byte("{not json")))
	s := New(backend, 0)

	got := GetOr(s, "k", payload{Name: "default"})
	assert.Equal(t, payload{Name: "default"}, got)
}

func TestGetOr_NilAdapter(t *testing.T) {
	assert.Equal(t, 7, GetOr[int](nil, "k", 7))
}

func TestStore_BackendFailureDegrades(t *testing.T) {
	s := New(failingBackend{}, 0)

	assert.False(t, s.Set("k", 1))
	assert.False(t, s.Has("k"))
	assert.False(t, s.Remove("k"))
	assert.Equal(t, 3, GetOr(s, "k", 3))
}

func TestStore_RemoveMissingKeyIsSuccess(t *testing.T) {
	dir := t.TempDir()
	backend, err := NewFileBackend(dir)
	require.NoError(t, err)

	s := New(backend, 0)
	assert.True(t, s.Remove("never-written"))
}

func TestFileBackend_PersistsAcrossInstances(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	backend, err := NewFileBackend(dir)
	require.NoError(t, err)

	require.True(t, New(backend, 0).Set("dishStory_cart", []string{"a", "b"}))

	reopened, err := NewFileBackend(dir)
	require.NoError(t, err)
	got := GetOr(New(reopened, 0), "dishStory_cart", []string(nil))
	assert.Equal(t, []string{"a", "b"}, got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileBackend_EmptyDir(t *testing.T) {
	_, err := NewFileBackend("")
	require.Error(t, err)
}
