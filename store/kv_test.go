package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryKVGetSetDelete(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Set(ctx, "k", []byte(`"v"`)))
	b, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`"v"`), b)

	// returned bytes are a copy; mutating them must not affect the store
	b[0] = 'x'
	b2, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`"v"`), b2)

	require.NoError(t, kv.Delete(ctx, "k"))
	_, err = kv.Get(ctx, "k")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryKVUpdate(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	err := kv.Update(ctx, "k", func(current []byte, exists bool) ([]byte, error) {
		assert.False(t, exists)
		assert.Nil(t, current)
		return []byte(`1`), nil
	})
	require.NoError(t, err)

	err = kv.Update(ctx, "k", func(current []byte, exists bool) ([]byte, error) {
		assert.True(t, exists)
		assert.Equal(t, []byte(`1`), current)
		return []byte(`2`), nil
	})
	require.NoError(t, err)

	b, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`2`), b)

	// an error from the callback aborts without writing
	boom := errors.New("boom")
	err = kv.Update(ctx, "k", func(current []byte, exists bool) ([]byte, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
	b, err = kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`2`), b)
}

func TestGetJSONMissingKey(t *testing.T) {
	kv := NewMemoryKV()

	var list []string
	found, err := GetJSON(context.Background(), kv, "missing", &list)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, list)
}

func TestMutateSlice(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	// absent key presents the zero value
	out, err := Mutate(ctx, kv, "list", func(cur []string) ([]string, error) {
		assert.Nil(t, cur)
		return append(cur, "a"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, out)

	out, err = Mutate(ctx, kv, "list", func(cur []string) ([]string, error) {
		return append(cur, "b"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, out)

	var stored []string
	found, err := GetJSON(ctx, kv, "list", &stored)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"a", "b"}, stored)
}

func TestMutateMap(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	_, err := Mutate(ctx, kv, "m", func(cur map[string]int) (map[string]int, error) {
		assert.Nil(t, cur)
		cur = map[string]int{"a": 1}
		return cur, nil
	})
	require.NoError(t, err)

	out, err := Mutate(ctx, kv, "m", func(cur map[string]int) (map[string]int, error) {
		cur["a"]++
		return cur, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, out["a"])
}

func TestMutateErrorLeavesValueUnchanged(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()
	require.NoError(t, SetJSON(ctx, kv, "list", []string{"a"}))

	boom := errors.New("boom")
	_, err := Mutate(ctx, kv, "list", func(cur []string) ([]string, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	var stored []string
	_, err = GetJSON(ctx, kv, "list", &stored)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, stored)
}
