package runcache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint_IndependentOfOrder(t *testing.T) {
	now := time.Now()
	a := FileStat{Name: "a.csv", Size: 10, ModTime: now}
	b := FileStat{Name: "b.txt", Size: 20, ModTime: now}

	assert.Equal(t, Fingerprint([]FileStat{a, b}), Fingerprint([]FileStat{b, a}))
}

func TestFingerprint_ChangesWithContent(t *testing.T) {
	now := time.Now()
	a := FileStat{Name: "a.csv", Size: 10, ModTime: now}
	grown := FileStat{Name: "a.csv", Size: 11, ModTime: now}
	touched := FileStat{Name: "a.csv", Size: 10, ModTime: now.Add(time.Second)}

	base := Fingerprint([]FileStat{a})
	assert.NotEqual(t, base, Fingerprint([]FileStat{grown}))
	assert.NotEqual(t, base, Fingerprint([]FileStat{touched}))
}

func TestGetOrBuild_CachesWithinTTL(t *testing.T) {
	store := NewStore()
	builds := 0
	build := func() (any, error) {
		builds++
		return builds, nil
	}

	v1, cached1, err := store.GetOrBuild("key", time.Minute, build)
	require.NoError(t, err)
	assert.False(t, cached1)
	assert.Equal(t, 1, v1)

	v2, cached2, err := store.GetOrBuild("key", time.Minute, build)
	require.NoError(t, err)
	assert.True(t, cached2)
	assert.Equal(t, 1, v2)
	assert.Equal(t, 1, builds)
}

func TestGetOrBuild_ZeroTTLDisablesCaching(t *testing.T) {
	store := NewStore()
	builds := 0
	build := func() (any, error) {
		builds++
		return builds, nil
	}

	_, _, err := store.GetOrBuild("key", 0, build)
	require.NoError(t, err)
	_, cached, err := store.GetOrBuild("key", 0, build)
	require.NoError(t, err)

	assert.False(t, cached)
	assert.Equal(t, 2, builds)
}

func TestGetOrBuild_ErrorsAreNotCached(t *testing.T) {
	store := NewStore()
	calls := 0
	build := func() (any, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("boom")
		}
		return "ok", nil
	}

	_, _, err := store.GetOrBuild("key", time.Minute, build)
	assert.Error(t, err)

	v, _, err := store.GetOrBuild("key", time.Minute, build)
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestInvalidateAndClear(t *testing.T) {
	store := NewStore()
	builds := 0
	build := func() (any, error) {
		builds++
		return builds, nil
	}

	_, _, err := store.GetOrBuild("key", time.Minute, build)
	require.NoError(t, err)

	store.Invalidate("key")
	_, cached, err := store.GetOrBuild("key", time.Minute, build)
	require.NoError(t, err)
	assert.False(t, cached)

	store.Clear()
	_, cached, err = store.GetOrBuild("key", time.Minute, build)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 3, builds)
}
