package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore 仅用于工厂逻辑测试，不触达任何真实后端
type fakeStore struct {
	DataStore
	opts Options
}

func (f *fakeStore) Close() error { return nil }

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(Options{Driver: Driver("nope")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown driver")
}

func TestRegisterDriverDuplicatePanics(t *testing.T) {
	RegisterDriver(Driver("dup-test"), func(opts Options) (DataStore, error) {
		return &fakeStore{opts: opts}, nil
	})
	assert.Panics(t, func() {
		RegisterDriver(Driver("dup-test"), func(opts Options) (DataStore, error) {
			return &fakeStore{opts: opts}, nil
		})
	})
}

func TestGetReturnsSingleton(t *testing.T) {
	RegisterDriver(Driver("singleton-test"), func(opts Options) (DataStore, error) {
		return &fakeStore{opts: opts}, nil
	})
	resetActive()
	t.Cleanup(resetActive)

	first, err := Get(Options{Driver: Driver("singleton-test"), AdminEmail: "a@b.c"})
	require.NoError(t, err)

	// 第二次调用忽略新 opts，返回同一句柄
	second, err := Get(Options{Driver: Driver("nope")})
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, "a@b.c", first.(*fakeStore).opts.AdminEmail)
}
