package prefs

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"r90calc/internal/sleep"
)

func TestOpenMissingUsesDefaults(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "config.yaml"), nil)
	require.NoError(t, err)
	assert.Equal(t, sleep.WallClock{Hour: 7, Minute: 0}, s.WakeUp())
}

func TestSetWakeUpRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	s, err := Open(path, nil)
	require.NoError(t, err)

	require.NoError(t, s.SetWakeUp(sleep.WallClock{Hour: 6, Minute: 45}))
	assert.Equal(t, sleep.WallClock{Hour: 6, Minute: 45}, s.WakeUp())

	reopened, err := Open(path, nil)
	require.NoError(t, err)
	assert.Equal(t, sleep.WallClock{Hour: 6, Minute: 45}, reopened.WakeUp())

	// Overwrite an existing file.
	require.NoError(t, reopened.SetWakeUp(sleep.WallClock{Hour: 5, Minute: 0}))
	again, err := Open(path, nil)
	require.NoError(t, err)
	assert.Equal(t, sleep.WallClock{Hour: 5, Minute: 0}, again.WakeUp())
}

func TestSetWakeUpRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	s, err := Open(path, nil)
	require.NoError(t, err)

	err = s.SetWakeUp(sleep.WallClock{Hour: 24, Minute: 0})
	assert.ErrorIs(t, err, sleep.ErrInvalidWallClock)
	assert.NoFileExists(t, path)
	assert.Equal(t, sleep.WallClock{Hour: 7, Minute: 0}, s.WakeUp())
}

func TestSetFromTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	s, err := Open(path, nil)
	require.NoError(t, err)

	picked := time.Date(2030, time.January, 2, 8, 20, 59, 0, time.UTC)
	require.NoError(t, s.SetFromTime(picked))
	assert.Equal(t, sleep.WallClock{Hour: 8, Minute: 20}, s.WakeUp())
}

func TestOpenRejectsOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("wakeUpHour: 30\nwakeUpMinute: 0\n"), 0o644))

	_, err := Open(path, nil)
	assert.ErrorIs(t, err, sleep.ErrInvalidWallClock)
}

func TestOpenRejectsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("wakeUpHour: [\n"), 0o644))

	_, err := Open(path, nil)
	assert.Error(t, err)
}

func TestDefaultPathEnvOverride(t *testing.T) {
	t.Setenv(EnvConfig, "/tmp/r90calc-test.yaml")
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/r90calc-test.yaml", p)
}

func TestSetWakeUpFailedWriteKeepsValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	s, err := Open(path, nil)
	require.NoError(t, err)

	// A directory where the file should be makes the write fail.
	require.NoError(t, os.Mkdir(path, 0o755))

	err = s.SetWakeUp(sleep.WallClock{Hour: 5, Minute: 15})
	assert.Error(t, err)
	assert.Equal(t, sleep.WallClock{Hour: 7, Minute: 0}, s.WakeUp())
}

func TestConcurrentSetAndRead(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "config.yaml"), nil)
	require.NoError(t, err)

	valid := map[sleep.WallClock]bool{{Hour: 7}: true}
	for i := 0; i < 20; i++ {
		valid[sleep.WallClock{Hour: i, Minute: i}] = true
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, s.SetWakeUp(sleep.WallClock{Hour: i, Minute: i}))
		}(i)
		go func() {
			defer wg.Done()
			w := s.WakeUp()
			assert.True(t, valid[w], "torn read %v", w)
		}()
	}
	wg.Wait()
}
