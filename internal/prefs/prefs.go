// Package prefs persists the chosen wake-up time between runs.
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"r90calc/internal/sleep"
)

const (
	KeyWakeUpHour   = "wakeUpHour"
	KeyWakeUpMinute = "wakeUpMinute"

	DefaultWakeUpHour   = 7
	DefaultWakeUpMinute = 0

	// EnvConfig overrides DefaultPath.
	EnvConfig = "R90CALC_CONFIG"
)

// Store holds the two wake-up preferences backed by a YAML file.
// It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	v      *viper.Viper
	path   string
	logger *zap.SugaredLogger
}

// DefaultPath returns $R90CALC_CONFIG, or config.yaml under the user config dir.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "r90calc", "config.yaml"), nil
}

// Open reads the preferences at path. A missing file yields the defaults.
func Open(path string, logger *zap.SugaredLogger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault(KeyWakeUpHour, DefaultWakeUpHour)
	v.SetDefault(KeyWakeUpMinute, DefaultWakeUpMinute)

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read preferences %s: %w", path, err)
		}
		logger.Debugw("loaded preferences", "path", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("stat preferences %s: %w", path, err)
	} else {
		logger.Debugw("no preferences file, using defaults", "path", path)
	}

	s := &Store{v: v, path: path, logger: logger}
	if err := s.WakeUp().Validate(); err != nil {
		return nil, fmt.Errorf("preferences %s: %w", path, err)
	}
	return s, nil
}

func (s *Store) WakeUp() sleep.WallClock {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sleep.WallClock{
		Hour:   s.v.GetInt(KeyWakeUpHour),
		Minute: s.v.GetInt(KeyWakeUpMinute),
	}
}

// SetWakeUp validates w and writes it to disk. The in-memory value only
// changes once the file has been written.
func (s *Store) SetWakeUp(w sleep.WallClock) error {
	if err := w.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	out := viper.New()
	out.SetConfigFile(s.path)
	out.SetConfigType("yaml")
	out.Set(KeyWakeUpHour, w.Hour)
	out.Set(KeyWakeUpMinute, w.Minute)
	if err := out.WriteConfig(); err != nil {
		return fmt.Errorf("write preferences %s: %w", s.path, err)
	}

	s.v.Set(KeyWakeUpHour, w.Hour)
	s.v.Set(KeyWakeUpMinute, w.Minute)
	s.logger.Infow("saved wake-up time", "wake_up", w.String(), "path", s.path)
	return nil
}

// SetFromTime stores the hour and minute of tm, ignoring its date.
func (s *Store) SetFromTime(tm time.Time) error {
	return s.SetWakeUp(sleep.WallClock{Hour: tm.Hour(), Minute: tm.Minute()})
}
