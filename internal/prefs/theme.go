// Package prefs stores per-user display preferences.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"

	DefaultTheme = Light
	themeKey     = "theme"
)

var ErrUnknownTheme = errors.New("unknown theme")

func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case Light, Dark:
		return t, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownTheme, s)
	}
}

func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Store keeps key/value preferences per subject. Missing keys are not an
// error; callers apply defaults.
type Store interface {
	Get(ctx context.Context, subject, key string) (string, bool, error)
	Set(ctx context.Context, subject, key, value string) error
}

// GetTheme reads the subject's theme, falling back to the default when unset
// or unreadable.
func GetTheme(ctx context.Context, s Store, subject string) (Theme, error) {
	v, ok, err := s.Get(ctx, subject, themeKey)
	if err != nil {
		return "", err
	}
	if !ok {
		return DefaultTheme, nil
	}
	t, err := ParseTheme(v)
	if err != nil {
		return DefaultTheme, nil
	}
	return t, nil
}

func SetTheme(ctx context.Context, s Store, subject string, t Theme) error {
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}
	return s.Set(ctx, subject, themeKey, string(t))
}

// ToggleTheme flips the stored theme and returns the new value.
func ToggleTheme(ctx context.Context, s Store, subject string) (Theme, error) {
	cur, err := GetTheme(ctx, s, subject)
	if err != nil {
		return "", err
	}
	next := cur.Toggle()
	if err := s.Set(ctx, subject, themeKey, string(next)); err != nil {
		return "", err
	}
	return next, nil
}

type memStore struct {
	mu sync.RWMutex
	m  map[[2]string]string
}

func NewMemoryStore() Store { return &memStore{m: map[[2]string]string{}} }

func (s *memStore) Get(_ context.Context, subject, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[[2]string{subject, key}]
	return v, ok, nil
}

func (s *memStore) Set(_ context.Context, subject, key, value string) error {
	s.mu.Lock()
	s.m[[2]string{subject, key}] = value
	s.mu.Unlock()
	return nil
}
