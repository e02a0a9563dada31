package services

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/comfortcurators/portal/modules/core/domain/entities/shell"
	"github.com/comfortcurators/portal/pkg/composables"
	"github.com/comfortcurators/portal/pkg/metrics"
	"github.com/comfortcurators/portal/pkg/spotlight"
	"github.com/comfortcurators/portal/pkg/viewstate"
)

var (
	ErrTabNotFound    = errors.New("tab not found")
	ErrUnknownCommand = errors.New("unknown palette command")
)

const shellStateKind = "shell"

// ShellService owns the per-tab state of the application shell. A tab is mounted when a page
// renders and released when the browser leaves it. Only the identity that mounted a tab can use
// it; for everybody else it does not exist.
type ShellService struct {
	tabs    *viewstate.Registry[*shell.TabState]
	palette *spotlight.Palette
}

func NewShellService(tabs *viewstate.Registry[*shell.TabState], palette *spotlight.Palette) *ShellService {
	return &ShellService{
		tabs:    tabs,
		palette: palette,
	}
}

// NewTabRegistry returns a registry that keeps the view state gauge in sync.
func NewTabRegistry(ttl time.Duration, opts ...viewstate.Option[*shell.TabState]) *viewstate.Registry[*shell.TabState] {
	opts = append(opts, viewstate.WithReleaseHook(func(string, *shell.TabState) {
		metrics.ViewStates.WithLabelValues(shellStateKind).Dec()
	}))
	return viewstate.NewRegistry[*shell.TabState](ttl, opts...)
}

func (s *ShellService) Mount(ctx context.Context, selectedOrgID uuid.UUID) string {
	metrics.ViewStates.WithLabelValues(shellStateKind).Inc()
	return s.tabs.Mount(shell.NewTabState(composables.UseIdentityID(ctx), selectedOrgID))
}

func (s *ShellService) Get(ctx context.Context, tabID string) (*shell.TabState, error) {
	tab, ok := s.tabs.Get(tabID)
	if !ok || tab.OwnerID != composables.UseIdentityID(ctx) {
		return nil, ErrTabNotFound
	}
	return tab, nil
}

// TogglePalette flips the palette and returns the new open flag.
func (s *ShellService) TogglePalette(ctx context.Context, tabID string) (bool, error) {
	var open bool
	err := s.use(ctx, tabID, func(t *shell.TabState) error {
		open = t.Palette.Toggle()
		return nil
	})
	return open, err
}

func (s *ShellService) ClosePalette(ctx context.Context, tabID string) error {
	return s.use(ctx, tabID, func(t *shell.TabState) error {
		t.Palette.Close()
		return nil
	})
}

// Shortcut applies a key press to the palette and reports whether it was consumed.
func (s *ShellService) Shortcut(ctx context.Context, tabID, key string, meta, ctrl bool) (consumed, open bool, err error) {
	err = s.use(ctx, tabID, func(t *shell.TabState) error {
		consumed = t.Palette.HandleShortcut(key, meta, ctrl)
		open = t.Palette.Open
		return nil
	})
	return consumed, open, err
}

// Select closes the palette and returns where to navigate. Only registered destinations are
// accepted.
func (s *ShellService) Select(ctx context.Context, tabID, href string) (string, error) {
	cmd, ok := s.palette.Lookup(href)
	if !ok {
		return "", ErrUnknownCommand
	}
	var dest string
	err := s.use(ctx, tabID, func(t *shell.TabState) error {
		dest = t.Palette.Select(cmd)
		return nil
	})
	return dest, err
}

func (s *ShellService) Release(ctx context.Context, tabID string) bool {
	if _, err := s.Get(ctx, tabID); err != nil {
		return false
	}
	return s.tabs.Unmount(tabID)
}

func (s *ShellService) use(ctx context.Context, tabID string, fn func(t *shell.TabState) error) error {
	owner := composables.UseIdentityID(ctx)
	err := s.tabs.Use(tabID, func(t *shell.TabState) error {
		if t.OwnerID != owner {
			return ErrTabNotFound
		}
		return fn(t)
	})
	if errors.Is(err, viewstate.ErrNotFound) {
		return ErrTabNotFound
	}
	return err
}
