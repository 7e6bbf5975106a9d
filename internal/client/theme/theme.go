// Package theme tracks the active visual theme of the terminal client.
package theme

import (
	"os"
	"strings"
	"sync"

	"github.com/dmitrijs2005/devfolio/internal/client/models"
)

// Applier receives the theme side effect of preferences.
type Applier interface {
	Apply(t models.Theme)
}

// SystemProbe reports the theme of the surrounding terminal.
type SystemProbe func() models.Theme

// Controller holds the chosen theme ("light", "dark" or "auto") and the
// resolved one. Applying the same theme twice leaves the same state.
type Controller struct {
	mu       sync.RWMutex
	selected models.Theme
	active   models.Theme
	probe    SystemProbe
}

// NewController starts in auto mode resolved through probe. A nil probe
// means EnvProbe.
func NewController(probe SystemProbe) *Controller {
	if probe == nil {
		probe = EnvProbe
	}
	c := &Controller{probe: probe}
	c.Apply(models.ThemeAuto)
	return c
}

func (c *Controller) Apply(t models.Theme) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch t {
	case models.ThemeLight, models.ThemeDark:
		c.selected, c.active = t, t
	default:
		c.selected = models.ThemeAuto
		c.active = c.resolveAuto()
	}
}

func (c *Controller) resolveAuto() models.Theme {
	if c.probe() == models.ThemeDark {
		return models.ThemeDark
	}
	return models.ThemeLight
}

// Selected is the theme as the user chose it.
func (c *Controller) Selected() models.Theme {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selected
}

// Active is the resolved theme, never auto.
func (c *Controller) Active() models.Theme {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active
}

const (
	ansiReset = "\033[0m"
	ansiDark  = "\033[1;36m"
	ansiLight = "\033[1;34m"
)

// Style wraps s in the ANSI color of the active theme.
func (c *Controller) Style(s string) string {
	if c.Active() == models.ThemeDark {
		return ansiDark + s + ansiReset
	}
	return ansiLight + s + ansiReset
}

// EnvProbe guesses the terminal background from COLORFGBG ("fg;bg"), where a
// background of 0-6 or 8 is dark. Anything else resolves to light.
func EnvProbe() models.Theme {
	v := os.Getenv("COLORFGBG")
	if v == "" {
		return models.ThemeLight
	}
	parts := strings.Split(v, ";")
	switch parts[len(parts)-1] {
	case "0", "1", "2", "3", "4", "5", "6", "8":
		return models.ThemeDark
	}
	return models.ThemeLight
}
