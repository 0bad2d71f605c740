//go:build darwin

package menubar

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/caseymrm/menuet"
	"github.com/mizrakjian/monkeystats/internal/api"
	"github.com/mizrakjian/monkeystats/pkg/stats"
)

type App struct {
	client *api.Client

	// mu guards profile and streak: fetch writes them from the update
	// loop goroutine while menuItems reads them on the Cocoa main
	// thread. The pointed-to structs are never mutated after publish.
	mu      sync.Mutex
	profile *api.Profile
	streak  *api.Streak
}

func New(client *api.Client) *App {
	return &App{client: client}
}

func (a *App) Run() {
	go a.updateLoop()

	menuet.App().Label = "com.monkeystats.menubar"
	menuet.App().Children = a.menuItems

	menuet.App().RunApplication()
}

func (a *App) updateLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		a.refresh()
		<-ticker.C
	}
}

func (a *App) refresh() {
	menuet.App().SetMenuState(&menuet.MenuState{Title: a.fetch()})
}

// fetch pulls the latest profile and streak and returns the bar title.
// On a failed fetch the last known title is kept; the placeholder only
// shows before the first success.
func (a *App) fetch() string {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	profile, err := a.client.Profile(ctx)

	var streak *api.Streak
	if err == nil {
		if s, serr := a.client.Streak(ctx); serr == nil {
			streak = &s
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err != nil {
		if a.profile == nil {
			return "⌨️ --"
		}
		return title(a.profile)
	}
	a.profile = &profile
	if streak != nil {
		a.streak = streak
	}

	return title(a.profile)
}

func title(p *api.Profile) string {
	return fmt.Sprintf("⌨️ %s", stats.ShortenNumber(int64(p.Tests.Completed)))
}

func (a *App) menuItems() []menuet.MenuItem {
	a.mu.Lock()
	profile, streak := a.profile, a.streak
	a.mu.Unlock()

	if profile == nil {
		return []menuet.MenuItem{
			{Text: "Loading..."},
			{Type: menuet.Separator},
			{Text: "Quit", Clicked: a.quit},
		}
	}

	items := []menuet.MenuItem{
		{Text: fmt.Sprintf("%s — level %d", profile.Username, stats.Level(profile.XP))},
		{Text: fmt.Sprintf("Tests: %d completed", profile.Tests.Completed)},
		{Text: fmt.Sprintf("Time typing: %s", stats.FormatDuration(time.Duration(profile.Tests.TimeTyping*float64(time.Second))))},
	}

	if streak != nil {
		state := "unclaimed"
		if streak.Claimed(time.Now().UTC()) {
			state = "claimed"
		}
		items = append(items,
			menuet.MenuItem{Type: menuet.Separator},
			menuet.MenuItem{Text: fmt.Sprintf("Streak: %d days (%s)", streak.Length, state)},
		)
	}

	items = append(items,
		menuet.MenuItem{Type: menuet.Separator},
		menuet.MenuItem{Text: "Quit", Clicked: a.quit},
	)

	return items
}

func (a *App) quit() {
	os.Exit(0)
}
