package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mgrier/ennest/pkg/echonest"
	"github.com/rivo/tview"
)

// Config holds TUI configuration options
type Config struct {
	Results int           // Number of results per query
	Timeout time.Duration // Per-request timeout
}

// DefaultConfig returns the default TUI configuration
func DefaultConfig() Config {
	return Config{
		Results: 15,
		Timeout: 30 * time.Second,
	}
}

// App is the TUI application for browsing the artist catalog
type App struct {
	app     *tview.Application
	search  *tview.InputField
	results *tview.List
	detail  *tview.TextView
	status  *tview.TextView

	config Config
	client *echonest.Client

	// Artists behind the current results list, indexed by list position.
	// Entries always arrive from query adaptation with ID and Name
	// populated, so attribute fetches never rewrite those fields after
	// an artist is listed.
	artists []*echonest.Artist

	// Mutex serializes attribute fetches, including reads of artist
	// identity fields alongside them. Artist caches are not safe for
	// concurrent use and detail fetches run on their own goroutines.
	fetchMu sync.Mutex

	// Context cancel function
	cancelFunc context.CancelFunc
	ctx        context.Context
}

// New creates a new TUI application with default config
func New(client *echonest.Client) *App {
	return NewWithConfig(client, DefaultConfig())
}

// NewWithConfig creates a new TUI application with the given config
func NewWithConfig(client *echonest.Client, cfg Config) *App {
	a := &App{
		app:    tview.NewApplication(),
		config: cfg,
		client: client,
	}
	a.setupUI()
	return a
}

// setupUI creates the UI layout
func (a *App) setupUI() {
	// Search input
	a.search = tview.NewInputField().
		SetLabel(" Search: ").
		SetFieldBackgroundColor(tcell.ColorDefault)
	a.search.SetBorder(true)
	a.search.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter {
			a.runSearch(a.search.GetText())
		}
	})

	// Results list
	a.results = tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	a.results.SetBorder(true).
		SetTitle(" Artists ").
		SetTitleAlign(tview.AlignLeft)
	a.results.SetChangedFunc(func(index int, _ string, _ string, _ rune) {
		a.showDetail(index)
	})

	// Detail panel
	a.detail = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	a.detail.SetBorder(true).
		SetTitle(" Detail ").
		SetTitleAlign(tview.AlignLeft)

	// Status bar
	a.status = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText("[gray]q:quit  /:search  enter:select  s:similar  t:top hottt[-]")

	// Layout:
	// Top row: search input
	// Middle row: results list | detail panel
	// Footer: status bar
	middleRow := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(a.results, 0, 1, true).
		AddItem(a.detail, 0, 2, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.search, 3, 1, false).
		AddItem(middleRow, 0, 1, true).
		AddItem(a.status, 1, 1, false)

	a.app.SetInputCapture(a.handleKeyEvent)

	a.app.SetRoot(flex, true)
	a.app.SetFocus(a.search)
}

// handleKeyEvent processes keyboard input
func (a *App) handleKeyEvent(event *tcell.EventKey) *tcell.EventKey {
	// Let the search field consume its own keys
	if a.app.GetFocus() == a.search {
		if event.Key() == tcell.KeyEscape {
			a.app.SetFocus(a.results)
			return nil
		}
		return event
	}

	switch event.Rune() {
	case 'q', 'Q':
		a.app.Stop()
		return nil
	case '/':
		a.app.SetFocus(a.search)
		return nil
	case 's', 'S':
		a.runSimilar(a.results.GetCurrentItem())
		return nil
	case 't', 'T':
		a.runTopHottt()
		return nil
	}
	return event
}

// Run starts the TUI
func (a *App) Run(ctx context.Context) error {
	a.ctx, a.cancelFunc = context.WithCancel(ctx)

	if err := a.app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// Stop stops the TUI application
func (a *App) Stop() {
	if a.cancelFunc != nil {
		a.cancelFunc()
	}
	a.app.Stop()
}

// setStatus replaces the status bar text. Safe to call from any goroutine.
func (a *App) setStatus(text string) {
	a.app.QueueUpdateDraw(func() {
		a.status.SetText(text)
	})
}

// setArtists replaces the results list. Safe to call from any goroutine.
func (a *App) setArtists(title string, artists []*echonest.Artist) {
	a.app.QueueUpdateDraw(func() {
		a.artists = artists
		a.results.Clear()
		a.results.SetTitle(fmt.Sprintf(" %s ", title))
		for _, artist := range artists {
			a.results.AddItem(artist.Name, artist.ID, 0, nil)
		}
		a.app.SetFocus(a.results)
		if len(artists) > 0 {
			a.showDetail(0)
		}
	})
}

// runSearch queries the catalog for the entered name
func (a *App) runSearch(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}

	a.setStatus("[yellow]Searching...[-]")
	go func() {
		ctx, cancel := context.WithTimeout(a.ctx, a.config.Timeout)
		defer cancel()

		artists, err := a.client.Artists().Search(ctx, echonest.SearchOptions{
			Name:    name,
			Results: a.config.Results,
		})
		if err != nil {
			a.setStatus(fmt.Sprintf("[red]Search failed: %v[-]", err))
			return
		}

		a.setStatus(fmt.Sprintf("[gray]%d results for %q[-]", len(artists), name))
		a.setArtists("Artists", artists)
	}()
}

// runSimilar replaces the list with artists similar to the selection
func (a *App) runSimilar(index int) {
	if index < 0 || index >= len(a.artists) {
		return
	}
	seed := a.artists[index]

	a.setStatus("[yellow]Finding similar artists...[-]")
	go func() {
		a.fetchMu.Lock()
		defer a.fetchMu.Unlock()

		seedName := seed.Name

		ctx, cancel := context.WithTimeout(a.ctx, a.config.Timeout)
		defer cancel()

		artists, err := seed.Similar(ctx, echonest.SimilarOptions{Results: a.config.Results})
		if err != nil {
			a.setStatus(fmt.Sprintf("[red]Similar failed: %v[-]", err))
			return
		}

		a.setStatus(fmt.Sprintf("[gray]%d artists similar to %s[-]", len(artists), seedName))
		a.setArtists("Similar to "+seedName, artists)
	}()
}

// runTopHottt replaces the list with the current top hottt artists
func (a *App) runTopHottt() {
	a.setStatus("[yellow]Fetching top hottt artists...[-]")
	go func() {
		ctx, cancel := context.WithTimeout(a.ctx, a.config.Timeout)
		defer cancel()

		artists, err := a.client.Artists().TopHottt(ctx, echonest.TopOptions{Results: a.config.Results})
		if err != nil {
			a.setStatus(fmt.Sprintf("[red]Top hottt failed: %v[-]", err))
			return
		}

		a.setStatus(fmt.Sprintf("[gray]%d top hottt artists[-]", len(artists)))
		a.setArtists("Top Hottt", artists)
	}()
}

// showDetail fills the detail panel for the artist at the given list
// position. Attribute fetches hit the per-artist cache after the first
// view, so revisiting an artist redraws without network traffic.
func (a *App) showDetail(index int) {
	if index < 0 || index >= len(a.artists) {
		return
	}
	artist := a.artists[index]

	go func() {
		a.fetchMu.Lock()
		defer a.fetchMu.Unlock()

		ctx, cancel := context.WithTimeout(a.ctx, a.config.Timeout)
		defer cancel()

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("[white::b]%s[-:-:-]\n", tview.Escape(artist.Name)))
		sb.WriteString(fmt.Sprintf("[gray]%s[-]\n\n", artist.ID))

		if hotttnesss, err := artist.Hotttnesss(ctx, echonest.FetchOptions{}); err == nil {
			sb.WriteString(fmt.Sprintf("Hotttnesss:  [yellow]%.4f[-]\n", hotttnesss))
		}
		if familiarity, err := artist.Familiarity(ctx, echonest.FetchOptions{}); err == nil {
			sb.WriteString(fmt.Sprintf("Familiarity: [yellow]%.4f[-]\n", familiarity))
		}

		if urls, err := artist.URLs(ctx, echonest.FetchOptions{}); err == nil {
			fields := urls.Fields()
			sort.Strings(fields)
			sb.WriteString("\n[white]URLs[-]\n")
			for _, field := range fields {
				value, err := urls.Get(field)
				if err != nil {
					continue
				}
				sb.WriteString(fmt.Sprintf("  %-16s %v\n", field, tview.Escape(fmt.Sprintf("%v", value))))
			}
		}

		text := sb.String()
		a.app.QueueUpdateDraw(func() {
			// The selection may have moved while we were fetching
			if a.results.GetCurrentItem() == index {
				a.detail.SetText(text)
			}
		})
	}()
}
