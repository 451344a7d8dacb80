package tui

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/JPM1118/pawshower/internal/gallery"
	"github.com/JPM1118/pawshower/internal/metrics"
	"github.com/JPM1118/pawshower/internal/notify"
	"github.com/JPM1118/pawshower/internal/source"
	tea "github.com/charmbracelet/bubbletea"
)

// Driver is the auto-play timer as seen by the view.
type Driver interface {
	Ticks() <-chan time.Time
}

// Panel pairs one gallery store with its auto-play driver. The store's
// auto-play observer is expected to be wired to the driver already.
type Panel struct {
	Store  *gallery.Store
	Driver Driver

	cursor  int
	priming bool
}

func (p *Panel) kind() string {
	return p.Store.Source().Name()
}

type screen int

const (
	screenHome screen = iota
	screenGallery
)

const (
	minWidth  = 60
	minHeight = 20
)

// Messages

type fetchMode int

const (
	fetchManual fetchMode = iota
	fetchAuto
	fetchPrime
)

type fetchResultMsg struct {
	kind string
	mode fetchMode
	url  string
	err  error
}

type autoPlayTickMsg struct {
	kind string
}

// App is the main Bubble Tea model: a home screen and one screen per
// gallery.
type App struct {
	ctx     context.Context
	panels  []*Panel
	screen  screen
	active  int // panel index on the gallery screen
	home    int // cursor on the home screen
	width   int
	height  int
	bell    *notify.Bell
	bar     *notify.Bar
	metrics *metrics.Collectors
	now     func() time.Time
}

// Option configures an App.
type Option func(*App)

// WithBell rings the terminal bell on fetch failures.
func WithBell(b *notify.Bell) Option {
	return func(a *App) { a.bell = b }
}

// WithEventBar shows recent gallery events above the status bar.
func WithEventBar(b *notify.Bar) Option {
	return func(a *App) { a.bar = b }
}

// WithMetrics records gallery size and auto-play state.
func WithMetrics(m *metrics.Collectors) Option {
	return func(a *App) { a.metrics = m }
}

// WithContext sets the context used for image requests.
func WithContext(ctx context.Context) Option {
	return func(a *App) { a.ctx = ctx }
}

// WithStartGallery opens the gallery for the named source instead of the
// home screen.
func WithStartGallery(kind string) Option {
	return func(a *App) { a.open(kind) }
}

// NewApp creates the model. Panels are shown on the home screen in order.
func NewApp(panels []*Panel, opts ...Option) App {
	a := App{
		ctx:    context.Background(),
		panels: panels,
		bar:    notify.NewBar(20),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

// Init starts listening for auto-play ticks.
func (a App) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(a.panels))
	for _, p := range a.panels {
		cmds = append(cmds, waitForTick(p))
	}
	return tea.Batch(cmds...)
}

func waitForTick(p *Panel) tea.Cmd {
	if p.Driver == nil {
		return nil
	}
	kind := p.kind()
	ticks := p.Driver.Ticks()
	return func() tea.Msg {
		if _, ok := <-ticks; !ok {
			return nil
		}
		return autoPlayTickMsg{kind: kind}
	}
}

func (a App) fetch(p *Panel, mode fetchMode) tea.Cmd {
	ctx := a.ctx
	src := p.Store.Source()
	kind := p.kind()
	return func() tea.Msg {
		url, err := src.FetchImage(ctx)
		return fetchResultMsg{kind: kind, mode: mode, url: url, err: err}
	}
}

func (a App) panel(kind string) *Panel {
	for _, p := range a.panels {
		if p.kind() == kind {
			return p
		}
	}
	return nil
}

func (a App) current() *Panel {
	if a.screen != screenGallery || a.active >= len(a.panels) {
		return nil
	}
	return a.panels[a.active]
}

// Update handles messages.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case autoPlayTickMsg:
		p := a.panel(msg.kind)
		if p == nil {
			return a, nil
		}
		if !p.Store.State().AutoPlay {
			return a, waitForTick(p)
		}
		p.Store.BeginFetch()
		return a, tea.Batch(a.fetch(p, fetchAuto), waitForTick(p))

	case fetchResultMsg:
		p := a.panel(msg.kind)
		if p == nil {
			return a, nil
		}
		a.applyResult(p, msg)
		return a, nil
	}

	return a, nil
}

func (a App) applyResult(p *Panel, msg fetchResultMsg) {
	p.Store.Apply(msg.url, msg.err)

	switch msg.mode {
	case fetchManual:
		p.Store.SetLoading(false)
	case fetchPrime:
		p.priming = false
		// The view may have been left while the priming fetch was in flight.
		if a.current() == p {
			p.Store.SetAutoPlay(true)
			a.pushEvent(p, "shower started", false)
		}
	}

	if msg.err != nil {
		a.pushEvent(p, gallery.Message(msg.err), true)
		if a.bell != nil {
			a.bell.Ring(a.now())
		}
	} else {
		a.pushEvent(p, "added "+path.Base(msg.url), false)
		p.cursor = 0
	}
	a.observe(p)
}

func (a App) pushEvent(p *Panel, message string, failed bool) {
	if a.bar == nil {
		return
	}
	a.bar.Push(notify.Event{
		Source:    p.kind(),
		Message:   message,
		Failed:    failed,
		Timestamp: a.now(),
	})
}

func (a App) observe(p *Panel) {
	st := p.Store.State()
	a.metrics.ObserveGallery(p.kind(), len(st.Items), st.AutoPlay)
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		a.leave()
		return a, tea.Quit
	}

	if a.screen == screenHome {
		return a.handleHomeKey(msg)
	}
	return a.handleGalleryKey(msg)
}

func (a App) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if a.home < len(a.panels)-1 {
			a.home++
		}
	case "k", "up":
		if a.home > 0 {
			a.home--
		}
	case "enter":
		if len(a.panels) > 0 {
			a.screen = screenGallery
			a.active = a.home
		}
	case "1", "d":
		a.open(source.NameDog)
	case "2", "c":
		a.open(source.NameCat)
	}
	return a, nil
}

func (a *App) open(kind string) {
	for i, p := range a.panels {
		if p.kind() == kind {
			a.screen = screenGallery
			a.active = i
			a.home = i
		}
	}
}

// leave tears down the current gallery view: its auto-play stops, its
// items and error are kept.
func (a *App) leave() {
	p := a.current()
	if p == nil {
		return
	}
	if p.Store.State().AutoPlay {
		p.Store.SetAutoPlay(false)
		a.pushEvent(p, "shower stopped", false)
		a.observe(p)
	}
}

func (a App) handleGalleryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := a.current()
	if p == nil {
		return a, nil
	}
	st := p.Store.State()

	switch msg.String() {
	case "f", " ":
		if !p.Store.CanFetchManually() || p.priming {
			return a, nil
		}
		p.Store.SetLoading(true)
		p.Store.BeginFetch()
		return a, a.fetch(p, fetchManual)

	case "a":
		return a.toggleAutoPlay(p)

	case "x":
		if st.Empty() {
			return a, nil
		}
		p.Store.Clear()
		p.cursor = 0
		if a.bar != nil {
			a.bar.ClearForSource(p.kind())
		}
		a.pushEvent(p, "cleared", false)
		a.observe(p)
		return a, nil

	case "l", "right":
		if p.cursor < len(st.Items)-1 {
			p.cursor++
		}
		return a, nil

	case "h", "left":
		if p.cursor > 0 {
			p.cursor--
		}
		return a, nil

	case "tab":
		a.leave()
		a.active = (a.active + 1) % len(a.panels)
		a.home = a.active
		return a, nil

	case "esc", "backspace":
		a.leave()
		a.screen = screenHome
		return a, nil
	}

	return a, nil
}

func (a App) toggleAutoPlay(p *Panel) (tea.Model, tea.Cmd) {
	st := p.Store.State()

	if st.AutoPlay {
		p.Store.SetAutoPlay(false)
		a.pushEvent(p, "shower stopped", false)
		a.observe(p)
		return a, nil
	}

	if !p.Store.CanStartAutoPlay() || p.priming {
		return a, nil
	}

	if p.Store.NeedsPrimingFetch() {
		p.priming = true
		p.Store.BeginFetch()
		return a, a.fetch(p, fetchPrime)
	}

	p.Store.SetAutoPlay(true)
	a.pushEvent(p, "shower started", false)
	a.observe(p)
	return a, nil
}

// Counts returns the number of items per gallery, in panel order.
func (a App) Counts() []int {
	out := make([]int, len(a.panels))
	for i, p := range a.panels {
		out[i] = len(p.Store.State().Items)
	}
	return out
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
