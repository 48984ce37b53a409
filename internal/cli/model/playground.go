package model

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/bnema/rove/internal/cli/styles"
	"github.com/bnema/rove/internal/config"
	"github.com/bnema/rove/internal/dom"
	"github.com/bnema/rove/internal/engine"
	"github.com/bnema/rove/internal/logging"
)

// session is the mutable playground state shared with engine callbacks.
// Bubble Tea copies the model value on every update, so everything the
// engine's collaborators touch lives behind this pointer.
type session struct {
	doc     *dom.Document
	layout  *Layout
	eng     *engine.Engine
	focused *dom.Element
	status  string
}

// geometryProxy lets the engine keep one Geometry reference while the
// layout is rebuilt on document reload.
type geometryProxy struct {
	layout *Layout
}

func (p *geometryProxy) BoundingBox(el *dom.Element) (engine.Rect, bool) {
	return p.layout.BoundingBox(el)
}

func (p *geometryProxy) Flow(el *dom.Element) engine.Flow {
	return p.layout.Flow(el)
}

// PlaygroundModel is the Bubble Tea model for `rove play`.
type PlaygroundModel struct {
	path   string
	cfg    config.PlaygroundConfig
	engCfg config.EngineConfig
	theme  *styles.Theme
	keys   styles.PlaygroundKeyMap
	help   help.Model

	s       *session
	proxy   *geometryProxy
	watcher *fsnotify.Watcher
	reloads chan struct{}

	logger zerolog.Logger
	width  int
	err    error
}

type reloadMsg struct{}

// NewPlayground loads the document, installs the engine over it, and
// optionally starts watching the file for changes.
func NewPlayground(ctx context.Context, cfg config.PlaygroundConfig, engCfg config.EngineConfig, path string) (*PlaygroundModel, error) {
	log := logging.FromContext(ctx)

	m := &PlaygroundModel{
		path:   path,
		cfg:    cfg,
		engCfg: engCfg,
		theme:  styles.DefaultTheme(),
		keys:   styles.DefaultPlaygroundKeyMap(),
		help:   help.New(),
		proxy:  &geometryProxy{},
		logger: log.With().Str("component", "playground").Logger(),
	}

	if err := m.load(); err != nil {
		return nil, err
	}

	if cfg.Watch {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return nil, fmt.Errorf("create watcher: %w", err)
		}
		if err := watcher.Add(path); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("watch document: %w", err)
		}
		m.watcher = watcher
		m.reloads = make(chan struct{}, 1)
		go m.forwardEvents()
	}

	return m, nil
}

// load (re)parses the document and stands up a fresh engine over it.
func (m *PlaygroundModel) load() error {
	if m.s != nil && m.s.eng != nil {
		m.s.eng.Uninstall()
	}

	doc, err := dom.ParseFile(m.path)
	if err != nil {
		return err
	}

	s := &session{doc: doc, status: "tab into a group to start"}
	m.proxy.layout = NewLayout(doc, m.cfg.ItemsPerRow)

	eng, err := engine.New(engine.Options{
		Focusable: DefaultFocusable,
		Geometry:  m.proxy,
		Focus: engine.FocusRequesterFunc(func(el *dom.Element) {
			s.focused = el
			s.eng.HandleFocusIn(el)
		}),
		InferRoles: m.engCfg.InferRoles,
		Logger:     m.logger,
	})
	if err != nil {
		return err
	}
	s.eng = eng

	eng.SetOnRebuild(func(g *engine.Group, items []*dom.Element) {
		s.status = fmt.Sprintf("rebuilt %s (%d items)", g.Tokens().Behavior, len(items))
	})
	eng.SetOnActiveChange(func(g *engine.Group, item *dom.Element) {
		s.status = fmt.Sprintf("active: %s", elementLabel(item))
	})

	doc.SetMutationHandler(func(target *dom.Element, added, removed []*dom.Element) {
		eng.HandleTreeChange(target, added, removed)
	})

	eng.Install(doc.Root)
	m.s = s
	return nil
}

func (m *PlaygroundModel) forwardEvents() {
	for {
		select {
		case ev, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) {
				select {
				case m.reloads <- struct{}{}:
				default:
				}
			}
		case _, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (m *PlaygroundModel) waitReload() tea.Cmd {
	if m.reloads == nil {
		return nil
	}
	return func() tea.Msg {
		<-m.reloads
		return reloadMsg{}
	}
}

// Init implements tea.Model.
func (m *PlaygroundModel) Init() tea.Cmd {
	return m.waitReload()
}

// Update implements tea.Model.
func (m *PlaygroundModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case reloadMsg:
		if err := m.load(); err != nil {
			m.err = err
		} else {
			m.s.status = "document reloaded"
			m.err = nil
		}
		return m, m.waitReload()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *PlaygroundModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.watcher != nil {
			m.watcher.Close()
		}
		m.s.eng.Uninstall()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Reload):
		if err := m.load(); err != nil {
			m.err = err
		}
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.moveSequential(1)
		return m, nil

	case key.Matches(msg, m.keys.ShiftTab):
		m.moveSequential(-1)
		return m, nil
	}

	if name, ok := navKeyName(msg.String()); ok {
		if m.s.focused == nil {
			m.moveSequential(1)
			return m, nil
		}
		m.s.eng.HandleKeyName(m.s.focused, name)
		return m, nil
	}
	return m, nil
}

func navKeyName(key string) (string, bool) {
	switch key {
	case "up":
		return "ArrowUp", true
	case "down":
		return "ArrowDown", true
	case "left":
		return "ArrowLeft", true
	case "right":
		return "ArrowRight", true
	case "home":
		return "Home", true
	case "end":
		return "End", true
	}
	return "", false
}

// moveSequential simulates tab-style navigation: it advances platform
// focus through the document's sequential stops (natural stops plus each
// group's single roving primary) and reports the arrival to the engine,
// which may redirect into a remembered item.
func (m *PlaygroundModel) moveSequential(delta int) {
	stops := m.tabStops()
	if len(stops) == 0 {
		m.s.status = "no focusable elements"
		return
	}

	idx := -1
	for i, el := range stops {
		if el == m.s.focused {
			idx = i
			break
		}
	}
	next := ((idx+delta)%len(stops) + len(stops)) % len(stops)

	el := stops[next]
	m.s.focused = el
	m.s.eng.HandleFocusIn(el)
}

// tabStops lists sequentially reachable elements in tree order: anything
// focusable without a negative tabindex. Group secondaries carry
// tabindex="-1" and drop out on their own.
func (m *PlaygroundModel) tabStops() []*dom.Element {
	var stops []*dom.Element
	var walk func(*dom.Element)
	walk = func(el *dom.Element) {
		if DefaultFocusable(el) {
			stops = append(stops, el)
		}
		if sr := el.ShadowRoot(); sr != nil {
			for _, c := range sr.Children() {
				walk(c)
			}
		}
		for _, c := range el.Children() {
			walk(c)
		}
	}
	walk(m.s.doc.Root)
	return stops
}

// View implements tea.Model.
func (m *PlaygroundModel) View() string {
	var b []string
	b = append(b, m.theme.Title.Render("rove playground — "+m.path))

	if m.err != nil {
		b = append(b, m.theme.Error.Render(m.err.Error()))
	}

	for _, container := range groupContainers(m.s.doc.Root) {
		g, ok := m.s.eng.Group(container)
		if !ok {
			continue
		}
		b = append(b, m.renderGroup(g))
	}

	b = append(b, m.theme.Muted.Render(m.s.status))
	b = append(b, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, b...)
}

func (m *PlaygroundModel) renderGroup(g *engine.Group) string {
	ts := g.Tokens()
	header := m.theme.GroupName.Render(fmt.Sprintf("%s %s", g.Element().Tag, describeTokens(ts)))

	rows := g.GridRows()
	if !ts.Grid {
		rows = [][]*dom.Element{g.Items()}
	}

	active := g.ActiveItem()
	var rendered []string
	for _, row := range rows {
		var cells []string
		for _, el := range row {
			style := m.theme.Item
			switch {
			case el == m.s.focused:
				style = m.theme.Focused
			case el == active:
				style = m.theme.Primary
			}
			cells = append(cells, style.Render(elementLabel(el)))
		}
		rendered = append(rendered, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, rendered...)
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

func describeTokens(ts engine.TokenSet) string {
	out := fmt.Sprintf("[%s", ts.Behavior)
	if ts.Wrap {
		out += " wrap"
	}
	if !ts.Memory {
		out += " no-memory"
	}
	if ts.InlineOnly {
		out += " inline"
	}
	if ts.BlockOnly {
		out += " block"
	}
	if ts.ShadowInclusive {
		out += " shadow-inclusive"
	}
	return out + "]"
}

func elementLabel(el *dom.Element) string {
	if el == nil {
		return "(none)"
	}
	for _, attr := range []string{"id", "name", "value", "aria-label"} {
		if v, ok := el.Attr(attr); ok && v != "" {
			return v
		}
	}
	return el.Tag
}
