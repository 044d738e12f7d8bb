// Package tui hosts a marquee engine in the terminal with Bubble Tea. Each
// terminal row covers a fixed slice of the document; regions are drawn as
// their text, faded by their animated alpha.
package tui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/phanxgames/marquee"
	"go.uber.org/zap"
)

const (
	// RowHeight is the document distance covered by one terminal row.
	RowHeight = 24.0
	// Frame is the engine step per tick.
	Frame = 16 * time.Millisecond

	chromeRows = 3 // header, progress bar, help
)

var (
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	orange = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	title  = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
)

type keyMap struct {
	Down     key.Binding
	Up       key.Binding
	PageDown key.Binding
	PageUp   key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Tab      key.Binding
	Remount  key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "scroll")),
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "back")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", " "), key.WithHelp("pgdn", "page")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page back")),
		Top:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:   key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next sample")),
		Remount:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "remount")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.PageDown, k.Tab, k.Remount, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up, k.PageDown, k.PageUp},
		{k.Top, k.Bottom, k.Tab, k.Remount, k.Quit},
	}
}

// Model is the Bubble Tea model driving an engine.
type Model struct {
	engine *marquee.Engine
	tree   *marquee.Region
	keys   keyMap
	help   help.Model
	bar    progress.Model

	width   int
	height  int
	err     error
	onFrame func()
}

// New creates a model for an engine with tree already mounted.
func New(engine *marquee.Engine, tree *marquee.Region) Model {
	m := Model{
		engine: engine,
		tree:   tree,
		keys:   defaultKeys(),
		help:   help.New(),
		bar:    progress.New(progress.WithSolidFill("#FF6B1A"), progress.WithoutPercentage()),
		width:  80,
		height: 24,
	}
	m.resize()
	return m
}

// WithFrameHook returns a copy of m that calls fn after every engine frame.
func (m Model) WithFrameHook(fn func()) Model {
	m.onFrame = fn
	return m
}

// Run mounts tree, runs the terminal program until the user quits or ctx is
// cancelled, and tears the lifecycle down. Cancellation is a normal stop and
// returns nil. onFrame, if set, runs after every engine frame.
func Run(ctx context.Context, engine *marquee.Engine, tree *marquee.Region, onFrame func(), opts ...tea.ProgramOption) error {
	if tree.IsDisposed() {
		return fmt.Errorf("tui: %w", marquee.ErrNilTree)
	}
	m := New(engine, tree).WithFrameHook(onFrame)
	if _, err := engine.Mount(tree); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	defer func() {
		if lc := engine.Current(); lc != nil {
			lc.Teardown()
		}
	}()
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		if ctx.Err() != nil && errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(Frame, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tickMsg:
		m.engine.Advance(Frame)
		if m.onFrame != nil {
			m.onFrame()
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	e := m.engine
	vp := e.Viewport()
	page := vp.Height - RowHeight
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		e.ScrollTo(vp.ScrollY + RowHeight)
	case key.Matches(msg, m.keys.Up):
		e.ScrollTo(vp.ScrollY - RowHeight)
	case key.Matches(msg, m.keys.PageDown):
		e.ScrollTo(vp.ScrollY + page)
	case key.Matches(msg, m.keys.PageUp):
		e.ScrollTo(vp.ScrollY - page)
	case key.Matches(msg, m.keys.Top):
		e.ScrollTo(0)
	case key.Matches(msg, m.keys.Bottom):
		e.ScrollTo(vp.MaxScroll())
	case key.Matches(msg, m.keys.Tab):
		if err := e.NextTab(); err != nil {
			e.Logger().Warn("tab switch failed", zap.Error(err))
		}
	case key.Matches(msg, m.keys.Remount):
		if _, err := e.Mount(m.tree); err != nil {
			m.err = err
			return m, tea.Quit
		}
	}
	return m, nil
}

// resize maps the terminal body onto the document viewport.
func (m *Model) resize() {
	rows := max(m.height-chromeRows, 1)
	vp := m.engine.Viewport()
	vp.Height = float64(rows) * RowHeight
	vp.DocumentHeight = m.tree.Box.Height
	vp.ScrollY = min(vp.ScrollY, vp.MaxScroll())
	m.engine.Scroll(vp)
	m.bar.Width = max(m.width, 1)
	m.help.Width = m.width
}

func (m Model) View() string {
	vp := m.engine.Viewport()
	rows := max(m.height-chromeRows, 1)

	header := title.Render("marquee") + dim.Render(fmt.Sprintf("  %s  %.0f/%.0f", m.engine.ActiveTab(), vp.ScrollY, vp.MaxScroll()))

	width := 0.0
	if bars := m.tree.Descendants(marquee.RoleProgressBar); len(bars) > 0 {
		width = bars[0].Width
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')
	b.WriteString(m.bar.ViewAs(width))
	b.WriteByte('\n')
	for _, line := range RenderBody(m.tree, vp, rows, m.width) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// segment is one piece of text placed at a column.
type segment struct {
	col  int
	text string
}

// RenderBody lays out the visible regions' text into rows lines of the given
// width. Fixed layers are skipped; overlapping segments on a row are pushed
// right.
func RenderBody(root *marquee.Region, vp marquee.Viewport, rows, width int) []string {
	grid := make([][]segment, rows)
	root.Walk(func(r *marquee.Region) bool {
		a := r.WorldAlpha()
		if a <= 0 {
			return false
		}
		if r.Role == marquee.RoleProgressBar || r.Role == marquee.RoleParallax || r.Text == "" {
			return true
		}
		sr := r.ScreenRect(vp)
		row := int(math.Floor(sr.Y / RowHeight))
		col := int(sr.X / marquee.PageWidth * float64(width))
		style := styleFor(r.Role, a)
		for i, ln := range strings.Split(r.Text, "\n") {
			y := row + i
			if y < 0 || y >= rows {
				continue
			}
			grid[y] = append(grid[y], segment{col: col, text: style.Render(ln)})
		}
		return true
	})

	lines := make([]string, rows)
	for y, segs := range grid {
		sort.SliceStable(segs, func(i, j int) bool { return segs[i].col < segs[j].col })
		var b strings.Builder
		at := 0
		for _, s := range segs {
			if s.col > at {
				b.WriteString(strings.Repeat(" ", s.col-at))
				at = s.col
			} else if at > 0 {
				b.WriteByte(' ')
				at++
			}
			b.WriteString(s.text)
			at += lipgloss.Width(s.text)
		}
		lines[y] = b.String()
	}
	return lines
}

// styleFor picks a style from the region's role and effective alpha.
func styleFor(role marquee.Role, alpha float64) lipgloss.Style {
	switch {
	case alpha < 0.35:
		return dimmer
	case alpha < 0.7:
		return dim
	}
	switch role {
	case marquee.RoleHeroHeading, marquee.RoleCounter:
		return orange
	case marquee.RoleHUDBadge, marquee.RoleBenchmark:
		return green
	}
	return white
}
