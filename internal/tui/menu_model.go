package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/7ntys/chaos-lab/internal/loader"
	"github.com/7ntys/chaos-lab/internal/view"
)

// Key bindings.
const (
	keyQuit  = "q"
	keyCtrlC = "ctrl+c"
	keyEsc   = "esc"
)

// menuSettledMsg carries a finished load back into the event loop.
type menuSettledMsg struct {
	ticket view.Ticket
	result loader.Result
}

// MenuModel is the Bubble Tea model for the interactive cafe view.
//
// The load runs as a command off the event loop; its result is applied in
// Update, so every state transition happens on the Bubble Tea goroutine.
type MenuModel struct {
	ctx    context.Context
	loader view.Loader
	ctrl   *view.Controller
	ticket view.Ticket

	spinner  spinner.Model
	viewport viewport.Model

	width    int
	height   int
	quitting bool
}

// NewMenuModel creates the interactive model. The load starts in Init.
func NewMenuModel(ctx context.Context, l view.Loader, opts ...view.ControllerOption) *MenuModel {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = lipgloss.NewStyle().Foreground(ColorAccent)

	m := &MenuModel{
		ctx:     ctx,
		loader:  l,
		ctrl:    view.NewController(l, opts...),
		spinner: s,
		width:   defaultWidth,
		height:  defaultHeight,
	}
	m.viewport = viewport.New(m.width, m.height-footerHeight)
	return m
}

// Init mounts the view and starts its single load.
func (m *MenuModel) Init() tea.Cmd {
	ticket, started := m.ctrl.Begin()
	m.ticket = ticket
	if !started {
		return m.spinner.Tick
	}

	ctx := m.ctx
	l := m.loader
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return menuSettledMsg{ticket: ticket, result: l.Load(ctx)}
	})
}

// Update handles messages (Bubble Tea interface).
func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-footerHeight, 1)
		m.refreshContent()
		return m, nil

	case menuSettledMsg:
		if m.ctrl.Settle(msg.ticket, msg.result) {
			m.refreshContent()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.State().IsLoading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case keyQuit, keyCtrlC, keyEsc:
			m.quitting = true
			m.ctrl.Unmount()
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// refreshContent re-renders the page into the viewport.
func (m *MenuModel) refreshContent() {
	s := m.ctrl.State()
	m.viewport.SetContent(RenderStyled(s, m.ctrl.Grouped(), m.width))
}

// View renders the current frame (Bubble Tea interface).
func (m *MenuModel) View() string {
	if m.quitting {
		return ""
	}

	s := m.ctrl.State()
	if s.IsLoading() {
		return lipgloss.JoinVertical(lipgloss.Left,
			renderHero(max(m.width, minWidth)),
			m.spinner.View()+" "+StatusStyle.Render(loadingText),
		)
	}

	help := SubtleStyle.Render("↑/↓ scroll • q quit")
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), help)
}

// State returns the current view state.
func (m *MenuModel) State() view.State {
	return m.ctrl.State()
}
