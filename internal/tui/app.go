// Package tui provides the interactive Bubble Tea proposal editor.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/staffplan/internal/config"
	"github.com/theirongolddev/staffplan/internal/document"
	"github.com/theirongolddev/staffplan/internal/model"
	"github.com/theirongolddev/staffplan/internal/projection"
	"github.com/theirongolddev/staffplan/internal/tui/components"
	"github.com/theirongolddev/staffplan/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	tabInputs = iota
	tabFinancials
	tabProposal
	tabSaved
)

// revision identifies the proposal contents the editor holds. doc
// changes when another proposal is loaded, edits on every change to it.
type revision struct {
	doc   int
	edits int
}

// SavedMsg reports the result of saving the proposal.
type SavedMsg struct {
	Result document.SaveResult
	Err    error
	rev    revision
}

// ListMsg carries the store listing.
type ListMsg struct {
	Entries []document.Entry
	Err     error
}

// LoadedMsg carries a proposal loaded from the store.
type LoadedMsg struct {
	Proposal model.Proposal
	Err      error
}

// DeletedMsg reports a store deletion.
type DeletedMsg struct {
	ID  string
	Err error
}

type flashClearMsg struct{ seq int }

// Options configures NewApp.
type Options struct {
	Store  document.Store // nil disables saving and the Saved tab
	Config config.Config
	// Seeded marks a proposal built from defaults rather than loaded.
	Seeded    bool
	NeedSetup bool
}

// App is the root Bubble Tea model.
type App struct {
	proposal model.Proposal
	proj     model.Projection
	store    document.Store
	cfg      config.Config
	seeded   bool
	rev      revision

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	inputs    inputsState
	narrative narrativeState
	saved     savedState

	flash    string
	flashSeq int
	saving   bool

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues
	needSetup bool
}

const (
	minTerminalWidth = 80
	maxContentWidth  = 160
	minContentHeight = 5
	flashDuration    = 3 * time.Second
	storeTimeout     = 15 * time.Second
)

// NewApp creates the editor for p.
func NewApp(p model.Proposal, opts Options) App {
	if p.View == "" {
		p.View = model.Combined
	}
	a := App{
		proposal:  p,
		store:     opts.Store,
		cfg:       opts.Config,
		seeded:    opts.Seeded,
		needSetup: opts.NeedSetup,
	}
	if a.needSetup {
		a.setupVals = &SetupValues{}
		a.setupForm = NewSetupForm(a.cfg, a.setupVals)
	}
	a.recompute()
	return a
}

// Proposal returns the proposal as currently edited.
func (a App) Proposal() model.Proposal {
	return a.proposal
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion}
	if a.store != nil {
		cmds = append(cmds, listCmd(a.store))
	}
	if a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

func (a *App) recompute() {
	a.proj = projection.Project(a.proposal.Input())
}

// cycleView moves the active view to the next entry of Combined + clients.
func (a *App) cycleView() {
	views := a.proposal.Views()
	next := 0
	for i, v := range views {
		if v == a.proposal.View {
			next = (i + 1) % len(views)
			break
		}
	}
	a.proposal.View = views[next]
	a.recompute()
}

// cycleClient moves the client edited on the Inputs tab.
func (a *App) cycleClient() {
	clients := a.proposal.Clients
	if len(clients) == 0 {
		return
	}
	next := 0
	for i, c := range clients {
		if c.Client == a.proposal.ActiveClient {
			next = (i + 1) % len(clients)
			break
		}
	}
	a.proposal.ActiveClient = clients[next].Client
	a.inputs.clampCursor(len(a.inputFields()))
}

func (a *App) setFlash(format string, args ...any) tea.Cmd {
	a.flash = fmt.Sprintf(format, args...)
	a.flashSeq++
	seq := a.flashSeq
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashClearMsg{seq: seq}
	})
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		return a.updateKey(msg)

	case SavedMsg:
		a.saving = false
		if msg.Err != nil {
			cmd := a.setFlash("save failed: %v", msg.Err)
			return a, cmd
		}
		switch {
		case msg.rev == a.rev:
			a.proposal.MarkSaved(msg.Result.ID, msg.Result.SavedAt)
			a.seeded = false
		case msg.rev.doc == a.rev.doc:
			// Edited while saving: the next save adds a version to the same document.
			a.proposal.ID = msg.Result.ID
			a.seeded = false
		}
		cmd := a.setFlash("saved version %d", msg.Result.Version)
		return a, tea.Batch(cmd, listCmd(a.store))

	case ListMsg:
		a.saved.entries = msg.Entries
		a.saved.err = msg.Err
		a.saved.clampCursor()
		return a, nil

	case LoadedMsg:
		if msg.Err != nil {
			cmd := a.setFlash("load failed: %v", msg.Err)
			return a, cmd
		}
		a.proposal = msg.Proposal
		a.rev.doc++
		a.seeded = false
		a.inputs = inputsState{}
		a.narrative = narrativeState{}
		a.recompute()
		a.activeTab = tabFinancials
		cmd := a.setFlash("loaded %q", a.proposal.Title)
		return a, cmd

	case DeletedMsg:
		if msg.Err != nil {
			cmd := a.setFlash("delete failed: %v", msg.Err)
			return a, cmd
		}
		if msg.ID == a.proposal.ID {
			a.proposal.Saved = false
		}
		cmd := a.setFlash("deleted")
		return a, tea.Batch(cmd, listCmd(a.store))

	case flashClearMsg:
		if msg.seq == a.flashSeq {
			a.flash = ""
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.inputs.editing {
		var cmd tea.Cmd
		a.inputs.input, cmd = a.inputs.input.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	// First-run setup wizard intercepts all keys
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	// Field editing intercepts all keys
	if a.activeTab == tabInputs && a.inputs.editing {
		return a.updateInputsEdit(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "ctrl+s":
		return a.save()
	case "v":
		a.cycleView()
		return a, nil
	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	}

	if len(msg.Runes) == 1 {
		if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
			a.activeTab = idx
			return a, nil
		}
	}

	switch a.activeTab {
	case tabInputs:
		return a.updateInputsNav(key)
	case tabProposal:
		return a.updateNarrativeNav(key)
	case tabSaved:
		return a.updateSavedNav(key)
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return a.scroll(-1), nil
	case tea.MouseButtonWheelDown:
		return a.scroll(1), nil
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a App) scroll(delta int) App {
	switch a.activeTab {
	case tabInputs:
		if !a.inputs.editing {
			a.inputs.cursor += delta
			a.inputs.clampCursor(len(a.inputFields()))
		}
	case tabProposal:
		a.narrative.scrollBy(delta)
	case tabSaved:
		a.saved.cursor += delta
		a.saved.clampCursor()
	}
	return a
}

func (a App) save() (tea.Model, tea.Cmd) {
	if a.store == nil {
		cmd := a.setFlash("no store configured")
		return a, cmd
	}
	if a.saving {
		return a, nil
	}
	a.saving = true
	return a, saveCmd(a.store, a.proposal.Clone(), a.rev)
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		err := a.saveSetupConfig()
		a.needSetup = false
		a.setupForm = nil
		var flash tea.Cmd
		if err != nil {
			flash = a.setFlash("could not save config: %v", err)
		} else {
			flash = a.setFlash("setup saved")
		}
		return a, flash
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  staffplan needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

type binding struct{ key, desc string }

var helpSections = []struct {
	title    string
	bindings []binding
}{
	{"Navigation", []binding{
		{"i f p s", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Move cursor / scroll"},
	}},
	{"Editing", []binding{
		{"Enter", "Edit field / Toggle pay type / Load"},
		{"Esc", "Cancel edit"},
		{"c", "Next client (Inputs)"},
		{"n a", "Add client / Add role"},
		{"x X", "Remove role / Remove client"},
		{"v", "Cycle view"},
	}},
	{"Proposal", []binding{
		{"^s", "Save to store"},
		{"r", "Refresh saved list"},
		{"d", "Delete saved proposal"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}},
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Key).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")

	for _, sec := range helpSections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)
	statusBar := components.RenderStatusBar(w, a.proposal.View, a.proposal.Saved, a.flash)

	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case tabInputs:
		content = a.renderInputsTab(cw)
	case tabFinancials:
		content = a.renderFinancialsTab(cw)
	case tabProposal:
		content = a.renderProposalTab(cw, contentH)
	case tabSaved:
		content = a.renderSavedTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Store commands ─────────────────────────────────────────────

// saveCmd saves p, which must not share memory with the edited proposal.
func saveCmd(st document.Store, p model.Proposal, rev revision) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		res, err := st.Save(ctx, p)
		return SavedMsg{Result: res, Err: err, rev: rev}
	}
}

func listCmd(st document.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		entries, err := st.List(ctx)
		return ListMsg{Entries: entries, Err: err}
	}
}

func loadCmd(st document.Store, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		p, err := st.Load(ctx, id)
		return LoadedMsg{Proposal: p, Err: err}
	}
}

func deleteCmd(st document.Store, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		return DeletedMsg{ID: id, Err: st.Delete(ctx, id)}
	}
}

// ─── Helpers ────────────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes follow RenderTabBar: tabs separated by one column.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1
	}
	return -1
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
