package tui

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/staffplan/internal/cli"
	"github.com/theirongolddev/staffplan/internal/model"
	"github.com/theirongolddev/staffplan/internal/tui/components"
	"github.com/theirongolddev/staffplan/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type fieldKind int

const (
	fieldTitle fieldKind = iota
	fieldDate
	fieldSetting
	fieldCompensation
	fieldCompKind
	fieldBillingRate
	fieldMinHours
	fieldMaxHours
)

// editTarget says what the open editor commits into.
type editTarget int

const (
	editField editTarget = iota
	editNewClient
	editNewRole
)

const dateLayout = "2006-01-02"

// inputField is one editable value on the Inputs tab.
type inputField struct {
	kind    fieldKind
	key     string // setting name or role
	section string
	label   string
	value   float64
	text    string // editor seed for text fields
	display string
}

// textual reports whether the field is edited as free text.
func (f inputField) textual() bool {
	return f.kind == fieldTitle || f.kind == fieldDate
}

// inputsState tracks the Inputs tab cursor and the field being edited.
type inputsState struct {
	cursor  int
	editing bool
	target  editTarget
	input   textinput.Model
	err     error
}

func (s *inputsState) clampCursor(n int) {
	if s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// inputFields lists the editable fields: title and date, global settings,
// compensation, then the role scenarios of the active client.
func (a App) inputFields() []inputField {
	p := a.proposal
	s := p.Settings

	const header, settings = "Proposal", "Global Settings"
	fields := []inputField{
		{kind: fieldTitle, section: header, label: "Title", text: p.Title, display: p.Title},
		{kind: fieldDate, section: header, label: "Date",
			text: p.Date.Format(dateLayout), display: cli.FormatDate(p.Date)},
		{kind: fieldSetting, key: model.SettingMultiplier, section: settings,
			label: "Labor cost multiplier", value: s.LaborCostMultiplier,
			display: strconv.FormatFloat(s.LaborCostMultiplier, 'f', -1, 64) + "x"},
		{kind: fieldSetting, key: model.SettingOverhead, section: settings,
			label: "Overhead", value: s.OverheadPercentage,
			display: cli.FormatPercent(s.OverheadPercentage)},
		{kind: fieldSetting, key: model.SettingWeeks, section: settings,
			label: "Proposal period", value: float64(s.WeeksInProposalPeriod),
			display: cli.FormatWeeks(s.WeeksInProposalPeriod)},
	}

	const team = "Team Compensation"
	for _, e := range p.Compensation {
		fields = append(fields,
			inputField{kind: fieldCompensation, key: e.Role, section: team,
				label: e.Role, value: e.Rate, display: cli.FormatCompensation(e)},
			inputField{kind: fieldCompKind, key: e.Role, section: team,
				label: e.Role + " type", display: string(e.Kind)},
		)
	}

	if c, ok := p.Client(p.ActiveClient); ok {
		section := "Client Scenario: " + c.Client
		for _, rs := range c.Roles {
			fields = append(fields,
				inputField{kind: fieldBillingRate, key: rs.Role, section: section,
					label: rs.Role + " rate", value: rs.BillingRate, display: cli.FormatRate(rs.BillingRate)},
				inputField{kind: fieldMinHours, key: rs.Role, section: section,
					label: rs.Role + " min", value: rs.MinHours, display: cli.FormatHours(rs.MinHours) + " hrs/week"},
				inputField{kind: fieldMaxHours, key: rs.Role, section: section,
					label: rs.Role + " max", value: rs.MaxHours, display: cli.FormatHours(rs.MaxHours) + " hrs/week"},
			)
		}
	}
	return fields
}

// parseAmount reads a typed number, tolerating a leading $ and thousands
// separators. Only finite values are accepted.
func parseAmount(s string) (float64, error) {
	raw := strings.TrimLeft(strings.TrimSpace(s), "$")
	raw = strings.ReplaceAll(raw, ",", "")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return v, nil
}

// applyField writes v into the proposal field f names. Negative input is
// clamped to zero.
func (a *App) applyField(f inputField, v float64) error {
	v = cli.EnsurePositive(v)
	p := &a.proposal

	switch f.kind {
	case fieldSetting:
		return p.SetSetting(f.key, v)
	case fieldCompensation:
		e, ok := model.LookupCompensation(p.Compensation, f.key)
		if !ok {
			return fmt.Errorf("no compensation entry for role %q", f.key)
		}
		e.Rate = v
		return p.SetCompensation(e)
	}

	c, ok := p.Client(p.ActiveClient)
	if !ok {
		return errors.New("no active client")
	}
	for _, rs := range c.Roles {
		if rs.Role != f.key {
			continue
		}
		switch f.kind {
		case fieldBillingRate:
			rs.BillingRate = v
		case fieldMinHours:
			rs.MinHours = v
		case fieldMaxHours:
			rs.MaxHours = v
		}
		return p.SetRoleScenario(c.Client, rs)
	}
	return fmt.Errorf("role %q not staffed at %s", f.key, c.Client)
}

// commitField stores the editor text into f.
func (a *App) commitField(f inputField, raw string) error {
	switch f.kind {
	case fieldTitle:
		return a.proposal.SetTitle(raw)
	case fieldDate:
		d, err := time.Parse(dateLayout, raw)
		if err != nil {
			return fmt.Errorf("%q is not a date (YYYY-MM-DD)", raw)
		}
		a.proposal.SetDate(d)
		return nil
	}
	v, err := parseAmount(raw)
	if err != nil {
		return err
	}
	return a.applyField(f, v)
}

// toggleKind switches a role between Hourly and Salary pay, keeping the rate.
func (a *App) toggleKind(role string) error {
	e, ok := model.LookupCompensation(a.proposal.Compensation, role)
	if !ok {
		return fmt.Errorf("no compensation entry for role %q", role)
	}
	if e.Kind == model.Hourly {
		e.Kind = model.Salary
	} else {
		e.Kind = model.Hourly
	}
	return a.proposal.SetCompensation(e)
}

// addClient adds an empty client and makes it the one being edited.
func (a *App) addClient(name string) error {
	if err := a.proposal.AddClient(name); err != nil {
		return err
	}
	a.proposal.ActiveClient = name
	return nil
}

// addRole staffs role at the active client, creating an hourly
// compensation entry for it when the team has none.
func (a *App) addRole(role string) error {
	if role == "" {
		return errors.New("role name must not be empty")
	}
	p := &a.proposal
	c, hasClient := p.Client(p.ActiveClient)
	if hasClient {
		for _, rs := range c.Roles {
			if rs.Role == role {
				return fmt.Errorf("role %q already staffed at %s", role, c.Client)
			}
		}
	}

	_, known := model.LookupCompensation(p.Compensation, role)
	if known && !hasClient {
		return fmt.Errorf("role %q already has a compensation entry", role)
	}
	if !known {
		if err := p.AddCompensation(model.CompensationEntry{Role: role, Kind: model.Hourly}); err != nil {
			return err
		}
	}
	if hasClient {
		return p.SetRoleScenario(c.Client, model.RoleScenario{Role: role})
	}
	return nil
}

// removeAt drops what the field under the cursor belongs to: a team role
// from the compensation table, or a role from the active client.
func (a *App) removeAt(f inputField) error {
	switch f.kind {
	case fieldCompensation, fieldCompKind:
		return a.proposal.RemoveCompensation(f.key)
	case fieldBillingRate, fieldMinHours, fieldMaxHours:
		return a.proposal.RemoveRoleScenario(a.proposal.ActiveClient, f.key)
	}
	return errors.New("nothing to remove here")
}

// edited records a content change and recomputes the projection.
func (a *App) edited() {
	a.rev.edits++
	a.recompute()
	a.inputs.clampCursor(len(a.inputFields()))
}

func (a *App) openEditor(target editTarget, placeholder, value string, limit int) tea.Cmd {
	ti := textinput.New()
	ti.CharLimit = limit
	ti.Width = min(limit, 40)
	ti.Placeholder = placeholder
	ti.SetValue(value)
	ti.Focus()
	a.inputs.input = ti
	a.inputs.target = target
	a.inputs.editing = true
	a.inputs.err = nil
	return textinput.Blink
}

func (a App) updateInputsNav(key string) (tea.Model, tea.Cmd) {
	fields := a.inputFields()
	switch key {
	case "j", "down":
		a.inputs.cursor++
		a.inputs.clampCursor(len(fields))
	case "k", "up":
		a.inputs.cursor--
		a.inputs.clampCursor(len(fields))
	case "g":
		a.inputs.cursor = 0
	case "G":
		a.inputs.cursor = len(fields) - 1
		a.inputs.clampCursor(len(fields))
	case "c":
		a.cycleClient()
	case "n":
		cmd := a.openEditor(editNewClient, "Client name", "", 40)
		return a, cmd
	case "a":
		cmd := a.openEditor(editNewRole, "Role name", "", 40)
		return a, cmd
	case "x":
		if len(fields) == 0 {
			return a, nil
		}
		if err := a.removeAt(fields[a.inputs.cursor]); err != nil {
			a.inputs.err = err
			return a, nil
		}
		a.inputs.err = nil
		a.edited()
	case "X":
		if err := a.proposal.RemoveClient(a.proposal.ActiveClient); err != nil {
			a.inputs.err = err
			return a, nil
		}
		a.inputs.err = nil
		a.edited()
	case "enter":
		if len(fields) == 0 {
			return a, nil
		}
		f := fields[a.inputs.cursor]
		switch {
		case f.kind == fieldCompKind:
			if err := a.toggleKind(f.key); err != nil {
				a.inputs.err = err
				return a, nil
			}
			a.inputs.err = nil
			a.edited()
		case f.textual():
			cmd := a.openEditor(editField, f.text, f.text, 64)
			return a, cmd
		default:
			v := strconv.FormatFloat(f.value, 'f', -1, 64)
			cmd := a.openEditor(editField, v, v, 16)
			return a, cmd
		}
	}
	return a, nil
}

func (a App) updateInputsEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.commitInput()
		return a, nil
	case "esc":
		a.inputs.editing = false
		a.inputs.err = nil
		return a, nil
	}

	var cmd tea.Cmd
	a.inputs.input, cmd = a.inputs.input.Update(msg)
	return a, cmd
}

// commitInput applies the edit buffer and recomputes the projection. An
// error keeps the editor open.
func (a *App) commitInput() {
	raw := strings.TrimSpace(a.inputs.input.Value())

	var err error
	switch a.inputs.target {
	case editNewClient:
		err = a.addClient(raw)
	case editNewRole:
		err = a.addRole(raw)
	default:
		fields := a.inputFields()
		if a.inputs.cursor >= len(fields) {
			a.inputs.editing = false
			return
		}
		err = a.commitField(fields[a.inputs.cursor], raw)
	}
	if err != nil {
		a.inputs.err = err
		return
	}

	a.inputs.editing = false
	a.inputs.err = nil
	a.edited()
}

func (a App) renderInputsTab(cw int) string {
	t := theme.Active
	fields := a.inputFields()

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Caution).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	innerW := components.CardInnerWidth(cw)
	labelW := 30
	if labelW > innerW/2 {
		labelW = innerW / 2
	}

	var cards []string
	var body strings.Builder
	section := ""
	flush := func() {
		if section != "" {
			cards = append(cards, components.ContentCard(section, strings.TrimRight(body.String(), "\n"), cw))
		}
		body.Reset()
	}

	for i, f := range fields {
		if f.section != section {
			flush()
			section = f.section
		}
		label := fmt.Sprintf("%-*s ", labelW, truncStr(f.label, labelW))

		switch {
		case i == a.inputs.cursor && a.inputs.editing && a.inputs.target == editField:
			body.WriteString(markerStyle.Render("▸ "))
			body.WriteString(accentStyle.Render(label))
			body.WriteString(a.inputs.input.View())
		case i == a.inputs.cursor:
			row := markerStyle.Render("▸ ") + selectedLabelStyle.Render(label) + selectedStyle.Render(f.display)
			body.WriteString(row)
			if pad := innerW - lipgloss.Width(row); pad > 0 {
				body.WriteString(selectedStyle.Render(strings.Repeat(" ", pad)))
			}
		default:
			body.WriteString(space.Render("  "))
			body.WriteString(labelStyle.Render(label))
			body.WriteString(valueStyle.Render(f.display))
		}
		body.WriteString("\n")
	}
	flush()

	var footer strings.Builder
	if a.inputs.editing && a.inputs.target != editField {
		prompt := "New client: "
		if a.inputs.target == editNewRole {
			prompt = "New role: "
		}
		footer.WriteString(accentStyle.Render(prompt))
		footer.WriteString(a.inputs.input.View())
		footer.WriteString("\n")
	}
	if a.inputs.err != nil {
		footer.WriteString(warnStyle.Render(a.inputs.err.Error()))
		footer.WriteString("\n")
	}
	for _, issue := range a.proj.Issues {
		footer.WriteString(warnStyle.Render("! " + issue.String()))
		footer.WriteString("\n")
	}
	footer.WriteString(labelStyle.Render("[j/k] move  [Enter] edit  [Esc] cancel  [c] client  [n] new client  [a] add role  [x] remove  [X] drop client"))

	cards = append(cards, components.ContentCard("", footer.String(), cw))
	return strings.Join(cards, "\n")
}
