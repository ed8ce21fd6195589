// Package narrative renders the client-facing proposal document.
package narrative

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/theirongolddev/staffplan/internal/cli"
	"github.com/theirongolddev/staffplan/internal/model"
	"github.com/theirongolddev/staffplan/internal/projection"
)

// Options tweaks the wording of a rendered proposal.
type Options struct {
	// Firm names the provider in the team heading. Empty leaves it out.
	Firm string
}

// TeamMember is one staffed role as presented to the client.
type TeamMember struct {
	Role   string
	Rate   string
	Hours  string
	Duties []string
}

type data struct {
	Title        string
	Date         string
	Client       string
	Possessive   string
	Firm         string
	Team         []TeamMember
	MonthlyRange string
	YearlyRange  string
	Weeks        int
	PerMonth     string
}

var duties = map[string][]string{
	"Clinical Director": {
		"Provides overall clinical leadership and quality assurance.",
		"Consults on program development and high-level strategy.",
		"Ensures alignment with ethical and professional standards.",
	},
	"Senior BCBA/ECD": {
		"Serves as primary clinical lead and point person.",
		"Develops and oversees Tier 1 strategies and trainings.",
		"Conducts FBAs and BIPs and leads targeted trainings.",
	},
	"Behavior Technician": {
		"Delivers direct 1:1 ABA intervention (Tier 3) per BIPs.",
		"May co-facilitate Tier 2 groups and interventions.",
	},
	"Social Skills Coach": {
		"Runs Tier 2 social skills groups.",
		"Coaches staff on reinforcing social-emotional routines.",
	},
}

var tmpl = template.Must(template.New("proposal").Parse(proposalTemplate))

// ClientLabel names the audience for a view.
func ClientLabel(view string) string {
	if view == "" || view == model.Combined {
		return "our partners"
	}
	return view
}

func possessive(name string) string {
	if strings.HasSuffix(name, "s") {
		return name + "'"
	}
	return name + "'s"
}

// Render writes the proposal for the projection's view as Markdown.
func Render(w io.Writer, p model.Proposal, proj model.Projection, opts Options) error {
	weeks := p.Settings.WeeksInProposalPeriod

	staffed := make(map[string]bool, len(proj.Breakdown.Roles))
	for _, r := range proj.Breakdown.Roles {
		staffed[r.Role] = true
	}

	var team []TeamMember
	for _, rh := range projection.WeeklyHours(p.Clients, proj.View) {
		if !staffed[rh.Role] {
			continue
		}
		team = append(team, TeamMember{
			Role:   rh.Role,
			Rate:   cli.FormatRate(rh.BillingRate),
			Hours:  cli.FormatHoursRange(rh.Hours),
			Duties: duties[rh.Role],
		})
	}

	d := data{
		Title:        p.Title,
		Date:         cli.FormatDate(p.Date),
		Client:       ClientLabel(proj.View),
		Possessive:   possessive(ClientLabel(proj.View)),
		Firm:         strings.TrimSpace(opts.Firm),
		Team:         team,
		MonthlyRange: cli.FormatCurrencyRange(projection.Monthly(proj.Summary.YearlyRevenueRange, weeks)),
		YearlyRange:  cli.FormatCurrencyRange(proj.Summary.YearlyRevenueRange),
		Weeks:        weeks,
		PerMonth:     fmt.Sprintf("%.2f", projection.WeeksPerMonth),
	}

	if err := tmpl.Execute(w, d); err != nil {
		return fmt.Errorf("rendering proposal: %w", err)
	}
	return nil
}

const proposalTemplate = `# {{.Title}}

_{{.Date}}_

## 1. Continuing Our Partnership

We sincerely value our partnership with {{.Client}} and appreciate the opportunity to continue
supporting your students and staff.

Building on last year's successes, we propose a refined service model for the upcoming school
year, reflecting our commitment to continuous improvement for our partners.

## 2. Understanding {{.Possessive}} Goals

Based on our collaborative discussions, we understand that {{.Client}} is focused on:

- Enhancing social-emotional support for all students
- Providing targeted interventions for students with specific needs
- Building staff capacity through professional development and coaching
- Creating sustainable systems that will continue beyond our direct support

## 3. Our Approach: Tiered Support Framework

We use an evidence-based tiered model (MTSS) to match support to need.

- **Tier 1 (Universal):** foundational strategies for all students and staff, such as staff PD on
  proactive management and systems consultation.
- **Tier 2 (Targeted):** early intervention for some students, such as social skills groups and
  focused teacher coaching.
- **Tier 3 (Intensive):** individualized support for few students, such as BIP development after
  an FBA and 1:1 intervention.
- **Cross-Tier:** ongoing BCBA consultation, FBAs as needed, parent training and supervision.

## 4. Your {{if .Firm}}{{.Firm}} {{end}}Team
{{range .Team}}
### {{.Role}} ({{.Rate}})
{{range .Duties}}
- {{.}}{{end}}
{{else}}
No roles are staffed for this view yet.
{{end}}
## 5. Partnership Investment

Our flexible model tailors service hours to {{.Possessive}} needs. We propose the following estimated
weekly allocation:
{{range .Team}}
- **{{.Role}}:** {{.Hours}}{{end}}

| Estimate | Range | Basis |
|---|---|---|
| Monthly | {{.MonthlyRange}} | approx. {{.PerMonth}} weeks/month |
| Yearly | {{.YearlyRange}} | based on {{.Weeks}} weeks |

## 6. Expected Outcomes

Through our partnership, {{.Client}} can expect:

- Improved school climate and fewer behavior incidents school-wide
- Greater staff capacity to implement effective behavior support strategies
- Sustainable systems and processes that continue beyond our direct support
- Targeted progress for students receiving individualized interventions
- Data-driven decisions for both school-wide and individual interventions

## 7. Next Steps

1. Review the proposal and share any adjustments needed
2. Finalize the service package and schedule
3. Schedule a kickoff meeting with key stakeholders
4. Begin onboarding and initial assessments
5. Implement Tier 1 strategies and systems

## 8. Appendix

- **Detailed Financials:** full cost breakdown available on request.
- **Service Menu Glossary:** key terms defined for clarity.
- **Team Biographies:** available on request.
- **Sample Tools:** example data sheets and coaching templates.
`
