package narrative

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/staffplan/internal/model"
	"github.com/theirongolddev/staffplan/internal/projection"
)

func render(t *testing.T, p model.Proposal, view string, opts Options) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Render(&buf, p, projection.Project(p.InputFor(view)), opts); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestRender_AllSections(t *testing.T) {
	p := model.DefaultProposal(time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC))
	out := render(t, p, "YHA", Options{Firm: "Stellar Steps"})

	for _, want := range []string{
		"# YHA 2023-24 Proposal",
		"_June 15, 2023_",
		"## 1. Continuing Our Partnership",
		"## 2. Understanding YHA's Goals",
		"## 3. Our Approach: Tiered Support Framework",
		"## 4. Your Stellar Steps Team",
		"### Clinical Director ($185/hr)",
		"## 5. Partnership Investment",
		"- **Senior BCBA/ECD:** 15-25 hrs/week",
		"- **Clinical Director:** 5 hrs/week",
		"based on 40 weeks",
		"approx. 4.33 weeks/month",
		"## 6. Expected Outcomes",
		"## 7. Next Steps",
		"## 8. Appendix",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("proposal missing %q:\n%s", want, out)
		}
	}
}

func TestRender_InvestmentMatchesSummary(t *testing.T) {
	p := model.DefaultProposal(time.Now())
	proj := projection.Project(p.InputFor("YHA"))

	var buf bytes.Buffer
	if err := Render(&buf, p, proj, Options{}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	// YHA worst: (185*5 + 150*15 + 90*15 + 75*0) * 40 = 181,000
	// YHA best:  (185*5 + 150*25 + 90*30 + 75*5) * 40 = 310,000
	if !strings.Contains(buf.String(), "| Yearly | $181,000 - $310,000 |") {
		t.Fatalf("yearly range not rendered from summary:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "## 4. Your Team") {
		t.Fatalf("team heading without firm not rendered:\n%s", buf.String())
	}
}

func TestRender_CombinedSumsHours(t *testing.T) {
	p := model.DefaultProposal(time.Now())
	out := render(t, p, model.Combined, Options{})

	if !strings.Contains(out, "## 2. Understanding our partners' Goals") {
		t.Fatalf("combined view not addressed to partners:\n%s", out)
	}
	if !strings.Contains(out, "- **Behavior Technician:** 25-55 hrs/week") {
		t.Fatalf("combined hours not summed across clients:\n%s", out)
	}
}

func TestRender_EmptyViewHasNoTeam(t *testing.T) {
	p := model.DefaultProposal(time.Now())
	out := render(t, p, "Nobody", Options{})
	if !strings.Contains(out, "No roles are staffed for this view yet.") {
		t.Fatalf("empty view did not render placeholder:\n%s", out)
	}
}
