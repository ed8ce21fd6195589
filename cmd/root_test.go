package cmd

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/staffplan/internal/config"
	"github.com/theirongolddev/staffplan/internal/document"
	"github.com/theirongolddev/staffplan/internal/model"
	"github.com/theirongolddev/staffplan/internal/remote"
	"github.com/theirongolddev/staffplan/internal/store"
)

func resetFlags(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	zero := func() {
		flagFile, flagID, flagView, flagDB, flagRemote = "", "", "", "", ""
		flagQuiet, flagVerbose = true, false
	}
	zero()
	t.Cleanup(zero)
}

func TestLoadProposalSeedsDefaults(t *testing.T) {
	resetFlags(t)
	cfg := config.DefaultConfig()
	cfg.Defaults.OverheadPercentage = 22

	p, seeded, err := loadProposal(context.Background(), cfg)
	if err != nil {
		t.Fatalf("loadProposal: %v", err)
	}
	if !seeded {
		t.Fatal("seeded = false, want true")
	}
	if p.Settings.OverheadPercentage != 22 {
		t.Fatalf("overhead = %v, want 22 from config", p.Settings.OverheadPercentage)
	}
	if p.View != model.Combined {
		t.Fatalf("view = %q, want %q", p.View, model.Combined)
	}
}

func TestLoadProposalFromFileWithViewOverride(t *testing.T) {
	resetFlags(t)
	path := filepath.Join(t.TempDir(), "proposal.toml")
	src := model.DefaultProposal(time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC))
	src.Title = "From File"
	if err := document.WriteFile(path, src); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	flagFile = path
	flagView = "Hillel"
	p, seeded, err := loadProposal(context.Background(), config.DefaultConfig())
	if err != nil {
		t.Fatalf("loadProposal: %v", err)
	}
	if seeded {
		t.Fatal("seeded = true for a file")
	}
	if p.Title != "From File" || p.View != "Hillel" {
		t.Fatalf("title=%q view=%q", p.Title, p.View)
	}
}

func TestLoadProposalByID(t *testing.T) {
	resetFlags(t)
	dbPath := filepath.Join(t.TempDir(), "proposals.db")
	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	res, err := st.Save(context.Background(), model.DefaultProposal(time.Now()))
	_ = st.Close()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	flagDB = dbPath
	flagID = res.ID
	p, _, err := loadProposal(context.Background(), config.DefaultConfig())
	if err != nil {
		t.Fatalf("loadProposal: %v", err)
	}
	if p.ID != res.ID {
		t.Fatalf("id = %q, want %q", p.ID, res.ID)
	}

	flagID = "missing"
	if _, _, err := loadProposal(context.Background(), config.DefaultConfig()); err == nil ||
		!strings.Contains(err.Error(), "no saved proposal") {
		t.Fatalf("err = %v, want not-found message", err)
	}
}

func TestOpenStorePrefersRemote(t *testing.T) {
	resetFlags(t)
	flagRemote = "http://127.0.0.1:8788/"

	st, release, err := openStore(config.DefaultConfig())
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}
	defer release()
	if _, ok := st.(*remote.Client); !ok {
		t.Fatalf("store = %T, want *remote.Client", st)
	}
}

func TestProjectProposalLocal(t *testing.T) {
	resetFlags(t)
	p := model.DefaultProposal(time.Now())
	p.View = "YHA"

	proj, err := projectProposal(context.Background(), config.DefaultConfig(), p)
	if err != nil {
		t.Fatalf("projectProposal: %v", err)
	}
	if proj.View != "YHA" || len(proj.Breakdown.Roles) == 0 {
		t.Fatalf("projection = %+v", proj)
	}
}

func TestMaskToken(t *testing.T) {
	cases := map[string]string{
		"":                     "not set",
		"short":                "****",
		"abcd1234efgh5678ijkl": "abcd...ijkl",
	}
	for in, want := range cases {
		if got := maskToken(in); got != want {
			t.Fatalf("maskToken(%q) = %q, want %q", in, got, want)
		}
	}
}
