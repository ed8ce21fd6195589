package remote

import (
	"context"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/theirongolddev/staffplan/internal/daemon"
	"github.com/theirongolddev/staffplan/internal/model"
	"github.com/theirongolddev/staffplan/internal/store"
)

func newTestServer(t *testing.T, token string) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.Open(filepath.Join(t.TempDir(), "proposals.db"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	srv := httptest.NewServer(daemon.New(daemon.Config{Token: token}, st).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestNewClientEmptyURL(t *testing.T) {
	if c := NewClient("  ", "tok"); c != nil {
		t.Fatal("NewClient with empty URL should return nil")
	}
}

func TestClientRoundTrip(t *testing.T) {
	srv := newTestServer(t, "secret")
	c := NewClient(srv.URL+"/", "secret")
	ctx := context.Background()

	p := model.DefaultProposal(time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC))
	res, err := c.Save(ctx, p)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	p.ID = res.ID
	p.Title = "Revised"
	res2, err := c.Save(ctx, p)
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if res2.ID != res.ID || res2.Version != 2 {
		t.Fatalf("second save = %+v, want same id at version 2", res2)
	}

	got, err := c.Load(ctx, res.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Title != "Revised" {
		t.Fatalf("Title = %q, want Revised", got.Title)
	}

	versions, err := c.Versions(ctx, res.ID)
	if err != nil {
		t.Fatalf("Versions: %v", err)
	}
	if len(versions) != 2 || versions[0].Version != 2 {
		t.Fatalf("versions = %+v, want newest first", versions)
	}

	entries, err := c.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 || entries[0].Client != "YHA" {
		t.Fatalf("entries = %+v", entries)
	}

	proj, err := c.Project(ctx, got, "Hillel")
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if proj.View != "Hillel" || len(proj.Breakdown.Roles) == 0 {
		t.Fatalf("projection view=%q roles=%d", proj.View, len(proj.Breakdown.Roles))
	}

	st, err := c.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.Saves != 2 || st.Proposals != 1 {
		t.Fatalf("status saves=%d proposals=%d, want 2 and 1", st.Saves, st.Proposals)
	}

	if err := c.Delete(ctx, res.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Load(ctx, res.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load after delete err = %v, want ErrNotFound", err)
	}
}

func TestClientUnauthorized(t *testing.T) {
	srv := newTestServer(t, "secret")
	c := NewClient(srv.URL, "wrong")

	if _, err := c.List(context.Background()); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("List err = %v, want ErrUnauthorized", err)
	}
}
