package tui

import (
	"testing"

	"github.com/theirongolddev/staffplan/internal/tui/components"
)

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 0

		for i, tab := range components.Tabs {
			w := components.TabVisualWidth(tab, i == active)
			if w != len(tab.Name)+2 {
				t.Fatalf("tab %q width = %d, want %d", tab.Name, w, len(tab.Name)+2)
			}
			x := pos + w/2
			if got := a.tabAtX(x); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w + 1
		}
		if got := a.tabAtX(pos + 5); got != -1 {
			t.Fatalf("x past last tab -> %d, want -1", got)
		}
	}
}
