package cmd

import (
	"testing"

	"github.com/spf13/cobra"

	"github.com/marcus/sitegate/internal/nav"
)

func TestNavToggles(t *testing.T) {
	base := nav.Toggles{IncludeAuth: true, IncludeAdmin: true, IncludeBlog: true, IncludeBilling: false}

	c := &cobra.Command{Use: "nav"}
	addNavFlags(c)

	// Unset flags keep the resolved settings.
	if got := navToggles(c, base); got != base {
		t.Errorf("unchanged flags: got %+v, want %+v", got, base)
	}

	if err := c.Flags().Set("blog", "false"); err != nil {
		t.Fatal(err)
	}
	if err := c.Flags().Set("billing", "true"); err != nil {
		t.Fatal(err)
	}
	want := nav.Toggles{IncludeAuth: true, IncludeAdmin: true, IncludeBlog: false, IncludeBilling: true}
	if got := navToggles(c, base); got != want {
		t.Errorf("overridden flags: got %+v, want %+v", got, want)
	}
}
