package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerpath/internal/progress"
	"github.com/abhisek/careerpath/internal/roadmap"
	"github.com/abhisek/careerpath/internal/session"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show overall progress and the status breakdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		return printProgress(cmd.OutOrStdout(), e.session)
	},
}

var resourcesCmd = &cobra.Command{
	Use:   "resources <id>",
	Short: "List learning resources for a milestone",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		c := e.session.State().Catalog()
		if !c.Has(args[0]) {
			return fmt.Errorf("milestone %q: %w", args[0], roadmap.ErrMilestoneNotFound)
		}
		resources := roadmap.ResourcesFor(c, args[0])
		if len(resources) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No resources yet")
			return nil
		}
		writeResources(cmd.OutOrStdout(), resources)
		return nil
	},
}

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "List achievements and when they were unlocked",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		w := cmd.OutOrStdout()
		unlocked := 0
		for _, a := range e.session.Achievements() {
			when := "locked"
			icon := "🔒"
			if a.Unlocked {
				unlocked++
				icon = a.Icon()
				when = a.UnlockedAt.Local().Format("Jan 02, 2006")
			}
			fmt.Fprintf(w, "%s  %-14s %-10s %-14s %s\n", icon, a.Title, a.Rarity.DisplayName(), when, a.Description)
		}
		fmt.Fprintf(w, "\n%d of %d unlocked\n", unlocked, len(e.session.Achievements()))
		return nil
	},
}

func printProgress(w io.Writer, svc *session.Service) error {
	view, err := svc.View()
	if err != nil {
		return err
	}
	p := view.Progress
	c := svc.State().Catalog()

	fmt.Fprintf(w, "Overall  %s  %3.0f%%  (%d/%d)\n\n", bar(p.OverallPercent, 30), p.OverallPercent, p.Completed, p.Total)
	for _, s := range progress.AllStatuses() {
		fmt.Fprintf(w, "  %s %-12s %3d\n", s.Icon(), s.Label(), p.Counts[s])
	}

	fmt.Fprintln(w, "\nBy level")
	for _, g := range progress.ByLevel(c, view.Statuses) {
		fmt.Fprintf(w, "  %-16s %s  %d/%d\n", g.Label, bar(g.Percent(), 20), g.Completed, g.Total)
	}
	fmt.Fprintln(w, "\nBy category")
	for _, g := range progress.ByCategory(c, view.Statuses) {
		fmt.Fprintf(w, "  %-16s %s  %d/%d\n", g.Label, bar(g.Percent(), 20), g.Completed, g.Total)
	}

	if view.Focus != "" {
		m, _ := c.Get(view.Focus)
		fmt.Fprintf(w, "\nFocus: %s\n", m.Title)
	}
	return nil
}

func bar(percent float64, width int) string {
	filled := min(max(int(percent*float64(width)/100), 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func writeResources(w io.Writer, resources []roadmap.Resource) {
	fmt.Fprintln(w, "Resources:")
	for _, r := range resources {
		var meta []string
		if r.Duration != "" {
			meta = append(meta, r.Duration)
		}
		if r.Difficulty != "" {
			meta = append(meta, string(r.Difficulty))
		}
		line := fmt.Sprintf("  %s %s", r.Kind.Icon(), r.Title)
		if len(meta) > 0 {
			line += "  (" + strings.Join(meta, ", ") + ")"
		}
		fmt.Fprintln(w, line)
		fmt.Fprintf(w, "     %s\n", r.URL)
	}
}
