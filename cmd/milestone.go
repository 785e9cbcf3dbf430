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

var milestoneCmd = &cobra.Command{
	Use:   "milestone",
	Short: "Browse roadmap milestones",
}

var milestoneListCmd = &cobra.Command{
	Use:   "list",
	Short: "List milestones in roadmap order (optionally filtered by status or category)",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		status, _ := cmd.Flags().GetString("status")
		category, _ := cmd.Flags().GetString("category")
		return listMilestones(cmd.OutOrStdout(), e.session, progress.Status(status), roadmap.Category(category))
	},
}

var milestoneShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a milestone with its resources, prerequisites and next steps",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		return showMilestone(cmd.OutOrStdout(), e.session, args[0])
	},
}

func init() {
	milestoneListCmd.Flags().String("status", "", "Filter by status (locked, in-progress, completed)")
	milestoneListCmd.Flags().String("category", "", "Filter by category (fundamentals, advanced, specialization)")

	milestoneCmd.AddCommand(milestoneListCmd)
	milestoneCmd.AddCommand(milestoneShowCmd)
}

func listMilestones(w io.Writer, svc *session.Service, status progress.Status, category roadmap.Category) error {
	view, err := svc.View()
	if err != nil {
		return err
	}
	c := svc.State().Catalog()

	var rows []roadmap.Milestone
	for _, m := range c.TopologicalOrder() {
		if status != "" && view.Statuses[m.ID] != status {
			continue
		}
		if category != "" && m.Category != category {
			continue
		}
		rows = append(rows, m)
	}
	if len(rows) == 0 && (status != "" || category != "") {
		return fmt.Errorf("no milestones match the filter")
	}

	fmt.Fprintf(w, "%-8s  %-32s  %5s  %-15s  %s\n", "ID", "Title", "Level", "Category", "Status")
	fmt.Fprintln(w, strings.Repeat("─", 80))

	for _, m := range rows {
		title := m.Title
		if len(title) > 32 {
			title = title[:29] + "..."
		}
		label := view.Statuses[m.ID].Label()
		if m.ID == view.Focus {
			label += " (focus)"
		}
		fmt.Fprintf(w, "%-8s  %-32s  %5d  %-15s  %s %s\n",
			m.ID, title, c.Level(m.ID)+1, m.Category.DisplayName(), view.Statuses[m.ID].Icon(), label)
	}

	fmt.Fprintf(w, "\n%d milestones\n", len(rows))
	return nil
}

func showMilestone(w io.Writer, svc *session.Service, id string) error {
	c := svc.State().Catalog()
	sel, ok := roadmap.Select(c, id)
	if !ok {
		return fmt.Errorf("milestone %q: %w", id, roadmap.ErrMilestoneNotFound)
	}
	view, err := svc.View()
	if err != nil {
		return err
	}

	m := sel.Milestone
	status := view.Statuses[m.ID]
	fmt.Fprintf(w, "%s %s  [%s]\n", status.Icon(), m.Title, status.Label())
	if m.Description != "" {
		fmt.Fprintf(w, "\n%s\n", m.Description)
	}
	fmt.Fprintf(w, "\nCategory:  %s\n", m.Category.DisplayName())
	fmt.Fprintf(w, "Level:     %d\n", c.Level(m.ID)+1)
	if len(m.Skills) > 0 {
		fmt.Fprintf(w, "Skills:    %s\n", strings.Join(m.Skills, ", "))
	}
	if m.Deadline != nil {
		fmt.Fprintf(w, "Deadline:  %s\n", m.Deadline.Format("2006-01-02"))
	}
	if len(sel.Companies) > 0 {
		fmt.Fprintf(w, "Relevant:  %s\n", strings.Join(sel.Companies, ", "))
	}

	if len(sel.Prerequisites) > 0 {
		fmt.Fprintln(w, "\nPrerequisites:")
		for _, p := range sel.Prerequisites {
			fmt.Fprintf(w, "  %s %s (%s)\n", view.Statuses[p.ID].Icon(), p.Title, p.ID)
		}
	}
	if len(sel.NextSteps) > 0 {
		fmt.Fprintln(w, "\nUnlocks:")
		for _, n := range sel.NextSteps {
			fmt.Fprintf(w, "  → %s (%s)\n", n.Title, n.ID)
		}
	}
	if len(sel.Resources) > 0 {
		fmt.Fprintln(w)
		writeResources(w, sel.Resources)
	}
	return nil
}
