package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerpath/internal/roadmap"
	"github.com/abhisek/careerpath/internal/session"
)

var completeCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Mark a milestone as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		u, err := e.session.Complete(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printUpdate(cmd.OutOrStdout(), e.session.State().Catalog(), u)
		return nil
	},
}

var focusCmd = &cobra.Command{
	Use:   "focus [id]",
	Short: "Set the milestone you are working on (--clear to unset)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		clearFocus, _ := cmd.Flags().GetBool("clear")
		if clearFocus == (len(args) == 1) {
			return errors.New("pass a milestone id or --clear")
		}

		e, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		id := ""
		if !clearFocus {
			id = args[0]
		}
		if err := e.session.Focus(cmd.Context(), id); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if id == "" {
			fmt.Fprintln(out, "Focus cleared")
			return nil
		}
		m, _ := e.session.State().Catalog().Get(id)
		fmt.Fprintf(out, "Focusing on %s\n", m.Title)
		return nil
	},
}

func init() {
	focusCmd.Flags().Bool("clear", false, "Clear the current focus")
}

func printUpdate(w io.Writer, c *roadmap.Catalog, u session.Update) {
	m, _ := c.Get(u.MilestoneID)
	if u.Duplicate {
		fmt.Fprintf(w, "%s is already completed\n", m.Title)
		return
	}
	fmt.Fprintf(w, "✓ Completed %s\n", m.Title)

	if len(u.NewlyUnlocked) > 0 {
		titles := make([]string, len(u.NewlyUnlocked))
		for i, id := range u.NewlyUnlocked {
			n, _ := c.Get(id)
			titles[i] = n.Title
		}
		fmt.Fprintf(w, "  Unlocked: %s\n", strings.Join(titles, ", "))
	}
	for _, a := range u.NewAchievements {
		fmt.Fprintf(w, "  %s Achievement unlocked: %s (%s)\n", a.Icon(), a.Title, a.Rarity.DisplayName())
	}
}
