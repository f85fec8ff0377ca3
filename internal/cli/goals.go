package cli

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/save4dream/pkg/types"
)

// selectionView is the JSON form of the wizard commands' output.
type selectionView struct {
	types.SelectionProgress
	CanProceed bool `json:"canProceed"`
}

func newGoalsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Pick personal goals and save toward them",
		Long: `Goals walks through picking needs, wants and dreams from the catalog.
Toggle catalog goals, move through the steps with next and prev, then
complete the selection to turn your picks into personal goals.`,
	}

	printSelection := func(cmd *cobra.Command, sel types.SelectionProgress) error {
		v := selectionView{SelectionProgress: sel, CanProceed: a.session.CanProceed()}
		p := a.out(cmd)
		return p.emit(v, func() {
			p.heading("Step: " + string(sel.Step))
			p.field("Needs", fmt.Sprintf("%d of %d", len(sel.SelectedNeeds), sel.MinRequired.Needs))
			p.field("Wants", fmt.Sprintf("%d of %d", len(sel.SelectedWants), sel.MinRequired.Wants))
			p.field("Dreams", fmt.Sprintf("%d of %d", len(sel.SelectedDreams), sel.MinRequired.Dreams))
			if !v.CanProceed {
				p.println(p.muted.Render("Pick more goals before moving on."))
			}
		})
	}

	var category string
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "List goals you can pick",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			goals := a.catalog.Goals()
			if category != "" {
				c := types.GoalCategory(category)
				if !c.Valid() {
					return fmt.Errorf("unknown goal category %q (valid: need, want, dream)", category)
				}
				goals = a.catalog.GoalsByCategory(c)
			}
			selected := a.session.State().Selection.Selected()
			p := a.out(cmd)
			return p.emit(goals, func() {
				p.heading("Goal catalog")
				for _, g := range goals {
					mark := "[ ]"
					if slices.Contains(selected, g.ID) {
						mark = p.good.Render("[x]")
					}
					p.printf("%s %s %-24s %-26s %s %s\n", mark, g.Icon, g.ID, g.Name,
						p.coins.Render(fmt.Sprintf("%5d", g.Cost)), p.muted.Render(string(g.Category)))
				}
			})
		},
	}
	catalogCmd.Flags().StringVar(&category, "category", "", "only show needs, wants or dreams")

	cmd.AddCommand(
		catalogCmd,
		&cobra.Command{
			Use:   "toggle <goal-id>",
			Short: "Select or deselect a catalog goal",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				selected, err := a.session.ToggleGoal(args[0])
				if err != nil {
					return err
				}
				p := a.out(cmd)
				return p.emit(map[string]any{"goalId": args[0], "selected": selected}, func() {
					if selected {
						p.println(p.good.Render("Selected " + args[0]))
					} else {
						p.println("Removed " + args[0])
					}
				})
			},
		},
		&cobra.Command{
			Use:   "next",
			Short: "Go to the next step",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if !a.session.CanProceed() {
					return fmt.Errorf("step %s: %w", a.session.State().Selection.Step, types.ErrSelectionIncomplete)
				}
				return printSelection(cmd, a.session.NextStep())
			},
		},
		&cobra.Command{
			Use:   "prev",
			Short: "Go back one step",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return printSelection(cmd, a.session.PrevStep())
			},
		},
		&cobra.Command{
			Use:   "complete",
			Short: "Turn the selected goals into personal goals",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				gs, err := a.session.CompleteSelection()
				if err != nil {
					return err
				}
				return printGoals(a, cmd, gs)
			},
		},
		&cobra.Command{
			Use:   "add <goal> <amount>",
			Short: "Put an amount toward a personal goal",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				amount, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("amount %q: %w", args[1], types.ErrInvalidAmount)
				}
				out, err := a.session.AddSavingsToGoal(args[0], amount)
				if err != nil {
					return err
				}
				return a.out(cmd).outcome(out, fmt.Sprintf("Added %d toward the goal", amount))
			},
		},
		&cobra.Command{
			Use:   "active [goal]",
			Short: "Show or set the goal deposits go toward",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if len(args) == 1 {
					if err := a.session.SetActiveGoal(args[0]); err != nil {
						return err
					}
				}
				g := a.session.ActiveGoal()
				p := a.out(cmd)
				return p.emit(g, func() {
					if g == nil {
						p.println(p.muted.Render("No goals yet. Start with: save4dream goals catalog"))
						return
					}
					printGoalLine(p, *g, true)
				})
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List personal goals",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return printGoals(a, cmd, a.session.State().Goals)
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Discard personal goals and pick again",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				a.session.ResetGoals()
				return printSelection(cmd, a.session.State().Selection)
			},
		},
	)
	return cmd
}

func printGoals(a *app, cmd *cobra.Command, gs types.GoalsState) error {
	p := a.out(cmd)
	return p.emit(gs, func() {
		p.heading(fmt.Sprintf("Goals (%d completed, %d saved)", gs.TotalCompleted, gs.TotalSaved))
		active := gs.Active()
		for _, g := range gs.Goals {
			printGoalLine(p, g, active != nil && active.ID == g.ID)
		}
	})
}

func printGoalLine(p *printer, g types.PersonalGoal, active bool) {
	mark := "  "
	if active {
		mark = p.title.Render("> ")
	}
	line := fmt.Sprintf("%s%s %-26s %s %4d/%-5d %s", mark, g.Icon, g.Name, bar(g.Percent(), 10), g.CurrentSavings, g.TargetCost, p.muted.Render(g.ID))
	if g.Completed {
		line = p.good.Render(line)
	}
	p.println(line)
}
