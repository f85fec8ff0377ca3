package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/save4dream/internal/game"
	"github.com/mesh-intelligence/save4dream/pkg/types"
)

// statusView is the JSON form of the status command output.
type statusView struct {
	Stats           types.UserStats     `json:"stats"`
	SavingsGoal     int                 `json:"savingsGoal"`
	SavingsPercent  int                 `json:"savingsPercent"`
	ActiveGoal      *types.PersonalGoal `json:"activeGoal,omitempty"`
	PendingMissions int                 `json:"pendingMissions"`
	Achievements    int                 `json:"achievementsUnlocked"`
	NextAction      string              `json:"nextAction"`
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show balances, level and what to do next",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := a.session.State()
			goal := a.catalog.SavingsGoal()
			v := statusView{
				Stats:          st.Stats,
				SavingsGoal:    goal,
				SavingsPercent: game.SavingsPercent(st.Stats.Savings, goal),
				ActiveGoal:     a.session.ActiveGoal(),
				Achievements:   game.CountUnlocked(st.Achievements),
				NextAction:     a.session.Journey().NextAction,
			}
			for _, m := range st.Missions {
				if !m.Completed() {
					v.PendingMissions++
				}
			}

			p := a.out(cmd)
			return p.emit(v, func() {
				p.heading("Hi, " + v.Stats.Name)
				p.stats(v.Stats)
				p.field("Savings goal", fmt.Sprintf("%s %d%% of %d", bar(v.SavingsPercent, 20), v.SavingsPercent, goal))
				if g := v.ActiveGoal; g != nil {
					p.field("Working toward", fmt.Sprintf("%s %s %d/%d", g.Icon, g.Name, g.CurrentSavings, g.TargetCost))
				}
				p.field("Missions to do", v.PendingMissions)
				p.field("Achievements", fmt.Sprintf("%d/%d", v.Achievements, len(st.Achievements)))
				p.field("Next", v.NextAction)
			})
		},
	}
}

func newAchievementsCmd(a *app) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "achievements",
		Short: "List achievements and which are unlocked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := a.session.State().Achievements
			if category != "" {
				var filtered []types.Achievement
				for _, ach := range list {
					if string(ach.Category) == category {
						filtered = append(filtered, ach)
					}
				}
				list = filtered
			}
			p := a.out(cmd)
			return p.emit(list, func() {
				p.heading(fmt.Sprintf("Achievements (%d/%d)", game.CountUnlocked(list), len(list)))
				for _, ach := range list {
					mark := p.muted.Render("[ ]")
					if ach.Unlocked() {
						mark = p.good.Render("[x]")
					}
					p.printf("%s %s %-22s %s\n", mark, ach.Icon, ach.Name, p.muted.Render(ach.Description))
				}
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only show one category: savings, learning, missions or special")
	return cmd
}

func newMilestonesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "milestones",
		Short: "Show progress toward the savings goal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := a.session.State()
			pct := game.SavingsPercent(st.Stats.Savings, a.catalog.SavingsGoal())
			p := a.out(cmd)
			return p.emit(st.Milestones, func() {
				p.heading(fmt.Sprintf("Savings %s %d%%", bar(pct, 20), pct))
				for _, m := range st.Milestones {
					mark := p.muted.Render("[ ]")
					if m.Achieved() {
						mark = p.good.Render("[x]")
					}
					p.printf("%s %3d%% %s %s\n", mark, m.Percentage, m.Icon, m.Name)
				}
			})
		},
	}
}

func newJourneyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "journey",
		Short: "Show the guided path and the next step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := a.session.Journey()
			steps := a.catalog.JourneySteps()
			p := a.out(cmd)
			return p.emit(v, func() {
				p.heading(fmt.Sprintf("Journey %s %d/%d", bar(v.Progress.Percentage, 20), v.Progress.Current, v.Progress.Total))
				for _, step := range steps {
					mark := p.muted.Render("[ ]")
					if v.State.IsCompleted(step.ID) {
						mark = p.good.Render("[x]")
					}
					p.printf("%s %s %s\n", mark, step.Icon, step.Title)
				}
				p.field("Next", v.NextAction)
			})
		},
	}
}

func newHintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hint <tab>",
		Short: "Suggest what to do next from a tab",
		Long: "Hint shows the most relevant suggestion for one of the tabs: " +
			strings.Join(game.Tabs, ", ") + ".",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, ok, err := a.session.Hint(args[0])
			if err != nil {
				return fmt.Errorf("%w %q (valid: %s)", err, args[0], strings.Join(game.Tabs, ", "))
			}
			p := a.out(cmd)
			if !ok {
				return p.emit(struct{}{}, func() { p.println(p.muted.Render("Nothing to suggest right now.")) })
			}
			return p.emit(h, func() {
				p.heading(h.Title)
				p.println(h.Message)
				p.println(p.muted.Render(fmt.Sprintf("%s -> %s", h.ActionLabel, h.TargetTab)))
			})
		},
	}
}

func newAnalysisCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "analysis",
		Short: "Analyze spending and saving habits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			an := a.session.Analysis()
			p := a.out(cmd)
			return p.emit(an, func() {
				p.heading("Spending analysis")
				p.field("Purchases", fmt.Sprintf("%d (%d needs, %d wants)", an.TotalPurchases, an.NeedPurchases, an.WantPurchases))
				p.field("Needs", fmt.Sprintf("%d%%", an.NeedRatio))
				p.field("Spent", an.TotalSpent)
				p.field("Earned", an.TotalEarned)
				p.field("Deposits", an.SavingsDeposits)
				p.field("Savings", fmt.Sprintf("%s %d%% of %d", bar(an.SavingsPercent, 20), an.SavingsPercent, game.AnalysisSavingsTarget))
				for _, s := range an.Strengths {
					p.println(p.good.Render("+ " + s))
				}
				for _, w := range an.Weaknesses {
					p.println(p.bad.Render("- " + w))
				}
				for _, tip := range an.Tips {
					p.println(p.muted.Render("* " + tip))
				}
			})
		},
	}
}

func newTipCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tip",
		Short: "Get a money tip of the day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tip := a.session.DailyTip(cmd.Context())
			p := a.out(cmd)
			return p.emit(map[string]string{"tip": tip}, func() { p.println(tip) })
		},
	}
}
