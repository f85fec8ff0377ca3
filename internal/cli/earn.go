package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/save4dream/internal/game"
	"github.com/mesh-intelligence/save4dream/pkg/types"
)

func newMissionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mission",
		Short: "List, complete and generate missions",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List missions",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				st := a.session.State()
				p := a.out(cmd)
				return p.emit(st.Missions, func() {
					p.heading("Missions")
					for _, m := range st.Missions {
						mark := "[ ]"
						if m.Completed() {
							mark = p.good.Render("[x]")
						}
						p.printf("%s %s %-40s %s %s\n", mark, m.Icon, m.Title, p.coins.Render(fmt.Sprintf("+%d", m.Reward)), p.muted.Render(m.ID))
					}
					p.println(p.muted.Render(fmt.Sprintf("New missions today: %d of %d left", st.DailyTasks.Remaining(), types.MaxDailyTasks)))
				})
			},
		},
		&cobra.Command{
			Use:   "complete <id>",
			Short: "Complete a mission and collect its reward",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				out, err := a.session.CompleteMission(args[0])
				if err != nil {
					return err
				}
				msg := ""
				if out.Mission != nil {
					msg = fmt.Sprintf("Mission done: %s (+%d coins)", out.Mission.Title, out.Mission.Reward)
				}
				return a.out(cmd).outcome(out, msg)
			},
		},
		&cobra.Command{
			Use:   "generate",
			Short: "Get a new money mission",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				out := a.session.GenerateMission(cmd.Context())
				msg := ""
				if out.Mission != nil {
					msg = fmt.Sprintf("New mission: %s %s (+%d coins) %s", out.Mission.Icon, out.Mission.Title, out.Mission.Reward, out.Mission.ID)
				}
				return a.out(cmd).outcome(out, msg)
			},
		},
	)
	return cmd
}

func newBankCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bank",
		Short: "Move coins between the wallet and savings",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "deposit",
			Short: fmt.Sprintf("Move %d coins into savings", game.DepositStep),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				out := a.session.Deposit()
				return a.out(cmd).outcome(out, fmt.Sprintf("Saved %d coins", game.DepositStep))
			},
		},
		&cobra.Command{
			Use:   "withdraw",
			Short: fmt.Sprintf("Move %d coins out of savings", game.DepositStep),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				out := a.session.Withdraw()
				return a.out(cmd).outcome(out, fmt.Sprintf("Took %d coins out of savings", game.DepositStep))
			},
		},
	)
	return cmd
}

func newShopCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "Browse and buy rewards",
	}

	var kind string
	list := &cobra.Command{
		Use:   "list",
		Short: "List rewards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rewards := a.catalog.Rewards()
			if kind != "" {
				t := types.RewardType(kind)
				if !t.Valid() {
					return fmt.Errorf("unknown reward type %q (valid: need, want)", kind)
				}
				rewards = a.catalog.RewardsByType(t)
			}
			coins := a.session.State().Stats.Coins
			p := a.out(cmd)
			return p.emit(rewards, func() {
				p.heading("Shop")
				for _, r := range rewards {
					price := p.coins.Render(fmt.Sprintf("%5d", r.Price))
					if r.Price > coins {
						price = p.muted.Render(fmt.Sprintf("%5d", r.Price))
					}
					p.printf("%-4s %s %-24s %s %s\n", r.ID, r.Icon, r.Name, price, p.muted.Render(string(r.Type)))
				}
			})
		},
	}
	list.Flags().StringVar(&kind, "type", "", "only show needs or wants")

	buy := &cobra.Command{
		Use:   "buy <reward-id>",
		Short: "Buy a reward",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.session.Purchase(args[0])
			if err != nil {
				return err
			}
			r, _ := a.catalog.Reward(args[0])
			return a.out(cmd).outcome(out, fmt.Sprintf("Bought %s %s for %d coins", r.Icon, r.Name, r.Price))
		},
	}

	cmd.AddCommand(list, buy)
	return cmd
}
