package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/save4dream/internal/game"
	"github.com/mesh-intelligence/save4dream/internal/sqlite"
)

var errNeedsConfirm = errors.New("reset deletes the whole game; pass --yes to confirm")

func newResetCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the game and start over",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errNeedsConfirm
			}
			a.session.Reset()
			st := a.session.State()
			p := a.out(cmd)
			return p.emit(st.Stats, func() {
				p.println("Game reset. Welcome back, " + st.Stats.Name + ".")
				p.stats(st.Stats)
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the reset")
	return cmd
}

func newHistoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history <key>",
		Short: "Show every saved revision of a state key",
		Long: "History lists the revisions the sqlite backend keeps for one key: " +
			strings.Join(game.Keys, ", ") + ".",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if !slices.Contains(game.Keys, key) {
				return fmt.Errorf("unknown key %q", key)
			}
			b, ok := a.store.(*sqlite.Backend)
			if !ok {
				return fmt.Errorf("history needs the sqlite backend, not %s", a.backend)
			}
			revs, err := b.History(key)
			if err != nil {
				return systemError("read history: %w", err)
			}
			p := a.out(cmd)
			return p.emit(revs, func() {
				p.heading(fmt.Sprintf("%s (%d revisions)", key, len(revs)))
				for _, r := range revs {
					p.printf("%4d %-7s %s %s\n", r.Version, r.Operation,
						r.CreatedAt.Format("2006-01-02 15:04:05"), p.muted.Render(string(r.Value)))
				}
			})
		},
	}
}
