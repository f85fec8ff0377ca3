package cli

import (
	"github.com/spf13/cobra"
)

// initResult is the JSON form of the init command output.
type initResult struct {
	DataDir string `json:"dataDir"`
	Name    string `json:"name"`
	Backend string `json:"backend"`
}

func newInitCmd(a *app) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the configuration and data directories and start a game",
		Long: `Init writes a default config.yaml if none exists, creates the data
directory and saves a new player's state. Running it again keeps the
existing game; use --name to rename the player.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.session.Save()
			if name != "" {
				if err := a.session.SetName(name); err != nil {
					return err
				}
			}
			st := a.session.State()
			res := initResult{DataDir: a.dataDir, Name: st.Stats.Name, Backend: a.backend}
			p := a.out(cmd)
			return p.emit(res, func() {
				p.heading("save4dream is ready")
				p.field("Player", res.Name)
				p.field("Data", res.DataDir)
				p.stats(st.Stats)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "player name")
	return cmd
}
