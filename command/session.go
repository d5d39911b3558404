package command

import (
	"fmt"

	"github.com/kaiobuu/kaioagent/internal/config"
	"github.com/kaiobuu/kaioagent/internal/session"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(sessionCmd)
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Show the persisted session id",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		paths, err := config.AgentPaths()
		cobra.CheckErr(err)

		id, err := session.NewStore(paths.SessionFile).Load()
		if err != nil {
			cobra.CheckErr("No session id persisted; start the agent first")
		}

		fmt.Println(id)
	},
}
