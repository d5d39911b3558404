package command

import (
	"github.com/kaiobuu/kaioagent/apiclient"
	"github.com/kaiobuu/kaioagent/internal/config"
	"github.com/kaiobuu/kaioagent/internal/session"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// addClientFlags attaches the flags shared by the client-initiated commands
// (run, read, write).
func addClientFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("server", "s", "", "The controller to talk to.\nOverrides the "+CONFIG_ENV_PREFIX+"_SERVER environment variable if set.")
	cmd.Flags().StringP("session", "", "", "The session id to drive (default is the last persisted session id).")
	cmd.Flags().BoolP("tls-skip-verify", "", false, "Skip TLS verification when talking to the controller.")
}

// newApiClient builds the controller API client from flags, config and the
// persisted session id.
func newApiClient(cmd *cobra.Command) *apiclient.ApiClient {
	viper.BindPFlag("controller.server", cmd.Flags().Lookup("server"))
	viper.BindEnv("controller.server", CONFIG_ENV_PREFIX+"_SERVER")
	viper.SetDefault("controller.server", config.DefaultController)
	viper.BindPFlag("tls_skip_verify", cmd.Flags().Lookup("tls-skip-verify"))

	sessionID := cmd.Flag("session").Value.String()
	if sessionID == "" {
		paths, err := config.AgentPaths()
		cobra.CheckErr(err)

		sessionID, err = session.NewStore(paths.SessionFile).Load()
		if err != nil {
			cobra.CheckErr("No session id given and none persisted; start the agent first or pass --session")
		}
	}

	server := config.NormalizeAPIAddr(viper.GetString("controller.server"))
	return apiclient.NewClient(server, sessionID, viper.GetBool("tls_skip_verify"))
}
