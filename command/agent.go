package command

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/kaiobuu/kaioagent/internal/config"
	"github.com/kaiobuu/kaioagent/internal/console"
	"github.com/kaiobuu/kaioagent/internal/dispatch"
	"github.com/kaiobuu/kaioagent/internal/executor"
	"github.com/kaiobuu/kaioagent/internal/fileaccess"
	"github.com/kaiobuu/kaioagent/internal/session"
	"github.com/kaiobuu/kaioagent/internal/transport"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	agentCmd.Flags().StringP("server", "s", "", "The controller to connect to.\nOverrides the "+CONFIG_ENV_PREFIX+"_SERVER environment variable if set.")
	agentCmd.Flags().BoolP("tls-skip-verify", "", false, "Skip TLS verification when talking to the controller.\nOverrides the "+CONFIG_ENV_PREFIX+"_TLS_SKIP_VERIFY environment variable if set.")

	RootCmd.AddCommand(agentCmd)
}

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Start the agent",
	Long: `Start the agent and hold a persistent connection to the controller.

The controller assigns a session id on connect; the id is persisted and printed
so it can be handed to whoever drives the session. Requests received over the
connection are executed one at a time and answered in order.`,
	Args: cobra.NoArgs,
	PreRun: func(cmd *cobra.Command, args []string) {
		viper.BindPFlag("controller.server", cmd.Flags().Lookup("server"))
		viper.BindEnv("controller.server", CONFIG_ENV_PREFIX+"_SERVER")
		viper.SetDefault("controller.server", config.DefaultController)
		viper.BindPFlag("tls_skip_verify", cmd.Flags().Lookup("tls-skip-verify"))
		viper.BindEnv("tls_skip_verify", CONFIG_ENV_PREFIX+"_TLS_SKIP_VERIFY")
	},
	Run: func(cmd *cobra.Command, args []string) {
		paths, err := config.AgentPaths()
		if err != nil {
			log.Fatal().Msg(err.Error())
		}
		if err := paths.EnsureDirs(); err != nil {
			log.Fatal().Msg(err.Error())
		}

		store := session.NewStore(paths.SessionFile)
		if previous, err := store.Load(); err == nil {
			log.Info().Msgf("agent: previous session id: %s", previous)
		} else if !errors.Is(err, session.ErrNoSession) {
			log.Error().Msgf("agent: loading session id: %v", err)
		}

		server := config.NormalizeControllerAddr(viper.GetString("controller.server"))
		log.Info().Msgf("agent: connecting to controller: %s", server)

		// Each run gets its own instance id for dial headers and logs
		agentID := uuid.New().String()
		header := http.Header{
			"X-Kaio-Agent": []string{agentID},
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		link, sessionID, err := transport.Connect(ctx, server+"/session", header, viper.GetBool("tls_skip_verify"))
		if err != nil {
			log.Fatal().Msgf("agent: %v", err)
		}
		defer link.Close()

		// Connecting without being able to persist the id is a fatal
		// startup condition
		if err := store.Persist(sessionID); err != nil {
			log.Fatal().Msgf("agent: %v", err)
		}

		cons := console.New()
		cons.SessionBanner(sessionID)
		log.Info().Msgf("agent: connected, session id: %s", sessionID)

		dispatcher := dispatch.New(executor.New(paths.Workspace, cons), fileaccess.New())

		done := make(chan error, 1)
		go func() {
			done <- dispatcher.Serve(ctx, link)
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)

		select {
		case err := <-done:
			if err != nil {
				log.Error().Msgf("agent: %v", err)
			}
		case <-c:
			fmt.Println("\r")
			cancel()
			link.Close()
		}

		log.Info().Msg("Agent Shutdown")
	},
}
