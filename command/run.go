package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	addClientFlags(runCmd)
	RootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run <command>",
	Short: "Run a command in a session",
	Long:  `Ask the controller to run a shell command inside an active session and print the result.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := newApiClient(cmd)

		result, err := client.RunCommand(context.Background(), strings.Join(args, " "))
		cobra.CheckErr(err)

		if msg, ok := result["error"]; ok {
			fmt.Fprintln(os.Stderr, "Error:", msg)
			os.Exit(1)
		}

		if stdout, ok := result["stdout"].(string); ok && stdout != "" {
			fmt.Print(stdout)
		}
		if stderr, ok := result["stderr"].(string); ok && stderr != "" {
			fmt.Fprint(os.Stderr, stderr)
		}

		if code, ok := result["return_code"].(float64); ok && code != 0 {
			os.Exit(int(code))
		}
	},
}
