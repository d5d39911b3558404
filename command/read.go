package command

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	addClientFlags(readCmd)
	RootCmd.AddCommand(readCmd)
}

var readCmd = &cobra.Command{
	Use:   "read <path>",
	Short: "Read a file in a session",
	Long:  `Ask the controller to read a file inside an active session and print its content.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := newApiClient(cmd)

		result, err := client.ReadFile(context.Background(), args[0])
		cobra.CheckErr(err)

		if msg, ok := result["error"]; ok {
			fmt.Fprintln(os.Stderr, "Error:", msg)
			os.Exit(1)
		}

		if content, ok := result["content"].(string); ok {
			fmt.Print(content)
		}
	},
}
