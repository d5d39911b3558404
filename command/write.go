package command

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	addClientFlags(writeCmd)
	RootCmd.AddCommand(writeCmd)
}

var writeCmd = &cobra.Command{
	Use:   "write <path> <content>",
	Short: "Write a file in a session",
	Long:  `Ask the controller to write a file inside an active session.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		client := newApiClient(cmd)

		result, err := client.WriteFile(context.Background(), args[0], args[1])
		cobra.CheckErr(err)

		if msg, ok := result["error"]; ok {
			fmt.Fprintln(os.Stderr, "Error:", msg)
			os.Exit(1)
		}

		if size, ok := result["size"].(float64); ok {
			fmt.Printf("Wrote %d bytes to %s\n", int(size), args[0])
		}
	},
}
