package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openpdfa/openpdfa/pkg/client"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the openpdfa service is up",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.NewClient(baseURL, apiKey).Health(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
