package cmd

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openpdfa/openpdfa/pkg/client"
)

var outputPath string

var convertCmd = &cobra.Command{
	Use:   "convert <input.pdf>",
	Short: "Convert a PDF file to PDF/A",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputPath := args[0]

		data, err := os.ReadFile(inputPath)
		if err != nil {
			return fmt.Errorf("read %s: %w", inputPath, err)
		}

		c := client.NewClient(baseURL, apiKey)
		out, err := c.Convert(cmd.Context(), base64.StdEncoding.EncodeToString(data))
		if err != nil {
			return err
		}

		decoded, err := base64.StdEncoding.DecodeString(out)
		if err != nil {
			return fmt.Errorf("decode response: %w", err)
		}

		dest := outputPath
		if dest == "" {
			dest = strings.TrimSuffix(inputPath, ".pdf") + ".pdfa.pdf"
		}
		if err := os.WriteFile(dest, decoded, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", dest, err)
		}

		fmt.Printf("wrote %s (%d bytes)\n", dest, len(decoded))
		return nil
	},
}

func init() {
	convertCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file path (default: <input>.pdfa.pdf)")
	rootCmd.AddCommand(convertCmd)
}
