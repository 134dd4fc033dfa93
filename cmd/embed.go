package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/devmark/core/embed"
)

var embedCmd = &cobra.Command{
	Use:   "embed <url>...",
	Short: "Show the dev.to embed tag for media URLs",
	Long: `Embed resolves each URL the way iframes and tweets are resolved during
conversion and prints the detected service with the resulting liquid tag.
URLs wrapped by unfurl or embedly proxies are unwrapped first.

Example:
  devmark embed https://www.youtube.com/embed/kmjiUVEMvI4`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, raw := range args {
			e := embed.Lookup(raw)
			service := string(e.Service)
			if e.Service == embed.ServiceNone {
				service = "none"
			}
			fmt.Fprintf(out, "%-10s %s\n", service, strings.TrimSpace(e.Shortcode()))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(embedCmd)
}
