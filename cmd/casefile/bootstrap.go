// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/casefile/internal/bootstrap"
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Create numbered client folders from a template",
	Long: `Bootstrap creates the folders Cliente1 through ClienteN under --root and
copies --template into each one. Existing folders and files are kept as
they are, so the command can be re-run safely.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := bootstrap.Run(cmd.Context(), bootstrap.Options{
			Root:     cfg.Bootstrap.Root,
			Count:    cfg.Bootstrap.Count,
			Template: cfg.Bootstrap.Template,
		}, os.Stdout)
		return err
	},
}

func init() {
	bootstrapCmd.Flags().String("root", "Processos", "directory under which client folders are created")
	bootstrapCmd.Flags().Int("count", 100, "number of client folders")
	bootstrapCmd.Flags().String("template", "", "file copied into every client folder")

	bindFlag(bootstrapCmd.Flags(), "bootstrap.root", "root")
	bindFlag(bootstrapCmd.Flags(), "bootstrap.count", "count")
	bindFlag(bootstrapCmd.Flags(), "bootstrap.template", "template")

	rootCmd.AddCommand(bootstrapCmd)
}
