package main

import (
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "insurance",
	Short: "agro insurance API",
	Long: `
insurance serves the agro insurance API: clients, crops, policies, georeferenced
points with their climate history and the nearest point lookup.
`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config-path", "config.yaml", "Path to the config yaml file")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
