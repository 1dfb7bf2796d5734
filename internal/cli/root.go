// Package cli implements the huntdesk command tree.
package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// version can be overridden at build time via:
	// go build -ldflags "-X github.com/huntdesk/huntdesk/internal/cli.version=1.2.3"
	version = "0.3.1"
	logo    = "\n" +
		"  _                 _      _           _\n" +
		" | |__  _   _ _ __ | |_ __| | ___  ___| | __\n" +
		" | '_ \\| | | | '_ \\| __/ _` |/ _ \\/ __| |/ /\n" +
		" | | | | |_| | | | | || (_| |  __/\\__ \\   <\n" +
		" |_| |_|\\__,_|_| |_|\\__\\__,_|\\___||___/_|\\_\\\n"
)

var rootCmd = &cobra.Command{
	Use:   "huntdesk",
	Short: "huntdesk - puzzle hunt support desk bot",
	Long:  color.CyanString(logo) + "\nA Telegram support-desk bot: clue code lookups and round-robin admin tickets.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func printHeader(title string) {
	fmt.Println(color.CyanString(logo))
	if title != "" {
		fmt.Println(title)
		fmt.Println("─────────────────────")
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(linkCmd)
}
