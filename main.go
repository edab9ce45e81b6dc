package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath  string
	contentType string
	scenario    string
	headless    bool
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "ssai-innovid",
	Short: "Play a server-side ad inserted stream with Innovid interactive overlays",
	Long: `ssai-innovid plays a scripted DAI stream on a simulated player and
coordinates interactive overlays with the ad lifecycle. Events are shown in
a terminal UI and recorded to a local journal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPlayer,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "extra config file, applied last")
	rootCmd.Flags().StringVarP(&contentType, "content-type", "t", "", "live_hls, vod_hls or vod_dash (overrides config)")
	rootCmd.Flags().StringVarP(&scenario, "scenario", "s", "", "ad timeline TOML file (overrides config)")
	rootCmd.Flags().BoolVar(&headless, "headless", false, "run without the terminal UI")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "include debug diagnostics")

	rootCmd.AddCommand(historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
