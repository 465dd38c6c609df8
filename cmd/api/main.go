package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "txn-analytics",
	Short: "Transaction analytics and reporting service",
	Long: `txn-analytics serves aggregate analytics (totals, success rates,
trends, top-N, country rollups) over a transaction ledger through a
filtered report API.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("txn-analytics v1.0.0")
		fmt.Println("Use --help for available commands")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to TOML config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
