package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"txn-analytics/internal/seed"
)

var seedOpts = seed.DefaultOptions()

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate demo ledger and country-mapping fixtures",
	RunE: func(cmd *cobra.Command, args []string) error {
		txs, byUser := seed.Generate(seedOpts)
		if err := seed.WriteFiles(seedOpts, txs, byUser); err != nil {
			return err
		}
		fmt.Printf("wrote %d transactions for %d users (%d mapped) to %s\n",
			len(txs), seedOpts.Users, len(byUser), seedOpts.OutDir)
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedOpts.Users, "users", seedOpts.Users, "number of users")
	seedCmd.Flags().IntVar(&seedOpts.Transactions, "transactions", seedOpts.Transactions, "number of transactions")
	seedCmd.Flags().IntVar(&seedOpts.Days, "days", seedOpts.Days, "spread transactions over the trailing N days")
	seedCmd.Flags().Float64Var(&seedOpts.UnmappedRate, "unmapped-rate", seedOpts.UnmappedRate, "fraction of users left out of the country mapping")
	seedCmd.Flags().Uint64Var(&seedOpts.Seed, "seed", seedOpts.Seed, "random seed")
	seedCmd.Flags().StringVar(&seedOpts.OutDir, "out", seedOpts.OutDir, "output directory")
}
