package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/config"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/logging"
)

var rootCmd = &cobra.Command{
	Use:   "merchantctl",
	Short: "Merchant, product and order service",
	Long: `Run and administer the merchant service.

The service keeps merchants, products, orders and their lookup tables in
PostgreSQL and mirrors them into a search index.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		return logging.Setup(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	},
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
