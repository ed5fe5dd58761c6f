package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/config"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/db"
)

// configurationApplyCmd represents the configuration apply command
var configurationApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Signal the merchant server to apply new configuration",
	Long: `Validate the current state of the configuration file and then signal the
running merchant server to reload it.

The server re-reads merchant.yml on SIGHUP. Settings that only matter at
startup (primary_store, mirror, surreal_*) still need a restart. Changes to
environment variables are NOT picked up because process environments are
static once a process has started.

Use --test to validate configuration without signalling the server.

Example:
  merchantctl configuration apply
  merchantctl configuration apply --test`,
	RunE: func(cmd *cobra.Command, args []string) error {
		testMode, _ := cmd.Flags().GetBool("test")

		if err := applyConfiguration(cmd.OutOrStdout(), testMode); err != nil {
			return fmt.Errorf("failed to apply configuration: %w", err)
		}
		return nil
	},
}

func init() {
	configurationCmd.AddCommand(configurationApplyCmd)
	configurationApplyCmd.Flags().Bool("test", false, "Validate configuration without signalling the server")
}

func applyConfiguration(w io.Writer, testMode bool) error {
	_, _ = fmt.Fprintln(w, "Validating configuration...")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Config file: %s\n", cfg.ConfigFilePath())

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if cfg.PrimaryStore == config.StorePostgres && db.URL() == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}

	_, _ = fmt.Fprintln(w, "Configuration is valid.")

	if testMode {
		_, _ = fmt.Fprintln(w, "Test mode: not signalling server.")
		return nil
	}

	_, _ = fmt.Fprintln(w, "Sending reload signal to server...")

	output, err := exec.Command("pgrep", "-f", "merchantctl server").Output()
	if err != nil {
		return fmt.Errorf("no running merchantctl server found")
	}

	var pid int
	if _, err := fmt.Sscanf(string(output), "%d", &pid); err != nil {
		return fmt.Errorf("failed to parse PID: %w", err)
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process: %w", err)
	}
	if err := process.Signal(syscall.SIGHUP); err != nil {
		return fmt.Errorf("failed to send signal: %w", err)
	}

	_, _ = fmt.Fprintf(w, "Sent reload signal to process %d\n", pid)
	return nil
}
