package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/config"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/db"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the merchant data for migration",
	Long: `Export the merchant data necessary to move to another instance.

This command exports:
- Database dump (pg_dump, custom format)
- The effective configuration, without secrets

Both are packed into <label>.tar.xz in the output directory. The search
mirror is not exported; rebuild it with "merchantctl reindex" after restoring.

Example:
  merchantctl export
  merchantctl export --out-dir /backup --label mybackup`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outDir, _ := cmd.Flags().GetString("out-dir")
		label, _ := cmd.Flags().GetString("label")

		if label == "" {
			label = time.Now().UTC().Format("2006-01-02T15-04-05Z")
		}

		if err := runExport(cmd.OutOrStdout(), outDir, label); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("out-dir", "o", ".", "Output directory")
	exportCmd.Flags().StringP("label", "l", "", "Label for archive filename (default: timestamp)")
}

func runExport(w io.Writer, outDir, label string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.PrimaryStore != config.StorePostgres {
		return fmt.Errorf("primary_store %s has nothing to export", cfg.PrimaryStore)
	}
	dbURL := db.URL()
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	_, _ = fmt.Fprintf(w, "Exporting to '%s'...\n", outDir)

	backupDir := filepath.Join(outDir, "backup")
	etcDir := filepath.Join(outDir, "etc")
	for _, dir := range []string{backupDir, etcDir} {
		if err := os.MkdirAll(dir, 0770); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	defer func() {
		_ = os.RemoveAll(backupDir)
		_ = os.RemoveAll(etcDir)
	}()

	settings, err := cfg.FormatJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(etcDir, "merchant.json"), []byte(settings+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}

	dump, archive := exportCommands(dbURL, outDir, label)

	_, _ = fmt.Fprintln(w, "Exporting database...")
	dump.Stderr = os.Stderr
	if err := dump.Run(); err != nil {
		return fmt.Errorf("pg_dump failed: %w", err)
	}

	_, _ = fmt.Fprintln(w, "Creating archive...")
	archive.Stderr = os.Stderr
	if err := archive.Run(); err != nil {
		return fmt.Errorf("tar failed: %w", err)
	}

	_, _ = fmt.Fprintf(w, "Export placed in %s\n", archivePath(outDir, label))
	return nil
}

// exportCommands returns the pg_dump and tar invocations of an export.
func exportCommands(dbURL, outDir, label string) (dump, archive *exec.Cmd) {
	dump = exec.Command("pg_dump", "-Fc", "-f", filepath.Join(outDir, "backup", "merchant.db"), dbURL)
	archive = exec.Command("tar", "Jcf", archivePath(outDir, label), "-C", outDir, "backup", "etc")
	return dump, archive
}

func archivePath(outDir, label string) string {
	return filepath.Join(outDir, label+".tar.xz")
}
