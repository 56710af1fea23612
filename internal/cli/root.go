// Package cli implements fynixctl, an offline companion to the API server.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

// NewRootCmd builds the fynixctl command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fynixctl",
		Short: "Offline invoice tooling for Fynix",
		Long: `fynixctl works on invoice and work item JSON files without a running
server: recompute totals, assign invoice numbers, render PDFs and compute
portfolio KPIs. It also applies database migrations.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newTotalsCmd())
	root.AddCommand(newNumberCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newKPICmd())
	root.AddCommand(newMigrateCmd())
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func readJSON(path string, v interface{}) error {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
