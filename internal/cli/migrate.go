package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"fynix/internal/config"
)

func newMigrateCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "db/migrations", "migrations directory")

	open := func() (*migrate.Migrate, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if env := os.Getenv("FYNIX_MIGRATIONS_DIR"); env != "" && !cmd.PersistentFlags().Changed("dir") {
			dir = env
		}
		m, err := migrate.New("file://"+dir, cfg.DB.DSN())
		if err != nil {
			return nil, fmt.Errorf("failed to create migrate instance: %w", err)
		}
		return m, nil
	}

	run := func(name string, fn func(m *migrate.Migrate) error, done string) *cobra.Command {
		return &cobra.Command{
			Use:   name,
			Short: done,
			RunE: func(c *cobra.Command, _ []string) error {
				m, err := open()
				if err != nil {
					return err
				}
				defer m.Close()
				if err := fn(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
					return fmt.Errorf("migration %s failed: %w", name, err)
				}
				fmt.Fprintln(c.OutOrStdout(), done)
				return nil
			},
		}
	}

	cmd.AddCommand(run("up", (*migrate.Migrate).Up, "migrations applied"))
	cmd.AddCommand(run("down", (*migrate.Migrate).Down, "migrations reverted"))

	cmd.AddCommand(&cobra.Command{
		Use:   "steps N",
		Short: "Apply N migrations (negative to revert)",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid steps argument: %w", err)
			}
			m, err := open()
			if err != nil {
				return err
			}
			defer m.Close()
			if err := m.Steps(n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
				return fmt.Errorf("migration steps failed: %w", err)
			}
			fmt.Fprintf(c.OutOrStdout(), "applied %d migration steps\n", n)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current migration version",
		RunE: func(c *cobra.Command, _ []string) error {
			m, err := open()
			if err != nil {
				return err
			}
			defer m.Close()
			version, dirty, err := m.Version()
			if err != nil {
				return fmt.Errorf("failed to get version: %w", err)
			}
			fmt.Fprintf(c.OutOrStdout(), "version: %d, dirty: %v\n", version, dirty)
			return nil
		},
	})
	return cmd
}
