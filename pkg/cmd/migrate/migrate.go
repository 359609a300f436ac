package migrate

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raceiq/raceiq-engine/log"
	"github.com/raceiq/raceiq-engine/pkg/cmd/cmdutil"
	"github.com/raceiq/raceiq-engine/pkg/config"
	"github.com/raceiq/raceiq-engine/pkg/db/migrate"
)

func NewMigrateCmd() *cobra.Command {
	var showVersion bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "performs database migration of the postgres session store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				return printVersion(cmd.Context(), cmd)
			}
			return startMigration(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&showVersion, "version-only", false,
		"only print the current schema version")
	return cmd
}

func startMigration(ctx context.Context) error {
	if err := cmdutil.WaitForDB(ctx); err != nil {
		return err
	}
	dbURL := prepareURLForDB(config.DB)
	log.Debug("Using dbUrl", log.String("url", dbURL))
	if err := migrate.MigrateDB(dbURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	version, dirty, err := migrate.Version(dbURL)
	if err != nil {
		return err
	}
	log.Info("Database migrated", log.Int("version", int(version)), log.Bool("dirty", dirty))
	return nil
}

func printVersion(ctx context.Context, cmd *cobra.Command) error {
	if err := cmdutil.WaitForDB(ctx); err != nil {
		return err
	}
	version, dirty, err := migrate.Version(prepareURLForDB(config.DB))
	if err != nil {
		return err
	}
	cmd.Printf("schema version %d (dirty: %v)\n", version, dirty)
	return nil
}

func prepareURLForDB(url string) string {
	options := "sslmode=disable"
	if strings.Contains(url, "sslmode=") {
		return url
	}
	if strings.Contains(url, "?") {
		return fmt.Sprintf("%s&%s", url, options)
	}
	return fmt.Sprintf("%s?%s", url, options)
}
