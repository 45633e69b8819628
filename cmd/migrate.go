package cmd

import (
	"errors"
	"fmt"
	"sort"

	"store-ops/feature/masterdata"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCheckOnly bool

// migrateCmd creates or updates the schema and reports drift.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long: `Runs AutoMigrate for every table, then compares the models with the live schema.

With --check no table is changed and a drifted schema fails the command.`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateCheckOnly, "check", false, "Only compare the models with the live schema")
	RootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	d, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	l := d.logger
	defer l.Sync()

	if d.db == nil {
		return errors.New("a database connection is required to migrate")
	}
	svc := masterdata.NewService(d.db, l)

	if !migrateCheckOnly {
		if err := svc.Migrate(ctx); err != nil {
			return err
		}
	}

	report, err := svc.CheckSchema(ctx)
	if err != nil {
		return fmt.Errorf("failed to check schema: %w", err)
	}
	printSchemaReport(l, report)

	if !report.Matched {
		return errors.New("database schema does not match the models")
	}
	return nil
}

func printSchemaReport(l *zap.Logger, report *masterdata.SchemaReport) {
	names := make([]string, 0, len(report.Tables))
	for name := range report.Tables {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		t := report.Tables[name]
		if t.Status == "ok" {
			l.Debug("Table ok", zap.String("table", name))
			continue
		}
		l.Warn("Table drift",
			zap.String("table", name),
			zap.Bool("missing", t.Missing),
			zap.Strings("missing_columns", t.MissingColumns),
			zap.Strings("type_mismatches", t.TypeMismatches))
	}
	for _, e := range report.Errors {
		l.Error("Schema inspection error", zap.String("error", e))
	}

	l.Info("Schema check finished",
		zap.String("driver", report.Driver),
		zap.Bool("matched", report.Matched),
		zap.Int("tables", len(report.Tables)))
}
