package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/recipebox/config"
	"github.com/shashiranjanraj/recipebox/database/seeders"
	"github.com/shashiranjanraj/recipebox/pkg/database"
	"github.com/shashiranjanraj/recipebox/pkg/migration"
)

// recipebox migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, done, err := bootDB(cmd.Context())
		if err != nil {
			return err
		}
		defer done()

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Running migrations…")
		n, err := migration.New(db, out).Run()
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Fprintln(out, "Nothing to migrate.")
		}
		return nil
	},
}

// recipebox migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, done, err := bootDB(cmd.Context())
		if err != nil {
			return err
		}
		defer done()

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Rolling back last batch…")
		n, err := migration.New(db, out).Rollback()
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Fprintln(out, "Nothing to roll back.")
		}
		return nil
	},
}

// recipebox migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, done, err := bootDB(cmd.Context())
		if err != nil {
			return err
		}
		defer done()

		statuses, err := migration.New(db, nil).Status()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "RAN\tBATCH\tMIGRATION")
		for _, s := range statuses {
			ran, batch := "No", "-"
			if s.Ran {
				ran, batch = "Yes", fmt.Sprint(s.Batch)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", ran, batch, s.Name)
		}
		return w.Flush()
	},
}

// recipebox seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, done, err := bootDB(cmd.Context())
		if err != nil {
			return err
		}
		defer done()

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Running seeders…")
		return seeders.RunAll(cmd.Context(), db, out)
	},
}

// recipebox db:wait
var dbWaitCmd = &cobra.Command{
	Use:   "db:wait",
	Short: "Block until the database accepts connections",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, done, err := bootDB(cmd.Context())
		if err != nil {
			return err
		}
		defer done()

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return database.WaitFor(cmd.Context(), sqlDB, config.DBWaitAttempts(), config.DBWaitInterval())
	},
}
