package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/recipebox/config"
	"github.com/shashiranjanraj/recipebox/internal/server"
	"github.com/shashiranjanraj/recipebox/pkg/database"
)

var waitForDB bool

// recipebox serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := boot(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		if waitForDB {
			sqlDB, err := a.db.DB()
			if err != nil {
				return err
			}
			if err := database.WaitFor(ctx, sqlDB, config.DBWaitAttempts(), config.DBWaitInterval()); err != nil {
				return err
			}
		}

		return server.Start(ctx, a.kernel.Handler())
	},
}

// recipebox route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range a.kernel.Routes() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}

func init() {
	serveCmd.Flags().BoolVar(&waitForDB, "wait", false, "Wait for the database before listening")
}
