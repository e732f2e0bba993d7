// Command recipebox runs the recipe catalog API and its maintenance tasks.
//
//	recipebox serve             # start the HTTP server
//	recipebox migrate           # run pending migrations
//	recipebox migrate:rollback
//	recipebox migrate:status
//	recipebox seed              # load the demo catalog
//	recipebox db:wait           # block until the database answers
//	recipebox route:list
//	recipebox user:createsuperuser --email a@b.c --name Admin --password secret
//	recipebox user:delete --email a@b.c
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import migrations so their init() funcs run and register themselves.
	_ "github.com/shashiranjanraj/recipebox/database/migrations"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "recipebox",
	Short:         "Multi-tenant recipe catalog API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(dbWaitCmd)

	// Accounts
	rootCmd.AddCommand(createSuperuserCmd)
	rootCmd.AddCommand(deleteUserCmd)
}
