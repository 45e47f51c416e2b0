package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/permauth/permauth-in-go/pkg/config"
	"github.com/permauth/permauth-in-go/pkg/db"
	"github.com/permauth/permauth-in-go/pkg/sync"
)

// syncCmd represents the sync command. It registers the endpoints to
// rebuild the route registry, then reconciles the catalog without
// starting the listener.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize the permission catalog",
	Long: `Synchronize the permission catalog with the registered routes.

Derives the permission name for every actionable route and inserts any
missing catalog records. Existing records are never modified. The server
runs this automatically on startup unless disabled.

Example:
  permauthctl sync`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Get()
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, "Invalid configuration:", err)
			os.Exit(1)
		}

		gormDB, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		s := buildServer(gormDB, cfg.BindAddress, defaultPort())
		syncer := sync.NewSyncer(s.Registry, s.Stores.Permissions)
		if err := syncer.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "Permission catalog sync failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
