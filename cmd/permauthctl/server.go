package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/permauth/permauth-in-go/pkg/authn"
	"github.com/permauth/permauth-in-go/pkg/config"
	"github.com/permauth/permauth-in-go/pkg/db"
	"github.com/permauth/permauth-in-go/pkg/server"
	"github.com/permauth/permauth-in-go/pkg/server/endpoints"
	gormstore "github.com/permauth/permauth-in-go/pkg/server/store/gorm"
	"github.com/permauth/permauth-in-go/pkg/sync"
)

func defaultBindAddress() string {
	return config.Get().BindAddress
}

func defaultPort() string {
	return strconv.Itoa(config.Get().Port)
}

func defaultPortInt() int {
	return config.Get().Port
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the permauth application server",
	Long: `Run the permauth application server

Requires the environment variables DATABASE_URL and PERMAUTH_JWT_SECRET.

By default, database migrations and the permission catalog sync run on
startup. Use --no-migrate and --no-sync to skip them.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Get()
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, "Invalid configuration:", err)
			os.Exit(1)
		}
		if db.URL() == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Println("Running database migrations...")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		gormDB, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		s := buildServer(gormDB, host, port)

		noSync, _ := cmd.Flags().GetBool("no-sync")
		if cfg.SyncOnStart && !noSync {
			// Serving with an unsynchronized catalog would leave grants
			// pointing at permissions that do not exist yet.
			syncer := sync.NewSyncer(s.Registry, s.Stores.Permissions)
			if err := syncer.Sync(); err != nil {
				fmt.Fprintf(os.Stderr, "Permission catalog sync failed: %v\n", err)
				os.Exit(1)
			}
		}

		log.Printf("Running server at http://%s:%s...\n", host, port)
		log.Fatal(s.Start())
	},
}

// buildServer wires stores, token issuer and endpoints onto a server.
// The registry is populated as a side effect of endpoint registration.
func buildServer(gormDB *gorm.DB, host, port string) *server.Server {
	cfg := config.Get()

	issuer := authn.NewIssuer(
		[]byte(cfg.JWTSecret),
		cfg.JWTIssuer,
		cfg.JWTAudience,
		cfg.TokenDuration(),
	)

	stores := server.Stores{
		Authz:       gormstore.NewAuthzStore(gormDB),
		Permissions: gormstore.NewPermissionsStore(gormDB),
		Roles:       gormstore.NewRolesStore(gormDB),
		Users:       gormstore.NewUsersStore(gormDB),
		Health:      gormstore.NewHealthStore(gormDB),
	}

	s := server.NewServer(issuer, stores, gormDB, host, port)
	endpoints.RegisterAll(s)
	return s
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
	serverCmd.Flags().Bool("no-sync", false, "skip the permission catalog sync on start")
}
