package main

import (
	"context"
	"fmt"
	"os"

	"enrollment/config"
	"enrollment/services/enrollment/repository"
	"enrollment/services/enrollment/usecase"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	log     *logrus.Logger
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "enrollment",
	Short: "Child care enrollment registration service",
	Long: `enrollment serves the registration API.

Examples:

  enrollment serve
  enrollment migrate
  enrollment seed
`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if envFile != "" {
			config.LoadEnv(envFile)
		} else {
			config.LoadEnv()
		}
		log = config.GetLogrusInstance()
	},
	// serve is the default command.
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and the admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := config.BootDB()
		if err != nil {
			return err
		}
		defer config.CloseDB(db)

		if err := config.Migrate(db); err != nil {
			return err
		}
		log.Info("Migration complete")
		return nil
	},
}

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load programs, room types, payment plans and enrollment plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := loadSeed(seedFile)
		if err != nil {
			return err
		}

		db, err := config.BootDB()
		if err != nil {
			return err
		}
		defer config.CloseDB(db)

		ctx := cmd.Context()
		if err := config.SeedLookups(ctx, db, data); err != nil {
			return err
		}

		client, err := config.NewRedisClient(ctx)
		if err != nil {
			log.WithError(err).Warn("lookup cache not invalidated")
		} else if client != nil {
			defer client.Close()
			if cache := repository.NewRedisLookupCache(client); cache != nil {
				if err := cache.Invalidate(ctx, usecase.LookupKeys...); err != nil {
					log.WithError(err).Warn("lookup cache not invalidated")
				}
			}
		}

		log.Info("Seed complete")
		return nil
	},
}

func loadSeed(path string) (*config.SeedData, error) {
	if path == "" {
		return config.DefaultSeedData()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open seed file: %w", err)
	}
	defer f.Close()
	return config.LoadSeedData(f)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "path to a .env file (default .env)")
	seedCmd.Flags().StringVar(&seedFile, "file", "", "YAML seed file (default: embedded lookups)")
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "migrate and seed before serving")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
