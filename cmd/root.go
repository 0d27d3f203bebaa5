package cmd

import (
	"context"
	"fmt"
	"os"

	"catering/configs"
	"catering/repository"
	"catering/rules"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "catering",
	Short: "Catering management backend",
	Long: `catering serves the catering dashboard API: menus with time-dependent pricing
and availability, payments, reservations, reviews and the editable business rules.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("pretty", false, "human-readable console logs")
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(serveCmd, seedCmd, rulesCmd)
}

// app is what every subcommand starts from.
type app struct {
	cfg   *configs.Config
	log   zerolog.Logger
	db    *gorm.DB
	store *rules.Store
}

func bootstrap(cmd *cobra.Command) (*app, error) {
	cfg, err := configs.Load(viper.GetViper(), cfgFile)
	if err != nil {
		return nil, err
	}
	pretty, _ := cmd.Flags().GetBool("pretty")
	log := configs.NewLogger(cfg.LogLevel, pretty, os.Stderr)

	if err := configs.ConnectionDB(cfg); err != nil {
		return nil, err
	}
	db := configs.DB()
	if err := configs.SetupDatabase(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	store := rules.NewStore(repository.NewSettingRepository(db), cfg.RulesKey, log)
	if _, err := store.Load(context.Background()); err != nil {
		// keep serving on defaults; the next save rewrites the blob
		log.Error().Err(err).Msg("loading business rules failed, using defaults")
	}
	return &app{cfg: cfg, log: log, db: db, store: store}, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
