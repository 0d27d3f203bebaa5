package cmd

import (
	"time"

	"catering/configs"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the admin account and, with --demo, sample data",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		if err := configs.SeedAdmin(a.db, a.cfg, a.log); err != nil {
			return err
		}
		demo, _ := cmd.Flags().GetBool("demo")
		if !demo {
			return nil
		}
		seed, _ := cmd.Flags().GetInt64("seed")
		return configs.SeedDemo(a.db, seed, time.Now().In(a.cfg.Location()), a.log)
	},
}

func init() {
	seedCmd.Flags().Bool("demo", false, "also insert sample venues, clients, menus and bookings")
	seedCmd.Flags().Int64("seed", 42, "random seed for sample data")
}
