package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/config"
	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var (
		userID    string
		redisAddr string
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the local database and config",
		Long: `Create ~/.agrimetrics with the local database and a config file.

Without --user and --redis the app runs local-only; records sync once both
are configured and the remote store is reachable.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if userID != "" {
				cfg.UserID = userID
			}
			if redisAddr != "" {
				cfg.RedisAddr = redisAddr
			}
			if err := config.Save(cfg); err != nil {
				return err
			}

			if _, err := db.GetDB(); err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}

			path, _ := config.Path()
			fmt.Printf("✓ Initialized (config: %s)\n", path)
			if cfg.RedisAddr == "" {
				fmt.Println("Running local-only. Configure a remote store with:")
				fmt.Println("  agrimetrics init --user <id> --redis <host:port>")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id for remote scoping")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "remote store address (host:port)")
	return cmd
}
