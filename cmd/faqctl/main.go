package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/yunbow/line-faq-bot/src/config"
	"github.com/yunbow/line-faq-bot/src/data"
	"github.com/yunbow/line-faq-bot/src/store"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "faqctl",
		Short:         "Maintain the FAQ bot tables",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv("FAQBOT_CONFIG"), "config file (optional)")

	loadConfig := func() (*config.Config, error) {
		return config.Read(configPath)
	}

	root.AddCommand(newSeedCmd(loadConfig), newListCmd(loadConfig), newTokenCmd(loadConfig))
	return root
}

// openSQLStore connects to the MySQL store named by STORE_DSN.
func openSQLStore(cfg *config.Config) (*store.SQLStore, error) {
	if cfg.StoreDSN == "" {
		return nil, fmt.Errorf("STORE_DSN is required")
	}
	if _, ok := cfg.MemorySeedPath(); ok {
		return nil, fmt.Errorf("faqctl works on the MySQL store; edit the seed file directly for %s", cfg.StoreDSN)
	}
	db, err := data.ConnectMySQL(cfg.StoreDSN)
	if err != nil {
		return nil, err
	}
	if err := data.Migrate(db); err != nil {
		return nil, err
	}
	return store.NewSQLStore(db), nil
}
