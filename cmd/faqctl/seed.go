package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yunbow/line-faq-bot/src/config"
	"github.com/yunbow/line-faq-bot/src/faq"
	"github.com/yunbow/line-faq-bot/src/store"
)

func newSeedCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	var (
		file   string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the FAQ table with the entries of a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := store.ReadSeedFile(file)
			if err != nil {
				return err
			}
			entries := seed.Entries()

			out := cmd.OutOrStdout()
			for _, e := range entries {
				if _, ok := faq.Build(e); !ok {
					fmt.Fprintf(out, "warning: entry %q has kind %q and will never be sent\n", e.ID, e.Kind)
				}
				for _, field := range store.MarkupFields(e) {
					fmt.Fprintf(out, "warning: entry %q %s contains markup; LINE shows it literally\n", e.ID, field)
				}
			}
			if dryRun {
				fmt.Fprintf(out, "%d faq entries parsed from %s\n", len(entries), file)
				return nil
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			st, err := openSQLStore(cfg)
			if err != nil {
				return err
			}
			if err := seed.Apply(cmd.Context(), st); err != nil {
				return err
			}
			fmt.Fprintf(out, "%d faq entries written\n", len(entries))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "faq.yaml", "seed file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and validate only")
	return cmd
}
