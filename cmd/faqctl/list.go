package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/yunbow/line-faq-bot/src/config"
	"github.com/yunbow/line-faq-bot/src/types"
)

func newListCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the FAQ table in row order",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			st, err := openSQLStore(cfg)
			if err != nil {
				return err
			}
			faqs, err := st.ListFAQ(cmd.Context())
			if err != nil {
				return err
			}
			printFAQ(cmd, faqs)
			return nil
		},
	}
}

func printFAQ(cmd *cobra.Command, faqs []types.FAQEntry) {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tTEXT\tYES\tNO")
	for _, e := range faqs {
		yes, no := "", ""
		if e.Kind == types.KindConfirm {
			yes = e.Yes.ID + ":" + e.Yes.Text
			no = e.No.ID + ":" + e.No.Text
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.Kind, e.Text, yes, no)
	}
	tw.Flush()
}
