package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/curriplan/internal/archive"
	"github.com/pdiddy/curriplan/internal/convert"
)

var storeCmd = &cobra.Command{
	Use:   "store FILE...",
	Short: "Extract plans and save them in the SQLite archive",
	Long: `Store extracts each spreadsheet and saves the plan in the archive
database (archive-dir/plans.db), keyed by the file's absolute path.
Storing the same file again replaces the earlier plan. Use "plans" to list
or print archived plans.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		x, err := newExtractor()
		if err != nil {
			return err
		}
		store, err := archive.NewStore(cfg.Archive)
		if err != nil {
			return err
		}
		defer store.Close()

		summary, err := store.Ingest(cmd.Context(), x, args, convertOptions(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		if summary.Failed > 0 {
			return fmt.Errorf("%d of %d files failed", summary.Failed, summary.Total())
		}
		return nil
	},
}

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "List archived plans or print one of them",
	Long: `Plans lists the plans saved by "store". With --id it prints the stored
plan in the same shape as the root command's output.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := archive.NewStore(cfg.Archive)
		if err != nil {
			return err
		}
		defer store.Close()

		id, _ := cmd.Flags().GetString("id")
		var buf bytes.Buffer
		if id == "" {
			records, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if err := convert.EncodeValue(&buf, records, cfg.Output.Format); err != nil {
				return err
			}
		} else {
			r, err := store.Load(cmd.Context(), id)
			if err != nil {
				return err
			}
			if err := convert.Encode(&buf, *r, cfg.Output.Format, cfg.Output.Labels); err != nil {
				return err
			}
		}
		_, err = cmd.OutOrStdout().Write(buf.Bytes())
		return err
	},
}

func init() {
	storeCmd.Flags().String("archive-dir", "archive", "directory holding plans.db")
	plansCmd.Flags().String("archive-dir", "archive", "directory holding plans.db")
	plansCmd.Flags().String("id", "", "print the plan with this ID")

	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(plansCmd)
}
