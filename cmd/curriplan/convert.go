package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/curriplan/internal/convert"
)

var convertCmd = &cobra.Command{
	Use:   "convert FILE...",
	Short: "Convert many plan spreadsheets into JSON or YAML files",
	Long: `Convert extracts every given spreadsheet and writes one document per
file into the output directory, named after the input. Existing outputs are
skipped unless --force is set. A file that fails is reported and the batch
continues; the command exits non-zero if any file failed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		x, err := newExtractor()
		if err != nil {
			return err
		}
		outDir, _ := cmd.Flags().GetString("out-dir")
		force, _ := cmd.Flags().GetBool("force")

		opts := convertOptions()
		opts.Force = force
		result := convert.ConvertBatch(x, args, outDir, opts, cmd.ErrOrStderr())
		if result.HasFailures() {
			return fmt.Errorf("%d of %d files failed", result.Failed, result.Total())
		}
		return nil
	},
}

func init() {
	convertCmd.Flags().String("out-dir", "plans", "directory for converted documents")
	convertCmd.Flags().Bool("force", false, "overwrite existing outputs")

	rootCmd.AddCommand(convertCmd)
}
