package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lernwort/backend/internal/database"
	"github.com/lernwort/backend/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import words from an .xlsx or .csv file into a lesson",
	Long: "Each row holds: word, meaning, type, article, plural, pronunciation, " +
		"example sentence, example meaning. Existing words with the same spelling are reused.",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		lessonID, _ := cmd.Flags().GetString("lesson")
		sheet, _ := cmd.Flags().GetString("sheet")
		skipHeader, _ := cmd.Flags().GetBool("skip-header")

		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		db, err := database.Connect(cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := database.MigrateUp(cfg); err != nil {
			return err
		}

		svc, err := newServices(cfg, db, logger)
		if err != nil {
			return err
		}
		result, err := importer.Import(cmd.Context(), svc.words, importer.Config{
			FilePath:   file,
			LessonID:   lessonID,
			SheetName:  sheet,
			SkipHeader: skipHeader,
		}, logger)
		if err != nil {
			return fmt.Errorf("import %s: %w", file, err)
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringP("file", "f", "", "path to the .xlsx or .csv file")
	importCmd.Flags().StringP("lesson", "l", "", "lesson id the words are attached to")
	importCmd.Flags().String("sheet", "", "worksheet name, first sheet when empty")
	importCmd.Flags().Bool("skip-header", false, "ignore the first row")
	cobra.CheckErr(importCmd.MarkFlagRequired("file"))
	cobra.CheckErr(importCmd.MarkFlagRequired("lesson"))
}
