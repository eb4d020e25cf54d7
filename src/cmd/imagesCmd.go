package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fenhl/mse-to-json/src/app"
)

var imagesOutputPath string

func init() {
	rootCmd.AddCommand(imagesCmd)

	imagesCmd.Flags().StringVar(&imagesOutputPath, "imageOutput", defaultImagesOutputPath(), "card images output path")
}

var imagesCmd = &cobra.Command{
	Use:   "images [set file]",
	Short: "Exports the card art stored in a set file as PNG files",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Info().
			Str("imageOutput", imagesOutputPath).
			Msg("mse-to-json images running")

		archive, err := openSetArchive(args)
		if err != nil {
			return err
		}
		script, err := archive.ReadScript()
		if err != nil {
			return err
		}
		root, err := app.ParseScript(script)
		if err != nil {
			return err
		}
		if err := app.ExportCardImages(archive, root, imagesOutputPath); err != nil {
			return err
		}

		log.Info().Msg("mse-to-json images finished")
		return nil
	},
}

func defaultImagesOutputPath() string {
	return app.ExpandPath(
		"./output/images",
	)
}
