package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fenhl/mse-to-json/src/app"
)

var decodeOutput string

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().StringVarP(&decodeOutput, "output", "o", "-", "output file (\"-\" for stdout)")
}

var decodeCmd = &cobra.Command{
	Use:   "decode [set file]",
	Short: "Extracts the raw set description script from a set file",
	Long: `Extracts the embedded set description script from a set file without
parsing it, byte for byte as stored in the archive.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		archive, err := openSetArchive(args)
		if err != nil {
			return err
		}
		data, err := archive.ReadEntry(app.ScriptEntryName)
		if err != nil {
			return err
		}
		if err := writeOutput(decodeOutput, data); err != nil {
			return err
		}

		log.Debug().Int("bytes", len(data)).Msg("mse-to-json decode finished")
		return nil
	},
}
