package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fenhl/mse-to-json/src/app"
)

var (
	convertSetCode    string
	convertSetVersion string
	convertOutput     string
)

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&convertSetCode, "set-code", "", "override the set code declared in the set file")
	convertCmd.Flags().StringVar(&convertSetVersion, "set-version", "", "version string recorded in the output meta section")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "-", "output file (\"-\" for stdout)")

	_ = viper.BindPFlag("set-code", convertCmd.Flags().Lookup("set-code"))
	_ = viper.BindPFlag("set-version", convertCmd.Flags().Lookup("set-version"))
}

var convertCmd = &cobra.Command{
	Use:   "convert [set file]",
	Short: "Converts a set file into a card-data JSON document",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Info().Msg("mse-to-json convert running")

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
		doc, err := app.ConvertSet(root, app.ConvertOptions{
			SetCode:    stringSetting("set-code", convertSetCode),
			SetVersion: stringSetting("set-version", convertSetVersion),
		})
		if err != nil {
			return err
		}
		out, err := app.MarshalSetJSON(doc)
		if err != nil {
			return err
		}
		if err := writeOutput(convertOutput, out); err != nil {
			return err
		}

		log.Info().
			Str("code", doc.Code).
			Int("cards", len(doc.Cards)).
			Msg("mse-to-json convert finished")
		return nil
	},
}

// stringSetting reads a Viper key (config/env) and falls back to the
// bound flag variable, mirroring how debug/human mode are resolved.
func stringSetting(key, flagValue string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return flagValue
}
