package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pmaconv",
	Short: "pmaconv - convert images between straight and premultiplied alpha",
	Long: "pmaconv converts PNG and other raster images between non-premultiplied (straight) alpha\n" +
		"and premultiplied alpha, converting many files in parallel.",
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
}
