package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"pmaconv/internal/codec"
	"pmaconv/internal/pma"
	"pmaconv/internal/tui"
)

var checkCmd = &cobra.Command{
	Use:   "check <files...>",
	Short: "Report how much a premultiply round trip would change images",
	Long: "Loads each file, premultiplies and un-premultiplies a copy of it, and reports the\n" +
		"resulting color error. Files are never modified.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		checked := 0
		for _, path := range args {
			img, err := codec.Imaging{}.Load(path)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), checkErrStyle.Render(fmt.Sprintf("%s: %v", path, err)))
				continue
			}
			if checked > 0 {
				fmt.Fprintln(out)
			}
			checked++
			fmt.Fprintln(out, tui.RenderSummary(path, driftRows(pma.MeasureRoundTrip(img))))
		}
		if checked == 0 {
			return fmt.Errorf("none of the %d files could be loaded", len(args))
		}
		return nil
	},
}

func driftRows(d pma.Drift) []tui.SummaryRow {
	return []tui.SummaryRow{
		{Label: "Pixels", Value: fmt.Sprintf("%d", d.Pixels)},
		{Label: "Fully transparent", Value: fmt.Sprintf("%d", d.Transparent)},
		{Label: "Changed by round trip", Value: fmt.Sprintf("%d", d.Changed)},
		{Label: "Max channel error", Value: fmt.Sprintf("%d", d.MaxError)},
		{Label: "Mean channel error", Value: fmt.Sprintf("%.3f", d.MeanError)},
		{Label: "Mean CIEDE2000 distance", Value: fmt.Sprintf("%.4f", d.MeanDeltaE)},
	}
}

var checkErrStyle = lipgloss.NewStyle().Foreground(tui.ColorError)

func init() {
	rootCmd.AddCommand(checkCmd)
}
