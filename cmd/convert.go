package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pmaconv/internal/codec"
	"pmaconv/internal/config"
	"pmaconv/internal/logging"
	"pmaconv/internal/processor"
	"pmaconv/internal/tui"
)

func newConvertCmd() *cobra.Command {
	cfg := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "convert [flags] <targets...>",
		Short: "Convert images to or from premultiplied alpha",
		Long: "Converts every target file, and every file in every target directory, and writes the\n" +
			"result under the output directory using the source file name.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Targets = args
			return runConvert(cmd.Context(), &cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	config.BindFlags(cmd.Flags(), &cfg)
	return cmd
}

func runConvert(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	outputDir, err := processor.ResolveOutputDir(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("cannot resolve output directory: %w", err)
	}
	if err := processor.EnsureOutputDir(outputDir); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logCfg := *cfg
	logOut, logErr := stdout, stderr

	var (
		updates chan processor.ProgressUpdate
		uiDone  chan struct{}
	)
	if cfg.Progress && isTerminal(stdout) {
		updates = make(chan processor.ProgressUpdate, 64)
		program := tea.NewProgram(tui.NewModel("pmaconv "+cfg.Direction.String(), updates), tea.WithOutput(stdout))

		printer := tui.NewPrintWriter(program)
		logOut, logErr = printer, printer
		if logCfg.ColorMode == config.ColorAuto {
			logCfg.ColorMode = config.ColorAlways
		}

		uiDone = make(chan struct{})
		go func() {
			defer close(uiDone)
			_, _ = program.Run()
			// The view is gone: stop the run if it is still going and keep
			// the processor from blocking on progress updates.
			stop()
			for range updates {
			}
		}()
	}

	logger, err := logging.NewLogger(&logCfg, logOut, logErr)
	if err != nil {
		if updates != nil {
			close(updates)
			<-uiDone
		}
		return fmt.Errorf("cannot open log file: %w", err)
	}
	defer logger.Close()

	logger.Info("Output directory: '%s'", outputDir)
	logger.Info("%s", cfg.Direction.Describe())
	if cfg.PNGOnly {
		logger.Info("Only files ending with '%s' will be converted.", config.PNGExtension)
	} else {
		logger.Info("All files will be converted.")
	}
	if cfg.Recursive {
		logger.Info("Subdirectories will be searched.")
	} else {
		logger.Info("Only the top level of directories will be searched.")
	}

	proc := processor.New(codec.Imaging{}, logger, updates)
	report, runErr := proc.Run(ctx, cfg.Targets, cfg.ProcessingOptions(outputDir))

	if updates != nil {
		close(updates)
		<-uiDone
	}

	s := report.Summary()
	rows := []tui.SummaryRow{
		{Label: "Converted", Value: fmt.Sprintf("%d", s.Converted)},
		{Label: "Skipped", Value: fmt.Sprintf("%d", s.Skipped)},
		{Label: "Failed", Value: fmt.Sprintf("%d", s.Failed)},
		{Label: "Output directory", Value: outputDir},
	}
	fmt.Fprintln(stdout, tui.RenderSummary("pmaconv "+cfg.Direction.String(), rows))

	if runErr != nil {
		return fmt.Errorf("run interrupted: %w", runErr)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func init() {
	rootCmd.AddCommand(newConvertCmd())
}
