package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/invitation-letters/internal/letters"
	"github.com/jonathan/invitation-letters/internal/observability"
	"github.com/jonathan/invitation-letters/internal/rendering"
	"github.com/jonathan/invitation-letters/internal/roster"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write one invitation letter per group of the invited list",
	Long: `Group the invited list by work location, division and city, resolve each group's
collective titles and render one letter per group into the output directory. The first
rendering failure stops the run; letters already written are kept.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

var (
	generateTemplate  string
	generateOutputDir string
)

func init() {
	generateCmd.Flags().StringVarP(&generateTemplate, "template", "t", "", "Letter template (overrides config; embedded HTML letter by default)")
	generateCmd.Flags().StringVarP(&generateOutputDir, "out", "o", "", "Output directory (overrides config)")
	rootCmd.AddCommand(generateCmd)
}

func newGenerator() (*letters.Generator, error) {
	templatePath := cfg.Template
	if generateTemplate != "" {
		templatePath = generateTemplate
	}
	outputDir := cfg.OutputDir
	if generateOutputDir != "" {
		outputDir = generateOutputDir
	}

	dict, err := loadDictionary()
	if err != nil {
		return nil, err
	}
	renderer, err := rendering.NewFileRenderer(templatePath, outputDir)
	if err != nil {
		return nil, err
	}
	return letters.NewGenerator(dict, renderer, logger), nil
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	generator, err := newGenerator()
	if err != nil {
		return err
	}

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	snap, err := roster.NewService(st).Snapshot(ctx)
	if err != nil {
		return err
	}
	if len(snap.Invited) == 0 {
		return fmt.Errorf("the invited list is empty")
	}

	report, genErr := generator.Generate(ctx, snap)
	if report != nil {
		if err := st.RecordRun(context.WithoutCancel(ctx), report); err != nil {
			logger.Error("Failed to record generation run", zap.Stringer("run_id", report.RunID), zap.Error(err))
		}
		if cfg.Verbose || genErr != nil {
			observability.NewPrinter(os.Stdout).PrintReport(report)
		}
	}
	if genErr != nil {
		return genErr
	}

	fmt.Printf("Wrote %d letters (run %s)\n", len(report.Artifacts), report.RunID)
	return nil
}
