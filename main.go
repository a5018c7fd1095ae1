package main

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"matchlens/adapters/report"
	"matchlens/adapters/tabular"
	"matchlens/app"
	"matchlens/domain/core"
	"matchlens/internal"
	"matchlens/internal/config"
	"matchlens/internal/errors"
	"matchlens/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		internal.DefaultLogger.Debug("No .env file found, using system environment variables")
	}

	if err := newRootCmd(config.Load()).Execute(); err != nil {
		internal.DefaultLogger.Error("%s: %v", errors.GetCode(err), err)
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matchlens",
		Short: "Population-adjusted preference index and ghosting funnel from a dating-app match log",
		Long: `matchlens reads a personal match log plus census population baselines and
reports how observed match rates per race compare against the local
population composition, alongside conversation funnel ratios.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.Inputs.MatchLog, "matches", cfg.Inputs.MatchLog, "match log file (.csv or .xlsx)")
	flags.StringVar(&cfg.Inputs.Demographics, "demographics", cfg.Inputs.Demographics, "general population baseline file")
	flags.StringVar(&cfg.Inputs.HispanicDemographics, "hispanic-demographics", cfg.Inputs.HispanicDemographics, "hispanic subpopulation baseline file")
	flags.UintVar(&cfg.Analysis.SampleCutoff, "cutoff", cfg.Analysis.SampleCutoff, "minimum sample count before a race's weight is trusted (0 includes all)")
	flags.BoolVar(&cfg.Analysis.OnlyMet, "only-met", cfg.Analysis.OnlyMet, "restrict to matches that resulted in a date")
	flags.BoolVar(&cfg.Analysis.OnlyConvo, "only-convo", cfg.Analysis.OnlyConvo, "restrict to matches with a conversation")
	flags.BoolVar(&cfg.Analysis.OnlySpecified, "only-specified", cfg.Analysis.OnlySpecified, "restrict to matches that self-reported ethnicity")
	flags.StringVar(&cfg.Report.Format, "format", cfg.Report.Format, "report format: text, markdown, or html")
	flags.StringVarP(&cfg.Report.OutputPath, "output", "o", cfg.Report.OutputPath, "write the report to a file instead of stdout")
	flags.StringVar(&cfg.Report.ServeAddr, "serve", cfg.Report.ServeAddr, "serve the HTML report on this address until interrupted")

	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	svc := app.NewAnalysisService(
		tabular.NewMatchLogReader(cfg.Inputs.MatchLog),
		tabular.NewBaselineReader(cfg.Inputs.Demographics, cfg.Inputs.HispanicDemographics),
	)
	result, err := svc.Run(ctx, app.Options{
		SampleCutoff: cfg.Analysis.SampleCutoff,
		Filters: app.Filters{
			OnlyMet:       cfg.Analysis.OnlyMet,
			OnlyConvo:     cfg.Analysis.OnlyConvo,
			OnlySpecified: cfg.Analysis.OnlySpecified,
		},
	})
	if err != nil {
		if stderrors.Is(err, core.ErrEmptyBaseline) {
			return errors.New(errors.CodeBaselineEmpty, err.Error())
		}
		return errors.InputError("analysis run failed", err)
	}

	if err := writeReport(cfg, result); err != nil {
		return err
	}

	if cfg.Report.ServeAddr != "" {
		return serveReport(ctx, cfg.Report.ServeAddr, result)
	}
	return nil
}

func writeReport(cfg *config.Config, result *app.Report) error {
	renderer, err := report.ForFormat(report.Format(cfg.Report.Format))
	if err != nil {
		return errors.New(errors.CodeConfigInvalid, err.Error())
	}

	var out *os.File
	if cfg.Report.OutputPath == "" {
		out = os.Stdout
	} else {
		out, err = os.Create(cfg.Report.OutputPath)
		if err != nil {
			return errors.Wrapf(err, "failed to create report file %s", cfg.Report.OutputPath)
		}
		defer out.Close()
		internal.DefaultLogger.Info("report written to %s", cfg.Report.OutputPath)
	}

	if err := renderer.Render(out, result); err != nil {
		return errors.Wrap(err, "failed to render report")
	}
	return nil
}

func serveReport(ctx context.Context, addr string, result *app.Report) error {
	var page bytes.Buffer
	if err := (&report.HTMLRenderer{}).Render(&page, result); err != nil {
		return errors.Wrap(err, "failed to render HTML report")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "serving report on http://%s (ctrl-c to stop)\n", addr)
	if err := ui.NewReportServer(addr, page.Bytes()).Serve(ctx); err != nil {
		return errors.Wrap(err, "report server failed")
	}
	return nil
}
