package cli

import (
	"context"
	"fmt"

	"campusworks/internal/advisory"
	"campusworks/internal/common"
	"campusworks/internal/formatters"
	"campusworks/internal/types"

	"github.com/spf13/cobra"
)

var fitCmd = &cobra.Command{
	Use:   "fit [resume-file] [job-description-file]",
	Short: "Score how well a resume matches a job description",
	Long: `Read a resume and a job description from text files and score the
match from 0 to 100 with a short analysis. When the generation service is
unavailable the command prints an offline placeholder instead of failing.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if fitConfig.OutputFormat == "" {
			fitConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(fitConfig.OutputFormat,
			formatters.GlobalRegistry.GetSupportedFormats())
	},
	RunE: runFit,
}

var fitConfig common.CommandConfig

func init() {
	fitCmd.Flags().StringVarP(&fitConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	fitCmd.Flags().StringVar(&fitConfig.OutputFormat, "format", "", "Output format: json or text")
}

func runFit(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	service, err := advisory.NewService(cmd.Context(), cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create advisory service: %w", err)
	}

	contents, err := common.NewFileProcessor(logger).ValidateAndReadFiles(args...)
	if err != nil {
		return err
	}
	resume, jobDescription := contents[0], contents[1]

	logger.Info("Scoring candidate fit",
		"resume_chars", len(resume),
		"job_chars", len(jobDescription))

	return common.RunAdvisoryCommand(
		cmd.Context(),
		logger,
		fitConfig,
		func(ctx context.Context) types.CandidateFit {
			return service.ScoreCandidateFit(ctx, resume, jobDescription)
		},
		func(r types.CandidateFit) bool { return r.Degraded },
	)
}
