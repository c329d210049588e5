package cli

import (
	"context"
	"fmt"
	"strings"

	"campusworks/internal/advisory"
	"campusworks/internal/common"
	"campusworks/internal/formatters"
	"campusworks/internal/types"

	"github.com/spf13/cobra"
)

var riskCmd = &cobra.Command{
	Use:   "risk [skills...]",
	Short: "Assess layoff risk for a skill set",
	Long: `Score a comma- or space-separated skill set for job market stability.
The result carries a Low/Medium/High risk level, a 0-100 stability score and
advice. When the generation service is unavailable the command prints a
neutral offline assessment instead of failing.`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if riskConfig.OutputFormat == "" {
			riskConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(riskConfig.OutputFormat,
			formatters.GlobalRegistry.GetSupportedFormats())
	},
	RunE: runRisk,
}

var riskConfig common.CommandConfig

func init() {
	riskCmd.Flags().StringVarP(&riskConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	riskCmd.Flags().StringVar(&riskConfig.OutputFormat, "format", "", "Output format: json or text")
}

func runRisk(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	service, err := advisory.NewService(cmd.Context(), cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create advisory service: %w", err)
	}

	skills := strings.Join(args, " ")
	logger.Info("Assessing layoff risk", "skills", skills)

	return common.RunAdvisoryCommand(
		cmd.Context(),
		logger,
		riskConfig,
		func(ctx context.Context) types.RiskAssessment {
			return service.AssessLayoffRisk(ctx, skills)
		},
		func(r types.RiskAssessment) bool { return r.Degraded },
	)
}
