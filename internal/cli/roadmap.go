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

var roadmapCmd = &cobra.Command{
	Use:   "roadmap [career-goal]",
	Short: "Generate a learning roadmap toward a career goal",
	Long: `Generate a three-phase learning roadmap for the given career goal.
When the generation service is unavailable the command prints a generic
offline roadmap instead of failing.`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if roadmapConfig.OutputFormat == "" {
			roadmapConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(roadmapConfig.OutputFormat,
			formatters.GlobalRegistry.GetSupportedFormats())
	},
	RunE: runRoadmap,
}

var roadmapConfig common.CommandConfig

func init() {
	roadmapCmd.Flags().StringVarP(&roadmapConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	roadmapCmd.Flags().StringVar(&roadmapConfig.OutputFormat, "format", "", "Output format: json or text")
}

func runRoadmap(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	service, err := advisory.NewService(cmd.Context(), cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create advisory service: %w", err)
	}

	goal := strings.Join(args, " ")
	logger.Info("Generating learning roadmap", "goal", goal)

	return common.RunAdvisoryCommand(
		cmd.Context(),
		logger,
		roadmapConfig,
		func(ctx context.Context) types.Roadmap {
			return service.GenerateRoadmap(ctx, goal)
		},
		func(r types.Roadmap) bool { return r.Degraded },
	)
}
