package cli

import (
	"fmt"

	"campusworks/internal/advisory"
	"campusworks/internal/server"
	"campusworks/internal/store"
	"campusworks/internal/workflow"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server exposing the job board, course catalog, workflow
and advisory endpoints.

Available endpoints:
- POST /api/auth/login, /api/auth/register: account access
- GET  /api/jobs, /api/courses: catalogs
- POST /api/applications: submit a job application
- POST /api/applications/{id}/decision: approve or reject
- GET  /api/users/{id}/notifications: notification feed
- POST /api/advisory/*: AI advisory (roadmap, quiz, remediation, risk, fit,
  explain, cover-letter, chat)
- GET  /api/advisory/course-recommendation: deterministic course match
- GET  /health, /stats: service introspection`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (default from config)")
	serveCmd.Flags().String("host", "", "Host to bind to (default from config)")

	bindFlag := func(key, flagName string) {
		if err := viper.BindPFlag(key, serveCmd.Flags().Lookup(flagName)); err != nil {
			panic(err)
		}
	}

	bindFlag("server.port", "port")
	bindFlag("server.host", "host")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := getConfigFromContext(ctx)
	logger := getLoggerFromContext(ctx)

	st := store.Seeded()
	engine := workflow.NewEngine(st, logger)

	adv, err := advisory.NewService(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create advisory service: %w", err)
	}

	return server.NewServer(cfg, Version, st, engine, adv, logger).Start()
}
