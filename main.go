package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kube-rca/incident-commander/internal/app"
	"github.com/kube-rca/incident-commander/internal/config"
	"github.com/kube-rca/incident-commander/internal/model"
)

// @title SRE Incident Commander
// @version 1.0.0
// @description Seven stage incident analysis over alerts, logs and metrics.
// @BasePath /
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment variables")
	}
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "incident-commander",
	Short: "Multi-stage SRE incident analysis",
	// 서브커맨드 없이 실행하면 HTTP 서버 시작
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var (
	analyzeAlert   string
	analyzeLogs    string
	analyzeMetrics string
	analyzeSample  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run one analysis and print the report as JSON",
	Long: "Run one analysis and print the report as JSON.\n" +
		"Flag values starting with @ are read from a file (@- reads stdin).",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze(cmd.Context(), cmd.OutOrStdout())
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Probe the LLM backend and print its health",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.New(cmd.Context(), config.Load())
		if err != nil {
			return err
		}
		defer a.Close()
		return writeJSON(cmd.OutOrStdout(), a.Incidents().Health(cmd.Context()))
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeAlert, "alert", "", "alert payload or @file")
	analyzeCmd.Flags().StringVar(&analyzeLogs, "logs", "", "log lines or @file")
	analyzeCmd.Flags().StringVar(&analyzeMetrics, "metrics", "", "metrics snapshot or @file")
	analyzeCmd.Flags().BoolVar(&analyzeSample, "sample", false, "analyze the embedded sample incident")

	rootCmd.AddCommand(serveCmd, analyzeCmd, healthCmd)
}

func runServe(ctx context.Context) error {
	cfg := config.Load()
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	log.Printf("Starting server (port=%s)", cfg.Server.Port)
	return a.Router().Run(":" + cfg.Server.Port)
}

func runAnalyze(ctx context.Context, out io.Writer) error {
	a, err := app.New(ctx, config.Load())
	if err != nil {
		return err
	}
	defer a.Close()

	var report *model.IncidentReport
	if analyzeSample {
		report, err = a.Incidents().AnalyzeSample(ctx)
	} else {
		var req model.IncidentRequest
		if req, err = readRequest(analyzeAlert, analyzeLogs, analyzeMetrics); err != nil {
			return err
		}
		report, err = a.Incidents().Analyze(ctx, req)
	}
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	return writeJSON(out, report)
}

func readRequest(alert, logs, metrics string) (model.IncidentRequest, error) {
	var req model.IncidentRequest
	var err error
	if req.Alert, err = readValue(alert); err != nil {
		return req, err
	}
	if req.Logs, err = readValue(logs); err != nil {
		return req, err
	}
	if req.Metrics, err = readValue(metrics); err != nil {
		return req, err
	}
	return req, nil
}

// "@path"는 파일 내용, "@-"는 stdin
func readValue(value string) (string, error) {
	path, ok := strings.CutPrefix(value, "@")
	if !ok {
		return value, nil
	}
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", value, err)
	}
	return string(data), nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
