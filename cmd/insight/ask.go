package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/futureproof-labs/insight/config"
	"github.com/futureproof-labs/insight/internal/catalog"
	"github.com/futureproof-labs/insight/internal/executor"
	"github.com/futureproof-labs/insight/internal/llm"
	"github.com/futureproof-labs/insight/internal/pipeline"
	"github.com/futureproof-labs/insight/internal/telemetry"
)

func askCMD() *cobra.Command {
	var cfgPath string
	var ask = &cobra.Command{
		Use:   "ask [question]",
		Short: "Answer one question from the command line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			cat, err := catalog.Load(cfg.Pipeline.CatalogFile)
			if err != nil {
				return err
			}
			provider, err := llm.NewProvider(cfg.LLM)
			if err != nil {
				return err
			}
			ctx := context.Background()
			exec, err := executor.Open(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer exec.DB.Close()

			tele := telemetry.NewTelemetry(cfg.Telemetry)
			orch := pipeline.NewOrchestrator(cfg, cat, provider, exec, tele)
			env := orch.Answer(ctx, strings.Join(args, " "))

			out, err := json.MarshalIndent(env, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
	ask.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is ./config/insight_config.json)")

	return ask
}
