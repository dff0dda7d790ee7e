package main

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"pcbuild/internal/build"
	"pcbuild/internal/llm"
)

func (a *app) newService(cmd *cobra.Command) (*build.Service, error) {
	if err := a.cfg.RequireBackend(); err != nil {
		return nil, err
	}
	client, err := llm.NewClient(cmd.Context(), a.cfg.LLM)
	if err != nil {
		return nil, err
	}
	return build.NewService(client, nil, a.logger.Named("build")), nil
}

func newGenerateCmd(a *app) *cobra.Command {
	var requestPath, outPath string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a build from a JSON request",
		Example: `  pcbuild generate --request prefs.json --out build.json
  echo '{"preferences":{"purpose":"Gaming","budget":1500}}' | pcbuild generate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, requestPath)
			if err != nil {
				return err
			}

			var req build.BuildRequest
			if err := json.Unmarshal(data, &req); err != nil {
				return eris.Wrap(err, "decode request")
			}

			svc, err := a.newService(cmd)
			if err != nil {
				return err
			}

			resp, err := svc.GenerateBuild(cmd.Context(), &req)
			if err != nil {
				return err
			}
			return writeJSON(cmd, outPath, resp)
		},
	}

	cmd.Flags().StringVarP(&requestPath, "request", "r", "", "request JSON file (default stdin)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	return cmd
}

func newUpgradeCmd(a *app) *cobra.Command {
	var buildPath, current, goals, outPath string

	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Suggest upgrades for an existing build",
		Example: `  pcbuild upgrade --current "Ryzen 5 3600, GTX 1060, 16GB" --goals "1440p gaming"
  pcbuild upgrade --build build.json --goals "quieter and cooler"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := build.UpgradeRequest{CurrentBuild: current, ImprovementGoals: goals}

			if buildPath != "" {
				data, err := readInput(cmd, buildPath)
				if err != nil {
					return err
				}
				b, err := parseBuild(data)
				if err != nil {
					return err
				}
				req.Build = b
			}

			svc, err := a.newService(cmd)
			if err != nil {
				return err
			}

			resp, err := svc.SuggestUpgrades(cmd.Context(), &req)
			if err != nil {
				return err
			}
			return writeJSON(cmd, outPath, resp)
		},
	}

	cmd.Flags().StringVar(&buildPath, "build", "", "previously generated build JSON")
	cmd.Flags().StringVar(&current, "current", "", "free-text description of the current build")
	cmd.Flags().StringVar(&goals, "goals", "", "what the upgrade should improve")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	_ = cmd.MarkFlagRequired("goals")
	return cmd
}
