package main

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"pcbuild/internal/build"
	"pcbuild/internal/normalize"
	"pcbuild/internal/render"
)

func parseBuild(data []byte) (*build.BuildResponse, error) {
	b, err := normalize.Parse[build.BuildResponse](string(data), build.ResponseSchema)
	if err != nil {
		return nil, eris.Wrap(err, "decode build")
	}
	if b.Currency == "" {
		b.Currency = build.DefaultCurrency
	}
	return b, nil
}

func newRenderCmd(a *app) *cobra.Command {
	var format, outPath string

	cmd := &cobra.Command{
		Use:   "render [build.json]",
		Short: "Render a saved build as text, HTML or PDF",
		Example: `  pcbuild render build.json
  pcbuild render --format pdf --out report.pdf build.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			data, err := readInput(cmd, path)
			if err != nil {
				return err
			}
			b, err := parseBuild(data)
			if err != nil {
				return err
			}

			switch strings.ToLower(format) {
			case "text", "txt":
				return writeOutput(cmd, outPath, []byte(build.ToText(b)))
			case "html":
				return writeOutput(cmd, outPath, []byte(build.ToHTML(b)))
			case "pdf":
				if outPath == "" {
					return eris.New("--out is required for pdf output")
				}
				renderer := render.NewChromeRenderer(a.cfg.Chrome, a.logger.Named("render"))
				defer renderer.Close()

				svc := build.NewService(nil, renderer, a.logger.Named("build"))
				pdf, err := svc.RenderPDF(cmd.Context(), b)
				if err != nil {
					return err
				}
				return writeOutput(cmd, outPath, pdf)
			default:
				return eris.Errorf("unknown format %q (want text, html or pdf)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "text, html or pdf")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	return cmd
}
