/*
DESCRIPTION
  commands.go provides the labplot subcommands.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean)

  It is free software: you can redistribute it and/or modify them
  under the terms of the GNU General Public License as published by the
  Free Software Foundation, either version 3 of the License, or (at your
  option) any later version.

  It is distributed in the hope that it will be useful, but WITHOUT
  ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
  FITNESS FOR A PARTICULAR PURPOSE. See the GNU General Public License
  for more details.

  You should have received a copy of the GNU General Public License
  in gpl.txt.  If not, see http://www.gnu.org/licenses.
*/

package main

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/ausocean/labplot/snapshot"
)

// plotFunc renders a decoded request to path and returns the status.
type plotFunc func(a *app, req *request, config, path string) (string, error)

// newPlotCmd returns a subcommand that reads a request and renders it with
// plot.
func newPlotCmd(a *app, use, short, example string, plot plotFunc) *cobra.Command {
	var reqPath, out string

	cmd := &cobra.Command{
		Use:     use,
		Short:   short,
		Example: example,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readRequest(reqPath, a.in)
			if err != nil {
				return err
			}
			path := req.Path
			if out != "" {
				path = out
			}
			if path == "" {
				return errors.New("no output path given in request or with --out")
			}
			config, err := req.config()
			if err != nil {
				return err
			}

			a.log.Debug("read request", "command", use, "path", path)
			status, err := plot(a, req, config, path)
			if err != nil {
				return err
			}
			return a.report(status)
		},
	}
	cmd.Flags().StringVarP(&reqPath, "request", "r", "", "Request file (default is stdin)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output image path, overriding the request path")
	return cmd
}

func newLineCmd(a *app) *cobra.Command {
	return newPlotCmd(a, "line", "Plot y against x as a single line",
		heredoc.Doc(`
			$ echo '{"x":[0,1,2],"y":[1,4,9],"config":{"title":"Squares"}}' | labplot line -o squares.png
		`),
		func(a *app, req *request, config, path string) (string, error) {
			y, err := req.vectorY()
			if err != nil {
				return "", err
			}
			return a.engine.PlotLine(req.X, y, config, path), nil
		},
	)
}

func newMultiLineCmd(a *app) *cobra.Command {
	return newPlotCmd(a, "multiline", "Plot each row of y against x",
		heredoc.Doc(`
			$ labplot multiline --request runs.json --out runs.svg
		`),
		func(a *app, req *request, config, path string) (string, error) {
			y, err := req.matrixY()
			if err != nil {
				return "", err
			}
			return a.engine.PlotMultiLine(req.X, y, config, path), nil
		},
	)
}

func newBoxplotCmd(a *app) *cobra.Command {
	return newPlotCmd(a, "boxplot", "Draw boxplots of groups with a regression line",
		heredoc.Doc(`
			# Groups may be padded with null or "NaN".
			$ echo '{"groups":[[1,2,3],[2,4,null]],"positions":[10,20],"path":"box.png"}' | labplot boxplot
		`),
		func(a *app, req *request, config, path string) (string, error) {
			return a.engine.PlotBoxplotRegression(req.Groups.rows(), req.Positions, config, path), nil
		},
	)
}

func newColormapCmd(a *app) *cobra.Command {
	return newPlotCmd(a, "colormap", "Draw a matrix as a colormap",
		heredoc.Doc(`
			$ echo '{"z":[[1,2],[3,4]],"x":[0,10],"y":[0,5],"config":{"cmap":"magma"}}' | labplot colormap -o map.png
		`),
		func(a *app, req *request, config, path string) (string, error) {
			y, err := req.vectorY()
			if err != nil {
				return "", err
			}
			return a.engine.PlotColormap(req.Z.rows(), req.X, y, config, path), nil
		},
	)
}

func newReplayCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "replay <snapshot>",
		Short: "Render a plot again from a snapshot",
		Example: heredoc.Doc(`
			$ labplot replay snaps/box.snap --out box-again.png
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := snapshot.Read(args[0])
			if err != nil {
				return fmt.Errorf("could not read snapshot: %w", err)
			}
			return a.report(a.engine.Replay(st, out))
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output image path")
	cmd.MarkFlagRequired("out")
	return cmd
}
