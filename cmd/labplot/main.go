/*
DESCRIPTION
  labplot draws line, multi-line, boxplot with regression, and colormap
  charts from JSON render requests, writing an image file and printing a
  status string.

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

// labplot is a command line front end to the plotting engine for callers
// that shell out. Each invocation renders a single chart.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/ausocean/utils/logging"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/labplot/engine"
)

// Logging configuration consts.
const (
	logFile      = "labplot.log"
	logMaxSize   = 500 // MB.
	logMaxBackup = 10
	logMaxAge    = 28 // Days.
	logSuppress  = false
)

// Config defaults.
const (
	configName  = ".labplot"
	configType  = "yaml"
	envPrefix   = "LABPLOT"
	defLogLevel = "info"
)

// Viper keys, which are also the persistent flag names.
const (
	keyStyle     = "style"
	keyLogPath   = "log-path"
	keyLogLevel  = "log-level"
	keySnapshots = "snapshots"
)

// errPlotFailed is returned by commands whose status has already been
// printed.
var errPlotFailed = errors.New("plot failed")

func main() {
	cmd := newRootCmd(os.Stdin, os.Stdout)
	err := cmd.Execute()
	if err != nil {
		if !errors.Is(err, errPlotFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// app holds the state shared by the subcommands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	in      io.Reader
	out     io.Writer

	log    logging.Logger
	engine *engine.Engine
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{v: viper.New(), in: in, out: out}

	cmd := &cobra.Command{
		Use:   "labplot",
		Short: "Render charts from JSON render requests",
		Long: heredoc.Doc(`
			Render a chart from a JSON render request and print "Success" or
			"Error: ..." on stdout. The request is read from --request or stdin:

			  {"x": [...], "y": [...] | [[...]], "groups": [[...]], "positions": [...],
			   "z": [[...]], "config": {...} | "<json string>", "path": "out.png"}

			Missing values may be given as null or "NaN". The image format
			follows the output file extension.
		`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&a.cfgFile, "config", "", "Config file (default is $HOME/.labplot.yaml)")
	f.String(keyStyle, "", "Default style configuration as JSON")
	f.String(keyLogPath, "", "Log file path (default is $HOME/.labplot/labplot.log)")
	f.String(keyLogLevel, defLogLevel, "Log level: debug, info, warning, error or fatal")
	f.String(keySnapshots, "", "Directory to write render snapshots to")

	cmd.AddCommand(
		newLineCmd(a),
		newMultiLineCmd(a),
		newBoxplotCmd(a),
		newColormapCmd(a),
		newReplayCmd(a),
	)
	return cmd
}

// init reads configuration, then sets up logging and the engine.
func (a *app) init(cmd *cobra.Command) error {
	err := a.readConfig(cmd)
	if err != nil {
		return err
	}

	lvl, err := parseLevel(a.v.GetString(keyLogLevel))
	if err != nil {
		return err
	}
	path := a.v.GetString(keyLogPath)
	if path == "" {
		home, err := homedir.Dir()
		if err != nil {
			return fmt.Errorf("could not find home directory: %w", err)
		}
		path = filepath.Join(home, configName, logFile)
	}
	fileLog := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	a.log = logging.New(lvl, io.MultiWriter(fileLog), logSuppress)

	s, err := a.style()
	if err != nil {
		return err
	}
	opts := []engine.Option{engine.WithLogger(a.log)}
	if s != "" {
		opts = append(opts, engine.WithStyle(s))
	}
	if d := a.v.GetString(keySnapshots); d != "" {
		opts = append(opts, engine.WithSnapshots(d))
	}
	a.engine, err = engine.New(opts...)
	if err != nil {
		return fmt.Errorf("could not create engine: %w", err)
	}
	a.log.Debug("initialised", "command", cmd.Name(), "config", a.v.ConfigFileUsed())
	return nil
}

// readConfig binds flags and environment variables, then reads the config
// file. A missing default config file is not an error.
func (a *app) readConfig(cmd *cobra.Command) error {
	err := a.v.BindPFlags(cmd.Root().PersistentFlags())
	if err != nil {
		return fmt.Errorf("could not bind flags: %w", err)
	}
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return fmt.Errorf("could not find home directory: %w", err)
		}
		a.v.AddConfigPath(home)
		a.v.SetConfigName(configName)
		a.v.SetConfigType(configType)
	}

	err = a.v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && (a.cfgFile != "" || !errors.As(err, &notFound)) {
		return fmt.Errorf("could not read config: %w", err)
	}
	return nil
}

// style returns the default style as a JSON document. The config file may
// give it as a JSON string or as a mapping.
func (a *app) style() (string, error) {
	switch s := a.v.Get(keyStyle).(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	default:
		b, err := json.Marshal(s)
		if err != nil {
			return "", fmt.Errorf("could not encode default style: %w", err)
		}
		return string(b), nil
	}
}

// report prints status and converts an error status to errPlotFailed.
func (a *app) report(status string) error {
	fmt.Fprintln(a.out, status)
	if engine.IsError(status) {
		return errPlotFailed
	}
	return nil
}

// parseLevel returns the logging level named by s.
func parseLevel(s string) (int8, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return int8(logging.Debug), nil
	case "info":
		return int8(logging.Info), nil
	case "warning", "warn":
		return int8(logging.Warning), nil
	case "error":
		return int8(logging.Error), nil
	case "fatal":
		return int8(logging.Fatal), nil
	}
	return 0, fmt.Errorf("invalid log level: %q", s)
}
