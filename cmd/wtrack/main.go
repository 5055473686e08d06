// Copyright 2023 Jack Bister
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackbister/wtrack/internal/dependencyinjection"
	"github.com/jackbister/wtrack/internal/web"
	"github.com/jackbister/wtrack/pkg/wtrack/config"
)

var versionString string // This must be set using -ldflags "-X main.versionString=<version>" when building for --version to work

var cfgFileFlag string
var debugFlag bool
var printVersion bool
var timeLayoutFlag string
var webAddrFlag string

func main() {
	flag.StringVar(&cfgFileFlag, "config", "wtrack.json", "The name of the file containing the configuration for wtrack. If a config file exists, all other command line configuration will be ignored.")
	flag.BoolVar(&debugFlag, "debug", false, "Enables debug logging and gin debug mode.")
	flag.BoolVar(&printVersion, "version", false, "Print version info and quit.")
	flag.StringVar(&timeLayoutFlag, "timelayout", "UNIX_DECIMAL", "The layout of the timestamp field of observations. UNIX, UNIX_MILLIS, UNIX_DECIMAL, UNIX_DECIMAL_NANOS, AUTO or a layout as described in https://golang.org/pkg/time/#Parse.")
	flag.StringVar(&webAddrFlag, "webaddr", ":8080", "The address on which the parse API will be exposed.")
	flag.Parse()

	if printVersion {
		if versionString == "" {
			fmt.Println("(unknown version)")
			return
		}
		fmt.Println(versionString)
		return
	}

	level := slog.LevelInfo
	if debugFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(logger)
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	if !cfg.Web.Enabled {
		logger.Info("web is disabled in configuration, nothing to do")
		return
	}

	c, err := dependencyinjection.InjectionContextFromConfig(cfg, logger)
	if err != nil {
		logger.Error("failed to create injection context", slog.Any("error", err))
		os.Exit(1)
	}
	err = c.Invoke(func(w web.Web) error {
		return w.Serve()
	})
	if err != nil {
		logger.Error("web server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func loadConfig(logger *slog.Logger) (*config.Config, error) {
	cfgFile, err := os.Open(cfgFileFlag)
	if err == nil {
		defer cfgFile.Close()
		cfg, err := config.Decode(cfgFile, logger)
		if err != nil {
			return nil, fmt.Errorf("error parsing configuration from file '%v': %w", cfgFileFlag, err)
		}
		logger.Info("Using configuration from file", slog.String("fileName", cfgFileFlag))
		return cfg, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error opening config file '%v': %w", cfgFileFlag, err)
	}

	logger.Info("Could not open config file, will use command line configuration", slog.String("fileName", cfgFileFlag))
	cfg := config.Default()
	cfg.Web.Address = webAddrFlag
	cfg.Web.DebugMode = debugFlag
	ft := cfg.FileTypes[config.DefaultFileType]
	ft.TimeLayout = timeLayoutFlag
	cfg.FileTypes[config.DefaultFileType] = ft
	return cfg, nil
}
