package main

import (
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dariost/XRainbow/internal/app"
	"github.com/dariost/XRainbow/internal/config"
	"github.com/dariost/XRainbow/internal/logging"
	"github.com/dariost/XRainbow/internal/xgamma"
)

// version is the fallback when the binary is built without module info.
const version = "1.0.1"

const versionTemplate = `XRainbow version {{.Version}}

Copyright 2016 | Dario Ostuni <another.code.996@gmail.com>

Licensed to the Apache Software Foundation (ASF) under one
or more contributor license agreements.  See the NOTICE file
distributed with this work for additional information
regarding copyright ownership.  The ASF licenses this file
to you under the Apache License, Version 2.0 (the
"License"); you may not use this file except in compliance
with the License.  You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing,
software distributed under the License is distributed on an
"AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
KIND, either express or implied.  See the License for the
specific language governing permissions and limitations
under the License.
`

func versionString() string {
	if bi, ok := debug.ReadBuildInfo(); ok {
		if v := bi.Main.Version; v != "" && v != "(devel)" {
			return strings.TrimPrefix(v, "v")
		}
	}
	return version
}

// notifyStop invokes stop when SIGINT, SIGTERM, or an externally delivered
// SIGSEGV arrives. The handler goroutine only ever flips the stop flag;
// teardown runs synchronously from the loop once the flag is observed.
// SIGSEGV is included for best-effort cleanup on external faults. The
// returned release func unregisters the handler and lets the goroutine
// exit.
func notifyStop(stop func()) (release func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGSEGV)
	done := make(chan struct{})
	go func() {
		select {
		case <-sigCh:
			stop()
		case <-done:
		}
	}()
	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}

func run(args []string, stderr *os.File) error {
	cfg := config.Default()

	cmd := &cobra.Command{
		Use:   "xrainbow",
		Short: "cycle the gamma correction of an X11 display through a rainbow of hues",
		Long: `xrainbow smoothly cycles the gamma correction of an X11 display through
a rainbow of hues until interrupted or the time limit elapses. The gamma
is restored to neutral on exit, including on SIGINT and SIGTERM.`,
		Version:       versionString(),
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			// Past this point errors are environment failures, not usage
			// mistakes.
			cmd.SilenceUsage = true

			logger := slog.New(logging.NewTerminalHandler(stderr, cfg.Debug))

			display, err := xgamma.Open(cfg.Display, cfg.Screen, logger)
			if err != nil {
				return err
			}

			a := app.New(cfg, display, logger)

			release := notifyStop(a.Stop)
			defer release()

			return a.Run()
		},
	}

	cmd.Flags().Float64VarP(&cfg.TimeLimit, "time-limit", "t", cfg.TimeLimit, "seconds to run, negative for no limit")
	cmd.Flags().Float64VarP(&cfg.Speed, "speed", "s", cfg.Speed, "rainbow speed, must be greater than 0")
	cmd.Flags().Float64VarP(&cfg.Luminosity, "luminosity", "l", cfg.Luminosity, "base luminosity, in [0.1, 9.9]")
	cmd.Flags().StringVarP(&cfg.Display, "display", "d", cfg.Display, "X display to connect to (default $DISPLAY)")
	cmd.Flags().IntVar(&cfg.Screen, "screen", cfg.Screen, "X screen number, negative for the display's default")
	cmd.Flags().BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug diagnostics")

	cmd.SetVersionTemplate(versionTemplate)

	cmd.SetArgs(args)
	cmd.SetErr(stderr)
	return cmd.Execute()
}
