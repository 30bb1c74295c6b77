/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/carverauto/portaudit/pkg/cli"
	"github.com/carverauto/portaudit/pkg/lifecycle"
	"github.com/carverauto/portaudit/pkg/logger"
	"github.com/carverauto/portaudit/pkg/version"
)

func main() {
	if err := run(); err != nil {
		l := logger.GetLogger()
		l.Fatal().Err(err).Msg("Fatal error")
	}
}

func run() error {
	cmd, err := cli.ParseFlags(os.Args[1:])
	if cmd != nil && cmd.Help {
		cli.ShowHelp(os.Stdout)

		return err
	}

	if err != nil {
		return err
	}

	if cmd.Version {
		fmt.Println(version.GetFullVersion())

		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The config loader logs through a bootstrap logger until the config
	// has been read.
	bootLogger, err := lifecycle.CreateComponentLogger("portaudit", logger.DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, err := cli.LoadConfig(ctx, cmd.ConfigFile, bootLogger)
	if err != nil {
		return err
	}

	// The package logger backs the fatal exit path in main.
	if err := lifecycle.InitializeLogger(cfg.Logging); err != nil {
		return err
	}

	appLogger := bootLogger
	if cfg.Logging != nil {
		if appLogger, err = lifecycle.CreateComponentLogger("portaudit", cfg.Logging); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
	}

	app := cli.NewApp(cfg, appLogger, os.Stdout, &cli.TeaPrompter{In: os.Stdin, Out: os.Stdout})

	if err := app.Run(ctx, cmd); err != nil {
		if errors.Is(err, context.Canceled) {
			appLogger.Warn().Msg("Interrupted")
		}

		return err
	}

	return nil
}
