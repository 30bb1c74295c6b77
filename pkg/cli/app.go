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

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/carverauto/portaudit/pkg/audit"
	"github.com/carverauto/portaudit/pkg/config"
	"github.com/carverauto/portaudit/pkg/inventory"
	"github.com/carverauto/portaudit/pkg/librenms"
	"github.com/carverauto/portaudit/pkg/lifecycle"
	"github.com/carverauto/portaudit/pkg/logger"
	"github.com/carverauto/portaudit/pkg/models"
	"github.com/carverauto/portaudit/pkg/ports"
	"github.com/carverauto/portaudit/pkg/probe"
	"github.com/carverauto/portaudit/pkg/publish"
	"github.com/carverauto/portaudit/pkg/push"
	"github.com/carverauto/portaudit/pkg/report"
	"github.com/carverauto/portaudit/pkg/snmpports"
	"github.com/carverauto/portaudit/pkg/sshcli"
	"github.com/carverauto/portaudit/pkg/testbed"
	"github.com/carverauto/portaudit/pkg/workers"
)

// TokenEnv names the variable read when the config has no API token.
const TokenEnv = "LIBRENMS_TOKEN"

// LoadConfig loads the JSON config (or PORTAUDIT_* variables when
// CONFIG_SOURCE=env). A missing default config file means built-in defaults.
func LoadConfig(ctx context.Context, path string, log logger.Logger) (*models.Config, error) {
	var cfg models.Config

	fromFile := os.Getenv("CONFIG_SOURCE") == "" || strings.EqualFold(os.Getenv("CONFIG_SOURCE"), "file")

	if _, err := os.Stat(path); fromFile && path == defaultConfigFile && errors.Is(err, os.ErrNotExist) {
		log.Debug().Str("path", path).Msg("No config file, using defaults")

		if err := config.ValidateConfig(&cfg); err != nil {
			return nil, err
		}
	} else if err := config.NewConfig(log).LoadAndValidate(ctx, path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.LibreNMS.APIToken == "" {
		cfg.LibreNMS.APIToken = os.Getenv(TokenEnv)
	}

	return &cfg, nil
}

// App runs the subcommands against one loaded config.
type App struct {
	Config   *models.Config
	Logger   logger.Logger
	Out      io.Writer
	Prompter Prompter

	loggers   func(component string) logger.Logger
	directory inventory.Directory
	apiPorts  probe.PortSource
	snmpPorts probe.PortSource
	runner    sshcli.Runner
	now       func() time.Time
}

// NewApp wires an App that logs through component loggers built from the
// config's logging section.
func NewApp(cfg *models.Config, log logger.Logger, out io.Writer, prompter Prompter) *App {
	a := &App{Config: cfg, Logger: log, Out: out, Prompter: prompter, now: time.Now}

	a.loggers = func(component string) logger.Logger {
		l, err := lifecycle.CreateComponentLogger(component, cfg.Logging)
		if err != nil {
			log.Warn().Err(err).Str("component", component).Msg("Falling back to the main logger")

			return log
		}

		return l
	}

	return a
}

func (a *App) component(name string) logger.Logger {
	if a.loggers == nil {
		return a.Logger
	}

	return a.loggers(name)
}

// Run dispatches the parsed subcommand.
func (a *App) Run(ctx context.Context, cmd *CmdConfig) error {
	switch cmd.SubCmd {
	case subDevices:
		return a.Devices(ctx, cmd)
	case subUtilization:
		return a.Utilization(ctx, cmd)
	case subTestbed:
		return a.Testbed(ctx, cmd)
	case subPush:
		return a.Push(ctx, cmd)
	default:
		return fmt.Errorf("%w: %s", errUnknownSubcommand, cmd.SubCmd)
	}
}

// connectDirectory creates the monitoring API client unless one was injected.
// The token check happens here, before any request.
func (a *App) connectDirectory() error {
	if a.directory != nil {
		return nil
	}

	c, err := librenms.NewClient(&a.Config.LibreNMS, a.component("librenms"))
	if err != nil {
		return err
	}

	a.directory = c

	if a.apiPorts == nil {
		a.apiPorts = c
	}

	return nil
}

func (a *App) sshRunner() (sshcli.Runner, error) {
	if a.runner != nil {
		return a.runner, nil
	}

	c, err := sshcli.NewClient(&a.Config.SSH, a.component("sshcli"))
	if err != nil {
		return nil, err
	}

	a.runner = c

	return c, nil
}

func (u *CmdConfig) applyUtilization(cfg *models.UtilizationConfig) {
	if u.Mode != "" {
		cfg.Mode = models.ProbeMode(strings.ToLower(u.Mode))
	}

	if u.Input != "" {
		cfg.Input = u.Input
	}

	if u.Output != "" {
		cfg.Output = u.Output
	}

	if u.Policy != "" {
		cfg.Policy = u.Policy
	}

	if u.Workers > 0 {
		cfg.Workers = u.Workers
	}

	if u.DebugHost != "" {
		cfg.DebugHost = u.DebugHost
	}

	if cols := splitList(u.Columns); len(cols) > 0 {
		cfg.MediaColumns = cols
	}
}

func (a *App) prober(u *models.UtilizationConfig) (probe.Prober, error) {
	debug := probe.Debug{Host: u.DebugHost, Limit: u.DebugLimit}
	log := a.component("probe")

	if u.Mode == models.ProbeModeCLI {
		runner, err := a.sshRunner()
		if err != nil {
			return nil, err
		}

		return &probe.CLIProber{
			Runner:  runner,
			Parser:  ports.NewParser(u.PhysicalPrefixes, u.StatusWords),
			Command: a.Config.SSH.Command,
			Columns: u.MediaColumns,
			Debug:   debug,
			Logger:  log,
		}, nil
	}

	policy, err := ports.PolicyByName(u.Policy)
	if err != nil {
		return nil, err
	}

	source := a.apiPorts

	if u.Mode == models.ProbeModeSNMP {
		if a.snmpPorts == nil {
			a.snmpPorts = snmpports.NewSource(&a.Config.SNMP, a.component("snmp"))
		}

		source = a.snmpPorts
	}

	return &probe.StructuredProber{
		Source:     source,
		Classifier: ports.NewClassifier(ports.ExclusionsFromConfig(u.Exclusions), policy),
		Debug:      debug,
		Logger:     log,
	}, nil
}

// Devices prints the directory listing and exports it, by default to the
// file the utilization report reads its hostnames from.
func (a *App) Devices(ctx context.Context, cmd *CmdConfig) error {
	if err := a.Config.Validate(); err != nil {
		return err
	}

	if err := a.connectDirectory(); err != nil {
		return err
	}

	devices, err := a.directory.Devices(ctx)
	if err != nil {
		return fmt.Errorf("failed to list devices: %w", err)
	}

	fmt.Fprintf(a.Out, "Retrieved %d devices from LibreNMS\n\n", len(devices))
	fmt.Fprintln(a.Out, report.RenderDevices(devices))

	if cmd.NoExport {
		return nil
	}

	path := cmd.Output
	if path == "" {
		path = a.Config.Utilization.Input
	}

	if err := report.WriteDevices(path, devices); err != nil {
		return err
	}

	fmt.Fprintf(a.Out, "\nDevice list written to %s\n", path)

	return nil
}

// Utilization runs the port utilization report.
func (a *App) Utilization(ctx context.Context, cmd *CmdConfig) error {
	u := &a.Config.Utilization
	cmd.applyUtilization(u)

	if err := a.Config.Validate(); err != nil {
		return err
	}

	hostnames, err := report.ReadHostnames(u.Input)
	if err != nil {
		return err
	}

	if err := a.connectDirectory(); err != nil {
		return err
	}

	prober, err := a.prober(u)
	if err != nil {
		return err
	}

	cliMode := u.Mode == models.ProbeModeCLI

	var mediaColumns []string
	if cliMode {
		mediaColumns = u.MediaColumns
	} else if len(u.MediaColumns) > 0 {
		a.Logger.Warn().Str("mode", string(u.Mode)).Strs("columns", u.MediaColumns).
			Msg("Media columns need cli mode and are left out of the report")
	}

	pub := publish.Connect(ctx, &a.Config.Publish, a.component("publish"))
	defer func() {
		if err := pub.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close publish sinks")
		}
	}()

	runner := &audit.Runner{
		Directory: a.directory,
		Filter:    inventory.NewFilter(u.Filter),
		Prober:    prober,
		Pool:      workers.Options{Workers: u.Workers, Delay: time.Duration(u.ConnectDelay)},
		Mode:      u.Mode,
		Logger:    a.component("audit"),
	}

	rep, err := runner.Run(ctx, hostnames)
	if err != nil {
		return err
	}

	return runner.Deliver(ctx, rep, audit.Output{
		Path: u.Output,
		Layout: report.Layout{
			MediaSummary: cliMode,
			MediaColumns: mediaColumns,
		},
		Console:   a.Out,
		Publisher: pub,
	})
}

// Testbed writes the per-family testbed files.
func (a *App) Testbed(ctx context.Context, cmd *CmdConfig) error {
	tb := &a.Config.Testbed

	if cmd.OutputDir != "" {
		tb.OutputDir = cmd.OutputDir
	}

	if cmd.Template != "" {
		tb.Template = cmd.Template
	}

	if err := a.connectDirectory(); err != nil {
		return err
	}

	gen, err := testbed.NewGenerator(a.directory, tb, a.Out, a.component("testbed"))
	if err != nil {
		return err
	}

	paths, err := gen.Generate(ctx)
	if err != nil {
		return err
	}

	for _, p := range paths {
		fmt.Fprintf(a.Out, "Generated %s\n", p)
	}

	return nil
}

func (a *App) commands(cmd *CmdConfig) (string, error) {
	path := a.Config.Push.CommandsFile
	if cmd.CommandsFile != "" {
		path = cmd.CommandsFile
	}

	if path == "" {
		return a.Config.Push.Commands, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read commands file: %w", err)
	}

	return string(b), nil
}

func (a *App) ask(title, body, placeholder string) (string, error) {
	if a.Prompter == nil {
		return "", errNoPrompter
	}

	return a.Prompter.Ask(title, body, placeholder)
}

func (a *App) selectGroups(cmd *CmdConfig) ([]string, bool, error) {
	catalogue := a.Config.Push.Groups

	choice := cmd.Groups
	if choice == "" {
		answer, err := a.ask("Select target groups", push.Menu(catalogue), "e.g. 1,2,3")
		if err != nil {
			return nil, false, err
		}

		choice = answer
	}

	groups, err := push.Select(choice, catalogue)
	if err != nil {
		return nil, false, err
	}

	if !push.NeedsConfirmation(groups) || cmd.Yes {
		return groups, true, nil
	}

	answer, err := a.ask(fmt.Sprintf("You selected %d groups. Continue? (y/n)", len(groups)), strings.Join(groups, "\n"), "y/n")
	if err != nil {
		return nil, false, err
	}

	return groups, strings.EqualFold(strings.TrimSpace(answer), "y"), nil
}

// Push applies the configuration block to the selected device groups.
func (a *App) Push(ctx context.Context, cmd *CmdConfig) error {
	if cmd.Workers > 0 {
		a.Config.Push.Workers = cmd.Workers
	}

	block, err := a.commands(cmd)
	if err != nil {
		return err
	}

	if strings.TrimSpace(block) == "" {
		return push.ErrNoCommands
	}

	groups, proceed, err := a.selectGroups(cmd)
	if err != nil {
		return err
	}

	if !proceed {
		fmt.Fprintln(a.Out, "Aborted by user")

		return nil
	}

	dir := a.Config.Testbed.OutputDir
	if cmd.TestbedDir != "" {
		dir = cmd.TestbedDir
	}

	targets, err := push.Targets(dir, groups)
	if err != nil {
		return err
	}

	runner, err := a.sshRunner()
	if err != nil {
		return err
	}

	pusher, err := push.NewPusher(runner, block, a.Config.SSH.SaveCommand,
		workers.Options{Workers: a.Config.Push.Workers}, a.component("push"))
	if err != nil {
		return err
	}

	start := a.now()
	results := pusher.Push(ctx, targets)

	summary := &push.Summary{Results: results, Elapsed: a.now().Sub(start)}
	fmt.Fprintln(a.Out, summary.Render())

	return nil
}
