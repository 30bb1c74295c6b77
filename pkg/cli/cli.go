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

// Package cli parses the portaudit command line and runs its subcommands.
package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Dracula theme colors.
const (
	draculaForeground = "#F8F8F2"
	draculaCyan       = "#8BE9FD"
	draculaPink       = "#FF79C6"
	draculaRed        = "#FF5555"
	draculaYellow     = "#F1FA8C"
	draculaComment    = "#6272A4"
)

const (
	subUtilization = "utilization"
	subTestbed     = "testbed"
	subPush        = "push"
	subDevices     = "devices"

	defaultConfigFile = "portaudit.json"
	appPadding        = 2
)

func newStyles() styles {
	return styles{
		title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaPink)).
			Bold(true),
		body: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaYellow)),
		help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)),
		errText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaRed)).
			Bold(true),
		app: lipgloss.NewStyle().
			Padding(1, appPadding).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(draculaCyan)).
			Foreground(lipgloss.Color(draculaForeground)),
	}
}

// SubcommandHandler defines the interface for parsing subcommand flags.
type SubcommandHandler interface {
	Parse(args []string, cfg *CmdConfig) error
}

func newFlagSet(name string, cfg *CmdConfig) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.ConfigFile, "config", defaultConfigFile, "path to the JSON config file")

	return fs
}

func parse(fs *flag.FlagSet, args []string, cfg *CmdConfig) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing %s flags: %w", fs.Name(), err)
	}

	cfg.Args = fs.Args()

	return nil
}

// UtilizationHandler handles flags for the utilization subcommand.
type UtilizationHandler struct{}

// Parse processes the command-line arguments for the utilization subcommand.
func (UtilizationHandler) Parse(args []string, cfg *CmdConfig) error {
	fs := newFlagSet(subUtilization, cfg)
	fs.StringVar(&cfg.Mode, "mode", "", "port source: api, cli or snmp")
	fs.StringVar(&cfg.Input, "input", "", "device list (.csv or .xlsx) with a hostname column")
	fs.StringVar(&cfg.Output, "output", "", "report file (.csv or .xlsx)")
	fs.StringVar(&cfg.Policy, "policy", "", "active port policy: admin_oper_speed, admin_oper_up or traffic")
	fs.IntVar(&cfg.Workers, "workers", 0, "concurrent device sessions")
	fs.StringVar(&cfg.DebugHost, "debug-host", "", "log raw port data for this hostname")
	fs.StringVar(&cfg.Columns, "columns", "", "comma-separated media labels counted in their own columns")

	return parse(fs, args, cfg)
}

// TestbedHandler handles flags for the testbed subcommand.
type TestbedHandler struct{}

// Parse processes the command-line arguments for the testbed subcommand.
func (TestbedHandler) Parse(args []string, cfg *CmdConfig) error {
	fs := newFlagSet(subTestbed, cfg)
	fs.StringVar(&cfg.OutputDir, "dir", "", "directory for the generated testbed files")
	fs.StringVar(&cfg.Template, "template", "", "testbed template (text/template); built-in pyATS layout when empty")

	return parse(fs, args, cfg)
}

// PushHandler handles flags for the push subcommand.
type PushHandler struct{}

// Parse processes the command-line arguments for the push subcommand.
func (PushHandler) Parse(args []string, cfg *CmdConfig) error {
	fs := newFlagSet(subPush, cfg)
	fs.StringVar(&cfg.Groups, "groups", "", `group selection, e.g. "1,3" or "0" for all`)
	fs.BoolVar(&cfg.Yes, "yes", false, "skip the multi-group confirmation")
	fs.StringVar(&cfg.CommandsFile, "commands-file", "", "file holding the configuration block")
	fs.StringVar(&cfg.TestbedDir, "dir", "", "directory holding the testbed group files")
	fs.IntVar(&cfg.Workers, "workers", 0, "concurrent device sessions")

	return parse(fs, args, cfg)
}

// DevicesHandler handles flags for the devices subcommand.
type DevicesHandler struct{}

// Parse processes the command-line arguments for the devices subcommand.
func (DevicesHandler) Parse(args []string, cfg *CmdConfig) error {
	fs := newFlagSet(subDevices, cfg)
	fs.StringVar(&cfg.Output, "output", "", "device listing file (.csv or .xlsx); the utilization input when empty")
	fs.BoolVar(&cfg.NoExport, "no-export", false, "only print the listing")

	return parse(fs, args, cfg)
}

func subcommands() map[string]SubcommandHandler {
	return map[string]SubcommandHandler{
		subDevices:     DevicesHandler{},
		subUtilization: UtilizationHandler{},
		subTestbed:     TestbedHandler{},
		subPush:        PushHandler{},
	}
}

// ParseFlags reads the subcommand and its flags from args (without the
// program name).
func ParseFlags(args []string) (*CmdConfig, error) {
	cfg := &CmdConfig{ConfigFile: defaultConfigFile}

	if len(args) == 0 {
		cfg.Help = true

		return cfg, errNoSubcommand
	}

	switch args[0] {
	case "help", "-help", "--help", "-h":
		cfg.Help = true

		return cfg, nil
	case "version", "-version", "--version":
		cfg.Version = true

		return cfg, nil
	}

	cfg.SubCmd = args[0]

	handler, ok := subcommands()[cfg.SubCmd]
	if !ok {
		return cfg, fmt.Errorf("%w: %s", errUnknownSubcommand, cfg.SubCmd)
	}

	if err := handler.Parse(args[1:], cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string

	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
