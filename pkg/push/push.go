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

// Package push applies a configuration block to groups of devices over SSH.
package push

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/carverauto/portaudit/pkg/logger"
	"github.com/carverauto/portaudit/pkg/models"
	"github.com/carverauto/portaudit/pkg/sshcli"
	"github.com/carverauto/portaudit/pkg/workers"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Target is one device of a selected group.
type Target struct {
	Group  string
	Device Device
}

// Pusher configures devices and saves their configuration.
type Pusher struct {
	runner   sshcli.Runner
	commands []string
	pool     workers.Options
	logger   logger.Logger
}

// NewPusher prepares the command sequence once for every device.
func NewPusher(runner sshcli.Runner, block, save string, pool workers.Options, log logger.Logger) (*Pusher, error) {
	if strings.TrimSpace(block) == "" {
		return nil, ErrNoCommands
	}

	return &Pusher{
		runner:   runner,
		commands: sshcli.ConfigCommands(block, save),
		pool:     pool,
		logger:   log,
	}, nil
}

// Targets loads every selected group file from dir. Any unreadable group
// fails the whole selection before a device is contacted.
func Targets(dir string, groups []string) ([]Target, error) {
	var out []Target

	for _, g := range groups {
		devices, err := LoadTestbed(filepath.Join(dir, g))
		if err != nil {
			return nil, err
		}

		for _, d := range devices {
			out = append(out, Target{Group: g, Device: d})
		}
	}

	return out, nil
}

// Push runs the configuration on every target. A failing device is reported
// NOT OK and never stops the others.
func (p *Pusher) Push(ctx context.Context, targets []Target) []models.PushResult {
	return workers.Map(ctx, targets, p.pool, p.pushOne)
}

func (p *Pusher) pushOne(ctx context.Context, t Target) models.PushResult {
	res := models.PushResult{Device: t.Device.Name, Group: t.Group}

	if _, err := p.runner.Run(ctx, t.Device.Host, p.commands); err != nil {
		res.Error = err.Error()
		p.logger.Error().Err(err).Str("device", t.Device.Name).Str("group", t.Group).Msg("Push failed")

		return res
	}

	res.OK = true
	p.logger.Info().Str("device", t.Device.Name).Str("group", t.Group).Msg("Push succeeded")

	return res
}

// Summary is the outcome of a push run.
type Summary struct {
	Results []models.PushResult
	Elapsed time.Duration
}

// Success counts devices that took the configuration.
func (s *Summary) Success() int {
	n := 0

	for _, r := range s.Results {
		if r.OK {
			n++
		}
	}

	return n
}

// Failed counts devices reported NOT OK.
func (s *Summary) Failed() int {
	return len(s.Results) - s.Success()
}

var (
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Padding(0, 1)
	notOKStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(0, 1)
	plainStyle  = lipgloss.NewStyle().Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
)

// Render prints the execution report: a Device/Group/Status grid, the
// counts and the total runtime.
func (s *Summary) Render() string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Device", "Group", "Status")

	for _, r := range s.Results {
		t.Row(r.Device, r.Group, r.Status())
	}

	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case col == 2 && row >= 0 && row < len(s.Results):
			if s.Results[row].OK {
				return okStyle
			}

			return notOKStyle
		default:
			return plainStyle
		}
	})

	var b strings.Builder

	b.WriteString("Execution Report\n")
	b.WriteString(t.String())
	fmt.Fprintf(&b, "\nSuccess: %d\nFailed : %d\n", s.Success(), s.Failed())
	fmt.Fprintf(&b, "Total runtime: %.2f seconds\n", s.Elapsed.Seconds())

	return b.String()
}
