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

//go:generate mockgen -destination=mock_probe.go -package=probe github.com/carverauto/portaudit/pkg/probe PortSource,Prober

// Package probe measures the port utilization of one device.
package probe

import (
	"context"

	"github.com/carverauto/portaudit/pkg/logger"
	"github.com/carverauto/portaudit/pkg/models"
	"github.com/carverauto/portaudit/pkg/ports"
	"github.com/carverauto/portaudit/pkg/sshcli"
	"github.com/carverauto/portaudit/pkg/utilization"
)

// PortSource returns the structured port records of a device.
type PortSource interface {
	Ports(ctx context.Context, hostname string) ([]models.PortRecord, error)
}

// Prober turns one hostname into one report row. It never fails; a failed
// probe yields a failure row.
type Prober interface {
	Probe(ctx context.Context, hostname string) models.UtilizationRow
}

// Debug selects one host whose raw port data is logged.
type Debug struct {
	Host  string
	Limit int
}

// StructuredProber classifies records from a PortSource (the REST API or SNMP).
// Structured records carry no media type, so its rows have no media breakdown.
type StructuredProber struct {
	Source     PortSource
	Classifier *ports.Classifier
	Debug      Debug
	Logger     logger.Logger
}

func (p *StructuredProber) Probe(ctx context.Context, hostname string) models.UtilizationRow {
	p.Logger.Info().Str("hostname", hostname).Msg("Processing device")

	recs, err := p.Source.Ports(ctx, hostname)
	if err != nil {
		p.Logger.Error().Err(err).Str("hostname", hostname).Msg("Port query failed")

		return utilization.FailedRow(hostname, err, nil)
	}

	if p.Debug.Host != "" && p.Debug.Host == hostname {
		p.dump(hostname, recs)
	}

	return utilization.NewRow(hostname, p.Classifier.Tally(recs), nil)
}

func (p *StructuredProber) dump(hostname string, recs []models.PortRecord) {
	limit := p.Debug.Limit
	if limit <= 0 || limit > len(recs) {
		limit = len(recs)
	}

	for i := range recs[:limit] {
		rec := &recs[i]

		p.Logger.Info().
			Str("hostname", hostname).
			Str("port", rec.DisplayName()).
			Str("admin", rec.AdminStatus.String()).
			Str("oper", rec.OperStatus.String()).
			Str("speed", rec.Speed.String()).
			Str("type", rec.InterfaceType).
			Str("deleted", rec.Deleted.String()).
			Bool("counted", p.Classifier.Counted(rec)).
			Bool("active", p.Classifier.Counted(rec) && p.Classifier.Active(rec)).
			Msg("Port record")
	}
}

// CLIProber runs the interface status command over SSH and parses its output.
type CLIProber struct {
	Runner  sshcli.Runner
	Parser  *ports.Parser
	Command string
	Columns []string
	Debug   Debug
	Logger  logger.Logger
}

func (p *CLIProber) Probe(ctx context.Context, hostname string) models.UtilizationRow {
	p.Logger.Info().Str("hostname", hostname).Msg("Connecting to device")

	out, err := p.Runner.Run(ctx, hostname, sshcli.ShowCommands(p.Command))
	if err != nil {
		p.Logger.Error().Err(err).Str("hostname", hostname).Msg("CLI session failed")

		return utilization.FailedRow(hostname, err, p.Columns)
	}

	parser := p.Parser
	if p.Debug.Host != "" && p.Debug.Host == hostname {
		parser = parser.WithTrace(p.Logger)
	}

	row := utilization.NewRow(hostname, parser.Parse(out), p.Columns)

	p.Logger.Info().
		Str("hostname", hostname).
		Int("total", row.TotalPorts).
		Int("active", row.ActivePorts).
		Msg("Device parsed")

	return row
}
