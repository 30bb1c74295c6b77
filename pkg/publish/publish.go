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

// Package publish forwards finished utilization reports to optional sinks.
package publish

import (
	"context"
	"errors"

	"github.com/carverauto/portaudit/pkg/logger"
	"github.com/carverauto/portaudit/pkg/models"
)

// Sink receives every row of a finished report.
type Sink interface {
	Name() string
	Publish(ctx context.Context, report *models.Report) error
	Close() error
}

// Publisher fans a report out to the configured sinks. Sink errors are
// logged and never returned.
type Publisher struct {
	sinks  []Sink
	logger logger.Logger
}

// NewPublisher wraps already connected sinks.
func NewPublisher(log logger.Logger, sinks ...Sink) *Publisher {
	return &Publisher{sinks: sinks, logger: log}
}

// Connect builds a publisher from config. A sink that cannot connect is
// logged and left out.
func Connect(ctx context.Context, cfg *models.PublishConfig, log logger.Logger) *Publisher {
	p := &Publisher{logger: log}

	if cfg.NATS != nil {
		if s, err := NewNATSSink(ctx, cfg.NATS); err != nil {
			p.skip("nats", err)
		} else {
			p.sinks = append(p.sinks, s)
		}
	}

	if cfg.Influx != nil {
		if s, err := NewInfluxSink(cfg.Influx); err != nil {
			p.skip("influx", err)
		} else {
			p.sinks = append(p.sinks, s)
		}
	}

	if cfg.Postgres != nil {
		if s, err := NewPostgresSink(ctx, cfg.Postgres); err != nil {
			p.skip("postgres", err)
		} else {
			p.sinks = append(p.sinks, s)
		}
	}

	return p
}

func (p *Publisher) skip(name string, err error) {
	p.logger.Error().Err(err).Str("sink", name).Msg("Publish sink unavailable")
}

// Len returns the number of connected sinks.
func (p *Publisher) Len() int {
	return len(p.sinks)
}

// Publish sends the report to every sink.
func (p *Publisher) Publish(ctx context.Context, report *models.Report) {
	for _, s := range p.sinks {
		if err := s.Publish(ctx, report); err != nil {
			p.logger.Error().Err(err).Str("sink", s.Name()).Msg("Failed to publish report")

			continue
		}

		p.logger.Info().
			Str("sink", s.Name()).
			Int("rows", len(report.Rows)).
			Str("run_id", report.RunID.String()).
			Msg("Report published")
	}
}

// Close releases all sinks.
func (p *Publisher) Close() error {
	var errs []error

	for _, s := range p.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
