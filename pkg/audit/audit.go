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

// Package audit runs the port utilization pipeline: directory lookup, active
// device filtering, concurrent probing and report delivery.
package audit

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/carverauto/portaudit/pkg/inventory"
	"github.com/carverauto/portaudit/pkg/logger"
	"github.com/carverauto/portaudit/pkg/models"
	"github.com/carverauto/portaudit/pkg/probe"
	"github.com/carverauto/portaudit/pkg/publish"
	"github.com/carverauto/portaudit/pkg/report"
	"github.com/carverauto/portaudit/pkg/workers"
)

// Runner holds the collaborators of one utilization run.
type Runner struct {
	Directory inventory.Directory
	Filter    *inventory.Filter
	Prober    probe.Prober
	Pool      workers.Options
	Mode      models.ProbeMode
	Logger    logger.Logger

	now func() time.Time
}

func (r *Runner) clock() time.Time {
	if r.now != nil {
		return r.now()
	}

	return time.Now()
}

// Run probes every listed hostname that the directory reports as active.
// Hostnames that are unknown, down or on another platform are skipped and
// absent from the report. A directory failure aborts the run.
func (r *Runner) Run(ctx context.Context, hostnames []string) (*models.Report, error) {
	rep := models.NewReport(r.Mode, r.clock())

	devices, err := r.Directory.Devices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	active := r.Filter.Active(devices)
	targets := inventory.Targets(hostnames, active)

	r.Logger.Info().
		Int("devices", len(devices)).
		Int("active", len(active)).
		Int("listed", len(hostnames)).
		Int("targets", len(targets)).
		Str("mode", string(r.Mode)).
		Msg("Starting utilization run")

	for _, h := range hostnames {
		h = strings.TrimSpace(h)
		if _, ok := active[h]; h != "" && !ok {
			r.Logger.Warn().Str("hostname", h).Msg("Skipping device not active in directory")
		}
	}

	rep.Rows = workers.Map(ctx, targets, r.Pool, r.Prober.Probe)
	rep.FinishedAt = r.clock()

	r.Logger.Info().
		Str("run_id", rep.RunID.String()).
		Int("rows", len(rep.Rows)).
		Int("failed", rep.Failures()).
		Dur("elapsed", rep.FinishedAt.Sub(rep.StartedAt)).
		Msg("Utilization run finished")

	return rep, nil
}

// Output says where a finished report goes.
type Output struct {
	Path      string
	Layout    report.Layout
	Console   io.Writer
	Publisher *publish.Publisher
}

// Deliver prints, saves and publishes the report. Only a failure to save the
// report file is returned.
func (r *Runner) Deliver(ctx context.Context, rep *models.Report, out Output) error {
	if out.Console != nil && len(rep.Rows) > 0 {
		if _, err := fmt.Fprintln(out.Console, report.Render(rep, out.Layout)); err != nil {
			r.Logger.Warn().Err(err).Msg("Failed to print report table")
		}
	}

	if out.Path != "" {
		if err := report.Write(out.Path, rep, out.Layout); err != nil {
			return err
		}

		r.Logger.Info().Str("path", out.Path).Msg("Report saved")
	}

	if out.Publisher != nil {
		out.Publisher.Publish(ctx, rep)
	}

	return nil
}
