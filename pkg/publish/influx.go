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

package publish

import (
	"context"
	"fmt"
	"net/url"
	"time"

	client "github.com/influxdata/influxdb1-client"

	"github.com/carverauto/portaudit/pkg/models"
)

const influxTimeout = 10 * time.Second

// InfluxSink writes one point per row to an InfluxDB 1.x database.
type InfluxSink struct {
	client      *client.Client
	database    string
	measurement string
}

func NewInfluxSink(cfg *models.InfluxSinkConfig) (*InfluxSink, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid influx url: %w", err)
	}

	c, err := client.NewClient(client.Config{
		URL:      *u,
		Username: cfg.Username,
		Password: cfg.Password,
		Timeout:  influxTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create influx client: %w", err)
	}

	return &InfluxSink{client: c, database: cfg.Database, measurement: cfg.Measurement}, nil
}

// Points converts the report rows into points tagged by hostname and mode.
func Points(report *models.Report, measurement string) []client.Point {
	points := make([]client.Point, 0, len(report.Rows))

	for i := range report.Rows {
		row := &report.Rows[i]

		fields := map[string]interface{}{
			"total_ports":         row.TotalPorts,
			"active_ports":        row.ActivePorts,
			"utilization_percent": row.UtilizationPercent,
			"failed":              row.Failed,
		}

		for _, m := range row.MediaTypes {
			fields["media_"+m.Type] = m.Count
		}

		points = append(points, client.Point{
			Measurement: measurement,
			Tags: map[string]string{
				"hostname": row.Hostname,
				"mode":     string(report.Mode),
				"run_id":   report.RunID.String(),
			},
			Time:   report.FinishedAt,
			Fields: fields,
		})
	}

	return points
}

func (*InfluxSink) Name() string { return "influx" }

func (s *InfluxSink) Publish(_ context.Context, report *models.Report) error {
	resp, err := s.client.Write(client.BatchPoints{
		Points:   Points(report, s.measurement),
		Database: s.database,
	})
	if err != nil {
		return fmt.Errorf("failed to write points: %w", err)
	}

	if resp != nil && resp.Error() != nil {
		return fmt.Errorf("influx rejected points: %w", resp.Error())
	}

	return nil
}

func (*InfluxSink) Close() error { return nil }
