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

	"github.com/carverauto/portaudit/pkg/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSink batch-inserts report rows into one table.
type PostgresSink struct {
	pool  *pgxpool.Pool
	table string
}

func NewPostgresSink(ctx context.Context, cfg *models.PostgresSinkConfig) (*PostgresSink, error) {
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	s := &PostgresSink{pool: pool, table: pgx.Identifier{cfg.Table}.Sanitize()}

	if _, err := pool.Exec(ctx, createTableSQL(s.table)); err != nil {
		pool.Close()

		return nil, fmt.Errorf("failed to prepare table %s: %w", cfg.Table, err)
	}

	return s, nil
}

func createTableSQL(table string) string {
	return `CREATE TABLE IF NOT EXISTS ` + table + ` (
		run_id UUID NOT NULL,
		mode TEXT NOT NULL,
		hostname TEXT NOT NULL,
		total_ports INTEGER NOT NULL,
		active_ports INTEGER NOT NULL,
		utilization_percent DOUBLE PRECISION NOT NULL,
		media_summary TEXT,
		failed BOOLEAN NOT NULL,
		error TEXT,
		finished_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (run_id, hostname)
	)`
}

func insertSQL(table string) string {
	return `INSERT INTO ` + table + ` (
		run_id, mode, hostname, total_ports, active_ports,
		utilization_percent, media_summary, failed, error, finished_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (run_id, hostname) DO NOTHING`
}

// Batch queues one insert per row.
func Batch(table string, report *models.Report) *pgx.Batch {
	batch := &pgx.Batch{}
	query := insertSQL(table)

	for i := range report.Rows {
		row := &report.Rows[i]

		batch.Queue(query,
			report.RunID,
			string(report.Mode),
			row.Hostname,
			row.TotalPorts,
			row.ActivePorts,
			row.UtilizationPercent,
			row.MediaSummary,
			row.Failed,
			row.Error,
			report.FinishedAt,
		)
	}

	return batch
}

func (*PostgresSink) Name() string { return "postgres" }

func (s *PostgresSink) Publish(ctx context.Context, report *models.Report) (err error) {
	batch := Batch(s.table, report)
	if batch.Len() == 0 {
		return nil
	}

	br := s.pool.SendBatch(ctx, batch)
	defer func() {
		if closeErr := br.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("utilization batch close: %w", closeErr)
		}
	}()

	for i := 0; i < batch.Len(); i++ {
		if _, err = br.Exec(); err != nil {
			return fmt.Errorf("utilization insert (command %d): %w", i, err)
		}
	}

	return nil
}

func (s *PostgresSink) Close() error {
	s.pool.Close()

	return nil
}
