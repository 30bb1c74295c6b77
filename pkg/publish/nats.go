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
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/carverauto/portaudit/pkg/models"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

type streamPublisher interface {
	Publish(ctx context.Context, subject string, data []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// RowMessage is the JSON body of one published row.
type RowMessage struct {
	RunID      string                `json:"run_id"`
	Mode       string                `json:"mode"`
	FinishedAt string                `json:"finished_at"`
	Row        models.UtilizationRow `json:"row"`
}

// NATSSink publishes one JetStream message per row.
type NATSSink struct {
	nc     *nats.Conn
	js     streamPublisher
	prefix string
}

// NewNATSSink connects and makes sure the stream covers the subject prefix.
func NewNATSSink(ctx context.Context, cfg *models.NATSSinkConfig) (*NATSSink, error) {
	nc, err := nats.Connect(cfg.URL, nats.Name("portaudit"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()

		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	if _, err = js.Stream(ctx, cfg.Stream); err != nil {
		_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
			Name:     cfg.Stream,
			Subjects: []string{cfg.SubjectPrefix + ".>"},
		})
		if err != nil {
			nc.Close()

			return nil, fmt.Errorf("failed to create or get stream %s: %w", cfg.Stream, err)
		}
	}

	return &NATSSink{nc: nc, js: js, prefix: cfg.SubjectPrefix}, nil
}

var subjectReplacer = strings.NewReplacer(" ", "_", "*", "_", ">", "_")

// Subject returns the subject of a hostname's row.
func Subject(prefix, hostname string) string {
	return prefix + "." + subjectReplacer.Replace(hostname)
}

func (*NATSSink) Name() string { return "nats" }

func (s *NATSSink) Publish(ctx context.Context, report *models.Report) error {
	for i := range report.Rows {
		msg := RowMessage{
			RunID:      report.RunID.String(),
			Mode:       string(report.Mode),
			FinishedAt: report.FinishedAt.UTC().Format(time.RFC3339),
			Row:        report.Rows[i],
		}

		data, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("failed to marshal row: %w", err)
		}

		if _, err := s.js.Publish(ctx, Subject(s.prefix, msg.Row.Hostname), data); err != nil {
			return fmt.Errorf("failed to publish row for %s: %w", msg.Row.Hostname, err)
		}
	}

	return nil
}

func (s *NATSSink) Close() error {
	if s.nc != nil {
		s.nc.Close()
	}

	return nil
}
