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

package models

import (
	"time"

	"github.com/google/uuid"
)

// MediaCount is one entry of an active-port media breakdown.
type MediaCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// UtilizationRow is the per-hostname aggregate of one probe.
type UtilizationRow struct {
	Hostname           string         `json:"hostname"`
	TotalPorts         int            `json:"total_ports"`
	ActivePorts        int            `json:"active_ports"`
	UtilizationPercent float64        `json:"utilization_percent"`
	MediaTypes         []MediaCount   `json:"media_types,omitempty"`
	MediaSummary       string         `json:"media_summary,omitempty"`
	MediaColumns       map[string]int `json:"media_columns,omitempty"`
	Failed             bool           `json:"failed"`
	Error              string         `json:"error,omitempty"`
}

// ProbeMode names the port source used for a report.
type ProbeMode string

const (
	ProbeModeAPI  ProbeMode = "api"
	ProbeModeCLI  ProbeMode = "cli"
	ProbeModeSNMP ProbeMode = "snmp"
)

// Report is the outcome of one utilization run.
type Report struct {
	RunID      uuid.UUID        `json:"run_id"`
	Mode       ProbeMode        `json:"mode"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Rows       []UtilizationRow `json:"rows"`
}

// NewReport starts a report for the given mode.
func NewReport(mode ProbeMode, started time.Time) *Report {
	return &Report{
		RunID:     uuid.New(),
		Mode:      mode,
		StartedAt: started,
	}
}

// Failures counts rows produced by a failed probe.
func (r *Report) Failures() int {
	n := 0

	for i := range r.Rows {
		if r.Rows[i].Failed {
			n++
		}
	}

	return n
}

// PushResult records the outcome of a configuration push to one device.
type PushResult struct {
	Device string `json:"device"`
	Group  string `json:"group"`
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
}

// Status renders the result the way the push report prints it.
func (p PushResult) Status() string {
	if p.OK {
		return "OK"
	}

	return "NOT OK"
}
