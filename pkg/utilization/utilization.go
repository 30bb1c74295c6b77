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

// Package utilization turns port counts into report rows.
package utilization

import (
	"fmt"
	"math"
	"strings"

	"github.com/carverauto/portaudit/pkg/models"
	"github.com/carverauto/portaudit/pkg/ports"
)

const (
	// SummaryNone is the media summary of a device without active ports.
	SummaryNone = "None"
	// SummaryUnavailable is the media summary of a device whose probe failed.
	SummaryUnavailable = "N/A"
)

// Percent returns 100*active/total rounded half away from zero to two
// decimals, or 0 when there are no ports.
func Percent(active, total int) float64 {
	if total <= 0 {
		return 0
	}

	return math.Round(10000*float64(active)/float64(total)) / 100
}

// Summary renders the counter as "type: n, type: n" by descending count.
func Summary(counter *ports.MediaCounter) string {
	if counter.Len() == 0 {
		return SummaryNone
	}

	entries := counter.MostCommon()
	parts := make([]string, 0, len(entries))

	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("%s: %d", e.Type, e.Count))
	}

	return strings.Join(parts, ", ")
}

// MediaColumns sums, per configured label, the counts of every media type
// containing that label.
func MediaColumns(counter *ports.MediaCounter, columns []string) map[string]int {
	if len(columns) == 0 {
		return nil
	}

	out := make(map[string]int, len(columns))

	for _, col := range columns {
		out[col] = 0

		for _, e := range counter.Entries() {
			if strings.Contains(e.Type, col) {
				out[col] += e.Count
			}
		}
	}

	return out
}

// NewRow builds the row of a successful probe.
func NewRow(hostname string, s ports.Summary, columns []string) models.UtilizationRow {
	active := min(s.ActivePorts, s.TotalPorts)

	return models.UtilizationRow{
		Hostname:           hostname,
		TotalPorts:         s.TotalPorts,
		ActivePorts:        active,
		UtilizationPercent: Percent(active, s.TotalPorts),
		MediaTypes:         s.Media.MostCommon(),
		MediaSummary:       Summary(s.Media),
		MediaColumns:       MediaColumns(s.Media, columns),
	}
}

// FailedRow builds the all-zero row of a failed probe.
func FailedRow(hostname string, err error, columns []string) models.UtilizationRow {
	row := models.UtilizationRow{
		Hostname:     hostname,
		MediaSummary: SummaryUnavailable,
		MediaColumns: MediaColumns(nil, columns),
		Failed:       true,
	}

	if err != nil {
		row.Error = err.Error()
	}

	return row
}
