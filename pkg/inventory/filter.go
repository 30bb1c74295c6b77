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

//go:generate mockgen -destination=mock_inventory.go -package=inventory github.com/carverauto/portaudit/pkg/inventory Directory

// Package inventory selects and groups devices reported by the monitoring directory.
package inventory

import (
	"context"
	"slices"
	"strings"

	"github.com/carverauto/portaudit/pkg/models"
)

// Directory lists the devices known to the monitoring system.
type Directory interface {
	Devices(ctx context.Context) ([]models.DeviceRecord, error)
}

// StatusRule selects how the directory status code is read.
type StatusRule int

const (
	// StatusUp requires the device to be reported up.
	StatusUp StatusRule = iota
	// StatusNotDown accepts any status other than down.
	StatusNotDown
)

// Filter selects active devices by status and operating system.
type Filter struct {
	OperatingSystems []string
	Status           StatusRule
}

// NewFilter builds a filter from the filter settings. Operating system
// names compare case-insensitively.
func NewFilter(cfg models.DeviceFilterConfig) *Filter {
	rule := StatusUp
	if cfg.Loose {
		rule = StatusNotDown
	}

	oses := make([]string, 0, len(cfg.OperatingSystems))
	for _, name := range cfg.OperatingSystems {
		if name = strings.ToLower(strings.TrimSpace(name)); name != "" {
			oses = append(oses, name)
		}
	}

	return &Filter{OperatingSystems: oses, Status: rule}
}

// Match reports whether d passes the filter. A device without a listed
// operating system never matches.
func (f *Filter) Match(d *models.DeviceRecord) bool {
	switch f.Status {
	case StatusNotDown:
		if d.StatusCode == models.DeviceStatusDown {
			return false
		}
	default:
		if d.StatusCode != models.DeviceStatusUp {
			return false
		}
	}

	osName := strings.ToLower(strings.TrimSpace(d.OperatingSystem))

	return osName != "" && slices.Contains(f.OperatingSystems, osName)
}

// Active returns the hostnames of the devices that pass the filter.
func (f *Filter) Active(devices []models.DeviceRecord) map[string]struct{} {
	out := make(map[string]struct{})

	for i := range devices {
		if f.Match(&devices[i]) {
			out[strings.TrimSpace(devices[i].Hostname)] = struct{}{}
		}
	}

	return out
}

// Targets returns the input hostnames found in active, in input order.
// Hostnames are trimmed; blanks and repeats are dropped.
func Targets(hostnames []string, active map[string]struct{}) []string {
	seen := make(map[string]struct{}, len(hostnames))
	out := make([]string, 0, len(hostnames))

	for _, h := range hostnames {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}

		if _, dup := seen[h]; dup {
			continue
		}

		seen[h] = struct{}{}

		if _, ok := active[h]; ok {
			out = append(out, h)
		}
	}

	return out
}
