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

package report

import (
	"github.com/carverauto/portaudit/pkg/models"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const (
	// StatusActive and StatusInactive label the directory status code.
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// DeviceHeader is the column layout of the device listing. The hostname
// column uses HostnameColumn so an exported listing can be fed back as the
// utilization input.
func DeviceHeader() []string {
	return []string{"ID", HostnameColumn, "IP", "OS", "Hardware", "Status", "Location", "Last Ping"}
}

// DeviceStatus renders the directory status code.
func DeviceStatus(code int) string {
	if code == models.DeviceStatusUp {
		return StatusActive
	}

	return StatusInactive
}

func deviceCells(d *models.DeviceRecord) []interface{} {
	return []interface{}{
		d.DeviceID, d.Hostname, d.IP, d.OperatingSystem, d.HardwareModel,
		DeviceStatus(d.StatusCode), d.Location, d.LastPing,
	}
}

// RenderDevices draws the device listing as a grid table. Inactive devices
// are highlighted.
func RenderDevices(devices []models.DeviceRecord) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(DeviceHeader()...)

	for i := range devices {
		t.Row(cellStrings(deviceCells(&devices[i]))...)
	}

	t.StyleFunc(func(row, _ int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case row >= 0 && row < len(devices) && devices[row].StatusCode != models.DeviceStatusUp:
			return failedStyle
		default:
			return cellStyle
		}
	})

	return t.String()
}

// WriteDevices saves the device listing to path, as xlsx or csv by extension.
func WriteDevices(path string, devices []models.DeviceRecord) error {
	rows := make([][]interface{}, len(devices))
	for i := range devices {
		rows[i] = deviceCells(&devices[i])
	}

	return save(path, DeviceHeader(), rows)
}
