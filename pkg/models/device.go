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

// Package models holds the data types shared by the portaudit pipelines.
package models

import (
	"encoding/json"
	"strings"
)

const (
	// DeviceStatusDown is the directory status code of an unreachable device.
	DeviceStatusDown = 0
	// DeviceStatusUp is the directory status code of a reachable device.
	DeviceStatusUp = 1
)

// DeviceRecord is one device as reported by the monitoring directory.
type DeviceRecord struct {
	DeviceID        int    `json:"device_id"`
	Hostname        string `json:"hostname"`
	IP              string `json:"ip"`
	OperatingSystem string `json:"os"`
	HardwareModel   string `json:"hardware"`
	StatusCode      int    `json:"status"`
	Location        string `json:"location"`
	Version         string `json:"version"`
	LastPing        string `json:"last_ping"`
}

// Alias returns the short host name, the hostname up to its first dot.
func (d *DeviceRecord) Alias() string {
	alias, _, _ := strings.Cut(d.Hostname, ".")

	return alias
}

// UnmarshalJSON tolerates directories that report status and device_id as
// strings or booleans instead of numbers.
func (d *DeviceRecord) UnmarshalJSON(b []byte) error {
	type alias DeviceRecord

	aux := &struct {
		DeviceID   FlexValue `json:"device_id"`
		StatusCode FlexValue `json:"status"`
		*alias
	}{alias: (*alias)(d)}

	if err := json.Unmarshal(b, aux); err != nil {
		return err
	}

	if id, ok := aux.DeviceID.Int(); ok {
		d.DeviceID = int(id)
	}

	d.StatusCode = DeviceStatusDown
	if status, ok := aux.StatusCode.Int(); ok {
		d.StatusCode = int(status)
	}

	return nil
}
