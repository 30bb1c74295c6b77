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

import "strings"

// IF-MIB ifAdminStatus / ifOperStatus values.
const (
	IfStatusUp   = 1
	IfStatusDown = 2
)

// PortRecord is one interface row from a structured port source.
// Field names follow the LibreNMS ports API, which mirrors IF-MIB.
type PortRecord struct {
	Name          string    `json:"ifName"`
	Descr         string    `json:"ifDescr"`
	AdminStatus   FlexValue `json:"ifAdminStatus"`
	OperStatus    FlexValue `json:"ifOperStatus"`
	Speed         FlexValue `json:"ifSpeed"`
	InterfaceType string    `json:"ifType"`
	Deleted       FlexValue `json:"deleted"`
	InRate        FlexValue `json:"ifInOctets_rate"`
	OutRate       FlexValue `json:"ifOutOctets_rate"`
}

// DisplayName returns ifName, falling back to ifDescr.
func (p *PortRecord) DisplayName() string {
	if name := strings.TrimSpace(p.Name); name != "" {
		return name
	}

	return strings.TrimSpace(p.Descr)
}

// PortLine is one parsed row of `show interfaces status` output.
type PortLine struct {
	Port   string `json:"port"`
	Label  string `json:"label,omitempty"`
	Status string `json:"status"`
	VLAN   string `json:"vlan"`
	Duplex string `json:"duplex"`
	Speed  string `json:"speed"`
	Type   string `json:"type"`
}
