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

package cli

import "github.com/charmbracelet/lipgloss"

// CmdConfig holds parsed command-line configuration.
type CmdConfig struct {
	Help       bool
	Version    bool
	SubCmd     string
	ConfigFile string
	Args       []string

	// devices
	NoExport bool

	// utilization
	Mode      string
	Input     string
	Output    string
	Policy    string
	Workers   int
	DebugHost string
	Columns   string

	// testbed
	OutputDir string
	Template  string

	// push
	Groups       string
	Yes          bool
	CommandsFile string
	TestbedDir   string
}

type styles struct {
	title, body, help, errText, app lipgloss.Style
}
