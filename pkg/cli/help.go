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

import (
	"fmt"
	"io"
)

// ShowHelp writes the usage text.
func ShowHelp(w io.Writer) {
	fmt.Fprint(w, `portaudit: switch port utilization and fleet tooling

Usage:
  portaudit devices [options]
  portaudit utilization [options]
  portaudit testbed [options]
  portaudit push [options]
  portaudit version

Commands:
  devices       List the monitoring directory and export it as a device list
  utilization   Probe the listed devices and report port utilization
  testbed       Generate one testbed file per hardware family
  push          Apply a configuration block to device groups over SSH
  version       Print the build version

Common options:
  -config string        JSON config file (default "portaudit.json")

Options for devices:
  -output string        listing file (default: the utilization input, "librenms_devices.xlsx")
  -no-export            print the listing without writing a file

Options for utilization:
  -mode string          port source: api, cli or snmp (default "cli")
  -input string         device list with a hostname column (default "librenms_devices.xlsx")
  -output string        report file (default "ssh_device_ports_status.xlsx")
  -policy string        admin_oper_speed, admin_oper_up or traffic (api and snmp modes)
  -workers int          concurrent device sessions (default 5)
  -debug-host string    log raw port data for one hostname
  -columns string       media labels counted in their own columns, e.g. "BaseTX,SFP"

Options for testbed:
  -dir string           output directory (default ".")
  -template string      template file; the built-in pyATS layout is used when empty

Options for push:
  -groups string        "0" for all groups or a list such as "1,3"
  -yes                  do not ask before pushing to several groups
  -commands-file string file holding the configuration block
  -dir string           directory holding the testbed group files
  -workers int          concurrent device sessions (default 5)

Environment:
  LIBRENMS_TOKEN        API token when the config file has none
  CONFIG_SOURCE=env     read the config from PORTAUDIT_* variables
  PORTAUDIT_LOG_LEVEL   trace, debug, info, warn or error

Examples:
  portaudit devices -output devices.csv
  portaudit utilization -mode api -input devices.csv -output report.csv
  portaudit testbed -dir testbeds
  portaudit push -groups 1,2 -yes -commands-file acl.txt
`)
}
