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

package push

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Device is one push target read from a testbed file.
type Device struct {
	Name string
	Host string
}

type connection struct {
	IP   string `yaml:"ip"`
	Host string `yaml:"host"`
}

type testbedDevice struct {
	Connections yaml.Node `yaml:"connections"`
}

type testbedFile struct {
	Devices yaml.Node `yaml:"devices"`
}

// LoadTestbed reads the devices of a testbed file in file order. The address
// comes from the cli connection, then any connection, then the device name.
func LoadTestbed(path string) ([]Device, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read testbed: %w", err)
	}

	var tb testbedFile
	if err := yaml.Unmarshal(b, &tb); err != nil {
		return nil, fmt.Errorf("failed to parse testbed %s: %w", path, err)
	}

	if tb.Devices.Kind == 0 {
		return nil, fmt.Errorf("%w: %s", errNoDevices, path)
	}

	if tb.Devices.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %s", errNotMapping, path)
	}

	content := tb.Devices.Content
	devices := make([]Device, 0, len(content)/2)

	for i := 0; i+1 < len(content); i += 2 {
		var d testbedDevice
		if err := content[i+1].Decode(&d); err != nil {
			return nil, fmt.Errorf("failed to parse device %q: %w", content[i].Value, err)
		}

		host, err := d.address(content[i].Value)
		if err != nil {
			return nil, fmt.Errorf("failed to parse device %q: %w", content[i].Value, err)
		}

		devices = append(devices, Device{Name: content[i].Value, Host: host})
	}

	if len(devices) == 0 {
		return nil, fmt.Errorf("%w: %s", errNoDevices, path)
	}

	return devices, nil
}

// address prefers the cli connection, then the first connection with an ip
// in file order.
func (d *testbedDevice) address(name string) (string, error) {
	if d.Connections.Kind != yaml.MappingNode {
		return name, nil
	}

	pairs := d.Connections.Content
	conns := make([]connection, 0, len(pairs)/2)

	for i := 0; i+1 < len(pairs); i += 2 {
		var c connection
		if pairs[i+1].Kind == yaml.MappingNode {
			if err := pairs[i+1].Decode(&c); err != nil {
				return "", err
			}
		}

		if pairs[i].Value == "cli" {
			if c.IP != "" {
				return c.IP, nil
			}

			if c.Host != "" {
				return c.Host, nil
			}
		}

		conns = append(conns, c)
	}

	for _, c := range conns {
		if c.IP != "" {
			return c.IP, nil
		}
	}

	return name, nil
}
