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

// Package testbed renders per-family device testbed files from the monitoring
// directory.
package testbed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/carverauto/portaudit/pkg/inventory"
	"github.com/carverauto/portaudit/pkg/logger"
	"github.com/carverauto/portaudit/pkg/models"
	"go.yaml.in/yaml/v3"
)

//go:embed templates/pyats_testbed.yaml.tmpl
var defaultTemplate string

// LocationUnknown is used when the directory has no location for a device.
const LocationUnknown = "unknown"

// Entry is one device of a testbed file.
type Entry struct {
	Name        string `json:"dev_name"`
	Alias       string `json:"dev_alias"`
	OS          string `json:"dev_os"`
	IP          string `json:"dev_ip"`
	Location    string `json:"dev_net_location"`
	NetType     string `json:"dev_net_type"`
	NetmikoType string `json:"dev_netmiko_type"`
	Model       string `json:"dev_model"`
	Family      string `json:"dev_family"`
	Version     string `json:"-"`
}

// Group is the inventory of one hardware family, the data a template sees.
type Group struct {
	Family    string
	Inventory []Entry
}

// FileName returns the testbed file name of a family.
func FileName(family string) string {
	return "testbed_" + family + ".yaml"
}

// Generator builds testbed files.
type Generator struct {
	directory  inventory.Directory
	filter     *inventory.Filter
	classifier *inventory.Classifier
	tmpl       *template.Template
	cfg        *models.TestbedConfig
	logger     logger.Logger
	listing    io.Writer
}

// NewGenerator parses the configured template, or the built-in pyATS one.
// The device listing is printed to listing when it is not nil.
func NewGenerator(dir inventory.Directory, cfg *models.TestbedConfig, listing io.Writer, log logger.Logger) (*Generator, error) {
	text := defaultTemplate
	name := "pyats_testbed"

	if cfg.Template != "" {
		b, err := os.ReadFile(cfg.Template)
		if err != nil {
			return nil, fmt.Errorf("failed to read testbed template: %w", err)
		}

		text = string(b)
		name = filepath.Base(cfg.Template)
	}

	tmpl, err := template.New(name).Option("missingkey=error").Funcs(template.FuncMap{"yaml": Scalar}).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse testbed template: %w", err)
	}

	return &Generator{
		directory:  dir,
		filter:     inventory.NewFilter(models.DeviceFilterConfig{OperatingSystems: cfg.OperatingSystems, Loose: true}),
		classifier: inventory.NewClassifier(cfg.Families),
		tmpl:       tmpl,
		cfg:        cfg,
		logger:     log,
		listing:    listing,
	}, nil
}

// Entries selects the devices that run a listed OS, are not down and whose
// hardware belongs to a known family.
func (g *Generator) Entries(devices []models.DeviceRecord) []Entry {
	var out []Entry

	for i := range devices {
		d := &devices[i]
		if !g.filter.Match(d) || !g.classifier.Matches(d.HardwareModel) {
			continue
		}

		location := strings.TrimSpace(d.Location)
		if location == "" {
			location = LocationUnknown
		}

		out = append(out, Entry{
			Name:        d.Hostname,
			Alias:       d.Alias(),
			OS:          d.OperatingSystem,
			IP:          d.IP,
			Location:    location,
			NetType:     g.cfg.NetType,
			NetmikoType: g.cfg.NetmikoType,
			Model:       d.HardwareModel,
			Family:      g.classifier.Classify(d.HardwareModel),
			Version:     d.Version,
		})
	}

	return out
}

// Groups splits entries by family in first-seen order.
func Groups(entries []Entry) []Group {
	var (
		out   []Group
		index = make(map[string]int)
	)

	for _, e := range entries {
		i, ok := index[e.Family]
		if !ok {
			i = len(out)
			index[e.Family] = i
			out = append(out, Group{Family: e.Family})
		}

		out[i].Inventory = append(out[i].Inventory, e)
	}

	return out
}

// Scalar renders v as a double-quoted YAML scalar on a single line, so
// directory values cannot break the structure of a testbed file.
// Templates call it as {{ yaml .Field }}.
func Scalar(v string) (string, error) {
	b, err := yaml.Marshal(&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v, Style: yaml.DoubleQuotedStyle})
	if err != nil {
		return "", err
	}

	return strings.TrimRight(string(b), "\n"), nil
}

// Render executes the template for one group.
func (g *Generator) Render(group Group) ([]byte, error) {
	var buf bytes.Buffer

	if err := g.tmpl.Execute(&buf, group); err != nil {
		return nil, fmt.Errorf("failed to render testbed %s: %w", group.Family, err)
	}

	return buf.Bytes(), nil
}

// Generate writes one testbed file per known family and returns their paths.
func (g *Generator) Generate(ctx context.Context) ([]string, error) {
	devices, err := g.directory.Devices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	g.logger.Debug().Strs("families", g.classifier.Families()).Int("devices", len(devices)).
		Msg("Classifying directory devices")

	entries := g.Entries(devices)
	g.list(entries)

	if err := os.MkdirAll(g.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var paths []string

	for _, group := range Groups(entries) {
		g.logger.Info().Str("family", group.Family).Int("devices", len(group.Inventory)).Msg("Family inventory")

		if group.Family == inventory.FamilyUnknown {
			continue
		}

		data, err := g.Render(group)
		if err != nil {
			return paths, err
		}

		path := filepath.Join(g.cfg.OutputDir, FileName(group.Family))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", path, err)
		}

		g.logger.Info().Str("path", path).Msg("Testbed generated")

		paths = append(paths, path)
	}

	return paths, nil
}

func (g *Generator) list(entries []Entry) {
	if g.listing == nil {
		return
	}

	fmt.Fprintln(g.listing, "Alias,IP,PID,Version")

	for _, e := range entries {
		fmt.Fprintf(g.listing, "%s,%s,%s,%s\n", e.Alias, e.IP, e.Model, e.Version)
	}

	fmt.Fprintf(g.listing, "\nTotal matched devices: %d\n\n", len(entries))
}
