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
	"encoding/json"
	"fmt"
	"time"

	"github.com/carverauto/portaudit/pkg/logger"
)

const (
	defaultEndpoint       = "http://localhost:8081"
	defaultHTTPTimeout    = 20 * time.Second
	defaultWorkers        = 5
	defaultConnectDelay   = 200 * time.Millisecond
	defaultDebugLimit     = 25
	defaultSSHPort        = 22
	defaultConnectTimeout = 20 * time.Second
	defaultReadTimeout    = 25 * time.Second
	defaultSNMPPort       = 161
	defaultSNMPTimeout    = 5 * time.Second
	defaultSNMPRetries    = 1
	defaultStatusCommand  = "show interfaces status"
	defaultSaveCommand    = "write memory"
	defaultInputFile      = "librenms_devices.xlsx"
	defaultOutputFile     = "ssh_device_ports_status.xlsx"
	defaultNetType        = "accessctrl-techit"
	defaultNetmikoType    = "cisco_ios"
	defaultNATSStream     = "PORTAUDIT"
	defaultNATSSubject    = "portaudit.utilization"
	defaultInfluxDatabase = "portaudit"
	defaultMeasurement    = "port_utilization"
	defaultPostgresTable  = "port_utilization"

	// Policy names accepted by utilization.policy.
	PolicyAdminOperSpeed = "admin_oper_speed"
	PolicyAdminOperUp    = "admin_oper_up"
	PolicyTraffic        = "traffic"
)

// Duration is a time.Duration that reads "20s" style strings from JSON.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		// parse numeric as nanoseconds
		*d = Duration(time.Duration(value))
		return nil
	case string:
		dur, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}

		*d = Duration(dur)

		return nil
	default:
		return errInvalidDuration
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Config is the single configuration document of the portaudit binary.
type Config struct {
	Logging     *logger.Config    `json:"logging"`
	LibreNMS    LibreNMSConfig    `json:"librenms"`
	Utilization UtilizationConfig `json:"utilization"`
	SSH         SSHConfig         `json:"ssh"`
	SNMP        SNMPConfig        `json:"snmp"`
	Testbed     TestbedConfig     `json:"testbed"`
	Push        PushConfig        `json:"push"`
	Publish     PublishConfig     `json:"publish"`
}

// LibreNMSConfig points at the monitoring REST API.
type LibreNMSConfig struct {
	Endpoint  string   `json:"endpoint"`
	APIToken  string   `json:"api_token"`
	VerifyTLS bool     `json:"verify_tls"`
	Timeout   Duration `json:"timeout"`
}

// DeviceFilterConfig selects which directory devices are probed.
type DeviceFilterConfig struct {
	OperatingSystems []string `json:"operating_systems"`
	// Loose accepts any status other than down instead of requiring up.
	Loose bool `json:"loose"`
}

// ExclusionConfig toggles the interface families left out of port counts.
type ExclusionConfig struct {
	VLANs        *bool `json:"vlans,omitempty"`
	Loopbacks    *bool `json:"loopbacks,omitempty"`
	Null         *bool `json:"null,omitempty"`
	PortChannels *bool `json:"port_channels,omitempty"`
}

// UtilizationConfig drives the port utilization report.
type UtilizationConfig struct {
	Mode             ProbeMode          `json:"mode"`
	Input            string             `json:"input"`
	Output           string             `json:"output"`
	Workers          int                `json:"workers"`
	ConnectDelay     Duration           `json:"connect_delay"`
	Policy           string             `json:"policy"`
	Exclusions       ExclusionConfig    `json:"exclusions"`
	PhysicalPrefixes []string           `json:"physical_prefixes"`
	StatusWords      []string           `json:"status_words"`
	MediaColumns     []string           `json:"media_columns"`
	Filter           DeviceFilterConfig `json:"filter"`
	DebugHost        string             `json:"debug_host"`
	DebugLimit       int                `json:"debug_limit"`
}

// SSHConfig holds CLI session settings shared by probing and pushing.
type SSHConfig struct {
	Username       string   `json:"username"`
	Password       string   `json:"password"`
	Port           int      `json:"port"`
	ConnectTimeout Duration `json:"connect_timeout"`
	ReadTimeout    Duration `json:"read_timeout"`
	Command        string   `json:"command"`
	SaveCommand    string   `json:"save_command"`
}

// SNMPConfig holds ifTable polling settings.
type SNMPConfig struct {
	Community string   `json:"community"`
	Version   string   `json:"version"`
	Port      uint16   `json:"port"`
	Timeout   Duration `json:"timeout"`
	Retries   int      `json:"retries"`
}

// HardwareFamily maps a family name to the hardware model substrings it covers.
type HardwareFamily struct {
	Name   string   `json:"name"`
	Models []string `json:"models"`
}

// TestbedConfig drives testbed generation.
type TestbedConfig struct {
	OutputDir        string           `json:"output_dir"`
	Template         string           `json:"template"`
	NetType          string           `json:"net_type"`
	NetmikoType      string           `json:"netmiko_type"`
	OperatingSystems []string         `json:"operating_systems"`
	Families         []HardwareFamily `json:"families"`
}

// PushConfig drives the bulk configuration push.
type PushConfig struct {
	Commands     string   `json:"commands"`
	CommandsFile string   `json:"commands_file"`
	Groups       []string `json:"groups"`
	Workers      int      `json:"workers"`
}

// NATSSinkConfig publishes rows to JetStream.
type NATSSinkConfig struct {
	URL           string `json:"url"`
	Stream        string `json:"stream"`
	SubjectPrefix string `json:"subject_prefix"`
}

// InfluxSinkConfig writes rows as InfluxDB 1.x points.
type InfluxSinkConfig struct {
	URL         string `json:"url"`
	Database    string `json:"database"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	Measurement string `json:"measurement"`
}

// PostgresSinkConfig stores rows in a PostgreSQL table.
type PostgresSinkConfig struct {
	DSN   string `json:"dsn"`
	Table string `json:"table"`
}

// PublishConfig lists the optional report sinks. A nil entry is disabled.
type PublishConfig struct {
	NATS     *NATSSinkConfig     `json:"nats,omitempty"`
	Influx   *InfluxSinkConfig   `json:"influx,omitempty"`
	Postgres *PostgresSinkConfig `json:"postgres,omitempty"`
}

// DefaultStatusWords are the `show interfaces status` states recognised as the
// anchor token of a port line.
func DefaultStatusWords() []string {
	return []string{"connected", "notconnect", "disabled", "err-disabled", "inactive", "monitoring", "sfpAbsent"}
}

// DefaultPhysicalPrefixes are the interface name prefixes counted as ports.
func DefaultPhysicalPrefixes() []string {
	return []string{"Fa", "Gi", "Te", "Po"}
}

// DefaultHardwareFamilies is the Catalyst, ISR and Nexus family table.
func DefaultHardwareFamilies() []HardwareFamily {
	return []HardwareFamily{
		{Name: "access_9200", Models: []string{"C9200-24P", "C9200-48P", "C9200L-24P-4G", "C9200L-48P-4G", "C9200CX-8P-2X2G"}},
		{Name: "access_9300", Models: []string{"C9300-24P", "C9300-48UXM", "C9300X-24Y"}},
		{Name: "core_9500", Models: []string{"C9500-16X"}},
		{Name: "access_2960", Models: []string{"WS-C2960C-8PC-L", "WS-C2960X-24PS-L"}},
		{Name: "industrial", Models: []string{"IE-2000-8TC-G-B"}},
		{Name: "routers", Models: []string{"ISR4431/K9", "ISR4451-X/K9"}},
		{Name: "datacenter_n9k", Models: []string{"N9K-C92348GC-X"}},
	}
}

// DefaultPushGroups is the numbered device group catalogue offered by push.
func DefaultPushGroups() []string {
	return []string{
		"testbed_access_9200.yaml",
		"testbed_access_9300.yaml",
		"testbed_access_2960.yaml",
		"testbed_datacenter_n9k.yaml",
		"testbed_routers.yaml",
		"testbed_industrial.yaml",
		"testbed_core_9500.yaml",
	}
}

// Validate fills defaults and rejects values no pipeline can run with.
func (c *Config) Validate() error {
	if c.LibreNMS.Endpoint == "" {
		c.LibreNMS.Endpoint = defaultEndpoint
	}

	if c.LibreNMS.Timeout <= 0 {
		c.LibreNMS.Timeout = Duration(defaultHTTPTimeout)
	}

	if err := c.Utilization.validate(); err != nil {
		return err
	}

	c.SSH.applyDefaults()
	c.SNMP.applyDefaults()
	c.Testbed.applyDefaults()

	if c.Push.Workers <= 0 {
		c.Push.Workers = defaultWorkers
	}

	if len(c.Push.Groups) == 0 {
		c.Push.Groups = DefaultPushGroups()
	}

	return c.Publish.validate()
}

func (u *UtilizationConfig) validate() error {
	switch u.Mode {
	case "":
		u.Mode = ProbeModeCLI
	case ProbeModeAPI, ProbeModeCLI, ProbeModeSNMP:
	default:
		return fmt.Errorf("%w: %q", errInvalidMode, u.Mode)
	}

	switch u.Policy {
	case "":
		u.Policy = PolicyAdminOperSpeed
	case PolicyAdminOperSpeed, PolicyAdminOperUp, PolicyTraffic:
	default:
		return fmt.Errorf("%w: %q", errInvalidPolicy, u.Policy)
	}

	if u.Workers < 0 {
		return fmt.Errorf("%w: %d", errInvalidWorkers, u.Workers)
	}

	if u.Workers == 0 {
		u.Workers = defaultWorkers
	}

	if u.ConnectDelay < 0 {
		u.ConnectDelay = 0
	} else if u.ConnectDelay == 0 {
		u.ConnectDelay = Duration(defaultConnectDelay)
	}

	if u.Input == "" {
		u.Input = defaultInputFile
	}

	if u.Output == "" {
		u.Output = defaultOutputFile
	}

	if len(u.PhysicalPrefixes) == 0 {
		u.PhysicalPrefixes = DefaultPhysicalPrefixes()
	}

	if len(u.StatusWords) == 0 {
		u.StatusWords = DefaultStatusWords()
	}

	if len(u.Filter.OperatingSystems) == 0 {
		u.Filter.OperatingSystems = []string{"ios", "iosxe"}
	}

	if u.DebugLimit <= 0 {
		u.DebugLimit = defaultDebugLimit
	}

	u.Exclusions.applyDefaults()

	return nil
}

func (e *ExclusionConfig) applyDefaults() {
	setDefault := func(p **bool, v bool) {
		if *p == nil {
			*p = &v
		}
	}

	setDefault(&e.VLANs, true)
	setDefault(&e.Loopbacks, true)
	setDefault(&e.Null, true)
	setDefault(&e.PortChannels, false)
}

func (s *SSHConfig) applyDefaults() {
	if s.Port == 0 {
		s.Port = defaultSSHPort
	}

	if s.ConnectTimeout <= 0 {
		s.ConnectTimeout = Duration(defaultConnectTimeout)
	}

	if s.ReadTimeout <= 0 {
		s.ReadTimeout = Duration(defaultReadTimeout)
	}

	if s.Command == "" {
		s.Command = defaultStatusCommand
	}

	if s.SaveCommand == "" {
		s.SaveCommand = defaultSaveCommand
	}
}

// Credentials reports whether a username and password are configured.
func (s *SSHConfig) Credentials() error {
	if s.Username == "" || s.Password == "" {
		return ErrMissingCredentials
	}

	return nil
}

func (s *SNMPConfig) applyDefaults() {
	if s.Community == "" {
		s.Community = "public"
	}

	if s.Version == "" {
		s.Version = "v2c"
	}

	if s.Port == 0 {
		s.Port = defaultSNMPPort
	}

	if s.Timeout <= 0 {
		s.Timeout = Duration(defaultSNMPTimeout)
	}

	if s.Retries <= 0 {
		s.Retries = defaultSNMPRetries
	}
}

func (t *TestbedConfig) applyDefaults() {
	if t.OutputDir == "" {
		t.OutputDir = "."
	}

	if t.NetType == "" {
		t.NetType = defaultNetType
	}

	if t.NetmikoType == "" {
		t.NetmikoType = defaultNetmikoType
	}

	if len(t.OperatingSystems) == 0 {
		t.OperatingSystems = []string{"ios", "iosxe", "nxos"}
	}

	if len(t.Families) == 0 {
		t.Families = DefaultHardwareFamilies()
	}
}

func (p *PublishConfig) validate() error {
	if p.NATS != nil {
		if p.NATS.URL == "" {
			return fmt.Errorf("%w: nats.url", errMissingSinkField)
		}

		if p.NATS.Stream == "" {
			p.NATS.Stream = defaultNATSStream
		}

		if p.NATS.SubjectPrefix == "" {
			p.NATS.SubjectPrefix = defaultNATSSubject
		}
	}

	if p.Influx != nil {
		if p.Influx.URL == "" {
			return fmt.Errorf("%w: influx.url", errMissingSinkField)
		}

		if p.Influx.Database == "" {
			p.Influx.Database = defaultInfluxDatabase
		}

		if p.Influx.Measurement == "" {
			p.Influx.Measurement = defaultMeasurement
		}
	}

	if p.Postgres != nil {
		if p.Postgres.DSN == "" {
			return fmt.Errorf("%w: postgres.dsn", errMissingSinkField)
		}

		if p.Postgres.Table == "" {
			p.Postgres.Table = defaultPostgresTable
		}
	}

	return nil
}
