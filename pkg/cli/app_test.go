package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/portaudit/pkg/inventory"
	"github.com/carverauto/portaudit/pkg/librenms"
	"github.com/carverauto/portaudit/pkg/logger"
	"github.com/carverauto/portaudit/pkg/models"
	"github.com/carverauto/portaudit/pkg/probe"
	"github.com/carverauto/portaudit/pkg/push"
	"github.com/carverauto/portaudit/pkg/report"
	"github.com/carverauto/portaudit/pkg/sshcli"
)

const statusOutput = `Port      Name               Status       Vlan       Duplex  Speed Type
Gi1/0/1                      connected    10         a-full  a-100 10/100BaseTX
Gi1/0/2                      notconnect   10           auto   auto 10/100BaseTX
`

func testApp(t *testing.T, prompter Prompter) (*App, *bytes.Buffer) {
	t.Helper()

	cfg := &models.Config{}
	require.NoError(t, cfg.Validate())

	var out bytes.Buffer

	app := NewApp(cfg, logger.NewTestLogger(), &out, prompter)
	app.loggers = func(string) logger.Logger { return logger.NewTestLogger() }

	return app, &out
}

func devices() []models.DeviceRecord {
	return []models.DeviceRecord{
		{Hostname: "sw01", IP: "10.0.0.1", OperatingSystem: "ios", HardwareModel: "C9300-24P", StatusCode: 1},
		{Hostname: "sw02", IP: "10.0.0.2", OperatingSystem: "iosxe", HardwareModel: "C9200L-24P-4G", StatusCode: 1},
		{Hostname: "sw03", IP: "10.0.0.3", OperatingSystem: "ios", HardwareModel: "C9300-24P", StatusCode: 0},
	}
}

func TestUtilizationCLIMode(t *testing.T) {
	app, out := testApp(t, nil)

	dir := t.TempDir()
	input := filepath.Join(dir, "devices.csv")
	output := filepath.Join(dir, "report.csv")
	require.NoError(t, os.WriteFile(input, []byte("hostname\nsw01\nsw02\nsw03\n"), 0o600))

	ctrl := gomock.NewController(t)
	directory := inventory.NewMockDirectory(ctrl)
	runner := sshcli.NewMockRunner(ctrl)

	directory.EXPECT().Devices(gomock.Any()).Return(devices(), nil)
	runner.EXPECT().Run(gomock.Any(), "sw01", gomock.Any()).Return(statusOutput, nil)
	runner.EXPECT().Run(gomock.Any(), "sw02", gomock.Any()).Return("", errors.New("timeout"))

	app.directory = directory
	app.runner = runner
	app.Config.Utilization.ConnectDelay = 0

	err := app.Run(t.Context(), &CmdConfig{SubCmd: subUtilization, Input: input, Output: output})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "sw01")

	rows, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(rows), "Hostname,Total Ports,Active Ports,Port Utilization %,Active Port Types\n")
	assert.Contains(t, string(rows), "sw01,2,1,50.00,10/100BaseTX: 1\n")
	assert.Contains(t, string(rows), "sw02,0,0,0.00,N/A\n")
	assert.NotContains(t, string(rows), "sw03")
}

func TestUtilizationAPIMode(t *testing.T) {
	app, _ := testApp(t, nil)

	dir := t.TempDir()
	input := filepath.Join(dir, "devices.csv")
	output := filepath.Join(dir, "report.csv")
	require.NoError(t, os.WriteFile(input, []byte("hostname\nsw01\n"), 0o600))

	ctrl := gomock.NewController(t)
	directory := inventory.NewMockDirectory(ctrl)
	source := probe.NewMockPortSource(ctrl)

	directory.EXPECT().Devices(gomock.Any()).Return(devices(), nil)
	source.EXPECT().Ports(gomock.Any(), "sw01").Return([]models.PortRecord{
		{Name: "Gi0/1", AdminStatus: models.Number(1), OperStatus: models.Number(1), Speed: models.Number(1e9)},
		{Name: "Gi0/2", AdminStatus: models.Number(1), OperStatus: models.Number(2), Speed: models.Number(1e9)},
		{Name: "Gi0/3", AdminStatus: models.Number(2), OperStatus: models.Number(2), Speed: models.Number(1e9)},
		{Name: "Lo0", InterfaceType: "softwareLoopback", AdminStatus: models.Number(1), OperStatus: models.Number(1)},
	}, nil)

	app.directory = directory
	app.apiPorts = source
	app.Config.Utilization.ConnectDelay = 0

	err := app.Utilization(t.Context(), &CmdConfig{Mode: "api", Input: input, Output: output, Columns: "SFP"})
	require.NoError(t, err)

	rows, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "Hostname,Total Ports,Active Ports,Port Utilization %\nsw01,3,1,33.33\n", string(rows))
}

func TestUtilizationFailsBeforeNetwork(t *testing.T) {
	app, _ := testApp(t, nil)

	input := filepath.Join(t.TempDir(), "devices.csv")
	require.NoError(t, os.WriteFile(input, []byte("name\nsw01\n"), 0o600))

	err := app.Utilization(t.Context(), &CmdConfig{Input: input})
	require.ErrorIs(t, err, report.ErrMissingHostnameColumn)

	require.NoError(t, os.WriteFile(input, []byte("hostname\nsw01\n"), 0o600))

	err = app.Utilization(t.Context(), &CmdConfig{Input: input})
	require.ErrorIs(t, err, librenms.ErrMissingToken)

	err = app.Utilization(t.Context(), &CmdConfig{Input: input, Mode: "bogus"})
	require.Error(t, err)
}

func TestTestbedCommand(t *testing.T) {
	app, out := testApp(t, nil)

	ctrl := gomock.NewController(t)
	directory := inventory.NewMockDirectory(ctrl)
	directory.EXPECT().Devices(gomock.Any()).Return(devices(), nil)
	app.directory = directory

	dir := t.TempDir()

	require.NoError(t, app.Run(t.Context(), &CmdConfig{SubCmd: subTestbed, OutputDir: dir}))

	assert.FileExists(t, filepath.Join(dir, "testbed_access_9300.yaml"))
	assert.FileExists(t, filepath.Join(dir, "testbed_access_9200.yaml"))
	assert.Contains(t, out.String(), "Total matched devices: 2")
}

func TestDevicesCommand(t *testing.T) {
	app, out := testApp(t, nil)

	ctrl := gomock.NewController(t)
	directory := inventory.NewMockDirectory(ctrl)
	directory.EXPECT().Devices(gomock.Any()).Return(devices(), nil).Times(2)
	app.directory = directory

	dir := t.TempDir()
	app.Config.Utilization.Input = filepath.Join(dir, "librenms_devices.xlsx")

	require.NoError(t, app.Run(t.Context(), &CmdConfig{SubCmd: subDevices}))

	assert.Contains(t, out.String(), "Retrieved 3 devices from LibreNMS")
	assert.Contains(t, out.String(), "INACTIVE")

	hosts, err := report.ReadHostnames(app.Config.Utilization.Input)
	require.NoError(t, err)
	assert.Equal(t, []string{"sw01", "sw02", "sw03"}, hosts)

	csvPath := filepath.Join(dir, "fleet.csv")
	require.NoError(t, app.Run(t.Context(), &CmdConfig{SubCmd: subDevices, Output: csvPath}))

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ID,hostname,IP,OS,Hardware,Status,Location,Last Ping\n")
	assert.Contains(t, string(data), "0,sw03,10.0.0.3,ios,C9300-24P,INACTIVE,,\n")
}

func TestDevicesCommandDirectoryFailure(t *testing.T) {
	app, _ := testApp(t, nil)

	ctrl := gomock.NewController(t)
	directory := inventory.NewMockDirectory(ctrl)
	directory.EXPECT().Devices(gomock.Any()).Return(nil, errors.New("unauthorized"))
	app.directory = directory

	output := filepath.Join(t.TempDir(), "devices.csv")

	err := app.Run(t.Context(), &CmdConfig{SubCmd: subDevices, Output: output})
	require.Error(t, err)
	assert.NoFileExists(t, output)
}

func writeGroup(t *testing.T, dir, name, device, ip string) {
	t.Helper()

	body := "devices:\n  " + device + ":\n    connections:\n      cli:\n        ip: " + ip + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
}

func TestPushInteractive(t *testing.T) {
	prompter := &scriptedPrompter{answers: []string{"1,2", "y"}}
	app, out := testApp(t, prompter)

	dir := t.TempDir()
	writeGroup(t, dir, "testbed_access_9200.yaml", "acc01", "10.0.0.1")
	writeGroup(t, dir, "testbed_access_9300.yaml", "acc02", "10.0.0.2")

	ctrl := gomock.NewController(t)
	runner := sshcli.NewMockRunner(ctrl)
	runner.EXPECT().Run(gomock.Any(), "10.0.0.1", gomock.Any()).Return("", nil)
	runner.EXPECT().Run(gomock.Any(), "10.0.0.2", gomock.Any()).Return("", errors.New("auth failed"))

	app.runner = runner
	app.Config.Push.Commands = "ip http server\n"

	tick := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	app.now = func() time.Time {
		tick = tick.Add(time.Second)

		return tick
	}

	require.NoError(t, app.Run(t.Context(), &CmdConfig{SubCmd: subPush, TestbedDir: dir}))

	assert.Len(t, prompter.asked, 2)
	assert.Contains(t, out.String(), "Success: 1")
	assert.Contains(t, out.String(), "Failed : 1")
	assert.Contains(t, out.String(), "Total runtime: 1.00 seconds")
}

func TestPushAborted(t *testing.T) {
	prompter := &scriptedPrompter{answers: []string{"n"}}
	app, out := testApp(t, prompter)
	app.Config.Push.Commands = "ip http server"

	require.NoError(t, app.Push(t.Context(), &CmdConfig{Groups: "0"}))

	assert.Contains(t, out.String(), "Aborted by user")
}

func TestPushErrors(t *testing.T) {
	app, _ := testApp(t, nil)

	err := app.Push(t.Context(), &CmdConfig{Groups: "1"})
	require.ErrorIs(t, err, push.ErrNoCommands)

	app.Config.Push.Commands = "ip http server"

	err = app.Push(t.Context(), &CmdConfig{Groups: "9"})
	require.ErrorIs(t, err, push.ErrInvalidSelection)

	err = app.Push(t.Context(), &CmdConfig{})
	require.ErrorIs(t, err, errNoPrompter)

	err = app.Push(t.Context(), &CmdConfig{Groups: "1", TestbedDir: t.TempDir()})
	require.Error(t, err)
}

func TestPushNonInteractiveCredentials(t *testing.T) {
	app, _ := testApp(t, nil)
	app.Config.Push.Commands = "ip http server"

	dir := t.TempDir()
	writeGroup(t, dir, "testbed_access_9200.yaml", "acc01", "10.0.0.1")

	err := app.Push(t.Context(), &CmdConfig{Groups: "1", TestbedDir: dir})
	require.ErrorIs(t, err, models.ErrMissingCredentials)
}
