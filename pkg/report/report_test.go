package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/carverauto/portaudit/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestReadHostnamesCSV(t *testing.T) {
	path := writeFile(t, "devices.csv", "site,hostname,notes\nhq, sw01.example.net ,core\nhq,,spare\nbranch,sw02\n")

	hosts, err := ReadHostnames(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"sw01.example.net", "sw02"}, hosts)
}

func TestReadHostnamesMissingColumn(t *testing.T) {
	path := writeFile(t, "devices.csv", "Hostname,site\nsw01,hq\n")

	_, err := ReadHostnames(path)
	require.ErrorIs(t, err, ErrMissingHostnameColumn)

	empty := writeFile(t, "empty.csv", "")

	_, err = ReadHostnames(empty)
	require.ErrorIs(t, err, ErrMissingHostnameColumn)
}

func TestReadHostnamesUnsupported(t *testing.T) {
	_, err := ReadHostnames("devices.txt")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestReadHostnamesWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devices.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"hostname", "os"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"sw01", "ios"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"sw02", "iosxe"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	hosts, err := ReadHostnames(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"sw01", "sw02"}, hosts)
}

func sampleReport() *models.Report {
	return &models.Report{
		Mode: models.ProbeModeCLI,
		Rows: []models.UtilizationRow{
			{
				Hostname:           "sw01",
				TotalPorts:         4,
				ActivePorts:        3,
				UtilizationPercent: 75,
				MediaSummary:       "10/100BaseTX: 2, 1000BaseLX SFP: 1",
				MediaColumns:       map[string]int{"SFP": 1},
			},
			{Hostname: "sw02", MediaSummary: "N/A", Failed: true},
		},
	}
}

func TestLayoutHeader(t *testing.T) {
	assert.Equal(t,
		[]string{"Hostname", "Total Ports", "Active Ports", "Port Utilization %"},
		Layout{}.Header())

	assert.Equal(t,
		[]string{"Hostname", "Total Ports", "Active Ports", "Port Utilization %", "Active Port Types", "SFP"},
		Layout{MediaSummary: true, MediaColumns: []string{"SFP"}}.Header())
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	layout := Layout{MediaSummary: true, MediaColumns: []string{"SFP"}}

	require.NoError(t, Write(path, sampleReport(), layout))

	f, err := os.Open(path)
	require.NoError(t, err)

	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"sw01", "4", "3", "75.00", "10/100BaseTX: 2, 1000BaseLX SFP: 1", "1"}, rows[1])
	assert.Equal(t, []string{"sw02", "0", "0", "0.00", "N/A", "0"}, rows[2])
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	require.NoError(t, Write(path, sampleReport(), Layout{}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)

	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Port Utilization %", rows[0][3])
	assert.Equal(t, []string{"sw01", "4", "3", "75"}, rows[1])
}

func TestRender(t *testing.T) {
	out := Render(sampleReport(), Layout{MediaSummary: true})

	assert.Contains(t, out, "Hostname")
	assert.Contains(t, out, "sw01")
	assert.Contains(t, out, "75.00")
	assert.Contains(t, out, "N/A")
	assert.Equal(t, 1, strings.Count(out, "sw02"))
}

func listing() []models.DeviceRecord {
	return []models.DeviceRecord{
		{DeviceID: 12, Hostname: "sw01", IP: "10.0.0.1", OperatingSystem: "ios", HardwareModel: "C9300-24P", StatusCode: 1, Location: "HQ", LastPing: "2025-05-01 10:00:00"},
		{DeviceID: 13, Hostname: "sw02", IP: "10.0.0.2", OperatingSystem: "iosxe", StatusCode: 0},
	}
}

func TestRenderDevices(t *testing.T) {
	out := RenderDevices(listing())

	for _, want := range []string{"Last Ping", "sw01", "C9300-24P", "2025-05-01 10:00:00", StatusActive, StatusInactive} {
		assert.Contains(t, out, want)
	}
}

func TestDeviceStatus(t *testing.T) {
	assert.Equal(t, "ACTIVE", DeviceStatus(models.DeviceStatusUp))
	assert.Equal(t, "INACTIVE", DeviceStatus(models.DeviceStatusDown))
	assert.Equal(t, "INACTIVE", DeviceStatus(2))
}

func TestWriteDevicesFeedsHostnames(t *testing.T) {
	for _, name := range []string{"devices.xlsx", "devices.csv"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, WriteDevices(path, listing()))

			hosts, err := ReadHostnames(path)
			require.NoError(t, err)
			assert.Equal(t, []string{"sw01", "sw02"}, hosts)
		})
	}
}

func TestWriteDevicesWorkbookCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devices.xlsx")
	require.NoError(t, WriteDevices(path, listing()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)

	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, DeviceHeader(), rows[0])
	assert.Equal(t, []string{"12", "sw01", "10.0.0.1", "ios", "C9300-24P", "ACTIVE", "HQ", "2025-05-01 10:00:00"}, rows[1])

	typ, err := f.GetCellType("Sheet1", "A2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, typ)
}
