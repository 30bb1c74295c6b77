package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceRecordUnmarshal(t *testing.T) {
	var devices []DeviceRecord

	require.NoError(t, json.Unmarshal([]byte(`[
		{"device_id": 7, "hostname": "sw01.lab.example", "os": "ios", "status": 1, "hardware": "C9200L-24P-4G"},
		{"device_id": "8", "hostname": "sw02", "os": "iosxe", "status": "1"},
		{"device_id": 9, "hostname": "sw03", "os": "ios", "status": true},
		{"device_id": 10, "hostname": "sw04", "os": "ios"},
		{"device_id": 11, "hostname": "sw05", "os": "ios", "status": "unknown"}
	]`), &devices))

	require.Len(t, devices, 5)

	assert.Equal(t, 7, devices[0].DeviceID)
	assert.Equal(t, DeviceStatusUp, devices[0].StatusCode)
	assert.Equal(t, "sw01", devices[0].Alias())
	assert.Equal(t, "C9200L-24P-4G", devices[0].HardwareModel)

	assert.Equal(t, 8, devices[1].DeviceID)
	assert.Equal(t, DeviceStatusUp, devices[1].StatusCode)
	assert.Equal(t, DeviceStatusUp, devices[2].StatusCode)

	// missing or unreadable status never counts as up
	assert.Equal(t, DeviceStatusDown, devices[3].StatusCode)
	assert.Equal(t, DeviceStatusDown, devices[4].StatusCode)
}

func TestPortRecordDisplayName(t *testing.T) {
	p := PortRecord{Descr: " GigabitEthernet0/1 "}
	assert.Equal(t, "GigabitEthernet0/1", p.DisplayName())

	p.Name = "Gi0/1"
	assert.Equal(t, "Gi0/1", p.DisplayName())
}

func TestPushResultStatus(t *testing.T) {
	assert.Equal(t, "OK", PushResult{OK: true}.Status())
	assert.Equal(t, "NOT OK", PushResult{}.Status())
}

func TestReportFailures(t *testing.T) {
	r := NewReport(ProbeModeCLI, testTime)
	r.Rows = []UtilizationRow{{Hostname: "a"}, {Hostname: "b", Failed: true}}

	assert.Equal(t, 1, r.Failures())
	assert.NotEqual(t, r.RunID, NewReport(ProbeModeCLI, testTime).RunID)
}
