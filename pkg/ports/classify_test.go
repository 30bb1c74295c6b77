package ports

import (
	"encoding/json"
	"testing"

	"github.com/carverauto/portaudit/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodePorts(t *testing.T, raw string) []models.PortRecord {
	t.Helper()

	var recs []models.PortRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &recs))

	return recs
}

func TestAdminOperSpeed(t *testing.T) {
	recs := decodePorts(t, `[
		{"ifName": "Gi0/1", "ifAdminStatus": 1, "ifOperStatus": 1, "ifSpeed": 100000000, "deleted": 0, "ifType": "ethernetCsmacd"},
		{"ifName": "Gi0/2", "ifAdminStatus": 1, "ifOperStatus": 1, "ifSpeed": "", "deleted": 0, "ifType": "ethernetCsmacd"},
		{"ifName": "Gi0/3", "ifAdminStatus": "1", "ifOperStatus": "1", "ifSpeed": "1000000000.0"},
		{"ifName": "Gi0/4", "ifAdminStatus": "up", "ifOperStatus": "up", "ifSpeed": 1000000000},
		{"ifName": "Gi0/5", "ifAdminStatus": 1, "ifOperStatus": 2, "ifSpeed": 1000000000},
		{"ifName": "Gi0/6", "ifAdminStatus": 1, "ifOperStatus": 1, "ifSpeed": 1000000000, "deleted": 1},
		{"ifName": "Gi0/7", "ifAdminStatus": 1, "ifOperStatus": 1, "ifSpeed": 1000000000, "deleted": "x"},
		{"ifName": "Gi0/8"}
	]`)

	c := NewClassifier(DefaultExclusions(), nil)
	want := []bool{true, false, true, false, false, false, true, false}

	for i := range recs {
		assert.Equal(t, want[i], c.Active(&recs[i]), recs[i].Name)
		assert.True(t, c.Counted(&recs[i]), recs[i].Name)
	}

	s := c.Tally(recs)
	assert.Equal(t, 8, s.TotalPorts)
	assert.Equal(t, 3, s.ActivePorts)
}

func TestUnparsableSpeedIsInactiveUnderEveryStatus(t *testing.T) {
	for _, speed := range []string{`""`, `"fast"`, `null`, `0`, `"-5"`} {
		recs := decodePorts(t, `[{"ifName":"Gi0/1","ifAdminStatus":1,"ifOperStatus":1,"ifSpeed":`+speed+`}]`)
		assert.False(t, AdminOperSpeed{}.Active(&recs[0]), speed)
	}
}

func TestExclusions(t *testing.T) {
	recs := decodePorts(t, `[
		{"ifName": "Vlan10", "ifType": "propVirtual"},
		{"ifName": "Gi0/1", "ifType": "vlan"},
		{"ifName": "Vl20"},
		{"ifName": "", "ifDescr": "Loopback0"},
		{"ifName": "x", "ifType": "softwareLoopback"},
		{"ifName": "Null0"},
		{"ifName": "Port-channel1", "ifType": "ieee8023adLag"},
		{"ifName": "Po2"},
		{"ifName": "Gi0/2", "ifType": "ethernetCsmacd"}
	]`)

	defaults := DefaultExclusions()

	var counted []string

	for i := range recs {
		if !defaults.Excluded(&recs[i]) {
			counted = append(counted, recs[i].DisplayName())
		}
	}

	assert.Equal(t, []string{"Port-channel1", "Po2", "Gi0/2"}, counted)

	withLag := defaults
	withLag.PortChannels = true
	assert.True(t, withLag.Excluded(&recs[6]))
	assert.True(t, withLag.Excluded(&recs[7]))

	none := ExclusionPolicy{}
	assert.False(t, none.Excluded(&recs[0]))
	assert.False(t, none.Excluded(&recs[1]))
}

func TestVLANExclusionAffectsBothCounts(t *testing.T) {
	recs := decodePorts(t, `[
		{"ifName": "Vlan1", "ifType": "vlan", "ifAdminStatus": 1, "ifOperStatus": 1, "ifSpeed": 1000000000},
		{"ifName": "Gi0/1", "ifType": "ethernetCsmacd", "ifAdminStatus": 1, "ifOperStatus": 1, "ifSpeed": 1000000000}
	]`)

	s := NewClassifier(DefaultExclusions(), AdminOperSpeed{}).Tally(recs)
	assert.Equal(t, 1, s.TotalPorts)
	assert.Equal(t, 1, s.ActivePorts)

	s = NewClassifier(ExclusionPolicy{}, AdminOperSpeed{}).Tally(recs)
	assert.Equal(t, 2, s.TotalPorts)
	assert.Equal(t, 2, s.ActivePorts)
}

func TestAdminOperUp(t *testing.T) {
	recs := decodePorts(t, `[
		{"ifAdminStatus": "up", "ifOperStatus": "UP"},
		{"ifAdminStatus": "up", "ifOperStatus": "down"},
		{"ifAdminStatus": 1, "ifOperStatus": 1}
	]`)

	p := AdminOperUp{}
	assert.True(t, p.Active(&recs[0]))
	assert.False(t, p.Active(&recs[1]))
	assert.False(t, p.Active(&recs[2]))
}

func TestTrafficHeuristic(t *testing.T) {
	recs := decodePorts(t, `[
		{"ifAdminStatus": 1, "ifOperStatus": 1},
		{"ifAdminStatus": 2, "ifOperStatus": "up"},
		{"ifAdminStatus": 2, "ifOperStatus": 2, "ifInOctets_rate": "12"},
		{"ifAdminStatus": 2, "ifOperStatus": 2, "ifOutOctets_rate": 0.5},
		{"ifAdminStatus": 2, "ifOperStatus": 2, "ifInOctets_rate": 0, "ifOutOctets_rate": "n/a"}
	]`)

	p := TrafficHeuristic{}
	want := []bool{true, true, true, true, false}

	for i := range recs {
		assert.Equal(t, want[i], p.Active(&recs[i]), i)
	}
}

func TestPolicyByName(t *testing.T) {
	for _, name := range []string{"", models.PolicyAdminOperSpeed, models.PolicyAdminOperUp, models.PolicyTraffic} {
		p, err := PolicyByName(name)
		require.NoError(t, err)

		if name != "" {
			assert.Equal(t, name, p.Name())
		}
	}

	_, err := PolicyByName("vibes")
	require.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestTallyLeavesMediaEmpty(t *testing.T) {
	recs := decodePorts(t, `[
		{"ifName": "Gi0/1", "ifAdminStatus": 1, "ifOperStatus": 1, "ifSpeed": 1, "media_type": "10/100BaseTX"},
		{"ifName": "Gi0/2", "ifAdminStatus": 1, "ifOperStatus": 1, "ifSpeed": 1}
	]`)

	s := NewClassifier(DefaultExclusions(), nil).Tally(recs)
	assert.Equal(t, 2, s.ActivePorts)
	require.NotNil(t, s.Media)
	assert.Equal(t, 0, s.Media.Len())
}

func TestExclusionsFromConfig(t *testing.T) {
	on := true
	off := false

	got := ExclusionsFromConfig(models.ExclusionConfig{VLANs: &off, PortChannels: &on})
	assert.Equal(t, ExclusionPolicy{VLANs: false, Loopbacks: true, Null: true, PortChannels: true}, got)
}
