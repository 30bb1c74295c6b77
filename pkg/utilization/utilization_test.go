package utilization

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/carverauto/portaudit/pkg/models"
	"github.com/carverauto/portaudit/pkg/ports"
	"github.com/stretchr/testify/assert"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		active, total int
		want          float64
	}{
		{0, 0, 0},
		{3, 0, 0},
		{0, 48, 0},
		{48, 48, 100},
		{1, 3, 33.33},
		{2, 3, 66.67},
		{1, 8, 12.5},
		{17, 52, 32.69},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, Percent(tt.active, tt.total), 1e-9, "%d/%d", tt.active, tt.total)
	}
}

func TestPercentIgnoresOrder(t *testing.T) {
	states := []bool{true, false, true, true, false, false, true, false, false, true, true}

	count := func(s []bool) (active, total int) {
		for _, up := range s {
			total++
			if up {
				active++
			}
		}

		return active, total
	}

	want := Percent(count(states))

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		r.Shuffle(len(states), func(a, b int) { states[a], states[b] = states[b], states[a] })
		assert.InDelta(t, want, Percent(count(states)), 1e-9)
	}
}

func TestSummary(t *testing.T) {
	m := ports.NewMediaCounter()
	m.Add("10/100BaseTX")
	m.Add("1000BaseLX SFP")
	m.Add("10/100BaseTX")

	assert.Equal(t, "10/100BaseTX: 2, 1000BaseLX SFP: 1", Summary(m))
	assert.Equal(t, SummaryNone, Summary(ports.NewMediaCounter()))
	assert.Equal(t, SummaryNone, Summary(nil))
}

func TestMediaColumns(t *testing.T) {
	m := ports.NewMediaCounter()
	m.Add("10/100/1000BaseTX")
	m.Add("10/100/1000BaseTX")
	m.Add("1000BaseSX SFP")
	m.Add("10GBase-SR")

	got := MediaColumns(m, []string{"BaseTX", "SFP", "BaseLX"})
	assert.Equal(t, map[string]int{"BaseTX": 2, "SFP": 1, "BaseLX": 0}, got)
	assert.Nil(t, MediaColumns(m, nil))
}

func TestNewRow(t *testing.T) {
	p := ports.NewParser(models.DefaultPhysicalPrefixes(), models.DefaultStatusWords())
	s := p.Parse("Gi0/1 connected trunk a-full a-1000 10/100/1000BaseTX\nGi0/2 Home-Lab-sw01 notconnect 1 auto auto 10/100/1000BaseTX\n")

	row := NewRow("sw01", s, []string{"BaseTX"})

	assert.Equal(t, "sw01", row.Hostname)
	assert.Equal(t, 2, row.TotalPorts)
	assert.Equal(t, 1, row.ActivePorts)
	assert.InDelta(t, 50.0, row.UtilizationPercent, 1e-9)
	assert.Equal(t, "10/100/1000BaseTX: 1", row.MediaSummary)
	assert.Equal(t, map[string]int{"BaseTX": 1}, row.MediaColumns)
	assert.False(t, row.Failed)
}

func TestFailedRow(t *testing.T) {
	row := FailedRow("sw02", errors.New("dial tcp: timeout"), []string{"SFP"})

	assert.True(t, row.Failed)
	assert.Zero(t, row.TotalPorts)
	assert.Zero(t, row.ActivePorts)
	assert.Zero(t, row.UtilizationPercent)
	assert.Equal(t, SummaryUnavailable, row.MediaSummary)
	assert.Equal(t, map[string]int{"SFP": 0}, row.MediaColumns)
	assert.Equal(t, "dial tcp: timeout", row.Error)
}
