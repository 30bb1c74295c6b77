package ports

import (
	"testing"

	"github.com/carverauto/portaudit/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestMostCommonTiesKeepFirstSeenOrder(t *testing.T) {
	m := NewMediaCounter()
	for _, label := range []string{"b", "a", "c", "a", "c", "d"} {
		m.Add(label)
	}

	assert.Equal(t, []models.MediaCount{
		{Type: "a", Count: 2},
		{Type: "c", Count: 2},
		{Type: "b", Count: 1},
		{Type: "d", Count: 1},
	}, m.MostCommon())
	assert.Equal(t, 4, m.Len())
}

func TestNilCounter(t *testing.T) {
	var m *MediaCounter

	assert.Zero(t, m.Len())
	assert.Nil(t, m.Entries())
	assert.Empty(t, m.MostCommon())
}

func TestZeroValueCounter(t *testing.T) {
	var m MediaCounter
	m.Add("x")

	assert.Equal(t, []models.MediaCount{{Type: "x", Count: 1}}, m.Entries())
}
