package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/portaudit/pkg/logger"
	"github.com/carverauto/portaudit/pkg/models"
)

func TestParseFlagsUtilization(t *testing.T) {
	cfg, err := ParseFlags([]string{"utilization", "-mode", "api", "-input", "devices.csv", "-workers", "8", "-columns", "BaseTX, SFP"})
	require.NoError(t, err)

	assert.Equal(t, "utilization", cfg.SubCmd)
	assert.Equal(t, "api", cfg.Mode)
	assert.Equal(t, "devices.csv", cfg.Input)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, defaultConfigFile, cfg.ConfigFile)
	assert.Equal(t, []string{"BaseTX", "SFP"}, splitList(cfg.Columns))
}

func TestParseFlagsPush(t *testing.T) {
	cfg, err := ParseFlags([]string{"push", "-config", "lab.json", "-groups", "1,2", "-yes"})
	require.NoError(t, err)

	assert.Equal(t, "lab.json", cfg.ConfigFile)
	assert.Equal(t, "1,2", cfg.Groups)
	assert.True(t, cfg.Yes)
}

func TestParseFlagsDevices(t *testing.T) {
	cfg, err := ParseFlags([]string{"devices", "-output", "fleet.csv", "-no-export"})
	require.NoError(t, err)

	assert.Equal(t, "devices", cfg.SubCmd)
	assert.Equal(t, "fleet.csv", cfg.Output)
	assert.True(t, cfg.NoExport)
}

func TestParseFlagsErrors(t *testing.T) {
	cfg, err := ParseFlags(nil)
	require.ErrorIs(t, err, errNoSubcommand)
	assert.True(t, cfg.Help)

	_, err = ParseFlags([]string{"frobnicate"})
	require.ErrorIs(t, err, errUnknownSubcommand)

	_, err = ParseFlags([]string{"testbed", "-bogus"})
	require.Error(t, err)

	cfg, err = ParseFlags([]string{"--help"})
	require.NoError(t, err)
	assert.True(t, cfg.Help)

	cfg, err = ParseFlags([]string{"version"})
	require.NoError(t, err)
	assert.True(t, cfg.Version)
}

func TestShowHelp(t *testing.T) {
	var buf bytes.Buffer

	ShowHelp(&buf)

	assert.Contains(t, buf.String(), "portaudit utilization")
	assert.Contains(t, buf.String(), TokenEnv)
}

func TestPromptModel(t *testing.T) {
	m := newPromptModel("Select target groups", "0) ALL groups\n", "e.g. 1,2")

	assert.Contains(t, m.View(), "Select target groups")

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(" 1,2 ")})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.True(t, m.done)
	assert.Equal(t, "1,2", m.answer)
	assert.Empty(t, m.View())
}

func TestPromptModelCancel(t *testing.T) {
	m := newPromptModel("Continue?", "", "y/n")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.True(t, m.cancelled)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "")
	t.Setenv(TokenEnv, "from-env")

	cfg, err := LoadConfig(t.Context(), defaultConfigFile, logger.NewTestLogger())
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.LibreNMS.APIToken)
	assert.Equal(t, models.ProbeModeCLI, cfg.Utilization.Mode)
	assert.Equal(t, 5, cfg.Utilization.Workers)
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "")
	t.Setenv(TokenEnv, "from-env")

	path := filepath.Join(t.TempDir(), "lab.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"librenms": {"endpoint": "https://nms.example", "api_token": "from-file"},
		"utilization": {"mode": "api", "workers": 3}
	}`), 0o600))

	cfg, err := LoadConfig(t.Context(), path, logger.NewTestLogger())
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.LibreNMS.APIToken)
	assert.Equal(t, models.ProbeModeAPI, cfg.Utilization.Mode)
	assert.Equal(t, 3, cfg.Utilization.Workers)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "")

	_, err := LoadConfig(t.Context(), filepath.Join(t.TempDir(), "nope.json"), logger.NewTestLogger())
	require.Error(t, err)
}

type scriptedPrompter struct {
	answers []string
	asked   []string
}

func (s *scriptedPrompter) Ask(title, _, _ string) (string, error) {
	s.asked = append(s.asked, title)

	if len(s.answers) == 0 {
		return "", errors.New("unexpected prompt")
	}

	a := s.answers[0]
	s.answers = s.answers[1:]

	return a, nil
}
