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

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const promptWidth = 40

// Prompter asks the operator one question and returns the typed answer.
type Prompter interface {
	Ask(title, body, placeholder string) (string, error)
}

type promptModel struct {
	input     textinput.Model
	title     string
	body      string
	answer    string
	done      bool
	cancelled bool
	styles    styles
}

func newPromptModel(title, body, placeholder string) *promptModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.Width = promptWidth
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaCyan))
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaForeground))
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaComment))

	return &promptModel{
		input:  ti,
		title:  title,
		body:   body,
		styles: newStyles(),
	}
}

func (*promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // Default case handles all unlisted keys
		switch keyMsg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true

			return m, tea.Quit
		case tea.KeyEnter:
			m.answer = strings.TrimSpace(m.input.Value())
			m.done = true

			return m, tea.Quit
		default:
		}
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m *promptModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var content strings.Builder

	content.WriteString(m.styles.title.Render(m.title) + "\n\n")

	if m.body != "" {
		content.WriteString(m.styles.body.Render(strings.TrimRight(m.body, "\n")) + "\n\n")
	}

	content.WriteString(m.input.View() + "\n\n")
	content.WriteString(m.styles.help.Render("Enter → confirm | Ctrl+C/Esc → cancel"))

	return m.styles.app.Align(lipgloss.Left).Render(content.String())
}

// TeaPrompter runs a bubbletea text prompt on the given terminal streams.
type TeaPrompter struct {
	In  io.Reader
	Out io.Writer
}

func (p *TeaPrompter) Ask(title, body, placeholder string) (string, error) {
	m := newPromptModel(title, body, placeholder)

	prog := tea.NewProgram(m, tea.WithInput(p.In), tea.WithOutput(p.Out))

	final, err := prog.Run()
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}

	if pm, ok := final.(*promptModel); !ok || pm.cancelled {
		return "", errPromptCancelled
	}

	return m.answer, nil
}
