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

// Package ports decides which interfaces are ports and which of them are in use,
// from structured port records or from `show interfaces status` text.
package ports

import (
	"iter"
	"slices"
	"strings"

	"github.com/carverauto/portaudit/pkg/logger"
	"github.com/carverauto/portaudit/pkg/models"
)

const (
	// StatusConnected is the only CLI status that counts a port as active.
	StatusConnected = "connected"

	headerToken = "Port"
	// status vlan duplex speed type
	fieldsFromStatus = 5
)

// Parser extracts port lines from `show interfaces status` output.
//
// The Name column may be empty or hold several words, so fields are located
// relative to the first status word rather than by column position.
type Parser struct {
	PhysicalPrefixes []string
	StatusWords      []string

	trace logger.Logger
}

// Summary is the outcome of parsing one device's output.
type Summary struct {
	TotalPorts  int
	ActivePorts int
	Media       *MediaCounter
}

// NewParser returns a parser for the given prefixes and status words.
func NewParser(prefixes, statusWords []string) *Parser {
	return &Parser{
		PhysicalPrefixes: prefixes,
		StatusWords:      statusWords,
	}
}

// WithTrace returns a copy of p that logs every candidate line at debug level.
func (p *Parser) WithTrace(log logger.Logger) *Parser {
	cp := *p
	cp.trace = log

	return &cp
}

// ParseLine parses one line. The boolean is false for blank, header,
// non-physical and malformed lines.
func (p *Parser) ParseLine(line string) (models.PortLine, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, headerToken) {
		return models.PortLine{}, false
	}

	if !p.physical(trimmed) {
		return models.PortLine{}, false
	}

	tokens := strings.Fields(trimmed)

	anchor := -1

	for i := 1; i < len(tokens); i++ {
		if slices.Contains(p.StatusWords, tokens[i]) {
			anchor = i
			break
		}
	}

	if anchor < 0 || len(tokens)-anchor < fieldsFromStatus {
		p.traceLine(line, "rejected")

		return models.PortLine{}, false
	}

	pl := models.PortLine{
		Port:   tokens[0],
		Label:  strings.Join(tokens[1:anchor], " "),
		Status: tokens[anchor],
		VLAN:   tokens[anchor+1],
		Duplex: tokens[anchor+2],
		Speed:  tokens[anchor+3],
		Type:   strings.Join(tokens[anchor+4:], " "),
	}

	if p.trace != nil {
		p.trace.Debug().
			Str("port", pl.Port).
			Str("status", pl.Status).
			Str("type", pl.Type).
			Msg("Parsed port line")
	}

	return pl, true
}

func (p *Parser) physical(trimmed string) bool {
	for _, prefix := range p.PhysicalPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}

	return false
}

func (p *Parser) traceLine(line, outcome string) {
	if p.trace == nil {
		return
	}

	p.trace.Debug().Str("line", line).Msg("Port line " + outcome)
}

// Lines yields the parsed port lines of output. Each range over the
// sequence parses output afresh.
func (p *Parser) Lines(output string) iter.Seq[models.PortLine] {
	return func(yield func(models.PortLine) bool) {
		for line := range strings.Lines(output) {
			pl, ok := p.ParseLine(strings.TrimRight(line, "\r\n"))
			if !ok {
				continue
			}

			if !yield(pl) {
				return
			}
		}
	}
}

// Parse counts the ports in output. Every parsed line is a port; lines whose
// status is exactly "connected" are active and feed the media counter.
func (p *Parser) Parse(output string) Summary {
	s := Summary{Media: NewMediaCounter()}

	for pl := range p.Lines(output) {
		s.TotalPorts++

		if pl.Status == StatusConnected {
			s.ActivePorts++
			s.Media.Add(pl.Type)
		}
	}

	return s
}
