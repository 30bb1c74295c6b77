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

//go:generate mockgen -destination=mock_sshcli.go -package=sshcli github.com/carverauto/portaudit/pkg/sshcli Runner

// Package sshcli runs commands in an interactive SSH shell on network devices.
package sshcli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/carverauto/portaudit/pkg/logger"
	"github.com/carverauto/portaudit/pkg/models"
	"golang.org/x/crypto/ssh"
)

const (
	disablePaging = "terminal length 0"
	configureMode = "configure terminal"
	endConfigure  = "end"
	exitShell     = "exit"

	ptyWidth  = 511
	ptyHeight = 40
)

// errorMarkers begin the lines IOS prints when it refuses a command.
var errorMarkers = []string{"% Invalid input", "% Incomplete command", "% Ambiguous command", "% Unknown command"}

// Runner sends a command sequence to a host and returns everything it printed.
type Runner interface {
	Run(ctx context.Context, host string, commands []string) (string, error)
}

// Client is a Runner over golang.org/x/crypto/ssh with password authentication.
type Client struct {
	cfg    models.SSHConfig
	logger logger.Logger
}

// NewClient returns a client for cfg. Username and password are required.
func NewClient(cfg *models.SSHConfig, log logger.Logger) (*Client, error) {
	if err := cfg.Credentials(); err != nil {
		return nil, err
	}

	return &Client{cfg: *cfg, logger: log}, nil
}

// ShowCommands is the read-only sequence that prints interface status.
func ShowCommands(command string) []string {
	return []string{disablePaging, command}
}

// ConfigCommands wraps a literal command block in configuration mode and
// appends the save command. Blank lines are dropped.
func ConfigCommands(block, save string) []string {
	cmds := []string{disablePaging, configureMode}

	for _, line := range strings.Split(block, "\n") {
		if line = strings.TrimRight(line, "\r "); strings.TrimSpace(line) != "" {
			cmds = append(cmds, line)
		}
	}

	cmds = append(cmds, endConfigure)

	if save != "" {
		cmds = append(cmds, save)
	}

	return cmds
}

// Run opens a shell on host, writes commands followed by exit, and collects
// the output until the device closes the session or the read timeout expires.
func (c *Client) Run(ctx context.Context, host string, commands []string) (string, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(c.cfg.Port))

	client, err := c.dial(ctx, addr)
	if err != nil {
		return "", fmt.Errorf("failed to dial %s: %w", addr, err)
	}
	defer func() { _ = client.Close() }()

	session, err := client.NewSession()
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	defer func() { _ = session.Close() }()

	if err := session.RequestPty("vt100", ptyHeight, ptyWidth, ssh.TerminalModes{ssh.ECHO: 0}); err != nil {
		return "", fmt.Errorf("failed to request PTY: %w", err)
	}

	stdin, err := session.StdinPipe()
	if err != nil {
		return "", err
	}

	stdout, err := session.StdoutPipe()
	if err != nil {
		return "", err
	}

	if err := session.Shell(); err != nil {
		return "", fmt.Errorf("failed to start shell: %w", err)
	}

	var script bytes.Buffer
	for _, cmd := range commands {
		script.WriteString(cmd + "\n")
	}

	script.WriteString(exitShell + "\n")

	if _, err := stdin.Write(script.Bytes()); err != nil {
		return "", fmt.Errorf("failed to send commands: %w", err)
	}

	type readResult struct {
		out []byte
		err error
	}

	done := make(chan readResult, 1)

	go func() {
		out, err := io.ReadAll(stdout)
		done <- readResult{out: out, err: err}
	}()

	timer := time.NewTimer(time.Duration(c.cfg.ReadTimeout))
	defer timer.Stop()

	select {
	case res := <-done:
		if res.err != nil {
			return "", fmt.Errorf("error reading output: %w", res.err)
		}

		out := strings.ReplaceAll(string(res.out), "\r", "")

		c.logger.Debug().Str("host", host).Int("bytes", len(out)).Msg("Session output collected")

		return out, rejected(out)
	case <-timer.C:
		return "", fmt.Errorf("%w after %s", ErrReadTimeout, time.Duration(c.cfg.ReadTimeout))
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (c *Client) dial(ctx context.Context, addr string) (*ssh.Client, error) {
	timeout := time.Duration(c.cfg.ConnectTimeout)

	config := &ssh.ClientConfig{
		User: c.cfg.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(c.cfg.Password),
		},
		//nolint:gosec // lab fleets are not enrolled in a known_hosts inventory
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         timeout,
	}

	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var d net.Dialer

	conn, err := d.DialContext(dialCtx, "tcp", addr)
	if err != nil {
		return nil, err
	}

	// the handshake is bounded by the same connect timeout
	_ = conn.SetDeadline(time.Now().Add(timeout))

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, config)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	_ = conn.SetDeadline(time.Time{})

	return ssh.NewClient(sshConn, chans, reqs), nil
}

func rejected(out string) error {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)

		for _, marker := range errorMarkers {
			if strings.HasPrefix(line, marker) {
				return fmt.Errorf("%w: %s", ErrCommandRejected, line)
			}
		}
	}

	return nil
}
