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

// Package librenms is a small client for the LibreNMS v0 REST API.
package librenms

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/carverauto/portaudit/pkg/logger"
	"github.com/carverauto/portaudit/pkg/models"
	"github.com/carverauto/portaudit/pkg/version"
)

const (
	tokenHeader = "X-Auth-Token"

	devicesPath = "/api/v0/devices"
	maxErrBody  = 512
)

// portColumns limits the port query to the fields the classifier reads.
var portColumns = []string{
	"ifName", "ifDescr", "ifAdminStatus", "ifOperStatus", "ifSpeed",
	"ifType", "deleted", "ifInOctets_rate", "ifOutOctets_rate",
}

// Client talks to one LibreNMS instance.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	logger   logger.Logger

	mu  sync.RWMutex
	ids map[string]int
}

type devicesResponse struct {
	Status  string            `json:"status"`
	Devices []json.RawMessage `json:"devices"`
}

type portsResponse struct {
	Status string            `json:"status"`
	Ports  []json.RawMessage `json:"ports"`
}

// NewClient returns a client for cfg. The token is required.
func NewClient(cfg *models.LibreNMSConfig, log logger.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIToken) == "" {
		return nil, ErrMissingToken
	}

	timeout := time.Duration(cfg.Timeout)
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	//nolint:gosec // lab networks run the API behind self-signed certificates
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: !cfg.VerifyTLS},
	}

	return &Client{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		token:    cfg.APIToken,
		http:     &http.Client{Timeout: timeout, Transport: transport},
		logger:   log,
		ids:      make(map[string]int),
	}, nil
}

// Devices lists every device in the directory and remembers their ids for
// the port lookup fallback.
func (c *Client) Devices(ctx context.Context) ([]models.DeviceRecord, error) {
	var resp devicesResponse
	if err := c.get(ctx, devicesPath, nil, &resp); err != nil {
		return nil, err
	}

	devices := decodeRecords[models.DeviceRecord](c.logger, "device", resp.Devices)

	c.rememberIDs(devices)

	c.logger.Info().Int("devices", len(devices)).Int("skipped", len(resp.Devices)-len(devices)).
		Msg("Fetched device directory")

	return devices, nil
}

// decodeRecords unmarshals each record on its own. Records that do not
// decode are skipped so one odd entry cannot hide the rest.
func decodeRecords[T any](log logger.Logger, kind string, raw []json.RawMessage) []T {
	out := make([]T, 0, len(raw))

	for i, r := range raw {
		var rec T
		if err := json.Unmarshal(r, &rec); err != nil {
			log.Debug().Err(err).Str("kind", kind).Int("index", i).Msg("Skipping malformed record")

			continue
		}

		out = append(out, rec)
	}

	return out
}

func (c *Client) rememberIDs(devices []models.DeviceRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range devices {
		if devices[i].Hostname != "" && devices[i].DeviceID != 0 {
			c.ids[devices[i].Hostname] = devices[i].DeviceID
		}
	}
}

// DeviceID resolves hostname to a directory id, exact match first and then
// case-insensitively.
func (c *Client) DeviceID(hostname string) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if id, ok := c.ids[hostname]; ok {
		return id, true
	}

	for name, id := range c.ids {
		if strings.EqualFold(name, hostname) {
			return id, true
		}
	}

	return 0, false
}

// Ports returns the ports of hostname. When the hostname lookup fails the
// numeric device id is tried instead.
func (c *Client) Ports(ctx context.Context, hostname string) ([]models.PortRecord, error) {
	ports, err := c.portsAt(ctx, url.PathEscape(hostname))
	if err == nil {
		return ports, nil
	}

	id, ok := c.DeviceID(hostname)
	if !ok {
		return nil, fmt.Errorf("%w: %s (%w)", ErrDeviceNotFound, hostname, err)
	}

	c.logger.Debug().Err(err).Str("hostname", hostname).Int("device_id", id).
		Msg("Hostname port lookup failed, retrying by device id")

	ports, err = c.portsAt(ctx, strconv.Itoa(id))
	if err != nil {
		return nil, err
	}

	return ports, nil
}

func (c *Client) portsAt(ctx context.Context, key string) ([]models.PortRecord, error) {
	q := url.Values{}
	q.Set("columns", strings.Join(portColumns, ","))

	var resp portsResponse
	if err := c.get(ctx, devicesPath+"/"+key+"/ports", q, &resp); err != nil {
		return nil, err
	}

	return decodeRecords[models.PortRecord](c.logger, "port", resp.Ports), nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dst interface{}) error {
	u := c.endpoint + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return err
	}

	req.Header.Set(tokenHeader, c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer c.closeResponse(resp)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))

		return fmt.Errorf("%w: %d %s: %s", ErrUnexpectedStatusCode, resp.StatusCode, path, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	return nil
}

func (c *Client) closeResponse(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to close response body")
	}
}
