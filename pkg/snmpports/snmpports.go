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

// Package snmpports reads interface rows from IF-MIB over SNMP and turns them
// into port records for the structured classifier.
package snmpports

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/carverauto/portaudit/pkg/logger"
	"github.com/carverauto/portaudit/pkg/models"
	"github.com/gosnmp/gosnmp"
)

const (
	oidIfDescr       = ".1.3.6.1.2.1.2.2.1.2"
	oidIfType        = ".1.3.6.1.2.1.2.2.1.3"
	oidIfSpeed       = ".1.3.6.1.2.1.2.2.1.5"
	oidIfAdminStatus = ".1.3.6.1.2.1.2.2.1.7"
	oidIfOperStatus  = ".1.3.6.1.2.1.2.2.1.8"
	oidIfName        = ".1.3.6.1.2.1.31.1.1.1.1"
	oidIfHighSpeed   = ".1.3.6.1.2.1.31.1.1.1.15"

	// ifSpeed saturates at this value on links faster than 4 Gbps.
	maxIfSpeed     = 4294967295
	bitsPerMbps    = 1000000
	maxRepetitions = 25
)

// ifTypeNames maps the IANAifType values that matter to the exclusion policy.
var ifTypeNames = map[int64]string{
	1:   "other",
	6:   "ethernetCsmacd",
	24:  "softwareLoopback",
	53:  "propVirtual",
	117: "gigabitEthernet",
	131: "tunnel",
	135: "l2vlan",
	136: "l3ipvlan",
	161: "ieee8023adLag",
}

// Walker is the subset of *gosnmp.GoSNMP used to read a table column.
type Walker interface {
	Walk(rootOid string, walkFn gosnmp.WalkFunc) error
	BulkWalk(rootOid string, walkFn gosnmp.WalkFunc) error
}

// Source is a port source that polls each device over SNMP.
type Source struct {
	cfg    models.SNMPConfig
	logger logger.Logger
}

// NewSource returns a Source for cfg.
func NewSource(cfg *models.SNMPConfig, log logger.Logger) *Source {
	return &Source{cfg: *cfg, logger: log}
}

// Ports connects to host and reads its interface table.
func (s *Source) Ports(ctx context.Context, host string) ([]models.PortRecord, error) {
	version, err := parseVersion(s.cfg.Version)
	if err != nil {
		return nil, err
	}

	client := &gosnmp.GoSNMP{
		Context:        ctx,
		Target:         host,
		Port:           s.cfg.Port,
		Community:      s.cfg.Community,
		Version:        version,
		Timeout:        time.Duration(s.cfg.Timeout),
		Retries:        s.cfg.Retries,
		MaxRepetitions: maxRepetitions,
	}

	if err := client.Connect(); err != nil {
		return nil, fmt.Errorf("snmp connect %s: %w", host, err)
	}
	defer func() { _ = client.Conn.Close() }()

	ports, err := Collect(client, version != gosnmp.Version1)
	if err != nil {
		return nil, fmt.Errorf("snmp walk %s: %w", host, err)
	}

	s.logger.Debug().Str("host", host).Int("interfaces", len(ports)).Msg("Walked interface table")

	return ports, nil
}

func parseVersion(v string) (gosnmp.SnmpVersion, error) {
	switch strings.ToLower(v) {
	case "1", "v1":
		return gosnmp.Version1, nil
	case "", "2c", "v2c":
		return gosnmp.Version2c, nil
	default:
		return 0, fmt.Errorf("%w: %q", errUnsupportedVersion, v)
	}
}

type ifRow struct {
	rec       models.PortRecord
	speed     uint64
	highSpeed uint64
}

// Collect walks the IF-MIB columns the classifier needs and returns one
// record per ifIndex in index order. Only the ifDescr walk is mandatory;
// devices without ifXTable still yield records named by ifDescr.
func Collect(w Walker, bulk bool) ([]models.PortRecord, error) {
	rows := make(map[int]*ifRow)

	walk := w.BulkWalk
	if !bulk {
		walk = w.Walk
	}

	row := func(pdu gosnmp.SnmpPDU) *ifRow {
		idx := ifIndex(pdu.Name)
		if idx < 0 {
			return nil
		}

		r, ok := rows[idx]
		if !ok {
			r = &ifRow{}
			rows[idx] = r
		}

		return r
	}

	if err := walk(oidIfDescr, func(pdu gosnmp.SnmpPDU) error {
		if r := row(pdu); r != nil {
			r.rec.Descr = octetString(pdu)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	columns := []struct {
		oid   string
		apply func(r *ifRow, pdu gosnmp.SnmpPDU)
	}{
		{oidIfName, func(r *ifRow, pdu gosnmp.SnmpPDU) { r.rec.Name = octetString(pdu) }},
		{oidIfType, func(r *ifRow, pdu gosnmp.SnmpPDU) { r.rec.InterfaceType = typeName(pdu) }},
		{oidIfSpeed, func(r *ifRow, pdu gosnmp.SnmpPDU) { r.speed = unsigned(pdu) }},
		{oidIfHighSpeed, func(r *ifRow, pdu gosnmp.SnmpPDU) { r.highSpeed = unsigned(pdu) }},
		{oidIfAdminStatus, func(r *ifRow, pdu gosnmp.SnmpPDU) { r.rec.AdminStatus = numeric(pdu) }},
		{oidIfOperStatus, func(r *ifRow, pdu gosnmp.SnmpPDU) { r.rec.OperStatus = numeric(pdu) }},
	}

	for _, col := range columns {
		// optional columns: a device that lacks one still reports the others
		_ = walk(col.oid, func(pdu gosnmp.SnmpPDU) error {
			if r, ok := rows[ifIndex(pdu.Name)]; ok {
				col.apply(r, pdu)
			}

			return nil
		})
	}

	indexes := make([]int, 0, len(rows))
	for idx := range rows {
		indexes = append(indexes, idx)
	}

	sort.Ints(indexes)

	out := make([]models.PortRecord, 0, len(indexes))

	for _, idx := range indexes {
		r := rows[idx]

		speed := r.speed
		if (speed == 0 || speed >= maxIfSpeed) && r.highSpeed > 0 {
			speed = r.highSpeed * bitsPerMbps
		}

		r.rec.Speed = models.Number(float64(speed))
		r.rec.Deleted = models.Number(0)
		out = append(out, r.rec)
	}

	return out, nil
}

func ifIndex(oid string) int {
	i := strings.LastIndexByte(oid, '.')
	if i < 0 {
		return -1
	}

	idx, err := strconv.Atoi(oid[i+1:])
	if err != nil {
		return -1
	}

	return idx
}

func octetString(pdu gosnmp.SnmpPDU) string {
	if b, ok := pdu.Value.([]byte); ok {
		return strings.TrimSpace(string(b))
	}

	return ""
}

func unsigned(pdu gosnmp.SnmpPDU) uint64 {
	switch pdu.Type {
	case gosnmp.Integer, gosnmp.Gauge32, gosnmp.Counter32, gosnmp.Counter64, gosnmp.Uinteger32:
		if n := gosnmp.ToBigInt(pdu.Value); n != nil && n.Sign() > 0 {
			return n.Uint64()
		}
	}

	return 0
}

func numeric(pdu gosnmp.SnmpPDU) models.FlexValue {
	if pdu.Type != gosnmp.Integer {
		return models.FlexValue{}
	}

	return models.Number(float64(gosnmp.ToBigInt(pdu.Value).Int64()))
}

func typeName(pdu gosnmp.SnmpPDU) string {
	if pdu.Type != gosnmp.Integer {
		return ""
	}

	n := gosnmp.ToBigInt(pdu.Value).Int64()
	if name, ok := ifTypeNames[n]; ok {
		return name
	}

	return strconv.FormatInt(n, 10)
}
