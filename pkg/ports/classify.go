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

package ports

import (
	"fmt"
	"strings"

	"github.com/carverauto/portaudit/pkg/models"
)

// vlanTypes are the lower-cased ifType values of VLAN interfaces.
var vlanTypes = map[string]bool{"vlan": true, "l2vlan": true, "l3ipvlan": true}

// ExclusionPolicy decides which interfaces are not ports at all. Type matches
// and name prefixes are both checked because ifType is not always populated.
type ExclusionPolicy struct {
	VLANs        bool
	Loopbacks    bool
	Null         bool
	PortChannels bool
}

// DefaultExclusions excludes VLAN, loopback and null interfaces.
func DefaultExclusions() ExclusionPolicy {
	return ExclusionPolicy{VLANs: true, Loopbacks: true, Null: true}
}

// ExclusionsFromConfig resolves the configured toggles.
func ExclusionsFromConfig(cfg models.ExclusionConfig) ExclusionPolicy {
	flag := func(p *bool, def bool) bool {
		if p == nil {
			return def
		}

		return *p
	}

	return ExclusionPolicy{
		VLANs:        flag(cfg.VLANs, true),
		Loopbacks:    flag(cfg.Loopbacks, true),
		Null:         flag(cfg.Null, true),
		PortChannels: flag(cfg.PortChannels, false),
	}
}

// Excluded reports whether rec is left out of both port counts.
func (e ExclusionPolicy) Excluded(rec *models.PortRecord) bool {
	ifType := strings.ToLower(strings.TrimSpace(rec.InterfaceType))
	name := strings.ToLower(rec.DisplayName())

	if e.VLANs && (vlanTypes[ifType] || hasAnyPrefix(name, "vl", "vlan")) {
		return true
	}

	if e.Loopbacks && (ifType == "softwareloopback" || hasAnyPrefix(name, "lo", "loopback")) {
		return true
	}

	if e.Null && hasAnyPrefix(name, "nu", "null") {
		return true
	}

	return e.PortChannels && hasAnyPrefix(name, "po", "port-channel", "portchannel")
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}

	return false
}

// ActivePolicy decides whether a counted port is in use.
type ActivePolicy interface {
	Name() string
	Active(rec *models.PortRecord) bool
}

// AdminOperSpeed requires numeric admin and oper status 1 and a positive speed.
type AdminOperSpeed struct{}

func (AdminOperSpeed) Name() string { return models.PolicyAdminOperSpeed }

func (AdminOperSpeed) Active(rec *models.PortRecord) bool {
	return numericUp(rec.AdminStatus) && numericUp(rec.OperStatus) && rec.Speed.Truncated() > 0
}

// AdminOperUp requires admin and oper status to both read "up".
type AdminOperUp struct{}

func (AdminOperUp) Name() string { return models.PolicyAdminOperUp }

func (AdminOperUp) Active(rec *models.PortRecord) bool {
	return wordUp(rec.AdminStatus) && wordUp(rec.OperStatus)
}

// TrafficHeuristic treats any sign of life as active: numeric up/up, an oper
// status of "up", or non-zero traffic in either direction. It over-counts
// ports that carry only control-plane chatter.
type TrafficHeuristic struct{}

func (TrafficHeuristic) Name() string { return models.PolicyTraffic }

func (TrafficHeuristic) Active(rec *models.PortRecord) bool {
	if numericUp(rec.AdminStatus) && numericUp(rec.OperStatus) {
		return true
	}

	if wordUp(rec.OperStatus) {
		return true
	}

	in, _ := rec.InRate.Float()
	out, _ := rec.OutRate.Float()

	return in > 0 || out > 0
}

func numericUp(v models.FlexValue) bool {
	n, ok := v.Int()

	return ok && n == models.IfStatusUp
}

func wordUp(v models.FlexValue) bool {
	return strings.EqualFold(strings.TrimSpace(v.String()), "up")
}

// PolicyByName returns the policy registered under name.
func PolicyByName(name string) (ActivePolicy, error) {
	switch name {
	case "", models.PolicyAdminOperSpeed:
		return AdminOperSpeed{}, nil
	case models.PolicyAdminOperUp:
		return AdminOperUp{}, nil
	case models.PolicyTraffic:
		return TrafficHeuristic{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// Classifier applies exclusion, the deleted flag and an active policy.
type Classifier struct {
	Exclusions ExclusionPolicy
	Policy     ActivePolicy
}

// NewClassifier returns a classifier; a nil policy means AdminOperSpeed.
func NewClassifier(exclusions ExclusionPolicy, policy ActivePolicy) *Classifier {
	if policy == nil {
		policy = AdminOperSpeed{}
	}

	return &Classifier{Exclusions: exclusions, Policy: policy}
}

// Counted reports whether rec is a port at all.
func (c *Classifier) Counted(rec *models.PortRecord) bool {
	return !c.Exclusions.Excluded(rec)
}

// Active reports whether a counted rec is in use. Deleted ports never are.
func (c *Classifier) Active(rec *models.PortRecord) bool {
	if deleted, ok := rec.Deleted.Int(); ok && deleted != 0 {
		return false
	}

	return c.Policy.Active(rec)
}

// Tally counts records the way Parse counts CLI lines. Structured records
// have no media type, so the media counter stays empty.
func (c *Classifier) Tally(records []models.PortRecord) Summary {
	s := Summary{Media: NewMediaCounter()}

	for i := range records {
		rec := &records[i]
		if !c.Counted(rec) {
			continue
		}

		s.TotalPorts++

		if !c.Active(rec) {
			continue
		}

		s.ActivePorts++
	}

	return s
}
