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

package inventory

import (
	"strings"

	"github.com/carverauto/portaudit/pkg/models"
)

// FamilyUnknown is returned for hardware that matches no family.
const FamilyUnknown = "unknown"

// Classifier maps hardware model strings to device families. Families are
// tried in declaration order and the first match wins.
type Classifier struct {
	families []models.HardwareFamily
}

// NewClassifier returns a classifier over families, or the default table when empty.
func NewClassifier(families []models.HardwareFamily) *Classifier {
	if len(families) == 0 {
		families = models.DefaultHardwareFamilies()
	}

	return &Classifier{families: families}
}

// Classify returns the family of hardware or FamilyUnknown.
func (c *Classifier) Classify(hardware string) string {
	for _, fam := range c.families {
		for _, pattern := range fam.Models {
			if pattern != "" && strings.Contains(hardware, pattern) {
				return fam.Name
			}
		}
	}

	return FamilyUnknown
}

// Matches reports whether hardware belongs to any family.
func (c *Classifier) Matches(hardware string) bool {
	return c.Classify(hardware) != FamilyUnknown
}

// Families returns the family names in declaration order.
func (c *Classifier) Families() []string {
	out := make([]string, 0, len(c.families))
	for _, fam := range c.families {
		out = append(out, fam.Name)
	}

	return out
}
