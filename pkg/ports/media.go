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
	"sort"

	"github.com/carverauto/portaudit/pkg/models"
)

// MediaCounter counts active ports per media type, remembering the order in
// which each type was first seen.
type MediaCounter struct {
	order  []string
	counts map[string]int
}

// NewMediaCounter returns an empty counter.
func NewMediaCounter() *MediaCounter {
	return &MediaCounter{counts: make(map[string]int)}
}

// Add increments the count of label.
func (m *MediaCounter) Add(label string) {
	if m.counts == nil {
		m.counts = make(map[string]int)
	}

	if _, seen := m.counts[label]; !seen {
		m.order = append(m.order, label)
	}

	m.counts[label]++
}

// Len is the number of distinct labels.
func (m *MediaCounter) Len() int {
	if m == nil {
		return 0
	}

	return len(m.order)
}

// Entries returns the counts in first-seen order.
func (m *MediaCounter) Entries() []models.MediaCount {
	if m == nil {
		return nil
	}

	out := make([]models.MediaCount, 0, len(m.order))
	for _, label := range m.order {
		out = append(out, models.MediaCount{Type: label, Count: m.counts[label]})
	}

	return out
}

// MostCommon returns the counts by descending count, ties in first-seen order.
func (m *MediaCounter) MostCommon() []models.MediaCount {
	out := m.Entries()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})

	return out
}
