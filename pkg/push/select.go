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

package push

import (
	"fmt"
	"strconv"
	"strings"
)

// AllGroups is the selection key for every group in the catalogue.
const AllGroups = "0"

// Select resolves a selection such as "1,3" against the numbered catalogue
// (1-based). AllGroups selects everything. Repeats are dropped.
func Select(choice string, catalogue []string) ([]string, error) {
	choice = strings.TrimSpace(choice)
	if choice == AllGroups {
		return append([]string(nil), catalogue...), nil
	}

	var (
		out  []string
		seen = make(map[int]struct{})
	)

	for _, item := range strings.Split(choice, ",") {
		key := strings.TrimSpace(item)

		n, err := strconv.Atoi(key)
		if err != nil || n < 1 || n > len(catalogue) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSelection, key)
		}

		if _, dup := seen[n]; dup {
			continue
		}

		seen[n] = struct{}{}
		out = append(out, catalogue[n-1])
	}

	return out, nil
}

// NeedsConfirmation reports whether a selection spans more than one group.
func NeedsConfirmation(selected []string) bool {
	return len(selected) > 1
}

// Menu lists the catalogue the way the selection prompt shows it.
func Menu(catalogue []string) string {
	var b strings.Builder

	b.WriteString(AllGroups + ") ALL groups\n")

	for i, g := range catalogue {
		fmt.Fprintf(&b, "%d) %s\n", i+1, g)
	}

	return b.String()
}
