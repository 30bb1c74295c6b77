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

package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FlexValue holds a scalar JSON value whose type varies between monitoring
// backends: a number, a numeric string, a word such as "up", or nothing at all.
// Decoding never fails; interpretation is deferred to the accessors.
type FlexValue struct {
	text    string
	number  float64
	present bool
	isNum   bool
}

// Number returns a FlexValue holding a JSON number.
func Number(v float64) FlexValue {
	return FlexValue{
		text:    strconv.FormatFloat(v, 'f', -1, 64),
		number:  v,
		present: true,
		isNum:   true,
	}
}

// Text returns a FlexValue holding a JSON string.
func Text(s string) FlexValue {
	return FlexValue{text: s, present: true}
}

// UnmarshalJSON accepts numbers, strings, booleans and null.
func (f *FlexValue) UnmarshalJSON(b []byte) error {
	*f = FlexValue{}

	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	var v interface{}
	if err := json.Unmarshal(trimmed, &v); err != nil {
		// Keep the raw token so it still reads as "present but unparsable".
		*f = Text(string(trimmed))

		return nil
	}

	switch value := v.(type) {
	case float64:
		*f = Number(value)
	case string:
		*f = Text(value)
	case bool:
		if value {
			*f = Number(1)
		} else {
			*f = Number(0)
		}
	default:
		*f = Text(string(trimmed))
	}

	return nil
}

// MarshalJSON writes the value back in its original shape.
func (f FlexValue) MarshalJSON() ([]byte, error) {
	switch {
	case !f.present:
		return []byte("null"), nil
	case f.isNum:
		return json.Marshal(f.number)
	default:
		return json.Marshal(f.text)
	}
}

// String returns the textual form of the value, or "" when absent.
func (f FlexValue) String() string {
	return f.text
}

// Int interprets the value as an integer the strict way: JSON numbers are
// truncated toward zero, strings must hold a base-10 integer.
func (f FlexValue) Int() (int64, bool) {
	if !f.present {
		return 0, false
	}

	if f.isNum {
		if math.IsNaN(f.number) || math.IsInf(f.number, 0) {
			return 0, false
		}

		return int64(f.number), true
	}

	n, err := strconv.ParseInt(strings.TrimSpace(f.text), 10, 64)
	if err != nil {
		return 0, false
	}

	return n, true
}

// Float interprets the value as a floating point number. Strings such as
// "1e9" or "100000000.0" are accepted.
func (f FlexValue) Float() (float64, bool) {
	if !f.present {
		return 0, false
	}

	if f.isNum {
		return f.number, true
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(f.text), 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}

	return v, true
}

// Truncated parses the value as a float and truncates it toward zero.
// Unparsable or absent values yield 0.
func (f FlexValue) Truncated() int64 {
	v, ok := f.Float()
	if !ok || math.IsInf(v, 0) {
		return 0
	}

	return int64(v)
}
