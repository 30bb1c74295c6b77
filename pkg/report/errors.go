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

package report

import "errors"

var (
	// ErrMissingHostnameColumn is returned when the device list has no hostname header.
	ErrMissingHostnameColumn = errors.New("device list has no hostname column")
	// ErrUnsupportedFormat is returned for device lists that are neither csv nor xlsx.
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
	errNoSheets          = errors.New("workbook has no sheets")
)
