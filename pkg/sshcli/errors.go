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

package sshcli

import "errors"

var (
	// ErrReadTimeout is returned when the device does not finish its output in time.
	ErrReadTimeout = errors.New("timed out reading command output")
	// ErrCommandRejected is returned when the device answers a command with an error marker.
	ErrCommandRejected = errors.New("device rejected command")
)
