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

import "errors"

var (
	// ErrMissingCredentials is returned when SSH work is requested without a username or password.
	ErrMissingCredentials = errors.New("ssh username and password are required")

	errInvalidDuration  = errors.New("invalid duration")
	errInvalidMode      = errors.New("invalid utilization mode (expected api, cli or snmp)")
	errInvalidPolicy    = errors.New("invalid port policy")
	errInvalidWorkers   = errors.New("workers must not be negative")
	errMissingSinkField = errors.New("publish sink is missing a required field")
)
