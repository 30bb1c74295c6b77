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

package librenms

import "errors"

var (
	// ErrMissingToken is returned when no API token is configured.
	ErrMissingToken = errors.New("librenms api token is required (set librenms.api_token or LIBRENMS_TOKEN)")
	// ErrUnexpectedStatusCode wraps any non-200 API response.
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	// ErrDeviceNotFound is returned when a hostname has no directory id to fall back on.
	ErrDeviceNotFound = errors.New("device not found in directory")
)
