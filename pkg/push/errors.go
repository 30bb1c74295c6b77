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

import "errors"

var (
	// ErrInvalidSelection is returned for a group choice outside the catalogue.
	ErrInvalidSelection = errors.New("invalid group selection")
	// ErrNoCommands is returned when there is no configuration to push.
	ErrNoCommands = errors.New("no configuration commands to push")
	errNoDevices  = errors.New("testbed has no devices")
	errNotMapping = errors.New("testbed devices section is not a mapping")
)
