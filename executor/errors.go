/*
 * Licensed to the Apache Software Foundation (ASF) under one
 * or more contributor license agreements.  See the NOTICE file
 * distributed with this work for additional information
 * regarding copyright ownership.  The ASF licenses this file
 * to you under the Apache License, Version 2.0 (the
 * "License"); you may not use this file except in compliance
 * with the License.  You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package executor

import (
	"errors"
	"fmt"
)

// ErrNotImplemented is returned by a command that has no operation to run.
var ErrNotImplemented = errors.New("command is not implemented")

// ErrThresholdMissing is returned when an initialization event has no
// configured thresholds.
var ErrThresholdMissing = errors.New("no thresholds defined")

// ConfigParseError is returned when the running config of the daemon is not
// a JSON object.
type ConfigParseError struct {
	Reason string
}

func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("unable to parse running config: %s", e.Reason)
}
