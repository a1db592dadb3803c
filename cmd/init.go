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

package cmd

import (
	"os"
	"time"

	"github.com/openr-tools/breeze/client"
	"github.com/openr-tools/breeze/executor"
	"github.com/openr-tools/breeze/shell"
	"github.com/spf13/viper"
)

var breezeCtx *executor.Context

// Init all commands to the shell app, targeting the node configured in v.
func Init(v *viper.Viper) error {
	thresholds, err := executor.LoadThresholds(v)
	if err != nil {
		return err
	}

	breezeCtx = executor.NewContext(os.Stdout, client.NewThriftDialer(), client.Options{
		Host:         v.GetString("host"),
		Timeout:      time.Duration(v.GetInt64("timeout_ms")) * time.Millisecond,
		CtrlPort:     v.GetInt("ctrl_port"),
		FibAgentPort: v.GetInt("fib_agent_port"),
	})
	breezeCtx.Thresholds = thresholds
	if area := v.GetString("area"); area != "" {
		breezeCtx.SetArea(area)
	}

	shell.SetTarget(breezeCtx.Host(), breezeCtx.Area())
	return nil
}
