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
	"github.com/desertbit/grumble"
	"github.com/openr-tools/breeze/executor"
	"github.com/openr-tools/breeze/shell"
)

func init() {
	rootCmd := &grumble.Command{
		Name: "config",
		Help: "running config of the node",
	}

	rootCmd.AddCommand(&grumble.Command{
		Name: "show",
		Help: "print the running config, or one entry of it",
		Flags: func(f *grumble.Flags) {
			f.String("p", "path", "", "gjson path of the entry to print, e.g. kvstore_config.key_ttl_ms")
		},
		Run: func(c *grumble.Context) error {
			return executor.ShowConfig(breezeCtx, c.Flags.String("path"))
		},
	})

	shell.AddCommand(rootCmd)
}
