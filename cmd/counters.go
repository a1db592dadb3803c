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
	"github.com/openr-tools/breeze/client"
	"github.com/openr-tools/breeze/executor"
	"github.com/openr-tools/breeze/shell"
)

func init() {
	shell.AddCommand(&grumble.Command{
		Name: "counters",
		Help: "print the counters of the node",
		Flags: func(f *grumble.Flags) {
			f.String("p", "prefix", "", "only the counters starting with the prefix, e.g. kvstore.")
		},
		Run: func(c *grumble.Context) error {
			prefix := c.Flags.String("prefix")
			return exitStatus(executor.NewCtrlCommand(breezeCtx, executor.NoStatus(
				func(ctx *executor.Context, ctrl client.CtrlClient, _ []string) error {
					return executor.ShowCounters(ctx, ctrl, prefix)
				})).Run())
		},
	})

	openrCmd := &grumble.Command{
		Name: "openr",
		Help: "Open/R daemon",
	}
	openrCmd.AddCommand(&grumble.Command{
		Name: "stats",
		Help: "print the KvStore, Decision and Spark statistics",
		Run: func(c *grumble.Context) error {
			return exitStatus(executor.NewCtrlCommand(breezeCtx, executor.NoStatus(executor.ShowOpenrStats)).Run())
		},
	})
	shell.AddCommand(openrCmd)

	fibCmd := &grumble.Command{
		Name: "fib",
		Help: "FIB agent",
	}
	fibCmd.AddCommand(&grumble.Command{
		Name: "stats",
		Help: "print the statistics of the FIB agent",
		Run: func(c *grumble.Context) error {
			return exitStatus(executor.NewFibAgentCommand(breezeCtx, executor.NoStatus(executor.ShowFibStats)).Run())
		},
	})
	shell.AddCommand(fibCmd)
}
