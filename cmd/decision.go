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
	rootCmd := &grumble.Command{
		Name: "decision",
		Help: "link-state databases known by Decision",
	}

	rootCmd.AddCommand(&grumble.Command{
		Name:  "adj",
		Help:  "print the adjacencies",
		Flags: nodesFlag,
		Run: func(c *grumble.Context) error {
			nodes := splitSet(c.Flags.String("nodes"))
			return exitStatus(executor.NewCtrlCommand(breezeCtx, executor.NoStatus(
				func(ctx *executor.Context, ctrl client.CtrlClient, _ []string) error {
					return executor.ShowAdjacencies(ctx, ctrl, nodes)
				})).Run())
		},
	})

	rootCmd.AddCommand(&grumble.Command{
		Name:  "prefixes",
		Help:  "print the advertised prefixes",
		Flags: nodesFlag,
		Run: func(c *grumble.Context) error {
			nodes := splitSet(c.Flags.String("nodes"))
			return exitStatus(executor.NewCtrlCommand(breezeCtx, executor.NoStatus(
				func(ctx *executor.Context, ctrl client.CtrlClient, _ []string) error {
					return executor.ShowPrefixes(ctx, ctrl, nodes)
				})).Run())
		},
	})

	shell.AddCommand(rootCmd)
}

func nodesFlag(f *grumble.Flags) {
	f.String("n", "nodes", "", "nodes separated by comma, \"all\" for every node, the connected node by default")
}
