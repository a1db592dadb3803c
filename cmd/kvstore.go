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
		Name: "kvstore",
		Help: "KvStore of the current area",
	}

	rootCmd.AddCommand(&grumble.Command{
		Name:  "keys",
		Help:  "list the keys",
		Flags: keyFilterFlags,
		Run: func(c *grumble.Context) error {
			params := keyDumpParams(c)
			return exitStatus(executor.NewCtrlCommand(breezeCtx, executor.NoStatus(
				func(ctx *executor.Context, ctrl client.CtrlClient, _ []string) error {
					return executor.ListKvStoreKeys(ctx, ctrl, params)
				})).Run())
		},
	})

	rootCmd.AddCommand(&grumble.Command{
		Name:  "snoop",
		Help:  "print the changes of the keys until interrupted",
		Flags: keyFilterFlags,
		Run: func(c *grumble.Context) error {
			params := keyDumpParams(c)
			stop, release := interrupted()
			defer release()
			return exitStatus(executor.NewStreamCommand(breezeCtx, executor.NoStatus(
				func(ctx *executor.Context, stream client.StreamClient, _ []string) error {
					return executor.SnoopKvStore(ctx, stream, params, stop)
				})).Run())
		},
	})

	shell.AddCommand(rootCmd)
}

func keyFilterFlags(f *grumble.Flags) {
	f.String("p", "prefix", client.AllDBMarker, "only the keys starting with the prefix, e.g. adj:")
	f.String("o", "originator", "", "only the keys originated by these nodes, separated by comma")
	f.Bool("a", "and", false, "require both the prefix and the originator to match")
}

func keyDumpParams(c *grumble.Context) *client.KeyDumpParams {
	params := client.NewKeyDumpParams(c.Flags.String("prefix"), splitSet(c.Flags.String("originator")), nil)
	if c.Flags.Bool("and") {
		params.Oper = client.FilterAnd
	}
	return params
}
