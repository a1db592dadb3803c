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
	shell.AddCommand(&grumble.Command{
		Name:  "area",
		Help:  "select the KvStore area, or print the current one",
		Usage: "area [AREA_ID]",
		Run: func(c *grumble.Context) error {
			area := c.Args.String("area")
			if area == "" {
				c.App.Println(breezeCtx.Area())
				return nil
			}
			if err := executor.UseArea(breezeCtx, area); err != nil {
				return err
			}
			shell.SetTarget(breezeCtx.Host(), breezeCtx.Area())
			return nil
		},
		Args: func(a *grumble.Args) {
			a.String("area", "the area id", grumble.Default(""))
		},
		Completer: func(prefix string, args []string) []string {
			// the areas come from the memoized config
			areas, err := executor.Areas(breezeCtx)
			if err != nil {
				return []string{}
			}
			return filterStringWithPrefix(areas, prefix)
		},
	})
}
