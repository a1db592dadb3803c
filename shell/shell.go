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

package shell

import (
	"time"

	"github.com/desertbit/grumble"
	"github.com/openr-tools/breeze/client"
)

// App is the global shell app.
var App *grumble.App

// AddCommand registers the command to the global shell app.
func AddCommand(cmd *grumble.Command) {
	App.AddCommand(cmd)
}

func init() {
	App = grumble.New(&grumble.Config{
		Name:        "breeze",
		Description: "Open/R command line tool",
		Flags: func(f *grumble.Flags) {
			f.String("H", "host", client.DefaultHost, "host of the Open/R node to connect to")
			f.Int("t", "timeout", int(client.DefaultTimeout/time.Millisecond), "timeout of the RPCs in milliseconds")
			f.Int("f", "fib-agent-port", client.DefaultFibAgentPort, "port of the FIB agent")
			f.String("c", "config", "", "path of the config file, .breeze.yml in the working or home directory by default")
		},
		HistoryFile: ".breeze-history",
	})
}
