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
	"io"

	"github.com/openr-tools/breeze/client"
)

// Operation is the body of a command. It receives the client the command was
// built for along with the command arguments, and returns the exit status.
type Operation[C io.Closer] func(ctx *Context, c C, args []string) (int, error)

// NoStatus adapts an operation that reports failures only through its error.
// The status is always 0.
func NoStatus[C io.Closer](fn func(ctx *Context, c C, args []string) error) Operation[C] {
	return func(ctx *Context, c C, args []string) (int, error) {
		return 0, fn(ctx, c, args)
	}
}

// Command runs an operation against a client that only lives for the
// duration of the run.
type Command[C io.Closer] struct {
	ctx  *Context
	dial func(ctx *Context) (C, error)
	op   Operation[C]
}

// NewCtrlCommand creates a command using the request/response API.
func NewCtrlCommand(ctx *Context, op Operation[client.CtrlClient]) *Command[client.CtrlClient] {
	return &Command[client.CtrlClient]{ctx: ctx, dial: (*Context).DialCtrl, op: op}
}

// NewStreamCommand creates a command that may subscribe to KvStore changes.
func NewStreamCommand(ctx *Context, op Operation[client.StreamClient]) *Command[client.StreamClient] {
	return &Command[client.StreamClient]{ctx: ctx, dial: (*Context).DialStream, op: op}
}

// NewFibAgentCommand creates a command talking to the FIB agent.
func NewFibAgentCommand(ctx *Context, op Operation[client.FibAgentClient]) *Command[client.FibAgentClient] {
	return &Command[client.FibAgentClient]{ctx: ctx, dial: (*Context).DialFibAgent, op: op}
}

// Run dials a client, runs the operation with it and closes it, whatever
// the outcome of the operation.
func (cmd *Command[C]) Run(args ...string) (int, error) {
	if cmd.op == nil {
		return 1, ErrNotImplemented
	}

	c, err := cmd.dial(cmd.ctx)
	if err != nil {
		return 1, err
	}
	defer release(c)

	return cmd.op(cmd.ctx, c, args)
}
