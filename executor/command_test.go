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
	"testing"

	"github.com/openr-tools/breeze/client"
	"github.com/stretchr/testify/assert"
	"k8s.io/apimachinery/pkg/util/sets"
)

func TestCommandRun(t *testing.T) {
	ctrl := &fakeCtrl{nodeName: "node-1"}
	ctx, dialer, _ := newTestContext(ctrl)

	var gotArgs []string
	status, err := NewCtrlCommand(ctx, func(ctx *Context, c client.CtrlClient, args []string) (int, error) {
		gotArgs = args
		name, err := c.GetMyNodeName()
		assert.Equal(t, "node-1", name)
		return 3, err
	}).Run("a", "b")

	assert.NoError(t, err)
	assert.Equal(t, 3, status)
	assert.Equal(t, []string{"a", "b"}, gotArgs)
	assert.Equal(t, []string{"ctrl@localhost"}, dialer.dials)
	assert.Equal(t, 1, ctrl.closed)
}

func TestCommandReleasesOnFailure(t *testing.T) {
	errOp := errors.New("operation failed")
	ctrl := &fakeCtrl{}
	ctx, _, _ := newTestContext(ctrl)

	_, err := NewCtrlCommand(ctx, func(*Context, client.CtrlClient, []string) (int, error) {
		return 0, errOp
	}).Run()
	assert.True(t, errors.Is(err, errOp))
	assert.Equal(t, 1, ctrl.closed)

	assert.Panics(t, func() {
		_, _ = NewCtrlCommand(ctx, func(*Context, client.CtrlClient, []string) (int, error) {
			panic("boom")
		}).Run()
	})
	assert.Equal(t, 2, ctrl.closed)
}

func TestCommandReleaseFailureIsNotReturned(t *testing.T) {
	ctrl := &fakeCtrl{closeErr: errors.New("broken pipe")}
	ctx, _, _ := newTestContext(ctrl)

	status, err := NewCtrlCommand(ctx, func(*Context, client.CtrlClient, []string) (int, error) {
		return 0, nil
	}).Run()
	assert.NoError(t, err)
	assert.Equal(t, 0, status)
	assert.Equal(t, 1, ctrl.closed)
}

func TestCommandNotImplemented(t *testing.T) {
	ctx, dialer, _ := newTestContext(&fakeCtrl{})

	_, err := NewCtrlCommand(ctx, nil).Run()
	assert.Equal(t, ErrNotImplemented, err)
	_, err = NewStreamCommand(ctx, nil).Run()
	assert.Equal(t, ErrNotImplemented, err)
	assert.Empty(t, dialer.dials)
}

func TestCommandDialFailure(t *testing.T) {
	ctx, dialer, _ := newTestContext(&fakeCtrl{})
	dialer.unreachable = sets.NewString("localhost")

	called := false
	_, err := NewCtrlCommand(ctx, func(*Context, client.CtrlClient, []string) (int, error) {
		called = true
		return 0, nil
	}).Run()

	var rpcErr *client.RPCError
	assert.True(t, errors.As(err, &rpcErr))
	assert.Equal(t, "connect", rpcErr.Method)
	assert.False(t, called)
}

func TestCommandClientKinds(t *testing.T) {
	ctrl := &fakeCtrl{counters: map[string]int64{"fib.num_routes": 3}}
	ctx, dialer, _ := newTestContext(ctrl)

	status, err := NewStreamCommand(ctx, NoStatus(func(_ *Context, c client.StreamClient, _ []string) error {
		return nil
	})).Run()
	assert.NoError(t, err)
	assert.Equal(t, 0, status)

	status, err = NewFibAgentCommand(ctx, NoStatus(func(_ *Context, c client.FibAgentClient, _ []string) error {
		counters, err := c.GetCounters()
		assert.Equal(t, int64(3), counters["fib.num_routes"])
		return err
	})).Run()
	assert.NoError(t, err)
	assert.Equal(t, 0, status)

	assert.Equal(t, []string{"stream@localhost", "fib@localhost"}, dialer.dials)
	assert.Equal(t, 2, ctrl.closed)
}

func TestNoStatus(t *testing.T) {
	errOp := errors.New("failed")
	op := NoStatus(func(*Context, client.CtrlClient, []string) error { return errOp })

	status, err := op(nil, nil, nil)
	assert.Equal(t, 0, status)
	assert.Equal(t, errOp, err)
}
