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
	"bytes"
	"context"
	"errors"

	"github.com/openr-tools/breeze/client"
	"k8s.io/apimachinery/pkg/util/sets"
)

// fakeCtrl answers every call with canned data and records the calls.
type fakeCtrl struct {
	nodeName  string
	config    string
	events    map[client.InitializationEvent]int64
	pub       *client.Publication
	adjDbs    map[string]*client.AdjacencyDatabase
	prefixDbs map[string]*client.PrefixDatabase
	counters  map[string]int64

	// returned by every call when set
	err      error
	closeErr error

	calls      map[string]int
	closed     int
	lastParams *client.KeyDumpParams
	lastArea   string
}

func (f *fakeCtrl) record(method string) error {
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[method]++
	if f.err != nil {
		return &client.RPCError{Method: method, Err: f.err}
	}
	return nil
}

func (f *fakeCtrl) Close() error {
	f.closed++
	return f.closeErr
}

func (f *fakeCtrl) GetMyNodeName() (string, error) {
	return f.nodeName, f.record("getMyNodeName")
}

func (f *fakeCtrl) GetRunningConfig() (string, error) {
	return f.config, f.record("getRunningConfig")
}

func (f *fakeCtrl) GetInitializationEvents() (map[client.InitializationEvent]int64, error) {
	return f.events, f.record("getInitializationEvents")
}

func (f *fakeCtrl) GetKvStoreKeyValsFilteredArea(params *client.KeyDumpParams, area string) (*client.Publication, error) {
	f.lastParams = params
	f.lastArea = area
	return f.pub, f.record("getKvStoreKeyValsFilteredArea")
}

func (f *fakeCtrl) LongPollKvStoreAdjArea(area string, snapshot map[string]*client.Value) (bool, error) {
	panic("unimplemented")
}

func (f *fakeCtrl) GetDecisionAdjacencyDbs() (map[string]*client.AdjacencyDatabase, error) {
	return f.adjDbs, f.record("getDecisionAdjacencyDbs")
}

func (f *fakeCtrl) GetDecisionPrefixDbs() (map[string]*client.PrefixDatabase, error) {
	return f.prefixDbs, f.record("getDecisionPrefixDbs")
}

func (f *fakeCtrl) GetCounters() (map[string]int64, error) {
	return f.counters, f.record("getCounters")
}

// fakeStream publishes the canned publication once, then waits for the
// subscription to be cancelled.
type fakeStream struct {
	*fakeCtrl
}

func (f *fakeStream) SubscribeKvStore(ctx context.Context, area string, params *client.KeyDumpParams, handler client.PublicationHandler) error {
	f.lastParams = params
	f.lastArea = area
	if err := f.record("subscribeKvStore"); err != nil {
		return err
	}
	if err := handler(f.pub); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}

type fakeDialer struct {
	// per host, defaults to ctrl
	hosts map[string]*fakeCtrl
	ctrl  *fakeCtrl

	unreachable sets.String

	dials []string
}

func (d *fakeDialer) dial(kind string, opts client.Options) (*fakeCtrl, error) {
	d.dials = append(d.dials, kind+"@"+opts.Host)
	if d.unreachable.Has(opts.Host) {
		return nil, &client.RPCError{Method: "connect", Err: errors.New("connection refused")}
	}
	if c, ok := d.hosts[opts.Host]; ok {
		return c, nil
	}
	return d.ctrl, nil
}

func (d *fakeDialer) DialCtrl(opts client.Options) (client.CtrlClient, error) {
	c, err := d.dial("ctrl", opts)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (d *fakeDialer) DialStream(opts client.Options) (client.StreamClient, error) {
	c, err := d.dial("stream", opts)
	if err != nil {
		return nil, err
	}
	return &fakeStream{fakeCtrl: c}, nil
}

func (d *fakeDialer) DialFibAgent(opts client.Options) (client.FibAgentClient, error) {
	c, err := d.dial("fib", opts)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func newTestContext(ctrl *fakeCtrl) (*Context, *fakeDialer, *bytes.Buffer) {
	dialer := &fakeDialer{ctrl: ctrl}
	buf := &bytes.Buffer{}
	return NewContext(buf, dialer, client.Options{}), dialer, buf
}
