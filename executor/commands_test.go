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
	"net"
	"strings"
	"testing"
	"time"

	"github.com/openr-tools/breeze/client"
	"github.com/stretchr/testify/assert"
	"k8s.io/apimachinery/pkg/util/sets"
)

func TestShowConfig(t *testing.T) {
	ctx, _, buf := newTestContext(&fakeCtrl{config: testRunningConfig})

	assert.NoError(t, ShowConfig(ctx, ""))
	assert.Contains(t, buf.String(), `"node_name": "node-1"`)

	buf.Reset()
	assert.NoError(t, ShowConfig(ctx, "kvstore_config.sync_interval_s"))
	assert.Equal(t, "60\n", buf.String())

	assert.Error(t, ShowConfig(ctx, "no_such_entry"))
}

func TestUseArea(t *testing.T) {
	ctx, _, _ := newTestContext(&fakeCtrl{config: testRunningConfig})

	areas, err := Areas(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"0", "spine"}, areas)

	assert.NoError(t, UseArea(ctx, "spine"))
	assert.Equal(t, "spine", ctx.Area())

	assert.Error(t, UseArea(ctx, "leaf"))
	assert.Equal(t, "spine", ctx.Area())
}

func TestListKvStoreKeys(t *testing.T) {
	hash := int64(255)
	ctrl := &fakeCtrl{pub: &client.Publication{KeyVals: map[string]*client.Value{
		"prefix:node-2": {Version: 1, OriginatorID: "node-2", Value: make([]byte, 2048), TTL: 300000},
		"adj:node-1":    {Version: 4, OriginatorID: "node-1", Value: []byte("adj"), TTL: client.TTLInfinity, Hash: &hash},
	}}}
	ctx, _, buf := newTestContext(ctrl)
	ctx.SetArea("spine")

	params := client.NewKeyDumpParams("", sets.NewString("node-1", "node-2"), nil)
	_, err := NewCtrlCommand(ctx, NoStatus(func(ctx *Context, c client.CtrlClient, _ []string) error {
		return ListKvStoreKeys(ctx, c, params)
	})).Run()
	assert.NoError(t, err)
	assert.Equal(t, params, ctrl.lastParams)
	assert.Equal(t, "spine", ctrl.lastArea)

	out := buf.String()
	assert.Regexp(t, `adj:node-1\s+\|\s+node-1\s+\|\s+4\s+\|\s+INF`, out)
	assert.Regexp(t, `prefix:node-2\s+\|\s+node-2\s+\|\s+1\s+\|\s+5m0s`, out)
	assert.Contains(t, out, "2.0 kB")
	assert.Contains(t, out, "0xff")
	assert.Less(t, strings.Index(out, "adj:node-1"), strings.Index(out, "prefix:node-2"))
	assert.Contains(t, out, `2 keys in area "spine"`)
}

func TestSnoopKvStore(t *testing.T) {
	ctrl := &fakeCtrl{pub: &client.Publication{
		KeyVals:     map[string]*client.Value{"adj:node-1": {Version: 2, OriginatorID: "node-1"}},
		ExpiredKeys: []string{"adj:node-9"},
	}}
	ctx, dialer, buf := newTestContext(ctrl)

	stop := make(chan struct{})
	time.AfterFunc(50*time.Millisecond, func() { close(stop) })

	params := client.NewKeyDumpParams(client.AdjDBMarker, nil, nil)
	_, err := NewStreamCommand(ctx, NoStatus(func(ctx *Context, c client.StreamClient, _ []string) error {
		return SnoopKvStore(ctx, c, params, stop)
	})).Run()
	assert.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `dump of area "0": 1 keys`)
	assert.Contains(t, out, "+ adj:node-1 (version 2, originator node-1")
	assert.Contains(t, out, "- adj:node-9")
	assert.Equal(t, []string{"stream@localhost"}, dialer.dials)
	assert.Equal(t, 1, ctrl.closed)
}

func TestSnoopKvStoreFailure(t *testing.T) {
	ctrl := &fakeCtrl{err: net.ErrClosed}
	ctx, _, _ := newTestContext(ctrl)

	_, err := NewStreamCommand(ctx, NoStatus(func(ctx *Context, c client.StreamClient, _ []string) error {
		return SnoopKvStore(ctx, c, client.NewKeyDumpParams("", nil, nil), make(chan struct{}))
	})).Run()
	assert.ErrorIs(t, err, net.ErrClosed)
}

func decisionFixture() *fakeCtrl {
	return &fakeCtrl{
		nodeName: "node-1",
		adjDbs: map[string]*client.AdjacencyDatabase{
			"node-2": {ThisNodeName: "node-2", Adjacencies: []*client.Adjacency{
				{OtherNodeName: "node-1", IfName: "eth1", OtherIfName: "eth0", Metric: 20},
			}},
			"node-1": {ThisNodeName: "node-1", Adjacencies: []*client.Adjacency{
				{OtherNodeName: "node-2", IfName: "eth0", OtherIfName: "eth1", Metric: 10, Rtt: 1500},
			}},
		},
		prefixDbs: map[string]*client.PrefixDatabase{
			"node-1": {ThisNodeName: "node-1", PrefixEntries: []*client.PrefixEntry{{
				Prefix: &client.IPPrefix{PrefixAddress: &client.BinaryAddress{Addr: net.ParseIP("10.1.0.0").To4()}, PrefixLength: 16},
				Type:   client.PrefixTypeLoopback,
			}}},
			"node-2": {ThisNodeName: "node-2", PrefixEntries: []*client.PrefixEntry{{
				Prefix: &client.IPPrefix{PrefixAddress: &client.BinaryAddress{Addr: net.ParseIP("10.2.0.0").To4()}, PrefixLength: 16},
				Type:   client.PrefixTypeBGP,
			}}},
		},
	}
}

func TestShowAdjacencies(t *testing.T) {
	ctrl := decisionFixture()
	ctx, _, buf := newTestContext(ctrl)

	// the connected node by default
	assert.NoError(t, ShowAdjacencies(ctx, ctrl, sets.NewString()))
	assert.Regexp(t, `node-1\s+\|\s+node-2\s+\|\s+eth0\s+\|\s+eth1\s+\|\s+10`, buf.String())
	assert.Contains(t, buf.String(), "1.5ms")
	assert.NotRegexp(t, `node-2\s+\|\s+node-1`, buf.String())
	assert.Equal(t, 1, ctrl.calls["getMyNodeName"])

	buf.Reset()
	assert.NoError(t, ShowAdjacencies(ctx, ctrl, sets.NewString(AllNodes)))
	out := buf.String()
	assert.Regexp(t, `node-2\s+\|\s+node-1\s+\|\s+eth1`, out)
	assert.Less(t, strings.Index(out, "| node-1 | node-2"), strings.Index(out, "| node-2 | node-1"))
	assert.Equal(t, 1, ctrl.calls["getMyNodeName"])
}

func TestShowPrefixes(t *testing.T) {
	ctrl := decisionFixture()
	ctx, _, buf := newTestContext(ctrl)

	assert.NoError(t, ShowPrefixes(ctx, ctrl, sets.NewString("node-2")))
	assert.Regexp(t, `node-2\s+\|\s+10\.2\.0\.0/16\s+\|\s+BGP\s+\|\s+IP`, buf.String())
	assert.NotContains(t, buf.String(), "10.1.0.0/16")
}

func TestShowCounters(t *testing.T) {
	ctrl := &fakeCtrl{counters: map[string]int64{
		"kvstore.num_keys":        1234567,
		"kvstore.num_peers":       0,
		"decision.spf_runs.count": 5,
	}}
	ctx, _, buf := newTestContext(ctrl)

	assert.NoError(t, ShowCounters(ctx, ctrl, "kvstore."))
	assert.Regexp(t, `kvstore\.num_keys\s+\|\s+1,234,567`, buf.String())
	assert.Regexp(t, `kvstore\.num_peers\s+\|\s+0`, buf.String())
	assert.NotContains(t, buf.String(), "decision")

	buf.Reset()
	assert.NoError(t, ShowCounters(ctx, ctrl, "fib."))
	assert.Equal(t, "no counter starts with \"fib.\"\n", buf.String())
}

func TestShowStats(t *testing.T) {
	ctrl := &fakeCtrl{counters: map[string]int64{
		"kvstore.num_keys":                 12,
		"decision.spf_runs.count.60":       0,
		"decision.spf_runs.count":          9,
		"fib.sync_fib_calls.count.3600":    2,
		"fib.process_route_db.count.60":    1,
		"fib.process_route_db.count.600":   1,
		"fib.process_route_db.count.3600":  1,
		"fib.process_route_db.count":       1,
	}}
	ctx, _, buf := newTestContext(ctrl)

	assert.NoError(t, ShowOpenrStats(ctx, ctrl, nil))
	out := buf.String()
	assert.Contains(t, out, "> KvStore ")
	assert.Contains(t, out, "> Decision ")
	assert.Regexp(t, `Number of keys\s+12`, out)
	assert.Regexp(t, `SPF runs\s+0\s+N/A\s+N/A\s+9`, out)

	buf.Reset()
	_, err := NewFibAgentCommand(ctx, NoStatus(ShowFibStats)).Run()
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "> Fib ")
	assert.Regexp(t, `Route DB processed\s+1\s+1\s+1\s+1`, buf.String())
	assert.Regexp(t, `Sync FIB calls\s+N/A\s+N/A\s+2\s+N/A`, buf.String())
}
