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
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/openr-tools/breeze/client"
	"github.com/openr-tools/breeze/tabular"
)

var openrStatsTemplates = tabular.MustParseStatsTemplates(`
- title: KvStore
  counters:
    Number of keys: kvstore.num_keys
    Number of peers: kvstore.num_peers
    Pending full sync: kvstore.pending_full_sync
  stats:
    Received publications: kvstore.received_publications.count
    Received key-vals: kvstore.received_key_vals.sum
    Updates applied: kvstore.updated_key_vals.sum
    Expired keys: kvstore.expired_key_vals.sum
- title: Decision
  counters:
    Adjacency databases: decision.num_nodes
    Prefixes: decision.num_prefixes
  stats:
    Adjacency DB updates: decision.adj_db_update.count
    Prefix DB updates: decision.prefix_db_update.count
    SPF runs: decision.spf_runs.count
    SPF duration (ms): decision.spf_ms.avg
- title: Spark
  stats:
    Hello packets received: spark.hello.packet_recv.sum
    Hello packets sent: spark.hello.packet_sent.sum
    Neighbor restarts: spark.neighbor_restarting.count
`)

var fibStatsTemplates = tabular.MustParseStatsTemplates(`
- title: Fib
  counters:
    Unicast routes: fib.num_of_route_updates
    MPLS routes: fib.num_mpls_routes
  stats:
    Route DB processed: fib.process_route_db.count
    Sync FIB calls: fib.sync_fib_calls.count
    Sync FIB failures: fib.thrift.failure.sync_fib.count
    Add/delete routes failures: fib.thrift.failure.add_del_route.count
`)

type counterRow struct {
	Counter string `json:"counter"`
	Value   string `json:"value"`
}

// ShowCounters prints the counters of the node whose name starts with prefix.
func ShowCounters(ctx *Context, ctrl client.CtrlClient, prefix string) error {
	counters, err := ctrl.GetCounters()
	if err != nil {
		return err
	}

	var rows []interface{}
	for _, name := range sortedKeys(counters) {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		rows = append(rows, counterRow{Counter: name, Value: humanize.Comma(counters[name])})
	}
	if len(rows) == 0 {
		fmt.Fprintf(ctx, "no counter starts with \"%s\"\n", prefix)
		return nil
	}
	tabular.Print(ctx, rows)
	return nil
}

// ShowOpenrStats prints the KvStore, Decision and Spark statistics.
func ShowOpenrStats(ctx *Context, ctrl client.CtrlClient, _ []string) error {
	counters, err := ctrl.GetCounters()
	if err != nil {
		return err
	}
	tabular.PrintStats(ctx, openrStatsTemplates, counters)
	return nil
}

// ShowFibStats prints the statistics of the FIB agent.
func ShowFibStats(ctx *Context, fib client.FibAgentClient, _ []string) error {
	counters, err := fib.GetCounters()
	if err != nil {
		return err
	}
	tabular.PrintStats(ctx, fibStatsTemplates, counters)
	return nil
}
