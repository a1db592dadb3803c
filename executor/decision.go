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
	"time"

	"github.com/openr-tools/breeze/client"
	"github.com/openr-tools/breeze/tabular"
	"k8s.io/apimachinery/pkg/util/sets"
)

type adjacencyRow struct {
	Node       string `json:"node"`
	Neighbor   string `json:"neighbor"`
	LocalIf    string `json:"local_if"`
	RemoteIf   string `json:"remote_if"`
	Metric     int32  `json:"metric"`
	Label      int32  `json:"label"`
	Overloaded bool   `json:"overloaded"`
	NextHopV6  string `json:"next_hop_v6"`
	Rtt        string `json:"rtt"`
}

type prefixRow struct {
	Node       string `json:"node"`
	Prefix     string `json:"prefix"`
	Type       string `json:"type"`
	Forwarding string `json:"forwarding"`
}

// ShowAdjacencies prints the adjacencies Decision knows of, for the given
// nodes. With no node given, only the adjacencies of the connected node are
// printed.
func ShowAdjacencies(ctx *Context, ctrl client.CtrlClient, nodes sets.String) error {
	dbs, err := ctrl.GetDecisionAdjacencyDbs()
	if err != nil {
		return err
	}
	if nodes, err = resolveNodes(ctrl, nodes); err != nil {
		return err
	}

	var rows []interface{}
	err = IterDBs(&rows, dbs, nodes, func(rows *[]interface{}, db *client.AdjacencyDatabase) error {
		for _, adj := range db.Adjacencies {
			*rows = append(*rows, adjacencyRow{
				Node:       db.ThisNodeName,
				Neighbor:   adj.OtherNodeName,
				LocalIf:    adj.IfName,
				RemoteIf:   adj.OtherIfName,
				Metric:     adj.Metric,
				Label:      adj.AdjLabel,
				Overloaded: adj.IsOverloaded || db.IsOverloaded,
				NextHopV6:  adj.NextHopV6.String(),
				Rtt:        (time.Duration(adj.Rtt) * time.Microsecond).String(),
			})
		}
		return nil
	})
	if err != nil {
		return err
	}
	tabular.Print(ctx, rows)
	return nil
}

// ShowPrefixes prints the prefixes Decision knows of, for the given nodes.
// With no node given, only the prefixes of the connected node are printed.
func ShowPrefixes(ctx *Context, ctrl client.CtrlClient, nodes sets.String) error {
	dbs, err := ctrl.GetDecisionPrefixDbs()
	if err != nil {
		return err
	}
	if nodes, err = resolveNodes(ctrl, nodes); err != nil {
		return err
	}

	var rows []interface{}
	err = IterDBs(&rows, dbs, nodes, func(rows *[]interface{}, db *client.PrefixDatabase) error {
		for _, entry := range db.PrefixEntries {
			*rows = append(*rows, prefixRow{
				Node:       db.ThisNodeName,
				Prefix:     entry.Prefix.String(),
				Type:       entry.Type.String(),
				Forwarding: entry.ForwardingType.String(),
			})
		}
		return nil
	})
	if err != nil {
		return err
	}
	tabular.Print(ctx, rows)
	return nil
}

func resolveNodes(ctrl client.CtrlClient, nodes sets.String) (sets.String, error) {
	if nodes.Len() != 0 {
		return nodes, nil
	}
	name, err := ctrl.GetMyNodeName()
	if err != nil {
		return nil, err
	}
	return sets.NewString(name), nil
}
