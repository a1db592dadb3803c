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
	"sort"

	"k8s.io/apimachinery/pkg/util/sets"
)

// AllNodes selects every node when present in a node filter.
const AllNodes = "all"

// IterDBs folds the per-node databases into container, in ascending order of
// node name. Only the nodes in the filter are visited, or all of them if the
// filter holds AllNodes. The first error stops the iteration.
func IterDBs[A any, DB any](container A, dbs map[string]DB, nodes sets.String, parse func(container A, db DB) error) error {
	names := make([]string, 0, len(dbs))
	for node := range dbs {
		names = append(names, node)
	}
	sort.Strings(names)

	for _, node := range names {
		if !nodes.Has(AllNodes) && !nodes.Has(node) {
			continue
		}
		if err := parse(container, dbs[node]); err != nil {
			return err
		}
	}
	return nil
}
