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

	"github.com/stretchr/testify/assert"
	"k8s.io/apimachinery/pkg/util/sets"
)

type visit struct {
	sum   int
	order []int
}

func sumDB(v *visit, db int) error {
	v.sum += db
	v.order = append(v.order, db)
	return nil
}

func TestIterDBs(t *testing.T) {
	dbs := map[string]int{"a": 1, "c": 3, "b": 2}

	testCases := []struct {
		nodes    sets.String
		sum      int
		expected []int
	}{
		{sets.NewString("a", "b"), 3, []int{1, 2}},
		{sets.NewString(AllNodes), 6, []int{1, 2, 3}},
		{sets.NewString("c", AllNodes), 6, []int{1, 2, 3}},
		{sets.NewString("d"), 0, nil},
		{sets.NewString(), 0, nil},
		// the marker is matched exactly
		{sets.NewString("ALL", "al*"), 0, nil},
	}

	for _, tt := range testCases {
		v := &visit{}
		assert.NoError(t, IterDBs(v, dbs, tt.nodes, sumDB))
		assert.Equal(t, tt.sum, v.sum)
		assert.Equal(t, tt.expected, v.order)
	}
}

func TestIterDBsAbortsOnError(t *testing.T) {
	errParse := errors.New("bad db")
	dbs := map[string]int{"node-1": 1, "node-2": 2, "node-3": 3}

	var visited []int
	err := IterDBs(&visited, dbs, sets.NewString(AllNodes), func(visited *[]int, db int) error {
		*visited = append(*visited, db)
		if db == 2 {
			return errParse
		}
		return nil
	})
	assert.Equal(t, errParse, err)
	assert.Equal(t, []int{1, 2}, visited)
}
