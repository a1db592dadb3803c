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

package client

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeKvStore replays a scripted sequence of dumps and long-poll answers.
type fakeKvStore struct {
	dumps []*Publication
	polls []bool

	dumpParams    []*KeyDumpParams
	pollSnapshots []map[string]*Value
}

func (f *fakeKvStore) Close() error { return nil }

func (f *fakeKvStore) GetMyNodeName() (string, error) {
	panic("unimplemented")
}

func (f *fakeKvStore) GetRunningConfig() (string, error) {
	panic("unimplemented")
}

func (f *fakeKvStore) GetInitializationEvents() (map[InitializationEvent]int64, error) {
	panic("unimplemented")
}

func (f *fakeKvStore) GetKvStoreKeyValsFilteredArea(params *KeyDumpParams, area string) (*Publication, error) {
	f.dumpParams = append(f.dumpParams, params)
	if len(f.dumps) == 0 {
		return nil, errors.New("no more dumps")
	}
	pub := f.dumps[0]
	f.dumps = f.dumps[1:]
	return pub, nil
}

func (f *fakeKvStore) LongPollKvStoreAdjArea(area string, snapshot map[string]*Value) (bool, error) {
	f.pollSnapshots = append(f.pollSnapshots, snapshot)
	if len(f.polls) == 0 {
		return false, errors.New("no more polls")
	}
	changed := f.polls[0]
	f.polls = f.polls[1:]
	return changed, nil
}

func (f *fakeKvStore) GetDecisionAdjacencyDbs() (map[string]*AdjacencyDatabase, error) {
	panic("unimplemented")
}

func (f *fakeKvStore) GetDecisionPrefixDbs() (map[string]*PrefixDatabase, error) {
	panic("unimplemented")
}

func (f *fakeKvStore) GetCounters() (map[string]int64, error) {
	panic("unimplemented")
}

func TestSubscribeKvStore(t *testing.T) {
	h1, h2 := int64(1), int64(2)
	fake := &fakeKvStore{
		dumps: []*Publication{
			{KeyVals: map[string]*Value{
				"adj:node-1": {Version: 1, Value: []byte("a"), Hash: &h1},
				"adj:node-2": {Version: 1, Value: []byte("b"), Hash: &h2},
			}},
			{KeyVals: map[string]*Value{"adj:node-3": {Version: 1, Value: []byte("c")}}, ExpiredKeys: []string{"adj:node-2"}},
		},
		polls: []bool{false, true},
	}

	errStop := errors.New("stop")
	var received []*Publication
	params := NewKeyDumpParams(AdjDBMarker, nil, nil)
	err := subscribeKvStore(context.Background(), fake, DefaultArea, params, func(pub *Publication) error {
		received = append(received, pub)
		if len(received) == 2 {
			return errStop
		}
		return nil
	})
	assert.Equal(t, errStop, err)
	assert.Len(t, received, 2)

	// the first dump asks for everything, the second only for what differs
	assert.Len(t, fake.dumpParams, 2)
	assert.Nil(t, fake.dumpParams[0].KeyValHashes)
	assert.Len(t, fake.dumpParams[1].KeyValHashes, 2)
	assert.Nil(t, fake.dumpParams[1].KeyValHashes["adj:node-1"].Value)
	assert.Equal(t, &h1, fake.dumpParams[1].KeyValHashes["adj:node-1"].Hash)

	// the caller's params are left untouched
	assert.Nil(t, params.KeyValHashes)

	assert.Len(t, fake.pollSnapshots, 2)
	assert.Contains(t, fake.pollSnapshots[0], "adj:node-2")
}

func TestSubscribeKvStoreCancelled(t *testing.T) {
	fake := &fakeKvStore{dumps: []*Publication{{}}}
	ctx, cancel := context.WithCancel(context.Background())

	err := subscribeKvStore(ctx, fake, DefaultArea, NewKeyDumpParams(AllDBMarker, nil, nil), func(pub *Publication) error {
		cancel()
		return nil
	})
	assert.NoError(t, err)
	assert.Empty(t, fake.pollSnapshots)
}

func TestSubscribeKvStorePollFailure(t *testing.T) {
	fake := &fakeKvStore{dumps: []*Publication{{}}}

	err := subscribeKvStore(context.Background(), fake, DefaultArea, NewKeyDumpParams(AllDBMarker, nil, nil), func(pub *Publication) error {
		return nil
	})
	assert.EqualError(t, err, "no more polls")
}

func TestMergePublication(t *testing.T) {
	snapshot := map[string]*Value{"k1": {Version: 1}, "k2": {Version: 1}}
	mergePublication(snapshot, &Publication{
		KeyVals:     map[string]*Value{"k1": {Version: 2}, "k3": {Version: 1}},
		ExpiredKeys: []string{"k2"},
	})
	assert.Equal(t, map[string]*Value{"k1": {Version: 2}, "k3": {Version: 1}}, snapshot)
	assert.Nil(t, hashesOf(map[string]*Value{}))
}
