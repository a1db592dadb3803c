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
	"testing"

	"github.com/apache/thrift/lib/go/thrift"
	"github.com/stretchr/testify/assert"
	"k8s.io/apimachinery/pkg/util/sets"
)

func TestNewKeyDumpParams(t *testing.T) {
	params := NewKeyDumpParams(AllDBMarker, sets.NewString(), map[string]*Value{})
	assert.Equal(t, "", params.Prefix)
	assert.Nil(t, params.OriginatorIDs)
	assert.Nil(t, params.KeyValHashes)
	assert.Nil(t, params.Keys)
	assert.True(t, params.IgnoreTTL)
	assert.False(t, params.DoNotPublishValue)

	hash := int64(7)
	hashes := map[string]*Value{"adj:node-1": {Version: 1, Hash: &hash}}
	params = NewKeyDumpParams(AdjDBMarker, sets.NewString("node-1"), hashes)
	assert.Equal(t, AdjDBMarker, params.Prefix)
	assert.Equal(t, []string{AdjDBMarker}, params.Keys)
	assert.True(t, params.OriginatorIDs.Has("node-1"))
	assert.Equal(t, hashes, params.KeyValHashes)

	params = NewKeyDumpParams(PrefixDBMarker, nil, nil)
	assert.Equal(t, []string{PrefixDBMarker}, params.Keys)
	assert.Nil(t, params.OriginatorIDs)
}

func TestKeyDumpParamsAbsentFields(t *testing.T) {
	buf := thrift.NewTMemoryBuffer()
	proto := thrift.NewTBinaryProtocolTransport(buf)

	params := NewKeyDumpParams(AllDBMarker, nil, nil)
	assert.NoError(t, params.Write(proto))

	decoded := &KeyDumpParams{}
	assert.NoError(t, decoded.Read(proto))
	assert.Nil(t, decoded.OriginatorIDs)
	assert.Nil(t, decoded.KeyValHashes)
	assert.Nil(t, decoded.Keys)
	assert.Equal(t, FilterOperator(0), decoded.Oper)
	assert.True(t, decoded.IgnoreTTL)
}

func TestValueOptionalFields(t *testing.T) {
	buf := thrift.NewTMemoryBuffer()
	proto := thrift.NewTBinaryProtocolTransport(buf)

	hash := int64(-12)
	full := &Value{Version: 2, OriginatorID: "node-2", Value: []byte{0x1, 0x2}, TTL: 3600000, TTLVersion: 4, Hash: &hash}
	assert.NoError(t, full.Write(proto))
	assert.NoError(t, full.HashOnly().Write(proto))

	decoded := &Value{}
	assert.NoError(t, decoded.Read(proto))
	assert.Equal(t, full, decoded)

	decoded = &Value{}
	assert.NoError(t, decoded.Read(proto))
	assert.Nil(t, decoded.Value)
	assert.Equal(t, int64(-12), *decoded.Hash)
	assert.Equal(t, "Value(version=2, originator=node-2, ttl=3600000, ttlVersion=4)", decoded.String())
}

func TestInitializationEventNames(t *testing.T) {
	assert.Equal(t, "KVSTORE_SYNCED", InitEventKvStoreSynced.String())

	event, err := InitializationEventFromString("FIB_SYNCED")
	assert.NoError(t, err)
	assert.Equal(t, InitEventFibSynced, event)

	_, err = InitializationEventFromString("NOT_AN_EVENT")
	assert.Error(t, err)
}
