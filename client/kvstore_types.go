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
	"fmt"
	"math"

	"github.com/apache/thrift/lib/go/thrift"
	"k8s.io/apimachinery/pkg/util/sets"
)

const (
	// AllDBMarker is the key prefix matching every key of the KvStore.
	AllDBMarker = ""

	AdjDBMarker    = "adj:"
	PrefixDBMarker = "prefix:"

	// DefaultArea is the area every node belongs to unless configured otherwise.
	DefaultArea = "0"

	// TTLInfinity marks a key that never expires.
	TTLInfinity int64 = math.MinInt32
)

// Value is a versioned entry of the KvStore.
type Value struct {
	Version      int64
	OriginatorID string

	// nil when the daemon was asked not to publish values.
	Value []byte

	TTL        int64
	TTLVersion int64

	// nil when the hash was not computed.
	Hash *int64
}

func (v *Value) Read(iprot thrift.TProtocol) error {
	return readStruct(iprot, func(id int16, ftype thrift.TType) (bool, error) {
		var err error
		switch {
		case id == 1 && ftype == thrift.I64:
			v.Version, err = iprot.ReadI64()
		case id == 2 && ftype == thrift.STRING:
			v.Value, err = iprot.ReadBinary()
		case id == 3 && ftype == thrift.STRING:
			v.OriginatorID, err = iprot.ReadString()
		case id == 4 && ftype == thrift.I64:
			v.TTL, err = iprot.ReadI64()
		case id == 5 && ftype == thrift.I64:
			v.TTLVersion, err = iprot.ReadI64()
		case id == 6 && ftype == thrift.I64:
			var hash int64
			hash, err = iprot.ReadI64()
			v.Hash = &hash
		default:
			return false, nil
		}
		return true, err
	})
}

func (v *Value) Write(oprot thrift.TProtocol) error {
	var value, hash fieldWriter
	if v.Value != nil {
		value = binaryField("value", 2, v.Value)
	}
	if v.Hash != nil {
		hash = i64Field("hash", 6, *v.Hash)
	}
	return writeStruct(oprot, "Value",
		i64Field("version", 1, v.Version),
		value,
		stringField("originatorId", 3, v.OriginatorID),
		i64Field("ttl", 4, v.TTL),
		i64Field("ttlVersion", 5, v.TTLVersion),
		hash,
	)
}

// HashOnly returns a copy of v without the value, as used in hash-based dumps.
func (v *Value) HashOnly() *Value {
	return &Value{
		Version:      v.Version,
		OriginatorID: v.OriginatorID,
		TTL:          v.TTL,
		TTLVersion:   v.TTLVersion,
		Hash:         v.Hash,
	}
}

func (v *Value) String() string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("Value(version=%d, originator=%s, ttl=%d, ttlVersion=%d)", v.Version, v.OriginatorID, v.TTL, v.TTLVersion)
}

// KeyDumpParams is the filter of a KvStore key dump.
//
// The optional collections are nil when absent. Build it with NewKeyDumpParams
// so empty inputs are turned into absent fields.
type KeyDumpParams struct {
	Prefix string

	OriginatorIDs sets.String

	KeyValHashes map[string]*Value

	Keys []string

	// FilterOr when unset.
	Oper FilterOperator

	IgnoreTTL         bool
	DoNotPublishValue bool
}

// NewKeyDumpParams creates the dump filter for the given prefix, originators and
// known key hashes. Empty collections are left absent and the key list is only
// populated when the prefix is not empty.
func NewKeyDumpParams(prefix string, originatorIDs sets.String, keyValHashes map[string]*Value) *KeyDumpParams {
	params := &KeyDumpParams{
		Prefix:    prefix,
		IgnoreTTL: true,
	}
	if len(originatorIDs) != 0 {
		params.OriginatorIDs = originatorIDs
	}
	if len(keyValHashes) != 0 {
		params.KeyValHashes = keyValHashes
	}
	if prefix != "" {
		params.Keys = []string{prefix}
	}
	return params
}

func (p *KeyDumpParams) Read(iprot thrift.TProtocol) error {
	return readStruct(iprot, func(id int16, ftype thrift.TType) (bool, error) {
		var err error
		switch {
		case id == 1 && ftype == thrift.STRING:
			p.Prefix, err = iprot.ReadString()
		case id == 2 && ftype == thrift.MAP:
			p.KeyValHashes, err = readValueMap(iprot)
		case id == 3 && ftype == thrift.SET:
			p.OriginatorIDs, err = readStringSet(iprot)
		case id == 4 && ftype == thrift.I32:
			var oper int32
			oper, err = iprot.ReadI32()
			p.Oper = FilterOperator(oper)
		case id == 5 && ftype == thrift.LIST:
			p.Keys, err = readStringList(iprot)
		case id == 6 && ftype == thrift.BOOL:
			p.IgnoreTTL, err = iprot.ReadBool()
		case id == 7 && ftype == thrift.BOOL:
			p.DoNotPublishValue, err = iprot.ReadBool()
		default:
			return false, nil
		}
		return true, err
	})
}

func (p *KeyDumpParams) Write(oprot thrift.TProtocol) error {
	var hashes, originators, oper, keys fieldWriter
	if p.KeyValHashes != nil {
		hashes = field("keyValHashes", thrift.MAP, 2, func(oprot thrift.TProtocol) error {
			return writeValueMap(oprot, p.KeyValHashes)
		})
	}
	if p.OriginatorIDs != nil {
		originators = field("originatorIds", thrift.SET, 3, func(oprot thrift.TProtocol) error {
			return writeStringSet(oprot, p.OriginatorIDs)
		})
	}
	if p.Oper != 0 {
		oper = i32Field("oper", 4, int32(p.Oper))
	}
	if p.Keys != nil {
		keys = field("keys", thrift.LIST, 5, func(oprot thrift.TProtocol) error {
			return writeStringList(oprot, p.Keys)
		})
	}
	return writeStruct(oprot, "KeyDumpParams",
		stringField("prefix", 1, p.Prefix),
		hashes,
		originators,
		oper,
		keys,
		boolField("ignoreTtl", 6, p.IgnoreTTL),
		boolField("doNotPublishValue", 7, p.DoNotPublishValue),
	)
}

// Publication is a batch of KvStore changes, or a full dump.
type Publication struct {
	KeyVals     map[string]*Value
	ExpiredKeys []string

	NodeIDs         []string
	TobeUpdatedKeys []string

	Area string
}

func (p *Publication) Read(iprot thrift.TProtocol) error {
	return readStruct(iprot, func(id int16, ftype thrift.TType) (bool, error) {
		var err error
		switch {
		case id == 2 && ftype == thrift.MAP:
			p.KeyVals, err = readValueMap(iprot)
		case id == 3 && ftype == thrift.LIST:
			p.ExpiredKeys, err = readStringList(iprot)
		case id == 4 && ftype == thrift.LIST:
			p.NodeIDs, err = readStringList(iprot)
		case id == 5 && ftype == thrift.LIST:
			p.TobeUpdatedKeys, err = readStringList(iprot)
		case id == 7 && ftype == thrift.STRING:
			p.Area, err = iprot.ReadString()
		default:
			return false, nil
		}
		return true, err
	})
}

func (p *Publication) Write(oprot thrift.TProtocol) error {
	var nodeIDs, tobeUpdated fieldWriter
	if p.NodeIDs != nil {
		nodeIDs = field("nodeIds", thrift.LIST, 4, func(oprot thrift.TProtocol) error {
			return writeStringList(oprot, p.NodeIDs)
		})
	}
	if p.TobeUpdatedKeys != nil {
		tobeUpdated = field("tobeUpdatedKeys", thrift.LIST, 5, func(oprot thrift.TProtocol) error {
			return writeStringList(oprot, p.TobeUpdatedKeys)
		})
	}
	return writeStruct(oprot, "Publication",
		field("keyVals", thrift.MAP, 2, func(oprot thrift.TProtocol) error {
			return writeValueMap(oprot, p.KeyVals)
		}),
		field("expiredKeys", thrift.LIST, 3, func(oprot thrift.TProtocol) error {
			return writeStringList(oprot, p.ExpiredKeys)
		}),
		nodeIDs,
		tobeUpdated,
		stringField("area", 7, p.Area),
	)
}
