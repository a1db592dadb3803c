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
	"sort"

	"github.com/apache/thrift/lib/go/thrift"
	"k8s.io/apimachinery/pkg/util/sets"
)

// ThriftStruct is a struct that can be serialized with any thrift protocol.
type ThriftStruct interface {
	Read(iprot thrift.TProtocol) error
	Write(oprot thrift.TProtocol) error
}

// fieldReader decodes the field `id` of type `ftype` from the protocol.
// Returning false means the field is unknown and will be skipped.
type fieldReader func(id int16, ftype thrift.TType) (bool, error)

func readStruct(iprot thrift.TProtocol, read fieldReader) error {
	if _, err := iprot.ReadStructBegin(); err != nil {
		return err
	}
	for {
		_, ftype, id, err := iprot.ReadFieldBegin()
		if err != nil {
			return err
		}
		if ftype == thrift.STOP {
			break
		}
		handled, err := read(id, ftype)
		if err != nil {
			return err
		}
		if !handled {
			if err := iprot.Skip(ftype); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd()
}

// fieldWriter encodes one field; a nil fieldWriter leaves the field unset.
type fieldWriter func(oprot thrift.TProtocol) error

func writeStruct(oprot thrift.TProtocol, name string, fields ...fieldWriter) error {
	if err := oprot.WriteStructBegin(name); err != nil {
		return err
	}
	for _, f := range fields {
		if f == nil {
			continue
		}
		if err := f(oprot); err != nil {
			return err
		}
	}
	if err := oprot.WriteFieldStop(); err != nil {
		return err
	}
	return oprot.WriteStructEnd()
}

func field(name string, ftype thrift.TType, id int16, body fieldWriter) fieldWriter {
	return func(oprot thrift.TProtocol) error {
		if err := oprot.WriteFieldBegin(name, ftype, id); err != nil {
			return err
		}
		if err := body(oprot); err != nil {
			return err
		}
		return oprot.WriteFieldEnd()
	}
}

func stringField(name string, id int16, v string) fieldWriter {
	return field(name, thrift.STRING, id, func(oprot thrift.TProtocol) error {
		return oprot.WriteString(v)
	})
}

func binaryField(name string, id int16, v []byte) fieldWriter {
	return field(name, thrift.STRING, id, func(oprot thrift.TProtocol) error {
		return oprot.WriteBinary(v)
	})
}

func boolField(name string, id int16, v bool) fieldWriter {
	return field(name, thrift.BOOL, id, func(oprot thrift.TProtocol) error {
		return oprot.WriteBool(v)
	})
}

func i16Field(name string, id int16, v int16) fieldWriter {
	return field(name, thrift.I16, id, func(oprot thrift.TProtocol) error {
		return oprot.WriteI16(v)
	})
}

func i32Field(name string, id int16, v int32) fieldWriter {
	return field(name, thrift.I32, id, func(oprot thrift.TProtocol) error {
		return oprot.WriteI32(v)
	})
}

func i64Field(name string, id int16, v int64) fieldWriter {
	return field(name, thrift.I64, id, func(oprot thrift.TProtocol) error {
		return oprot.WriteI64(v)
	})
}

func structField(name string, id int16, v ThriftStruct) fieldWriter {
	return field(name, thrift.STRUCT, id, v.Write)
}

func readStringList(iprot thrift.TProtocol) ([]string, error) {
	_, size, err := iprot.ReadListBegin()
	if err != nil {
		return nil, err
	}
	list := make([]string, 0, size)
	for i := 0; i < size; i++ {
		s, err := iprot.ReadString()
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, iprot.ReadListEnd()
}

func writeStringList(oprot thrift.TProtocol, list []string) error {
	if err := oprot.WriteListBegin(thrift.STRING, len(list)); err != nil {
		return err
	}
	for _, s := range list {
		if err := oprot.WriteString(s); err != nil {
			return err
		}
	}
	return oprot.WriteListEnd()
}

func readStringSet(iprot thrift.TProtocol) (sets.String, error) {
	_, size, err := iprot.ReadSetBegin()
	if err != nil {
		return nil, err
	}
	set := sets.NewString()
	for i := 0; i < size; i++ {
		s, err := iprot.ReadString()
		if err != nil {
			return nil, err
		}
		set.Insert(s)
	}
	return set, iprot.ReadSetEnd()
}

// writeStringSet writes the set in sorted order so the encoding is stable.
func writeStringSet(oprot thrift.TProtocol, set sets.String) error {
	if err := oprot.WriteSetBegin(thrift.STRING, set.Len()); err != nil {
		return err
	}
	for _, s := range set.List() {
		if err := oprot.WriteString(s); err != nil {
			return err
		}
	}
	return oprot.WriteSetEnd()
}

func readValueMap(iprot thrift.TProtocol) (map[string]*Value, error) {
	_, _, size, err := iprot.ReadMapBegin()
	if err != nil {
		return nil, err
	}
	m := make(map[string]*Value, size)
	for i := 0; i < size; i++ {
		key, err := iprot.ReadString()
		if err != nil {
			return nil, err
		}
		val := &Value{}
		if err := val.Read(iprot); err != nil {
			return nil, err
		}
		m[key] = val
	}
	return m, iprot.ReadMapEnd()
}

func writeValueMap(oprot thrift.TProtocol, m map[string]*Value) error {
	if err := oprot.WriteMapBegin(thrift.STRING, thrift.STRUCT, len(m)); err != nil {
		return err
	}
	for _, key := range sortedKeys(m) {
		if err := oprot.WriteString(key); err != nil {
			return err
		}
		if err := m[key].Write(oprot); err != nil {
			return err
		}
	}
	return oprot.WriteMapEnd()
}

func readCounterMap(iprot thrift.TProtocol) (map[string]int64, error) {
	_, _, size, err := iprot.ReadMapBegin()
	if err != nil {
		return nil, err
	}
	m := make(map[string]int64, size)
	for i := 0; i < size; i++ {
		key, err := iprot.ReadString()
		if err != nil {
			return nil, err
		}
		val, err := iprot.ReadI64()
		if err != nil {
			return nil, err
		}
		m[key] = val
	}
	return m, iprot.ReadMapEnd()
}

func writeCounterMap(oprot thrift.TProtocol, m map[string]int64) error {
	if err := oprot.WriteMapBegin(thrift.STRING, thrift.I64, len(m)); err != nil {
		return err
	}
	for _, key := range sortedKeys(m) {
		if err := oprot.WriteString(key); err != nil {
			return err
		}
		if err := oprot.WriteI64(m[key]); err != nil {
			return err
		}
	}
	return oprot.WriteMapEnd()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
