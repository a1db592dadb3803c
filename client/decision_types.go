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
	"net"

	"github.com/apache/thrift/lib/go/thrift"
)

// BinaryAddress is an IPv4 or IPv6 address in network byte order.
type BinaryAddress struct {
	Addr []byte

	// empty if not bound to an interface.
	IfName string
}

func (b *BinaryAddress) Read(iprot thrift.TProtocol) error {
	return readStruct(iprot, func(id int16, ftype thrift.TType) (bool, error) {
		var err error
		switch {
		case id == 1 && ftype == thrift.STRING:
			b.Addr, err = iprot.ReadBinary()
		case id == 3 && ftype == thrift.STRING:
			b.IfName, err = iprot.ReadString()
		default:
			return false, nil
		}
		return true, err
	})
}

func (b *BinaryAddress) Write(oprot thrift.TProtocol) error {
	var ifName fieldWriter
	if b.IfName != "" {
		ifName = stringField("ifName", 3, b.IfName)
	}
	return writeStruct(oprot, "BinaryAddress", binaryField("addr", 1, b.Addr), ifName)
}

func (b *BinaryAddress) String() string {
	if b == nil || len(b.Addr) == 0 {
		return ""
	}
	return net.IP(b.Addr).String()
}

// IPPrefix is a network in CIDR form.
type IPPrefix struct {
	PrefixAddress *BinaryAddress
	PrefixLength  int16
}

func (p *IPPrefix) Read(iprot thrift.TProtocol) error {
	return readStruct(iprot, func(id int16, ftype thrift.TType) (bool, error) {
		var err error
		switch {
		case id == 1 && ftype == thrift.STRUCT:
			p.PrefixAddress = &BinaryAddress{}
			err = p.PrefixAddress.Read(iprot)
		case id == 2 && ftype == thrift.I16:
			p.PrefixLength, err = iprot.ReadI16()
		default:
			return false, nil
		}
		return true, err
	})
}

func (p *IPPrefix) Write(oprot thrift.TProtocol) error {
	addr := p.PrefixAddress
	if addr == nil {
		addr = &BinaryAddress{}
	}
	return writeStruct(oprot, "IpPrefix", structField("prefixAddress", 1, addr), i16Field("prefixLength", 2, p.PrefixLength))
}

func (p *IPPrefix) String() string {
	if p == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s/%d", p.PrefixAddress, p.PrefixLength)
}

// Adjacency is a link from the advertising node to one of its neighbors.
type Adjacency struct {
	OtherNodeName string
	IfName        string
	OtherIfName   string

	NextHopV6 *BinaryAddress
	NextHopV4 *BinaryAddress

	Metric       int32
	AdjLabel     int32
	IsOverloaded bool

	// round trip time in microseconds.
	Rtt       int32
	Timestamp int64
	Weight    int64
}

func (a *Adjacency) Read(iprot thrift.TProtocol) error {
	return readStruct(iprot, func(id int16, ftype thrift.TType) (bool, error) {
		var err error
		switch {
		case id == 1 && ftype == thrift.STRING:
			a.OtherNodeName, err = iprot.ReadString()
		case id == 2 && ftype == thrift.STRING:
			a.IfName, err = iprot.ReadString()
		case id == 3 && ftype == thrift.STRUCT:
			a.NextHopV6 = &BinaryAddress{}
			err = a.NextHopV6.Read(iprot)
		case id == 4 && ftype == thrift.I32:
			a.Metric, err = iprot.ReadI32()
		case id == 5 && ftype == thrift.STRUCT:
			a.NextHopV4 = &BinaryAddress{}
			err = a.NextHopV4.Read(iprot)
		case id == 6 && ftype == thrift.I32:
			a.AdjLabel, err = iprot.ReadI32()
		case id == 7 && ftype == thrift.BOOL:
			a.IsOverloaded, err = iprot.ReadBool()
		case id == 8 && ftype == thrift.I32:
			a.Rtt, err = iprot.ReadI32()
		case id == 9 && ftype == thrift.I64:
			a.Timestamp, err = iprot.ReadI64()
		case id == 10 && ftype == thrift.I64:
			a.Weight, err = iprot.ReadI64()
		case id == 11 && ftype == thrift.STRING:
			a.OtherIfName, err = iprot.ReadString()
		default:
			return false, nil
		}
		return true, err
	})
}

func (a *Adjacency) Write(oprot thrift.TProtocol) error {
	var v6, v4 fieldWriter
	if a.NextHopV6 != nil {
		v6 = structField("nextHopV6", 3, a.NextHopV6)
	}
	if a.NextHopV4 != nil {
		v4 = structField("nextHopV4", 5, a.NextHopV4)
	}
	return writeStruct(oprot, "Adjacency",
		stringField("otherNodeName", 1, a.OtherNodeName),
		stringField("ifName", 2, a.IfName),
		v6,
		i32Field("metric", 4, a.Metric),
		v4,
		i32Field("adjLabel", 6, a.AdjLabel),
		boolField("isOverloaded", 7, a.IsOverloaded),
		i32Field("rtt", 8, a.Rtt),
		i64Field("timestamp", 9, a.Timestamp),
		i64Field("weight", 10, a.Weight),
		stringField("otherIfName", 11, a.OtherIfName),
	)
}

// AdjacencyDatabase is the set of adjacencies a node advertises in an area.
type AdjacencyDatabase struct {
	ThisNodeName string
	IsOverloaded bool
	Adjacencies  []*Adjacency
	NodeLabel    int32
	Area         string
}

func (d *AdjacencyDatabase) Read(iprot thrift.TProtocol) error {
	return readStruct(iprot, func(id int16, ftype thrift.TType) (bool, error) {
		var err error
		switch {
		case id == 1 && ftype == thrift.STRING:
			d.ThisNodeName, err = iprot.ReadString()
		case id == 2 && ftype == thrift.BOOL:
			d.IsOverloaded, err = iprot.ReadBool()
		case id == 3 && ftype == thrift.LIST:
			err = d.readAdjacencies(iprot)
		case id == 4 && ftype == thrift.I32:
			d.NodeLabel, err = iprot.ReadI32()
		case id == 6 && ftype == thrift.STRING:
			d.Area, err = iprot.ReadString()
		default:
			return false, nil
		}
		return true, err
	})
}

func (d *AdjacencyDatabase) readAdjacencies(iprot thrift.TProtocol) error {
	_, size, err := iprot.ReadListBegin()
	if err != nil {
		return err
	}
	d.Adjacencies = make([]*Adjacency, 0, size)
	for i := 0; i < size; i++ {
		adj := &Adjacency{}
		if err := adj.Read(iprot); err != nil {
			return err
		}
		d.Adjacencies = append(d.Adjacencies, adj)
	}
	return iprot.ReadListEnd()
}

func (d *AdjacencyDatabase) Write(oprot thrift.TProtocol) error {
	return writeStruct(oprot, "AdjacencyDatabase",
		stringField("thisNodeName", 1, d.ThisNodeName),
		boolField("isOverloaded", 2, d.IsOverloaded),
		field("adjacencies", thrift.LIST, 3, func(oprot thrift.TProtocol) error {
			if err := oprot.WriteListBegin(thrift.STRUCT, len(d.Adjacencies)); err != nil {
				return err
			}
			for _, adj := range d.Adjacencies {
				if err := adj.Write(oprot); err != nil {
					return err
				}
			}
			return oprot.WriteListEnd()
		}),
		i32Field("nodeLabel", 4, d.NodeLabel),
		stringField("area", 6, d.Area),
	)
}

// PrefixEntry is one prefix advertised by a node.
type PrefixEntry struct {
	Prefix         *IPPrefix
	Type           PrefixType
	ForwardingType PrefixForwardingType
}

func (e *PrefixEntry) Read(iprot thrift.TProtocol) error {
	return readStruct(iprot, func(id int16, ftype thrift.TType) (bool, error) {
		var err error
		switch {
		case id == 1 && ftype == thrift.STRUCT:
			e.Prefix = &IPPrefix{}
			err = e.Prefix.Read(iprot)
		case id == 2 && ftype == thrift.I32:
			var t int32
			t, err = iprot.ReadI32()
			e.Type = PrefixType(t)
		case id == 4 && ftype == thrift.I32:
			var t int32
			t, err = iprot.ReadI32()
			e.ForwardingType = PrefixForwardingType(t)
		default:
			return false, nil
		}
		return true, err
	})
}

func (e *PrefixEntry) Write(oprot thrift.TProtocol) error {
	prefix := e.Prefix
	if prefix == nil {
		prefix = &IPPrefix{}
	}
	return writeStruct(oprot, "PrefixEntry",
		structField("prefix", 1, prefix),
		i32Field("type", 2, int32(e.Type)),
		i32Field("forwardingType", 4, int32(e.ForwardingType)),
	)
}

// PrefixDatabase is the set of prefixes a node advertises in an area.
type PrefixDatabase struct {
	ThisNodeName  string
	PrefixEntries []*PrefixEntry
	DeletePrefix  bool
	Area          string
}

func (d *PrefixDatabase) Read(iprot thrift.TProtocol) error {
	return readStruct(iprot, func(id int16, ftype thrift.TType) (bool, error) {
		var err error
		switch {
		case id == 1 && ftype == thrift.STRING:
			d.ThisNodeName, err = iprot.ReadString()
		case id == 3 && ftype == thrift.LIST:
			err = d.readEntries(iprot)
		case id == 5 && ftype == thrift.BOOL:
			d.DeletePrefix, err = iprot.ReadBool()
		case id == 7 && ftype == thrift.STRING:
			d.Area, err = iprot.ReadString()
		default:
			return false, nil
		}
		return true, err
	})
}

func (d *PrefixDatabase) readEntries(iprot thrift.TProtocol) error {
	_, size, err := iprot.ReadListBegin()
	if err != nil {
		return err
	}
	d.PrefixEntries = make([]*PrefixEntry, 0, size)
	for i := 0; i < size; i++ {
		entry := &PrefixEntry{}
		if err := entry.Read(iprot); err != nil {
			return err
		}
		d.PrefixEntries = append(d.PrefixEntries, entry)
	}
	return iprot.ReadListEnd()
}

func (d *PrefixDatabase) Write(oprot thrift.TProtocol) error {
	return writeStruct(oprot, "PrefixDatabase",
		stringField("thisNodeName", 1, d.ThisNodeName),
		field("prefixEntries", thrift.LIST, 3, func(oprot thrift.TProtocol) error {
			if err := oprot.WriteListBegin(thrift.STRUCT, len(d.PrefixEntries)); err != nil {
				return err
			}
			for _, entry := range d.PrefixEntries {
				if err := entry.Write(oprot); err != nil {
					return err
				}
			}
			return oprot.WriteListEnd()
		}),
		boolField("deletePrefix", 5, d.DeletePrefix),
		stringField("area", 7, d.Area),
	)
}
