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
)

// InitializationEvent is a milestone a node passes through during startup.
type InitializationEvent int32

const (
	InitEventInitializing InitializationEvent = iota
	InitEventAgentConfigured
	InitEventLinkDiscovered
	InitEventNeighborDiscovered
	InitEventKvStoreSynced
	InitEventRibComputed
	InitEventFibSynced
	InitEventPrefixDBSynced
	InitEventInitialized
	InitEventAdjacencyDBSynced
)

var initEventNames = map[InitializationEvent]string{
	InitEventInitializing:       "INITIALIZING",
	InitEventAgentConfigured:    "AGENT_CONFIGURED",
	InitEventLinkDiscovered:     "LINK_DISCOVERED",
	InitEventNeighborDiscovered: "NEIGHBOR_DISCOVERED",
	InitEventKvStoreSynced:      "KVSTORE_SYNCED",
	InitEventRibComputed:        "RIB_COMPUTED",
	InitEventFibSynced:          "FIB_SYNCED",
	InitEventPrefixDBSynced:     "PREFIX_DB_SYNCED",
	InitEventInitialized:        "INITIALIZED",
	InitEventAdjacencyDBSynced:  "ADJACENCY_DB_SYNCED",
}

func (e InitializationEvent) String() string {
	if name, ok := initEventNames[e]; ok {
		return name
	}
	return fmt.Sprintf("InitializationEvent(%d)", int32(e))
}

// InitializationEventFromString parses the Thrift name of an event, e.g. "KVSTORE_SYNCED".
func InitializationEventFromString(name string) (InitializationEvent, error) {
	for e, n := range initEventNames {
		if n == name {
			return e, nil
		}
	}
	return InitEventInitializing, fmt.Errorf("unknown initialization event \"%s\"", name)
}

// FilterOperator tells how the key prefix and originator filters of a dump combine.
type FilterOperator int32

const (
	FilterOr FilterOperator = iota + 1
	FilterAnd
)

func (o FilterOperator) String() string {
	switch o {
	case FilterOr:
		return "OR"
	case FilterAnd:
		return "AND"
	default:
		return fmt.Sprintf("FilterOperator(%d)", int32(o))
	}
}

// PrefixType is the origin of an advertised prefix.
type PrefixType int32

const (
	PrefixTypeLoopback PrefixType = iota + 1
	PrefixTypeDefault
	PrefixTypeBGP
	PrefixTypePrefixAllocator
	PrefixTypeBreeze
	PrefixTypeRIB
	PrefixTypeConfig
	PrefixTypeVIP
)

var prefixTypeNames = map[PrefixType]string{
	PrefixTypeLoopback:        "LOOPBACK",
	PrefixTypeDefault:         "DEFAULT",
	PrefixTypeBGP:             "BGP",
	PrefixTypePrefixAllocator: "PREFIX_ALLOCATOR",
	PrefixTypeBreeze:          "BREEZE",
	PrefixTypeRIB:             "RIB",
	PrefixTypeConfig:          "CONFIG",
	PrefixTypeVIP:             "VIP",
}

func (t PrefixType) String() string {
	if name, ok := prefixTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("PrefixType(%d)", int32(t))
}

// PrefixForwardingType is how a prefix is forwarded, plain IP or over an SR-MPLS label.
type PrefixForwardingType int32

const (
	ForwardingIP PrefixForwardingType = iota
	ForwardingSRMPLS
)

func (t PrefixForwardingType) String() string {
	switch t {
	case ForwardingIP:
		return "IP"
	case ForwardingSRMPLS:
		return "SR_MPLS"
	default:
		return fmt.Sprintf("PrefixForwardingType(%d)", int32(t))
	}
}
