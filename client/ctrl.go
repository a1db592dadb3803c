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
	"fmt"
	"time"

	"github.com/apache/thrift/lib/go/thrift"
)

// CtrlClient is the request/response API of the OpenrCtrl service.
// Like the rest of this package, it eliminates the boilerplate of context
// creation and request/response envelopes.
type CtrlClient interface {
	Close() error

	GetMyNodeName() (string, error)

	// GetRunningConfig returns the daemon's running configuration as a JSON document.
	GetRunningConfig() (string, error)

	// GetInitializationEvents returns the time in milliseconds each published
	// event took since the process started.
	GetInitializationEvents() (map[InitializationEvent]int64, error)

	GetKvStoreKeyValsFilteredArea(params *KeyDumpParams, area string) (*Publication, error)

	// LongPollKvStoreAdjArea blocks until the adjacency keys of the area differ
	// from the snapshot, or until the daemon's hold time elapses.
	LongPollKvStoreAdjArea(area string, snapshot map[string]*Value) (bool, error)

	GetDecisionAdjacencyDbs() (map[string]*AdjacencyDatabase, error)

	GetDecisionPrefixDbs() (map[string]*PrefixDatabase, error)

	GetCounters() (map[string]int64, error)
}

// FibAgentClient is the subset of the FibService the CLI needs.
type FibAgentClient interface {
	Close() error

	GetCounters() (map[string]int64, error)
}

// thriftClient speaks OpenrCtrl (or FibService) over a single thrift transport.
// It is not safe for concurrent use, which matches the one-command-one-client usage.
type thriftClient struct {
	trans thrift.TTransport
	proto thrift.TProtocol

	seqID   int32
	timeout time.Duration
}

func newThriftClient(trans thrift.TTransport, timeout time.Duration) *thriftClient {
	return &thriftClient{
		trans:   trans,
		proto:   thrift.NewTBinaryProtocolTransport(trans),
		timeout: timeout,
	}
}

func (c *thriftClient) Close() error {
	return c.trans.Close()
}

// rpcResult is the reply envelope of a service method: field 0 carries the
// returned value, field 1 the declared OpenrError.
type rpcResult struct {
	successType  thrift.TType
	readSuccess  func(iprot thrift.TProtocol) error
	writeSuccess fieldWriter

	hasSuccess bool
	err        *OpenrError
}

func (r *rpcResult) Read(iprot thrift.TProtocol) error {
	return readStruct(iprot, func(id int16, ftype thrift.TType) (bool, error) {
		switch {
		case id == 0 && ftype == r.successType:
			r.hasSuccess = true
			return true, r.readSuccess(iprot)
		case id == 1 && ftype == thrift.STRUCT:
			r.err = &OpenrError{}
			return true, r.err.Read(iprot)
		default:
			return false, nil
		}
	})
}

func (r *rpcResult) Write(oprot thrift.TProtocol) error {
	var success, exception fieldWriter
	if r.err != nil {
		exception = structField("error", 1, r.err)
	} else if r.writeSuccess != nil {
		success = field("success", r.successType, 0, r.writeSuccess)
	}
	return writeStruct(oprot, "result", success, exception)
}

// call sends one request and waits for its reply.
func (c *thriftClient) call(method string, args []fieldWriter, result *rpcResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	c.seqID++
	if err := c.send(ctx, method, args); err != nil {
		return &RPCError{Method: method, Err: err}
	}
	if err := c.recv(method, result); err != nil {
		return &RPCError{Method: method, Err: err}
	}
	if result.err != nil {
		return &RPCError{Method: method, Err: result.err}
	}
	if !result.hasSuccess {
		return &RPCError{
			Method: method,
			Err:    thrift.NewTApplicationException(thrift.MISSING_RESULT, fmt.Sprintf("%s failed: unknown result", method)),
		}
	}
	return nil
}

func (c *thriftClient) send(ctx context.Context, method string, args []fieldWriter) error {
	if err := c.proto.WriteMessageBegin(method, thrift.CALL, c.seqID); err != nil {
		return err
	}
	if err := writeStruct(c.proto, method+"_args", args...); err != nil {
		return err
	}
	if err := c.proto.WriteMessageEnd(); err != nil {
		return err
	}
	return c.proto.Flush(ctx)
}

func (c *thriftClient) recv(method string, result *rpcResult) error {
	name, mtype, seqID, err := c.proto.ReadMessageBegin()
	if err != nil {
		return err
	}
	if mtype == thrift.EXCEPTION {
		exc := thrift.NewTApplicationException(thrift.UNKNOWN_APPLICATION_EXCEPTION, "Unknown Exception")
		if err := exc.Read(c.proto); err != nil {
			return err
		}
		if err := c.proto.ReadMessageEnd(); err != nil {
			return err
		}
		return exc
	}
	if name != method {
		return thrift.NewTApplicationException(thrift.WRONG_METHOD_NAME, fmt.Sprintf("%s failed: wrong method name %s", method, name))
	}
	if seqID != c.seqID {
		return thrift.NewTApplicationException(thrift.BAD_SEQUENCE_ID, fmt.Sprintf("%s failed: out of sequence response", method))
	}
	if mtype != thrift.REPLY {
		return thrift.NewTApplicationException(thrift.INVALID_MESSAGE_TYPE_EXCEPTION, fmt.Sprintf("%s failed: invalid message type", method))
	}
	if err := result.Read(c.proto); err != nil {
		return err
	}
	return c.proto.ReadMessageEnd()
}

func (c *thriftClient) callString(method string) (string, error) {
	var s string
	result := &rpcResult{
		successType: thrift.STRING,
		readSuccess: func(iprot thrift.TProtocol) (err error) {
			s, err = iprot.ReadString()
			return
		},
	}
	if err := c.call(method, nil, result); err != nil {
		return "", err
	}
	return s, nil
}

func (c *thriftClient) GetMyNodeName() (string, error) {
	return c.callString("getMyNodeName")
}

func (c *thriftClient) GetRunningConfig() (string, error) {
	return c.callString("getRunningConfig")
}

func (c *thriftClient) GetInitializationEvents() (map[InitializationEvent]int64, error) {
	var events map[InitializationEvent]int64
	result := &rpcResult{
		successType: thrift.MAP,
		readSuccess: func(iprot thrift.TProtocol) error {
			_, _, size, err := iprot.ReadMapBegin()
			if err != nil {
				return err
			}
			events = make(map[InitializationEvent]int64, size)
			for i := 0; i < size; i++ {
				event, err := iprot.ReadI32()
				if err != nil {
					return err
				}
				durationMs, err := iprot.ReadI64()
				if err != nil {
					return err
				}
				events[InitializationEvent(event)] = durationMs
			}
			return iprot.ReadMapEnd()
		},
	}
	if err := c.call("getInitializationEvents", nil, result); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *thriftClient) GetKvStoreKeyValsFilteredArea(params *KeyDumpParams, area string) (*Publication, error) {
	pub := &Publication{}
	result := &rpcResult{successType: thrift.STRUCT, readSuccess: pub.Read}
	args := []fieldWriter{
		structField("filter", 1, params),
		stringField("area", 2, area),
	}
	if err := c.call("getKvStoreKeyValsFilteredArea", args, result); err != nil {
		return nil, err
	}
	return pub, nil
}

func (c *thriftClient) LongPollKvStoreAdjArea(area string, snapshot map[string]*Value) (bool, error) {
	var changed bool
	result := &rpcResult{
		successType: thrift.BOOL,
		readSuccess: func(iprot thrift.TProtocol) (err error) {
			changed, err = iprot.ReadBool()
			return
		},
	}
	args := []fieldWriter{
		stringField("area", 1, area),
		field("snapshot", thrift.MAP, 2, func(oprot thrift.TProtocol) error {
			return writeValueMap(oprot, snapshot)
		}),
	}
	if err := c.call("longPollKvStoreAdjArea", args, result); err != nil {
		return false, err
	}
	return changed, nil
}

func (c *thriftClient) GetDecisionAdjacencyDbs() (map[string]*AdjacencyDatabase, error) {
	var dbs map[string]*AdjacencyDatabase
	result := &rpcResult{
		successType: thrift.MAP,
		readSuccess: func(iprot thrift.TProtocol) error {
			_, _, size, err := iprot.ReadMapBegin()
			if err != nil {
				return err
			}
			dbs = make(map[string]*AdjacencyDatabase, size)
			for i := 0; i < size; i++ {
				node, err := iprot.ReadString()
				if err != nil {
					return err
				}
				db := &AdjacencyDatabase{}
				if err := db.Read(iprot); err != nil {
					return err
				}
				dbs[node] = db
			}
			return iprot.ReadMapEnd()
		},
	}
	if err := c.call("getDecisionAdjacencyDbs", nil, result); err != nil {
		return nil, err
	}
	return dbs, nil
}

func (c *thriftClient) GetDecisionPrefixDbs() (map[string]*PrefixDatabase, error) {
	var dbs map[string]*PrefixDatabase
	result := &rpcResult{
		successType: thrift.MAP,
		readSuccess: func(iprot thrift.TProtocol) error {
			_, _, size, err := iprot.ReadMapBegin()
			if err != nil {
				return err
			}
			dbs = make(map[string]*PrefixDatabase, size)
			for i := 0; i < size; i++ {
				node, err := iprot.ReadString()
				if err != nil {
					return err
				}
				db := &PrefixDatabase{}
				if err := db.Read(iprot); err != nil {
					return err
				}
				dbs[node] = db
			}
			return iprot.ReadMapEnd()
		},
	}
	if err := c.call("getDecisionPrefixDbs", nil, result); err != nil {
		return nil, err
	}
	return dbs, nil
}

func (c *thriftClient) GetCounters() (map[string]int64, error) {
	var counters map[string]int64
	result := &rpcResult{
		successType: thrift.MAP,
		readSuccess: func(iprot thrift.TProtocol) (err error) {
			counters, err = readCounterMap(iprot)
			return
		},
	}
	if err := c.call("getCounters", nil, result); err != nil {
		return nil, err
	}
	return counters, nil
}
