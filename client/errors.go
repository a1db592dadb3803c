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

	"github.com/apache/thrift/lib/go/thrift"
)

// OpenrError is the exception declared by the control-plane service.
type OpenrError struct {
	Message string
}

func (e *OpenrError) Error() string {
	return fmt.Sprintf("OpenrError: %s", e.Message)
}

func (e *OpenrError) Read(iprot thrift.TProtocol) error {
	return readStruct(iprot, func(id int16, ftype thrift.TType) (bool, error) {
		if id == 1 && ftype == thrift.STRING {
			var err error
			e.Message, err = iprot.ReadString()
			return true, err
		}
		return false, nil
	})
}

func (e *OpenrError) Write(oprot thrift.TProtocol) error {
	return writeStruct(oprot, "OpenrError", stringField("message", 1, e.Message))
}

// RPCError is returned whenever a remote call fails, either in the transport,
// in the thrift framework, or with an exception raised by the daemon.
type RPCError struct {
	Method string
	Err    error
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("failed to call \"%s\": %s", e.Method, e.Err)
}

func (e *RPCError) Unwrap() error {
	return e.Err
}
