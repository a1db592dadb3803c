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
	"net"
	"strconv"
	"time"

	"github.com/apache/thrift/lib/go/thrift"
	"github.com/sirupsen/logrus"
)

const (
	DefaultHost         = "localhost"
	DefaultTimeout      = 5000 * time.Millisecond
	DefaultCtrlPort     = 2018
	DefaultFibAgentPort = 5909

	// LongPollHoldTime is how long the daemon holds a long-poll request
	// before answering "no change".
	LongPollHoldTime = 20 * time.Second
)

// Options are the connection parameters a client is created with.
type Options struct {
	Host         string
	Timeout      time.Duration
	CtrlPort     int
	FibAgentPort int
}

// WithDefaults returns a copy of the options where every unset field is
// replaced by its default value.
func (o Options) WithDefaults() Options {
	if o.Host == "" {
		o.Host = DefaultHost
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.CtrlPort <= 0 {
		o.CtrlPort = DefaultCtrlPort
	}
	if o.FibAgentPort <= 0 {
		o.FibAgentPort = DefaultFibAgentPort
	}
	return o
}

// Dialer creates the short-lived clients used by commands. Every returned
// client owns a connection and must be closed by the caller.
type Dialer interface {
	DialCtrl(opts Options) (CtrlClient, error)

	DialStream(opts Options) (StreamClient, error)

	DialFibAgent(opts Options) (FibAgentClient, error)
}

// NewThriftDialer returns a Dialer connecting over framed thrift transports
// with the binary protocol.
func NewThriftDialer() Dialer {
	return &thriftDialer{}
}

type thriftDialer struct{}

func (d *thriftDialer) DialCtrl(opts Options) (CtrlClient, error) {
	return dialThrift(opts.Host, opts.CtrlPort, opts.Timeout)
}

func (d *thriftDialer) DialStream(opts Options) (StreamClient, error) {
	// the socket must outlive the long-poll hold time
	c, err := dialThrift(opts.Host, opts.CtrlPort, opts.Timeout+LongPollHoldTime)
	if err != nil {
		return nil, err
	}
	return &streamClient{thriftClient: c}, nil
}

func (d *thriftDialer) DialFibAgent(opts Options) (FibAgentClient, error) {
	return dialThrift(opts.Host, opts.FibAgentPort, opts.Timeout)
}

func dialThrift(host string, port int, timeout time.Duration) (*thriftClient, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	sock, err := thrift.NewTSocketTimeout(addr, timeout)
	if err != nil {
		return nil, &RPCError{Method: "connect", Err: err}
	}
	trans := thrift.NewTFramedTransport(sock)
	if err := trans.Open(); err != nil {
		return nil, &RPCError{Method: "connect", Err: err}
	}
	logrus.Debugf("connected to %s (timeout %s)", addr, timeout)
	return newThriftClient(trans, timeout), nil
}
