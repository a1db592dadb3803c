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
	"io"
	"time"

	"github.com/openr-tools/breeze/client"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// Context holds what every command needs: the output writer, the connection
// parameters of the target node, and the running config of that node once it
// has been fetched.
type Context struct {
	// Every command should use Context as the fmt.Fprint's writer.
	io.Writer

	opts   client.Options
	dialer client.Dialer

	// the KvStore area commands operate on
	area string

	Thresholds ThresholdTable

	// nil until first fetched. Never invalidated, and not guarded: commands
	// run one at a time.
	config *runningConfig
}

type runningConfig struct {
	raw    string
	values map[string]interface{}
}

// NewContext creates a context for the node described by opts. Unset options
// fall back to their defaults.
func NewContext(writer io.Writer, dialer client.Dialer, opts client.Options) *Context {
	return &Context{
		Writer:     writer,
		opts:       opts.WithDefaults(),
		dialer:     dialer,
		area:       client.DefaultArea,
		Thresholds: DefaultThresholds(),
	}
}

func (c *Context) Host() string {
	return c.opts.Host
}

func (c *Context) Timeout() time.Duration {
	return c.opts.Timeout
}

func (c *Context) FibAgentPort() int {
	return c.opts.FibAgentPort
}

func (c *Context) Area() string {
	return c.area
}

// SetArea changes the KvStore area of the following commands.
func (c *Context) SetArea(area string) {
	c.area = area
}

// WithHost returns a context targeting another node with the same options,
// writer and thresholds. The config of the current node is not carried over.
func (c *Context) WithHost(host string) *Context {
	opts := c.opts
	opts.Host = host
	return &Context{
		Writer:     c.Writer,
		opts:       opts,
		dialer:     c.dialer,
		area:       c.area,
		Thresholds: c.Thresholds,
	}
}

func (c *Context) DialCtrl() (client.CtrlClient, error) {
	return c.dialer.DialCtrl(c.opts)
}

func (c *Context) DialStream() (client.StreamClient, error) {
	return c.dialer.DialStream(c.opts)
}

func (c *Context) DialFibAgent() (client.FibAgentClient, error) {
	return c.dialer.DialFibAgent(c.opts)
}

// Config returns the running config of the node. The first call fetches it
// with a dedicated client, the following ones reuse the result.
func (c *Context) Config() (map[string]interface{}, error) {
	if c.config == nil {
		cfg, err := c.fetchConfig()
		if err != nil {
			return nil, err
		}
		c.config = cfg
	}
	return c.config.values, nil
}

// ConfigValue queries the running config with a gjson path, e.g.
// "areas.#.area_id" or "kvstore_config.key_ttl_ms".
func (c *Context) ConfigValue(path string) (gjson.Result, error) {
	if _, err := c.Config(); err != nil {
		return gjson.Result{}, err
	}
	return gjson.Get(c.config.raw, path), nil
}

func (c *Context) fetchConfig() (*runningConfig, error) {
	ctrl, err := c.DialCtrl()
	if err != nil {
		return nil, err
	}
	defer release(ctrl)

	resp, err := ctrl.GetRunningConfig()
	if err != nil {
		return nil, err
	}
	logrus.Debugf("fetched running config of %s (%d bytes)", c.opts.Host, len(resp))

	if !gjson.Valid(resp) {
		return nil, &ConfigParseError{Reason: "invalid JSON"}
	}
	values, ok := gjson.Parse(resp).Value().(map[string]interface{})
	if !ok {
		return nil, &ConfigParseError{Reason: "not a JSON object"}
	}
	return &runningConfig{raw: resp, values: values}, nil
}

// release closes a client. A failure is only logged since the result of the
// command using the client is already known.
func release(c io.Closer) {
	if err := c.Close(); err != nil {
		logrus.Warnf("failed to release client: %s", err)
	}
}
