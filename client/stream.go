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
)

// PublicationHandler consumes the publications of a KvStore subscription.
// Returning an error ends the subscription with that error.
type PublicationHandler func(pub *Publication) error

// StreamClient is a CtrlClient able to follow KvStore changes.
type StreamClient interface {
	CtrlClient

	// SubscribeKvStore delivers a full dump of the keys matching params, then
	// one publication per observed change, until ctx is done. Cancellation is
	// observed between two polls.
	SubscribeKvStore(ctx context.Context, area string, params *KeyDumpParams, handler PublicationHandler) error
}

type streamClient struct {
	*thriftClient
}

func (c *streamClient) SubscribeKvStore(ctx context.Context, area string, params *KeyDumpParams, handler PublicationHandler) error {
	return subscribeKvStore(ctx, c, area, params, handler)
}

// subscribeKvStore follows the KvStore with long polls. After each change the
// snapshot hashes are sent along with the dump, so the daemon only returns
// the keys that differ.
func subscribeKvStore(ctx context.Context, c CtrlClient, area string, params *KeyDumpParams, handler PublicationHandler) error {
	pub, err := c.GetKvStoreKeyValsFilteredArea(params, area)
	if err != nil {
		return err
	}
	snapshot := make(map[string]*Value)
	mergePublication(snapshot, pub)
	if err := handler(pub); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		changed, err := c.LongPollKvStoreAdjArea(area, hashesOf(snapshot))
		if err != nil {
			return err
		}
		if !changed {
			continue
		}

		delta := *params
		delta.KeyValHashes = hashesOf(snapshot)
		pub, err := c.GetKvStoreKeyValsFilteredArea(&delta, area)
		if err != nil {
			return err
		}
		mergePublication(snapshot, pub)
		if err := handler(pub); err != nil {
			return err
		}
	}
}

func mergePublication(snapshot map[string]*Value, pub *Publication) {
	for key, val := range pub.KeyVals {
		snapshot[key] = val
	}
	for _, key := range pub.ExpiredKeys {
		delete(snapshot, key)
	}
}

func hashesOf(snapshot map[string]*Value) map[string]*Value {
	if len(snapshot) == 0 {
		return nil
	}
	hashes := make(map[string]*Value, len(snapshot))
	for key, val := range snapshot {
		hashes[key] = val.HashOnly()
	}
	return hashes
}
