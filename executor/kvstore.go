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
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/openr-tools/breeze/client"
	"github.com/openr-tools/breeze/tabular"
	"gopkg.in/tomb.v2"
)

type kvKeyRow struct {
	Key        string `json:"key"`
	Originator string `json:"originator"`
	Version    int64  `json:"version"`
	TTL        string `json:"ttl"`
	TTLVersion int64  `json:"ttl_version"`
	Size       string `json:"size"`
	Hash       string `json:"hash"`
}

// ListKvStoreKeys prints the keys of the current area matching params.
func ListKvStoreKeys(ctx *Context, ctrl client.CtrlClient, params *client.KeyDumpParams) error {
	pub, err := ctrl.GetKvStoreKeyValsFilteredArea(params, ctx.Area())
	if err != nil {
		return err
	}

	var rows []interface{}
	var total uint64
	for _, key := range sortedKeys(pub.KeyVals) {
		val := pub.KeyVals[key]
		total += uint64(len(val.Value))
		rows = append(rows, kvKeyRow{
			Key:        key,
			Originator: val.OriginatorID,
			Version:    val.Version,
			TTL:        formatTTL(val.TTL),
			TTLVersion: val.TTLVersion,
			Size:       humanize.Bytes(uint64(len(val.Value))),
			Hash:       formatHash(val.Hash),
		})
	}
	tabular.Print(ctx, rows)
	fmt.Fprintf(ctx, "%d keys in area \"%s\", %s of values\n", len(rows), ctx.Area(), humanize.Bytes(total))
	return nil
}

// SnoopKvStore prints the changes of the keys matching params in the current
// area, starting with a full dump, until stop is closed or the subscription
// fails.
func SnoopKvStore(ctx *Context, stream client.StreamClient, params *client.KeyDumpParams, stop <-chan struct{}) error {
	tom, tombCtx := tomb.WithContext(context.Background())

	tom.Go(func() error {
		first := true
		return stream.SubscribeKvStore(tombCtx, ctx.Area(), params, func(pub *client.Publication) error {
			printPublication(ctx, pub, first)
			first = false
			return nil
		})
	})
	tom.Go(func() error {
		select {
		case <-stop:
			tom.Kill(nil)
		case <-tom.Dying():
		}
		return nil
	})

	return tom.Wait()
}

func printPublication(ctx *Context, pub *client.Publication, dump bool) {
	now := time.Now().Format("15:04:05")
	if dump {
		fmt.Fprintf(ctx, "[%s] dump of area \"%s\": %d keys\n", now, ctx.Area(), len(pub.KeyVals))
	}
	for _, key := range sortedKeys(pub.KeyVals) {
		val := pub.KeyVals[key]
		fmt.Fprintf(ctx, "[%s] + %s (version %d, originator %s, %s)\n",
			now, key, val.Version, val.OriginatorID, humanize.Bytes(uint64(len(val.Value))))
	}
	for _, key := range pub.ExpiredKeys {
		fmt.Fprintf(ctx, "[%s] - %s\n", now, key)
	}
}

func formatTTL(ttl int64) string {
	if ttl == client.TTLInfinity {
		return "INF"
	}
	return (time.Duration(ttl) * time.Millisecond).String()
}

func formatHash(hash *int64) string {
	if hash == nil {
		return "-"
	}
	return fmt.Sprintf("%#x", uint64(*hash))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
