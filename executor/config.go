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
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ShowConfig prints the running config of the node as indented JSON. A
// non-empty path restricts the output to the matching gjson path.
func ShowConfig(ctx *Context, path string) error {
	if path == "" {
		path = "@this"
	}
	res, err := ctx.ConfigValue(path)
	if err != nil {
		return err
	}
	if !res.Exists() {
		return fmt.Errorf("no config entry matches \"%s\"", path)
	}

	out := res.String()
	if res.IsObject() || res.IsArray() {
		out = gjson.Get(res.Raw, "@pretty").String()
	}
	fmt.Fprintln(ctx, strings.TrimRight(out, "\n"))
	return nil
}

// Areas returns the ids of the areas the node is configured with.
func Areas(ctx *Context) ([]string, error) {
	res, err := ctx.ConfigValue("areas.#.area_id")
	if err != nil {
		return nil, err
	}
	var areas []string
	for _, area := range res.Array() {
		areas = append(areas, area.String())
	}
	return areas, nil
}

// UseArea makes the following KvStore commands operate on area, after
// checking the node is configured with it.
func UseArea(ctx *Context, area string) error {
	areas, err := Areas(ctx)
	if err != nil {
		return err
	}
	for _, a := range areas {
		if a == area {
			ctx.SetArea(area)
			fmt.Fprintf(ctx, "ok, using area \"%s\"\n", area)
			return nil
		}
	}
	return fmt.Errorf("area \"%s\" is not configured on %s, available areas: %s", area, ctx.Host(), strings.Join(areas, ", "))
}
