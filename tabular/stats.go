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

package tabular

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// NotAvailable is printed in place of a missing counter.
const NotAvailable = "N/A"

// statsSuffixes are the key suffixes of the 1 min, 10 mins, 1 hour and all
// time windows of a statistic.
var statsSuffixes = []string{".60", ".600", ".3600", ""}

var statsHeader = []string{"Stat", "1 min", "10 mins", "1 hour", "All Time"}

// PrintStats prints the counters following the templates, in order. For each
// template an optional title is printed, then a plain table of its counters,
// then a table of its statistics, each omitted when empty.
func PrintStats[V any](writer io.Writer, templates []*StatsTemplate, counters map[string]V) {
	for _, tmpl := range templates {
		var counterRows [][]string
		for _, entry := range tmpl.Counters {
			counterRows = append(counterRows, []string{entry.Label, lookupCounter(counters, entry.Key)})
		}

		var statsRows [][]string
		for _, entry := range tmpl.Stats {
			row := []string{entry.Label}
			for _, suffix := range statsSuffixes {
				row = append(row, lookupCounter(counters, entry.Key+suffix))
			}
			statsRows = append(statsRows, row)
		}

		if tmpl.Title != nil {
			fmt.Fprintf(writer, "\n> %s \n", *tmpl.Title)
		}
		if len(counterRows) != 0 {
			fmt.Fprintln(writer)
			fmt.Fprintln(writer, renderPlain(counterRows))
		}
		if len(statsRows) != 0 {
			fmt.Fprintln(writer)
			fmt.Fprintln(writer, renderSimple(statsHeader, statsRows))
		}
	}
}

func lookupCounter[V any](counters map[string]V, key string) string {
	val, ok := counters[key]
	if !ok {
		return NotAvailable
	}
	return FormatValue(val)
}

// FormatValue prints a counter value. Numbers are always printed, zero
// included, while nil and empty values are printed as N/A.
func FormatValue(val interface{}) string {
	v := reflect.ValueOf(val)
	if !v.IsValid() {
		return NotAvailable
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return NotAvailable
		}
		return FormatValue(v.Elem().Interface())
	case reflect.String, reflect.Slice, reflect.Map:
		if v.Len() == 0 {
			return NotAvailable
		}
	}
	return fmt.Sprintf("%v", val)
}

// renderPlain renders rows without header, borders nor separators.
func renderPlain(rows [][]string) string {
	var buf bytes.Buffer
	table := NewTabWriter(&buf)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetColumnSeparator("")
	table.SetCenterSeparator("")
	table.SetRowSeparator("")
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)
	table.AppendBulk(rows)
	table.Render()
	return strings.TrimRight(buf.String(), "\n")
}

// renderSimple renders rows under a header underlined with dashes, each
// dash line as wide as its column.
func renderSimple(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for _, row := range append([][]string{header}, rows...) {
		for i, cell := range row {
			if i < len(widths) && runewidth.StringWidth(cell) > widths[i] {
				widths[i] = runewidth.StringWidth(cell)
			}
		}
	}
	dashes := make([]string, len(header))
	for i, w := range widths {
		dashes[i] = strings.Repeat("-", w)
	}
	return renderPlain(append([][]string{header, dashes}, rows...))
}
