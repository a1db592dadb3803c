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
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// New creates a tablewriter.Table and allows customizing the table.
//
// Each element should be a simple struct (or a pointer to one). Each field
// corresponds to a column in the table, and its json tag is the column name.
// Fields tagged `json:"-"` are not printed.
//
// For example:
// ```
//  type adjRow struct {
//    Neighbor string `json:"neighbor"`
//    Metric   int32  `json:"metric"`
//  }
//  var rows []interface{}
//  ...
//  tabular.Print(writer, rows)
// ```
//
func New(writer io.Writer, valueList []interface{}, configurer func(*tablewriter.Table)) *tablewriter.Table {
	tabWriter := NewTabWriter(writer)
	columns := columnsOf(valueList[0])

	var header []string
	var headerColors []tablewriter.Colors
	for _, col := range columns {
		header = append(header, col.name)
		headerColors = append(headerColors, tablewriter.Colors{tablewriter.Bold})
	}
	tabWriter.SetHeader(header)
	tabWriter.SetHeaderColor(headerColors...)

	// could replace the default settings
	if configurer != nil {
		configurer(tabWriter)
	}

	for _, val := range valueList {
		// each value displays as a row
		reflectedValue := reflect.Indirect(reflect.ValueOf(val))
		var row []string
		for _, col := range columns {
			row = append(row, fmt.Sprintf("%v", reflectedValue.Field(col.index).Interface()))
		}
		tabWriter.Append(row)
	}

	return tabWriter
}

func NewTabWriter(writer io.Writer) *tablewriter.Table {
	tabWriter := tablewriter.NewWriter(writer)
	tabWriter.SetAlignment(tablewriter.ALIGN_LEFT)
	tabWriter.SetAutoFormatHeaders(false)
	tabWriter.SetAutoWrapText(false)
	return tabWriter
}

// Print out the list of elements in tabular form. Nothing is printed for an
// empty list.
func Print(writer io.Writer, valueList []interface{}) {
	if len(valueList) == 0 {
		return
	}
	New(writer, valueList, nil).Render()
}

type column struct {
	index int
	name  string
}

func columnsOf(val interface{}) []column {
	var columns []column
	reflectedType := reflect.Indirect(reflect.ValueOf(val)).Type()
	for i := 0; i < reflectedType.NumField(); i++ {
		// field tag
		jsonTagName := reflectedType.Field(i).Tag.Get("json")
		if jsonTagName == "-" {
			continue
		}
		columns = append(columns, column{index: i, name: formatColumnName(jsonTagName)})
	}
	return columns
}

// formatColumnName turns "duration_ms" into "DURATION MS".
func formatColumnName(jsonTagName string) string {
	words := strings.Split(jsonTagName, "_")
	for i, w := range words {
		words[i] = strings.ToUpper(w)
	}
	return strings.Join(words, " ")
}
