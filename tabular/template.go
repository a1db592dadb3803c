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

	"gopkg.in/yaml.v2"
)

// StatEntry associates a row label with a counter key, or with the key prefix
// of a tiered statistic.
type StatEntry struct {
	Label string
	Key   string
}

// StatsTemplate declares how a group of counters is printed.
type StatsTemplate struct {
	// optional
	Title *string

	// printed as is
	Counters []StatEntry

	// printed over the 1 min, 10 mins, 1 hour and all time windows
	Stats []StatEntry
}

type statsTemplateSection struct {
	Title    *string       `yaml:"title"`
	Counters yaml.MapSlice `yaml:"counters"`
	Stats    yaml.MapSlice `yaml:"stats"`
}

// ParseStatsTemplates parses a list of templates like:
//
//  - title: KvStore
//    counters:
//      Number of keys: kvstore.num_keys
//    stats:
//      Updated keys: kvstore.updated_key_vals.sum
//
// The order of the templates and of their entries is preserved.
func ParseStatsTemplates(text string) ([]*StatsTemplate, error) {
	var sections []statsTemplateSection
	if err := yaml.Unmarshal([]byte(text), &sections); err != nil {
		return nil, fmt.Errorf("invalid stats template: %w", err)
	}

	templates := make([]*StatsTemplate, 0, len(sections))
	for _, sec := range sections {
		templates = append(templates, &StatsTemplate{
			Title:    sec.Title,
			Counters: toStatEntries(sec.Counters),
			Stats:    toStatEntries(sec.Stats),
		})
	}
	return templates, nil
}

// MustParseStatsTemplates is like ParseStatsTemplates but panics on an
// invalid template. It is meant for the templates built into the binary.
func MustParseStatsTemplates(text string) []*StatsTemplate {
	templates, err := ParseStatsTemplates(text)
	if err != nil {
		panic(err)
	}
	return templates
}

func toStatEntries(items yaml.MapSlice) []StatEntry {
	var entries []StatEntry
	for _, item := range items {
		entries = append(entries, StatEntry{Label: fmt.Sprint(item.Key), Key: fmt.Sprint(item.Value)})
	}
	return entries
}
