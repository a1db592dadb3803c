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
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/openr-tools/breeze/client"
	"github.com/spf13/viper"
)

// EventThresholds are the durations, in milliseconds since process start, after
// which an initialization event is considered late, and then failed.
type EventThresholds struct {
	WarningMs int64
	TimeoutMs int64
}

// ThresholdTable holds the thresholds of every initialization event.
type ThresholdTable map[client.InitializationEvent]EventThresholds

// DefaultThresholds returns the thresholds Open/R publishes for its events.
func DefaultThresholds() ThresholdTable {
	return ThresholdTable{
		client.InitEventAgentConfigured:    {WarningMs: 60000, TimeoutMs: 120000},
		client.InitEventLinkDiscovered:     {WarningMs: 60000, TimeoutMs: 120000},
		client.InitEventNeighborDiscovered: {WarningMs: 120000, TimeoutMs: 300000},
		client.InitEventKvStoreSynced:      {WarningMs: 180000, TimeoutMs: 600000},
		client.InitEventRibComputed:        {WarningMs: 180000, TimeoutMs: 600000},
		client.InitEventFibSynced:          {WarningMs: 240000, TimeoutMs: 600000},
		client.InitEventPrefixDBSynced:     {WarningMs: 240000, TimeoutMs: 600000},
		client.InitEventInitialized:        {WarningMs: 300000, TimeoutMs: 600000},
		client.InitEventAdjacencyDBSynced:  {WarningMs: 240000, TimeoutMs: 600000},
	}
}

// LoadThresholds returns the default thresholds overridden by the `thresholds`
// section of the configuration:
//
//  thresholds:
//    KVSTORE_SYNCED:
//      warning_ms: 1000
//      timeout_ms: 5000
func LoadThresholds(v *viper.Viper) (ThresholdTable, error) {
	table := DefaultThresholds()
	for name := range v.GetStringMap("thresholds") {
		// viper lower-cases the keys
		event, err := client.InitializationEventFromString(strings.ToUpper(name))
		if err != nil {
			return nil, fmt.Errorf("invalid thresholds: %w", err)
		}
		th := table[event]
		key := "thresholds." + name
		if v.IsSet(key + ".warning_ms") {
			th.WarningMs = v.GetInt64(key + ".warning_ms")
		}
		if v.IsSet(key + ".timeout_ms") {
			th.TimeoutMs = v.GetInt64(key + ".timeout_ms")
		}
		table[event] = th
	}
	return table, nil
}

// Events returns the events having thresholds, in their startup order.
func (t ThresholdTable) Events() []client.InitializationEvent {
	events := make([]client.InitializationEvent, 0, len(t))
	for e := range t {
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool { return events[i] < events[j] })
	return events
}

// EventStatus classifies an initialization event.
type EventStatus int

const (
	EventOnTime EventStatus = iota
	EventLate
	EventBreach
	EventNotPublished
)

func (s EventStatus) String() string {
	switch s {
	case EventOnTime:
		return "ON_TIME"
	case EventLate:
		return "LATE"
	case EventBreach:
		return "BREACH"
	default:
		return "NOT_PUBLISHED"
	}
}

// InitEventCheck is the outcome of validating one initialization event. A
// failed check is a regular result, not an error.
type InitEventCheck struct {
	Event  client.InitializationEvent
	Status EventStatus
	Passed bool

	// empty when passed
	ErrMsg string

	DurationMs int64

	// the duration colored by status, empty when not published
	Duration string
}

var (
	onTimeColor = alwaysColored(color.FgGreen)
	lateColor   = alwaysColored(color.FgYellow)
	breachColor = alwaysColored(color.FgRed)
)

// alwaysColored returns a color that is applied even when stdout is not a
// terminal, so the status survives in piped output.
func alwaysColored(attr color.Attribute) *color.Color {
	c := color.New(attr)
	c.EnableColor()
	return c
}

// Validate checks that event has been published within its time limit.
// Durations below the warning threshold are on time, durations from the
// warning threshold up to the timeout excluded are late but pass, and
// durations from the timeout on fail.
func (t ThresholdTable) Validate(observed map[client.InitializationEvent]int64, event client.InitializationEvent) (*InitEventCheck, error) {
	durationMs, published := observed[event]
	if !published {
		return &InitEventCheck{
			Event:  event,
			Status: EventNotPublished,
			ErrMsg: fmt.Sprintf("%s event is not published", event),
		}, nil
	}

	th, ok := t[event]
	if !ok {
		return nil, fmt.Errorf("%w for %s", ErrThresholdMissing, event)
	}

	check := &InitEventCheck{Event: event, Passed: true, DurationMs: durationMs}
	switch {
	case durationMs < th.WarningMs:
		check.Status = EventOnTime
		check.Duration = onTimeColor.Sprint(durationMs)
	case durationMs < th.TimeoutMs:
		check.Status = EventLate
		check.Duration = lateColor.Sprint(durationMs)
	default:
		check.Status = EventBreach
		check.Passed = false
		check.Duration = breachColor.Sprint(durationMs)
		check.ErrMsg = fmt.Sprintf("%s event duration exceeds acceptable time limit (>%dms)", event, th.TimeoutMs)
	}
	return check, nil
}

// FetchInitializationEvents returns the events published by the node, with a
// single call.
func FetchInitializationEvents(ctrl client.CtrlClient) (map[client.InitializationEvent]int64, error) {
	return ctrl.GetInitializationEvents()
}
