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
	"errors"
	"fmt"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/openr-tools/breeze/client"
	"github.com/openr-tools/breeze/tabular"
	"github.com/sirupsen/logrus"
	batchErr "k8s.io/apimachinery/pkg/util/errors"
)

type initEventRow struct {
	Host     string `json:"host"`
	Event    string `json:"event"`
	Duration string `json:"duration_ms"`
	Status   string `json:"status"`
}

// ValidateInitEvents checks the initialization events of the node. The
// arguments are the event names to check, all the events having thresholds
// by default. The status is 1 if any check fails.
func ValidateInitEvents(ctx *Context, ctrl client.CtrlClient, args []string) (int, error) {
	events, err := parseEvents(ctx.Thresholds, args)
	if err != nil {
		return 1, err
	}
	checks, err := checkInitEvents(ctx, ctrl, events)
	if err != nil {
		return 1, err
	}
	return printInitEventChecks(ctx, map[string][]*InitEventCheck{ctx.Host(): checks}, []string{ctx.Host()}), nil
}

// ValidateInitEventsOnHosts runs the validation on every host in turn. An
// unreachable host does not prevent checking the others, it only fails the
// overall status.
func ValidateInitEventsOnHosts(ctx *Context, hosts []string, args []string) (int, error) {
	events, err := parseEvents(ctx.Thresholds, args)
	if err != nil {
		return 1, err
	}

	results := make(map[string][]*InitEventCheck, len(hosts))
	var errs []error

	bar := pb.Full.New(len(hosts)).SetWriter(ctx).Start()
	for _, host := range hosts {
		var checks []*InitEventCheck
		_, err := NewCtrlCommand(ctx.WithHost(host), func(hostCtx *Context, ctrl client.CtrlClient, _ []string) (int, error) {
			var err error
			checks, err = checkInitEvents(hostCtx, ctrl, events)
			return 0, err
		}).Run()
		bar.Increment()

		if errors.Is(err, ErrThresholdMissing) {
			bar.Finish()
			return 1, err
		}
		if err != nil {
			logrus.Warnf("unable to validate initialization events of %s: %s", host, err)
			errs = append(errs, fmt.Errorf("%s: %w", host, err))
			continue
		}
		results[host] = checks
	}
	bar.Finish()

	status := printInitEventChecks(ctx, results, hosts)
	if agg := batchErr.NewAggregate(errs); agg != nil {
		fmt.Fprintf(ctx, "\nUnreachable hosts:\n%s\n", agg.Error())
		status = 1
	}
	return status, nil
}

func parseEvents(table ThresholdTable, args []string) ([]client.InitializationEvent, error) {
	if len(args) == 0 {
		return table.Events(), nil
	}
	var events []client.InitializationEvent
	for _, arg := range args {
		event, err := client.InitializationEventFromString(strings.ToUpper(arg))
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

func checkInitEvents(ctx *Context, ctrl client.CtrlClient, events []client.InitializationEvent) ([]*InitEventCheck, error) {
	observed, err := FetchInitializationEvents(ctrl)
	if err != nil {
		return nil, err
	}
	var checks []*InitEventCheck
	for _, event := range events {
		check, err := ctx.Thresholds.Validate(observed, event)
		if err != nil {
			return nil, err
		}
		checks = append(checks, check)
	}
	return checks, nil
}

// printInitEventChecks prints one row per check followed by the failures, and
// returns the resulting status.
func printInitEventChecks(ctx *Context, results map[string][]*InitEventCheck, hosts []string) int {
	var rows []interface{}
	var failures []string
	for _, host := range hosts {
		for _, check := range results[host] {
			duration := check.Duration
			if duration == "" {
				duration = "-"
			}
			rows = append(rows, initEventRow{
				Host:     host,
				Event:    check.Event.String(),
				Duration: duration,
				Status:   check.Status.String(),
			})
			if !check.Passed {
				failures = append(failures, fmt.Sprintf("[%s] %s", host, check.ErrMsg))
			}
		}
	}
	if len(rows) != 0 {
		tabular.Print(ctx, rows)
	}

	if len(failures) == 0 {
		fmt.Fprintln(ctx, "PASS")
		return 0
	}
	fmt.Fprintln(ctx, "FAIL")
	for _, msg := range failures {
		fmt.Fprintln(ctx, msg)
	}
	return 1
}
