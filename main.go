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

package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/desertbit/grumble"
	"github.com/openr-tools/breeze/client"
	"github.com/openr-tools/breeze/cmd"
	"github.com/openr-tools/breeze/shell"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

// callerPrettifier simplifies the caller info
func callerPrettifier(f *runtime.Frame) (function string, file string) {
	function = f.Function[strings.LastIndex(f.Function, "/")+1:]
	file = fmt.Sprint(f.File[strings.LastIndex(f.File, "/")+1:], ":", f.Line)
	return function, file
}

// flagKeys maps the shell flags to the config keys they override.
var flagKeys = map[string]string{
	"host":           "host",
	"timeout":        "timeout_ms",
	"fib-agent-port": "fib_agent_port",
}

func loadConfig(path string) error {
	viper.SetDefault("host", client.DefaultHost)
	viper.SetDefault("timeout_ms", client.DefaultTimeout.Milliseconds())
	viper.SetDefault("ctrl_port", client.DefaultCtrlPort)
	viper.SetDefault("fib_agent_port", client.DefaultFibAgentPort)
	viper.SetDefault("area", client.DefaultArea)
	viper.SetDefault("log.file", "./breeze.log")
	viper.SetDefault("log.level", "info")

	viper.SetConfigType("yaml")
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName(".breeze")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || path != "" {
			return fmt.Errorf("failed to read config: %s", err)
		}
	}
	return nil
}

func setupLogging() error {
	level, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		return err
	}
	log.SetFormatter(&log.TextFormatter{
		DisableColors:    true,
		FullTimestamp:    true,
		CallerPrettyfier: callerPrettifier,
	})
	log.SetOutput(&lumberjack.Logger{ // rolling log
		Filename:  viper.GetString("log.file"),
		MaxSize:   50, // MegaBytes
		MaxAge:    2,  // days
		LocalTime: true,
	})
	log.SetReportCaller(true)
	log.SetLevel(level)
	return nil
}

func main() {
	shell.App.OnInit(func(a *grumble.App, flags grumble.FlagMap) error {
		if err := loadConfig(flags.String("config")); err != nil {
			return err
		}
		if err := setupLogging(); err != nil {
			return err
		}
		// explicit flags take precedence over the config file
		for flag, key := range flagKeys {
			if item, ok := flags[flag]; ok && !item.IsDefault {
				viper.Set(key, item.Value)
			}
		}
		log.Infof("breeze targets %s", viper.GetString("host"))
		return cmd.Init(viper.GetViper())
	})
	grumble.Main(shell.App)
}
