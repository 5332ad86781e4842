/**
 * Copyright 2020 The FrostlightDB Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package common

import (
	"fmt"
	"io/ioutil"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

const (
	// KB - Kilobytes
	KB uint64 = 1024

	// MB - Megabytes
	MB uint64 = 1024 * 1024
)

// EngineConfig defines the configuration settings for a Frostlight engine
type EngineConfig struct {
	Name     string `yaml:"name"`
	LogLevel string `yaml:"logLevel"`
	LogJSON  bool   `yaml:"logJson"`

	// DefaultChunkCapacity is the number of rows the REPL batches into a
	// single data chunk when inserting.
	DefaultChunkCapacity int `yaml:"defaultChunkCapacity"`

	// Logging config
	LogStorage  bool `yaml:"logStorage"`
	LogExecutor bool `yaml:"logExecutor"`
}

// NewDefaultEngineConfig returns a new default engine configuration.
func NewDefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		Name:                 "frostlight",
		LogLevel:             "info",
		DefaultChunkCapacity: 1024,
	}
}

// Validate validates an EngineConfig and returns an error if it's invalid.
func (conf *EngineConfig) Validate() error {
	if conf.Name == "" {
		return fmt.Errorf("invalid name provided in config")
	}
	if conf.DefaultChunkCapacity <= 0 {
		return fmt.Errorf("invalid default chunk capacity provided in config")
	}
	if _, err := log.ParseLevel(conf.LogLevel); err != nil {
		return fmt.Errorf("invalid log level provided in config")
	}
	return nil
}

// LoadFromFile loads the config from the file. It assumes that config already has the defaults.
// In the case of an error, it leaves the config untouched.
func (conf *EngineConfig) LoadFromFile(path string) {
	log.Info(fmt.Sprintf("common::config::LoadFromFile; loading config from file %s", path))
	data, err := ioutil.ReadFile(path)
	if err != nil {
		log.Error(fmt.Sprintf("common::config::LoadFromFile; error reading config from file %s, error %s", path, err))
		return
	}
	fconf := EngineConfig{}
	err = yaml.Unmarshal([]byte(data), &fconf)
	if err != nil {
		log.Error(fmt.Sprintf("common::config::LoadFromFile; error unmarshalling config from file %s, error %s", path, err))
		return
	}

	log.WithFields(log.Fields{"config": fconf}).Debug("common::config::LoadFromFile; read contents from the file")

	// populate fields
	if fconf.Name != "" {
		conf.Name = fconf.Name
	}
	if fconf.LogLevel != "" {
		conf.LogLevel = fconf.LogLevel
	}
	if fconf.DefaultChunkCapacity != 0 {
		conf.DefaultChunkCapacity = fconf.DefaultChunkCapacity
	}
	conf.LogJSON = fconf.LogJSON
	conf.LogStorage = fconf.LogStorage
	conf.LogExecutor = fconf.LogExecutor
}
