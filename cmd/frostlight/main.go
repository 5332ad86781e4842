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

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/frostlightdb/frostlight/pkg/common"
	"github.com/frostlightdb/frostlight/pkg/executor"
	log "github.com/sirupsen/logrus"
)

var (
	configFilePath     = "/etc/frostlight.yaml"
	configFilePathFlag = flag.String("configFilePath", "", "overrides the default config file path")
)

func main() {
	flag.Parse()

	log.Info("frostlightmain::main::main; starting")
	conf := common.NewDefaultEngineConfig()
	if *configFilePathFlag != "" {
		configFilePath = *configFilePathFlag
	}
	conf.LoadFromFile(configFilePath)

	if err := conf.Validate(); err != nil {
		log.Fatalf("frostlightmain::main::main; invalid config; error: %v", err)
	}

	if conf.LogJSON {
		log.SetFormatter(&log.JSONFormatter{})
	}
	level, _ := log.ParseLevel(conf.LogLevel)
	log.SetLevel(level)

	engine := executor.NewEngine(conf.Name, conf)
	ctx := context.Background()

	var cmd string
	for {
		fmt.Printf("db> ")
		reader := bufio.NewReader(os.Stdin)
		if cmd, _ = reader.ReadString('\n'); true {
			cmd = strings.Trim(cmd, " \n")
		}

		if cmd == "exit" {
			break
		}
		if cmd == "" {
			continue
		}

		printResult(engine.Execute(ctx, cmd))
	}
}

func printResult(res executor.Result) {
	if res.HasError() {
		fmt.Printf("error: %v\n", res.GetError())
		return
	}

	switch r := res.(type) {
	case *executor.CreateTableResult:
		fmt.Printf("created table %s\n", r.TableName)

	case *executor.DropTableResult:
		fmt.Printf("dropped table %s\n", r.TableName)

	case *executor.InsertResult:
		fmt.Printf("inserted %d row(s)\n", r.RowsInserted)

	case *executor.DeleteResult:
		fmt.Printf("deleted %d row(s)\n", r.RowsDeleted)

	case *executor.QueryResult:
		fmt.Println(strings.Join(r.Columns, " | "))
		for _, row := range r.Rows {
			parts := make([]string, len(row))
			for i, v := range row {
				parts[i] = v.String()
			}
			fmt.Println(strings.Join(parts, " | "))
		}
		fmt.Printf("%d row(s)\n", len(r.Rows))

	case *executor.TxnResult:
		fmt.Println("ok")
	}
}
