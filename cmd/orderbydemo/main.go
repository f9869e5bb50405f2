// Copyright (C) 2024 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// orderbydemo runs the parallel ORDER BY pipeline over a small
// synthetic dataset described by a YAML config file, printing the
// sorted result and the rendered pipeline shape. It exists to exercise
// pipeline.Order end to end outside of the test suite.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	units "github.com/docker/go-units"
	"github.com/sneller-io/orderby/column"
	"github.com/sneller-io/orderby/pipeline"
	"github.com/sneller-io/orderby/sorting"
	"go.uber.org/zap"
	"sigs.k8s.io/yaml"
)

// config is the on-disk shape of an orderbydemo run: one or more
// lanes of int64 rows, the sort keys, an optional limit/offset, and an
// optional per-lane memory budget (parsed with go-units so operators
// can write "64MiB" instead of a raw byte count).
type config struct {
	Lanes         [][]int64 `json:"lanes"`
	SortColumn    string    `json:"sort_column"`
	Asc           bool      `json:"asc"`
	NullsFirst    bool      `json:"nulls_first"`
	Limit         int       `json:"limit"`
	Offset        int       `json:"offset"`
	LaneMemBudget string    `json:"lane_mem_budget"`
}

func main() {
	path := flag.String("config", "", "path to a YAML config file")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if err := run(*path, *verbose); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string, verbose bool) error {
	if path == "" {
		return fmt.Errorf("orderbydemo: -config is required")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("orderbydemo: %w", err)
	}
	var cfg config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return fmt.Errorf("orderbydemo: parsing config: %w", err)
	}

	var budget int64
	if cfg.LaneMemBudget != "" {
		budget, err = units.RAMInBytes(cfg.LaneMemBudget)
		if err != nil {
			return fmt.Errorf("orderbydemo: parsing lane_mem_budget: %w", err)
		}
	}

	logger := zap.NewNop()
	if verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("orderbydemo: building logger: %w", err)
		}
		logger = l
	}
	logger.Debug("orderbydemo: config loaded", zap.Int("lanes", len(cfg.Lanes)), zap.Int64("lane_mem_budget_bytes", budget))

	lanes := make([]pipeline.Processor, len(cfg.Lanes))
	for i, values := range cfg.Lanes {
		block := column.Create(
			column.Schema{{Name: cfg.SortColumn, Type: column.Int64}},
			[]column.Array{column.NewInt64Array(values, nil)},
		)
		lanes[i] = staticLane{name: fmt.Sprintf("lane-%d", i), block: block}
	}

	// An absent (zero) limit means every row: count them all.
	limit := cfg.Limit
	if limit == 0 {
		for _, values := range cfg.Lanes {
			limit += len(values)
		}
	}

	order := &pipeline.Order{
		Lanes: lanes,
		Keys: []sorting.SortDescriptor{
			{ColumnName: cfg.SortColumn, Asc: cfg.Asc, NullsFirst: cfg.NullsFirst},
		},
		Limit:  sorting.Limit{Count: limit, Offset: cfg.Offset},
		Logger: logger,
	}

	root, pipes, runID := order.Build()
	fmt.Println(pipeline.RenderPipeline(pipes))
	fmt.Println("run:", runID)

	ctx := context.Background()
	stream, err := root.Execute(ctx)
	if err != nil {
		return fmt.Errorf("orderbydemo: %w", err)
	}
	for {
		block, err := stream.Next(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("orderbydemo: %w", err)
		}
		col := block.Column(0).(*column.Int64Array)
		for i := 0; i < col.Len(); i++ {
			if col.IsValid(i) {
				fmt.Println(col.At(i))
			} else {
				fmt.Println("NULL")
			}
		}
	}
}

// staticLane is a pipeline.Processor that always emits the same single
// block, used to feed each lane from the config file.
type staticLane struct {
	name  string
	block *column.Block
}

func (s staticLane) Name() string { return s.name }

func (s staticLane) Execute(ctx context.Context) (pipeline.Stream, error) {
	return pipeline.NewSliceStream([]*column.Block{s.block}), nil
}
