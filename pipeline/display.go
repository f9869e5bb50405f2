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

package pipeline

import (
	"fmt"
	"strings"
)

// PipeDescriptor describes one stage of a rendered pipeline (spec.md
// §4.11), given in data-flow order (source-most pipe first, sink-most
// pipe last — the order pipeline.Order.Build assembles them in).
// Width is the number of parallel lanes running that stage. Generic
// marks an anonymous fan-in stage (a bare "MergeProcessor" with no
// further identity of its own) as opposed to a named processor that
// happens to also change the lane count, such as MergingSortedProcessor.
// Only a generic fan-in pipe gets the special "Merge (...) to (...)"
// rendering; a named one renders plainly even when its width differs
// from its neighbor.
type PipeDescriptor struct {
	Name    string
	Width   int
	Generic bool
}

// RenderPipeline renders pipes per spec.md §6's stable, tested textual
// format: a leading blank line, then one "└─ " line per pipe walked
// from the sink back to the source (deepest nesting at the bottom),
// indented two spaces per depth. A generic fan-in pipe whose width
// differs from its upstream neighbor's renders as a "Merge (...) to
// (...)" line instead of its own name.
func RenderPipeline(pipes []PipeDescriptor) string {
	var b strings.Builder
	b.WriteByte('\n')
	n := len(pipes)
	for depth := 1; depth <= n; depth++ {
		i := n - depth
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString("└─ ")
		if i > 0 && pipes[i].Generic && pipes[i].Width != pipes[i-1].Width {
			fmt.Fprintf(&b, "Merge (%s × %d processors) to (%s × %d)",
				pipes[i-1].Name, pipes[i-1].Width, pipes[i].Name, pipes[i].Width)
		} else {
			b.WriteString(renderPlain(pipes[i]))
		}
		if depth != n {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func renderPlain(p PipeDescriptor) string {
	unit := "processor"
	if p.Width != 1 {
		unit = "processors"
	}
	return fmt.Sprintf("%s × %d %s", p.Name, p.Width, unit)
}
