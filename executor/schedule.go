// schedule.go - Konfliktgraph und Ebenen-Plan fuer parallele Ausfuehrung
//
// Zwei Aggregate stehen in Konflikt, wenn ein Schreibbereich des einen einen
// Lese- oder Schreibbereich des anderen ueberlappt. Ein Aggregat landet in
// der ersten Ebene nach allen frueheren Aggregaten, mit denen es in Konflikt
// steht. Innerhalb einer Ebene gibt es keine Konflikte; Ebenen laufen in
// Reihenfolge.
package executor

import (
	"github.com/ollama/aggregates/aggregate"
	"github.com/ollama/aggregates/ml"
)

type footprint struct {
	reads, writes []ml.Region
}

func footprintOf(a aggregate.Aggregate) footprint {
	return footprint{reads: a.Reads(), writes: a.Writes()}
}

func overlapsAny(a, b []ml.Region) bool {
	for _, x := range a {
		if x.Empty() {
			continue
		}
		for _, y := range b {
			if x.Overlaps(y) {
				return true
			}
		}
	}
	return false
}

func (f footprint) conflicts(o footprint) bool {
	return overlapsAny(f.writes, o.writes) ||
		overlapsAny(f.writes, o.reads) ||
		overlapsAny(o.writes, f.reads)
}

// schedule groups aggregate positions into levels. Every position appears
// in exactly one level, and positions within a level are in ascending order.
func schedule(aggs []aggregate.Aggregate) [][]int {
	fps := make([]footprint, len(aggs))
	for i, a := range aggs {
		fps[i] = footprintOf(a)
	}

	level := make([]int, len(aggs))
	var levels [][]int
	for j := range aggs {
		for i := range j {
			if level[i] >= level[j] && fps[i].conflicts(fps[j]) {
				level[j] = level[i] + 1
			}
		}

		if level[j] == len(levels) {
			levels = append(levels, nil)
		}
		levels[level[j]] = append(levels[level[j]], j)
	}

	return levels
}
