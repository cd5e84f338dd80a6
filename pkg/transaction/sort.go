/*
Copyright 2026 The DNF-Go Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package transaction

import "sort"

// SortableTransactionSet adds dependency-order topological sorting on top of
// a TransactionSet. It caches the last computed order against the state
// counter at the time it was computed. Every mutator, however it is reached
// (including ones the embedded TransactionSet calls internally such as
// AddInstall), bumps that counter, so a changed counter is a reliable signal
// that the dependency graph may have changed too.
type SortableTransactionSet struct {
	*TransactionSet

	order        []PackageID
	loops        [][]string
	sortedAt     uint64
	haveSortedAt bool
}

// NewSortable returns an empty SortableTransactionSet.
func NewSortable(opts ...Option) *SortableTransactionSet {
	return &SortableTransactionSet{TransactionSet: New(opts...)}
}

// Sort returns every member's PackageID in dependency order, a package never
// precedes anything it depends on, along with any dependency loops found
// along the way. Each loop is the ordered list of package names that form
// the cycle.
//
// Unlike a typical cycle-detecting topological sort, Sort does not abort
// when it finds a cycle. Real package graphs sometimes do contain a loop
// (two packages that each require the other); an executor still needs a
// total order to work with. Sort collects every loop it finds as a separate
// diagnostic and keeps going, using the edge that closes the loop as the
// point it stops recursing.
func (sts *SortableTransactionSet) Sort() (order []PackageID, loops [][]string) {
	if sts.haveSortedAt && sts.sortedAt == sts.StateCounter() {
		return sts.order, sts.loops
	}

	members := sts.Iterate()
	for _, m := range members {
		m.sortColor = colorWhite
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].Less(members[j], sts.cmp)
	})

	var out []PackageID
	var foundLoops [][]string
	var path []*TransactionMember

	var visit func(m *TransactionMember)
	visit = func(m *TransactionMember) {
		m.sortColor = colorGrey
		path = append(path, m)

		for _, neighbor := range sts.neighbors(m) {
			switch neighbor.sortColor {
			case colorWhite:
				visit(neighbor)
			case colorGrey:
				if loop, ok := sts.doLoop(path, neighbor); ok {
					foundLoops = append(foundLoops, loop)
				}
			case colorBlack:
				// already fully processed, nothing to do.
			}
		}

		path = path[:len(path)-1]
		m.sortColor = colorBlack
		out = append(out, m.id)
	}

	for _, m := range members {
		if m.sortColor == colorWhite {
			visit(m)
		}
	}

	sts.order, sts.loops, sts.sortedAt, sts.haveSortedAt = out, foundLoops, sts.StateCounter(), true
	return out, foundLoops
}

// neighbors returns the members m's depends_on edges point at, the only
// relation the sorter walks: obsoletes/updates/downgrades describe
// classification relationships, not ordering dependencies, and are
// deliberately not walked here.
func (sts *SortableTransactionSet) neighbors(m *TransactionMember) []*TransactionMember {
	var out []*TransactionMember
	for _, ref := range m.DependsOn {
		id := ref.ID()
		members := sts.Members(&id)
		if len(members) == 0 {
			continue
		}
		// Taking the first is deliberate: cycle detection uses names, not
		// ts_state variants.
		out = append(out, members[0])
	}
	return out
}

// doLoop builds the loop's name path from the first occurrence of closing in
// path through the end of path, with closing's name appended again to show
// the edge that closes the cycle. A suffix of length <= 2 (a
// self-dependency) is not a cycle of at least two distinct vertices and is
// reported as found=false.
func (sts *SortableTransactionSet) doLoop(path []*TransactionMember, closing *TransactionMember) (loop []string, found bool) {
	start := 0
	for i, m := range path {
		if m.id == closing.id {
			start = i
			break
		}
	}
	for _, m := range path[start:] {
		loop = append(loop, m.name)
	}
	loop = append(loop, closing.name)
	return loop, len(loop) > 2
}
