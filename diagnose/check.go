// seehuhn.de/go/label - load and lay out packaged label documents
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package diagnose

import (
	"fmt"
	"strings"

	"seehuhn.de/go/label"
)

// CycleError describes functions which depend on each other.
type CycleError struct {
	// Functions lists the ids of the functions on, or between, dependency
	// cycles, in document order.
	Functions []string
}

func (err *CycleError) Error() string {
	return "dependency cycle between functions " + strings.Join(err.Functions, ", ")
}

// Problems lists the issues found by [Check].
type Problems struct {
	Cycle      *CycleError
	Unresolved []label.UnresolvedRef
	Collisions []label.NameCollision
}

// OK reports whether no problems were found.
func (p *Problems) OK() bool {
	return p.Cycle == nil && len(p.Unresolved) == 0 && len(p.Collisions) == 0
}

func (p *Problems) String() string {
	if p.OK() {
		return "no problems found"
	}
	var lines []string
	if p.Cycle != nil {
		lines = append(lines, p.Cycle.Error())
	}
	for _, u := range p.Unresolved {
		lines = append(lines, fmt.Sprintf("%s: unresolved reference %q", u.Owner, u.Ref))
	}
	for _, c := range p.Collisions {
		lines = append(lines, c.String())
	}
	return strings.Join(lines, "\n")
}

// Check looks for dependency cycles, unresolved references and duplicate
// names in doc.  The document is not modified.
func Check(doc *label.Document) *Problems {
	p := &Problems{
		Collisions: doc.NameCollisions(),
		Unresolved: doc.Clone().NormalizeReferences(),
	}
	if _, err := EvaluationOrder(doc); err != nil {
		p.Cycle = err.(*CycleError)
	}
	return p
}

// EvaluationOrder returns the function ids of doc, ordered so that every
// function comes after the functions it depends on.  If the functions
// contain a cycle, a [*CycleError] is returned.
func EvaluationOrder(doc *label.Document) ([]string, error) {
	ids := doc.FunctionIDs()
	if len(ids) == 0 {
		return nil, nil
	}

	// edges from each function to the functions using it
	users := make(map[string][]string, len(ids))
	inDegree := make(map[string]int, len(ids))
	for _, id := range ids {
		f, _ := doc.Function(id)
		seen := make(map[string]bool)
		for _, ref := range f.Deps() {
			dep, ok := doc.LookupFunction(ref)
			if !ok {
				continue
			}
			depID := dep.Info().ID
			if seen[depID] {
				continue
			}
			seen[depID] = true
			users[depID] = append(users[depID], id)
			inDegree[id]++
		}
	}

	var queue []string
	for _, id := range ids {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	var order []string
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)
		for _, user := range users[id] {
			inDegree[user]--
			if inDegree[user] == 0 {
				queue = append(queue, user)
			}
		}
	}
	if len(order) == len(ids) {
		return order, nil
	}

	// Functions left over lie on a cycle or depend on one.  Drop those
	// which no left over function depends on, until only the cycles and
	// the paths between them remain.
	left := make(map[string]bool)
	for _, id := range ids {
		if inDegree[id] > 0 {
			left[id] = true
		}
	}
	for changed := true; changed; {
		changed = false
		for id := range left {
			used := false
			for _, user := range users[id] {
				if left[user] {
					used = true
					break
				}
			}
			if !used {
				delete(left, id)
				changed = true
			}
		}
	}

	var cycle []string
	for _, id := range ids {
		if left[id] {
			cycle = append(cycle, id)
		}
	}
	return nil, &CycleError{Functions: cycle}
}
