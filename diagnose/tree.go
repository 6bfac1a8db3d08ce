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
	"io"
	"strings"

	"seehuhn.de/go/label"
)

// Node is a node in a dependency tree.
type Node struct {
	Ref  string
	Kind Kind
	ID   string
	Name string

	// Cycle is set if the node already appears on the path from the root.
	// The children of such a node are not expanded.
	Cycle bool

	Children []*Node
}

// Tree returns the dependency tree of the function, or variable, ref.
func Tree(doc *label.Document, ref string) *Node {
	return buildTree(doc, ref, map[string]bool{})
}

func buildTree(doc *label.Document, ref string, path map[string]bool) *Node {
	n := &Node{Ref: ref}

	var f label.Function
	if g, ok := doc.Function(ref); ok {
		f, n.Kind = g, FunctionID
	} else if g, ok := doc.FunctionByName(ref); ok {
		f, n.Kind = g, FunctionName
	} else if v, ok := doc.Variable(ref); ok {
		n.Kind, n.ID, n.Name = VariableID, v.ID, v.Name
		return n
	} else if v, ok := doc.VariableByName(ref); ok {
		n.Kind, n.ID, n.Name = VariableName, v.ID, v.Name
		return n
	} else {
		return n
	}

	info := f.Info()
	n.ID, n.Name = info.ID, info.Name
	if path[info.ID] {
		n.Cycle = true
		return n
	}
	path[info.ID] = true
	defer delete(path, info.ID)

	for _, dep := range f.Deps() {
		n.Children = append(n.Children, buildTree(doc, dep, path))
	}
	return n
}

func (n *Node) label() string {
	var b strings.Builder
	switch n.Kind {
	case FunctionID, FunctionName:
		b.WriteString("function ")
	case VariableID, VariableName:
		b.WriteString("variable ")
	default:
		fmt.Fprintf(&b, "%s (not found)", n.Ref)
		return b.String()
	}
	if n.Name != "" {
		fmt.Fprintf(&b, "%s [%s]", n.Name, n.ID)
	} else {
		b.WriteString(n.ID)
	}
	if n.Cycle {
		b.WriteString(" (cycle)")
	}
	return b.String()
}

// Write prints the tree to w, one node per line.
func (n *Node) Write(w io.Writer) error {
	return n.write(w, "", "")
}

func (n *Node) write(w io.Writer, first, rest string) error {
	if _, err := fmt.Fprintln(w, first+n.label()); err != nil {
		return err
	}
	for i, c := range n.Children {
		var err error
		if i == len(n.Children)-1 {
			err = c.write(w, rest+"└── ", rest+"    ")
		} else {
			err = c.write(w, rest+"├── ", rest+"│   ")
		}
		if err != nil {
			return err
		}
	}
	return nil
}
