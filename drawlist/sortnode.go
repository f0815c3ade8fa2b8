// Copyright (C) 2022-2023, VigilantDoomer
//
// This file is part of DrawSort program.
//
// DrawSort is free software: you can redistribute it
// and/or modify it under the terms of GNU General Public License
// as published by the Free Software Foundation, either version 2 of
// the License, or (at your option) any later version.
//
// DrawSort is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with DrawSort.  If not, see <https://www.gnu.org/licenses/>.
package drawlist

// Sort nodes are stored in an arena and refer to each other by index. The
// arena only grows during a sort pass (splits allocate new nodes while
// classification is under way), so holding *SortNode across GetNew is a bug:
// always go through the NodeID

type NodeID int32

const NO_NODE = NodeID(-1)

// SortNode is a member of either an unsorted chain (Parent/Next, where Parent
// means "previous in chain") or a sorted tree (Left/Right subtrees, Equal
// chain of coplanar siblings)
type SortNode struct {
	ItemIndex int
	Parent    NodeID
	Next      NodeID
	Left      NodeID
	Right     NodeID
	Equal     NodeID
}

// SortNodeArena is a bump allocator with bulk release
type SortNodeArena struct {
	nodes []SortNode
}

// GetNew returns a node with all links cleared
func (a *SortNodeArena) GetNew() NodeID {
	a.nodes = append(a.nodes, SortNode{
		ItemIndex: -1,
		Parent:    NO_NODE,
		Next:      NO_NODE,
		Left:      NO_NODE,
		Right:     NO_NODE,
		Equal:     NO_NODE,
	})
	return NodeID(len(a.nodes) - 1)
}

func (a *SortNodeArena) Size() int {
	return len(a.nodes)
}

// Release frees all nodes allocated at or after start
func (a *SortNodeArena) Release(start int) {
	if start < 0 {
		start = 0
	}
	if start < len(a.nodes) {
		a.nodes = a.nodes[:start]
	}
}

// Node is only valid until the next GetNew
func (a *SortNodeArena) Node(id NodeID) *SortNode {
	return &a.nodes[id]
}

// Unlink removes node from the chain it is in
func (a *SortNodeArena) Unlink(id NodeID) {
	n := &a.nodes[id]
	if n.Parent != NO_NODE {
		a.nodes[n.Parent].Next = n.Next
	}
	if n.Next != NO_NODE {
		a.nodes[n.Next].Parent = n.Parent
	}
	n.Parent = NO_NODE
	n.Next = NO_NODE
}

// Link inserts node in front of hook. When hook is NO_NODE, node becomes the
// single member of a new chain (its Parent is kept as is)
func (a *SortNodeArena) Link(id, hook NodeID) {
	n := &a.nodes[id]
	if hook != NO_NODE {
		n.Parent = a.nodes[hook].Parent
		a.nodes[hook].Parent = id
	}
	n.Next = hook
	if n.Parent != NO_NODE {
		a.nodes[n.Parent].Next = id
	}
}

func (a *SortNodeArena) AddToEqual(head, child NodeID) {
	a.Unlink(child)
	a.nodes[child].Equal = a.nodes[head].Equal
	a.nodes[head].Equal = child
}

func (a *SortNodeArena) AddToLeft(head, child NodeID) {
	a.Unlink(child)
	a.Link(child, a.nodes[head].Left)
	a.nodes[head].Left = child
}

func (a *SortNodeArena) AddToRight(head, child NodeID) {
	a.Unlink(child)
	a.Link(child, a.nodes[head].Right)
	a.nodes[head].Right = child
}

// ChainLength counts nodes following head through Next, head included
func (a *SortNodeArena) ChainLength(head NodeID) int {
	cnt := 0
	for n := head; n != NO_NODE; n = a.nodes[n].Next {
		cnt++
	}
	return cnt
}
