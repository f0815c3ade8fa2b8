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

import (
	"fmt"
	"strings"

	"github.com/vigilantdoomer/drawsort/internal/mylog"
)

// DrawSorted draws the list back to front, sorting it first if needed. Flats
// act as clip planes for whatever is drawn on either side of them
func (dl *DrawList) DrawSorted(di *DrawInfo, state RenderState) {
	if len(dl.drawItems) == 0 {
		return
	}
	dl.Sort(di, state)
	state.ClearClipSplit()
	dl.drawSortedNode(di, state, dl.sorted)
	state.ClearClipSplit()
}

func (dl *DrawList) drawSortedNode(di *DrawInfo, state RenderState, head NodeID) {
	arena := &dl.ctx.SortNodes
	clipsplit := state.GetClipSplit()
	relation := 0
	z := float32(0)

	item := dl.drawItems[arena.Node(head).ItemIndex]
	if item.Kind == DRAWTYPE_FLAT {
		z = dl.flats[item.Index].Z
		if z > di.ViewPos[2] {
			relation = 1
		} else {
			relation = -1
		}
	}

	// left is further away: above the viewer it is higher, below it is lower
	if left := arena.Node(head).Left; left != NO_NODE {
		if relation == -1 {
			state.SetClipSplit(clipsplit[0], z) // flat is the top clip plane
		} else if relation == 1 {
			state.SetClipSplit(z, clipsplit[1]) // flat is the bottom clip plane
		}
		dl.drawSortedNode(di, state, left)
		state.SetClipSplit(clipsplit[0], clipsplit[1])
	}
	dl.doDraw(di, state, true, arena.Node(head).ItemIndex)
	for e := arena.Node(head).Equal; e != NO_NODE; e = arena.Node(e).Equal {
		dl.doDraw(di, state, true, arena.Node(e).ItemIndex)
	}
	if right := arena.Node(head).Right; right != NO_NODE {
		if relation == 1 {
			state.SetClipSplit(clipsplit[0], z)
		} else if relation == -1 {
			state.SetClipSplit(z, clipsplit[1])
		}
		dl.drawSortedNode(di, state, right)
		state.SetClipSplit(clipsplit[0], clipsplit[1])
	}
}

// SortedOrder returns draw item indices in the order DrawSorted would draw
// them. Returns nil if the list has not been sorted
func (dl *DrawList) SortedOrder() []int {
	if dl.sorted == NO_NODE {
		return nil
	}
	dl.checkNodes()
	order := make([]int, 0, len(dl.drawItems))
	dl.walkSorted(dl.sorted, func(n NodeID, depth int) {
		order = append(order, dl.ctx.SortNodes.Node(n).ItemIndex)
	})
	return order
}

// walkSorted visits nodes in draw order. Equal chain members are reported at
// the depth of their head
func (dl *DrawList) walkSorted(head NodeID, visit func(n NodeID, depth int)) {
	arena := &dl.ctx.SortNodes
	var walk func(n NodeID, depth int)
	walk = func(n NodeID, depth int) {
		node := arena.Node(n)
		if node.Left != NO_NODE {
			walk(node.Left, depth+1)
		}
		visit(n, depth)
		for e := arena.Node(n).Equal; e != NO_NODE; e = arena.Node(e).Equal {
			visit(e, depth)
		}
		if right := arena.Node(n).Right; right != NO_NODE {
			walk(right, depth+1)
		}
	}
	walk(head, 0)
}

// OrderViolation is a pair of walls drawn one after another, where the wall
// drawn later is entirely behind the one drawn earlier
type OrderViolation struct {
	Earlier int // draw item indices
	Later   int
}

func (v OrderViolation) String() string {
	return fmt.Sprintf("wall item %d drawn after wall item %d, but lies behind it",
		v.Later, v.Earlier)
}

// strictlyLeft tells whether both ends of w lie on the far side of ref
func strictlyLeft(ref, w *Wall) bool {
	return ref.PointOnSide(w.Seg.X1, w.Seg.Y1) < -MIN_EQ &&
		ref.PointOnSide(w.Seg.X2, w.Seg.Y2) < -MIN_EQ
}

func strictlyRight(ref, w *Wall) bool {
	return ref.PointOnSide(w.Seg.X1, w.Seg.Y1) > MIN_EQ &&
		ref.PointOnSide(w.Seg.X2, w.Seg.Y2) > MIN_EQ
}

// VerifyOrder sorts the list if needed and checks every two walls that are
// drawn in succession. Later wall must not be behind the earlier one while the
// earlier one is in front of the later one
func (dl *DrawList) VerifyOrder(di *DrawInfo, state RenderState) []OrderViolation {
	dl.Sort(di, state)
	var violations []OrderViolation
	order := dl.SortedOrder()
	for i := 1; i < len(order); i++ {
		a, b := dl.drawItems[order[i-1]], dl.drawItems[order[i]]
		if a.Kind != DRAWTYPE_WALL || b.Kind != DRAWTYPE_WALL {
			continue
		}
		wa, wb := dl.walls[a.Index], dl.walls[b.Index]
		if strictlyLeft(wa, wb) && strictlyRight(wb, wa) {
			violations = append(violations, OrderViolation{Earlier: order[i-1], Later: order[i]})
		}
	}
	return violations
}

// DumpSorted prints the tree, one node per line, indented by depth
func (dl *DrawList) DumpSorted(level int) {
	if dl.sorted == NO_NODE || mylog.Log.Verbosity() < level {
		return
	}
	dl.checkNodes()
	var sb strings.Builder
	dl.walkSorted(dl.sorted, func(n NodeID, depth int) {
		idx := dl.ctx.SortNodes.Node(n).ItemIndex
		item := dl.drawItems[idx]
		name := ""
		switch item.Kind {
		case DRAWTYPE_WALL:
			name = dl.walls[item.Index].Name
		case DRAWTYPE_FLAT:
			name = dl.flats[item.Index].Name
		case DRAWTYPE_SPRITE:
			name = dl.sprites[item.Index].Name
		}
		sb.WriteString(fmt.Sprintf("%s%s #%d %q\n", strings.Repeat("  ", depth),
			kindName(item.Kind), idx, name))
	})
	mylog.Log.Verbose(level, "%s", sb.String())
}
