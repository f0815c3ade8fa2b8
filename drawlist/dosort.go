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
	"sort"

	"github.com/chewxy/math32"
	"github.com/vigilantdoomer/drawsort/internal/mylog"
)

// makeSortList links one node per draw item into a chain, in item order
func (dl *DrawList) makeSortList() NodeID {
	arena := &dl.ctx.SortNodes
	dl.sortNodeStart = arena.Size()
	prev := NO_NODE
	for i := range dl.drawItems {
		n := arena.GetNew()
		node := arena.Node(n)
		node.ItemIndex = i
		node.Parent = prev
		if prev != NO_NODE {
			arena.Node(prev).Next = n
		}
		prev = n
	}
	return NodeID(dl.sortNodeStart)
}

func (dl *DrawList) findSortPlane(head NodeID) NodeID {
	arena := &dl.ctx.SortNodes
	for n := head; n != NO_NODE; n = arena.Node(n).Next {
		if dl.drawItems[arena.Node(n).ItemIndex].Kind == DRAWTYPE_FLAT {
			return n
		}
	}
	return NO_NODE
}

// findSortWall picks the wall whose view distance is closest to the middle of
// the range covered by the walls of the chain. The first one wins ties
func (dl *DrawList) findSortWall(head NodeID) NodeID {
	arena := &dl.ctx.SortNodes
	farthest := float32(-math32.MaxFloat32)
	nearest := float32(math32.MaxFloat32)
	found := false
	for n := head; n != NO_NODE; n = arena.Node(n).Next {
		item := dl.drawItems[arena.Node(n).ItemIndex]
		if item.Kind == DRAWTYPE_WALL {
			d := dl.walls[item.Index].ViewDistance
			farthest = math32.Max(farthest, d)
			nearest = math32.Min(nearest, d)
			found = true
		}
	}
	if !found {
		return NO_NODE
	}
	middle := (farthest + nearest) / 2
	best := NO_NODE
	bestDist := float32(math32.MaxFloat32)
	for n := head; n != NO_NODE; n = arena.Node(n).Next {
		item := dl.drawItems[arena.Node(n).ItemIndex]
		if item.Kind == DRAWTYPE_WALL {
			dist := math32.Abs(dl.walls[item.Index].ViewDistance - middle)
			if best == NO_NODE || dist < bestDist {
				best = n
				bestDist = dist
			}
		}
	}
	return best
}

// sortSpriteList orders a chain of sprites from the farthest to the nearest
// and turns it into an equal chain. Returns the head of that chain
func (dl *DrawList) sortSpriteList(head NodeID) NodeID {
	arena := &dl.ctx.SortNodes
	list := make([]NodeID, 0, arena.ChainLength(head))
	for n := head; n != NO_NODE; n = arena.Node(n).Next {
		list = append(list, n)
	}
	sort.SliceStable(list, func(i, j int) bool {
		s1 := dl.SpriteOf(arena.Node(list[i]).ItemIndex)
		s2 := dl.SpriteOf(arena.Node(list[j]).ItemIndex)
		if s1.Depth != s2.Depth {
			return s1.Depth > s2.Depth
		}
		if dl.reverseSort {
			return s1.Index > s2.Index
		}
		return s1.Index < s2.Index
	})
	for i, n := range list {
		node := arena.Node(n)
		node.Parent = NO_NODE
		node.Next = NO_NODE
		node.Equal = NO_NODE
		if i > 0 {
			arena.Node(list[i-1]).Equal = n
		}
	}
	return list[0]
}

// sortChain makes a subtree out of a chain. Returns head of the subtree and
// whether it is a pivot whose left and right chains still need sorting
func (dl *DrawList) sortChain(di *DrawInfo, state RenderState, head NodeID) (NodeID, bool) {
	arena := &dl.ctx.SortNodes
	isPlane := true
	sn := dl.findSortPlane(head)
	if sn == NO_NODE {
		isPlane = false
		sn = dl.findSortWall(head)
		if sn == NO_NODE {
			return dl.sortSpriteList(head), false
		}
	}
	if sn == head {
		head = arena.Node(head).Next
	}
	arena.Unlink(sn)
	for node := head; node != NO_NODE; {
		next := arena.Node(node).Next
		kind := dl.drawItems[arena.Node(node).ItemIndex].Kind
		if isPlane {
			switch kind {
			case DRAWTYPE_FLAT:
				dl.sortPlaneIntoPlane(sn, node)
			case DRAWTYPE_WALL:
				dl.sortWallIntoPlane(state, sn, node)
			case DRAWTYPE_SPRITE:
				dl.sortSpriteIntoPlane(state, sn, node)
			default:
				mylog.Log.Panic("Draw item %d has unknown type %d\n",
					arena.Node(node).ItemIndex, kind)
			}
		} else {
			switch kind {
			case DRAWTYPE_WALL:
				dl.sortWallIntoWall(state, sn, node)
			case DRAWTYPE_SPRITE:
				dl.sortSpriteIntoWall(state, di.Billboard, sn, node)
			case DRAWTYPE_FLAT:
				// flats are always picked as pivots before walls
			default:
				mylog.Log.Panic("Draw item %d has unknown type %d\n",
					arena.Node(node).ItemIndex, kind)
			}
		}
		node = next
	}
	return sn, true
}

// Where the subtree made of a chain gets attached to
type sortTask struct {
	chain  NodeID
	parent NodeID // NO_NODE means the tree root
	left   bool
}

// doSort builds the tree. Chains are taken from an explicit stack rather than
// by recursion, since split-heavy scenes can make the tree very deep. Left
// chain is pushed last so that it is processed first
func (dl *DrawList) doSort(di *DrawInfo, state RenderState, head NodeID) NodeID {
	arena := &dl.ctx.SortNodes
	root := NO_NODE
	stack := []sortTask{{chain: head, parent: NO_NODE}}
	for len(stack) > 0 {
		task := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		sn, pivot := dl.sortChain(di, state, task.chain)
		if task.parent == NO_NODE {
			root = sn
		} else if task.left {
			arena.Node(task.parent).Left = sn
		} else {
			arena.Node(task.parent).Right = sn
		}
		if !pivot {
			continue
		}
		node := arena.Node(sn)
		if node.Right != NO_NODE {
			stack = append(stack, sortTask{chain: node.Right, parent: sn, left: false})
		}
		if node.Left != NO_NODE {
			stack = append(stack, sortTask{chain: node.Left, parent: sn, left: true})
		}
	}
	return root
}

// Sort builds the back-to-front tree for the list. Does nothing if the list
// is already sorted, or empty
func (dl *DrawList) Sort(di *DrawInfo, state RenderState) {
	dl.checkNodes()
	if dl.sorted != NO_NODE || len(dl.drawItems) == 0 {
		return
	}
	dl.reverseSort = di.CompatSpriteSort
	dl.sortZ = di.ViewPos[2]
	head := dl.makeSortList()
	dl.sorted = dl.doSort(di, state, head)
	dl.ctx.claim(dl)
	mylog.Log.Verbose(2, "Sorted %d draw items into %d nodes\n", len(dl.drawItems),
		dl.ctx.SortNodes.Size()-dl.sortNodeStart)
}
