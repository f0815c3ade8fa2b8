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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeChain creates n nodes linked in a chain and returns them
func makeChain(a *SortNodeArena, n int) []NodeID {
	ids := make([]NodeID, n)
	for i := range ids {
		ids[i] = a.GetNew()
		a.Node(ids[i]).ItemIndex = i
		if i > 0 {
			a.Node(ids[i-1]).Next = ids[i]
			a.Node(ids[i]).Parent = ids[i-1]
		}
	}
	return ids
}

func TestGetNewIsBlank(t *testing.T) {
	var a SortNodeArena
	id := a.GetNew()
	assert.Equal(t, NodeID(0), id)
	assert.Equal(t, SortNode{
		ItemIndex: -1,
		Parent:    NO_NODE,
		Next:      NO_NODE,
		Left:      NO_NODE,
		Right:     NO_NODE,
		Equal:     NO_NODE,
	}, *a.Node(id))
	assert.Equal(t, 1, a.Size())
}

func TestUnlinkMiddle(t *testing.T) {
	var a SortNodeArena
	ids := makeChain(&a, 3)
	a.Unlink(ids[1])
	assert.Equal(t, ids[2], a.Node(ids[0]).Next)
	assert.Equal(t, ids[0], a.Node(ids[2]).Parent)
	assert.Equal(t, NO_NODE, a.Node(ids[1]).Next)
	assert.Equal(t, NO_NODE, a.Node(ids[1]).Parent)
	assert.Equal(t, 2, a.ChainLength(ids[0]))
}

func TestAddToLeftPrepends(t *testing.T) {
	var a SortNodeArena
	ids := makeChain(&a, 4)
	head := ids[0]
	a.Unlink(head)
	a.AddToLeft(head, ids[1])
	a.AddToLeft(head, ids[2])
	a.AddToRight(head, ids[3])

	left := a.Node(head).Left
	assert.Equal(t, ids[2], left)
	assert.Equal(t, ids[1], a.Node(left).Next)
	assert.Equal(t, ids[2], a.Node(ids[1]).Parent)
	assert.Equal(t, NO_NODE, a.Node(left).Parent)
	assert.Equal(t, 2, a.ChainLength(left))
	assert.Equal(t, 1, a.ChainLength(a.Node(head).Right))
	// structural operations never allocate or lose nodes
	assert.Equal(t, 4, a.Size())
}

func TestAddToEqual(t *testing.T) {
	var a SortNodeArena
	ids := makeChain(&a, 3)
	head := ids[0]
	a.Unlink(head)
	a.AddToEqual(head, ids[1])
	a.AddToEqual(head, ids[2])
	assert.Equal(t, ids[2], a.Node(head).Equal)
	assert.Equal(t, ids[1], a.Node(ids[2]).Equal)
	assert.Equal(t, NO_NODE, a.Node(ids[1]).Equal)
	assert.Equal(t, NO_NODE, a.Node(ids[2]).Next)
}

func TestRelease(t *testing.T) {
	var a SortNodeArena
	makeChain(&a, 5)
	a.Release(2)
	require.Equal(t, 2, a.Size())
	a.Release(10)
	assert.Equal(t, 2, a.Size())
	a.Release(-1)
	assert.Equal(t, 0, a.Size())
	assert.Equal(t, NodeID(0), a.GetNew())
}
