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

	"github.com/vigilantdoomer/drawsort/internal/mylog"
)

// DrawList holds the primitives collected for one rendering pass. Primitive
// arrays are append-only between resets: splitting a primitive during a sort
// appends the new half, so indices captured by sort nodes stay valid
type DrawList struct {
	ctx       *Context
	walls     []*Wall
	flats     []*Flat
	sprites   []*Sprite
	drawItems []DrawItem

	reverseSort   bool
	sortZ         float32
	sortNodeStart int
	sorted        NodeID
	stale         bool // sort nodes were freed by a list sorted earlier
	spriteSeq     int
}

func NewDrawList(ctx *Context) *DrawList {
	if ctx == nil {
		ctx = NewContext()
	}
	return &DrawList{
		ctx:       ctx,
		walls:     make([]*Wall, 0),
		flats:     make([]*Flat, 0),
		sprites:   make([]*Sprite, 0),
		drawItems: make([]DrawItem, 0),
		sorted:    NO_NODE,
	}
}

func (dl *DrawList) Reset() {
	if dl.stale {
		dl.stale = false
	} else if dl.sorted != NO_NODE {
		dl.ctx.release(dl)
	}
	dl.sorted = NO_NODE
	dl.walls = dl.walls[:0]
	dl.flats = dl.flats[:0]
	dl.sprites = dl.sprites[:0]
	dl.drawItems = dl.drawItems[:0]
	dl.spriteSeq = 0
}

func (dl *DrawList) checkNodes() {
	if dl.stale {
		mylog.Log.Panic("Draw list used after a list sorted before it was reset\n")
	}
}

func (dl *DrawList) Context() *Context {
	return dl.ctx
}

// Len is the number of draw items, including ones created by splits
func (dl *DrawList) Len() int {
	return len(dl.drawItems)
}

func (dl *DrawList) Item(i int) DrawItem {
	return dl.drawItems[i]
}

func (dl *DrawList) WallOf(i int) *Wall {
	return dl.walls[dl.drawItems[i].Index]
}

func (dl *DrawList) FlatOf(i int) *Flat {
	return dl.flats[dl.drawItems[i].Index]
}

func (dl *DrawList) SpriteOf(i int) *Sprite {
	return dl.sprites[dl.drawItems[i].Index]
}

// Sorted returns root of the sorted tree, NO_NODE until Sort has run on a
// non-empty list
func (dl *DrawList) Sorted() NodeID {
	return dl.sorted
}

func (dl *DrawList) NewWall() *Wall {
	wall := new(Wall)
	dl.walls = append(dl.walls, wall)
	dl.drawItems = append(dl.drawItems, DrawItem{Kind: DRAWTYPE_WALL, Index: len(dl.walls) - 1})
	return wall
}

func (dl *DrawList) NewFlat() *Flat {
	flat := new(Flat)
	dl.flats = append(dl.flats, flat)
	dl.drawItems = append(dl.drawItems, DrawItem{Kind: DRAWTYPE_FLAT, Index: len(dl.flats) - 1})
	return flat
}

func (dl *DrawList) NewSprite() *Sprite {
	sprite := new(Sprite)
	dl.sprites = append(dl.sprites, sprite)
	dl.drawItems = append(dl.drawItems, DrawItem{Kind: DRAWTYPE_SPRITE, Index: len(dl.sprites) - 1})
	return sprite
}

// AddWall copies w into the list and returns index of its draw item
func (dl *DrawList) AddWall(w Wall) int {
	*dl.NewWall() = w
	return len(dl.drawItems) - 1
}

func (dl *DrawList) AddFlat(f Flat) int {
	*dl.NewFlat() = f
	return len(dl.drawItems) - 1
}

// AddSprite copies s into the list. Sprite's Index is overwritten with the
// insertion sequence of the list
func (dl *DrawList) AddSprite(s Sprite) int {
	s.Index = dl.spriteSeq
	dl.spriteSeq++
	*dl.NewSprite() = s
	return len(dl.drawItems) - 1
}

// SortWalls orders a list of walls by texture, then by light level flags, to
// reduce state changes when order doesn't matter (opaque geometry)
func (dl *DrawList) SortWalls() {
	if len(dl.drawItems) > 1 {
		sort.SliceStable(dl.drawItems, func(i, j int) bool {
			w1 := dl.walls[dl.drawItems[i].Index]
			w2 := dl.walls[dl.drawItems[j].Index]
			if w1.Texture != w2.Texture {
				return w1.Texture < w2.Texture
			}
			return (w1.Flags & 3) < (w2.Flags & 3)
		})
	}
}

// SortFlats orders a list of flats by texture
func (dl *DrawList) SortFlats() {
	if len(dl.drawItems) > 1 {
		sort.SliceStable(dl.drawItems, func(i, j int) bool {
			return dl.flats[dl.drawItems[i].Index].Texture <
				dl.flats[dl.drawItems[j].Index].Texture
		})
	}
}

func (dl *DrawList) doDraw(di *DrawInfo, state RenderState, translucent bool, i int) {
	clocks := &dl.ctx.Clocks
	item := dl.drawItems[i]
	switch item.Kind {
	case DRAWTYPE_FLAT:
		{
			clocks.Flat.Clock()
			di.Dispatch.DrawFlat(dl.flats[item.Index], state, translucent)
			clocks.Flat.Unclock()
		}
	case DRAWTYPE_WALL:
		{
			clocks.Wall.Clock()
			di.Dispatch.DrawWall(dl.walls[item.Index], state, translucent)
			clocks.Wall.Unclock()
		}
	case DRAWTYPE_SPRITE:
		{
			clocks.Sprite.Clock()
			di.Dispatch.DrawSprite(dl.sprites[item.Index], state, translucent)
			clocks.Sprite.Unclock()
		}
	default:
		{
			mylog.Log.Panic("Draw item %d has unknown type %d\n", i, item.Kind)
		}
	}
}

// Draw dispatches items in the order they are stored, no tree involved
func (dl *DrawList) Draw(di *DrawInfo, state RenderState, translucent bool) {
	for i := range dl.drawItems {
		dl.doDraw(di, state, translucent, i)
	}
}

// DrawWalls is Draw for a list known to hold only walls
func (dl *DrawList) DrawWalls(di *DrawInfo, state RenderState, translucent bool) {
	clocks := &dl.ctx.Clocks
	clocks.Wall.Clock()
	for _, item := range dl.drawItems {
		di.Dispatch.DrawWall(dl.walls[item.Index], state, translucent)
	}
	clocks.Wall.Unclock()
}

// DrawFlats is Draw for a list known to hold only flats
func (dl *DrawList) DrawFlats(di *DrawInfo, state RenderState, translucent bool) {
	clocks := &dl.ctx.Clocks
	clocks.Flat.Clock()
	for _, item := range dl.drawItems {
		di.Dispatch.DrawFlat(dl.flats[item.Index], state, translucent)
	}
	clocks.Flat.Unclock()
}
