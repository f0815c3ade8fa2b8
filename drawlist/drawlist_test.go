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
)

func TestAddAssignsSpriteSequence(t *testing.T) {
	dl := NewDrawList(nil)
	assert.Equal(t, 0, dl.AddWall(Wall{Name: "w"}))
	s := Sprite{Name: "s", Index: 42}
	assert.Equal(t, 1, dl.AddSprite(s))
	assert.Equal(t, 2, dl.AddSprite(s))
	assert.Equal(t, 3, dl.AddFlat(Flat{Name: "f"}))
	assert.Equal(t, DrawItem{Kind: DRAWTYPE_SPRITE, Index: 1}, dl.Item(2))
	assert.Equal(t, 0, dl.SpriteOf(1).Index)
	assert.Equal(t, 1, dl.SpriteOf(2).Index)
	assert.Equal(t, "f", dl.FlatOf(3).Name)
}

func TestSortWallsByTextureThenFlags(t *testing.T) {
	dl := NewDrawList(nil)
	for _, w := range []Wall{
		{Name: "a", Texture: 3, Flags: 1},
		{Name: "b", Texture: 1, Flags: 2},
		{Name: "c", Texture: 3, Flags: 0},
		{Name: "d", Texture: 1, Flags: 2 | 4},
		{Name: "e", Texture: 1, Flags: 1},
	} {
		dl.AddWall(w)
	}
	dl.SortWalls()
	di, disp := newTestDrawInfo(0)
	dl.DrawWalls(di, newTestState(), false)
	// only the lower two bits of flags matter, equal keys keep their order
	assert.Equal(t, []string{"e", "b", "d", "c", "a"}, disp.names())
	assert.Equal(t, 1, dl.ctx.Clocks.Wall.Calls)
	assert.False(t, disp.calls[0].translucent)
}

func TestSortFlatsByTexture(t *testing.T) {
	dl := NewDrawList(nil)
	dl.AddFlat(Flat{Name: "a", Texture: 5})
	dl.AddFlat(Flat{Name: "b", Texture: 2})
	dl.AddFlat(Flat{Name: "c", Texture: 5})
	dl.SortFlats()
	di, disp := newTestDrawInfo(0)
	dl.DrawFlats(di, newTestState(), false)
	assert.Equal(t, []string{"b", "a", "c"}, disp.names())
}

func TestDrawKeepsItemOrder(t *testing.T) {
	dl := NewDrawList(nil)
	dl.AddSprite(Sprite{Name: "s"})
	dl.AddWall(Wall{Name: "w"})
	dl.AddFlat(Flat{Name: "f"})
	di, disp := newTestDrawInfo(0)
	dl.Draw(di, newTestState(), true)
	assert.Equal(t, []string{"s", "w", "f"}, disp.names())
	assert.Equal(t, 1, dl.ctx.Clocks.Sprite.Calls)
	assert.Equal(t, 1, dl.ctx.Clocks.Flat.Calls)
	assert.Equal(t, NO_NODE, dl.Sorted())

	dl.ctx.Clocks.Reset()
	assert.Equal(t, 0, dl.ctx.Clocks.Wall.Calls)
}
