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
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vigilantdoomer/drawsort/internal/mylog"
)

const ( // BillboardConfig.Mode values
	BILLBOARD_Y = iota
	BILLBOARD_XY
)

// BillboardConfig mirrors renderer settings that decide whether a sprite's
// orientation depends on the camera
type BillboardConfig struct {
	Mode           int  `toml:"mode"`
	FacesCamera    bool `toml:"faces_camera"`
	ForceCamBBPref bool `toml:"force_cambbpref"`
	Particles      bool `toml:"particles"`
}

func DefaultBillboardConfig() BillboardConfig {
	return BillboardConfig{
		Mode:           BILLBOARD_Y,
		FacesCamera:    false,
		ForceCamBBPref: false,
		Particles:      true,
	}
}

// RenderState is the part of the renderer state the sorted traversal needs:
// a pair of horizontal clip planes (bottom, top)
type RenderState interface {
	GetClipSplit() [2]float32
	SetClipSplit(bottom, top float32)
	ClearClipSplit()
}

// VertexBuilder may be implemented by a RenderState that caches wall vertices.
// Walls whose geometry changed because of a split are passed to it
type VertexBuilder interface {
	MakeWallVertices(w *Wall)
}

// SpriteVertexBuilder is the same for sprites: both halves of a split sprite
// come with VertexIndex reset to -1
type SpriteVertexBuilder interface {
	MakeSpriteVertices(s *Sprite)
}

// Dispatcher receives primitives in draw order
type Dispatcher interface {
	DrawWall(w *Wall, state RenderState, translucent bool)
	DrawFlat(f *Flat, state RenderState, translucent bool)
	DrawSprite(s *Sprite, state RenderState, translucent bool)
}

// DrawInfo is what the draw list needs to know about the current view
type DrawInfo struct {
	ViewPos mgl32.Vec3
	// Level compatibility flag: among sprites at the same depth, draw the last
	// added first
	CompatSpriteSort bool
	Billboard        BillboardConfig
	Dispatch         Dispatcher
}

// Clock accumulates time spent in one kind of draw call
type Clock struct {
	start time.Time
	Total time.Duration
	Calls int
}

func (c *Clock) Clock() {
	c.start = time.Now()
}

func (c *Clock) Unclock() {
	c.Total += time.Since(c.start)
	c.Calls++
}

func (c *Clock) Reset() {
	*c = Clock{}
}

type Clocks struct {
	Wall   Clock
	Flat   Clock
	Sprite Clock
}

func (c *Clocks) Reset() {
	c.Wall.Reset()
	c.Flat.Reset()
	c.Sprite.Reset()
}

// Context is shared by all draw lists of one frame. Their sort nodes live in
// the same arena, and releasing one list's nodes releases those of every list
// sorted after it. Such lists are marked stale: they panic when drawn until
// they are reset
type Context struct {
	SortNodes SortNodeArena
	Clocks    Clocks
	owners    []*DrawList // sorted lists, in the order their nodes were allocated
}

func NewContext() *Context {
	return &Context{}
}

func (c *Context) claim(dl *DrawList) {
	c.owners = append(c.owners, dl)
}

func (c *Context) release(dl *DrawList) {
	k := len(c.owners) - 1
	for k >= 0 && c.owners[k] != dl {
		k--
	}
	if k < 0 {
		mylog.Log.Panic("Draw list releases sort nodes it does not own\n")
	}
	for i := k + 1; i < len(c.owners); i++ {
		c.owners[i].stale = true
		c.owners[i] = nil
	}
	c.owners[k] = nil
	c.owners = c.owners[:k]
	c.SortNodes.Release(dl.sortNodeStart)
}
