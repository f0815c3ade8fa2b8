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

// Package drawlist sorts the renderable primitives (walls, flats, sprites) of
// one rendering pass. Opaque lists are only batched by material, translucent
// lists are arranged into a painter's algorithm tree so that they can be drawn
// back to front, with primitives that straddle a splitting plane cut in two.
package drawlist

import (
	"github.com/go-gl/mathgl/mgl32"
)

const ( // DrawItem.Kind values
	DRAWTYPE_WALL = iota
	DRAWTYPE_FLAT
	DRAWTYPE_SPRITE
)

// DrawItem is a tagged reference into one of the three primitive arrays of
// a draw list
type DrawItem struct {
	Kind  int
	Index int
}

func kindName(kind int) string {
	switch kind {
	case DRAWTYPE_WALL:
		return "wall"
	case DRAWTYPE_FLAT:
		return "flat"
	case DRAWTYPE_SPRITE:
		return "sprite"
	}
	return "unknown"
}

const ( // Wall.Type values
	RENDERWALL_NONE = iota
	RENDERWALL_TOP
	RENDERWALL_M1S
	RENDERWALL_M2S
	RENDERWALL_BOTTOM
	RENDERWALL_FOGBOUNDARY
	RENDERWALL_MIRRORSURFACE
	RENDERWALL_M2SNF
	RENDERWALL_COLOR
)

// Texture coordinate slots of a wall quad
const (
	UPLFT = iota
	UPRGT
	LORGT
	LOLFT
)

type TexCoord struct {
	U, V float32
}

// GLSeg is the horizontal extent of a wall: start and end vertices plus the
// fraction of the original line each end corresponds to
type GLSeg struct {
	X1, Y1    float32
	X2, Y2    float32
	FracLeft  float32
	FracRight float32
}

type Wall struct {
	Name    string
	Seg     GLSeg
	ZTop    [2]float32 // at start, end of seg
	ZBottom [2]float32
	Tcs     [4]TexCoord // indexed by UPLFT, UPRGT, LORGT, LOLFT
	LightUV [4]TexCoord
	Type    int
	Texture int // material key, lists are batched by it
	Flags   uint32
	// Squared distance from viewpoint, used to pick the most central wall as
	// partition
	ViewDistance float32
	// Vertex cache: VertCount == 0 means vertices need to be generated again
	VertIndex int
	VertCount int
}

// PointOnSide returns a negative value for points to the left of the wall
// (which is further away from the viewer), a positive one for points to the
// right, and something very close to zero for points on the wall's line
func (w *Wall) PointOnSide(x, y float32) float32 {
	return (x-w.Seg.X1)*(w.Seg.Y2-w.Seg.Y1) - (y-w.Seg.Y1)*(w.Seg.X2-w.Seg.X1)
}

func (w *Wall) Start() mgl32.Vec2 {
	return mgl32.Vec2{w.Seg.X1, w.Seg.Y1}
}

func (w *Wall) End() mgl32.Vec2 {
	return mgl32.Vec2{w.Seg.X2, w.Seg.Y2}
}

func (w *Wall) InvalidateVertices() {
	w.VertCount = 0
}

type Flat struct {
	Name    string
	Z       float32
	Ceiling bool
	Texture int
	Sector  int
}

// Sprite render flags, a merge of what actor's renderflags and renderflags2
// can tell the sorter about orientation of the sprite
const (
	RF_FORCEYBILLBOARD = 1 << iota
	RF_FORCEXYBILLBOARD
	RF_ROLLSPRITE
	RF_WALLSPRITE
	RF_FLATSPRITE
	RF2_BILLBOARDFACECAMERA
	RF2_BILLBOARDNOFACECAMERA
)

type Sprite struct {
	Name string
	// Anchor point
	X, Y, Z float32
	// Horizontal extent of the quad
	X1, Y1 float32
	X2, Y2 float32
	// Z1 is normally the top, Z2 the bottom. VT is the texture v at Z1, VB at Z2
	Z1, Z2 float32
	UL, UR float32
	VT, VB float32
	// Distance along the view direction, farther sprites are drawn first
	Depth float32
	// Insertion sequence, breaks ties among sprites at the same depth
	Index       int
	Texture     int
	ModelFrame  bool
	Particle    bool
	HasActor    bool
	RenderFlags uint32
	VertexIndex int
}

func (s *Sprite) InvalidateVertices() {
	s.VertexIndex = -1
}
