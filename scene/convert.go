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
package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/vigilantdoomer/drawsort/drawlist"
)

const DEFAULT_SPRITE_WIDTH = float32(32)

var wallTypes = map[string]int{
	"":              drawlist.RENDERWALL_M2S,
	"none":          drawlist.RENDERWALL_NONE,
	"top":           drawlist.RENDERWALL_TOP,
	"m1s":           drawlist.RENDERWALL_M1S,
	"m2s":           drawlist.RENDERWALL_M2S,
	"bottom":        drawlist.RENDERWALL_BOTTOM,
	"fogboundary":   drawlist.RENDERWALL_FOGBOUNDARY,
	"mirrorsurface": drawlist.RENDERWALL_MIRRORSURFACE,
	"m2snf":         drawlist.RENDERWALL_M2SNF,
	"color":         drawlist.RENDERWALL_COLOR,
}

var spriteFlags = map[string]uint32{
	"forceybillboard":       drawlist.RF_FORCEYBILLBOARD,
	"forcexybillboard":      drawlist.RF_FORCEXYBILLBOARD,
	"rollsprite":            drawlist.RF_ROLLSPRITE,
	"wallsprite":            drawlist.RF_WALLSPRITE,
	"flatsprite":            drawlist.RF_FLATSPRITE,
	"billboardfacecamera":   drawlist.RF2_BILLBOARDFACECAMERA,
	"billboardnofacecamera": drawlist.RF2_BILLBOARDNOFACECAMERA,
}

// Kind tells which primitive the item holds, as drawlist.DRAWTYPE_* value
func (it *ItemDef) Kind() int {
	switch {
	case it.Wall != nil:
		return drawlist.DRAWTYPE_WALL
	case it.Flat != nil:
		return drawlist.DRAWTYPE_FLAT
	}
	return drawlist.DRAWTYPE_SPRITE
}

func (it *ItemDef) Name() string {
	switch {
	case it.Wall != nil:
		return it.Wall.Name
	case it.Flat != nil:
		return it.Flat.Name
	case it.Sprite != nil:
		return it.Sprite.Name
	}
	return ""
}

func (sc *Scene) Wall(def *WallDef) drawlist.Wall {
	w := drawlist.Wall{
		Name: def.Name,
		Seg: drawlist.GLSeg{
			X1: def.Seg[0], Y1: def.Seg[1],
			X2: def.Seg[2], Y2: def.Seg[3],
			FracLeft: 0, FracRight: 1,
		},
		ZTop:      def.ZTop,
		ZBottom:   def.ZBottom,
		Type:      wallTypes[def.Type],
		Texture:   def.Texture,
		Flags:     def.Flags,
		VertIndex: -1,
	}
	u := [2]float32{0, 1}
	if def.U != nil {
		u = *def.U
	}
	v := [2]float32{0, 1}
	if def.V != nil {
		v = *def.V
	}
	w.Tcs[drawlist.UPLFT] = drawlist.TexCoord{U: u[0], V: v[0]}
	w.Tcs[drawlist.UPRGT] = drawlist.TexCoord{U: u[1], V: v[0]}
	w.Tcs[drawlist.LOLFT] = drawlist.TexCoord{U: u[0], V: v[1]}
	w.Tcs[drawlist.LORGT] = drawlist.TexCoord{U: u[1], V: v[1]}
	w.LightUV = w.Tcs
	if def.ViewDistance != nil {
		w.ViewDistance = *def.ViewDistance
	} else {
		mid := w.Start().Add(w.End()).Mul(0.5)
		d := mid.Sub(sc.ViewPos().Vec2())
		w.ViewDistance = d.Dot(d)
	}
	return w
}

func (sc *Scene) Flat(def *FlatDef) drawlist.Flat {
	return drawlist.Flat{
		Name:    def.Name,
		Z:       def.Z,
		Ceiling: def.Ceiling,
		Texture: def.Texture,
		Sector:  def.Sector,
	}
}

func (sc *Scene) Sprite(def *SpriteDef) drawlist.Sprite {
	s := drawlist.Sprite{
		Name:        def.Name,
		X:           def.X,
		Y:           def.Y,
		Z:           def.Z,
		Z1:          def.Z + def.Height,
		Z2:          def.Z,
		UL:          0,
		UR:          1,
		VT:          0,
		VB:          1,
		Texture:     def.Texture,
		ModelFrame:  def.ModelFrame,
		Particle:    def.Particle,
		HasActor:    def.Actor,
		VertexIndex: -1,
	}
	for _, flag := range def.Flags {
		s.RenderFlags |= spriteFlags[flag]
	}
	anchor := mgl32.Vec2{def.X, def.Y}
	dir := sc.ViewDir()
	if def.Seg != nil {
		s.X1, s.Y1, s.X2, s.Y2 = def.Seg[0], def.Seg[1], def.Seg[2], def.Seg[3]
	} else {
		width := def.Width
		if width == 0 {
			width = DEFAULT_SPRITE_WIDTH
		}
		// facing the viewer, left edge first as seen by the viewer
		side := mgl32.Vec2{-dir[1], dir[0]}.Mul(width / 2)
		p1, p2 := anchor.Add(side), anchor.Sub(side)
		s.X1, s.Y1, s.X2, s.Y2 = p1[0], p1[1], p2[0], p2[1]
	}
	if def.Depth != nil {
		s.Depth = *def.Depth
	} else {
		s.Depth = anchor.Sub(sc.ViewPos().Vec2()).Dot(dir)
	}
	return s
}
