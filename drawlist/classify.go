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
	"github.com/go-gl/mathgl/mgl32"
)

// Classification of one chain member against the subtree head. Left is
// further away from the viewer, right is closer. Splits append the new half
// to the primitive arrays and allocate a node for it

// newSplitNode allocates node for the draw item that was appended last
func (dl *DrawList) newSplitNode() NodeID {
	sort2 := dl.ctx.SortNodes.GetNew()
	dl.ctx.SortNodes.Node(sort2).ItemIndex = len(dl.drawItems) - 1
	return sort2
}

// rebuildVertices asks render state (if it is capable of it) to recreate
// vertices for the halves of a split wall
func rebuildVertices(state RenderState, walls ...*Wall) {
	vb, ok := state.(VertexBuilder)
	if !ok {
		return
	}
	for _, w := range walls {
		vb.MakeWallVertices(w)
	}
}

func rebuildSpriteVertices(state RenderState, sprites ...*Sprite) {
	vb, ok := state.(SpriteVertexBuilder)
	if !ok {
		return
	}
	for _, s := range sprites {
		vb.MakeSpriteVertices(s)
	}
}

func (dl *DrawList) sortPlaneIntoPlane(head, sort NodeID) {
	arena := &dl.ctx.SortNodes
	fh := dl.FlatOf(arena.Node(head).ItemIndex)
	fs := dl.FlatOf(arena.Node(sort).ItemIndex)

	if fh.Z == fs.Z {
		arena.AddToEqual(head, sort)
	} else if (fh.Z < fs.Z && fh.Ceiling) || (fh.Z > fs.Z && !fh.Ceiling) {
		arena.AddToLeft(head, sort)
	} else {
		arena.AddToRight(head, sort)
	}
}

func (dl *DrawList) sortWallIntoPlane(state RenderState, head, sort NodeID) {
	arena := &dl.ctx.SortNodes
	fh := dl.FlatOf(arena.Node(head).ItemIndex)
	ws := dl.WallOf(arena.Node(sort).ItemIndex)

	// viewer is below the plane: stuff above it is further away
	ceiling := fh.Z > dl.sortZ

	if (ws.ZTop[0] > fh.Z || ws.ZTop[1] > fh.Z) && (ws.ZBottom[0] < fh.Z || ws.ZBottom[1] < fh.Z) {
		w := dl.NewWall()
		SplitWallAtHeight(ws, w, fh.Z, ceiling)
		rebuildVertices(state, ws, w)
		sort2 := dl.newSplitNode()
		arena.AddToLeft(head, sort)
		arena.AddToRight(head, sort2)
	} else if (ws.ZBottom[0] < fh.Z && !ceiling) || (ws.ZTop[0] > fh.Z && ceiling) {
		arena.AddToLeft(head, sort)
	} else {
		arena.AddToRight(head, sort)
	}
}

func (dl *DrawList) sortSpriteIntoPlane(state RenderState, head, sort NodeID) {
	arena := &dl.ctx.SortNodes
	fh := dl.FlatOf(arena.Node(head).ItemIndex)
	ss := dl.SpriteOf(arena.Node(sort).ItemIndex)

	ceiling := fh.Z > dl.sortZ

	hiz, loz := ss.Z1, ss.Z2
	if loz > hiz {
		hiz, loz = loz, hiz
	}

	if (hiz > fh.Z && loz < fh.Z) || ss.ModelFrame {
		s := dl.NewSprite()
		SplitSpriteAtHeight(ss, s, fh.Z, ceiling)
		rebuildSpriteVertices(state, ss, s)
		sort2 := dl.newSplitNode()
		arena.AddToLeft(head, sort)
		arena.AddToRight(head, sort2)
	} else if (ss.Z2 < fh.Z && !ceiling) || (ss.Z1 > fh.Z && ceiling) {
		arena.AddToLeft(head, sort)
	} else {
		arena.AddToRight(head, sort)
	}
}

func (dl *DrawList) sortWallIntoWall(state RenderState, head, sort NodeID) {
	arena := &dl.ctx.SortNodes
	wh := dl.WallOf(arena.Node(head).ItemIndex)
	ws := dl.WallOf(arena.Node(sort).ItemIndex)
	v1 := wh.PointOnSide(ws.Seg.X1, ws.Seg.Y1)
	v2 := wh.PointOnSide(ws.Seg.X2, ws.Seg.Y2)

	switch classifySegment(v1, v2) {
	case SIDE_COINCIDENT:
		{
			// fog boundary is drawn after whatever it coincides with
			if ws.Type == RENDERWALL_FOGBOUNDARY && wh.Type != RENDERWALL_FOGBOUNDARY {
				arena.AddToRight(head, sort)
			} else if ws.Type != RENDERWALL_FOGBOUNDARY && wh.Type == RENDERWALL_FOGBOUNDARY {
				arena.AddToLeft(head, sort)
			} else {
				arena.AddToEqual(head, sort)
			}
		}
	case SIDE_LEFT:
		arena.AddToLeft(head, sort)
	case SIDE_RIGHT:
		arena.AddToRight(head, sort)
	default:
		{
			r := IntersectionParam(ws.Start(), ws.End(), wh.Start(), wh.End())
			w := dl.NewWall()
			SplitWallAt(ws, w, r)
			rebuildVertices(state, ws, w)
			sort2 := dl.newSplitNode()
			if v1 > 0 {
				arena.AddToLeft(head, sort2)
				arena.AddToRight(head, sort)
			} else {
				arena.AddToLeft(head, sort)
				arena.AddToRight(head, sort2)
			}
		}
	}
}

// spriteIsBillboard tells whether sprite's quad is not aligned with its
// x1,y1-x2,y2 line at draw time, in which case it can't be split by a wall
func spriteIsBillboard(ss *Sprite, cfg BillboardConfig) bool {
	actorFlag := func(flag uint32) bool {
		return ss.HasActor && ss.RenderFlags&flag != 0
	}
	xyBillboard := (ss.Particle && cfg.Particles) ||
		(!actorFlag(RF_FORCEYBILLBOARD) &&
			(cfg.Mode == BILLBOARD_XY || actorFlag(RF_FORCEXYBILLBOARD)))
	var facingCamera bool
	if cfg.ForceCamBBPref {
		facingCamera = cfg.FacesCamera
	} else {
		facingCamera = (cfg.FacesCamera && ss.HasActor && !actorFlag(RF2_BILLBOARDNOFACECAMERA)) ||
			actorFlag(RF2_BILLBOARDFACECAMERA)
	}
	rotated := actorFlag(RF_ROLLSPRITE | RF_WALLSPRITE | RF_FLATSPRITE)
	return xyBillboard || facingCamera || rotated
}

func (dl *DrawList) sortSpriteIntoWall(state RenderState, cfg BillboardConfig, head, sort NodeID) {
	arena := &dl.ctx.SortNodes
	wh := dl.WallOf(arena.Node(head).ItemIndex)
	ss := dl.SpriteOf(arena.Node(sort).ItemIndex)
	v1 := wh.PointOnSide(ss.X1, ss.Y1)
	v2 := wh.PointOnSide(ss.X2, ss.Y2)

	switch classifySegment(v1, v2) {
	case SIDE_COINCIDENT:
		{
			if wh.Type == RENDERWALL_FOGBOUNDARY {
				arena.AddToLeft(head, sort)
			} else {
				arena.AddToEqual(head, sort)
			}
		}
	case SIDE_LEFT:
		arena.AddToLeft(head, sort)
	case SIDE_RIGHT:
		arena.AddToRight(head, sort)
	default:
		{
			if spriteIsBillboard(ss, cfg) {
				if wh.PointOnSide(ss.X, ss.Y) < 0 {
					arena.AddToLeft(head, sort)
				} else {
					arena.AddToRight(head, sort)
				}
				return
			}
			r := IntersectionParam(mgl32.Vec2{ss.X1, ss.Y1}, mgl32.Vec2{ss.X2, ss.Y2},
				wh.Start(), wh.End())
			s := dl.NewSprite()
			SplitSpriteAt(ss, s, r)
			rebuildSpriteVertices(state, ss, s)
			sort2 := dl.newSplitNode()
			if v1 > 0 {
				arena.AddToLeft(head, sort2)
				arena.AddToRight(head, sort)
			} else {
				arena.AddToLeft(head, sort)
				arena.AddToRight(head, sort2)
			}
		}
	}
}
