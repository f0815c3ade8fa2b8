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
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Tolerance of side tests. Walls sharing a vertex produce values this close
// to zero rather than exact zero
const MIN_EQ = float32(0.0005)

const ( // results of classifySegment
	SIDE_COINCIDENT = iota
	SIDE_LEFT
	SIDE_RIGHT
	SIDE_STRADDLE
)

// IntersectionParam returns r such that a + r*(b-a) lies on the line through
// c and d. Segments must not be parallel: callers establish that (a, b)
// straddles line (c, d) before asking
func IntersectionParam(a, b, c, d mgl32.Vec2) float64 {
	ax, ay := float64(a[0]), float64(a[1])
	bx, by := float64(b[0]), float64(b[1])
	cx, cy := float64(c[0]), float64(c[1])
	dx, dy := float64(d[0]), float64(d[1])
	return ((ay-cy)*(dx-cx) - (ax-cx)*(dy-cy)) / ((bx-ax)*(dy-cy) - (by-ay)*(dx-cx))
}

// classifySegment tells where the values of PointOnSide for the two ends of a
// segment place it relative to the partition
func classifySegment(v1, v2 float32) int {
	if math32.Abs(v1) < MIN_EQ && math32.Abs(v2) < MIN_EQ {
		return SIDE_COINCIDENT
	}
	if v1 < MIN_EQ && v2 < MIN_EQ {
		return SIDE_LEFT
	}
	if v1 > -MIN_EQ && v2 > -MIN_EQ {
		return SIDE_RIGHT
	}
	return SIDE_STRADDLE
}

func lerp(a, b float32, r float64) float32 {
	return float32(float64(a) + r*float64(b-a))
}

// SplitWallAt cuts ws at parameter r along its seg. ws keeps the part from its
// start to the cut, w (freshly allocated by the caller) receives the rest
func SplitWallAt(ws, w *Wall, r float64) {
	ix := lerp(ws.Seg.X1, ws.Seg.X2, r)
	iy := lerp(ws.Seg.Y1, ws.Seg.Y2, r)
	ifrac := lerp(ws.Seg.FracLeft, ws.Seg.FracRight, r)
	iut := lerp(ws.Tcs[UPLFT].U, ws.Tcs[UPRGT].U, r)
	iub := lerp(ws.Tcs[LOLFT].U, ws.Tcs[LORGT].U, r)
	ivt := lerp(ws.Tcs[UPLFT].V, ws.Tcs[UPRGT].V, r)
	ivb := lerp(ws.Tcs[LOLFT].V, ws.Tcs[LORGT].V, r)
	ilmut := lerp(ws.LightUV[UPLFT].U, ws.LightUV[UPRGT].U, r)
	ilmub := lerp(ws.LightUV[LOLFT].U, ws.LightUV[LORGT].U, r)
	izt := lerp(ws.ZTop[0], ws.ZTop[1], r)
	izb := lerp(ws.ZBottom[0], ws.ZBottom[1], r)

	ws.InvalidateVertices()
	*w = *ws

	w.Seg.X1, ws.Seg.X2 = ix, ix
	w.Seg.Y1, ws.Seg.Y2 = iy, iy
	w.Seg.FracLeft, ws.Seg.FracRight = ifrac, ifrac
	w.ZTop[0], ws.ZTop[1] = izt, izt
	w.ZBottom[0], ws.ZBottom[1] = izb, izb
	w.Tcs[UPLFT].U, ws.Tcs[UPRGT].U = iut, iut
	w.Tcs[LOLFT].U, ws.Tcs[LORGT].U = iub, iub
	w.Tcs[UPLFT].V, ws.Tcs[UPRGT].V = ivt, ivt
	w.Tcs[LOLFT].V, ws.Tcs[LORGT].V = ivb, ivb
	w.LightUV[UPLFT].U, ws.LightUV[UPRGT].U = ilmut, ilmut
	w.LightUV[LOLFT].U, ws.LightUV[LORGT].U = ilmub, ilmub
}

// SplitSpriteAt cuts ss at parameter r along its horizontal extent, same
// convention as SplitWallAt
func SplitSpriteAt(ss, s *Sprite, r float64) {
	ix := lerp(ss.X1, ss.X2, r)
	iy := lerp(ss.Y1, ss.Y2, r)
	iu := lerp(ss.UL, ss.UR, r)

	*s = *ss
	s.X1, ss.X2 = ix, ix
	s.Y1, ss.Y2 = iy, iy
	s.UL, ss.UR = iu, iu

	s.InvalidateVertices()
	ss.InvalidateVertices()
}

// clampSpan restricts span [bottom, top] (texture v given at both ends) to
// [lo, hi], recomputing v at the new ends
func clampSpan(top, bottom, vt, vb, lo, hi float32) (float32, float32, float32, float32) {
	vAt := func(z float32) float32 {
		if top == bottom {
			return vt
		}
		return vt + (top-z)/(top-bottom)*(vb-vt)
	}
	nt := math32.Min(math32.Max(top, lo), hi)
	nb := math32.Min(math32.Max(bottom, lo), hi)
	return nt, nb, vAt(nt), vAt(nb)
}

// SplitWallAtHeight cuts ws horizontally at height z. If keepUpper is set, ws
// keeps the part above z and w receives the part below, otherwise the other
// way around. Both halves together cover exactly the original span
func SplitWallAtHeight(ws, w *Wall, z float32, keepUpper bool) {
	ws.InvalidateVertices()
	*w = *ws
	upper, lower := ws, w
	if !keepUpper {
		upper, lower = w, ws
	}
	corners := [2][2]int{{UPLFT, LOLFT}, {UPRGT, LORGT}}
	for i, c := range corners {
		top, bottom := ws.ZTop[i], ws.ZBottom[i]
		vt, vb := ws.Tcs[c[0]].V, ws.Tcs[c[1]].V

		ut, ub, uvt, uvb := clampSpan(top, bottom, vt, vb, z, math32.MaxFloat32)
		lt, lb, lvt, lvb := clampSpan(top, bottom, vt, vb, -math32.MaxFloat32, z)

		upper.ZTop[i], upper.ZBottom[i] = ut, ub
		upper.Tcs[c[0]].V, upper.Tcs[c[1]].V = uvt, uvb
		lower.ZTop[i], lower.ZBottom[i] = lt, lb
		lower.Tcs[c[0]].V, lower.Tcs[c[1]].V = lvt, lvb
	}
}

// SplitSpriteAtHeight is SplitWallAtHeight for sprites. Model frames can't be
// cut this way: they are duplicated as is and rely on clip planes set up by
// the sorted traversal
func SplitSpriteAtHeight(ss, s *Sprite, z float32, keepUpper bool) {
	*s = *ss
	s.InvalidateVertices()
	ss.InvalidateVertices()
	if ss.ModelFrame {
		return
	}
	upper, lower := ss, s
	if !keepUpper {
		upper, lower = s, ss
	}
	z1, z2, vt, vb := ss.Z1, ss.Z2, ss.VT, ss.VB
	upper.Z1, upper.Z2, upper.VT, upper.VB = clampSpan(z1, z2, vt, vb, z, math32.MaxFloat32)
	lower.Z1, lower.Z2, lower.VT, lower.VB = clampSpan(z1, z2, vt, vb, -math32.MaxFloat32, z)
}
