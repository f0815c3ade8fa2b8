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

const testClipRange = float32(1000000)

// testState records clip planes and vertex rebuilds requested by the sorter
type testState struct {
	clip         [2]float32
	builds       int
	spriteBuilds int
}

func newTestState() *testState {
	st := &testState{}
	st.ClearClipSplit()
	return st
}

func (st *testState) GetClipSplit() [2]float32 {
	return st.clip
}

func (st *testState) SetClipSplit(bottom, top float32) {
	st.clip = [2]float32{bottom, top}
}

func (st *testState) ClearClipSplit() {
	st.clip = [2]float32{-testClipRange, testClipRange}
}

func (st *testState) MakeWallVertices(w *Wall) {
	w.VertCount = 4
	st.builds++
}

func (st *testState) MakeSpriteVertices(s *Sprite) {
	s.VertexIndex = 100 + 4*st.spriteBuilds
	st.spriteBuilds++
}

type drawCall struct {
	kind        int
	name        string
	clip        [2]float32
	translucent bool
}

type testDispatch struct {
	calls []drawCall
}

func (d *testDispatch) DrawWall(w *Wall, state RenderState, translucent bool) {
	d.calls = append(d.calls, drawCall{DRAWTYPE_WALL, w.Name, state.GetClipSplit(), translucent})
}

func (d *testDispatch) DrawFlat(f *Flat, state RenderState, translucent bool) {
	d.calls = append(d.calls, drawCall{DRAWTYPE_FLAT, f.Name, state.GetClipSplit(), translucent})
}

func (d *testDispatch) DrawSprite(s *Sprite, state RenderState, translucent bool) {
	d.calls = append(d.calls, drawCall{DRAWTYPE_SPRITE, s.Name, state.GetClipSplit(), translucent})
}

func (d *testDispatch) names() []string {
	res := make([]string, len(d.calls))
	for i, c := range d.calls {
		res[i] = c.name
	}
	return res
}

func newTestDrawInfo(viewZ float32) (*DrawInfo, *testDispatch) {
	disp := &testDispatch{}
	return &DrawInfo{
		ViewPos:   mgl32.Vec3{0, 0, viewZ},
		Billboard: DefaultBillboardConfig(),
		Dispatch:  disp,
	}, disp
}

// testWall makes a vertical wall with texture v going from 0 at top to 1 at
// bottom, u going from 0 to 1 along the seg
func testWall(name string, x1, y1, x2, y2, top, bottom float32) Wall {
	w := Wall{
		Name: name,
		Seg: GLSeg{
			X1: x1, Y1: y1, X2: x2, Y2: y2,
			FracLeft: 0, FracRight: 1,
		},
		ZTop:    [2]float32{top, top},
		ZBottom: [2]float32{bottom, bottom},
		Type:    RENDERWALL_M2S,
	}
	w.Tcs[UPLFT] = TexCoord{U: 0, V: 0}
	w.Tcs[UPRGT] = TexCoord{U: 1, V: 0}
	w.Tcs[LOLFT] = TexCoord{U: 0, V: 1}
	w.Tcs[LORGT] = TexCoord{U: 1, V: 1}
	w.LightUV = w.Tcs
	mx, my := (x1+x2)/2, (y1+y2)/2
	w.ViewDistance = mx*mx + my*my
	return w
}

func testSprite(name string, x1, y1, x2, y2, z1, z2, depth float32) Sprite {
	return Sprite{
		Name: name,
		X:    (x1 + x2) / 2, Y: (y1 + y2) / 2, Z: (z1 + z2) / 2,
		X1: x1, Y1: y1, X2: x2, Y2: y2,
		Z1: z1, Z2: z2,
		UL: 0, UR: 1, VT: 0, VB: 1,
		Depth:       depth,
		VertexIndex: 7,
	}
}
