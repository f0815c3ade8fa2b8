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
package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vigilantdoomer/drawsort/drawlist"
)

func renderRoom(t *testing.T, cfg *ProgramConfig) *FrameReport {
	fr, err := RenderFrame(context.Background(), loadRoom(t), cfg)
	require.NoError(t, err)
	return fr
}

func TestRenderFrameOpaque(t *testing.T) {
	fr := renderRoom(t, DefaultConfig())
	require.GreaterOrEqual(t, len(fr.Calls), 3)
	var names []string
	for _, dc := range fr.Calls[:3] {
		assert.Equal(t, "opaque walls", dc.List)
		assert.Equal(t, drawlist.DRAWTYPE_WALL, dc.Kind)
		assert.False(t, dc.Translucent)
		assert.Equal(t, "-..-", dc.ClipString())
		names = append(names, dc.Name)
	}
	// by texture, then by light flags
	assert.Equal(t, []string{"right", "end", "left"}, names)
	// wall-only lists are clocked once per pass
	assert.Equal(t, 1+countKind(fr.Calls[3:], drawlist.DRAWTYPE_WALL), fr.Clocks.Wall.Calls)
}

func countKind(calls []DrawCall, kind int) int {
	n := 0
	for _, dc := range calls {
		if dc.Kind == kind {
			n++
		}
	}
	return n
}

func TestRenderFrameTranslucent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOrder = true
	fr := renderRoom(t, cfg)
	require.Len(t, fr.Lists, 2)
	lr := fr.Lists[1]
	assert.True(t, lr.Translucent)
	assert.Equal(t, 7, lr.Items)
	assert.Empty(t, lr.Violations)
	assert.Zero(t, fr.Violations())

	calls := fr.Calls[3:]
	assert.Len(t, calls, len(lr.Order))
	// pane crosses the water and gets cut, so do lamp and spark
	assert.Greater(t, len(lr.Order), lr.Items)
	assert.GreaterOrEqual(t, fr.VertexBuilds, 2)
	assert.Greater(t, fr.SortNodes, 0)

	seen := make(map[string]int)
	water := -1
	for i, dc := range calls {
		assert.Equal(t, "translucent", dc.List)
		assert.True(t, dc.Translucent)
		seen[dc.Name]++
		if dc.Name == "water" {
			water = i
		}
	}
	for _, name := range []string{"window", "pane", "fog", "water", "lamp", "spark", "banner"} {
		assert.NotZero(t, seen[name], name)
	}
	assert.GreaterOrEqual(t, seen["pane"], 2)

	// water is below the viewer: what is drawn before it lies under it
	require.GreaterOrEqual(t, water, 0)
	assert.Equal(t, "-..-", calls[water].ClipString())
	for i, dc := range calls {
		if i < water {
			assert.Equal(t, "-..8", dc.ClipString(), dc.Name)
		} else if i > water {
			assert.Equal(t, "8..-", dc.ClipString(), dc.Name)
		}
	}

	// opaque walls count as one call
	total := fr.Clocks.Wall.Calls + fr.Clocks.Flat.Calls + fr.Clocks.Sprite.Calls
	assert.Equal(t, 1+len(calls), total)
}

func TestRenderFrameSounds(t *testing.T) {
	fr := renderRoom(t, DefaultConfig())
	require.Len(t, fr.Sounds, 2)
	drip, hum := fr.Sounds[0], fr.Sounds[1]
	assert.Equal(t, "drip", drip.Name)
	// a tic before and a tic after the evict/restore cycle outlast the drip
	assert.False(t, drip.Playing)
	assert.Equal(t, "hum", hum.Name)
	assert.True(t, hum.Playing)
	assert.Equal(t, uint32(4410), hum.Length)
	assert.Less(t, hum.Position, hum.Length)
}

func TestReverseSpritesOverride(t *testing.T) {
	sc := loadRoom(t)
	cfg := DefaultConfig()
	assert.False(t, cfg.reverseSprites(sc))
	sc.CompatSpriteSort = true
	assert.True(t, cfg.reverseSprites(sc))
	cfg.SpriteSort = SPRITESORT_NORMAL
	assert.False(t, cfg.reverseSprites(sc))
	sc.CompatSpriteSort = false
	cfg.SpriteSort = SPRITESORT_REVERSE
	assert.True(t, cfg.reverseSprites(sc))
}

func TestWriteReport(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOrder = true
	fr := renderRoom(t, cfg)
	var buf bytes.Buffer
	WriteReport(&buf, fr)
	out := strings.ReplaceAll(buf.String(), "\r\n", "\n")
	assert.Contains(t, out, "opaque walls\twall\tright\t-..-\t\n")
	assert.Contains(t, out, "translucent\tflat\twater\t-..-\tT\n")
	assert.Contains(t, out, "# List 'translucent': 7 items, draw order ")
	assert.Contains(t, out, "# Sound 'hum': playing at ")
	assert.Contains(t, out, "# Sound 'drip': ended at 0/2205")
	assert.NotContains(t, out, "ORDER VIOLATION")
	assert.NotContains(t, out, "'opaque walls'")
}

func TestRecorderBuffers(t *testing.T) {
	rec := NewRecorder()
	walls := make([]*drawlist.Wall, BUFFER_QUEUE_CAPACITY+44)
	for i := range walls {
		walls[i] = &drawlist.Wall{VertIndex: -1}
		rec.MakeWallVertices(walls[i])
	}
	// queue overflowed once, so the first batch already got its vertices
	assert.Equal(t, int(BUFFER_QUEUE_CAPACITY), rec.VertexBuilds)
	rec.FlushBuffers()
	assert.Equal(t, len(walls), rec.VertexBuilds)
	for i, w := range walls {
		assert.Equal(t, 4*i, w.VertIndex)
		assert.Equal(t, 4, w.VertCount)
	}
}

func TestRecorderSpriteBuffers(t *testing.T) {
	rec := NewRecorder()
	w := &drawlist.Wall{VertIndex: -1}
	s1 := &drawlist.Sprite{VertexIndex: -1}
	s2 := &drawlist.Sprite{VertexIndex: -1}
	rec.MakeSpriteVertices(s1)
	rec.MakeWallVertices(w)
	rec.MakeSpriteVertices(s2)
	assert.Equal(t, -1, s1.VertexIndex)
	rec.FlushBuffers()
	assert.Equal(t, 3, rec.VertexBuilds)
	assert.Equal(t, 0, s1.VertexIndex)
	assert.Equal(t, 4, w.VertIndex)
	assert.Equal(t, 8, s2.VertexIndex)
}

func TestRecorderClip(t *testing.T) {
	rec := NewRecorder()
	assert.Equal(t, [2]float32{-NO_CLIP, NO_CLIP}, rec.GetClipSplit())
	rec.SetClipSplit(-8, 32)
	rec.BeginList("l")
	rec.DrawFlat(&drawlist.Flat{Name: "f"}, rec, true)
	require.Len(t, rec.Calls, 1)
	assert.Equal(t, "-8..32", rec.Calls[0].ClipString())
	assert.Equal(t, "l", rec.Calls[0].List)
	rec.ClearClipSplit()
	assert.Equal(t, [2]float32{-NO_CLIP, NO_CLIP}, rec.GetClipSplit())
}
