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
	"fmt"

	"github.com/vigilantdoomer/drawsort/drawlist"
	"github.com/vigilantdoomer/drawsort/internal/mylog"
	"github.com/vigilantdoomer/drawsort/jobqueue"
)

// Clip planes at this distance or beyond mean "not clipped"
const NO_CLIP = float32(1000000)

const BUFFER_QUEUE_CAPACITY = uint32(256)

// DrawCall is one primitive as the recording renderer received it
type DrawCall struct {
	List        string
	Kind        int
	Name        string
	Clip        [2]float32 // bottom, top
	Translucent bool
}

func (dc DrawCall) ClipString() string {
	bottom, top := "-", "-"
	if dc.Clip[0] > -NO_CLIP {
		bottom = fmt.Sprintf("%g", dc.Clip[0])
	}
	if dc.Clip[1] < NO_CLIP {
		top = fmt.Sprintf("%g", dc.Clip[1])
	}
	return bottom + ".." + top
}

// Recorder stands in for the hardware renderer: it keeps the clip planes,
// hands out vertex buffer slots and remembers every draw call in order
type Recorder struct {
	clip     [2]float32
	list     string
	Calls    []DrawCall
	buffers  *jobqueue.Queue[jobqueue.BufferJob]
	nextVert int
	// Wall and sprite vertices generated again because a split changed the
	// geometry
	VertexBuilds int
}

func NewRecorder() *Recorder {
	r := &Recorder{
		buffers: jobqueue.New[jobqueue.BufferJob](BUFFER_QUEUE_CAPACITY, jobqueue.PolicyDrop),
	}
	r.ClearClipSplit()
	return r
}

// BeginList names the list subsequent draw calls are attributed to
func (r *Recorder) BeginList(name string) {
	r.list = name
}

func (r *Recorder) GetClipSplit() [2]float32 {
	return r.clip
}

func (r *Recorder) SetClipSplit(bottom, top float32) {
	r.clip = [2]float32{bottom, top}
}

func (r *Recorder) ClearClipSplit() {
	r.clip = [2]float32{-NO_CLIP, NO_CLIP}
}

// MakeWallVertices queues the wall for buffer upload. Queue is drained when it
// fills up and at the end of each list
func (r *Recorder) MakeWallVertices(w *drawlist.Wall) {
	r.queueBuffer(jobqueue.BufferJob{Type: jobqueue.WallVertexJob, Param: w.VertIndex, Obj: w})
}

func (r *Recorder) MakeSpriteVertices(s *drawlist.Sprite) {
	r.queueBuffer(jobqueue.BufferJob{Type: jobqueue.SpriteVertexJob, Param: s.VertexIndex, Obj: s})
}

func (r *Recorder) queueBuffer(job jobqueue.BufferJob) {
	if !r.buffers.AddJob(job) {
		r.FlushBuffers()
		if !r.buffers.AddJob(job) {
			mylog.Log.Panic("Buffer queue refuses jobs while empty\n")
		}
	}
}

// FlushBuffers assigns vertex slots to every primitive queued for upload
func (r *Recorder) FlushBuffers() {
	for {
		job, ok := r.buffers.GetJob()
		if !ok {
			return
		}
		switch job.Type {
		case jobqueue.WallVertexJob:
			{
				w := job.Obj.(*drawlist.Wall)
				w.VertIndex = r.nextVert
				w.VertCount = 4
				r.nextVert += 4
				r.VertexBuilds++
			}
		case jobqueue.SpriteVertexJob:
			{
				s := job.Obj.(*drawlist.Sprite)
				s.VertexIndex = r.nextVert
				r.nextVert += 4
				r.VertexBuilds++
			}
		default:
			{
				mylog.Log.Panic("Unexpected buffer job type %d\n", job.Type)
			}
		}
	}
}

func (r *Recorder) record(kind int, name string, state drawlist.RenderState, translucent bool) {
	r.Calls = append(r.Calls, DrawCall{
		List:        r.list,
		Kind:        kind,
		Name:        name,
		Clip:        state.GetClipSplit(),
		Translucent: translucent,
	})
}

func (r *Recorder) DrawWall(w *drawlist.Wall, state drawlist.RenderState, translucent bool) {
	r.record(drawlist.DRAWTYPE_WALL, w.Name, state, translucent)
}

func (r *Recorder) DrawFlat(f *drawlist.Flat, state drawlist.RenderState, translucent bool) {
	r.record(drawlist.DRAWTYPE_FLAT, f.Name, state, translucent)
}

func (r *Recorder) DrawSprite(s *drawlist.Sprite, state drawlist.RenderState, translucent bool) {
	r.record(drawlist.DRAWTYPE_SPRITE, s.Name, state, translucent)
}
