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
package jobqueue

const ( // RenderJob.Type values
	TerminateJob = iota // inserted when all work is done so that the worker can return
	FlatJob
	WallJob
	SpriteJob
	ParticleJob
)

// RenderJob asks the consumer to turn item Index of scene list List into a
// primitive
type RenderJob struct {
	Type  int
	List  int
	Index int
}

const ( // BufferJob.Type values
	WallVertexJob = iota + 1
	SpriteVertexJob
)

// BufferJob is a request to (re)build GPU side data for a primitive. Obj is
// the primitive itself
type BufferJob struct {
	Type  int
	Param int
	Obj   interface{}
}
