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
// Package chanlist keeps track of sound channels that are playing, or were
// playing and may need to be restarted. Channels that stopped are kept on a
// free list and reused
package chanlist

// Channel flags
const (
	// modifier flags
	ChanListenerZ  = 8
	ChanMaybeLocal = 16
	ChanUI         = 32  // Do not record sound in savegames
	ChanNoPause    = 64  // Do not pause this sound in menus
	ChanArea       = 128 // Sound plays from all around. Only valid with sector sounds
	ChanLoop       = 256

	// internal flags
	ChanIs3D        = 1
	ChanEvicted     = 2    // Sound was evicted
	ChanForgettable = 4    // Forget channel data when sound stops
	ChanJustStarted = 512  // Sound has not been updated yet
	ChanAbsTime     = 1024 // Start time is absolute and does not depend on current time
	ChanVirtual     = 2048 // Channel is currently virtual
)

const NormPitch = 128

type RolloffInfo struct {
	RolloffType int
	MinDistance float32
	// MaxDistance, or rolloff factor for custom rolloff types
	MaxDistance float32
}

type Channel struct {
	SysChannel interface{} // channel of the backend, nil if not playing
	next       *Channel
	prev       **Channel
	StartTime  uint64 // in samples
	Rolloff    RolloffInfo
	// Backend doesn't use these directly but may need to pass them to
	// callbacks that don't receive the channel
	DistanceScale float32
	DistanceSqr   float32
	Volume        float32
	Pitch         int16
	Priority      int8
	ManualRolloff bool
	Flags         int
	// Sound data, only the backend knows what this is
	Data interface{}
}

// Next channel in the same list
func (c *Channel) Next() *Channel {
	return c.next
}
