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
package chanlist

import (
	"github.com/pkg/errors"
)

// Backend is the sound system that actually plays the channels
type Backend interface {
	StopChannel(c *Channel)
	ChannelPitch(c *Channel, pitch float32)
	GetPosition(c *Channel) uint32
	GetSampleLength(c *Channel) uint32
	// RestartSound must clear ChanEvicted on success
	RestartSound(c *Channel)
	// ChannelStopped is called when channel is stopped on purpose, rather
	// than evicted
	ChannelStopped(c *Channel)
}

// List is not safe for concurrent use
type List struct {
	channels *Channel
	free     *Channel
	backend  Backend
}

func NewList(backend Backend) *List {
	return &List{backend: backend}
}

func (l *List) FirstChannel() *Channel {
	return l.channels
}

// Len is the number of channels in use
func (l *List) Len() int {
	cnt := 0
	for c := l.channels; c != nil; c = c.next {
		cnt++
	}
	return cnt
}

func (l *List) FreeLen() int {
	cnt := 0
	for c := l.free; c != nil; c = c.next {
		cnt++
	}
	return cnt
}

// GetChannel takes a blank channel, reusing a free one if there is any, and
// puts it at the head of the list of channels in use
func (l *List) GetChannel(sysChan interface{}) *Channel {
	var c *Channel
	if l.free != nil {
		c = l.free
		l.UnlinkChannel(c)
		*c = Channel{}
	} else {
		c = new(Channel)
	}
	linkChannel(c, &l.channels)
	c.SysChannel = sysChan
	return c
}

func (l *List) ReturnChannel(c *Channel) {
	l.UnlinkChannel(c)
	linkChannel(c, &l.free)
}

func (l *List) UnlinkChannel(c *Channel) {
	*(c.prev) = c.next
	if c.next != nil {
		c.next.prev = c.prev
	}
	c.next = nil
	c.prev = nil
}

func linkChannel(c *Channel, head **Channel) {
	c.next = *head
	if c.next != nil {
		c.next.prev = &c.next
	}
	*head = c
	c.prev = head
}

func (l *List) ReturnAllChannels() {
	for l.channels != nil {
		l.ReturnChannel(l.channels)
	}
}

func (l *List) StopAllChannels() {
	c := l.channels
	for c != nil {
		next := c.next
		l.StopChannel(c)
		c = next
	}
}

// FreeChannelList drops the pool of free channels. Should only be called
// when all sounds have been stopped
func (l *List) FreeChannelList() error {
	if l.channels != nil {
		return errors.Errorf("%d channels are still in use", l.Len())
	}
	l.free = nil
	return nil
}

func (l *List) SetPitch(c *Channel, pitch float32) {
	l.backend.ChannelPitch(c, max(0.0001, pitch))
	c.Pitch = int16(max(1, int(float32(NormPitch)*pitch)))
}

// ChannelEnded is called by backend when a channel stops playing, for
// whatever reason. Channel is either forgotten or marked evicted, so that
// it can be restarted later
func (l *List) ChannelEnded(c *Channel) {
	if c == nil {
		return
	}
	var evicted bool
	// If the sound was stopped with StopChannel, then we know it wasn't
	// evicted. Otherwise, if it's looping, it must have been evicted. If
	// it's not looping, then it was evicted if it didn't reach the end of
	// its playback
	if c.Flags&ChanForgettable != 0 {
		evicted = false
	} else if c.Flags&(ChanLoop|ChanEvicted) != 0 {
		evicted = true
	} else {
		pos := l.backend.GetPosition(c)
		length := l.backend.GetSampleLength(c)
		if pos == 0 {
			evicted = c.Flags&ChanJustStarted != 0
		} else {
			evicted = pos < length
		}
	}
	if !evicted {
		l.ReturnChannel(c)
	} else {
		c.Flags |= ChanEvicted
		c.SysChannel = nil
	}
}

func (l *List) ChannelVirtualChanged(c *Channel, isVirtual bool) {
	if isVirtual {
		c.Flags |= ChanVirtual
	} else {
		c.Flags &^= ChanVirtual
	}
}

func (l *List) StopChannel(c *Channel) {
	if c == nil {
		return
	}
	if c.SysChannel != nil {
		// EvictAllChannels sets ChanEvicted to keep the channel around
		if c.Flags&ChanEvicted == 0 {
			c.Flags |= ChanForgettable
			l.backend.ChannelStopped(c)
		}
		l.backend.StopChannel(c)
	} else {
		l.ReturnChannel(c)
	}
}

// EvictAllChannels stops all channels but keeps them, remembering where the
// playback was
func (l *List) EvictAllChannels() {
	var next *Channel
	for c := l.channels; c != nil; c = next {
		next = c.next
		if c.Flags&ChanEvicted != 0 {
			continue
		}
		c.Flags |= ChanEvicted
		if c.SysChannel != nil {
			if c.Flags&ChanAbsTime == 0 {
				c.StartTime = uint64(l.backend.GetPosition(c))
				c.Flags |= ChanAbsTime
			}
			l.StopChannel(c)
		}
	}
}

func (l *List) restoreEvictedChannel(c *Channel) {
	if c.Flags&ChanEvicted != 0 {
		l.backend.RestartSound(c)
		if c.Flags&ChanLoop == 0 {
			if c.Flags&ChanEvicted != 0 {
				// Still evicted and not looping? Forget about it
				l.ReturnChannel(c)
			} else if c.Flags&ChanJustStarted == 0 {
				// Should this sound become evicted again, it's okay to
				// forget about it
				c.Flags |= ChanForgettable
			}
		}
	} else if c.SysChannel == nil && c.Flags&(ChanForgettable|ChanLoop) == ChanForgettable {
		l.ReturnChannel(c)
	}
}

// RestoreEvictedChannels restarts channels in the same order they were
// originally played, that is from the oldest one
func (l *List) RestoreEvictedChannels() {
	var all []*Channel
	for c := l.channels; c != nil; c = c.next {
		all = append(all, c)
	}
	for i := len(all) - 1; i >= 0; i-- {
		l.restoreEvictedChannel(all[i])
	}
}
