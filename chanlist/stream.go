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
	"github.com/gopxl/beep"
	"github.com/vigilantdoomer/drawsort/internal/mylog"
)

const resampleQuality = 4

// voice is what a channel of StreamBackend plays: sound data, behind a
// resampler for pitch and a control that lets the voice be taken out of
// the mixer
type voice struct {
	src       beep.StreamSeeker
	resampler *beep.Resampler
	ctrl      *beep.Ctrl
}

// StreamBackend plays channels as beep streamers mixed together. It opens no
// output device: whoever owns it pulls mixed samples with Advance (or streams
// Mixer() somewhere). Like List, it is not safe for concurrent use
type StreamBackend struct {
	list    *List
	mixer   *beep.Mixer
	format  beep.Format
	stopped int
}

func NewStreamBackend(format beep.Format) *StreamBackend {
	sb := &StreamBackend{
		mixer:  &beep.Mixer{},
		format: format,
	}
	sb.list = NewList(sb)
	return sb
}

func (sb *StreamBackend) List() *List {
	return sb.list
}

func (sb *StreamBackend) Mixer() beep.Streamer {
	return sb.mixer
}

func (sb *StreamBackend) Format() beep.Format {
	return sb.format
}

// Stopped is how many channels were stopped on purpose
func (sb *StreamBackend) Stopped() int {
	return sb.stopped
}

// Play starts a sound on a new channel
func (sb *StreamBackend) Play(sound beep.StreamSeeker, flags int) *Channel {
	v := sb.newVoice(sound, flags, 0)
	c := sb.list.GetChannel(v)
	c.Flags = flags | ChanJustStarted
	c.Data = sound
	c.Pitch = NormPitch
	c.Volume = 1
	return c
}

func (sb *StreamBackend) newVoice(sound beep.StreamSeeker, flags int, start int) *voice {
	if err := sound.Seek(start); err != nil {
		mylog.Log.Error("Couldn't seek sound to sample %d: %s\n", start, err.Error())
	}
	var s beep.Streamer = sound
	if flags&ChanLoop != 0 {
		s = beep.Loop(-1, sound)
	}
	v := &voice{src: sound}
	v.resampler = beep.ResampleRatio(resampleQuality, 1, s)
	v.ctrl = &beep.Ctrl{Streamer: v.resampler, Paused: false}
	sb.mixer.Add(v.ctrl)
	return v
}

func voiceOf(c *Channel) *voice {
	v, _ := c.SysChannel.(*voice)
	return v
}

// Advance mixes n samples, then ends the channels whose sound ran out
func (sb *StreamBackend) Advance(n int) {
	if n <= 0 {
		return
	}
	buf := make([][2]float64, n)
	sb.mixer.Stream(buf)
	var next *Channel
	for c := sb.list.FirstChannel(); c != nil; c = next {
		next = c.Next()
		v := voiceOf(c)
		if v == nil {
			continue
		}
		c.Flags &^= ChanJustStarted
		if c.Flags&ChanLoop == 0 && v.src.Position() >= v.src.Len() {
			v.ctrl.Streamer = nil
			sb.list.ChannelEnded(c)
		}
	}
}

func (sb *StreamBackend) StopChannel(c *Channel) {
	if v := voiceOf(c); v != nil {
		// mixer drops streamers that are done
		v.ctrl.Streamer = nil
	}
	sb.list.ChannelEnded(c)
}

func (sb *StreamBackend) ChannelPitch(c *Channel, pitch float32) {
	if v := voiceOf(c); v != nil {
		v.resampler.SetRatio(float64(pitch))
	}
}

func (sb *StreamBackend) GetPosition(c *Channel) uint32 {
	if v := voiceOf(c); v != nil {
		return uint32(v.src.Position())
	}
	return 0
}

func (sb *StreamBackend) GetSampleLength(c *Channel) uint32 {
	if sound, ok := c.Data.(beep.StreamSeeker); ok {
		return uint32(sound.Len())
	}
	return 0
}

// RestartSound resumes an evicted channel where it left off. Sound that has
// already played to the end stays evicted
func (sb *StreamBackend) RestartSound(c *Channel) {
	sound, ok := c.Data.(beep.StreamSeeker)
	if !ok || sound.Len() == 0 {
		return
	}
	start := 0
	if c.Flags&ChanAbsTime != 0 {
		start = int(c.StartTime)
	}
	if start >= sound.Len() {
		if c.Flags&ChanLoop == 0 {
			return
		}
		start %= sound.Len()
	}
	v := sb.newVoice(sound, c.Flags, start)
	if c.Pitch != NormPitch && c.Pitch > 0 {
		v.resampler.SetRatio(float64(c.Pitch) / NormPitch)
	}
	c.SysChannel = v
	c.Flags &^= ChanEvicted | ChanAbsTime
	c.Flags |= ChanJustStarted
}

func (sb *StreamBackend) ChannelStopped(c *Channel) {
	sb.stopped++
	mylog.Log.Verbose(3, "Channel stopped at sample %d\n", sb.GetPosition(c))
}
