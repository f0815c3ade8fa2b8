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
	"context"
	"fmt"

	"github.com/gopxl/beep"
	"github.com/pkg/errors"
	"github.com/vigilantdoomer/drawsort/chanlist"
	"github.com/vigilantdoomer/drawsort/drawlist"
	"github.com/vigilantdoomer/drawsort/internal/mylog"
	"github.com/vigilantdoomer/drawsort/scene"
)

// Sounds are advanced by one game tic worth of samples before and after an
// evict/restore cycle
const (
	SOUND_SAMPLE_RATE  = 44100
	SOUND_TIC_SAMPLES  = SOUND_SAMPLE_RATE / 35
	SOUND_BUFFER_CHANS = 2
)

type ListReport struct {
	Name        string
	Translucent bool
	Items       int
	// Back to front item order, translucent lists only
	Order      []int
	Violations []drawlist.OrderViolation
}

type SoundReport struct {
	Name     string
	Playing  bool
	Position uint32
	Length   uint32
}

type FrameReport struct {
	Lists        []ListReport
	Calls        []DrawCall
	Clocks       drawlist.Clocks
	VertexBuilds int
	SortNodes    int
	Sounds       []SoundReport
}

// Violations counts order violations over all lists
func (fr *FrameReport) Violations() int {
	n := 0
	for i := range fr.Lists {
		n += len(fr.Lists[i].Violations)
	}
	return n
}

func (c *ProgramConfig) reverseSprites(sc *scene.Scene) bool {
	switch c.SpriteSort {
	case SPRITESORT_NORMAL:
		return false
	case SPRITESORT_REVERSE:
		return true
	}
	return sc.CompatSpriteSort
}

// RenderFrame builds, sorts and draws every list of the scene into a
// recording renderer, then runs the scene's sounds for a couple of tics
func RenderFrame(ctx context.Context, sc *scene.Scene, cfg *ProgramConfig) (*FrameReport, error) {
	dctx := drawlist.NewContext()
	lists, err := BuildLists(ctx, sc, dctx, cfg.QueueCapacity, cfg.QueuePolicy)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't build draw lists")
	}
	rec := NewRecorder()
	di := &drawlist.DrawInfo{
		ViewPos:          sc.ViewPos(),
		CompatSpriteSort: cfg.reverseSprites(sc),
		Billboard:        cfg.Billboard,
		Dispatch:         rec,
	}
	report := &FrameReport{}
	for i, dl := range lists {
		def := &sc.Lists[i]
		rec.BeginList(def.Name)
		mlog := mylog.CreateMiniLogger()
		lr := ListReport{
			Name:        def.Name,
			Translucent: def.Translucent,
			Items:       dl.Len(),
		}
		if def.Translucent {
			if cfg.CheckOrder {
				lr.Violations = dl.VerifyOrder(di, rec)
			}
			dl.DrawSorted(di, rec)
			lr.Order = dl.SortedOrder()
			dl.DumpSorted(2)
			if cfg.DumpTrees {
				mylog.Log.Dump(0, sortedPrimitives(dl))
			}
			mlog.Verbose(1, "%d items sorted into %d draws\n", lr.Items, len(lr.Order))
			for _, v := range lr.Violations {
				mlog.Printf("Order violation: %s\n", v.String())
			}
		} else {
			drawOpaque(dl, di, rec)
			mlog.Verbose(1, "%d items drawn in material order\n", lr.Items)
		}
		rec.FlushBuffers()
		if mlog.String() != "" {
			mylog.Log.Merge(mlog, fmt.Sprintf("List '%s':\n", def.Name))
		}
		report.Lists = append(report.Lists, lr)
	}
	report.Calls = rec.Calls
	report.VertexBuilds = rec.VertexBuilds
	report.Clocks = dctx.Clocks
	report.SortNodes = dctx.SortNodes.Size()
	// later lists' nodes are above earlier ones in the arena
	for i := len(lists) - 1; i >= 0; i-- {
		lists[i].Reset()
	}

	sounds, err := playSounds(sc)
	if err != nil {
		return nil, err
	}
	report.Sounds = sounds
	return report, nil
}

// drawOpaque batches by material. Lists of a single kind take the fast path
func drawOpaque(dl *drawlist.DrawList, di *drawlist.DrawInfo, rec *Recorder) {
	walls, flats := 0, 0
	for i := 0; i < dl.Len(); i++ {
		switch dl.Item(i).Kind {
		case drawlist.DRAWTYPE_WALL:
			{
				walls++
			}
		case drawlist.DRAWTYPE_FLAT:
			{
				flats++
			}
		}
	}
	switch {
	case walls == dl.Len():
		{
			dl.SortWalls()
			dl.DrawWalls(di, rec, false)
		}
	case flats == dl.Len():
		{
			dl.SortFlats()
			dl.DrawFlats(di, rec, false)
		}
	default:
		{
			dl.Draw(di, rec, false)
		}
	}
}

func sortedPrimitives(dl *drawlist.DrawList) []interface{} {
	order := dl.SortedOrder()
	prims := make([]interface{}, 0, len(order))
	for _, idx := range order {
		switch dl.Item(idx).Kind {
		case drawlist.DRAWTYPE_WALL:
			{
				prims = append(prims, dl.WallOf(idx))
			}
		case drawlist.DRAWTYPE_FLAT:
			{
				prims = append(prims, dl.FlatOf(idx))
			}
		case drawlist.DRAWTYPE_SPRITE:
			{
				prims = append(prims, dl.SpriteOf(idx))
			}
		}
	}
	return prims
}

func playSounds(sc *scene.Scene) ([]SoundReport, error) {
	if len(sc.Sounds) == 0 {
		return nil, nil
	}
	format := beep.Format{
		SampleRate:  SOUND_SAMPLE_RATE,
		NumChannels: SOUND_BUFFER_CHANS,
		Precision:   2,
	}
	sb := chanlist.NewStreamBackend(format)
	l := sb.List()
	chans := make([]*chanlist.Channel, len(sc.Sounds))
	for i, def := range sc.Sounds {
		buf := beep.NewBuffer(format)
		buf.Append(beep.Silence(def.Samples))
		flags := 0
		if def.Loop {
			flags |= chanlist.ChanLoop
		}
		if def.UI {
			flags |= chanlist.ChanUI
		}
		chans[i] = sb.Play(buf.Streamer(0, buf.Len()), flags)
		if def.Pitch > 0 {
			l.SetPitch(chans[i], def.Pitch)
		}
	}
	sb.Advance(SOUND_TIC_SAMPLES)
	l.EvictAllChannels()
	l.RestoreEvictedChannels()
	sb.Advance(SOUND_TIC_SAMPLES)

	playing := make(map[*chanlist.Channel]bool)
	for c := l.FirstChannel(); c != nil; c = c.Next() {
		playing[c] = true
	}
	reports := make([]SoundReport, len(sc.Sounds))
	for i, def := range sc.Sounds {
		c := chans[i]
		reports[i] = SoundReport{
			Name:    def.Name,
			Playing: playing[c],
			Length:  uint32(def.Samples),
		}
		if playing[c] {
			reports[i].Position = sb.GetPosition(c)
		}
	}
	l.StopAllChannels()
	if err := l.FreeChannelList(); err != nil {
		return nil, errors.Wrap(err, "sound channels")
	}
	return reports, nil
}
