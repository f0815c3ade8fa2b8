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
	"runtime"

	"github.com/pkg/errors"
	"github.com/vigilantdoomer/drawsort/drawlist"
	"github.com/vigilantdoomer/drawsort/internal/mylog"
	"github.com/vigilantdoomer/drawsort/jobqueue"
	"github.com/vigilantdoomer/drawsort/scene"
	"golang.org/x/sync/errgroup"
)

// BuildLists turns the scene's lists into draw lists sharing dctx. One
// goroutine walks the scene and issues a job per item, another materializes
// primitives from them, the way the renderer's setup thread feeds the draw
// list builder
func BuildLists(ctx context.Context, sc *scene.Scene, dctx *drawlist.Context,
	capacity uint32, policy jobqueue.Policy) ([]*drawlist.DrawList, error) {
	lists := make([]*drawlist.DrawList, len(sc.Lists))
	for i := range lists {
		lists[i] = drawlist.NewDrawList(dctx)
	}
	q := jobqueue.New[jobqueue.RenderJob](capacity, policy)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return produceRenderJobs(gctx, sc, q, policy)
	})
	g.Go(func() error {
		return consumeRenderJobs(gctx, sc, q, lists)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	mylog.Log.Verbose(1, "Built %d draw lists\n", len(lists))
	return lists, nil
}

func renderJobType(it *scene.ItemDef) int {
	switch it.Kind() {
	case drawlist.DRAWTYPE_WALL:
		return jobqueue.WallJob
	case drawlist.DRAWTYPE_FLAT:
		return jobqueue.FlatJob
	}
	if it.Sprite.Particle {
		return jobqueue.ParticleJob
	}
	return jobqueue.SpriteJob
}

func produceRenderJobs(ctx context.Context, sc *scene.Scene,
	q *jobqueue.Queue[jobqueue.RenderJob], policy jobqueue.Policy) error {
	for l := range sc.Lists {
		for i := range sc.Lists[l].Items {
			job := jobqueue.RenderJob{
				Type:  renderJobType(&sc.Lists[l].Items[i]),
				List:  l,
				Index: i,
			}
			if err := addRenderJob(ctx, q, policy, job); err != nil {
				return errors.Wrapf(err, "list %q item %d", sc.Lists[l].Name, i)
			}
		}
	}
	return addRenderJob(ctx, q, policy, jobqueue.RenderJob{Type: jobqueue.TerminateJob})
}

// addRenderJob waits for a free slot itself under PolicyBlock, so that the
// producer can notice the consumer is gone
func addRenderJob(ctx context.Context, q *jobqueue.Queue[jobqueue.RenderJob],
	policy jobqueue.Policy, job jobqueue.RenderJob) error {
	if policy == jobqueue.PolicyBlock {
		for q.Len() == q.Cap() {
			if err := ctx.Err(); err != nil {
				return err
			}
			runtime.Gosched()
		}
	}
	if !q.AddJob(job) {
		return errors.Errorf("job queue full (capacity %d), %d job(s) dropped",
			q.Cap(), q.Dropped())
	}
	return nil
}

func consumeRenderJobs(ctx context.Context, sc *scene.Scene,
	q *jobqueue.Queue[jobqueue.RenderJob], lists []*drawlist.DrawList) error {
	for {
		job, err := q.WaitJob(ctx)
		if err != nil {
			return err
		}
		if job.Type == jobqueue.TerminateJob {
			return nil
		}
		it := &sc.Lists[job.List].Items[job.Index]
		dl := lists[job.List]
		switch job.Type {
		case jobqueue.WallJob:
			{
				dl.AddWall(sc.Wall(it.Wall))
			}
		case jobqueue.FlatJob:
			{
				dl.AddFlat(sc.Flat(it.Flat))
			}
		case jobqueue.SpriteJob, jobqueue.ParticleJob:
			{
				dl.AddSprite(sc.Sprite(it.Sprite))
			}
		default:
			{
				return errors.Errorf("unsupported render job type %d", job.Type)
			}
		}
	}
}
