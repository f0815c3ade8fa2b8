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
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/vigilantdoomer/drawsort/internal/mylog"
)

// Editors tend to write a file in several steps
const WATCH_DEBOUNCE = 200 * time.Millisecond

// WatchScene calls redo every time the scene file changes, until ctx is done.
// The directory is watched rather than the file, so that editors that save by
// renaming a temporary file over it are noticed
func WatchScene(ctx context.Context, path string, redo func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "couldn't create file watcher")
	}
	defer watcher.Close()
	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return errors.Wrapf(err, "couldn't watch '%s'", target)
	}
	mylog.Log.Printf("Watching %s for changes, interrupt to stop\n", target)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			{
				if timer != nil {
					timer.Stop()
				}
				return nil
			}
		case event, ok := <-watcher.Events:
			{
				if !ok {
					return nil
				}
				if filepath.Clean(event.Name) != target ||
					!event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
						!event.Has(fsnotify.Rename) {
					continue
				}
				mylog.Log.Verbose(2, "Scene file event: %s\n", event.String())
				if timer == nil {
					timer = time.NewTimer(WATCH_DEBOUNCE)
				} else {
					if !timer.Stop() {
						select {
						case <-timer.C:
						default:
						}
					}
					timer.Reset(WATCH_DEBOUNCE)
				}
				fire = timer.C
			}
		case err, ok := <-watcher.Errors:
			{
				if !ok {
					return nil
				}
				mylog.Log.Error("Error watching '%s': %s\n", target, err.Error())
			}
		case <-fire:
			{
				fire = nil
				redo()
			}
		}
	}
}
