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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatchScene(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	other := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lists: []\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	redone := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- WatchScene(ctx, path, func() {
			select {
			case redone <- struct{}{}:
			default:
			}
		})
	}()

	// watcher may not be up yet, so keep touching the file at a pace slower
	// than the debounce
	tick := time.NewTicker(WATCH_DEBOUNCE + 100*time.Millisecond)
	defer tick.Stop()
	deadline := time.After(10 * time.Second)
	for waiting := true; waiting; {
		select {
		case <-redone:
			{
				waiting = false
			}
		case <-tick.C:
			{
				require.NoError(t, os.WriteFile(other, []byte("x"), 0644))
				require.NoError(t, os.WriteFile(path, []byte("lists: []\n"), 0644))
			}
		case <-deadline:
			{
				t.Fatalf("Scene change went unnoticed\n")
			}
		}
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatalf("Watcher didn't stop after cancel\n")
	}
}
