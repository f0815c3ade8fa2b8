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

// -- This file is where the program entry is.
// DrawSort loads a scene (a viewpoint plus draw lists of walls, flats and
// sprites), sorts translucent lists into a painter's algorithm tree, and
// reports the order in which a hardware renderer would draw everything, along
// with the clip planes in effect for each call.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"time"

	"github.com/vigilantdoomer/drawsort/internal/mylog"
	"github.com/vigilantdoomer/drawsort/scene"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	timeStart := time.Now()

	// before config can be legitimately accessed, must call Configure()
	if cont, code := Configure(args); !cont {
		return code
	}

	if config.Profile {
		f, err := os.Create(config.ProfilePath)
		if err != nil {
			mylog.Log.Printf("Could not create CPU profile: %s", err.Error())
		} else {
			defer f.Close()
			if err := pprof.StartCPUProfile(f); err != nil {
				mylog.Log.Printf("Could not start CPU profile: %s", err.Error())
			} else {
				defer pprof.StopCPUProfile()
			}
		}
	}

	config.SceneFileName, _ = filepath.Abs(config.SceneFileName)
	if config.ReportFileName != "" {
		config.ReportFileName, _ = filepath.Abs(config.ReportFileName)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	suc := processScene(ctx, config)
	if config.Watch {
		err := WatchScene(ctx, config.SceneFileName, func() {
			processScene(ctx, config)
		})
		if err != nil {
			mylog.Log.Error("%s\n", err.Error())
			suc = false
		}
	}

	if config.MemProfile {
		DumpMemoryProfile(config.MemProfilePath)
	}
	mylog.Log.Printf("Total time: %s\n", time.Since(timeStart))
	mylog.Log.Sync()
	if !suc {
		return 1
	}
	return 0
}

// processScene renders the scene once and writes the report. Returns false if
// anything went wrong, including order violations found by -c
func processScene(ctx context.Context, cfg *ProgramConfig) bool {
	sc, err := scene.Load(cfg.SceneFileName)
	if err != nil {
		mylog.Log.Error("%s\n", err.Error())
		return false
	}
	mylog.Log.Printf("Scene %s: %d lists, %d sounds\n", cfg.SceneFileName,
		len(sc.Lists), len(sc.Sounds))

	fileControl := FileControl{}
	defer fileControl.Shutdown()
	w, err := fileControl.OpenReportFile(cfg.ReportFileName)
	if err != nil {
		mylog.Log.Error("%s\n", err.Error())
		return false
	}

	fr, err := RenderFrame(ctx, sc, cfg)
	if err != nil {
		mylog.Log.Error("%s\n", err.Error())
		return false
	}
	WriteReport(w, fr)
	if !fileControl.Success() {
		return false
	}
	if cfg.CheckOrder {
		if n := fr.Violations(); n > 0 {
			mylog.Log.Error("Found %d order violation(s)\n", n)
			return false
		}
		mylog.Log.Printf("Draw order verified\n")
	}
	return true
}
