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
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/vigilantdoomer/drawsort/drawlist"
	"github.com/vigilantdoomer/drawsort/internal/mylog"
	"github.com/vigilantdoomer/drawsort/jobqueue"
)

const VERSION = "0.1a"

const DEFAULT_CONFIG_FILE = "~/.drawsort.toml"

/*
-s Reverse order of sprites at the same depth (overrides scene's compat flag)
	s+ enabled, s- disabled

-b Billboard options, used when a sprite straddles a wall it is sorted against
	m= Billboard mode
		0 Y axis only (default)
		1 X/Y axis
	c Sprites face the camera (default: disabled)
	f Camera facing preference forced for all sprites (default: disabled)
	p Particles are billboards (default: enabled)

-c Check that no wall is drawn after a wall it is behind

-w Watch the scene file and redo everything whenever it changes

-j= Capacity of job queue between scene reader and draw list builder

-q= What happens when the job queue is full
	0 Abort (it is a hard limit)
	1 Drop the job, which aborts the frame
	2 Wait for the builder to catch up (default)

-v Add verbosity to text output. Use multiple times for increased verbosity.

*/

const ( // ProgramConfig.SpriteSort values
	SPRITESORT_SCENE = iota // as specified by the scene
	SPRITESORT_NORMAL
	SPRITESORT_REVERSE
)

const DEFAULT_QUEUE_CAPACITY = uint32(65536)

type ProgramConfig struct {
	SceneFileName  string `toml:"-"`
	ReportFileName string `toml:"report"`
	ConfigFileName string `toml:"-"`
	VerbosityLevel int    `toml:"verbosity"`
	SpriteSort     int    `toml:"sprite_sort"`
	// Mirrors the renderer's billboard settings
	Billboard      drawlist.BillboardConfig `toml:"billboard"`
	CheckOrder     bool                     `toml:"check"`
	Watch          bool                     `toml:"watch"`
	DumpTrees      bool                     `toml:"dump"`
	QueueCapacity  uint32                   `toml:"queue_capacity"`
	QueuePolicy    jobqueue.Policy          `toml:"queue_policy"`
	Profile        bool                     `toml:"-"`
	ProfilePath    string                   `toml:"-"`
	MemProfile     bool                     `toml:"-"`
	MemProfilePath string                   `toml:"-"`
}

var config *ProgramConfig // must call Configure() before accessing

func DefaultConfig() *ProgramConfig {
	return &ProgramConfig{
		SpriteSort:    SPRITESORT_SCENE,
		Billboard:     drawlist.DefaultBillboardConfig(),
		QueueCapacity: DEFAULT_QUEUE_CAPACITY,
		QueuePolicy:   jobqueue.PolicyBlock,
	}
}

// Configure fills the global config: defaults, then config file, then
// command line. Returns false if program should exit, and the exit code
func Configure(args []string) (bool, int) {
	mylog.Log.Printf("DrawSort ver %s\n", VERSION)
	mylog.Log.Printf("Copyright (c)   2022-2023 VigilantDoomer\n")
	mylog.Log.Printf("Distributed under the terms of GNU General Public License v2.\n")
	mylog.Log.Printf("\n")
	config = DefaultConfig()
	fileName, explicit := configFileFromArgs(args)
	if err := config.LoadFile(fileName, explicit); err != nil {
		mylog.Log.Error("%s\n", err.Error())
		return false, 1
	}
	if !config.FromCommandLine(args) {
		mylog.Log.Printf("\n")
		return false, 1
	}
	mylog.Log.SetVerbosity(config.VerbosityLevel)
	// If scene file name was not passed, print help
	if config.SceneFileName == "" {
		PrintHelp()
		return false, 0
	}
	return true, 0
}

// LoadFile reads TOML config on top of the current values. Absent default
// config file is not an error, absent explicitly specified one is
func (c *ProgramConfig) LoadFile(fileName string, explicit bool) error {
	path, err := homedir.Expand(fileName)
	if err != nil {
		return errors.Wrapf(err, "couldn't resolve config file path '%s'", fileName)
	}
	f, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return errors.Wrap(err, "couldn't open config file")
	}
	defer f.Close()
	dec := toml.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		return errors.Wrapf(err, "config file '%s'", path)
	}
	c.ConfigFileName = path
	mylog.Log.Verbose(1, "Loaded config file %s\n", path)
	return nil
}

func PrintHelp() {
	mylog.Log.Printf("Usage: drawsort {-options} scene.yaml {-o report.txt}\n")
	mylog.Log.Printf("\n")
	mylog.Log.Printf("-x+ turn on option -x- turn off option\n")
	mylog.Log.Printf("\n")
	mylog.Log.Printf("-s Reverse order of sprites at the same depth\n")
	mylog.Log.Printf("	(overrides compat_sprite_sort of the scene)\n")
	mylog.Log.Printf("\n")
	mylog.Log.Printf("-b Billboard options.\n")
	mylog.Log.Printf("	m= Billboard mode\n")
	mylog.Log.Printf("		0 Y axis only (default)\n")
	mylog.Log.Printf("		1 X/Y axis\n")
	mylog.Log.Printf("	c Sprites face the camera (default: disabled)\n")
	mylog.Log.Printf("	f Camera facing preference forced for all sprites (default: disabled)\n")
	mylog.Log.Printf("	p Particles are billboards (default: enabled)\n")
	mylog.Log.Printf("\n")
	mylog.Log.Printf("-c Check that no wall is drawn right after a wall it is behind\n")
	mylog.Log.Printf("-w Watch scene file, redo everything whenever it changes\n")
	mylog.Log.Printf("-j= Job queue capacity (default: %d)\n", DEFAULT_QUEUE_CAPACITY)
	mylog.Log.Printf("-q= Job queue overflow policy\n")
	mylog.Log.Printf("		0 Abort\n")
	mylog.Log.Printf("		1 Drop jobs (frame fails)\n")
	mylog.Log.Printf("		2 Wait for builder (default)\n")
	mylog.Log.Printf("-v Add verbosity to text output. Use multiple times for increased verbosity.\n")
	mylog.Log.Printf("\n")
	mylog.Log.Printf("--config <file> Read options from TOML file (default: %s)\n", DEFAULT_CONFIG_FILE)
	mylog.Log.Printf("--dump Print sorted trees\n")
	mylog.Log.Printf("--cpuprofile <file> Write CPU profile\n")
	mylog.Log.Printf("--memprofile <file> Write allocations profile\n")
	mylog.Log.Printf("\n")
	mylog.Log.Printf("Example: drawsort -c -bm=1p- -vv room.yaml -o room.txt\n")
	mylog.Log.Printf("	Sorts and draws room.yaml with X/Y billboards, particles not\n")
	mylog.Log.Printf("	treated as billboards, and checks the resulting order.\n")
	mylog.Log.Printf("	Report is written to room.txt.\n")
	mylog.Log.Printf("\n")
}
