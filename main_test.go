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
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vigilantdoomer/drawsort/drawlist"
	"github.com/vigilantdoomer/drawsort/internal/mylog"
	"github.com/vigilantdoomer/drawsort/jobqueue"
)

const roomScene = "scene/testdata/room.yaml"

func TestMain(m *testing.M) {
	mylog.Log.SetOutput(io.Discard, io.Discard)
	os.Exit(m.Run())
}

func TestCommandLine(t *testing.T) {
	c := DefaultConfig()
	ok := c.FromCommandLine([]string{"-vv", "-s+", "-bm=1c+p-", "-c", "-j=16",
		"-q=1", "room.yaml", "-o", "room.txt", "--dump", "--cpuprofile", "cpu.prof"})
	require.True(t, ok)
	assert.Equal(t, 2, c.VerbosityLevel)
	assert.Equal(t, SPRITESORT_REVERSE, c.SpriteSort)
	assert.Equal(t, drawlist.BillboardConfig{
		Mode:           drawlist.BILLBOARD_XY,
		FacesCamera:    true,
		ForceCamBBPref: false,
		Particles:      false,
	}, c.Billboard)
	assert.True(t, c.CheckOrder)
	assert.False(t, c.Watch)
	assert.Equal(t, uint32(16), c.QueueCapacity)
	assert.Equal(t, jobqueue.PolicyDrop, c.QueuePolicy)
	assert.Equal(t, "room.yaml", c.SceneFileName)
	assert.Equal(t, "room.txt", c.ReportFileName)
	assert.True(t, c.DumpTrees)
	assert.True(t, c.Profile)
	assert.Equal(t, "cpu.prof", c.ProfilePath)
}

func TestCommandLineDefaults(t *testing.T) {
	c := DefaultConfig()
	require.True(t, c.FromCommandLine([]string{"-s-", "-w", "--config", "x.toml", "a.yaml"}))
	assert.Equal(t, SPRITESORT_NORMAL, c.SpriteSort)
	assert.True(t, c.Watch)
	assert.Equal(t, drawlist.DefaultBillboardConfig(), c.Billboard)
	assert.Equal(t, DEFAULT_QUEUE_CAPACITY, c.QueueCapacity)
	assert.Equal(t, jobqueue.PolicyBlock, c.QueuePolicy)
	assert.Equal(t, "a.yaml", c.SceneFileName)
}

func TestCommandLineRejects(t *testing.T) {
	bad := [][]string{
		{"a.yaml", "b.yaml"},
		{"a.yaml", "-o"},
		{"-ofile", "a.yaml"},
		{"-o", "x.txt", "-o", "y.txt"},
		{"-j=0"},
		{"-j"},
		{"-q=3"},
		{"--bogus", "x"},
		{"--cpuprofile"},
		{"-z"},
	}
	for _, args := range bad {
		c := DefaultConfig()
		if c.FromCommandLine(args) {
			t.Errorf("Expected %v to be rejected\n", args)
		}
	}
}

func TestBillboardParamsIgnoreGarbage(t *testing.T) {
	c := DefaultConfig()
	c.parseBillboardParams([]byte("m=7fx"))
	assert.Equal(t, drawlist.BILLBOARD_Y, c.Billboard.Mode)
	assert.True(t, c.Billboard.ForceCamBBPref)
	assert.True(t, c.Billboard.Particles)
}

func TestReadNumeric(t *testing.T) {
	nos, rest := readNumeric("-x", []byte("=42z"))
	assert.Equal(t, ARG_IS_NUMBER, nos.whichType)
	assert.Equal(t, 42, nos.value)
	assert.Equal(t, []byte("z"), rest)

	nos, rest = readNumeric("-x", []byte("-z"))
	assert.Equal(t, ARG_DISABLED, nos.whichType)
	assert.Equal(t, []byte("z"), rest)

	nos, rest = readNumeric("-x", []byte("=z"))
	assert.Equal(t, ARG_ENABLED, nos.whichType)
	assert.Empty(t, rest)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drawsort.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
verbosity = 2
check = true
sprite_sort = 2
queue_capacity = 128
queue_policy = 1

[billboard]
mode = 1
particles = false
`), 0644))
	c := DefaultConfig()
	require.NoError(t, c.LoadFile(path, true))
	assert.Equal(t, path, c.ConfigFileName)
	assert.Equal(t, 2, c.VerbosityLevel)
	assert.True(t, c.CheckOrder)
	assert.Equal(t, SPRITESORT_REVERSE, c.SpriteSort)
	assert.Equal(t, uint32(128), c.QueueCapacity)
	assert.Equal(t, jobqueue.PolicyDrop, c.QueuePolicy)
	assert.Equal(t, drawlist.BILLBOARD_XY, c.Billboard.Mode)
	assert.False(t, c.Billboard.Particles)
	assert.False(t, c.Billboard.FacesCamera)

	// command line wins
	require.True(t, c.FromCommandLine([]string{"-s-", "-bp+"}))
	assert.Equal(t, SPRITESORT_NORMAL, c.SpriteSort)
	assert.True(t, c.Billboard.Particles)
}

func TestConfigFileErrors(t *testing.T) {
	dir := t.TempDir()
	c := DefaultConfig()
	assert.NoError(t, c.LoadFile(filepath.Join(dir, "absent.toml"), false))
	assert.Error(t, c.LoadFile(filepath.Join(dir, "absent.toml"), true))

	path := filepath.Join(dir, "typo.toml")
	require.NoError(t, os.WriteFile(path, []byte("chek = true\n"), 0644))
	assert.Error(t, c.LoadFile(path, true))
}

func TestConfigFileFromArgs(t *testing.T) {
	name, explicit := configFileFromArgs([]string{"-v", "--config", "my.toml", "a.yaml"})
	assert.Equal(t, "my.toml", name)
	assert.True(t, explicit)

	name, explicit = configFileFromArgs([]string{"a.yaml", "--config"})
	assert.Equal(t, DEFAULT_CONFIG_FILE, name)
	assert.False(t, explicit)
}
