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
package mylog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() (*MyLogger, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	l := CreateLogger()
	l.SetOutput(&out, &errOut)
	return l, &out, &errOut
}

func TestVerbosityGates(t *testing.T) {
	l, out, errOut := newTestLogger()
	l.Printf("always %d\n", 1)
	l.Verbose(1, "hidden\n")
	l.SetVerbosity(2)
	assert.Equal(t, 2, l.Verbosity())
	l.Verbose(2, "shown\n")
	l.Verbose(3, "too deep\n")
	l.Error("bad %s\n", "thing")
	assert.Equal(t, "always 1\nshown\n", out.String())
	assert.Equal(t, "bad thing\n", errOut.String())
}

type dumped struct {
	Name  string
	Items []int
}

func TestDump(t *testing.T) {
	l, out, _ := newTestLogger()
	l.Dump(1, dumped{Name: "x"})
	assert.Empty(t, out.String())
	l.Dump(0, dumped{Name: "tree", Items: make([]int, 2, 8)})
	s := out.String()
	assert.Contains(t, s, "Name: (string) (len=4) \"tree\"")
	assert.Contains(t, s, "(len=2)")
	assert.NotContains(t, s, "cap=")
}

func TestPanicFormats(t *testing.T) {
	l, _, _ := newTestLogger()
	require.PanicsWithValue(t, "node 7 is broken\n", func() {
		l.Panic("node %d is broken\n", 7)
	})
	// mutex must have been released
	l.Printf("still alive\n")
}

func TestMiniLoggerMerge(t *testing.T) {
	l, out, _ := newTestLogger()
	mlog := &MiniLogger{verbosity: 1}
	mlog.Printf("a\n")
	mlog.Verbose(1, "b\n")
	mlog.Verbose(2, "c\n")
	assert.Equal(t, "a\nb\n", mlog.String())
	l.Merge(mlog, "task:\n")
	l.Merge(nil, "ignored\n")
	assert.Equal(t, "task:\na\nb\n", out.String())

	var nilLog *MiniLogger
	assert.Equal(t, "", nilLog.String())
}

func TestCreateMiniLoggerSnapshotsVerbosity(t *testing.T) {
	old := Log.Verbosity()
	defer Log.SetVerbosity(old)
	Log.SetVerbosity(3)
	mlog := CreateMiniLogger()
	Log.SetVerbosity(0)
	mlog.Verbose(3, "kept\n")
	assert.Equal(t, "kept\n", mlog.String())
}
