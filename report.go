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
	"runtime"
	"strconv"
	"strings"

	"github.com/vigilantdoomer/drawsort/drawlist"
)

func kindString(kind int) string {
	switch kind {
	case drawlist.DRAWTYPE_WALL:
		return "wall"
	case drawlist.DRAWTYPE_FLAT:
		return "flat"
	case drawlist.DRAWTYPE_SPRITE:
		return "sprite"
	}
	return "?"
}

// WriteReport prints draw calls in order, one per line, followed by order
// violations, sounds and render clocks. Line breaks follow the platform
func WriteReport(w io.Writer, fr *FrameReport) {
	CRLF := runtime.GOOS == "windows"
	WriterPrintfln(w, CRLF, "# Draw calls: list, kind, name, clip planes (bottom..top), translucent")
	for _, dc := range fr.Calls {
		tr := ""
		if dc.Translucent {
			tr = "T"
		}
		WriterPrintfln(w, CRLF, "%s\t%s\t%s\t%s\t%s", dc.List, kindString(dc.Kind),
			dc.Name, dc.ClipString(), tr)
	}
	for _, lr := range fr.Lists {
		if !lr.Translucent {
			continue
		}
		order := make([]string, len(lr.Order))
		for i, idx := range lr.Order {
			order[i] = strconv.Itoa(idx)
		}
		WriterPrintfln(w, CRLF, "# List '%s': %d items, draw order %s", lr.Name,
			lr.Items, strings.Join(order, " "))
		for _, v := range lr.Violations {
			WriterPrintfln(w, CRLF, "# ORDER VIOLATION in '%s': %s", lr.Name, v.String())
		}
	}
	for _, sr := range fr.Sounds {
		state := "ended"
		if sr.Playing {
			state = "playing"
		}
		WriterPrintfln(w, CRLF, "# Sound '%s': %s at %d/%d", sr.Name, state,
			sr.Position, sr.Length)
	}
	WriterPrintfln(w, CRLF, "# Vertex rebuilds: %d, sort nodes: %d", fr.VertexBuilds,
		fr.SortNodes)
	WriterPrintfln(w, CRLF, "# Walls: %d calls %s, flats: %d calls %s, sprites: %d calls %s",
		fr.Clocks.Wall.Calls, fr.Clocks.Wall.Total,
		fr.Clocks.Flat.Calls, fr.Clocks.Flat.Total,
		fr.Clocks.Sprite.Calls, fr.Clocks.Sprite.Total)
}
