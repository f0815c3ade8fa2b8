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
// Package scene reads description of a single frame to be sorted and drawn:
// where the viewer is, and draw lists with their walls, flats and sprites
package scene

import (
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Viewpoint struct {
	X   float32 `yaml:"x"`
	Y   float32 `yaml:"y"`
	Z   float32 `yaml:"z"`
	Yaw float32 `yaml:"yaw"` // degrees, 0 looks along +x
}

type Scene struct {
	Viewpoint Viewpoint `yaml:"viewpoint"`
	// Among sprites at the same depth, draw the last added first
	CompatSpriteSort bool       `yaml:"compat_sprite_sort"`
	Lists            []ListDef  `yaml:"lists"`
	Sounds           []SoundDef `yaml:"sounds"`
}

type ListDef struct {
	Name        string    `yaml:"name"`
	Translucent bool      `yaml:"translucent"`
	Items       []ItemDef `yaml:"items"`
}

// ItemDef holds exactly one of the primitives
type ItemDef struct {
	Wall   *WallDef   `yaml:"wall,omitempty"`
	Flat   *FlatDef   `yaml:"flat,omitempty"`
	Sprite *SpriteDef `yaml:"sprite,omitempty"`
}

type WallDef struct {
	Name    string      `yaml:"name"`
	Seg     [4]float32  `yaml:"seg"` // x1, y1, x2, y2
	ZTop    [2]float32  `yaml:"ztop"`
	ZBottom [2]float32  `yaml:"zbottom"`
	U       *[2]float32 `yaml:"u,omitempty"` // at start, end
	V       *[2]float32 `yaml:"v,omitempty"` // at top, bottom
	Type    string      `yaml:"type,omitempty"`
	Texture int         `yaml:"texture"`
	Flags   uint32      `yaml:"flags"`
	// Computed from the viewpoint when omitted
	ViewDistance *float32 `yaml:"view_distance,omitempty"`
}

type FlatDef struct {
	Name    string  `yaml:"name"`
	Z       float32 `yaml:"z"`
	Ceiling bool    `yaml:"ceiling"`
	Texture int     `yaml:"texture"`
	Sector  int     `yaml:"sector"`
}

type SpriteDef struct {
	Name string  `yaml:"name"`
	X    float32 `yaml:"x"`
	Y    float32 `yaml:"y"`
	Z    float32 `yaml:"z"`
	// Horizontal extent; when omitted, a quad of the given width facing
	// the viewer is centered on the anchor
	Seg    *[4]float32 `yaml:"seg,omitempty"`
	Width  float32     `yaml:"width,omitempty"`
	Height float32     `yaml:"height"`
	// Computed from the viewpoint when omitted
	Depth      *float32 `yaml:"depth,omitempty"`
	Texture    int      `yaml:"texture"`
	ModelFrame bool     `yaml:"model_frame"`
	Particle   bool     `yaml:"particle"`
	Actor      bool     `yaml:"actor"`
	Flags      []string `yaml:"flags,omitempty"`
}

// SoundDef is an ambient sound started along with the frame
type SoundDef struct {
	Name    string  `yaml:"name"`
	Samples int     `yaml:"samples"`
	Loop    bool    `yaml:"loop"`
	Pitch   float32 `yaml:"pitch,omitempty"`
	UI      bool    `yaml:"ui"`
}

func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open scene file")
	}
	defer f.Close()
	sc, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "scene %q", path)
	}
	return sc, nil
}

// Decode reads and validates a scene. Unknown keys are an error, so that
// typos don't go unnoticed
func Decode(r io.Reader) (*Scene, error) {
	sc := &Scene{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(sc); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal yaml")
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

func (sc *Scene) Validate() error {
	for i := range sc.Lists {
		list := &sc.Lists[i]
		for j := range list.Items {
			if err := list.Items[j].validate(); err != nil {
				return errors.Wrapf(err, "list %q item %d", list.Name, j)
			}
		}
	}
	for i, snd := range sc.Sounds {
		if snd.Samples <= 0 {
			return errors.Errorf("sound %d (%q) has no samples", i, snd.Name)
		}
		if snd.Pitch < 0 {
			return errors.Errorf("sound %d (%q) has negative pitch", i, snd.Name)
		}
	}
	return nil
}

func (it *ItemDef) validate() error {
	cnt := 0
	if it.Wall != nil {
		cnt++
		if _, ok := wallTypes[it.Wall.Type]; !ok {
			return errors.Errorf("wall %q has unknown type %q", it.Wall.Name, it.Wall.Type)
		}
	}
	if it.Flat != nil {
		cnt++
	}
	if it.Sprite != nil {
		cnt++
		for _, flag := range it.Sprite.Flags {
			if _, ok := spriteFlags[flag]; !ok {
				return errors.Errorf("sprite %q has unknown flag %q", it.Sprite.Name, flag)
			}
		}
	}
	if cnt != 1 {
		return errors.Errorf("must hold exactly one of wall, flat, sprite (has %d)", cnt)
	}
	return nil
}

func (sc *Scene) ViewPos() mgl32.Vec3 {
	return mgl32.Vec3{sc.Viewpoint.X, sc.Viewpoint.Y, sc.Viewpoint.Z}
}

// ViewDir is the unit vector the viewer looks along
func (sc *Scene) ViewDir() mgl32.Vec2 {
	yaw := mgl32.DegToRad(sc.Viewpoint.Yaw)
	return mgl32.Rotate2D(yaw).Mul2x1(mgl32.Vec2{1, 0})
}
