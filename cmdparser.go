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
	"bytes"
	"strconv"

	"github.com/vigilantdoomer/drawsort/drawlist"
	"github.com/vigilantdoomer/drawsort/internal/mylog"
	"github.com/vigilantdoomer/drawsort/jobqueue"
)

const ( // NumericOrState.whichType values
	ARG_ENABLED = iota
	ARG_DISABLED
	ARG_IS_NUMBER
)

type NumericOrState struct {
	whichType int // see consts above
	value     int
}

// configFileFromArgs finds "--config <file>" ahead of the real parsing pass,
// since config file values are to be overridden by the command line
func configFileFromArgs(args []string) (string, bool) {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == "--config" && args[i+1] != "" {
			return args[i+1], true
		}
	}
	return DEFAULT_CONFIG_FILE, false
}

// Inspired by from zokumbsp's parser
func (c *ProgramConfig) FromCommandLine(args []string) bool {
	files := make([]string, 0)
	outputModifier := false
	outputModifierUsed := false
	hasOutputFile := false
	skip := false
	for argIdx, arg := range args {
		if len(arg) < 1 {
			break
		}
		if skip {
			skip = false
			continue
		}

		if arg[0] != '-' && !outputModifier {
			files = append(files, arg)
			if len(files) > 1 {
				mylog.Log.Error("This program doesn't support specifying more than one scene file - aborting.\n")
				return false
			}
			c.SceneFileName = files[0]
			continue
		}

		if outputModifier {
			c.ReportFileName = arg
			outputModifier = false
			hasOutputFile = true
			continue
		}

		if len(arg) < 2 {
			continue
		}
		switch arg[1] {
		case 's':
			{
				enabled, rest := isEnabled([]byte(arg)[2:])
				if enabled {
					c.SpriteSort = SPRITESORT_REVERSE
				} else {
					c.SpriteSort = SPRITESORT_NORMAL
				}
				if len(rest) > 0 {
					mylog.Log.Error("Syntax error: -s parameter is followed by garbage; expected -s, -s+ or -s-, no other variants allowed.\n")
				}
			}
		case 'b':
			{
				c.parseBillboardParams([]byte(arg)[2:])
			}
		case 'c':
			{
				enabled, rest := isEnabled([]byte(arg)[2:])
				c.CheckOrder = enabled
				if len(rest) > 0 {
					mylog.Log.Error("Syntax error: -c parameter is followed by garbage; expected -c, -c+ or -c-, no other variants allowed.\n")
				}
			}
		case 'w':
			{
				enabled, rest := isEnabled([]byte(arg)[2:])
				c.Watch = enabled
				if len(rest) > 0 {
					mylog.Log.Error("Syntax error: -w parameter is followed by garbage; expected -w, -w+ or -w-, no other variants allowed.\n")
				}
			}
		case 'j':
			{
				nos, _ := readNumeric("-j", []byte(arg)[2:])
				if nos.whichType != ARG_IS_NUMBER || nos.value <= 0 ||
					uint64(nos.value) > uint64(jobqueue.MAX_QUEUE_CAPACITY) {
					mylog.Log.Error("Expected '-j=<capacity>' with capacity between 1 and %d - aborting.\n",
						jobqueue.MAX_QUEUE_CAPACITY)
					return false
				}
				c.QueueCapacity = uint32(nos.value)
			}
		case 'q':
			{
				nos, _ := readNumeric("-q", []byte(arg)[2:])
				if nos.whichType != ARG_IS_NUMBER || nos.value > int(jobqueue.PolicyBlock) {
					mylog.Log.Error("Expected '-q=0', '-q=1' or '-q=2' - aborting.\n")
					return false
				}
				c.QueuePolicy = jobqueue.Policy(nos.value)
			}
		case 'v':
			{
				// "count" type: -v, -vv, -vvv, etc.
				vs := 0
				barg := []byte(arg)[1:]
				for i := 0; i < len(arg)-1; i++ {
					if barg[i] == 'v' {
						vs++
					} else {
						break
					}
				}
				c.VerbosityLevel += vs
			}
		case 'o':
			{
				if len(arg) != 2 {
					mylog.Log.Error("Unrecognized modified '%s' (expected '-o <file>', space between '-o' and file name) - aborting.\n",
						arg)
					return false
				}
				if outputModifierUsed {
					mylog.Log.Error("Can't specify report file twice - aborting.\n")
					return false
				}
				outputModifier = true
				outputModifierUsed = true
			}
		case '-':
			{
				barg := []byte(arg)
				if bytes.Equal(barg, []byte("--dump")) {
					c.DumpTrees = true
					continue
				}
				// the rest of double hyphen parameters are followed by file name
				fileSatisfied := (len(args) > (argIdx + 1)) &&
					(args[argIdx+1] != "")
				if !fileSatisfied {
					mylog.Log.Error("Modifier '%s' was present without a file name following it - aborting.\n",
						arg)
					return false
				}
				skip = true
				if bytes.Equal(barg, []byte("--cpuprofile")) {
					c.Profile = true
					c.ProfilePath = args[argIdx+1]
				} else if bytes.Equal(barg, []byte("--memprofile")) {
					c.MemProfile = true
					c.MemProfilePath = args[argIdx+1]
				} else if bytes.Equal(barg, []byte("--config")) {
					// already loaded by Configure
				} else {
					mylog.Log.Error("Unrecognised argument '%s' - aborting.\n", arg)
					return false
				}
			}
		default:
			{
				mylog.Log.Error("Unrecognised argument '%s' - aborting.\n", arg)
				return false
			}
		}
	}
	if outputModifier && !hasOutputFile {
		mylog.Log.Error("Modifier '-o' was present without a file name following it - aborting.\n")
		return false
	}
	return true
}

func (c *ProgramConfig) parseBillboardParams(p []byte) {
	for len(p) > 0 {
		switch p[0] {
		case 'm':
			{
				nos, rest := readNumeric("-bm", p[1:])
				if nos.whichType == ARG_ENABLED {
					nos.value = drawlist.BILLBOARD_XY
				} else if nos.whichType == ARG_DISABLED {
					nos.value = drawlist.BILLBOARD_Y
				}
				switch nos.value {
				case drawlist.BILLBOARD_Y, drawlist.BILLBOARD_XY:
					{
						c.Billboard.Mode = nos.value
					}
				default:
					{
						mylog.Log.Error("Unsupported billboard mode %d. Ignoring it.\n", nos.value)
					}
				}
				p = rest
			}
		case 'c':
			{
				on, rest := isEnabled(p[1:])
				c.Billboard.FacesCamera = on
				p = rest
			}
		case 'f':
			{
				on, rest := isEnabled(p[1:])
				c.Billboard.ForceCamBBPref = on
				p = rest
			}
		case 'p':
			{
				on, rest := isEnabled(p[1:])
				c.Billboard.Particles = on
				p = rest
			}
		default:
			{
				mylog.Log.Error("Error passing billboard params - ignoring '%s'.\n", string(p))
				p = p[:0]
			}
		}
	}
}

func isEnabled(arg []byte) (bool, []byte) {
	if len(arg) == 0 {
		return true, arg
	}
	if arg[0] == '+' {
		return true, arg[1:]
	} else if arg[0] == '-' {
		return false, arg[1:]
	} else {
		return true, arg
	}
}

// a+, a-, or a=<numeric_value_without_sign>
func readNumeric(prefix string, arg []byte) (NumericOrState, []byte) {
	if len(arg) == 0 {
		return NumericOrState{whichType: ARG_ENABLED}, arg
	}
	if arg[0] == '+' {
		return NumericOrState{whichType: ARG_ENABLED}, arg[1:]
	} else if arg[0] == '-' {
		return NumericOrState{whichType: ARG_DISABLED}, arg[1:]
	} else if arg[0] == '=' {
		t, v, rest := readNumericOnly(arg[1:])
		if t {
			return NumericOrState{
				whichType: ARG_IS_NUMBER,
				value:     v,
			}, rest
		}
		mylog.Log.Error("Couldn't properly parse '%s%s'. Some parameters are going to be ignored as the result.\n", prefix, string(arg))
		return NumericOrState{
			whichType: ARG_ENABLED,
		}, arg[:0] // ignore the rest of parameters
	}
	return NumericOrState{whichType: ARG_ENABLED}, arg
}

func readNumericOnly(arg []byte) (bool, int, []byte) {
	if len(arg) == 0 {
		return false, 0, arg
	}
	l := 0
	for i := 0; i < len(arg); i++ {
		c := arg[i]
		if '0' <= c && c <= '9' {
			l++
		} else {
			break
		}
	}
	if l > 0 {
		v, err := strconv.Atoi(string(arg[:l]))
		if err != nil {
			mylog.Log.Error("value '%s' was too big to interpret as int.\n",
				string(arg[:l]))
			return false, 0, arg[l:]
		}
		return true, v, arg[l:]
	}
	return false, 0, arg
}
