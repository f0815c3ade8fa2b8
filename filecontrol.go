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
	"fmt"
	"io"
	"os"
	"runtime/pprof"

	"github.com/pkg/errors"
	"github.com/vigilantdoomer/drawsort/internal/mylog"
)

// Controls lifetime of the report file - ensures it is properly closed by the
// end of program, regardless of success and failure, and that it says whether
// it is complete
type FileControl struct {
	success        bool
	freport        *os.File
	reportFileName string
}

// OpenReportFile returns stdout if no report file name was given
func (fc *FileControl) OpenReportFile(reportFileName string) (io.Writer, error) {
	if reportFileName == "" {
		return os.Stdout, nil
	}
	fc.reportFileName = reportFileName
	var err error
	fc.freport, err = os.OpenFile(reportFileName, os.O_CREATE|os.O_RDWR|os.O_TRUNC,
		os.ModeExclusive|os.ModePerm)
	if err != nil {
		fc.freport = nil
		return nil, errors.Wrapf(err, "couldn't create report file '%s'", reportFileName)
	}
	return fc.freport, nil
}

func (fc *FileControl) CloseReportFile(suc bool) bool {
	if fc.freport == nil {
		return true
	}
	if suc {
		fc.freport.Write([]byte("# Report written successfully - no entries lost\n"))
	} else {
		fc.freport.Write([]byte("# Program aborted, report might be missing entries\n"))
	}
	err := fc.freport.Close()
	if err != nil {
		mylog.Log.Error("Couldn't close report file '%s': %s\n", fc.reportFileName, err.Error())
	} else {
		if suc {
			mylog.Log.Printf("Written report file %s\n", fc.reportFileName)
		} else {
			mylog.Log.Printf("Written incomplete report file %s\n", fc.reportFileName)
		}
	}
	fc.freport = nil
	return err == nil
}

func (fc *FileControl) Success() bool {
	suc := fc.CloseReportFile(true)
	fc.success = true
	return suc
}

// Ensures we close the report when program exits
func (fc *FileControl) Shutdown() {
	if fc.success {
		return
	}
	fc.CloseReportFile(false)
}

func DumpMemoryProfile(where string) {
	fout, ferr := os.OpenFile(where, os.O_CREATE|os.O_RDWR|os.O_TRUNC, os.ModeExclusive|os.ModePerm)
	if ferr != nil {
		mylog.Log.Error("An error has occured while trying to create/modify %s: %s\n", where, ferr)
		return
	}
	defer fout.Close()
	pprof.Lookup("allocs").WriteTo(fout, 0)
}

// Print with platform-specific linebreaks indicated by CRLF argument
func WriterPrintfln(w io.Writer, CRLF bool, format string, a ...interface{}) {
	if len(format) > 0 && format[len(format)-1] == '\n' {
		format = string([]byte(format)[:len(format)-1])
	}
	w.Write([]byte(appendCRLF(CRLF, fmt.Sprintf(format, a...))))
}

func appendCRLF(CRLF bool, s string) string {
	if CRLF {
		return s + "\r\n"
	} else {
		return s + "\n"
	}
}
