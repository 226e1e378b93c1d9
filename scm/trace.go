/*
Copyright (C) 2024  Carl-Philip Hänsch

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package scm

import "io"
import "os"
import "sync"
import "time"
import "sync/atomic"
import "path/filepath"
import "encoding/json"
import "github.com/google/uuid"

// Tracefile records operator applications as a Chrome trace (a JSON array of
// events; open it in chrome://tracing or perfetto).
type Tracefile struct {
	m      sync.Mutex
	file   io.WriteCloser
	events int
	closed bool
}

var trace atomic.Pointer[Tracefile] // nil: tracing is off
var TracePrint bool                  // print the duration of each operator to stdout

// CurrentTrace returns the open trace or nil
func CurrentTrace() *Tracefile {
	return trace.Load()
}

// SetTrace closes the current trace and, if on, starts trace_<uuid>.json in
// dir. It may be called from a signal handler while operators run.
func SetTrace(on bool, dir string) error {
	var next *Tracefile
	if on {
		f, err := os.Create(filepath.Join(dir, "trace_"+uuid.New().String()+".json"))
		if err != nil {
			return err
		}
		next = NewTrace(f)
	}
	if old := trace.Swap(next); old != nil {
		old.Close()
	}
	return nil
}

func NewTrace(file io.WriteCloser) *Tracefile {
	file.Write([]byte("["))
	return &Tracefile{file: file}
}

// Close finishes the JSON array; events arriving afterwards are dropped
func (t *Tracefile) Close() {
	t.m.Lock()
	defer t.m.Unlock()
	if t.closed {
		return
	}
	t.closed = true
	t.file.Write([]byte("]"))
	t.file.Close()
}

// Duration runs f between a begin and an end event
func (t *Tracefile) Duration(name string, cat string, f func()) {
	t.emit(name, cat, "B")
	defer t.emit(name, cat, "E")
	f()
}

type traceEvent struct {
	Name  string `json:"name"`
	Cat   string `json:"cat"` // comma separated categories for filtering
	Ph    string `json:"ph"`  // B/E for begin/end
	Ts    int64  `json:"ts"`  // microseconds since start
	Pid   int    `json:"pid"`
	Tid   int    `json:"tid"`
	Scope string `json:"s"`
}

func (t *Tracefile) emit(name, cat, ph string) {
	b, _ := json.Marshal(traceEvent{name, cat, ph, time.Since(start).Microseconds(), 0, 0, "g"})
	t.m.Lock()
	defer t.m.Unlock()
	if t.closed {
		return
	}
	if t.events > 0 {
		t.file.Write([]byte(",\n"))
	}
	t.events++
	t.file.Write(b)
}

var start time.Time = time.Now()
