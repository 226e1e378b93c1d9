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
package storage

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/dc0d/onexit"
	"github.com/docker/go-units"
	"github.com/launix-de/kajisp/scm"
)

type SettingsT struct {
	Trace             bool
	TracePrint        bool
	TraceDir          string
	MaxSourceSize     string // human readable, e.g. 16MiB
	HistoryFile       string
	S3Region          string
	S3Endpoint        string // for S3-compatible storage (MinIO, etc.)
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3ForcePathStyle  bool
}

var Settings SettingsT = SettingsT{false, false, ".", "16MiB", ".kajisp-history.tmp", "", "", "", "", false}

// exit handlers run from the highest priority down
const (
	ExitPriorityShell = 10
	ExitPriorityTrace = 0
)

// call this after you filled Settings
func InitSettings() error {
	if _, err := MaxSourceBytes(); err != nil {
		return err
	}
	scm.TracePrint = Settings.TracePrint
	if err := scm.SetTrace(Settings.Trace, Settings.TraceDir); err != nil {
		return err
	}
	onexit.Register(func() { scm.SetTrace(false, "") }, ExitPriorityTrace) // close trace file on exit
	// onexit hooks ^Z as well; a suspended shell must come back with its trace open
	signal.Reset(syscall.SIGTSTP)
	return nil
}

// MaxSourceBytes is the largest program text LoadSource accepts
func MaxSourceBytes() (int64, error) {
	n, err := units.RAMInBytes(Settings.MaxSourceSize)
	if err != nil {
		return 0, fmt.Errorf("MaxSourceSize: %w", err)
	}
	return n, nil
}

func settingsList() scm.Scmer {
	return scm.List(
		scm.NewString("Trace"), scm.NewBool(Settings.Trace),
		scm.NewString("TracePrint"), scm.NewBool(Settings.TracePrint),
		scm.NewString("TraceDir"), scm.NewString(Settings.TraceDir),
		scm.NewString("MaxSourceSize"), scm.NewString(Settings.MaxSourceSize),
		scm.NewString("HistoryFile"), scm.NewString(Settings.HistoryFile),
		scm.NewString("S3Region"), scm.NewString(Settings.S3Region),
		scm.NewString("S3Endpoint"), scm.NewString(Settings.S3Endpoint),
		scm.NewString("S3ForcePathStyle"), scm.NewBool(Settings.S3ForcePathStyle),
	)
}

// ChangeSettings is the (settings) operator: no argument lists all
// settings, one argument reads a setting, two arguments change it.
// The S3 secret can be written but is never read back.
func ChangeSettings(en *scm.Env, a ...scm.Scmer) (scm.Scmer, error) {
	if len(a) == 0 {
		return settingsList(), nil
	} else if len(a) == 1 {
		switch scm.String(a[0]) {
		case "Trace":
			return scm.NewBool(Settings.Trace), nil
		case "TracePrint":
			return scm.NewBool(Settings.TracePrint), nil
		case "TraceDir":
			return scm.NewString(Settings.TraceDir), nil
		case "MaxSourceSize":
			return scm.NewString(Settings.MaxSourceSize), nil
		case "HistoryFile":
			return scm.NewString(Settings.HistoryFile), nil
		case "S3Region":
			return scm.NewString(Settings.S3Region), nil
		case "S3Endpoint":
			return scm.NewString(Settings.S3Endpoint), nil
		case "S3ForcePathStyle":
			return scm.NewBool(Settings.S3ForcePathStyle), nil
		default:
			return scm.NewNil(), &scm.EvalError{Op: "settings", Msg: "unknown setting: " + scm.String(a[0])}
		}
	}
	switch scm.String(a[0]) {
	case "Trace":
		Settings.Trace = a[1].Bool()
		if err := scm.SetTrace(Settings.Trace, Settings.TraceDir); err != nil {
			return scm.NewNil(), &scm.EvalError{Op: "settings", Msg: err.Error()}
		}
	case "TracePrint":
		Settings.TracePrint = a[1].Bool()
		scm.TracePrint = Settings.TracePrint
	case "TraceDir":
		Settings.TraceDir = scm.String(a[1])
	case "MaxSourceSize":
		old := Settings.MaxSourceSize
		Settings.MaxSourceSize = scm.String(a[1])
		if _, err := MaxSourceBytes(); err != nil {
			Settings.MaxSourceSize = old
			return scm.NewNil(), &scm.EvalError{Op: "settings", Msg: err.Error()}
		}
	case "HistoryFile":
		Settings.HistoryFile = scm.String(a[1])
	case "S3Region":
		Settings.S3Region = scm.String(a[1])
		resetS3()
	case "S3Endpoint":
		Settings.S3Endpoint = scm.String(a[1])
		resetS3()
	case "S3AccessKeyID":
		Settings.S3AccessKeyID = scm.String(a[1])
		resetS3()
	case "S3SecretAccessKey":
		Settings.S3SecretAccessKey = scm.String(a[1])
		resetS3()
	case "S3ForcePathStyle":
		Settings.S3ForcePathStyle = a[1].Bool()
		resetS3()
	default:
		return scm.NewNil(), &scm.EvalError{Op: "settings", Msg: "unknown setting: " + scm.String(a[0])}
	}
	return scm.NewBool(true), nil
}
