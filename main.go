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
/*
	kajisp - a tiny applicative Lisp

	every list element is evaluated before the head picks the operator
*/
package main

import "os"
import "fmt"
import "flag"
import "time"
import "context"
import "sync/atomic"
import "crypto/rand"
import "github.com/dc0d/onexit"
import "github.com/google/uuid"
import "github.com/fsnotify/fsnotify"
import "github.com/launix-de/kajisp/scm"
import "github.com/launix-de/kajisp/storage"

// IOEnv is the shell's environment: the core operators plus help and settings
var IOEnv scm.Env

// workaround for flags package to allow multiple values
type arrayFlags []string

func (i *arrayFlags) String() string {
	return "dummy"
}

func (i *arrayFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}

func setupIO() {
	// shell operators; the core stays free of them
	IOEnv = scm.Env{
		Vars:  scm.Vars{},
		Outer: &scm.Globalenv,
	}
	scm.DeclareTitle("Shell")
	scm.Declare(&IOEnv, &scm.Declaration{
		Name:         "help",
		Desc:         "Lists all operators or prints help for a specific operator",
		MinParameter: 0,
		MaxParameter: 1,
		Params: []scm.DeclarationParameter{
			scm.DeclarationParameter{Name: "topic", Type: "string", Desc: "operator to print help about"},
		},
		Returns: "nil",
		Fn: func(en *scm.Env, a ...scm.Scmer) (scm.Scmer, error) {
			topic := ""
			if len(a) > 0 {
				topic = scm.String(a[0])
			}
			return scm.NewNil(), scm.Help(en.Output(), en, topic)
		},
	})
	scm.Declare(&IOEnv, &scm.Declaration{
		Name:         "settings",
		Desc:         "reads or changes runtime settings: (settings) lists them, (settings key) reads one, (settings key value) changes one",
		MinParameter: 0,
		MaxParameter: 2,
		Params: []scm.DeclarationParameter{
			scm.DeclarationParameter{Name: "key", Type: "string", Desc: "name of the setting"},
			scm.DeclarationParameter{Name: "value", Type: "any", Desc: "new value"},
		},
		Returns: "any",
		Fn:      storage.ChangeSettings,
	})
}

var failed bool

// runProgram evaluates one program and prints its result or its error
func runProgram(name, source string) {
	result, err := scm.Run(source, &IOEnv)
	if code, ok := scm.IsExit(err); ok {
		exitroutine(code)
	}
	if err != nil {
		failed = true
		fmt.Println("error: " + name + ": " + err.Error())
		return
	}
	fmt.Println("= " + scm.SerializeToString(result))
}

func runFile(name string) {
	source, err := storage.LoadSource(context.Background(), name)
	if err != nil {
		failed = true
		fmt.Println("error:", err)
		return
	}
	runProgram(name, source)
}

// watchFiles reruns a program file whenever it changes on disk
func watchFiles(files []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	for _, f := range files {
		if err := watcher.Add(f); err != nil {
			return err
		}
	}
	fmt.Println("Watching for changes ...")
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			changed := map[string]bool{event.Name: true}
			// flush all other events
		flush:
			for {
				time.Sleep(10 * time.Millisecond) // delay a bit, so we don't read empty files
				select {
				case e := <-watcher.Events:
					changed[e.Name] = true
				default:
					break flush
				}
			}
			for name := range changed {
				fmt.Println("Reloading " + name + " ...")
				runFile(name)
				watcher.Add(name) // text editors rename, so we have to rewatch
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Println("watch error:", err)
		}
	}
}

func main() {
	fmt.Print(`kajisp Copyright (C) 2024   Carl-Philip Hänsch
    This program comes with ABSOLUTELY NO WARRANTY;
    This is free software, and you are welcome to redistribute it
    under certain conditions;

`)

	// trace file names are uuids
	uuid.SetRand(rand.Reader)

	// parse command line options
	var commands arrayFlags
	flag.Var(&commands, "c", "Execute a program given on the command line")

	watch := false
	flag.BoolVar(&watch, "watch", false, "Rerun the program files whenever they change")

	docs := ""
	flag.StringVar(&docs, "doc", "", "Write Markdown documentation of all operators into this folder and exit")

	flag.BoolVar(&storage.Settings.Trace, "trace", storage.Settings.Trace, "Write a trace_<uuid>.json of all operator calls")
	flag.BoolVar(&storage.Settings.TracePrint, "traceprint", storage.Settings.TracePrint, "Print the duration of every operator call")
	flag.StringVar(&storage.Settings.TraceDir, "tracedir", storage.Settings.TraceDir, "Folder for trace files")
	flag.StringVar(&storage.Settings.MaxSourceSize, "maxsource", storage.Settings.MaxSourceSize, "Largest program file that is loaded (e.g. 512KiB, 16MiB)")
	flag.StringVar(&storage.Settings.HistoryFile, "history", storage.Settings.HistoryFile, "History file of the interactive shell")
	flag.StringVar(&storage.Settings.S3Region, "s3-region", storage.Settings.S3Region, "Region for s3:// program files")
	flag.StringVar(&storage.Settings.S3Endpoint, "s3-endpoint", storage.Settings.S3Endpoint, "Endpoint of an S3-compatible store for s3:// program files")
	flag.BoolVar(&storage.Settings.S3ForcePathStyle, "s3-path-style", storage.Settings.S3ForcePathStyle, "Use path-style S3 URLs (MinIO)")
	storage.Settings.S3AccessKeyID = os.Getenv("KAJISP_S3_ACCESS_KEY_ID")
	storage.Settings.S3SecretAccessKey = os.Getenv("KAJISP_S3_SECRET_ACCESS_KEY")

	flag.Parse()
	files := flag.Args()

	setupIO()
	if docs != "" {
		if err := scm.WriteDocumentation(docs); err != nil {
			fmt.Println("error:", err)
			os.Exit(1)
		}
		return
	}
	if err := storage.InitSettings(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}

	// install exit handler: onexit runs the cleanups on a signal, then we leave
	onexit.Register(scm.CloseRepl, storage.ExitPriorityShell) // in case the REPL doesn't exit properly
	exitCode.Store(1)
	go func() {
		<-onexit.Done()
		os.Exit(int(exitCode.Load()))
	}()

	for _, command := range commands {
		fmt.Println("Executing " + command + " ...")
		runProgram("command line", command)
	}
	for _, file := range files {
		fmt.Println("Loading " + file + " ...")
		runFile(file)
	}

	if watch && len(files) > 0 {
		if err := watchFiles(files); err != nil {
			fmt.Println("error:", err)
			failed = true
		}
	} else if len(commands) == 0 && len(files) == 0 {
		fmt.Print("\n    Type (help) to show help\n\n")
		// REPL shell
		err := scm.Repl(&IOEnv, storage.Settings.HistoryFile)
		if code, ok := scm.IsExit(err); ok {
			exitroutine(code)
		}
		if err != nil {
			fmt.Println("error:", err)
			failed = true
		}
	}

	// normal shutdown
	if failed {
		exitroutine(1)
	}
	exitroutine(0)
}

// status of a signal-triggered exit unless exitroutine set another one
var exitCode atomic.Int32

// exitroutine runs all registered exit handlers and terminates the process
func exitroutine(code int) {
	exitCode.Store(int32(code))
	onexit.ForceExit(code)
}
