package stdlib

import (
	"time"

	"github.com/luasand/luasand/object"
)

// OSLibrary builds the `os` library. Grounded on the teacher's std/os.go
// method set, but cut down to the sandboxed allowlist: only clock/date/
// difftime/time are wired to real behavior. The other names (getenv,
// setenv, unsetenv, execute, exit, args, sleep, getcwd, getpid,
// hostname, user, platform, arch, remove, rename, setlocale, tmpname)
// are kept as named methods so scripts get
// a permission error rather than an undefined-global error, but none of
// them touch the process, filesystem, or environment.
func OSLibrary() *object.Library {
	lib := object.NewLibrary("os")
	lib.AddMethod("clock", osClock)
	lib.AddMethod("date", osDate)
	lib.AddMethod("time", osTime)
	lib.AddMethod("difftime", osDifftime)

	for _, blocked := range []string{
		"getenv", "setenv", "unsetenv", "execute", "exit", "args", "sleep",
		"getcwd", "getpid", "hostname", "user", "platform", "arch",
		"remove", "rename", "setlocale", "tmpname",
	} {
		lib.AddMethod(blocked, object.Blocked("os", blocked))
	}
	return lib
}

var processStart = time.Now()

func osClock(args []object.Value) (object.Value, error) {
	return &object.Float{Value: time.Since(processStart).Seconds()}, nil
}

func osTime(args []object.Value) (object.Value, error) {
	return &object.Integer{Value: time.Now().Unix()}, nil
}

func osDifftime(args []object.Value) (object.Value, error) {
	t2, err := asInteger("os.difftime", args, 0)
	if err != nil {
		return nil, err
	}
	t1, err := asInteger("os.difftime", args, 1)
	if err != nil {
		return nil, err
	}
	return &object.Float{Value: float64(t2 - t1)}, nil
}

// osDate formats the current (or given) time with a time.Format-style
// layout; unlike Lua's strftime-based os.date, this accepts a Go
// reference-time layout since the host has no strftime translator.
func osDate(args []object.Value) (object.Value, error) {
	layout := "Mon Jan 2 15:04:05 2006"
	if len(args) > 0 {
		l, err := asString("os.date", args, 0)
		if err != nil {
			return nil, err
		}
		layout = l
	}
	when := time.Now()
	if len(args) > 1 {
		sec, err := asInteger("os.date", args, 1)
		if err != nil {
			return nil, err
		}
		when = time.Unix(sec, 0)
	}
	return &object.String{Value: when.Format(layout)}, nil
}
