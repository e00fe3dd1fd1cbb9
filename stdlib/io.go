package stdlib

import "github.com/luasand/luasand/object"

// IOLibrary builds the `io` library with every teacher std/io.go method
// name present but blocked: scripts running inside the sandbox have no
// channel to the host's stdin/stdout/stderr outside of the print/error
// globals, so every io.* call reports a permission error rather than
// silently doing nothing or being entirely undefined.
func IOLibrary() *object.Library {
	lib := object.NewLibrary("io")
	for _, blocked := range []string{
		"read", "write", "open", "close", "lines",
		"scanln", "scanf", "input", "scan", "getchar", "putchar",
		"gets", "puts", "sprintf", "flush", "eprintln", "eprintf",
	} {
		lib.AddMethod(blocked, object.Blocked("io", blocked))
	}
	return lib
}
