package stdlib

import "github.com/luasand/luasand/object"

// CoroutineLibrary builds the `coroutine` library. The evaluator has no
// concept of a suspendable call stack, so every method is blocked; the
// library exists only so `coroutine.create` etc. fail with a permission
// error instead of an undefined-global error.
func CoroutineLibrary() *object.Library {
	lib := object.NewLibrary("coroutine")
	for _, blocked := range []string{
		"create", "resume", "yield", "status", "wrap", "isyieldable", "running",
	} {
		lib.AddMethod(blocked, object.Blocked("coroutine", blocked))
	}
	return lib
}
