package stdlib

import "github.com/luasand/luasand/object"

// PackageLibrary builds the `package` library. Script-level module loading
// is covered entirely by the `require` global restricted to the
// libraries the host registers with New (see eval.nativeRequire);
// package.* itself exposes no
// working entry points and every method reports a permission error.
func PackageLibrary() *object.Library {
	lib := object.NewLibrary("package")
	for _, blocked := range []string{"loadlib", "searchpath", "preload", "path", "cpath"} {
		lib.AddMethod(blocked, object.Blocked("package", blocked))
	}
	return lib
}
