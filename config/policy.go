// Package config loads an optional permission policy that narrows the
// interpreter's default os/io allowlist. Grounded on the teacher's
// std/os.go hardcoded blocklist switch, generalized into YAML-driven
// data so a host can disable e.g. os.time in a deterministic-replay
// setting without recompiling.
package config

import (
	"os"

	"github.com/luasand/luasand/object"
	"gopkg.in/yaml.v3"
)

// Policy names the library methods a host wants blocked beyond the
// interpreter's own built-in sandbox. It only ever removes access —
// there is no way to grant back a method the interpreter blocks itself.
type Policy struct {
	Disable map[string][]string `yaml:"disable"`
}

// Load reads and parses a YAML policy document from path. A missing file
// is not an error: it returns an empty Policy, since policy files are
// optional.
func Load(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Policy{Disable: map[string][]string{}}, nil
	}
	if err != nil {
		return nil, err
	}
	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	if p.Disable == nil {
		p.Disable = map[string][]string{}
	}
	return &p, nil
}

// Apply rewrites the named methods on lib to always report a permission
// error, on top of whatever the library already blocks.
func (p *Policy) Apply(libraries map[string]*object.Library) {
	for libName, methods := range p.Disable {
		lib, ok := libraries[libName]
		if !ok {
			continue
		}
		for _, method := range methods {
			lib.AddMethod(method, object.Blocked(libName, method))
		}
	}
}
