package std

import "strings"

// NodePrefix is the scheme Node.js accepts in front of builtin module names
const NodePrefix = "node:"

// StandardPackages lists the Node.js builtin modules
var StandardPackages = map[string]bool{
	"assert":              true,
	"async_hooks":         true,
	"buffer":              true,
	"child_process":       true,
	"cluster":             true,
	"console":             true,
	"constants":           true,
	"crypto":              true,
	"dgram":               true,
	"diagnostics_channel": true,
	"dns":                 true,
	"domain":              true,
	"events":              true,
	"fs":                  true,
	"http":                true,
	"http2":               true,
	"https":               true,
	"inspector":           true,
	"module":              true,
	"net":                 true,
	"os":                  true,
	"path":                true,
	"perf_hooks":          true,
	"process":             true,
	"punycode":            true,
	"querystring":         true,
	"readline":            true,
	"repl":                true,
	"stream":              true,
	"string_decoder":      true,
	"sys":                 true,
	"timers":              true,
	"tls":                 true,
	"trace_events":        true,
	"tty":                 true,
	"url":                 true,
	"util":                true,
	"v8":                  true,
	"vm":                  true,
	"wasi":                true,
	"worker_threads":      true,
	"zlib":                true,
}

// IsStandardPackage reports whether a module reference names a Node.js builtin,
// with or without the node: prefix and including subpaths such as fs/promises
func IsStandardPackage(ref string) bool {
	if strings.HasPrefix(ref, NodePrefix) {
		ref = strings.TrimPrefix(ref, NodePrefix)
	}
	if ref == "" {
		return false
	}
	root, _, _ := strings.Cut(ref, "/")
	return StandardPackages[root]
}
