// Package workloads provides the benchmark payloads: ahead-of-time
// compiled Go implementations for the native adapter, and script, module,
// and register-VM renditions of the same oracles for the embedded engines.
// Every workload embeds its own pass/fail condition in its boolean return;
// the harness never inspects workload internals.
package workloads

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"

	"runebench/internal/core"
)

//go:embed assets
var scriptAssets embed.FS

// scriptExt maps a runtime name to the source extension of its workloads.
var scriptExt = map[string]string{
	"js":       ".js",
	"lua":      ".lua",
	"starlark": ".star",
}

// Builtin returns the embedded workload payload for the given runtime.
// Native workloads carry no bytes: their program is the pre-linked Go
// function resolved by the adapter itself.
func Builtin(runtime, name string) (*core.Workload, error) {
	switch runtime {
	case "native":
		if _, err := NativeFunc(name); err != nil {
			return nil, err
		}
		return &core.Workload{Name: name}, nil

	case "js", "lua", "starlark":
		data, err := scriptAssets.ReadFile("assets/" + name + scriptExt[runtime])
		if err != nil {
			return nil, fmt.Errorf("no %s workload for runtime %s", name, runtime)
		}
		return &core.Workload{Name: name, Bytes: data}, nil

	case "wasm":
		data, ok := WasmPayload(name)
		if !ok {
			return nil, fmt.Errorf("no %s workload for runtime wasm", name)
		}
		return &core.Workload{Name: name, Bytes: data}, nil

	case "bpf":
		data, ok := BPFPayload(name)
		if !ok {
			return nil, fmt.Errorf("no %s workload for runtime bpf", name)
		}
		return &core.Workload{Name: name, Bytes: data}, nil

	default:
		return nil, fmt.Errorf("unknown runtime %q", runtime)
	}
}

// FromFile loads workload bytes from an external file, transparently
// decompressing `.br` payloads (the packaging pipeline ships compressed
// blobs) and bundling multi-file JS sources.
func FromFile(path string) (*core.Workload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload %s: %w", path, err)
	}

	name := filepath.Base(path)
	if strings.HasSuffix(name, ".br") {
		data, err = io.ReadAll(brotli.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("decompressing workload %s: %w", path, err)
		}
		name = strings.TrimSuffix(name, ".br")
	}

	if strings.HasSuffix(name, ".js") && needsBundling(string(data)) {
		bundled, err := BundleScript(path)
		if err != nil {
			return nil, fmt.Errorf("bundling workload %s: %w", path, err)
		}
		data = []byte(bundled)
	}

	name = strings.TrimSuffix(name, filepath.Ext(name))
	return &core.Workload{Name: name, Bytes: data}, nil
}
