package runebench

import (
	"fmt"
	"sort"

	"runebench/internal/bpfvm"
	"runebench/internal/core"
	"runebench/internal/jsengine"
	"runebench/internal/luaengine"
	"runebench/internal/nativeengine"
	"runebench/internal/starengine"
	"runebench/internal/wasmengine"
)

// JSBackend reports which JavaScript engine this binary embeds: "quickjs"
// by default, "v8" when built with -tags v8.
const JSBackend = jsengine.BackendName

// newAdapterFactory resolves a runtime name to a factory producing fresh
// adapter instances. memoryLimitMB only affects engines with a heap cap.
func newAdapterFactory(runtime string, memoryLimitMB int) (core.AdapterFactory, error) {
	switch runtime {
	case "native":
		return nativeengine.New, nil
	case "js":
		return func() core.Adapter { return jsengine.New(memoryLimitMB) }, nil
	case "lua":
		return luaengine.New, nil
	case "starlark":
		return starengine.New, nil
	case "wasm":
		return wasmengine.New, nil
	case "bpf":
		return bpfvm.New, nil
	default:
		return nil, fmt.Errorf("unknown runtime %q (have %v)", runtime, Runtimes())
	}
}

// Runtimes lists the selectable runtime names.
func Runtimes() []string {
	names := []string{"native", "js", "lua", "starlark", "wasm", "bpf"}
	sort.Strings(names)
	return names
}
