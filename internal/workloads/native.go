package workloads

import "fmt"

// nativeFuncs maps workload names to their ahead-of-time-compiled entry
// points. These are what the native adapter hands out as pre-linked
// programs.
var nativeFuncs = map[string]func() bool{
	"sum":     SumBenchmark,
	"crc32":   CRC32Benchmark,
	"md5":     MD5Benchmark,
	"libud":   LUDBenchmark,
	"tarfind": TarfindBenchmark,
}

// NativeFunc resolves the compiled entry point for a workload name.
func NativeFunc(name string) (func() bool, error) {
	fn, ok := nativeFuncs[name]
	if !ok {
		return nil, fmt.Errorf("no native workload %q", name)
	}
	return fn, nil
}

// NativeNames lists the available compiled workloads in no particular
// order.
func NativeNames() []string {
	names := make([]string, 0, len(nativeFuncs))
	for name := range nativeFuncs {
		names = append(names, name)
	}
	return names
}
