package workloads

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/andybalholm/brotli"
)

func TestNativeOraclesPass(t *testing.T) {
	for _, name := range NativeNames() {
		t.Run(name, func(t *testing.T) {
			fn, err := NativeFunc(name)
			if err != nil {
				t.Fatalf("NativeFunc(%q): %v", name, err)
			}
			if !fn() {
				t.Errorf("%s oracle failed", name)
			}
		})
	}
}

func TestNativeOraclesAreRepeatable(t *testing.T) {
	// Workloads with internal state (hash accumulators, PRNG seeds) must
	// reset themselves; three consecutive runs all verify.
	for _, name := range []string{"crc32", "md5", "tarfind"} {
		fn, err := NativeFunc(name)
		if err != nil {
			t.Fatalf("NativeFunc(%q): %v", name, err)
		}
		for i := 0; i < 3; i++ {
			if !fn() {
				t.Errorf("%s run %d failed", name, i)
			}
		}
	}
}

func TestLCGSequence(t *testing.T) {
	// First values of the BEEBS generator from seed 0.
	r := newLCG(0)
	want := []int{0, 21468, 9988, 22117, 3498}
	for i, w := range want {
		if got := r.next(); got != w {
			t.Errorf("next()[%d] = %d, want %d", i, got, w)
		}
	}
}

func TestNativeFuncUnknown(t *testing.T) {
	if _, err := NativeFunc("fibonacci"); err == nil {
		t.Error("want error for unknown workload")
	}
}

func TestBuiltinPerRuntime(t *testing.T) {
	tests := []struct {
		runtime, name string
		wantBytes     bool
	}{
		{"native", "sum", false},
		{"native", "tarfind", false},
		{"js", "sum", true},
		{"js", "tarfind", true},
		{"lua", "sum", true},
		{"lua", "tarfind", true},
		{"starlark", "sum", true},
		{"starlark", "tarfind", true},
		{"wasm", "sum", true},
		{"bpf", "sum", true},
	}
	for _, tt := range tests {
		w, err := Builtin(tt.runtime, tt.name)
		if err != nil {
			t.Errorf("Builtin(%s, %s): %v", tt.runtime, tt.name, err)
			continue
		}
		if w.Name != tt.name {
			t.Errorf("Builtin(%s, %s).Name = %q", tt.runtime, tt.name, w.Name)
		}
		if tt.wantBytes && len(w.Bytes) == 0 {
			t.Errorf("Builtin(%s, %s) has no payload bytes", tt.runtime, tt.name)
		}
		if !tt.wantBytes && len(w.Bytes) != 0 {
			t.Errorf("Builtin(%s, %s) should carry no bytes", tt.runtime, tt.name)
		}
	}
}

func TestBuiltinUnknown(t *testing.T) {
	if _, err := Builtin("js", "fibonacci"); err == nil {
		t.Error("want error for unknown js workload")
	}
	if _, err := Builtin("forth", "sum"); err == nil {
		t.Error("want error for unknown runtime")
	}
}

func TestFromFilePlain(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.lua")
	src := []byte("function benchmark() return true end\n")
	if err := os.WriteFile(path, src, 0644); err != nil {
		t.Fatal(err)
	}

	w, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if w.Name != "custom" {
		t.Errorf("Name = %q, want custom", w.Name)
	}
	if !bytes.Equal(w.Bytes, src) {
		t.Errorf("Bytes = %q, want source unchanged", w.Bytes)
	}
}

func TestFromFileBrotli(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.lua.br")
	src := []byte("function benchmark() return true end\n")

	var compressed bytes.Buffer
	bw := brotli.NewWriter(&compressed)
	if _, err := bw.Write(src); err != nil {
		t.Fatal(err)
	}
	if err := bw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, compressed.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if w.Name != "custom" {
		t.Errorf("Name = %q, want custom", w.Name)
	}
	if !bytes.Equal(w.Bytes, src) {
		t.Errorf("decompressed bytes = %q, want original source", w.Bytes)
	}
}

func TestFromFileMissing(t *testing.T) {
	if _, err := FromFile(filepath.Join(t.TempDir(), "nope.js")); err == nil {
		t.Error("want error for missing file")
	}
}

func TestNeedsBundling(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"function benchmark() { return true; }", false},
		{"import { lcg } from './rand.js';\nfunction benchmark() {}", true},
		{"  import x from 'y';", true},
		{"// import is mentioned in a comment body only", false},
		{"export { benchmark } from './impl.js';", true},
	}
	for _, tt := range tests {
		if got := needsBundling(tt.src); got != tt.want {
			t.Errorf("needsBundling(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestBundleScriptInlinesImports(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "lib.js")
	entry := filepath.Join(dir, "entry.js")
	if err := os.WriteFile(lib, []byte("export function answer() { return 42; }\n"), 0644); err != nil {
		t.Fatal(err)
	}
	mainSrc := "import { answer } from './lib.js';\nglobalThis.benchmark = function() { return answer() === 42; };\n"
	if err := os.WriteFile(entry, []byte(mainSrc), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := BundleScript(entry)
	if err != nil {
		t.Fatalf("BundleScript: %v", err)
	}
	if !bytes.Contains([]byte(out), []byte("42")) {
		t.Errorf("bundle does not inline the import:\n%s", out)
	}
	if needsBundling(out) {
		t.Errorf("bundle still contains import statements:\n%s", out)
	}
}

func TestWasmPayloadShape(t *testing.T) {
	data, ok := WasmPayload("sum")
	if !ok {
		t.Fatal("no wasm sum payload")
	}
	if !bytes.HasPrefix(data, []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}) {
		t.Error("payload missing wasm magic and version")
	}
	if !bytes.Contains(data, []byte("benchmark")) {
		t.Error("payload does not export benchmark")
	}
	if _, ok := WasmPayload("md5"); ok {
		t.Error("unexpected wasm md5 payload")
	}
}

func TestBPFPayloadShape(t *testing.T) {
	data, ok := BPFPayload("sum")
	if !ok {
		t.Fatal("no bpf sum payload")
	}
	if len(data)%8 != 0 {
		t.Errorf("payload length %d is not instruction-aligned", len(data))
	}
	// The stream ends with an exit instruction.
	if data[len(data)-8] != 0x95 {
		t.Errorf("last opcode = %#x, want exit", data[len(data)-8])
	}
	if _, ok := BPFPayload("md5"); ok {
		t.Error("unexpected bpf md5 payload")
	}
}
