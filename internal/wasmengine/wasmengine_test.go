package wasmengine

import (
	"testing"

	"runebench/internal/core"
	"runebench/internal/workloads"
)

func runBytes(t *testing.T, name string, data []byte) (core.Value, error) {
	t.Helper()
	a := New()
	h, err := a.Init()
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer a.Teardown(h)

	p, err := a.Load(h, &core.Workload{Name: name, Bytes: data})
	if err != nil {
		return nil, err
	}
	return a.Execute(h, p)
}

func TestSumModuleVerifies(t *testing.T) {
	w, err := workloads.Builtin("wasm", "sum")
	if err != nil {
		t.Fatalf("Builtin(wasm, sum): %v", err)
	}
	v, err := runBytes(t, w.Name, w.Bytes)
	if err != nil {
		t.Fatalf("lifecycle: %v", err)
	}
	if v != true {
		t.Errorf("result = %v, want true", v)
	}
}

func TestLoadRejectsCorruptModule(t *testing.T) {
	_, err := runBytes(t, "corrupt", []byte{0x00, 0x61, 0x73, 0x6d, 0xff, 0xff})
	if err == nil {
		t.Fatal("want parse error")
	}
	if kind, ok := core.KindOf(err); !ok || kind != core.ParseError {
		t.Errorf("kind = %v, want ParseError", err)
	}
}

func TestLoadRejectsMissingExport(t *testing.T) {
	// Structurally valid empty module: magic + version only.
	empty := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	_, err := runBytes(t, "empty", empty)
	if err == nil {
		t.Fatal("want parse error for missing benchmark export")
	}
	if kind, ok := core.KindOf(err); !ok || kind != core.ParseError {
		t.Errorf("kind = %v, want ParseError", err)
	}
}
