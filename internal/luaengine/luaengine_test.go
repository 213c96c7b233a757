package luaengine

import (
	"testing"

	"runebench/internal/core"
	"runebench/internal/workloads"
)

func runSource(t *testing.T, src string) (core.Value, error) {
	t.Helper()
	a := New()
	h, err := a.Init()
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer a.Teardown(h)

	p, err := a.Load(h, &core.Workload{Name: "test", Bytes: []byte(src)})
	if err != nil {
		return nil, err
	}
	return a.Execute(h, p)
}

func TestBuiltinWorkloadsVerify(t *testing.T) {
	for _, name := range []string{"sum", "tarfind"} {
		w, err := workloads.Builtin("lua", name)
		if err != nil {
			t.Fatalf("Builtin(lua, %s): %v", name, err)
		}
		v, err := runSource(t, string(w.Bytes))
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if v != true {
			t.Errorf("%s result = %v, want true", name, v)
		}
	}
}

func TestLoadRejectsBadSource(t *testing.T) {
	_, err := runSource(t, "function benchmark( return end")
	if err == nil {
		t.Fatal("want parse error")
	}
	if kind, ok := core.KindOf(err); !ok || kind != core.ParseError {
		t.Errorf("kind = %v, want ParseError", err)
	}
}

func TestExecuteRaisesRuntimeError(t *testing.T) {
	_, err := runSource(t, `function benchmark() error("boom") end`)
	if err == nil {
		t.Fatal("want runtime error")
	}
	if kind, ok := core.KindOf(err); !ok || kind != core.RuntimeError {
		t.Errorf("kind = %v, want RuntimeError", err)
	}
}

func TestExecuteMissingEntryPoint(t *testing.T) {
	_, err := runSource(t, "local x = 1")
	if err == nil {
		t.Fatal("want runtime error for missing benchmark()")
	}
	if kind, ok := core.KindOf(err); !ok || kind != core.RuntimeError {
		t.Errorf("kind = %v, want RuntimeError", err)
	}
}

func TestNonBoolResultPassesThrough(t *testing.T) {
	v, err := runSource(t, "function benchmark() return 42 end")
	if err != nil {
		t.Fatalf("lifecycle: %v", err)
	}
	if _, isBool := v.(bool); isBool {
		t.Errorf("result = %v, want non-bool passthrough", v)
	}
}

func TestFreshStatePerHandle(t *testing.T) {
	// A global set in one handle must not be visible in the next.
	if _, err := runSource(t, "leak = 1\nfunction benchmark() return true end"); err != nil {
		t.Fatalf("first run: %v", err)
	}
	v, err := runSource(t, "function benchmark() return leak == nil end")
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if v != true {
		t.Error("state leaked between handles")
	}
}
