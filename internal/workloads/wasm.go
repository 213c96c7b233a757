package workloads

// sumWasm is a self-contained WebAssembly module exporting
// `benchmark: [] -> [i32]`. The function adds 0..100 in a loop and
// compares the total against the closed-form 5050, returning 1 on match.
// The module is kept as assembled bytes — workload payloads reach the
// harness as opaque blobs from the packaging pipeline.
var sumWasm = []byte{
	// \0asm, version 1
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	// type section: () -> (i32)
	0x01, 0x05, 0x01, 0x60, 0x00, 0x01, 0x7f,
	// function section: one function of type 0
	0x03, 0x02, 0x01, 0x00,
	// export section: "benchmark" -> func 0
	0x07, 0x0d, 0x01, 0x09,
	'b', 'e', 'n', 'c', 'h', 'm', 'a', 'r', 'k',
	0x00, 0x00,
	// code section: locals (i, sum: i32), loop body
	0x0a, 0x23, 0x01, 0x21, 0x01, 0x02, 0x7f,
	0x03, 0x40, // loop
	0x20, 0x01, //   local.get sum
	0x20, 0x00, //   local.get i
	0x6a,       //   i32.add
	0x21, 0x01, //   local.set sum
	0x20, 0x00, //   local.get i
	0x41, 0x01, //   i32.const 1
	0x6a,       //   i32.add
	0x22, 0x00, //   local.tee i
	0x41, 0xe4, 0x00, // i32.const 100
	0x4c,       //   i32.le_s
	0x0d, 0x00, //   br_if 0
	0x0b, // end loop
	0x20, 0x01, // local.get sum
	0x41, 0xba, 0x27, // i32.const 5050
	0x46, // i32.eq
	0x0b, // end func
}

// WasmPayload returns the module bytes for the named workload.
func WasmPayload(name string) ([]byte, bool) {
	if name == "sum" {
		return sumWasm, true
	}
	return nil, false
}
