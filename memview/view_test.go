package memview

import (
	"context"
	stderrors "errors"
	"reflect"
	"strings"
	"testing"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/fieldref"
	"github.com/wippyai/fieldref/errors"
	"github.com/wippyai/fieldref/layout"
	"github.com/wippyai/fieldref/resolver"
	"github.com/wippyai/fieldref/witsig"
)

// memoryModule exports one page of memory as "memory".
var memoryModule = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	0x05, 0x03, 0x01, 0x00, 0x01,
	0x07, 0x0a, 0x01, 0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
}

type header struct {
	Tag   uint8
	Len   uint32
	Flags uint8
}

func newMemory(t *testing.T) api.Memory {
	t.Helper()
	ctx := context.Background()
	r := wazero.NewRuntime(ctx)
	t.Cleanup(func() { r.Close(ctx) })

	mod, err := r.Instantiate(ctx, memoryModule)
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}
	mem := mod.ExportedMemory("memory")
	if mem == nil {
		t.Fatal("memory not exported")
	}
	return mem
}

func headerView(t *testing.T, mem api.Memory) *View {
	t.Helper()
	rec := &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{
		{Name: "tag", Type: wit.U8{}},
		{Name: "len", Type: wit.U32{}},
		{Name: "flags", Type: wit.U8{}},
	}}}
	res, err := witsig.Bind(reflect.TypeFor[header](), rec)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	return New(mem, res)
}

func TestViewReadsGuestValues(t *testing.T) {
	mem := newMemory(t)
	view := headerView(t, mem)

	mem.WriteByte(64, 7)
	mem.WriteUint32Le(68, 0xdeadbeef)
	mem.WriteByte(72, 3)

	inst, err := view.At(64, fieldref.Const)
	if err != nil {
		t.Fatalf("At: %v", err)
	}

	want := []any{uint8(7), uint32(0xdeadbeef), uint8(3)}
	for i, w := range want {
		if got := view.Resolver().Get(inst, i).Interface(); got != w {
			t.Errorf("field %d = %v, want %v", i, got, w)
		}
	}
}

func TestViewWritesGuestMemory(t *testing.T) {
	mem := newMemory(t)
	view := headerView(t, mem)

	ref, err := view.Get(128, 1, fieldref.Mutable)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if err := ref.Set(uint32(42)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got, _ := mem.ReadUint32Le(132); got != 42 {
		t.Errorf("guest u32 at 132 = %d, want 42", got)
	}

	vol, err := view.Get(128, 1, fieldref.Volatile)
	if err != nil {
		t.Fatalf("Get volatile: %v", err)
	}
	if err := fieldref.Store(vol, uint32(43)); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if got, _ := mem.ReadUint32Le(132); got != 43 {
		t.Errorf("guest u32 at 132 = %d, want 43", got)
	}

	ro, err := view.Get(128, 1, fieldref.Const)
	if err != nil {
		t.Fatalf("Get const: %v", err)
	}
	if err := ro.Set(uint32(1)); !stderrors.Is(err, &errors.Error{Phase: errors.PhaseAccess, Kind: errors.KindReadOnly}) {
		t.Errorf("Set through const: err = %v, want read_only", err)
	}
}

func TestViewErrors(t *testing.T) {
	mem := newMemory(t)
	view := headerView(t, mem)

	empty, err := resolver.New(reflect.TypeFor[struct{}](), nil)
	if err != nil {
		t.Fatalf("resolver.New: %v", err)
	}
	withPtr, err := resolver.New(reflect.TypeFor[struct {
		P *int
		N uint64
	}](), layout.Of(reflect.TypeFor[*int](), reflect.TypeFor[uint64]()))
	if err != nil {
		t.Fatalf("resolver.New: %v", err)
	}

	tests := []struct {
		run  func() error
		name string
		kind errors.Kind
	}{
		{func() error { _, err := view.At(65, fieldref.Mutable); return err }, "misaligned", errors.KindMisaligned},
		{func() error { _, err := view.At(65536-8, fieldref.Mutable); return err }, "out_of_bounds", errors.KindOutOfBounds},
		{func() error { _, err := view.Get(0, 3, fieldref.Mutable); return err }, "field_index", errors.KindOutOfBounds},
		{func() error { _, err := New(mem, empty).At(0, fieldref.Mutable); return err }, "zero_size", errors.KindUnsupported},
		{func() error { _, err := New(mem, withPtr).Get(8, 0, fieldref.Mutable); return err }, "go_pointer", errors.KindUnsupported},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.run(); !stderrors.Is(err, &errors.Error{Phase: errors.PhaseView, Kind: tc.kind}) {
				t.Errorf("err = %v, want %s", err, tc.kind)
			}
		})
	}
}

func TestPointerPath(t *testing.T) {
	type inner struct {
		A uint32
		S string
	}

	tests := []struct {
		typ  reflect.Type
		name string
		path string
		ok   bool
	}{
		{reflect.TypeFor[header](), "scalars", "", false},
		{reflect.TypeFor[struct{ A [4]uint16 }](), "scalar_array", "", false},
		{reflect.TypeFor[struct{ A [0]*int }](), "empty_pointer_array", "", false},
		{reflect.TypeFor[struct{ A, B uint8; M map[int]int }](), "map", "M", true},
		{reflect.TypeFor[struct{ In [2]inner }](), "nested_string", "In.[].S", true},
		{reflect.TypeFor[struct{ F func() }](), "func", "F", true},
		{reflect.TypeFor[struct{ C chan int }](), "chan", "C", true},
		{reflect.TypeFor[struct{ I any }](), "interface", "I", true},
		{reflect.TypeFor[struct{ B []byte }](), "slice", "B", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path, ok := pointerPath(tc.typ, nil)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if got := strings.Join(path, "."); got != tc.path {
				t.Errorf("path = %q, want %q", got, tc.path)
			}
		})
	}
}
