package layout

import (
	"reflect"
	"testing"
	"unsafe"
)

func TestAlignTo(t *testing.T) {
	tests := []struct {
		offset, align, want uintptr
	}{
		{0, 4, 0},
		{1, 4, 4},
		{4, 4, 4},
		{5, 8, 8},
		{9, 1, 9},
		{7, 0, 7},
	}
	for _, tc := range tests {
		if got := AlignTo(tc.offset, tc.align); got != tc.want {
			t.Errorf("AlignTo(%d, %d) = %d, want %d", tc.offset, tc.align, got, tc.want)
		}
	}
}

func TestCalculate(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		info := Calculate(nil)
		if info.Size != 0 || info.Align != 1 {
			t.Errorf("got size %d align %d, want 0/1", info.Size, info.Align)
		}
	})

	t.Run("mixed_alignment", func(t *testing.T) {
		sig := Signature{MustKind(KindU8), MustKind(KindU32), MustKind(KindU8)}
		info := Calculate(sig)

		want := []uintptr{0, 4, 8}
		for i, off := range want {
			if info.Offsets[i] != off {
				t.Errorf("field %d offset: got %d, want %d", i, info.Offsets[i], off)
			}
		}
		if info.Size != 12 {
			t.Errorf("size: got %d, want 12", info.Size)
		}
		if info.Align != 4 {
			t.Errorf("align: got %d, want 4", info.Align)
		}

		before, trailing := info.Padding(sig)
		if before[1] != 3 || trailing != 3 {
			t.Errorf("padding: before %v trailing %d, want [0 3 0] and 3", before, trailing)
		}
	})

	t.Run("trailing_zero_size", func(t *testing.T) {
		type S struct {
			A uint32
			B struct{}
		}
		sig := Of(reflect.TypeFor[uint32](), reflect.TypeFor[struct{}]())
		info := Calculate(sig)
		if info.Size != unsafe.Sizeof(S{}) {
			t.Errorf("size: got %d, want %d", info.Size, unsafe.Sizeof(S{}))
		}
	})
}

func TestCalculateMatchesCompiler(t *testing.T) {
	type shape struct {
		A bool
		B int64
		C uint16
		D [3]byte
		E string
		F float32
	}
	typ := reflect.TypeFor[shape]()

	types := make([]reflect.Type, typ.NumField())
	for i := range types {
		types[i] = typ.Field(i).Type
	}
	info := Calculate(Of(types...))

	for i := range types {
		if want := typ.Field(i).Offset; info.Offsets[i] != want {
			t.Errorf("field %d: got offset %d, want %d", i, info.Offsets[i], want)
		}
	}
	if info.Size != typ.Size() {
		t.Errorf("size: got %d, want %d", info.Size, typ.Size())
	}
	if info.Align != uintptr(typ.Align()) {
		t.Errorf("align: got %d, want %d", info.Align, typ.Align())
	}
}

func TestDescriptorValidate(t *testing.T) {
	tests := []struct {
		name    string
		d       Descriptor
		wantErr bool
	}{
		{"u32", MustKind(KindU32), false},
		{"bytes", Bytes(16, 8), false},
		{"zero_align", Bytes(4, 0), true},
		{"odd_align", Bytes(6, 3), true},
		{"size_not_multiple", Bytes(6, 4), true},
		{"type_disagrees", Descriptor{Type: reflect.TypeFor[uint64](), Size: 4, Align: 4}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.d.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestSignatureEqual(t *testing.T) {
	a := Of(reflect.TypeFor[int32](), reflect.TypeFor[uint8]())
	b := Of(reflect.TypeFor[int32](), reflect.TypeFor[uint8]())
	c := Of(reflect.TypeFor[uint32](), reflect.TypeFor[uint8]())

	if !a.Equal(b) {
		t.Error("identical signatures should be equal")
	}
	if a.Equal(c) {
		t.Error("signatures with different declared types should differ")
	}
	if a.Equal(a[:1]) {
		t.Error("signatures of different length should differ")
	}
}
