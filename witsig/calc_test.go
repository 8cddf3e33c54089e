package witsig

import (
	"sync"
	"testing"

	"go.bytecodealliance.org/wit"
)

func record(types ...wit.Type) *wit.TypeDef {
	fields := make([]wit.Field, len(types))
	for i, t := range types {
		fields[i] = wit.Field{Name: string(rune('a' + i)), Type: t}
	}
	return &wit.TypeDef{Kind: &wit.Record{Fields: fields}}
}

func tuple(types ...wit.Type) *wit.TypeDef {
	return &wit.TypeDef{Kind: &wit.Tuple{Types: types}}
}

func TestCalculatePrimitives(t *testing.T) {
	c := NewCalculator()

	tests := []struct {
		typ   wit.Type
		name  string
		size  uint32
		align uint32
	}{
		{wit.Bool{}, "bool", 1, 1},
		{wit.U8{}, "u8", 1, 1},
		{wit.S16{}, "s16", 2, 2},
		{wit.U32{}, "u32", 4, 4},
		{wit.F32{}, "f32", 4, 4},
		{wit.Char{}, "char", 4, 4},
		{wit.S64{}, "s64", 8, 8},
		{wit.F64{}, "f64", 8, 8},
		{wit.String{}, "string", 8, 4},
		{&wit.TypeDef{Kind: &wit.List{Type: wit.U64{}}}, "list", 8, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			info := c.Calculate(tc.typ)
			if info.Size != tc.size {
				t.Errorf("size: got %d, want %d", info.Size, tc.size)
			}
			if info.Align != tc.align {
				t.Errorf("align: got %d, want %d", info.Align, tc.align)
			}
		})
	}
}

func TestCalculateSequences(t *testing.T) {
	c := NewCalculator()

	tests := []struct {
		typ     wit.Type
		name    string
		offsets []uint32
		size    uint32
		align   uint32
	}{
		{record(), "empty_record", nil, 0, 1},
		{record(wit.U32{}), "single_u32", []uint32{0}, 4, 4},
		{record(wit.U8{}, wit.U32{}, wit.U8{}), "mixed_alignment", []uint32{0, 4, 8}, 12, 4},
		{record(wit.U8{}, wit.U64{}), "u64_alignment", []uint32{0, 8}, 16, 8},
		{record(wit.String{}, wit.U8{}), "string_member", []uint32{0, 8}, 12, 4},
		{tuple(wit.U8{}, wit.U64{}, wit.U8{}), "tuple_mixed", []uint32{0, 8, 16}, 24, 8},
		{record(record(wit.S32{}, wit.S32{}), wit.U8{}), "nested_record", []uint32{0, 8}, 12, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			info := c.Calculate(tc.typ)
			if info.Size != tc.size || info.Align != tc.align {
				t.Errorf("size/align: got %d/%d, want %d/%d", info.Size, info.Align, tc.size, tc.align)
			}
			if len(info.Offsets) != len(tc.offsets) {
				t.Fatalf("offsets: got %v, want %v", info.Offsets, tc.offsets)
			}
			for i := range tc.offsets {
				if info.Offsets[i] != tc.offsets[i] {
					t.Errorf("offset %d: got %d, want %d", i, info.Offsets[i], tc.offsets[i])
				}
			}
		})
	}
}

func TestCalculateTaggedUnions(t *testing.T) {
	c := NewCalculator()

	enumOf := func(n int) wit.Type {
		cases := make([]wit.EnumCase, n)
		for i := range cases {
			cases[i] = wit.EnumCase{Name: "case"}
		}
		return &wit.TypeDef{Kind: &wit.Enum{Cases: cases}}
	}

	tests := []struct {
		typ   wit.Type
		name  string
		size  uint32
		align uint32
	}{
		{enumOf(256), "enum_256", 1, 1},
		{enumOf(257), "enum_257", 2, 2},
		{enumOf(65537), "enum_65537", 4, 4},
		{&wit.TypeDef{Kind: &wit.Option{Type: wit.U8{}}}, "option_u8", 2, 1},
		{&wit.TypeDef{Kind: &wit.Option{Type: wit.U64{}}}, "option_u64", 16, 8},
		{&wit.TypeDef{Kind: &wit.Result{OK: wit.U32{}, Err: wit.String{}}}, "result_u32_string", 12, 4},
		{&wit.TypeDef{Kind: &wit.Result{}}, "result_unit", 1, 1},
		{&wit.TypeDef{Kind: &wit.Variant{}}, "variant_empty", 0, 1},
		{&wit.TypeDef{Kind: &wit.Variant{Cases: []wit.Case{{Name: "a"}, {Name: "b"}}}}, "variant_unit", 1, 1},
		{&wit.TypeDef{Kind: &wit.Variant{Cases: []wit.Case{{Name: "none"}, {Name: "some", Type: wit.U32{}}}}}, "variant_payload", 8, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			info := c.Calculate(tc.typ)
			if info.Size != tc.size {
				t.Errorf("size: got %d, want %d", info.Size, tc.size)
			}
			if info.Align != tc.align {
				t.Errorf("align: got %d, want %d", info.Align, tc.align)
			}
		})
	}
}

func TestCalculateFlags(t *testing.T) {
	tests := []struct {
		numFlags  int
		wantSize  uint32
		wantAlign uint32
	}{
		{0, 0, 1},
		{8, 1, 1},
		{9, 2, 2},
		{17, 4, 4},
		{33, 8, 8},
		{65, 12, 4},
	}

	c := NewCalculator()
	for _, tc := range tests {
		flags := make([]wit.Flag, tc.numFlags)
		for i := range flags {
			flags[i] = wit.Flag{Name: "flag"}
		}
		info := c.Calculate(&wit.TypeDef{Kind: &wit.Flags{Flags: flags}})
		if info.Size != tc.wantSize || info.Align != tc.wantAlign {
			t.Errorf("%d flags: got %d/%d, want %d/%d", tc.numFlags, info.Size, info.Align, tc.wantSize, tc.wantAlign)
		}
	}
}

func TestCalculateConcurrent(t *testing.T) {
	c := NewCalculator()
	shared := record(wit.U8{}, record(wit.U16{}, wit.U64{}))

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if info := c.Calculate(shared); info.Size != 24 {
				t.Errorf("size: got %d, want 24", info.Size)
			}
		}()
	}
	wg.Wait()
}
