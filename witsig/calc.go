package witsig

import (
	"sync"

	"go.bytecodealliance.org/wit"
)

// Info is the Canonical ABI layout of one WIT type.
// Offsets is set for records and tuples, indexed by member position.
type Info struct {
	Offsets []uint32
	Size    uint32
	Align   uint32
}

// Calculator computes and memoizes WIT layouts. Safe for concurrent use.
type Calculator struct {
	cache map[*wit.TypeDef]Info
	mu    sync.Mutex
}

func NewCalculator() *Calculator {
	return &Calculator{
		cache: make(map[*wit.TypeDef]Info),
	}
}

func (c *Calculator) Calculate(t wit.Type) Info {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calculate(t)
}

func (c *Calculator) calculate(t wit.Type) Info {
	switch typ := t.(type) {
	case wit.U8, wit.S8, wit.Bool:
		return Info{Size: 1, Align: 1}
	case wit.U16, wit.S16:
		return Info{Size: 2, Align: 2}
	case wit.U32, wit.S32, wit.F32, wit.Char:
		return Info{Size: 4, Align: 4}
	case wit.U64, wit.S64, wit.F64:
		return Info{Size: 8, Align: 8}
	case wit.String:
		return Info{Size: 8, Align: 4} // [ptr: u32, len: u32]
	case *wit.TypeDef:
		return c.calculateTypeDef(typ)
	default:
		return Info{Size: 0, Align: 1}
	}
}

func (c *Calculator) calculateTypeDef(t *wit.TypeDef) Info {
	if cached, ok := c.cache[t]; ok {
		return cached
	}

	var info Info

	switch kind := t.Kind.(type) {
	case *wit.Record:
		types := make([]wit.Type, len(kind.Fields))
		for i, f := range kind.Fields {
			types[i] = f.Type
		}
		info = c.calculateSequence(types)
	case *wit.Tuple:
		info = c.calculateSequence(kind.Types)
	case *wit.Variant:
		info = c.calculateVariant(kind)
	case *wit.Enum:
		size := discriminantSize(len(kind.Cases))
		info = Info{Size: size, Align: size}
	case *wit.List:
		info = Info{Size: 8, Align: 4}
	case *wit.Option:
		info = c.calculatePayload(c.calculate(kind.Type))
	case *wit.Result:
		info = c.calculateResult(kind)
	case *wit.Flags:
		info = calculateFlags(len(kind.Flags))
	case wit.Type:
		info = c.calculate(kind)
	default:
		info = Info{Size: 0, Align: 1}
	}

	c.cache[t] = info
	return info
}

func (c *Calculator) calculateSequence(types []wit.Type) Info {
	if len(types) == 0 {
		return Info{Size: 0, Align: 1}
	}

	offsets := make([]uint32, len(types))
	maxAlign := uint32(1)
	offset := uint32(0)

	for i, typ := range types {
		member := c.calculate(typ)

		offset = alignTo(offset, member.Align)
		offsets[i] = offset

		if member.Align > maxAlign {
			maxAlign = member.Align
		}

		offset += member.Size
	}

	return Info{
		Size:    alignTo(offset, maxAlign),
		Align:   maxAlign,
		Offsets: offsets,
	}
}

func (c *Calculator) calculateVariant(v *wit.Variant) Info {
	if len(v.Cases) == 0 {
		return Info{Size: 0, Align: 1}
	}

	discSize := discriminantSize(len(v.Cases))

	maxAlign := discSize
	maxSize := uint32(0)

	for _, cs := range v.Cases {
		if cs.Type == nil {
			continue
		}
		payload := c.calculate(cs.Type)
		maxAlign = max(maxAlign, payload.Align)
		maxSize = max(maxSize, payload.Size)
	}

	payloadOffset := alignTo(discSize, maxAlign)
	return Info{
		Size:  alignTo(payloadOffset+maxSize, maxAlign),
		Align: maxAlign,
	}
}

// calculatePayload lays out a one-byte discriminant followed by payload.
func (c *Calculator) calculatePayload(payload Info) Info {
	align := max(payload.Align, 1)
	payloadOffset := alignTo(1, align)
	return Info{
		Size:  alignTo(payloadOffset+payload.Size, align),
		Align: align,
	}
}

func (c *Calculator) calculateResult(r *wit.Result) Info {
	ok := Info{Align: 1}
	if r.OK != nil {
		ok = c.calculate(r.OK)
	}
	fail := Info{Align: 1}
	if r.Err != nil {
		fail = c.calculate(r.Err)
	}
	return c.calculatePayload(Info{
		Size:  max(ok.Size, fail.Size),
		Align: max(ok.Align, fail.Align),
	})
}

func calculateFlags(numFlags int) Info {
	switch {
	case numFlags == 0:
		return Info{Size: 0, Align: 1}
	case numFlags <= 8:
		return Info{Size: 1, Align: 1}
	case numFlags <= 16:
		return Info{Size: 2, Align: 2}
	case numFlags <= 32:
		return Info{Size: 4, Align: 4}
	case numFlags <= 64:
		return Info{Size: 8, Align: 8}
	}
	// >64 flags: multiple u32s
	return Info{Size: uint32((numFlags + 31) / 32 * 4), Align: 4}
}
