package layout

// MaxSize bounds the size of any field and of a whole aggregate.
const MaxSize uintptr = 1 << 30

// Info holds the computed layout of a signature.
type Info struct {
	Offsets []uintptr
	Size    uintptr
	Align   uintptr
}

// AlignTo rounds offset up to a multiple of align.
func AlignTo(offset, align uintptr) uintptr {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}

// Calculate lays out sig using the host platform rules.
func Calculate(sig Signature) Info {
	if len(sig) == 0 {
		return Info{Size: 0, Align: 1}
	}

	offsets := make([]uintptr, len(sig))
	maxAlign := uintptr(1)
	offset := uintptr(0)
	lastZero := false

	for i, d := range sig {
		offset = AlignTo(offset, d.Align)
		offsets[i] = offset

		if d.Align > maxAlign {
			maxAlign = d.Align
		}

		offset += d.Size
		lastZero = d.Size == 0
	}

	// A pointer to a trailing zero-size field must not point past the object.
	if offset > 0 && lastZero {
		offset++
	}

	return Info{
		Offsets: offsets,
		Size:    AlignTo(offset, maxAlign),
		Align:   maxAlign,
	}
}

// Padding returns the padding before each field and after the last one.
func (info Info) Padding(sig Signature) (before []uintptr, trailing uintptr) {
	before = make([]uintptr, len(sig))
	end := uintptr(0)
	for i, d := range sig {
		before[i] = info.Offsets[i] - end
		end = info.Offsets[i] + d.Size
	}
	return before, info.Size - end
}
