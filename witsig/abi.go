package witsig

func alignTo(offset, align uint32) uint32 {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}

// discriminantSize: 1 byte for <=256 cases, 2 for <=65536, else 4.
func discriminantSize(numCases int) uint32 {
	if numCases <= 256 {
		return 1
	} else if numCases <= 65536 {
		return 2
	}
	return 4
}
