package translator

import (
	"schemac/internal/layout"
	"schemac/internal/schema"
)

// preferredListEncoding chooses the densest wire representation usable
// when body's struct type is itself used as a list element.
func preferredListEncoding(body schema.StructBody, top *layout.Top) schema.PreferredListEncoding {
	switch {
	case body.DataWordCount == 0 && body.PointerCount == 1:
		return schema.EncodingPointer
	case body.DataWordCount == 0 && body.PointerCount == 0:
		return schema.EncodingEmpty
	case body.DataWordCount == 1 && body.PointerCount == 0:
		switch top.Holes.FirstWordUsed() {
		case 0:
			return schema.EncodingBit
		case 1, 2, 3:
			return schema.EncodingByte
		case 4:
			return schema.EncodingTwoBytes
		case 5:
			return schema.EncodingFourBytes
		case 6:
			return schema.EncodingEightBytes
		default:
			return schema.EncodingInlineComposite
		}
	default:
		return schema.EncodingInlineComposite
	}
}
