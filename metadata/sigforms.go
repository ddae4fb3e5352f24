package metadata

// Signature calling-convention byte flags (ECMA-335 §II.23.2.1 / .2 / .3).
const (
	sigHasThis  = 0x20
	sigExplicit = 0x40
	sigGeneric  = 0x10
)

const sigFieldTag = 0x06

// decodeFieldSignature decodes a FieldSig blob: a fixed 0x06 tag byte
// followed by the field's type.
func (img *image) decodeFieldSignature(blob []byte) (sigType, bool) {
	if len(blob) == 0 {
		return sigType{displayName: "object", limitation: true}, true
	}
	b := blob
	if b[0] == sigFieldTag {
		b = b[1:]
	}
	t, _, err := img.decodeType(b)
	if err != nil {
		return sigType{displayName: "object", limitation: true}, true
	}
	return t, t.limitation
}

// decodeMethodSignature decodes a MethodDefSig blob into its return type
// and positional parameter list. Parameter names are filled in separately
// from the owning MethodDef's Param row range (fillParamNames).
func (img *image) decodeMethodSignature(blob []byte) (sigType, []ParamSymbol, bool) {
	if len(blob) == 0 {
		return sigType{displayName: "void"}, nil, false
	}
	flags := blob[0]
	cursor := 1
	if flags&sigGeneric != 0 {
		_, n, err := decodeCompressedUint(blob[cursor:])
		if err != nil {
			return sigType{displayName: "object", limitation: true}, nil, true
		}
		cursor += n
	}
	paramCount, n, err := decodeCompressedUint(blob[cursor:])
	if err != nil {
		return sigType{displayName: "object", limitation: true}, nil, true
	}
	cursor += n

	limitation := false
	ret, n, err := img.decodeType(blob[cursor:])
	if err != nil {
		ret = sigType{displayName: "object"}
		limitation = true
	} else {
		cursor += n
		limitation = ret.limitation
	}

	params := make([]ParamSymbol, 0, paramCount)
	for i := uint32(0); i < paramCount; i++ {
		if cursor >= len(blob) {
			limitation = true
			break
		}
		pt, n, err := img.decodeType(blob[cursor:])
		if err != nil {
			limitation = true
			break
		}
		cursor += n
		limitation = limitation || pt.limitation
		params = append(params, ParamSymbol{
			Position:      int(i) + 1,
			TypeName:      pt.displayName,
			CanonicalType: pt.canonicalName,
			IsByRef:       pt.isByRef,
			Limitation:    pt.limitation,
		})
	}

	return ret, params, limitation
}
