package metadata

import (
	"fmt"
	"strings"
)

// ECMA-335 §II.23.1.16 element type constants, limited to the subset this
// reader actually interprets.
const (
	etEnd          = 0x00
	etVoid         = 0x01
	etBoolean      = 0x02
	etChar         = 0x03
	etI1           = 0x04
	etU1           = 0x05
	etI2           = 0x06
	etU2           = 0x07
	etI4           = 0x08
	etU4           = 0x09
	etI8           = 0x0a
	etU8           = 0x0b
	etR4           = 0x0c
	etR8           = 0x0d
	etString       = 0x0e
	etPtr          = 0x0f
	etByRef        = 0x10
	etValueType    = 0x11
	etClass        = 0x12
	etVar          = 0x13
	etArray        = 0x14
	etGenericInst  = 0x15
	etTypedByRef   = 0x16
	etI            = 0x18
	etU            = 0x19
	etFnPtr        = 0x1b
	etObject       = 0x1c
	etSZArray      = 0x1d
	etMVar         = 0x1e
	etCModReqd     = 0x1f
	etCModOpt      = 0x20
	etSentinel     = 0x41
	etPinned       = 0x45
)

// canonicalPrimitiveNames gives each primitive element type its ECMA/.NET
// canonical full name, the form XML doc comment cref strings and member
// names use (e.g. "System.Int32"), distinct from primitiveNames' C#
// keyword form ("int") used for display.
var canonicalPrimitiveNames = map[byte]string{
	etVoid:       "System.Void",
	etBoolean:    "System.Boolean",
	etChar:       "System.Char",
	etI1:         "System.SByte",
	etU1:         "System.Byte",
	etI2:         "System.Int16",
	etU2:         "System.UInt16",
	etI4:         "System.Int32",
	etU4:         "System.UInt32",
	etI8:         "System.Int64",
	etU8:         "System.UInt64",
	etR4:         "System.Single",
	etR8:         "System.Double",
	etString:     "System.String",
	etI:          "System.IntPtr",
	etU:          "System.UIntPtr",
	etObject:     "System.Object",
	etTypedByRef: "System.TypedReference",
}

var primitiveNames = map[byte]string{
	etVoid:    "void",
	etBoolean: "bool",
	etChar:    "char",
	etI1:      "sbyte",
	etU1:      "byte",
	etI2:      "short",
	etU2:      "ushort",
	etI4:      "int",
	etU4:      "uint",
	etI8:      "long",
	etU8:      "ulong",
	etR4:      "float",
	etR8:      "double",
	etString:  "string",
	etI:       "IntPtr",
	etU:       "UIntPtr",
	etObject:  "object",
	etTypedByRef: "TypedReference",
}

// sigType is the decoded shape of one type occurrence in a signature blob.
// It intentionally stops short of a full type model: the Model Builder
// turns this into a reference-only placeholder Type, never an expanded one,
// per the parameter/return-type invariant in SPEC_FULL.md §3.
type sigType struct {
	displayName   string
	canonicalName string // ECMA/.NET full name, matches XML doc cref strings
	isByRef       bool
	limitation    bool // true if an unsupported encoding degraded to "object"
}

// decodeType decodes one type from a signature blob starting at b[0],
// returning its display name and the number of bytes consumed.
func (img *image) decodeType(b []byte) (sigType, int, error) {
	if len(b) == 0 {
		return sigType{}, 0, fmt.Errorf("metadata: empty type blob")
	}

	// Skip custom modifiers; they don't change the surfaced display name.
	total := 0
	for len(b) > 0 && (b[0] == etCModReqd || b[0] == etCModOpt) {
		_, n, err := decodeCompressedUint(b[1:])
		if err != nil {
			return sigType{}, 0, err
		}
		b = b[1+n:]
		total += 1 + n
	}
	if len(b) == 0 {
		return sigType{}, 0, fmt.Errorf("metadata: truncated type blob after modifiers")
	}

	et := b[0]
	switch et {
	case etByRef:
		inner, n, err := img.decodeType(b[1:])
		if err != nil {
			return sigType{}, 0, err
		}
		inner.isByRef = true
		return inner, total + 1 + n, nil

	case etPtr:
		inner, n, err := img.decodeType(b[1:])
		if err != nil {
			return sigType{}, 0, err
		}
		return sigType{displayName: inner.displayName + "*", canonicalName: inner.canonicalName + "*"}, total + 1 + n, nil

	case etSZArray:
		inner, n, err := img.decodeType(b[1:])
		if err != nil {
			return sigType{}, 0, err
		}
		return sigType{
			displayName:   inner.displayName + "[]",
			canonicalName: inner.canonicalName + "[]",
			limitation:    inner.limitation,
		}, total + 1 + n, nil

	case etArray:
		// ArrayType: Type ArrayShape. ArrayShape has a rank and per-dimension
		// bounds that don't affect the surfaced display name beyond arity;
		// we report it as a multi-dimensional array without decoding bounds.
		inner, n, err := img.decodeType(b[1:])
		if err != nil {
			return sigType{}, 0, err
		}
		rest := b[1+n:]
		rank, rn, err := decodeCompressedUint(rest)
		if err != nil {
			return sigType{}, 0, err
		}
		rest = rest[rn:]
		consumed := total + 1 + n + rn
		numSizes, sn, err := decodeCompressedUint(rest)
		if err != nil {
			return sigType{}, 0, err
		}
		rest = rest[sn:]
		consumed += sn
		for i := uint32(0); i < numSizes; i++ {
			_, cn, err := decodeCompressedUint(rest)
			if err != nil {
				return sigType{}, 0, err
			}
			rest = rest[cn:]
			consumed += cn
		}
		numLoBounds, ln, err := decodeCompressedUint(rest)
		if err != nil {
			return sigType{}, 0, err
		}
		rest = rest[ln:]
		consumed += ln
		for i := uint32(0); i < numLoBounds; i++ {
			_, cn, err := decodeCompressedInt(rest)
			if err != nil {
				return sigType{}, 0, err
			}
			rest = rest[cn:]
			consumed += cn
		}
		suffix := ""
		if rank > 1 {
			for i := uint32(1); i < rank; i++ {
				suffix += ","
			}
		}
		return sigType{
			displayName:   fmt.Sprintf("%s[%s]", inner.displayName, suffix),
			canonicalName: fmt.Sprintf("%s[%s]", inner.canonicalName, suffix),
			limitation:    inner.limitation,
		}, consumed, nil

	case etValueType, etClass:
		tok, n, err := decodeCompressedUint(b[1:])
		if err != nil {
			return sigType{}, 0, err
		}
		name := img.typeDefOrRefName(decodeTypeDefOrRefToken(tok))
		return sigType{displayName: name, canonicalName: name}, total + 1 + n, nil

	case etGenericInst:
		// GENERICINST (CLASS|VALUETYPE) TypeDefOrRef GenArgCount Type*
		if len(b) < 2 {
			return sigType{}, 0, fmt.Errorf("metadata: truncated generic instantiation")
		}
		tok, n, err := decodeCompressedUint(b[2:])
		if err != nil {
			return sigType{}, 0, err
		}
		base := img.typeDefOrRefName(decodeTypeDefOrRefToken(tok))
		cursor := 2 + n
		count, cn, err := decodeCompressedUint(b[cursor:])
		if err != nil {
			return sigType{}, 0, err
		}
		cursor += cn
		args := make([]string, 0, count)
		cargs := make([]string, 0, count)
		limitation := false
		for i := uint32(0); i < count; i++ {
			arg, an, err := img.decodeType(b[cursor:])
			if err != nil {
				return sigType{}, 0, err
			}
			args = append(args, arg.displayName)
			cargs = append(cargs, arg.canonicalName)
			limitation = limitation || arg.limitation
			cursor += an
		}
		display := base + "<" + strings.Join(args, ", ") + ">"
		canonical := base + "{" + strings.Join(cargs, ",") + "}"
		return sigType{displayName: display, canonicalName: canonical, limitation: limitation}, total + cursor, nil

	case etVar:
		idx, n, err := decodeCompressedUint(b[1:])
		if err != nil {
			return sigType{}, 0, err
		}
		name := fmt.Sprintf("T%d", idx)
		return sigType{displayName: name, canonicalName: name}, total + 1 + n, nil

	case etMVar:
		idx, n, err := decodeCompressedUint(b[1:])
		if err != nil {
			return sigType{}, 0, err
		}
		name := fmt.Sprintf("TMethod%d", idx)
		return sigType{displayName: name, canonicalName: name}, total + 1 + n, nil

	case etPinned:
		inner, n, err := img.decodeType(b[1:])
		if err != nil {
			return sigType{}, 0, err
		}
		return inner, total + 1 + n, nil

	default:
		if name, ok := primitiveNames[et]; ok {
			return sigType{displayName: name, canonicalName: canonicalPrimitiveNames[et]}, total + 1, nil
		}
		// Function pointers and anything else this
		// reader doesn't model degrade to "object" rather than failing the
		// whole load; the caller records a SignatureDecodeLimitation.
		return sigType{displayName: "object", canonicalName: "System.Object", limitation: true}, total + 1, nil
	}
}

// decodeTypeDefOrRefToken unpacks the 2-bit-tagged TypeDefOrRef coded index
// used inline in signature blobs (distinct from the 4/2-byte coded index
// columns already resolved into tokens by parseTableStream).
func decodeTypeDefOrRefToken(coded uint32) uint32 {
	tag := coded & 0x3
	rid := coded >> 2
	tables := codedTypeDefOrRef.tables
	if int(tag) >= len(tables) {
		return 0
	}
	return token(tables[tag], rid)
}

// typeDefOrRefName resolves a TypeDef/TypeRef/TypeSpec token to a display
// name. TypeSpec (a nested signature) is not re-expanded here: it degrades
// to "object", consistent with decodeType's own limitation handling for
// shapes this reader doesn't model end to end.
func (img *image) typeDefOrRefName(tok uint32) string {
	t, rid := tokenParts(tok)
	switch t {
	case tTypeDef:
		row := img.tables.row(tTypeDef, rid)
		if row == nil {
			return "object"
		}
		ns := img.heaps.stringAt(row[2])
		name := img.heaps.stringAt(row[1])
		if ns == "" {
			return name
		}
		return ns + "." + name
	case tTypeRef:
		row := img.tables.row(tTypeRef, rid)
		if row == nil {
			return "object"
		}
		ns := img.heaps.stringAt(row[2])
		name := img.heaps.stringAt(row[1])
		if ns == "" {
			return name
		}
		return ns + "." + name
	default:
		return "object"
	}
}
