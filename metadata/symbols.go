package metadata

import "strings"

// TypeDef visibility mask (ECMA-335 §II.23.1.15, low 3 bits of Flags).
const (
	tdVisibilityMask      = 0x00000007
	tdNotPublic           = 0x0
	tdPublic              = 0x1
	tdNestedPublic        = 0x2
	tdNestedPrivate       = 0x3
	tdNestedFamily        = 0x4
	tdNestedAssembly      = 0x5
	tdNestedFamANDAssem   = 0x6
	tdNestedFamORAssem    = 0x7
	tdInterface           = 0x00000020
	tdAbstract            = 0x00000080
	tdSealed              = 0x00000100
)

// MethodDef accessibility mask (ECMA-335 §II.23.1.10, low 3 bits of Flags).
const (
	mdAccessMask     = 0x0007
	mdPrivate        = 0x1
	mdFamANDAssem    = 0x2
	mdAssem          = 0x3
	mdFamily         = 0x4
	mdFamORAssem     = 0x5
	mdPublic         = 0x6
	mdStatic         = 0x0010
	mdAbstract       = 0x0400
	mdSpecialName    = 0x0800
	mdRTSpecialName  = 0x1000
)

// FieldDef accessibility mask (ECMA-335 §II.23.1.5, low 3 bits of Flags).
const (
	fdAccessMask = 0x0007
	fdPrivate    = 0x1
	fdFamANDAssem = 0x2
	fdAssem      = 0x3
	fdFamily     = 0x4
	fdFamORAssem = 0x5
	fdPublic     = 0x6
	fdStatic     = 0x0010
	fdLiteral    = 0x0040
)

// ParamSymbol is one parameter slot decoded from a method signature, paired
// by position with its Param row (if any) for its declared name.
type ParamSymbol struct {
	Name          string
	Position      int
	TypeName      string
	CanonicalType string // ECMA full name, e.g. "System.Int32" - matches XML doc crefs
	IsByRef       bool
	Limitation    bool
}

// MemberSymbol is one field or method row surfaced from a TypeDef's member
// ranges; property and event accessors appear as their get_/set_/add_/
// remove_ methods with Kind "accessor".
type MemberSymbol struct {
	Kind          string // "field", "method", "constructor", "static-constructor", "accessor"
	Name          string
	Visibility    string
	IsStatic      bool
	IsAbstract    bool
	IsSpecialName bool
	ReturnType          string
	ReturnCanonicalType string
	Limitation          bool
	Parameters          []ParamSymbol
}

// EnumValueSymbol is one literal field of an enum TypeDef.
type EnumValueSymbol struct {
	Name  string
	Value int64
}

// TypeSymbol is one TypeDef with its flattened member list.
type TypeSymbol struct {
	Namespace  string
	SimpleName string
	Visibility string
	Kind       string // "class", "interface", "struct", "enum", "delegate"
	BaseType   string
	IsSealed   bool
	IsAbstract bool
	Members    []MemberSymbol
	EnumValues []EnumValueSymbol
}

// AssemblySymbol is the flattened symbol tree for one loaded assembly,
// the Symbol Loader's contract with the Model Builder.
type AssemblySymbol struct {
	Name        string
	Version     string
	Types       []TypeSymbol
	Diagnostics []string // not filled by readSymbols; decode limitations are flagged per member
}

func visibilityName(flags, mask uint32, table map[uint32]string) string {
	if v, ok := table[flags&mask]; ok {
		return v
	}
	return "unknown"
}

var typeVisibility = map[uint32]string{
	tdNotPublic:         "internal",
	tdPublic:            "public",
	tdNestedPublic:      "public",
	tdNestedPrivate:     "private",
	tdNestedFamily:      "protected",
	tdNestedAssembly:    "internal",
	tdNestedFamANDAssem: "protected-and-internal",
	tdNestedFamORAssem:  "protected-or-internal",
}

var methodVisibility = map[uint32]string{
	mdPrivate:     "private",
	mdFamANDAssem: "protected-and-internal",
	mdAssem:       "internal",
	mdFamily:      "protected",
	mdFamORAssem:  "protected-or-internal",
	mdPublic:      "public",
}

var fieldVisibility = map[uint32]string{
	fdPrivate:     "private",
	fdFamANDAssem: "protected-and-internal",
	fdAssem:       "internal",
	fdFamily:      "protected",
	fdFamORAssem:  "protected-or-internal",
	fdPublic:      "public",
}

// readSymbols flattens every decoded table into the Symbol tree. It never
// returns a hard error for a single malformed member: unsupported
// signature shapes degrade to "object" and set the member's (and
// parameter's) Limitation flag, per the Symbol Loader's stated tolerance
// for partial decode failures.
func (img *image) readSymbols() (*AssemblySymbol, error) {
	asm := &AssemblySymbol{}
	if row := img.tables.row(tAssembly, 1); row != nil {
		asm.Name = img.heaps.stringAt(row[7])
		asm.Version = formatAssemblyVersion(row)
	}

	typeDefCount := img.tables.rowCount(tTypeDef)
	for rid := uint32(1); rid <= typeDefCount; rid++ {
		row := img.tables.row(tTypeDef, rid)
		ns := img.heaps.stringAt(row[2])
		name := img.heaps.stringAt(row[1])
		if name == "<Module>" {
			continue
		}
		flags := row[0]
		extends := row[3]

		ts := TypeSymbol{
			Namespace:  ns,
			SimpleName: name,
			Visibility: visibilityName(flags, tdVisibilityMask, typeVisibility),
			IsSealed:   flags&tdSealed != 0,
			IsAbstract: flags&tdAbstract != 0,
		}
		baseName := ""
		if extends != 0 {
			baseName = img.typeDefOrRefName(extends)
		}
		ts.BaseType = baseName

		switch {
		case flags&tdInterface != 0:
			ts.Kind = "interface"
		case baseName == "System.Enum":
			ts.Kind = "enum"
		case baseName == "System.MulticastDelegate" || baseName == "System.Delegate":
			ts.Kind = "delegate"
		case baseName == "System.ValueType":
			ts.Kind = "struct"
		default:
			ts.Kind = "class"
		}

		fieldStart, fieldEnd := img.memberRange(tTypeDef, tField, rid, 4)
		methodStart, methodEnd := img.memberRange(tTypeDef, tMethodDef, rid, 5)

		for frid := fieldStart; frid < fieldEnd; frid++ {
			fr := img.tables.row(tField, frid)
			if fr == nil {
				continue
			}
			fflags := fr[0]
			fname := img.heaps.stringAt(fr[1])
			sig, _ := img.decodeFieldSignature(img.heaps.blobAt(fr[2]))
			if ts.Kind == "enum" && fflags&fdLiteral != 0 {
				ts.EnumValues = append(ts.EnumValues, EnumValueSymbol{Name: fname})
				continue
			}
			if ts.Kind == "enum" && fname == "value__" {
				continue
			}
			ts.Members = append(ts.Members, MemberSymbol{
				Kind:                "field",
				Name:                fname,
				Visibility:          visibilityName(fflags, fdAccessMask, fieldVisibility),
				IsStatic:            fflags&fdStatic != 0,
				ReturnType:          sig.displayName,
				ReturnCanonicalType: sig.canonicalName,
				Limitation:          sig.limitation,
			})
		}

		for mrid := methodStart; mrid < methodEnd; mrid++ {
			mr := img.tables.row(tMethodDef, mrid)
			if mr == nil {
				continue
			}
			mflags := mr[2]
			mname := img.heaps.stringAt(mr[3])
			ret, params, limitation := img.decodeMethodSignature(img.heaps.blobAt(mr[4]))
			paramStart, paramEnd := img.memberRange(tMethodDef, tParam, mrid, 5)
			img.fillParamNames(paramStart, paramEnd, params)

			kind := "method"
			switch {
			case mname == ".ctor":
				kind = "constructor"
			case mname == ".cctor":
				kind = "static-constructor"
			case strings.HasPrefix(mname, "get_"), strings.HasPrefix(mname, "set_"),
				strings.HasPrefix(mname, "add_"), strings.HasPrefix(mname, "remove_"):
				kind = "accessor"
			}

			ts.Members = append(ts.Members, MemberSymbol{
				Kind:                kind,
				Name:                mname,
				Visibility:          visibilityName(uint32(mflags), mdAccessMask, methodVisibility),
				IsStatic:            mflags&mdStatic != 0,
				IsAbstract:          mflags&mdAbstract != 0,
				IsSpecialName:       mflags&mdSpecialName != 0,
				ReturnType:          ret.displayName,
				ReturnCanonicalType: ret.canonicalName,
				Limitation:          limitation || ret.limitation,
				Parameters:          params,
			})
		}

		asm.Types = append(asm.Types, ts)
	}

	return asm, nil
}

// memberRange resolves the half-open [start, end) row range for a TypeDef's
// FieldList/MethodList column, per ECMA-335 §II.22.37: the end is either
// the next TypeDef's own start column or the member table's row count + 1
// for the last TypeDef. parseTableStream stores list columns as tokens, so
// only their row-id part is used here.
func (img *image) memberRange(owner, member tableID, rid uint32, col int) (start, end uint32) {
	row := img.tables.row(owner, rid)
	if row == nil {
		return 1, 1
	}
	_, start = tokenParts(row[col])
	if start == 0 {
		start = 1
	}
	total := img.tables.rowCount(owner)
	if rid < total {
		next := img.tables.row(owner, rid+1)
		_, end = tokenParts(next[col])
		if end == 0 {
			end = start
		}
	} else {
		end = img.tables.rowCount(member) + 1
	}
	return start, end
}

func (img *image) fillParamNames(start, end uint32, params []ParamSymbol) {
	for rid := start; rid < end; rid++ {
		row := img.tables.row(tParam, rid)
		if row == nil {
			break
		}
		seq := row[1]
		if seq == 0 {
			continue // the return-value pseudo-parameter
		}
		if int(seq) > len(params) {
			break
		}
		params[seq-1].Name = img.heaps.stringAt(row[2])
	}
}

func formatAssemblyVersion(row []uint32) string {
	if len(row) < 5 {
		return ""
	}
	return strings.TrimSpace(strings.Join([]string{
		itoa(row[1]), itoa(row[2]), itoa(row[3]), itoa(row[4]),
	}, "."))
}

func itoa(v uint32) string {
	if v == 0 {
		return "0"
	}
	digits := [10]byte{}
	i := len(digits)
	for v > 0 {
		i--
		digits[i] = byte('0' + v%10)
		v /= 10
	}
	return string(digits[i:])
}
