package metadata

// Table IDs from ECMA-335 §II.22. Only a subset is read by symbols.go,
// but the schema registry below covers every table that can
// appear in the #~ stream so that an unmodeled table's rows can still be
// sized and skipped correctly while scanning toward the tables docgraph
// does care about (TypeDef, MethodDef, Field, Param, and friends).
type tableID byte

const (
	tModule                 tableID = 0x00
	tTypeRef                tableID = 0x01
	tTypeDef                tableID = 0x02
	tFieldPtr               tableID = 0x03
	tField                  tableID = 0x04
	tMethodPtr              tableID = 0x05
	tMethodDef              tableID = 0x06
	tParamPtr               tableID = 0x07
	tParam                  tableID = 0x08
	tInterfaceImpl          tableID = 0x09
	tMemberRef              tableID = 0x0A
	tConstant               tableID = 0x0B
	tCustomAttribute        tableID = 0x0C
	tFieldMarshal           tableID = 0x0D
	tDeclSecurity           tableID = 0x0E
	tClassLayout            tableID = 0x0F
	tFieldLayout            tableID = 0x10
	tStandAloneSig          tableID = 0x11
	tEventMap               tableID = 0x12
	tEventPtr               tableID = 0x13
	tEvent                  tableID = 0x14
	tPropertyMap            tableID = 0x15
	tPropertyPtr            tableID = 0x16
	tProperty               tableID = 0x17
	tMethodSemantics        tableID = 0x18
	tMethodImpl             tableID = 0x19
	tModuleRef              tableID = 0x1A
	tTypeSpec               tableID = 0x1B
	tImplMap                tableID = 0x1C
	tFieldRVA               tableID = 0x1D
	tENCLog                 tableID = 0x1E
	tENCMap                 tableID = 0x1F
	tAssembly               tableID = 0x20
	tAssemblyProcessor      tableID = 0x21
	tAssemblyOS             tableID = 0x22
	tAssemblyRef            tableID = 0x23
	tAssemblyRefProcessor   tableID = 0x24
	tAssemblyRefOS          tableID = 0x25
	tFile                   tableID = 0x26
	tExportedType           tableID = 0x27
	tManifestResource       tableID = 0x28
	tNestedClass            tableID = 0x29
	tGenericParam           tableID = 0x2A
	tMethodSpec             tableID = 0x2B
	tGenericParamConstraint tableID = 0x2C

	tableCount = 0x2D
)

// columnKind tags how one row column is encoded in the stream.
type columnKind int

const (
	colUint16 columnKind = iota
	colUint32
	colString
	colGUID
	colBlob
	colSimple // index into exactly one other table
	colCoded  // tagged index into one of several tables
)

type column struct {
	kind  columnKind
	table tableID     // for colSimple
	coded *codedIndex // for colCoded
}

// codedIndex describes one of ECMA-335's tagged coded indexes: a small
// number of tag bits select which table an index refers to, the rest of
// the value is the 1-based row id in that table. tables[i] is the table
// for tag value i; an entry of noTable marks a reserved/unused tag.
type codedIndex struct {
	tables []tableID
}

const noTable tableID = 0xFF

func (c *codedIndex) tagBits() uint {
	n := len(c.tables)
	bits := uint(0)
	for (1 << bits) < n {
		bits++
	}
	if bits == 0 {
		bits = 1
	}
	return bits
}

var (
	codedTypeDefOrRef        = &codedIndex{tables: []tableID{tTypeDef, tTypeRef, tTypeSpec}}
	codedHasConstant         = &codedIndex{tables: []tableID{tField, tParam, tProperty}}
	codedHasCustomAttribute  = &codedIndex{tables: []tableID{
		tMethodDef, tField, tTypeRef, tTypeDef, tParam, tInterfaceImpl, tMemberRef,
		tModule, tDeclSecurity, tProperty, tEvent, tStandAloneSig, tModuleRef,
		tTypeSpec, tAssembly, tAssemblyRef, tFile, tExportedType, tManifestResource,
		tGenericParam, tGenericParamConstraint, tMethodSpec,
	}}
	codedHasFieldMarshal  = &codedIndex{tables: []tableID{tField, tParam}}
	codedHasDeclSecurity  = &codedIndex{tables: []tableID{tTypeDef, tMethodDef, tAssembly}}
	codedMemberRefParent  = &codedIndex{tables: []tableID{tTypeDef, tTypeRef, tModuleRef, tMethodDef, tTypeSpec}}
	codedHasSemantics     = &codedIndex{tables: []tableID{tEvent, tProperty}}
	codedMethodDefOrRef   = &codedIndex{tables: []tableID{tMethodDef, tMemberRef}}
	codedMemberForwarded  = &codedIndex{tables: []tableID{tField, tMethodDef}}
	codedImplementation   = &codedIndex{tables: []tableID{tFile, tAssemblyRef, tExportedType}}
	codedCustomAttrType   = &codedIndex{tables: []tableID{noTable, noTable, tMethodDef, tMemberRef, noTable}}
	codedResolutionScope  = &codedIndex{tables: []tableID{tModule, tModuleRef, tAssemblyRef, tTypeRef}}
	codedTypeOrMethodDef  = &codedIndex{tables: []tableID{tTypeDef, tMethodDef}}
)

// schema is the full ECMA-335 table layout registry, keyed by table ID.
// Every table that can legally appear in a #~ stream must have an entry so
// that an unrecognized-but-present table can still be measured and
// skipped; tables docgraph never reads semantically (ENCLog, AssemblyOS,
// ...) still need a correct byte width to keep the cursor aligned for the
// tables that follow them.
var schema = map[tableID][]column{
	tModule:        {{kind: colUint16}, {kind: colString}, {kind: colGUID}, {kind: colGUID}, {kind: colGUID}},
	tTypeRef:       {{kind: colCoded, coded: codedResolutionScope}, {kind: colString}, {kind: colString}},
	tTypeDef: {
		{kind: colUint32}, {kind: colString}, {kind: colString},
		{kind: colCoded, coded: codedTypeDefOrRef},
		{kind: colSimple, table: tField}, {kind: colSimple, table: tMethodDef},
	},
	tFieldPtr: {{kind: colSimple, table: tField}},
	tField:    {{kind: colUint16}, {kind: colString}, {kind: colBlob}},
	tMethodPtr: {{kind: colSimple, table: tMethodDef}},
	tMethodDef: {
		{kind: colUint32}, {kind: colUint16}, {kind: colUint16},
		{kind: colString}, {kind: colBlob}, {kind: colSimple, table: tParam},
	},
	tParamPtr: {{kind: colSimple, table: tParam}},
	tParam:    {{kind: colUint16}, {kind: colUint16}, {kind: colString}},
	tInterfaceImpl: {
		{kind: colSimple, table: tTypeDef}, {kind: colCoded, coded: codedTypeDefOrRef},
	},
	tMemberRef: {
		{kind: colCoded, coded: codedMemberRefParent}, {kind: colString}, {kind: colBlob},
	},
	tConstant: {
		{kind: colUint16}, {kind: colCoded, coded: codedHasConstant}, {kind: colBlob},
	},
	tCustomAttribute: {
		{kind: colCoded, coded: codedHasCustomAttribute},
		{kind: colCoded, coded: codedCustomAttrType},
		{kind: colBlob},
	},
	tFieldMarshal: {{kind: colCoded, coded: codedHasFieldMarshal}, {kind: colBlob}},
	tDeclSecurity: {
		{kind: colUint16}, {kind: colCoded, coded: codedHasDeclSecurity}, {kind: colBlob},
	},
	tClassLayout: {{kind: colUint16}, {kind: colUint32}, {kind: colSimple, table: tTypeDef}},
	tFieldLayout: {{kind: colUint32}, {kind: colSimple, table: tField}},
	tStandAloneSig: {{kind: colBlob}},
	tEventMap:      {{kind: colSimple, table: tTypeDef}, {kind: colSimple, table: tEvent}},
	tEventPtr:      {{kind: colSimple, table: tEvent}},
	tEvent:         {{kind: colUint16}, {kind: colString}, {kind: colCoded, coded: codedTypeDefOrRef}},
	tPropertyMap:   {{kind: colSimple, table: tTypeDef}, {kind: colSimple, table: tProperty}},
	tPropertyPtr:   {{kind: colSimple, table: tProperty}},
	tProperty:      {{kind: colUint16}, {kind: colString}, {kind: colBlob}},
	tMethodSemantics: {
		{kind: colUint16}, {kind: colSimple, table: tMethodDef}, {kind: colCoded, coded: codedHasSemantics},
	},
	tMethodImpl: {
		{kind: colSimple, table: tTypeDef},
		{kind: colCoded, coded: codedMethodDefOrRef},
		{kind: colCoded, coded: codedMethodDefOrRef},
	},
	tModuleRef: {{kind: colString}},
	tTypeSpec:  {{kind: colBlob}},
	tImplMap: {
		{kind: colUint16}, {kind: colCoded, coded: codedMemberForwarded},
		{kind: colString}, {kind: colSimple, table: tModuleRef},
	},
	tFieldRVA: {{kind: colUint32}, {kind: colSimple, table: tField}},
	tENCLog:   {{kind: colUint32}, {kind: colUint32}},
	tENCMap:   {{kind: colUint32}},
	tAssembly: {
		{kind: colUint32}, {kind: colUint16}, {kind: colUint16}, {kind: colUint16}, {kind: colUint16},
		{kind: colUint32}, {kind: colBlob}, {kind: colString}, {kind: colString},
	},
	tAssemblyProcessor: {{kind: colUint32}},
	tAssemblyOS:        {{kind: colUint32}, {kind: colUint32}, {kind: colUint32}},
	tAssemblyRef: {
		{kind: colUint16}, {kind: colUint16}, {kind: colUint16}, {kind: colUint16},
		{kind: colUint32}, {kind: colBlob}, {kind: colString}, {kind: colString}, {kind: colBlob},
	},
	tAssemblyRefProcessor: {{kind: colUint32}, {kind: colSimple, table: tAssemblyRef}},
	tAssemblyRefOS: {
		{kind: colUint32}, {kind: colUint32}, {kind: colUint32}, {kind: colSimple, table: tAssemblyRef},
	},
	tFile: {{kind: colUint32}, {kind: colString}, {kind: colBlob}},
	tExportedType: {
		{kind: colUint32}, {kind: colUint32}, {kind: colString}, {kind: colString},
		{kind: colCoded, coded: codedImplementation},
	},
	tManifestResource: {
		{kind: colUint32}, {kind: colUint32}, {kind: colString}, {kind: colCoded, coded: codedImplementation},
	},
	tNestedClass: {{kind: colSimple, table: tTypeDef}, {kind: colSimple, table: tTypeDef}},
	tGenericParam: {
		{kind: colUint16}, {kind: colUint16}, {kind: colCoded, coded: codedTypeOrMethodDef}, {kind: colString},
	},
	tMethodSpec: {{kind: colCoded, coded: codedMethodDefOrRef}, {kind: colBlob}},
	tGenericParamConstraint: {
		{kind: colSimple, table: tGenericParam}, {kind: colCoded, coded: codedTypeDefOrRef},
	},
}

// token packs a table ID and 1-based row id the way CLI metadata tokens
// do; a zero rid means "no reference" regardless of table, matching both
// a null simple index and a null coded index.
func token(t tableID, rid uint32) uint32 {
	if rid == 0 {
		return 0
	}
	return uint32(t)<<24 | (rid & 0x00FFFFFF)
}

func tokenParts(tok uint32) (tableID, uint32) {
	if tok == 0 {
		return noTable, 0
	}
	return tableID(tok >> 24), tok & 0x00FFFFFF
}
