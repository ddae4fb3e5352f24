package model

// Assembly is the root of one binary's documentation graph. Created once
// per input binary by the Model Builder.
type Assembly struct {
	DocFragment

	Name        string
	Version     string
	DisplayName string

	Namespaces []*Namespace

	// Diagnostics accumulates recoverable per-symbol faults (spec.md §4.3
	// "Failure semantics") rather than aborting the build.
	Diagnostics []Diagnostic
}

// Namespace is materialized only when at least one of its types survives
// accessibility filtering and exclusion rules (invariant §3.2), even
// though traversal recurses into nested namespaces unconditionally.
// FullName is empty for the global namespace.
type Namespace struct {
	DocFragment

	FullName string
	Types    []*Type
}

// Type is a class/interface/struct/enum/delegate/error/other node. The
// enum-specific fields (Flags, UnderlyingType, Values) are only meaningful
// when Kind == TypeKindEnum.
type Type struct {
	DocFragment

	SimpleName       string
	FullName         string
	DisplaySignature string
	Kind             TypeKind

	// AssemblyName is the containing binary's name; for a shadow type
	// (IsExternalReference == true) it names the external vendor binary
	// if known, or is empty.
	AssemblyName string

	BaseTypeDisplayName string
	Interfaces          []string

	Members []*Member

	// IsExternalReference is true iff this type resides in a binary not
	// passed to the loader (invariant §3.3): either a reference-only
	// placeholder used in a parameter/return position, or a shadow type
	// created by the Extension Relocator.
	IsExternalReference bool

	// Enum-only fields.
	Flags          bool
	UnderlyingType *Reference
	Values         []*EnumValue
}

// EnumValue is one named constant of an enum Type, in declared order.
type EnumValue struct {
	DocFragment

	Name         string
	NumericValue string
}

// Member is a method/property/field/event node.
type Member struct {
	DocFragment

	SimpleName    string
	DisplayName   string
	Signature     string
	Kind          MemberKind
	MethodKind    MethodKind // only meaningful when Kind == MemberKindMethod
	Visibility    Visibility
	ReturnTypeDisplayName string
	Parameters    []*Parameter

	// ReturnTypeRef is a reference-only placeholder (never nil when the
	// member has a non-void type: a method/property return, or a field or
	// event type; nil otherwise). It must
	// never carry an expanded Members list (invariant §3.1).
	ReturnTypeRef *Type

	Inherited bool
	Override  bool
	Virtual   bool
	Abstract  bool

	IsExtension bool

	DeclaringTypeName  string
	OverriddenMember   string
	ExtendedTypeName   string
}

// Parameter is one formal parameter of a Member. TypeRef is a
// reference-only placeholder, exactly like Member.ReturnTypeRef.
type Parameter struct {
	DocFragment

	Name            string
	TypeDisplayName string
	Display         string
	Optional        bool
	HasDefault      bool
	DefaultValue    string
	IsParams        bool

	TypeRef *Type
}

// Reference is a resolved or unresolved cross-reference produced by the
// Cross-Reference Resolver (xref/) from a raw cref string.
type Reference struct {
	Raw          string
	Kind         ReferenceKind
	DisplayName  string
	RelativePath string
	Anchor       string
	Resolved     bool

	// Target is a non-owning back-pointer to the node the reference
	// resolved to: *Type, *Member, or *Namespace. Nil when unresolved.
	Target any
}
