package builder

import (
	"strings"

	"github.com/relaydocs/docgraph/metadata"
	"github.com/relaydocs/docgraph/model"
)

func joinNonEmpty(ns, name string) string {
	if ns == "" {
		return name
	}
	return ns + "." + name
}

func typeCanonicalID(ns, simpleName string) string {
	return "T:" + joinNonEmpty(ns, simpleName)
}

func memberCanonicalID(prefix, ns, typeSimpleName, memberName string, params []metadata.ParamSymbol) string {
	name := memberName
	switch memberName {
	case ".ctor":
		name = "#ctor"
	case ".cctor":
		name = "#cctor"
	}
	base := prefix + ":" + joinNonEmpty(ns, typeSimpleName) + "." + name
	if len(params) == 0 {
		return base
	}
	canon := make([]string, len(params))
	for i, p := range params {
		canon[i] = p.CanonicalType
	}
	return base + "(" + strings.Join(canon, ",") + ")"
}

func parseVisibility(s string) model.Visibility {
	switch s {
	case "public":
		return model.VisibilityPublic
	case "internal":
		return model.VisibilityInternal
	case "protected":
		return model.VisibilityProtected
	case "protected-or-internal":
		return model.VisibilityProtectedOrInternal
	case "protected-and-internal":
		return model.VisibilityProtectedAndInternal
	case "private":
		return model.VisibilityPrivate
	default:
		return model.VisibilityUnknown
	}
}

func parseTypeKind(s string) model.TypeKind {
	switch s {
	case "interface":
		return model.TypeKindInterface
	case "struct":
		return model.TypeKindStruct
	case "enum":
		return model.TypeKindEnum
	case "delegate":
		return model.TypeKindDelegate
	default:
		return model.TypeKindClass
	}
}
