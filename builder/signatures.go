package builder

import (
	"strings"

	"github.com/relaydocs/docgraph/metadata"
)

// The Model Builder produces three fixed signature forms per spec.md
// §4.3, chosen once here and applied consistently everywhere a member is
// rendered: a compact display form, a detailed member signature, and a
// property-style form that shows which accessors exist.

func paramList(params []metadata.ParamSymbol) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		t := p.TypeName
		if p.IsByRef {
			t = "ref " + t
		}
		if p.Name != "" {
			parts = append(parts, t+" "+p.Name)
		} else {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, ", ")
}

// compactDisplay is the language-like compact form: "Name(type, type)".
func compactDisplay(name string, params []metadata.ParamSymbol) string {
	args := make([]string, 0, len(params))
	for _, p := range params {
		t := p.TypeName
		if p.IsByRef {
			t = "ref " + t
		}
		args = append(args, t)
	}
	return name + "(" + strings.Join(args, ", ") + ")"
}

// detailedSignature includes visibility, modifiers, return type, and
// full parameter list with ref-kinds.
func detailedSignature(visibility string, isStatic, isAbstract bool, returnType, name string, params []metadata.ParamSymbol) string {
	mods := []string{visibility}
	if isStatic {
		mods = append(mods, "static")
	}
	if isAbstract {
		mods = append(mods, "abstract")
	}
	prefix := strings.Join(mods, " ")
	if returnType == "" {
		return prefix + " " + name + "(" + paramList(params) + ")"
	}
	return prefix + " " + returnType + " " + name + "(" + paramList(params) + ")"
}

// constructorSignature omits a return type entirely.
func constructorSignature(visibility string, name string, params []metadata.ParamSymbol) string {
	return visibility + " " + name + "(" + paramList(params) + ")"
}

// propertySignature shows which accessors a property exposes.
func propertySignature(visibility, returnType, name string, hasGetter, hasSetter bool) string {
	accessors := []string{}
	if hasGetter {
		accessors = append(accessors, "get;")
	}
	if hasSetter {
		accessors = append(accessors, "set;")
	}
	return visibility + " " + returnType + " " + name + " { " + strings.Join(accessors, " ") + " }"
}

func fieldSignature(visibility string, isStatic bool, returnType, name string) string {
	if isStatic {
		return visibility + " static " + returnType + " " + name
	}
	return visibility + " " + returnType + " " + name
}

func eventSignature(visibility, returnType, name string) string {
	return visibility + " event " + returnType + " " + name
}
