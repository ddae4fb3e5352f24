package builder

import (
	"strings"

	"github.com/relaydocs/docgraph/metadata"
	"github.com/relaydocs/docgraph/model"
)

// groupedMember is one member after accessor pairs (get_X/set_X,
// add_X/remove_X) have been folded into a single property or event entry;
// every other MemberSymbol passes through as its own group of one.
type groupedMember struct {
	name       string
	kind       model.MemberKind
	methodKind model.MethodKind
	visibility model.Visibility
	isStatic   bool
	isAbstract bool
	returnType string
	params     []metadata.ParamSymbol
	hasGetter  bool
	hasSetter  bool
	limitation bool

	// sourceMethodName is the original MethodDef name, used to build the
	// cref lookup key for non-accessor methods/constructors.
	sourceMethodName string
}

func groupMembers(ms []metadata.MemberSymbol) []groupedMember {
	var out []groupedMember
	properties := make(map[string]*groupedMember)
	events := make(map[string]*groupedMember)
	var propOrder, eventOrder []string

	for _, m := range ms {
		switch {
		case m.Kind == "field":
			out = append(out, groupedMember{
				name:                 m.Name,
				kind:                 model.MemberKindField,
				visibility:           parseVisibility(m.Visibility),
				isStatic:             m.IsStatic,
				returnType:           m.ReturnType,
				limitation:           m.Limitation,
				sourceMethodName:     m.Name,
			})

		case m.Kind == "constructor" || m.Kind == "static-constructor":
			mk := model.MethodKindConstructor
			if m.Kind == "static-constructor" {
				mk = model.MethodKindStaticConstructor
			}
			out = append(out, groupedMember{
				name:             m.Name,
				kind:             model.MemberKindMethod,
				methodKind:       mk,
				visibility:       parseVisibility(m.Visibility),
				isStatic:         m.IsStatic,
				isAbstract:       m.IsAbstract,
				returnType:       m.ReturnType,
				params:           m.Parameters,
				limitation:       m.Limitation,
				sourceMethodName: m.Name,
			})

		case m.Kind == "accessor" && (strings.HasPrefix(m.Name, "get_") || strings.HasPrefix(m.Name, "set_")):
			name := strings.TrimPrefix(strings.TrimPrefix(m.Name, "get_"), "set_")
			g, ok := properties[name]
			if !ok {
				g = &groupedMember{name: name, kind: model.MemberKindProperty, methodKind: model.MethodKindAccessor}
				properties[name] = g
				propOrder = append(propOrder, name)
			}
			if strings.HasPrefix(m.Name, "get_") {
				g.hasGetter = true
				g.returnType = m.ReturnType
				g.sourceMethodName = m.Name
				g.visibility = widerVisibility(g.visibility, parseVisibility(m.Visibility))
			} else {
				g.hasSetter = true
				if len(m.Parameters) > 0 {
					g.returnType = firstNonEmpty(g.returnType, m.Parameters[0].TypeName)
				}
				if g.sourceMethodName == "" {
					g.sourceMethodName = m.Name
				}
				g.visibility = widerVisibility(g.visibility, parseVisibility(m.Visibility))
			}
			g.isStatic = g.isStatic || m.IsStatic
			g.limitation = g.limitation || m.Limitation

		case m.Kind == "accessor" && (strings.HasPrefix(m.Name, "add_") || strings.HasPrefix(m.Name, "remove_")):
			name := strings.TrimPrefix(strings.TrimPrefix(m.Name, "add_"), "remove_")
			g, ok := events[name]
			if !ok {
				g = &groupedMember{name: name, kind: model.MemberKindEvent, methodKind: model.MethodKindAccessor}
				events[name] = g
				eventOrder = append(eventOrder, name)
			}
			if len(m.Parameters) > 0 {
				g.returnType = firstNonEmpty(g.returnType, m.Parameters[0].TypeName)
			}
			if g.sourceMethodName == "" {
				g.sourceMethodName = m.Name
			}
			g.visibility = widerVisibility(g.visibility, parseVisibility(m.Visibility))
			g.isStatic = g.isStatic || m.IsStatic
			g.limitation = g.limitation || m.Limitation

		default: // ordinary method, or any other accessor shape (operators, explicit impls)
			mk := model.MethodKindOrdinary
			if m.IsSpecialName && (strings.HasPrefix(m.Name, "op_")) {
				mk = model.MethodKindOperator
			}
			out = append(out, groupedMember{
				name:                 m.Name,
				kind:                 model.MemberKindMethod,
				methodKind:           mk,
				visibility:           parseVisibility(m.Visibility),
				isStatic:             m.IsStatic,
				isAbstract:           m.IsAbstract,
				returnType:           m.ReturnType,
				params:               m.Parameters,
				limitation:           m.Limitation,
				sourceMethodName:     m.Name,
			})
		}
	}

	for _, name := range propOrder {
		out = append(out, *properties[name])
	}
	for _, name := range eventOrder {
		out = append(out, *events[name])
	}
	return out
}

func widerVisibility(a, b model.Visibility) model.Visibility {
	if a == model.VisibilityUnknown {
		return b
	}
	if b == model.VisibilityPublic {
		return b
	}
	return a
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
