package xmldoc

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/relaydocs/docgraph/model"
)

// rawElement is one matched element's attributes and raw inner XML.
type rawElement struct {
	attrs map[string]string
	inner string
}

// scanElements walks raw looking for every element named tagName at any
// depth, capturing each one's attributes and byte-exact inner content. A
// tag nested inside another matched tag (an <example> inside a <remarks>)
// is still found, since only matching start elements are skipped over -
// this is intentional: a caller that wants "remarks without its nested
// example" scans remarks first, then strips example out of that capture.
func scanElements(raw []byte, tagName string) ([]rawElement, error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	var out []rawElement
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return out, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != tagName {
			continue
		}
		attrs := make(map[string]string, len(se.Attr))
		for _, a := range se.Attr {
			attrs[a.Name.Local] = a.Value
		}
		start := dec.InputOffset()
		if err := dec.Skip(); err != nil {
			return out, err
		}
		end := dec.InputOffset()
		out = append(out, rawElement{attrs: attrs, inner: stripClosingTag(raw[start:end], tagName)})
	}
	return out, nil
}

func firstInner(raw []byte, tagName string) string {
	els, err := scanElements(raw, tagName)
	if err != nil || len(els) == 0 {
		return ""
	}
	return els[0].inner
}

// stripNested removes every top-level occurrence of tagName from within
// raw's own content, leaving the surrounding markup untouched.
func stripNested(raw []byte, tagName string) string {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	var b strings.Builder
	last := 0
	for {
		pre := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return string(raw)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != tagName {
			continue
		}
		b.Write(raw[last:pre])
		if err := dec.Skip(); err != nil {
			return string(raw)
		}
		last = int(dec.InputOffset())
	}
	b.Write(raw[last:])
	return strings.TrimSpace(b.String())
}

// ParseFragment interprets one <member>'s raw inner XML (as captured by
// Parse) into a DocFragment, and returns the per-parameter doc lookup
// separately since DocFragment itself carries no per-parameter slot - the
// Model Builder attaches each entry to its matching Parameter by name.
func ParseFragment(raw string) (model.DocFragment, map[string]string, []model.Diagnostic) {
	var diags []model.Diagnostic
	data := []byte(raw)

	frag := model.DocFragment{
		Summary: firstInner(data, "summary"),
		Returns: firstInner(data, "returns"),
		Value:   firstInner(data, "value"),
	}

	remarksRaw := firstInner(data, "remarks")
	frag.Remarks = stripNested([]byte(remarksRaw), "example")

	if examples, err := scanElements(data, "example"); err == nil && len(examples) > 0 {
		parts := make([]string, 0, len(examples))
		for _, e := range examples {
			parts = append(parts, e.inner)
		}
		frag.Examples = strings.Join(parts, "\n\n")
	} else if err != nil {
		diags = append(diags, model.Diagnostic{Kind: model.DiagnosticXmlParseFailure, Message: err.Error()})
	}

	if exceptions, err := scanElements(data, "exception"); err == nil {
		for _, e := range exceptions {
			typ := exceptionTypeName(e.attrs["cref"])
			if typ == "" {
				continue
			}
			frag.Exceptions = append(frag.Exceptions, model.ExceptionDoc{TypeName: typ, Description: e.inner})
		}
	} else {
		diags = append(diags, model.Diagnostic{Kind: model.DiagnosticXmlParseFailure, Message: err.Error()})
	}

	if typeParams, err := scanElements(data, "typeparam"); err == nil {
		for _, tp := range typeParams {
			frag.TypeParameters = append(frag.TypeParameters, model.TypeParamDoc{
				Name:        tp.attrs["name"],
				Description: tp.inner,
			})
		}
	}

	if seeAlsos, err := scanElements(data, "seealso"); err == nil {
		for _, s := range seeAlsos {
			if cref := s.attrs["cref"]; cref != "" {
				frag.SeeAlso = append(frag.SeeAlso, cref)
			}
		}
	}

	params := make(map[string]string)
	if paramEls, err := scanElements(data, "param"); err == nil {
		for _, p := range paramEls {
			name := p.attrs["name"]
			if name == "" {
				continue
			}
			if _, exists := params[name]; !exists {
				params[name] = p.inner
			}
		}
	}

	return frag, params, diags
}

// exceptionTypeName extracts the last dot-segment of a cref payload after
// its "T:" member-type prefix, e.g. "T:System.ArgumentNullException" ->
// "ArgumentNullException".
func exceptionTypeName(cref string) string {
	if !strings.HasPrefix(cref, "T:") {
		return ""
	}
	cref = strings.TrimPrefix(cref, "T:")
	if idx := strings.LastIndexByte(cref, '.'); idx >= 0 {
		return cref[idx+1:]
	}
	return cref
}
