package xmldoc

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Doc is a whole XML documentation file, indexed by each <member>'s
// canonical name attribute (e.g. "M:N.C.Add(System.Int32,System.Int32)").
type Doc struct {
	AssemblyName string
	Members      map[string]string // member name -> raw inner XML, exactly as written
}

// Parse reads a .NET XML documentation file (the <doc><assembly>...
// <members>...</members></doc> shape emitted by every managed compiler)
// and returns the per-member raw XML, unparsed past this point.
func Parse(data []byte) (*Doc, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	doc := &Doc{Members: make(map[string]string)}

	var inAssemblyName bool
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("xmldoc: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "name":
				inAssemblyName = true
			case "member":
				name := attrValue(t, "name")
				start := dec.InputOffset()
				if err := dec.Skip(); err != nil {
					return nil, fmt.Errorf("xmldoc: malformed <member name=%q>: %w", name, err)
				}
				end := dec.InputOffset()
				inner := stripClosingTag(data[start:end], "member")
				if name != "" {
					if _, exists := doc.Members[name]; !exists {
						doc.Members[name] = inner
					}
				}
			}
		case xml.CharData:
			if inAssemblyName {
				doc.AssemblyName = strings.TrimSpace(string(t))
				inAssemblyName = false
			}
		}
	}
	return doc, nil
}

func attrValue(se xml.StartElement, local string) string {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// stripClosingTag removes the trailing "</tagName>" (and any preceding
// whitespace) that dec.Skip leaves attached to the slice it bounds.
func stripClosingTag(raw []byte, tagName string) string {
	close := "</" + tagName
	if idx := bytes.LastIndex(raw, []byte(close)); idx >= 0 {
		raw = raw[:idx]
	}
	return strings.TrimSpace(string(raw))
}
