// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/gomutex/godocx/wml/ctypes"
)

// corePart is the template's core properties part, replaced on write.
const corePart = "docProps/core.xml"

// runChildren maps tabs to w:tab and CR/LF each to w:br, keeping the
// remaining text in w:t elements.
func runChildren(s string) []ctypes.RunChild {
	var out []ctypes.RunChild
	var buf strings.Builder
	flush := func() {
		if buf.Len() == 0 {
			return
		}
		out = append(out, ctypes.RunChild{Text: ctypes.TextFromString(buf.String())})
		buf.Reset()
	}

	for _, c := range s {
		switch c {
		case '\t':
			flush()
			out = append(out, ctypes.RunChild{Tab: &ctypes.Empty{}})
		case '\n', '\r':
			flush()
			out = append(out, ctypes.RunChild{Break: &ctypes.Break{}})
		default:
			buf.WriteRune(c)
		}
	}
	flush()
	return out
}

type corePropsXML struct {
	XMLName  xml.Name `xml:"cp:coreProperties"`
	NsCP     string   `xml:"xmlns:cp,attr"`
	NsDC     string   `xml:"xmlns:dc,attr"`
	NsDCTerm string   `xml:"xmlns:dcterms,attr"`
	NsXSI    string   `xml:"xmlns:xsi,attr"`
	Title    string   `xml:"dc:title,omitempty"`
	Creator  string   `xml:"dc:creator"`
	Created  w3cdtf   `xml:"dcterms:created"`
	Modified w3cdtf   `xml:"dcterms:modified"`
}

type w3cdtf struct {
	Type  string `xml:"xsi:type,attr"`
	Value string `xml:",chardata"`
}

func newW3CDTF(t time.Time) w3cdtf {
	return w3cdtf{Type: "dcterms:W3CDTF", Value: t.UTC().Format(time.RFC3339)}
}

// coreXML renders the core properties; godocx carries the template's
// part through unchanged and has no setter for it.
func (d *Document) coreXML() ([]byte, error) {
	now := d.now()
	core := corePropsXML{
		NsCP:     "http://schemas.openxmlformats.org/package/2006/metadata/core-properties",
		NsDC:     "http://purl.org/dc/elements/1.1/",
		NsDCTerm: "http://purl.org/dc/terms/",
		NsXSI:    "http://www.w3.org/2001/XMLSchema-instance",
		Title:    d.title,
		Creator:  d.creator,
		Created:  newW3CDTF(now),
		Modified: newW3CDTF(now),
	}
	out, err := xml.Marshal(core)
	if err != nil {
		return nil, fmt.Errorf("marshaling core properties: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}
