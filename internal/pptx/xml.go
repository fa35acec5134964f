// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pptx

import (
	"encoding/xml"
	"strings"
)

// lineBreak is how a:br appears in paragraph text.
const lineBreak = "\v"

type presentationXML struct {
	SlideIDs []struct {
		RelID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
}

type relationshipsXML struct {
	Rels []struct {
		ID         string `xml:"Id,attr"`
		Type       string `xml:"Type,attr"`
		Target     string `xml:"Target,attr"`
		TargetMode string `xml:"TargetMode,attr"`
	} `xml:"Relationship"`
}

type slideXML struct {
	CSld struct {
		Tree shapeTree `xml:"spTree"`
	} `xml:"cSld"`
}

type cNvPrXML struct {
	ID   int    `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

type spXML struct {
	NvSpPr struct {
		CNvPr cNvPrXML `xml:"cNvPr"`
		NvPr  struct {
			Ph *struct {
				Type string `xml:"type,attr"`
			} `xml:"ph"`
		} `xml:"nvPr"`
	} `xml:"nvSpPr"`
	TxBody *struct {
		Paras []paragraphXML `xml:"p"`
	} `xml:"txBody"`
}

type rPrXML struct {
	B string `xml:"b,attr"`
	U string `xml:"u,attr"`
}

type runXML struct {
	RPr  *rPrXML `xml:"rPr"`
	Text string  `xml:"t"`
}

type fieldXML struct {
	Text string `xml:"t"`
}

// shapeTree decodes p:spTree and p:grpSp, keeping children in document
// order across element kinds.
type shapeTree struct {
	props  cNvPrXML
	shapes []Shape
}

func (st *shapeTree) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := st.decodeChild(d, t); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (st *shapeTree) decodeChild(d *xml.Decoder, start xml.StartElement) error {
	switch kind := ShapeKind(start.Name.Local); kind {
	case KindShape:
		var sp spXML
		if err := d.DecodeElement(&sp, &start); err != nil {
			return err
		}
		st.shapes = append(st.shapes, sp.shape())
		return nil

	case KindGroup:
		var grp shapeTree
		if err := d.DecodeElement(&grp, &start); err != nil {
			return err
		}
		st.shapes = append(st.shapes, Shape{
			ID:       grp.props.ID,
			Name:     grp.props.Name,
			Kind:     KindGroup,
			Children: grp.shapes,
		})
		return nil

	case KindPicture, KindGraphicFrame, KindConnector, KindContentPart:
		st.shapes = append(st.shapes, Shape{Kind: kind})
		return d.Skip()

	case "nvGrpSpPr":
		var nv struct {
			CNvPr cNvPrXML `xml:"cNvPr"`
		}
		if err := d.DecodeElement(&nv, &start); err != nil {
			return err
		}
		st.props = nv.CNvPr
		return nil

	default:
		return d.Skip()
	}
}

func (sp spXML) shape() Shape {
	s := Shape{
		ID:   sp.NvSpPr.CNvPr.ID,
		Name: sp.NvSpPr.CNvPr.Name,
		Kind: KindShape,
	}
	if ph := sp.NvSpPr.NvPr.Ph; ph != nil {
		s.Placeholder = ph.Type
		if s.Placeholder == "" {
			s.Placeholder = "obj"
		}
	}
	if sp.TxBody != nil {
		tf := &TextFrame{Paragraphs: make([]Paragraph, len(sp.TxBody.Paras))}
		for i, p := range sp.TxBody.Paras {
			tf.Paragraphs[i] = Paragraph(p)
		}
		s.text = tf
	}
	return s
}

// paragraphXML decodes a:p, walking r, br and fld children in order.
type paragraphXML Paragraph

func (p *paragraphXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var text strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "r":
				var r runXML
				if err := d.DecodeElement(&r, &t); err != nil {
					return err
				}
				text.WriteString(r.Text)
				p.Runs = append(p.Runs, r.run())
			case "fld":
				var f fieldXML
				if err := d.DecodeElement(&f, &t); err != nil {
					return err
				}
				text.WriteString(f.Text)
			case "br":
				text.WriteString(lineBreak)
				if err := d.Skip(); err != nil {
					return err
				}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			p.Text = text.String()
			return nil
		}
	}
}

func (r runXML) run() Run {
	run := Run{Text: r.Text}
	if r.RPr != nil {
		run.Bold = parseBool(r.RPr.B)
		run.Underline = parseUnderline(r.RPr.U)
	}
	return run
}

// parseBool reads an xsd:boolean attribute.
func parseBool(v string) Flag {
	switch v {
	case "1", "true":
		return FlagOn
	case "0", "false":
		return FlagOff
	default:
		return FlagUnset
	}
}

// parseUnderline reads ST_TextUnderlineType: "none" is off, any other
// style (sng, dbl, wavy, ...) is on.
func parseUnderline(v string) Flag {
	switch v {
	case "":
		return FlagUnset
	case "none":
		return FlagOff
	default:
		return FlagOn
	}
}
