// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pptxtest builds small but valid .pptx packages for tests.
// Slides are described as lists of shape XML fragments produced by the
// helpers in this package.
package pptxtest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	nsP = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsA = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	relSlide = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
)

// Package describes a presentation to build.
type Package struct {
	// Slides holds the shape fragments of each slide in presentation order.
	Slides [][]string

	// FileNumbers optionally names the slide part number for each slide,
	// e.g. {2, 1} stores the first slide as slide2.xml. Defaults to 1..n.
	FileNumbers []int
}

// Bytes returns the zipped package.
func (p Package) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	write := func(name, body string) error {
		w, err := zw.Create(name)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, xml.Header+body)
		return err
	}

	var ids, rels strings.Builder
	for i, shapes := range p.Slides {
		num := i + 1
		if i < len(p.FileNumbers) {
			num = p.FileNumbers[i]
		}
		rid := fmt.Sprintf("rId%d", i+10)
		fmt.Fprintf(&ids, `<p:sldId id="%d" r:id="%s"/>`, 256+i, rid)
		fmt.Fprintf(&rels, `<Relationship Id="%s" Type="%s" Target="slides/slide%d.xml"/>`, rid, relSlide, num)

		if err := write(fmt.Sprintf("ppt/slides/slide%d.xml", num), SlideXML(shapes...)); err != nil {
			return nil, err
		}
	}

	pres := fmt.Sprintf(`<p:presentation xmlns:p="%s" xmlns:r="%s"><p:sldIdLst>%s</p:sldIdLst></p:presentation>`, nsP, nsR, ids.String())
	if err := write("ppt/presentation.xml", pres); err != nil {
		return nil, err
	}
	relsXML := `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` + rels.String() + `</Relationships>`
	if err := write("ppt/_rels/presentation.xml.rels", relsXML); err != nil {
		return nil, err
	}
	if err := write("[Content_Types].xml", `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write stores a package with the given slides at dir/name and returns the path.
func Write(tb testing.TB, dir, name string, slides ...[]string) string {
	tb.Helper()
	return WritePackage(tb, dir, name, Package{Slides: slides})
}

// WritePackage stores p at dir/name and returns the path.
func WritePackage(tb testing.TB, dir, name string, p Package) string {
	tb.Helper()
	data, err := p.Bytes()
	if err != nil {
		tb.Fatalf("building %s: %v", name, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// Slide groups shape fragments into one slide.
func Slide(shapes ...string) []string { return shapes }

// SlideXML returns a complete slide part containing shapes.
func SlideXML(shapes ...string) string {
	return fmt.Sprintf(`<p:sld xmlns:p="%s" xmlns:a="%s" xmlns:r="%s"><p:cSld><p:spTree>`+
		`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`+
		`%s</p:spTree></p:cSld></p:sld>`, nsP, nsA, nsR, strings.Join(shapes, ""))
}

// TextBox returns an auto shape whose text body holds paras.
func TextBox(name string, paras ...string) string {
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="2" name="%s"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`+
		`<p:spPr/><p:txBody><a:bodyPr/><a:lstStyle/>%s</p:txBody></p:sp>`, escape(name), strings.Join(paras, ""))
}

// Placeholder returns a placeholder shape of type phType holding paras.
func Placeholder(name, phType string, paras ...string) string {
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="3" name="%s"/><p:cNvSpPr/><p:nvPr><p:ph type="%s"/></p:nvPr></p:nvSpPr>`+
		`<p:spPr/><p:txBody><a:bodyPr/>%s</p:txBody></p:sp>`, escape(name), phType, strings.Join(paras, ""))
}

// Rect returns an auto shape without a text body.
func Rect(name string) string {
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="4" name="%s"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr/></p:sp>`, escape(name))
}

// Picture returns a picture shape.
func Picture(name string) string {
	return fmt.Sprintf(`<p:pic><p:nvPicPr><p:cNvPr id="5" name="%s"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr>`+
		`<p:blipFill><a:blip r:embed="rId99"/></p:blipFill><p:spPr/></p:pic>`, escape(name))
}

// Table returns a graphic frame holding a one-cell table. Table text is
// not part of any shape's text frame.
func Table(cell string) string {
	return fmt.Sprintf(`<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="6" name="Table"/><p:cNvGraphicFramePr/><p:nvPr/></p:nvGraphicFramePr>`+
		`<a:graphic><a:graphicData><a:tbl><a:tr><a:tc><a:txBody><a:bodyPr/>%s</a:txBody></a:tc></a:tr></a:tbl></a:graphicData></a:graphic></p:graphicFrame>`,
		Para(Run(cell)))
}

// Group returns a group shape containing children.
func Group(name string, children ...string) string {
	return fmt.Sprintf(`<p:grpSp><p:nvGrpSpPr><p:cNvPr id="7" name="%s"/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>%s</p:grpSp>`,
		escape(name), strings.Join(children, ""))
}

// Para returns an a:p element with the given content (runs, breaks, fields).
func Para(content ...string) string {
	return "<a:p>" + strings.Join(content, "") + "</a:p>"
}

// Run returns a run with no run properties.
func Run(text string) string {
	return "<a:r><a:t>" + escape(text) + "</a:t></a:r>"
}

// StyledRun returns a run whose a:rPr carries attrs verbatim, e.g. `b="1" u="sng"`.
func StyledRun(text, attrs string) string {
	return `<a:r><a:rPr lang="en-US" ` + attrs + `/><a:t>` + escape(text) + `</a:t></a:r>`
}

// Break returns a soft line break.
func Break() string { return "<a:br/>" }

// Field returns a text field such as a slide number.
func Field(text string) string {
	return `<a:fld id="{00000000-0000-0000-0000-000000000001}" type="slidenum"><a:t>` + escape(text) + `</a:t></a:fld>`
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
