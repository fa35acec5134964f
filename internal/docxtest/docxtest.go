// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docxtest reads back the body of a written .docx package so tests
// can assert on its paragraphs.
package docxtest

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"testing"
)

// Para is a flattened body paragraph. Text joins the run text with tabs
// as "\t" and breaks as "\n". Bold and Underline are set when any run
// carries the property.
type Para struct {
	Style     string
	Text      string
	Bold      bool
	Underline bool
}

// Paragraphs returns the body paragraphs of the .docx at path.
func Paragraphs(tb testing.TB, path string) []Para {
	tb.Helper()

	zr, err := zip.OpenReader(path)
	if err != nil {
		tb.Fatalf("opening %s: %v", path, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			tb.Fatalf("opening document part: %v", err)
		}
		defer rc.Close()
		paras, err := decode(rc)
		if err != nil {
			tb.Fatalf("decoding document part: %v", err)
		}
		return paras
	}
	tb.Fatalf("%s has no word/document.xml", path)
	return nil
}

func decode(r io.Reader) ([]Para, error) {
	dec := xml.NewDecoder(r)
	var (
		paras      []Para
		cur        Para
		inRPr, inT bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return paras, nil
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				cur = Para{}
			case "pStyle":
				cur.Style = attr(t, "val")
			case "rPr":
				inRPr = true
			case "b":
				if inRPr {
					cur.Bold = true
				}
			case "u":
				if inRPr && attr(t, "val") != "none" {
					cur.Underline = true
				}
			case "t":
				inT = true
			case "tab":
				cur.Text += "\t"
			case "br":
				cur.Text += "\n"
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				paras = append(paras, cur)
			case "rPr":
				inRPr = false
			case "t":
				inT = false
			}
		case xml.CharData:
			if inT {
				cur.Text += string(t)
			}
		}
	}
}

func attr(se xml.StartElement, local string) string {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
