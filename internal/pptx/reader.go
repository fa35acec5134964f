// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pptx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/pdiddy/slidescribe/pkg/types"
)

const (
	presentationPart = "ppt/presentation.xml"
	presentationRels = "ppt/_rels/presentation.xml.rels"
	slideRelSuffix   = "/relationships/slide"
)

// Reader opens presentations from the filesystem. The zero value is ready
// to use.
type Reader struct{}

// Open parses the package at path.
func (Reader) Open(path string) (*Deck, error) {
	return Open(path)
}

// Open parses the .pptx package at path. Every failure is returned as a
// *types.SourceReadError; a package that parses always yields a Deck,
// possibly with zero slides.
func Open(path string) (*Deck, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, &types.SourceReadError{Path: path, Err: fmt.Errorf("opening package: %w", err)}
	}
	defer zr.Close()

	deck, err := read(&zr.Reader)
	if err != nil {
		return nil, &types.SourceReadError{Path: path, Err: err}
	}
	deck.Path = path
	return deck, nil
}

func read(zr *zip.Reader) (*Deck, error) {
	parts := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		parts[f.Name] = f
	}

	if parts[presentationPart] == nil {
		return nil, fmt.Errorf("%w: %s missing", types.ErrNotPresentation, presentationPart)
	}

	var pres presentationXML
	if err := decodePart(parts, presentationPart, &pres); err != nil {
		return nil, err
	}

	targets, err := slideTargets(parts)
	if err != nil {
		return nil, err
	}

	deck := &Deck{Slides: make([]Slide, 0, len(pres.SlideIDs))}
	for i, id := range pres.SlideIDs {
		part, ok := targets[id.RelID]
		if !ok {
			return nil, fmt.Errorf("slide relationship %q not found in %s", id.RelID, presentationRels)
		}

		var sx slideXML
		if err := decodePart(parts, part, &sx); err != nil {
			return nil, err
		}

		deck.Slides = append(deck.Slides, Slide{
			Number: i + 1,
			Part:   part,
			Shapes: sx.CSld.Tree.shapes,
		})
	}
	return deck, nil
}

// slideTargets maps relationship IDs of presentation.xml to slide part names.
func slideTargets(parts map[string]*zip.File) (map[string]string, error) {
	if parts[presentationRels] == nil {
		return map[string]string{}, nil
	}

	var rels relationshipsXML
	if err := decodePart(parts, presentationRels, &rels); err != nil {
		return nil, err
	}

	targets := make(map[string]string, len(rels.Rels))
	for _, rel := range rels.Rels {
		if !strings.HasSuffix(rel.Type, slideRelSuffix) || rel.TargetMode == "External" {
			continue
		}
		targets[rel.ID] = resolvePart("ppt", rel.Target)
	}
	return targets, nil
}

// resolvePart turns a relationship target into a part name. Targets are
// relative to the source part's directory unless they start with "/".
func resolvePart(baseDir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Clean(path.Join(baseDir, target))
}

func decodePart(parts map[string]*zip.File, name string, v any) error {
	f := parts[name]
	if f == nil {
		return fmt.Errorf("part %s missing", name)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening %s: %w", name, err)
	}
	defer rc.Close()

	dec := xml.NewDecoder(rc)
	dec.CharsetReader = charset.NewReaderLabel
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("parsing %s: empty part", name)
		}
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}
