package psd

import (
	"fmt"

	"github.com/psdtool/psdkit/internal/edit"
	"github.com/psdtool/psdkit/internal/mmfile"
	"github.com/psdtool/psdkit/internal/reader"
	"github.com/psdtool/psdkit/pkg/types"
)

// Info returns header metadata and section sizes for the image at path.
func Info(path string) (types.DocumentInfo, error) {
	var info types.DocumentInfo
	err := withDocument(path, func(doc *reader.Document) error {
		info = doc.Info()
		return nil
	})
	return info, err
}

// InfoBytes is Info for an already-loaded image.
func InfoBytes(img []byte) (types.DocumentInfo, error) {
	doc, err := reader.Decode(img)
	if err != nil {
		return types.DocumentInfo{}, err
	}
	return doc.Info(), nil
}

// ListLayers enumerates every layer of the image at path, bottom to top.
func ListLayers(path string) ([]types.LayerSummary, error) {
	var out []types.LayerSummary
	err := withDocument(path, func(doc *reader.Document) error {
		out = doc.Summaries()
		return nil
	})
	return out, err
}

// ListLayersBytes is ListLayers for an already-loaded image.
func ListLayersBytes(img []byte) ([]types.LayerSummary, error) {
	doc, err := reader.Decode(img)
	if err != nil {
		return nil, err
	}
	return doc.Summaries(), nil
}

// ListTextLayers enumerates the text layers of the image at path, each with
// every byte-level location its string occupies.
func ListTextLayers(path string) ([]types.TextLayerInfo, error) {
	var out []types.TextLayerInfo
	err := withDocument(path, func(doc *reader.Document) error {
		out = edit.TextLayers(doc)
		return nil
	})
	return out, err
}

// ListTextLayersBytes is ListTextLayers for an already-loaded image.
func ListTextLayersBytes(img []byte) ([]types.TextLayerInfo, error) {
	doc, err := reader.Decode(img)
	if err != nil {
		return nil, err
	}
	return edit.TextLayers(doc), nil
}

// withDocument maps the file at path, decodes it, and runs fn against the
// document before the mapping is released.
func withDocument(path string, fn func(*reader.Document) error) error {
	if !fileExists(path) {
		return fmt.Errorf("image file not found: %s", path)
	}
	img, cleanup, err := mmfile.Map(path)
	if err != nil {
		return fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer cleanup()

	doc, err := reader.Decode(img)
	if err != nil {
		return err
	}
	return fn(doc)
}
