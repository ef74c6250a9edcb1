package pipeline

import (
	"fmt"
	"image"

	"github.com/MeKo-Tech/vfxtex/internal/atlas"
	"github.com/MeKo-Tech/vfxtex/internal/texpack"
	"github.com/MeKo-Tech/vfxtex/internal/texture"
)

// DefaultSheetName is the file name of a contact sheet without --name.
const DefaultSheetName = "sheet.png"

// Sheet shelf-packs the textures of entries, which must carry Data, onto one
// contact sheet no wider than maxWidth.
func (g *Generator) Sheet(entries []texpack.Entry, maxWidth int, name string) (Result, error) {
	if len(entries) == 0 {
		return Result{}, fmt.Errorf("no textures to pack")
	}

	imgs := make([]image.Image, len(entries))
	sizes := make([]image.Point, len(entries))
	names := make([]string, len(entries))
	for i, e := range entries {
		img, err := texture.DecodePNG(e.Data)
		if err != nil {
			return Result{}, fmt.Errorf("%s: %w", e.Name, err)
		}
		imgs[i] = img
		sizes[i] = img.Bounds().Size()
		names[i] = e.Name
	}

	packing, err := atlas.ShelfPack(sizes, maxWidth)
	if err != nil {
		return Result{}, err
	}
	sheet, err := atlas.ComposePacked(packing, imgs)
	if err != nil {
		return Result{}, err
	}
	g.log().Info("Packed contact sheet", "textures", len(entries), "width", packing.Width, "height", packing.Height)

	return g.write("sheet", texture.FileName(name, DefaultSheetName), sheet, 1, 1, 0, names)
}
