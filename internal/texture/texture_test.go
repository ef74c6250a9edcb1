package texture

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/vfxtex/internal/pattern"
)

func TestEncode(t *testing.T) {
	value := pattern.BufferFrom([][]float64{{0, 0.5, 1}})
	alpha := pattern.BufferFrom([][]float64{{1, 0.5, 0.999}})

	img, err := Encode(value, alpha, false)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0, G: 0, B: 0, A: 255}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 127, G: 127, B: 127, A: 127}, img.NRGBAAt(1, 0))
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 254}, img.NRGBAAt(2, 0), "channels truncate")

	pre, err := Encode(value, alpha, true)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 63, G: 63, B: 63, A: 127}, pre.NRGBAAt(1, 0))

	_, err = Encode(value, pattern.NewBuffer(2, 1), false)
	require.Error(t, err)
}

func TestWriteAndLoadPNG(t *testing.T) {
	g := pattern.NewGenerator(9)
	value := g.Simplex2D(32, pattern.DefaultNoiseParams(), true)
	img, err := Encode(value, value, false)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "nested", "noise.png")
	res, err := WritePNG(path, img)
	require.NoError(t, err)
	assert.Equal(t, 32, res.Width)
	assert.Positive(t, res.Bytes)

	loaded, err := LoadPNG(path)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 32, 32), loaded.Bounds())

	r, gg, b, a := loaded.At(5, 7).RGBA()
	want := img.NRGBAAt(5, 7)
	assert.Equal(t, uint32(want.A)*0x101, a)
	assert.Equal(t, r, gg)
	assert.Equal(t, gg, b)

	_, err = LoadPNG(filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
}

func TestEncodePNGRoundTrip(t *testing.T) {
	value := pattern.BufferFrom([][]float64{{0, 0.25}, {0.5, 1}})
	opaque := pattern.BufferFrom([][]float64{{1, 1}, {1, 1}})
	img, err := Encode(value, opaque, false)
	require.NoError(t, err)
	data, err := EncodePNG(img)
	require.NoError(t, err)

	decoded, err := DecodePNG(data)
	require.NoError(t, err)
	buf := ToBuffer(decoded)
	assert.InDelta(t, 0, buf.At(0, 0), 1e-9)
	assert.InDelta(t, 63.0/255, buf.At(1, 0), 1e-3)
	assert.InDelta(t, 127.0/255, buf.At(0, 1), 1e-3)
	assert.InDelta(t, 1, buf.At(1, 1), 1e-9)

	_, err = DecodePNG([]byte("not a png"))
	require.Error(t, err)
}

func TestTileTextureWithOffsetsSeamless(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.SetNRGBA(x, y, color.NRGBA{
				R: uint8(10*x + y),
				G: uint8(20*y + x),
				B: uint8(x + 2*y),
				A: 255,
			})
		}
	}

	ref := TileTexture(src, 8, 8, 0, 0)
	left := TileTexture(src, 4, 4, 0, 0)
	right := TileTexture(src, 4, 4, 4, 0)
	bottom := TileTexture(src, 4, 4, 0, 4)

	assertMatchesSubregion(t, left, ref, 0, 0)
	assertMatchesSubregion(t, right, ref, 4, 0)
	assertMatchesSubregion(t, bottom, ref, 0, 4)

	preview := TiledPreview(src, 2)
	assert.Equal(t, image.Rect(0, 0, 8, 8), preview.Bounds())
	assertMatchesSubregion(t, preview, ref, 0, 0)

	assert.Nil(t, TileTexture(nil, 4, 4, 0, 0))
	assert.Nil(t, TileTexture(src, 0, 4, 0, 0))
}

func TestTileTextureNegativeOffsets(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	out := TileTexture(src, 2, 2, -1, -1)
	if got := out.NRGBAAt(0, 0); got.R != 3 || got.G != 3 {
		t.Fatalf("expected wrap to (3,3), got %+v", got)
	}
}

func assertMatchesSubregion(t *testing.T, got, ref *image.NRGBA, offX, offY int) {
	t.Helper()
	b := got.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if got.NRGBAAt(x, y) != ref.NRGBAAt(x+offX, y+offY) {
				t.Fatalf("pixel (%d,%d) mismatch: got %+v, want %+v", x, y, got.NRGBAAt(x, y), ref.NRGBAAt(x+offX, y+offY))
			}
		}
	}
}

func TestRamp(t *testing.T) {
	r, err := ParseRamp("#000000", "#ff8000")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{A: 255}, r.At(0))
	assert.Equal(t, color.NRGBA{R: 255, G: 128, A: 255}, r.At(1))
	assert.Equal(t, r.At(1), r.At(3), "t is clamped")

	value := pattern.BufferFrom([][]float64{{0, 1}})
	alpha := pattern.BufferFrom([][]float64{{1, 0.5}})
	img, err := EncodeTinted(value, alpha, r)
	require.NoError(t, err)
	assert.Equal(t, uint8(127), img.NRGBAAt(1, 0).A)
	assert.Equal(t, uint8(255), img.NRGBAAt(1, 0).R)

	_, err = ParseRamp("orange", "#fff")
	require.Error(t, err)
}

func TestNames(t *testing.T) {
	assert.Equal(t, "noise_fbm_512_tileable.png", NoiseName("fbm", 512))
	assert.Equal(t, "sprite_radial_256.png", SpriteName("radial", 256))
	assert.Equal(t, "ramp_radial_256_2d.png", RampName("radial", 256, false))
	assert.Equal(t, "ramp_horizontal_64_1d.png", RampName("horizontal", 64, true))
	assert.Equal(t, "flipbook_fbm_512_4x4.png", FlipbookName("fbm", 512, 4, 4))
	assert.Equal(t, "volume_simplex_128_16slices.png", VolumeName("simplex", 128, 16))

	assert.Equal(t, "fire.png", FileName("fire", "x.png"))
	assert.Equal(t, "fire.PNG", FileName("fire.PNG", "x.png"))
	assert.Equal(t, "x.png", FileName("", "x.png"))
	assert.Equal(t, filepath.Join("out", "fire.png"), OutputPath("out", "fire", "x.png"))
}
