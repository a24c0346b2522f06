package pngenc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"appicon/internal/raster"
	"github.com/google/go-cmp/cmp"
)

type chunk struct {
	Tag  string
	Data []byte
}

// readChunks walks a PNG stream after the signature and checks each CRC.
func readChunks(t *testing.T, b []byte) []chunk {
	t.Helper()
	if !bytes.HasPrefix(b, []byte(Signature)) {
		t.Fatalf("missing PNG signature: % x", b[:min(8, len(b))])
	}
	b = b[len(Signature):]
	var chunks []chunk
	for len(b) > 0 {
		if len(b) < chunkOverhead {
			t.Fatalf("truncated chunk: %d bytes left", len(b))
		}
		n := int(binary.BigEndian.Uint32(b[0:4]))
		tag := string(b[4:8])
		data := b[8 : 8+n]
		sum := binary.BigEndian.Uint32(b[8+n : 12+n])
		if want := crc32.ChecksumIEEE(b[4 : 8+n]); sum != want {
			t.Errorf("chunk %s crc = %08x, want %08x", tag, sum, want)
		}
		chunks = append(chunks, chunk{Tag: tag, Data: data})
		b = b[12+n:]
	}
	return chunks
}

func TestEncodeSinglePixel(t *testing.T) {
	got, err := Encode([]byte{255, 0, 0, 255}, 1, 1)
	if err != nil {
		t.Fatal(err)
	}

	wantHead := []byte{
		0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n',
		0, 0, 0, 13, 'I', 'H', 'D', 'R',
		0, 0, 0, 1, // width
		0, 0, 0, 1, // height
		8, 6, 0, 0, 0,
		0x1f, 0x15, 0xc4, 0x89,
	}
	if diff := cmp.Diff(wantHead, got[:len(wantHead)]); diff != "" {
		t.Errorf("signature/IHDR mismatch (-want +got):\n%s", diff)
	}

	wantTail := []byte{0, 0, 0, 0, 'I', 'E', 'N', 'D', 0xae, 0x42, 0x60, 0x82}
	if !bytes.HasSuffix(got, wantTail) {
		t.Errorf("stream does not end with IEND: % x", got[len(got)-12:])
	}

	var tags []string
	for _, c := range readChunks(t, got) {
		tags = append(tags, c.Tag)
	}
	if diff := cmp.Diff([]string{"IHDR", "IDAT", "IEND"}, tags); diff != "" {
		t.Errorf("chunk order mismatch (-want +got):\n%s", diff)
	}

	img, err := png.Decode(bytes.NewReader(got))
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, a := img.At(0, 0).RGBA()
	if r != 0xffff || g != 0 || b != 0 || a != 0xffff {
		t.Errorf("decoded pixel = %d %d %d %d", r, g, b, a)
	}
}

func TestEncodeScanlineFilterBytes(t *testing.T) {
	pix := make([]byte, 3*2*4)
	for i := range pix {
		pix[i] = byte(i + 1)
	}
	got, err := Encode(pix, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	var idat []byte
	for _, c := range readChunks(t, got) {
		if c.Tag == "IDAT" {
			idat = c.Data
		}
	}
	raw, err := inflate(idat)
	if err != nil {
		t.Fatal(err)
	}
	want := append([]byte{0}, pix[:12]...)
	want = append(want, 0)
	want = append(want, pix[12:]...)
	if diff := cmp.Diff(want, raw); diff != "" {
		t.Errorf("raw scanlines mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	const w, h = 4, 4
	pix := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			pix[i] = byte(x * 60)
			pix[i+1] = byte(y * 70)
			pix[i+2] = byte((x + y) * 30)
			pix[i+3] = byte(255 - (x*y)*17)
		}
	}
	// fully transparent pixel with colour must survive unchanged
	copy(pix[4:8], []byte{9, 8, 7, 0})

	b, err := Encode(pix, w, h)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		t.Fatalf("decoded %T, want *image.NRGBA", img)
	}
	if diff := cmp.Diff(pix, nrgba.Pix); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeRenderRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("full-size render")
	}
	r := raster.Renderer{Style: raster.DefaultStyle(), Workers: 4}
	c, err := r.Render(1024)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Encode(c.Pix, c.Width, c.Height)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		t.Fatalf("decoded %T, want *image.NRGBA", img)
	}
	if !bytes.Equal(c.Pix, nrgba.Pix) {
		t.Error("decoded render differs from the canvas")
	}
}

func TestEncodeDeterministic(t *testing.T) {
	c, err := raster.Render(48)
	if err != nil {
		t.Fatal(err)
	}
	a, err := Encode(c.Pix, 48, 48)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Encode(c.Pix, 48, 48)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("encoding the same buffer twice differs")
	}
}

func TestEncodeInvalidDimensions(t *testing.T) {
	tests := []struct {
		name string
		pix  []byte
		w, h int
	}{
		{"zero width", nil, 0, 1},
		{"negative height", make([]byte, 4), 1, -1},
		{"short buffer", make([]byte, 15), 2, 2},
		{"long buffer", make([]byte, 17), 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Encode(tt.pix, tt.w, tt.h)
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("error = %v, want ErrInvalidDimensions", err)
			}
			if b != nil {
				t.Error("output produced for invalid input")
			}
		})
	}
}

func TestEncodeImageSubimage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range src.Pix {
		src.Pix[i] = byte(i)
	}
	sub := src.SubImage(image.Rect(1, 1, 3, 3)).(*image.NRGBA)
	b, err := EncodeImage(sub)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	got := img.(*image.NRGBA)
	want := append(append([]byte{}, src.Pix[20:28]...), src.Pix[36:44]...)
	if diff := cmp.Diff(want, got.Pix); diff != "" {
		t.Errorf("subimage mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "icon.png")
	if err := WriteFile(path, []byte{1, 2, 3, 4}, 1, 1); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(b, []byte(Signature)) {
		t.Error("written file is not a PNG")
	}

	bad := filepath.Join(dir, "bad.png")
	if err := WriteFile(bad, []byte{1, 2, 3}, 1, 1); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("error = %v, want ErrInvalidDimensions", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only icon.png", len(entries))
	}
}
