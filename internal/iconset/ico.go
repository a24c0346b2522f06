package iconset

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"os"
)

// maxICOSize is the largest edge an ICO directory entry can describe.
const maxICOSize = 256

// ICO writes a Windows icon container with PNG-compressed entries, one per
// distinct pixel size up to 256.
type ICO struct{}

func (ICO) Name() string      { return "ico" }
func (ICO) Extension() string { return "ico" }

func (ICO) Package(ctx context.Context, iconsetDir, out string) error {
	ms, err := scanIconset(iconsetDir)
	if err != nil {
		return err
	}
	var (
		sizes []int
		pngs  [][]byte
		seen  = map[int]bool{}
	)
	for _, m := range ms {
		if err := ctx.Err(); err != nil {
			return err
		}
		px := m.Pixels()
		if px > maxICOSize || seen[px] {
			continue
		}
		data, err := os.ReadFile(m.path)
		if err != nil {
			return fmt.Errorf("iconset: read %s: %w", m.path, err)
		}
		seen[px] = true
		sizes = append(sizes, px)
		pngs = append(pngs, data)
	}
	if len(sizes) == 0 {
		return fmt.Errorf("iconset: no images of %dpx or less in %s", maxICOSize, iconsetDir)
	}
	return writeAtomic(out, encodeICO(sizes, pngs))
}

// encodeICO builds an ICO file from PNG-encoded images.
func encodeICO(sizes []int, pngs [][]byte) []byte {
	n := len(sizes)
	dataOffset := 6 + n*16 // header + directory entries

	var buf bytes.Buffer
	// Header: reserved, type (1=ICO), count.
	binary.Write(&buf, binary.LittleEndian, [3]uint16{0, 1, uint16(n)})

	// Directory entries.
	offset := uint32(dataOffset)
	for i, size := range sizes {
		w := uint8(size)
		if size >= maxICOSize {
			w = 0
		}
		buf.Write([]byte{w, w, 0, 0})                                 // width, height, palette, reserved
		binary.Write(&buf, binary.LittleEndian, uint16(1))            // color planes
		binary.Write(&buf, binary.LittleEndian, uint16(32))           // bits per pixel
		binary.Write(&buf, binary.LittleEndian, uint32(len(pngs[i]))) // data size
		binary.Write(&buf, binary.LittleEndian, offset)               // data offset
		offset += uint32(len(pngs[i]))
	}

	// Image data.
	for _, p := range pngs {
		buf.Write(p)
	}
	return buf.Bytes()
}
