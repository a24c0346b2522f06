package iconset

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"os"
)

// icnsTypes maps iconset entries to the OSTypes that carry PNG payloads.
// 64x64@2x has no slot and is left out, as iconutil does.
var icnsTypes = map[Variant]string{
	{16, 1}:  "icp4",
	{32, 1}:  "icp5",
	{64, 1}:  "icp6",
	{128, 1}: "ic07",
	{256, 1}: "ic08",
	{512, 1}: "ic09",
	{16, 2}:  "ic11",
	{32, 2}:  "ic12",
	{128, 2}: "ic13",
	{256, 2}: "ic14",
	{512, 2}: "ic10",
}

// ICNS writes an Apple icon container without external tools.
type ICNS struct{}

func (ICNS) Name() string      { return "icns" }
func (ICNS) Extension() string { return "icns" }

func (ICNS) Package(ctx context.Context, iconsetDir, out string) error {
	ms, err := scanIconset(iconsetDir)
	if err != nil {
		return err
	}
	var elems []icnsElement
	for _, m := range ms {
		if err := ctx.Err(); err != nil {
			return err
		}
		typ, ok := icnsTypes[m.Variant]
		if !ok {
			continue
		}
		data, err := os.ReadFile(m.path)
		if err != nil {
			return fmt.Errorf("iconset: read %s: %w", m.path, err)
		}
		elems = append(elems, icnsElement{Type: typ, Data: data})
	}
	if len(elems) == 0 {
		return fmt.Errorf("iconset: no ICNS-compatible images in %s", iconsetDir)
	}
	return writeAtomic(out, encodeICNS(elems))
}

type icnsElement struct {
	Type string
	Data []byte
}

// encodeICNS lays out the container: the "icns" magic and total length, then
// per element its OSType, length (including the 8-byte header) and data.
// All lengths are big-endian.
func encodeICNS(elems []icnsElement) []byte {
	total := 8
	for _, e := range elems {
		total += 8 + len(e.Data)
	}
	var buf bytes.Buffer
	buf.Grow(total)
	buf.WriteString("icns")
	binary.Write(&buf, binary.BigEndian, uint32(total))
	for _, e := range elems {
		buf.WriteString(e.Type)
		binary.Write(&buf, binary.BigEndian, uint32(8+len(e.Data)))
		buf.Write(e.Data)
	}
	return buf.Bytes()
}
