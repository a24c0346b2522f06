package pngenc

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
)

// chunkOverhead is the length, tag and CRC framing around chunk data.
const chunkOverhead = 12

// writeChunk frames data as: length (BE32), tag, data, CRC-32 over tag+data (BE32).
func writeChunk(buf *bytes.Buffer, tag string, data []byte) {
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(data)))
	buf.Write(n[:])

	crc := crc32.NewIEEE()
	crc.Write([]byte(tag))
	crc.Write(data)
	buf.WriteString(tag)
	buf.Write(data)

	binary.BigEndian.PutUint32(n[:], crc.Sum32())
	buf.Write(n[:])
}
