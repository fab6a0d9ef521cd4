package metadata

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

var pngSignature = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}

// pngChunkCategory maps ancillary chunks the PNG encoder never writes back.
var pngChunkCategory = map[string]string{
	"tEXt": CategoryText,
	"zTXt": CategoryText,
	"iTXt": CategoryText,
	"eXIf": CategoryExif,
	"iCCP": CategoryICC,
	"tIME": CategoryTimestamp,
	"gAMA": CategoryGamma,
}

func scanPNG(r io.Reader, found map[string]bool) error {
	br := bufio.NewReader(r)

	sig := make([]byte, len(pngSignature))
	if _, err := io.ReadFull(br, sig); err != nil {
		return err
	}
	if !bytes.Equal(sig, pngSignature) {
		return errors.New("invalid PNG signature")
	}

	header := make([]byte, 8)
	for {
		if _, err := io.ReadFull(br, header); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		length := binary.BigEndian.Uint32(header[:4])
		chunkName := string(header[4:8])

		if category, ok := pngChunkCategory[chunkName]; ok {
			found[category] = true
		}

		// chunk data plus CRC
		if _, err := io.CopyN(io.Discard, br, int64(length)+4); err != nil {
			return err
		}
		if chunkName == "IEND" {
			return nil
		}
	}
}
