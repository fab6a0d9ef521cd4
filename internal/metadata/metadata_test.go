package metadata

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"reflect"
	"testing"

	"pmaconv/pkg/imgutil"
)

func TestInspectPNGWithMetadata(t *testing.T) {
	data, err := buildPNGWithMetadata()
	if err != nil {
		t.Fatalf("build PNG: %v", err)
	}

	findings, err := Inspect(bytes.NewReader(data), imgutil.KindPNG)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	want := Findings{CategoryExif, CategoryText, CategoryTimestamp}
	if !reflect.DeepEqual(findings, want) {
		t.Fatalf("findings = %v, want %v", findings, want)
	}
}

func TestInspectPlainPNG(t *testing.T) {
	data, err := encodePNG()
	if err != nil {
		t.Fatal(err)
	}

	findings, err := Inspect(bytes.NewReader(data), imgutil.KindPNG)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if len(findings) != 0 {
		t.Fatalf("expected no findings, got %v", findings)
	}
}

func TestInspectTruncatedPNG(t *testing.T) {
	data, err := buildPNGWithMetadata()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Inspect(bytes.NewReader(data[:40]), imgutil.KindPNG); err == nil {
		t.Fatalf("expected error for truncated PNG")
	}
}

func TestInspectJPEGWithExif(t *testing.T) {
	findings, err := Inspect(bytes.NewReader(buildJPEGWithExif()), imgutil.KindJPEG)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if !contains(findings, CategoryExif) || !contains(findings, CategoryTimestamp) {
		t.Fatalf("expected EXIF and timestamp, got %v", findings)
	}
	if contains(findings, CategoryGPS) {
		t.Fatalf("unexpected GPS finding: %v", findings)
	}
}

func TestInspectEncodedJPEGWithExif(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	var enc bytes.Buffer
	if err := jpeg.Encode(&enc, img, nil); err != nil {
		t.Fatal(err)
	}
	encoded := enc.Bytes()

	// APP1 goes right after SOI, where cameras put it.
	app1 := buildJPEGWithExif()
	app1 = app1[2 : len(app1)-2]
	data := append([]byte{}, encoded[:2]...)
	data = append(data, app1...)
	data = append(data, encoded[2:]...)

	findings, err := Inspect(bytes.NewReader(data), imgutil.KindJPEG)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if !reflect.DeepEqual(findings, Findings{CategoryExif, CategoryTimestamp}) {
		t.Fatalf("findings = %v", findings)
	}

	if _, err := jpeg.Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("spliced JPEG no longer decodes: %v", err)
	}
}

func TestInspectJPEGWithoutExif(t *testing.T) {
	var enc bytes.Buffer
	if err := jpeg.Encode(&enc, image.NewGray(image.Rect(0, 0, 8, 8)), nil); err != nil {
		t.Fatal(err)
	}
	findings, err := Inspect(bytes.NewReader(enc.Bytes()), imgutil.KindJPEG)
	if err != nil || len(findings) != 0 {
		t.Fatalf("got %v, %v; want nothing", findings, err)
	}
}

func TestInspectUnsupportedKind(t *testing.T) {
	findings, err := Inspect(bytes.NewReader([]byte("GIF89a")), imgutil.KindGIF)
	if err != nil || findings != nil {
		t.Fatalf("got %v, %v; want nothing", findings, err)
	}
}

func contains(findings Findings, category string) bool {
	for _, f := range findings {
		if f == category {
			return true
		}
	}
	return false
}

func buildJPEGWithExif() []byte {
	exifData := append([]byte("Exif\x00\x00"), buildExifTIFF()...)

	var buf bytes.Buffer
	buf.Write([]byte{0xff, 0xd8})
	buf.Write([]byte{0xff, 0xe1})
	_ = binary.Write(&buf, binary.BigEndian, uint16(len(exifData)+2))
	buf.Write(exifData)
	buf.Write([]byte{0xff, 0xd9})
	return buf.Bytes()
}

// buildExifTIFF returns a little-endian TIFF block with Model and DateTime in IFD0.
func buildExifTIFF() []byte {
	var tiff bytes.Buffer
	tiff.Write([]byte{0x49, 0x49, 0x2a, 0x00})
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(8))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(2))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(0x0110))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(2))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(8))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(38))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(0x0132))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(2))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(20))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(46))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(0))
	tiff.Write([]byte("TestCam\x00"))
	tiff.Write([]byte("2024:01:02 03:04:05\x00"))
	return tiff.Bytes()
}

func encodePNG() ([]byte, error) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 0xff, A: 0x80})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildPNGWithMetadata() ([]byte, error) {
	data, err := encodePNG()
	if err != nil {
		return nil, err
	}

	// Insert ancillary chunks right before IEND.
	insertAt := len(data) - 12
	out := append([]byte{}, data[:insertAt]...)
	out = append(out, buildPNGChunk("tEXt", []byte("Comment\x00converted"))...)
	out = append(out, buildPNGChunk("tIME", []byte{0x07, 0xE8, 0x01, 0x02, 0x03, 0x04, 0x05})...)
	out = append(out, buildPNGChunk("eXIf", buildExifTIFF())...)
	out = append(out, data[insertAt:]...)
	return out, nil
}

func buildPNGChunk(chunkType string, data []byte) []byte {
	chunk := make([]byte, 0, 12+len(data))
	chunk = binary.BigEndian.AppendUint32(chunk, uint32(len(data)))
	chunk = append(chunk, chunkType...)
	chunk = append(chunk, data...)
	crc := crc32.ChecksumIEEE(chunk[4:])
	return binary.BigEndian.AppendUint32(chunk, crc)
}
