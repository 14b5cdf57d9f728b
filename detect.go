package arc

import (
	"github.com/meigma/arc/filter"
	"github.com/meigma/arc/tarfmt"
	"github.com/meigma/arc/zipfmt"
)

// Format identifies an archive container format.
type Format int

const (
	// FormatTar is a raw ustar stream.
	FormatTar Format = iota

	// FormatTarGzip is a ustar stream in a gzip envelope.
	FormatTarGzip

	// FormatZip is a PKZIP archive.
	FormatZip
)

func (f Format) String() string {
	switch f {
	case FormatTar:
		return "tar"
	case FormatTarGzip:
		return "tar.gz"
	case FormatZip:
		return "zip"
	default:
		return "unknown"
	}
}

// Detect sniffs an archive format from up to the first 270 bytes: the zip
// local-header magic at offset 0, the ustar magic at offset 257, and
// otherwise gzip-wrapped tar.
func Detect(data []byte) Format {
	if len(data) >= 4 &&
		data[0] == 'P' && data[1] == 'K' && data[2] == 0x03 && data[3] == 0x04 {
		return FormatZip
	}
	if len(data) >= 262 && string(data[257:262]) == "ustar" {
		return FormatTar
	}
	return FormatTarGzip
}

// NewFormat creates an empty archive for a sniffed or chosen format,
// wiring the gzip filter for FormatTarGzip.
func NewFormat(format Format, opts ...Option) *Archive {
	switch format {
	case FormatZip:
		return New(zipfmt.New(), opts...)
	case FormatTarGzip:
		return New(tarfmt.New(), append([]Option{WithFilter(filter.Gzip{})}, opts...)...)
	default:
		return New(tarfmt.New(), opts...)
	}
}

// Open sniffs the format of data and deserializes it into a ready
// container.
func Open(data []byte, opts ...Option) (*Archive, error) {
	a := NewFormat(Detect(data), opts...)
	if err := a.Deserialize(data); err != nil {
		return nil, err
	}
	return a, nil
}
