package tarfmt

import (
	"fmt"
	"time"

	"github.com/meigma/arc/internal/arctype"
	"github.com/meigma/arc/tree"
)

// header is one parsed 512-byte record.
type header struct {
	name     string
	mode     int64
	ownerID  int64
	groupID  int64
	size     int64
	modTime  time.Time
	typeFlag byte
	linkName string
	owner    string
	group    string
	devMajor int64
	devMinor int64
}

// Decode scans sequential 512-byte records into the tree. The stream ends
// at two consecutive all-zero blocks or, leniently, at a clean end of
// input on a block boundary.
func (*Codec) Decode(data []byte, root *tree.Directory, _ *arctype.Properties) error {
	off := 0
	for {
		if off == len(data) {
			return nil
		}
		if off+blockSize > len(data) {
			return fmt.Errorf("%w: truncated header at offset %d", arctype.ErrUnexpectedEOF, off)
		}
		block := data[off : off+blockSize]
		if isZeroBlock(block) {
			off += blockSize
			if off == len(data) {
				return nil
			}
			if off+blockSize > len(data) || !isZeroBlock(data[off:off+blockSize]) {
				return fmt.Errorf("%w: lone zero block at offset %d", arctype.ErrCorruptHeader, off-blockSize)
			}
			return nil
		}

		hdr, err := parseHeader(block)
		if err != nil {
			return err
		}
		off += blockSize

		if hdr.typeFlag == typeGNUSparse {
			return fmt.Errorf("%w: %s", arctype.ErrSparseUnsupported, hdr.name)
		}

		if hdr.typeFlag == TypeDirectory {
			dir, err := root.AddDirectory(hdr.name)
			if err != nil {
				return err
			}
			applyDirHeader(dir, hdr)
			continue
		}

		if off+int(hdr.size) > len(data) {
			return fmt.Errorf("%w: payload of %s exceeds input", arctype.ErrUnexpectedEOF, hdr.name)
		}
		payload := data[off : off+int(hdr.size)]
		off += paddedSize(int(hdr.size))

		f := tree.NewFile(hdr.name, payload)
		applyFileHeader(f, hdr)
		if err := root.AddFile(f); err != nil {
			return err
		}
	}
}

// parseHeader verifies the checksum and decodes one header record. The
// unsigned byte sum is tried first; on mismatch the signed sum is accepted
// for compatibility with historic writers.
func parseHeader(block []byte) (*header, error) {
	want, err := parseOctal(block[offChecksum : offChecksum+8])
	if err != nil {
		return nil, err
	}
	unsigned, signed := checksums(block)
	if want != unsigned && want != signed {
		return nil, fmt.Errorf("%w: header sum %d, computed %d", arctype.ErrChecksumMismatch, want, unsigned)
	}

	h := &header{
		name:     cstring(block[offName : offName+lenName]),
		typeFlag: block[offTypeFlag],
		linkName: cstring(block[offLinkName : offLinkName+lenLinkName]),
	}
	fields := []struct {
		dst        *int64
		off, width int
	}{
		{&h.mode, offMode, 8},
		{&h.ownerID, offOwnerID, 8},
		{&h.groupID, offGroupID, 8},
		{&h.size, offSize, 12},
		{&h.devMajor, offDevMajor, 8},
		{&h.devMinor, offDevMinor, 8},
	}
	for _, f := range fields {
		if *f.dst, err = parseOctal(block[f.off : f.off+f.width]); err != nil {
			return nil, err
		}
	}
	mtime, err := parseOctal(block[offModTime : offModTime+12])
	if err != nil {
		return nil, err
	}
	h.modTime = time.Unix(mtime, 0)
	if h.size < 0 {
		return nil, fmt.Errorf("%w: negative size", arctype.ErrCorruptHeader)
	}

	// Ustar extensions: the prefix joins ahead of the name, and the
	// owner/group name strings become meaningful.
	if string(block[offMagic:offMagic+5]) == "ustar" {
		if prefix := cstring(block[offPrefix : offPrefix+lenPrefix]); prefix != "" {
			h.name = prefix + "/" + h.name
		}
		h.owner = cstring(block[offOwner : offOwner+lenOwner])
		h.group = cstring(block[offGroup : offGroup+lenGroup])
	}
	return h, nil
}

func applyDirHeader(dir *tree.Directory, h *header) {
	dir.ModTime = h.modTime
	dir.Tar.Mode = h.mode
	dir.Tar.OwnerID = h.ownerID
	dir.Tar.GroupID = h.groupID
	dir.Tar.Owner = h.owner
	dir.Tar.Group = h.group
}

func applyFileHeader(f *tree.File, h *header) {
	f.ModTime = h.modTime
	f.Tar = tree.TarAttrs{
		Mode:     h.mode,
		OwnerID:  h.ownerID,
		GroupID:  h.groupID,
		TypeFlag: h.typeFlag,
		LinkName: h.linkName,
		Owner:    h.owner,
		Group:    h.group,
		DevMajor: h.devMajor,
		DevMinor: h.devMinor,
	}
}

// paddedSize rounds a payload size up to the next block boundary.
func paddedSize(n int) int {
	if rem := n % blockSize; rem != 0 {
		return n + blockSize - rem
	}
	return n
}
