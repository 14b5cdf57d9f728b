package tarfmt

import (
	"bytes"
	"fmt"

	"github.com/meigma/arc/internal/arctype"
	"github.com/meigma/arc/tree"
)

// Encode serializes the tree depth-first: each directory's own files come
// first, then each child directory's header followed by its contents. The
// stream is terminated by two all-zero blocks.
func (*Codec) Encode(root *tree.Directory, _ *arctype.Properties) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeDir(&buf, root); err != nil {
		return nil, err
	}
	buf.Write(make([]byte, 2*blockSize))
	return buf.Bytes(), nil
}

func encodeDir(buf *bytes.Buffer, d *tree.Directory) error {
	for f := range d.ChildFiles() {
		hdr := header{
			name:     f.Path(),
			mode:     f.Tar.Mode,
			ownerID:  f.Tar.OwnerID,
			groupID:  f.Tar.GroupID,
			size:     int64(f.Size()),
			modTime:  f.ModTime,
			typeFlag: f.Tar.TypeFlag,
			linkName: f.Tar.LinkName,
			owner:    f.Tar.Owner,
			group:    f.Tar.Group,
			devMajor: f.Tar.DevMajor,
			devMinor: f.Tar.DevMinor,
		}
		if hdr.typeFlag == 0 {
			hdr.typeFlag = TypeRegular
		}
		if err := writeHeader(buf, &hdr); err != nil {
			return err
		}
		buf.Write(f.Data())
		if pad := paddedSize(f.Size()) - f.Size(); pad > 0 {
			buf.Write(make([]byte, pad))
		}
	}
	for sub := range d.ChildDirectories() {
		hdr := header{
			name:     sub.Path() + "/",
			mode:     sub.Tar.Mode,
			ownerID:  sub.Tar.OwnerID,
			groupID:  sub.Tar.GroupID,
			modTime:  sub.ModTime,
			typeFlag: TypeDirectory,
			owner:    sub.Tar.Owner,
			group:    sub.Tar.Group,
		}
		if err := writeHeader(buf, &hdr); err != nil {
			return err
		}
		if err := encodeDir(buf, sub); err != nil {
			return err
		}
	}
	return nil
}

// writeHeader lays out one 512-byte record. The checksum is computed last,
// once every other field is in place.
func writeHeader(buf *bytes.Buffer, h *header) error {
	prefix, name, err := splitLongPath(h.name)
	if err != nil {
		return err
	}

	var block [blockSize]byte
	copy(block[offName:offName+lenName], name)
	fields := []struct {
		field []byte
		v     int64
	}{
		{block[offMode : offMode+8], h.mode},
		{block[offOwnerID : offOwnerID+8], h.ownerID},
		{block[offGroupID : offGroupID+8], h.groupID},
		{block[offSize : offSize+12], h.size},
		{block[offModTime : offModTime+12], h.modTime.Unix()},
		{block[offDevMajor : offDevMajor+8], h.devMajor},
		{block[offDevMinor : offDevMinor+8], h.devMinor},
	}
	for _, f := range fields {
		if err := putOctal(f.field, f.v); err != nil {
			return fmt.Errorf("%s: %w", h.name, err)
		}
	}
	block[offTypeFlag] = h.typeFlag
	copy(block[offLinkName:offLinkName+lenLinkName], h.linkName)
	copy(block[offOwner:offOwner+lenOwner], h.owner)
	copy(block[offGroup:offGroup+lenGroup], h.group)
	copy(block[offPrefix:offPrefix+lenPrefix], prefix)

	// The ustar extension fields only mean anything under the magic, so it
	// is written exactly when one of them is populated.
	if prefix != "" || h.owner != "" || h.group != "" {
		copy(block[offMagic:], magic)
		copy(block[offVersion:], "00")
	}

	unsigned, _ := checksums(block[:])
	copy(block[offChecksum:offChecksum+8], fmt.Sprintf("%06o\x00 ", unsigned))

	buf.Write(block[:])
	return nil
}

// splitLongPath splits a path exceeding the 100-byte name field at a slash
// into a prefix of at most 155 bytes and a name of at most 100 bytes.
func splitLongPath(path string) (prefix, name string, err error) {
	if len(path) <= lenName {
		return "", path, nil
	}
	// Smallest prefix whose remainder fits the name field.
	for i, c := range []byte(path) {
		if c != '/' {
			continue
		}
		if len(path)-i-1 > lenName {
			continue
		}
		if i > lenPrefix {
			break
		}
		return path[:i], path[i+1:], nil
	}
	return "", "", fmt.Errorf("%w: %s", arctype.ErrPathTooLong, path)
}
