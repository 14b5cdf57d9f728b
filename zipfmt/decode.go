package zipfmt

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/flate"

	"github.com/meigma/arc/internal/arctype"
	"github.com/meigma/arc/tree"
)

var le = binary.LittleEndian

// centralRecord is one parsed central-directory entry.
type centralRecord struct {
	flags    uint16
	method   uint16
	dosTime  uint16
	dosDate  uint16
	crc      uint32
	csize    uint32
	usize    uint32
	internal uint16
	external uint32
	offset   uint32
	name     string
	extra    []byte
	comment  string
}

// Decode locates the end-of-central-directory record, walks the central
// directory, and re-reads each entry's local header for the authoritative
// payload bytes.
func (*Codec) Decode(data []byte, root *tree.Directory, props *arctype.Properties) error {
	eocd, err := findEOCD(data)
	if err != nil {
		return err
	}

	diskNum := le.Uint16(data[eocd+4:])
	dirDisk := le.Uint16(data[eocd+6:])
	entriesDisk := le.Uint16(data[eocd+8:])
	entriesTotal := le.Uint16(data[eocd+10:])
	dirSize := le.Uint32(data[eocd+12:])
	dirOff := le.Uint32(data[eocd+16:])
	commentLen := int(le.Uint16(data[eocd+20:]))

	if diskNum != 0 || dirDisk != 0 || entriesDisk != entriesTotal {
		return arctype.ErrMultiDisk
	}
	if entriesTotal == maxUint16 || dirOff == maxUint32 || dirSize == maxUint32 {
		return arctype.ErrZip64Unsupported
	}

	records, err := parseCentralDirectory(data, int(dirOff), int(dirSize), int(entriesTotal), eocd)
	if err != nil {
		return err
	}

	for i := range records {
		if err := addEntry(data, root, &records[i]); err != nil {
			return err
		}
	}

	if props != nil {
		props.Comment = string(data[eocd+eocdLen : eocd+eocdLen+commentLen])
	}
	return nil
}

// findEOCD scans backward from the buffer's tail for an end record whose
// declared comment length reaches exactly to the end of the buffer. The
// window is bounded by the maximum comment length, so signatures embedded
// in the comment itself are skipped.
func findEOCD(data []byte) (int, error) {
	if len(data) < eocdLen {
		return 0, fmt.Errorf("%w: %d bytes is smaller than an end record", arctype.ErrUnexpectedEOF, len(data))
	}
	lo := 0
	if len(data) > eocdLen+maxComment {
		lo = len(data) - eocdLen - maxComment
	}
	for i := len(data) - eocdLen; i >= lo; i-- {
		if le.Uint32(data[i:]) != sigEOCD {
			continue
		}
		commentLen := int(le.Uint16(data[i+20:]))
		if i+eocdLen+commentLen == len(data) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: no end-of-central-directory record", arctype.ErrCorruptHeader)
}

// parseCentralDirectory parses exactly numEntries records and verifies they
// consume exactly dirSize bytes.
func parseCentralDirectory(data []byte, dirOff, dirSize, numEntries, limit int) ([]centralRecord, error) {
	records := make([]centralRecord, 0, numEntries)
	p := dirOff
	for range numEntries {
		if p+centralHeaderLen > limit || le.Uint32(data[p:]) != sigCentral {
			return nil, fmt.Errorf("%w: bad record at offset %d", arctype.ErrCorruptDirectory, p)
		}
		rec := centralRecord{
			flags:    le.Uint16(data[p+8:]),
			method:   le.Uint16(data[p+10:]),
			dosTime:  le.Uint16(data[p+12:]),
			dosDate:  le.Uint16(data[p+14:]),
			crc:      le.Uint32(data[p+16:]),
			csize:    le.Uint32(data[p+20:]),
			usize:    le.Uint32(data[p+24:]),
			internal: le.Uint16(data[p+36:]),
			external: le.Uint32(data[p+38:]),
			offset:   le.Uint32(data[p+42:]),
		}
		nameLen := int(le.Uint16(data[p+28:]))
		extraLen := int(le.Uint16(data[p+30:]))
		commentLen := int(le.Uint16(data[p+32:]))
		end := p + centralHeaderLen + nameLen + extraLen + commentLen
		if end > limit {
			return nil, fmt.Errorf("%w: record at offset %d overruns directory", arctype.ErrCorruptDirectory, p)
		}
		rec.name = string(data[p+centralHeaderLen : p+centralHeaderLen+nameLen])
		if extraLen > 0 {
			rec.extra = bytes.Clone(data[p+centralHeaderLen+nameLen : p+centralHeaderLen+nameLen+extraLen])
		}
		rec.comment = string(data[p+centralHeaderLen+nameLen+extraLen : end])
		records = append(records, rec)
		p = end
	}
	if p-dirOff != dirSize {
		return nil, fmt.Errorf("%w: parsed %d bytes, directory declares %d", arctype.ErrCorruptDirectory, p-dirOff, dirSize)
	}
	return records, nil
}

// addEntry attaches one central-directory entry to the tree.
func addEntry(data []byte, root *tree.Directory, rec *centralRecord) error {
	if rec.flags&0x1 != 0 {
		return fmt.Errorf("%w: %s", arctype.ErrEncryptionUnsupported, rec.name)
	}
	if rec.method != tree.MethodStore && rec.method != tree.MethodDeflate {
		return fmt.Errorf("%w: method %d on %s", arctype.ErrUnsupportedMethod, rec.method, rec.name)
	}
	if rec.csize == maxUint32 || rec.usize == maxUint32 || rec.offset == maxUint32 {
		return fmt.Errorf("%w: %s", arctype.ErrZip64Unsupported, rec.name)
	}

	if strings.HasSuffix(rec.name, "/") {
		dir, err := root.AddDirectory(rec.name)
		if err != nil {
			return err
		}
		dir.ModTime = fromDOSTime(rec.dosDate, rec.dosTime)
		return nil
	}

	compressed, err := localPayload(data, rec)
	if err != nil {
		return err
	}

	var payload []byte
	switch rec.method {
	case tree.MethodStore:
		payload = compressed
	case tree.MethodDeflate:
		fr := flate.NewReader(bytes.NewReader(compressed))
		payload, err = io.ReadAll(fr)
		fr.Close()
		if err != nil {
			return fmt.Errorf("%w: inflating %s: %v", arctype.ErrUnexpectedEOF, rec.name, err)
		}
	}

	f := tree.NewFile(rec.name, payload)
	f.ModTime = fromDOSTime(rec.dosDate, rec.dosTime)
	f.Zip = tree.ZipAttrs{
		Method:       rec.method,
		Flags:        rec.flags,
		Extra:        rec.extra,
		Comment:      rec.comment,
		InternalAttr: rec.internal,
		ExternalAttr: rec.external,
	}
	if rec.method == tree.MethodDeflate {
		f.SetCompressed(compressed)
	}
	return root.AddFile(f)
}

// localPayload re-reads the entry's local header and slices out the
// compressed bytes. When the central and local sizes disagree the larger
// wins, which tolerates streamed entries whose local sizes are zero.
func localPayload(data []byte, rec *centralRecord) ([]byte, error) {
	p := int(rec.offset)
	if p+localHeaderLen > len(data) {
		return nil, fmt.Errorf("%w: local header of %s exceeds input", arctype.ErrUnexpectedEOF, rec.name)
	}
	if le.Uint32(data[p:]) != sigLocal {
		return nil, fmt.Errorf("%w: no local header signature for %s", arctype.ErrCorruptHeader, rec.name)
	}
	localCSize := le.Uint32(data[p+18:])
	nameLen := int(le.Uint16(data[p+26:]))
	extraLen := int(le.Uint16(data[p+28:]))

	csize := rec.csize
	if localCSize > csize {
		csize = localCSize
	}
	start := p + localHeaderLen + nameLen + extraLen
	if start+int(csize) > len(data) {
		return nil, fmt.Errorf("%w: payload of %s exceeds input", arctype.ErrUnexpectedEOF, rec.name)
	}
	return data[start : start+int(csize)], nil
}
