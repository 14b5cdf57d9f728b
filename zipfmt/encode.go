package zipfmt

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/flate"

	"github.com/meigma/arc/internal/arctype"
	"github.com/meigma/arc/tree"
)

// Encode writes one local record per member, then the central directory,
// then the end record. Directories are written as explicit trailing-slash
// entries so that empty directories survive a round trip.
func (*Codec) Encode(root *tree.Directory, props *arctype.Properties) ([]byte, error) {
	var comment string
	if props != nil {
		comment = props.Comment
	}
	if len(comment) > maxComment {
		return nil, fmt.Errorf("%w: %d bytes", arctype.ErrCommentTooLong, len(comment))
	}

	var buf bytes.Buffer
	var records []centralRecord
	for m := range root.Members() {
		rec, err := writeLocal(&buf, m)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	dirOff := buf.Len()
	for i := range records {
		writeCentral(&buf, &records[i])
	}
	dirSize := buf.Len() - dirOff

	if len(records) > maxUint16 || int64(dirOff) > maxUint32 {
		return nil, arctype.ErrZip64Unsupported
	}

	var eocd [eocdLen]byte
	le.PutUint32(eocd[0:], sigEOCD)
	le.PutUint16(eocd[8:], uint16(len(records)))
	le.PutUint16(eocd[10:], uint16(len(records)))
	le.PutUint32(eocd[12:], uint32(dirSize))
	le.PutUint32(eocd[16:], uint32(dirOff))
	le.PutUint16(eocd[20:], uint16(len(comment)))
	buf.Write(eocd[:])
	buf.WriteString(comment)

	return buf.Bytes(), nil
}

// writeLocal appends one member's local header and payload, returning the
// central-directory record referencing it.
func writeLocal(buf *bytes.Buffer, m tree.Member) (centralRecord, error) {
	var rec centralRecord
	var payload []byte
	if m.IsDir() {
		d := m.(*tree.Directory)
		rec = centralRecord{
			name:     d.Path() + "/",
			method:   tree.MethodStore,
			external: msdosDir,
		}
		rec.dosDate, rec.dosTime = toDOSTime(d.ModTime)
	} else {
		f := m.(*tree.File)
		compressed, err := compressedBytes(f)
		if err != nil {
			return rec, err
		}
		if int64(len(compressed)) > maxUint32 || int64(f.Size()) > maxUint32 {
			return rec, fmt.Errorf("%w: %s", arctype.ErrZip64Unsupported, f.Path())
		}
		rec = centralRecord{
			name:     f.Path(),
			flags:    f.Zip.Flags,
			method:   f.Zip.Method,
			crc:      f.CRC32(),
			csize:    uint32(len(compressed)),
			usize:    uint32(f.Size()),
			internal: f.Zip.InternalAttr,
			external: f.Zip.ExternalAttr,
			extra:    f.Zip.Extra,
			comment:  f.Zip.Comment,
		}
		rec.dosDate, rec.dosTime = toDOSTime(f.ModTime)
		payload = compressed
	}

	if int64(buf.Len()) > maxUint32 {
		return rec, arctype.ErrZip64Unsupported
	}
	rec.offset = uint32(buf.Len())

	var hdr [localHeaderLen]byte
	le.PutUint32(hdr[0:], sigLocal)
	le.PutUint16(hdr[4:], zipVersion)
	le.PutUint16(hdr[6:], rec.flags)
	le.PutUint16(hdr[8:], rec.method)
	le.PutUint16(hdr[10:], rec.dosTime)
	le.PutUint16(hdr[12:], rec.dosDate)
	le.PutUint32(hdr[14:], rec.crc)
	le.PutUint32(hdr[18:], rec.csize)
	le.PutUint32(hdr[22:], rec.usize)
	le.PutUint16(hdr[26:], uint16(len(rec.name)))
	le.PutUint16(hdr[28:], uint16(len(rec.extra)))
	buf.Write(hdr[:])
	buf.WriteString(rec.name)
	buf.Write(rec.extra)
	buf.Write(payload)
	return rec, nil
}

// writeCentral appends one central-directory record.
func writeCentral(buf *bytes.Buffer, rec *centralRecord) {
	var hdr [centralHeaderLen]byte
	le.PutUint32(hdr[0:], sigCentral)
	le.PutUint16(hdr[4:], zipVersion)
	le.PutUint16(hdr[6:], zipVersion)
	le.PutUint16(hdr[8:], rec.flags)
	le.PutUint16(hdr[10:], rec.method)
	le.PutUint16(hdr[12:], rec.dosTime)
	le.PutUint16(hdr[14:], rec.dosDate)
	le.PutUint32(hdr[16:], rec.crc)
	le.PutUint32(hdr[20:], rec.csize)
	le.PutUint32(hdr[24:], rec.usize)
	le.PutUint16(hdr[28:], uint16(len(rec.name)))
	le.PutUint16(hdr[30:], uint16(len(rec.extra)))
	le.PutUint16(hdr[32:], uint16(len(rec.comment)))
	le.PutUint16(hdr[36:], rec.internal)
	le.PutUint32(hdr[38:], rec.external)
	le.PutUint32(hdr[42:], rec.offset)
	buf.Write(hdr[:])
	buf.WriteString(rec.name)
	buf.Write(rec.extra)
	buf.WriteString(rec.comment)
}

// compressedBytes lazily materializes a file's compressed form according
// to its method, caching the result until the payload is reassigned.
func compressedBytes(f *tree.File) ([]byte, error) {
	switch f.Zip.Method {
	case tree.MethodStore:
		return f.Data(), nil
	case tree.MethodDeflate:
		if cached, ok := f.Compressed(); ok {
			return cached, nil
		}
		var b bytes.Buffer
		fw, err := flate.NewWriter(&b, flate.DefaultCompression)
		if err != nil {
			return nil, err
		}
		if _, err := fw.Write(f.Data()); err != nil {
			return nil, err
		}
		if err := fw.Close(); err != nil {
			return nil, err
		}
		f.SetCompressed(b.Bytes())
		return b.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: method %d on %s", arctype.ErrUnsupportedMethod, f.Zip.Method, f.Path())
	}
}
