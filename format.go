package imgfs

import (
	"encoding/binary"
	"fmt"
)

// Resolution tags, in table-column order.
const (
	ThumbRes = iota
	SmallRes
	OrigRes
	NbRes
)

const (
	// NameSize is the fixed width of the header's name field.
	NameSize = 32

	// MaxImgID is the maximum length, in bytes, of an img_id (excluding
	// the NUL terminator).
	MaxImgID = 127

	imgIDField = MaxImgID + 1 // +1 for the NUL terminator
	shaSize    = 32           // SHA-256 digest length

	storeName = "EPFL ImgFS binary"
)

// HeaderSize is the fixed, on-disk size of StoreHeader in bytes.
const HeaderSize = NameSize + 4 + 4 + 4 + (NbRes * 2 * 4)

// MetaSize is the fixed, on-disk size of one ImageMeta record in bytes.
const MetaSize = imgIDField + shaSize + (2 * 4) + (NbRes * 4) + (NbRes * 8) + 2

// StoreHeader is the single fixed-width record at file offset 0.
type StoreHeader struct {
	Name       [NameSize]byte
	Version    uint32
	NbFiles    uint32
	MaxFiles   uint32
	ResizedRes [NbRes][2]uint32 // [ThumbRes|SmallRes|OrigRes][width,height]; OrigRes entry unused
}

// ImageMeta is one fixed-width slot in the metadata table.
type ImageMeta struct {
	ImgID   [imgIDField]byte
	SHA     [shaSize]byte
	OrigRes [2]uint32 // width, height of the stored original
	Size    [NbRes]uint32
	Offset  [NbRes]uint64
	IsValid uint16
}

// Validity flags for ImageMeta.IsValid.
const (
	Empty    = 0
	NonEmpty = 1
)

// Encode packs h into a HeaderSize-byte buffer, little-endian.
func (h *StoreHeader) Encode() []byte {
	buf := make([]byte, HeaderSize)
	off := 0
	copy(buf[off:off+NameSize], h.Name[:])
	off += NameSize
	binary.LittleEndian.PutUint32(buf[off:], h.Version)
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], h.NbFiles)
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], h.MaxFiles)
	off += 4
	for r := 0; r < NbRes; r++ {
		binary.LittleEndian.PutUint32(buf[off:], h.ResizedRes[r][0])
		off += 4
		binary.LittleEndian.PutUint32(buf[off:], h.ResizedRes[r][1])
		off += 4
	}
	return buf
}

// DecodeHeader unpacks a StoreHeader from a HeaderSize-byte buffer.
func DecodeHeader(buf []byte) (*StoreHeader, error) {
	if len(buf) < HeaderSize {
		return nil, fmt.Errorf("%w: header too short: %d bytes", ErrIO, len(buf))
	}
	h := &StoreHeader{}
	off := 0
	copy(h.Name[:], buf[off:off+NameSize])
	off += NameSize
	h.Version = binary.LittleEndian.Uint32(buf[off:])
	off += 4
	h.NbFiles = binary.LittleEndian.Uint32(buf[off:])
	off += 4
	h.MaxFiles = binary.LittleEndian.Uint32(buf[off:])
	off += 4
	for r := 0; r < NbRes; r++ {
		h.ResizedRes[r][0] = binary.LittleEndian.Uint32(buf[off:])
		off += 4
		h.ResizedRes[r][1] = binary.LittleEndian.Uint32(buf[off:])
		off += 4
	}
	return h, nil
}

// Encode packs m into a MetaSize-byte buffer, little-endian.
func (m *ImageMeta) Encode() []byte {
	buf := make([]byte, MetaSize)
	off := 0
	copy(buf[off:off+imgIDField], m.ImgID[:])
	off += imgIDField
	copy(buf[off:off+shaSize], m.SHA[:])
	off += shaSize
	binary.LittleEndian.PutUint32(buf[off:], m.OrigRes[0])
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], m.OrigRes[1])
	off += 4
	for r := 0; r < NbRes; r++ {
		binary.LittleEndian.PutUint32(buf[off:], m.Size[r])
		off += 4
	}
	for r := 0; r < NbRes; r++ {
		binary.LittleEndian.PutUint64(buf[off:], m.Offset[r])
		off += 8
	}
	binary.LittleEndian.PutUint16(buf[off:], m.IsValid)
	off += 2
	return buf
}

// DecodeMeta unpacks an ImageMeta from a MetaSize-byte buffer.
func DecodeMeta(buf []byte) (*ImageMeta, error) {
	if len(buf) < MetaSize {
		return nil, fmt.Errorf("%w: metadata record too short: %d bytes", ErrIO, len(buf))
	}
	m := &ImageMeta{}
	off := 0
	copy(m.ImgID[:], buf[off:off+imgIDField])
	off += imgIDField
	copy(m.SHA[:], buf[off:off+shaSize])
	off += shaSize
	m.OrigRes[0] = binary.LittleEndian.Uint32(buf[off:])
	off += 4
	m.OrigRes[1] = binary.LittleEndian.Uint32(buf[off:])
	off += 4
	for r := 0; r < NbRes; r++ {
		m.Size[r] = binary.LittleEndian.Uint32(buf[off:])
		off += 4
	}
	for r := 0; r < NbRes; r++ {
		m.Offset[r] = binary.LittleEndian.Uint64(buf[off:])
		off += 8
	}
	m.IsValid = binary.LittleEndian.Uint16(buf[off:])
	off += 2
	return m, nil
}

// imgIDString returns the NUL-terminated ImgID field as a Go string.
func (m *ImageMeta) imgIDString() string {
	for i, b := range m.ImgID {
		if b == 0 {
			return string(m.ImgID[:i])
		}
	}
	return string(m.ImgID[:])
}

// setImgID copies id into the fixed-width ImgID field, NUL-terminated.
func (m *ImageMeta) setImgID(id string) error {
	if len(id) == 0 || len(id) > MaxImgID {
		return fmt.Errorf("%w: img_id must be 1..%d bytes", ErrInvalidImgID, MaxImgID)
	}
	m.ImgID = [imgIDField]byte{}
	copy(m.ImgID[:], id)
	return nil
}
