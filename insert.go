package imgfs

import (
	"crypto/sha256"
)

// Insert stores buffer under imgID, returning ErrStoreFull if the
// table is at capacity, ErrDuplicateID if imgID already names a valid
// slot, or ErrImglib if buffer does not decode as an image. A buffer
// whose content matches an existing valid slot is not an error: the
// new slot aliases that slot's extents instead of appending a copy.
//
// Thumbnails and the small resolution are not computed here; they are
// derived lazily on first Read at that resolution (see resizeOnDemand).
func (s *Store) Insert(buffer []byte, imgID string) error {
	if s.header.NbFiles >= s.header.MaxFiles {
		return ErrStoreFull
	}

	i := s.firstEmptySlot()
	if i < 0 {
		return ErrStoreFull
	}

	slot := ImageMeta{}
	if err := slot.setImgID(imgID); err != nil {
		return err
	}

	sha := sha256.Sum256(buffer)
	slot.SHA = sha
	slot.Size[OrigRes] = uint32(len(buffer))

	width, height, err := probeDimensions(buffer)
	if err != nil {
		return err
	}
	slot.OrigRes = [2]uint32{width, height}

	s.metadata[i] = slot

	if err := s.dedup(i); err != nil {
		s.metadata[i] = ImageMeta{}
		return err
	}

	if s.metadata[i].Offset[OrigRes] == 0 {
		off, err := s.appendPayload(buffer)
		if err != nil {
			return err
		}
		s.metadata[i].Offset[OrigRes] = off
	}

	s.metadata[i].Size[OrigRes] = uint32(len(buffer))
	s.metadata[i].IsValid = NonEmpty

	s.header.Version++
	s.header.NbFiles++

	if err := s.persistSlot(i); err != nil {
		return err
	}
	return s.persistHeader()
}

// firstEmptySlot returns the lowest index with IsValid == Empty, or -1
// if the table has no free slots.
func (s *Store) firstEmptySlot() int {
	for i := range s.metadata {
		if s.metadata[i].IsValid == Empty {
			return i
		}
	}
	return -1
}
