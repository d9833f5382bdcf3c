package imgfs

import "bytes"

// dedup scans the table for a name collision or a content match against
// slot i, whose SHA and ImgID have already been populated but whose
// Offset[OrigRes] is still 0.
//
// On a name collision, ErrDuplicateID is returned; the candidate may
// already have been aliased by a content match at a lower index, and
// the caller discards it.
// On a content match, all NbRes (offset, size) pairs are copied from
// the matching slot into the candidate, aliasing its extents; later
// content matches are still scanned for name collisions but are not
// aliased, since aliasing the first one already points the candidate
// at the right bytes.
func (s *Store) dedup(i int) error {
	candidate := &s.metadata[i]

	for j := range s.metadata {
		if j == i || s.metadata[j].IsValid != NonEmpty {
			continue
		}
		other := &s.metadata[j]

		if other.imgIDString() == candidate.imgIDString() {
			return ErrDuplicateID
		}
		if candidate.Offset[OrigRes] == 0 && bytes.Equal(other.SHA[:], candidate.SHA[:]) {
			candidate.Offset = other.Offset
			candidate.Size = other.Size
		}
	}

	return nil
}
