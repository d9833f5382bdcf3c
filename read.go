package imgfs

// Read returns the bytes stored for imgID at the given resolution,
// deriving the resolution lazily via resizeOnDemand if it is not yet
// materialized.
func (s *Store) Read(imgID string, resolution int) ([]byte, error) {
	if resolution < 0 || resolution >= NbRes {
		return nil, ErrResolutions
	}

	i := s.findValid(imgID)
	if i < 0 {
		return nil, ErrImageNotFound
	}

	if resolution != OrigRes && !s.materialized(i, resolution) {
		if err := s.resizeOnDemand(resolution, i); err != nil {
			return nil, err
		}
	}

	slot := s.metadata[i]
	buf, err := s.readExtent(slot.Offset[resolution], slot.Size[resolution])
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// materialized reports whether slot i has a non-zero (offset, size)
// pair at the given resolution.
func (s *Store) materialized(i, resolution int) bool {
	return s.metadata[i].Offset[resolution] != 0 && s.metadata[i].Size[resolution] != 0
}
