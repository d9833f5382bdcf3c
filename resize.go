package imgfs

import "fmt"

// resizeOnDemand materializes the given non-original resolution for
// slot i by reading the original payload, resizing it to the store's
// configured target dimensions, appending the result, and recording
// its (offset, size) into the slot. It is a no-op if the extent is
// already materialized.
//
// nb_files and version are not touched: lazy materialization is not a
// logical mutation of the set of images in the store.
func (s *Store) resizeOnDemand(resolution, i int) error {
	if resolution == OrigRes || resolution < 0 || resolution >= NbRes {
		return fmt.Errorf("%w: resize-on-demand requires a derived resolution", ErrResolutions)
	}
	if s.materialized(i, resolution) {
		return nil
	}

	slot := s.metadata[i]
	original, err := s.readExtent(slot.Offset[OrigRes], slot.Size[OrigRes])
	if err != nil {
		return err
	}

	target := s.header.ResizedRes[resolution]
	resized, err := resizeJPEG(original, target[0], target[1])
	if err != nil {
		return err
	}

	off, err := s.appendPayload(resized)
	if err != nil {
		return err
	}

	s.metadata[i].Offset[resolution] = off
	s.metadata[i].Size[resolution] = uint32(len(resized))

	return s.persistSlot(i)
}
