package imgfs

import (
	"fmt"
	"io"
	"os"
)

// Store is the primary handle for an open imgFS file: the backing
// *os.File plus an in-memory mirror of the header and metadata table.
// The in-memory table is the source of truth during a session; mutating
// operations update it first, then persist the affected slot (and the
// header), then return.
//
// Only one Store may hold a given file open for mutation at a time;
// there is no locking, per the single-writer invariant (spec §5).
type Store struct {
	file     *os.File
	header   StoreHeader
	metadata []ImageMeta
}

// Header returns a copy of the current in-memory header.
func (s *Store) Header() StoreHeader {
	return s.header
}

// Open opens an existing imgFS file, reading the header and then the
// full metadata table into memory.
func Open(path string) (*Store, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	s, err := newStore(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return s, nil
}

func newStore(f *os.File) (*Store, error) {
	headerBuf := make([]byte, HeaderSize)
	if _, err := f.ReadAt(headerBuf, 0); err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrIO, err)
	}

	header, err := DecodeHeader(headerBuf)
	if err != nil {
		return nil, err
	}

	s := &Store{file: f, header: *header}

	tableBuf := make([]byte, int(header.MaxFiles)*MetaSize)
	if header.MaxFiles > 0 {
		if _, err := f.ReadAt(tableBuf, int64(HeaderSize)); err != nil {
			return nil, fmt.Errorf("%w: reading metadata table: %v", ErrIO, err)
		}
	}

	s.metadata = make([]ImageMeta, header.MaxFiles)
	validCount := uint32(0)
	for i := range s.metadata {
		rec, err := DecodeMeta(tableBuf[i*MetaSize : (i+1)*MetaSize])
		if err != nil {
			return nil, err
		}
		s.metadata[i] = *rec
		if rec.IsValid == NonEmpty {
			validCount++
		}
	}

	// A crash between an insert/delete's slot write and its header
	// write can leave nb_files lagging the table. Repair it from the
	// table itself: the per-slot is_valid byte is always the
	// authoritative signal (see SPEC_FULL.md's slot-before-header
	// ordering rationale).
	s.header.NbFiles = validCount

	return s, nil
}

// Create creates a new imgFS file, writing a zeroed header sized by
// cfg and a zeroed metadata table of cfg.MaxFiles records.
func Create(path string, cfg Config) (*Store, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("%w: creating file: %v", ErrIO, err)
	}

	header := StoreHeader{
		Version:  0,
		NbFiles:  0,
		MaxFiles: cfg.MaxFiles,
	}
	copy(header.Name[:], storeName)
	header.ResizedRes[ThumbRes] = cfg.ThumbRes
	header.ResizedRes[SmallRes] = cfg.SmallRes

	s := &Store{file: f, header: header, metadata: make([]ImageMeta, cfg.MaxFiles)}

	if _, err := f.WriteAt(header.Encode(), 0); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: writing header: %v", ErrIO, err)
	}

	tableBuf := make([]byte, int(cfg.MaxFiles)*MetaSize)
	for i := range s.metadata {
		copy(tableBuf[i*MetaSize:(i+1)*MetaSize], s.metadata[i].Encode())
	}
	if len(tableBuf) > 0 {
		if _, err := f.WriteAt(tableBuf, int64(HeaderSize)); err != nil {
			f.Close()
			return nil, fmt.Errorf("%w: writing metadata table: %v", ErrIO, err)
		}
	}

	return s, nil
}

// Close releases the store's file handle and in-memory table. It is
// the scoped-release counterpart of Create/Open: every exit path
// (success or error further up the call stack) should route through
// Close exactly once.
func (s *Store) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	s.metadata = nil
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}

// persistHeader rewrites the header at file offset 0.
func (s *Store) persistHeader() error {
	if _, err := s.file.WriteAt(s.header.Encode(), 0); err != nil {
		return fmt.Errorf("%w: writing header: %v", ErrIO, err)
	}
	return nil
}

// persistSlot rewrites the single metadata record at index i.
func (s *Store) persistSlot(i int) error {
	off := int64(HeaderSize + i*MetaSize)
	if _, err := s.file.WriteAt(s.metadata[i].Encode(), off); err != nil {
		return fmt.Errorf("%w: writing metadata slot %d: %v", ErrIO, i, err)
	}
	return nil
}

// appendPayload appends buf at end-of-file and returns its offset.
func (s *Store) appendPayload(buf []byte) (uint64, error) {
	off, err := s.file.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, fmt.Errorf("%w: seeking to end: %v", ErrIO, err)
	}
	if _, err := s.file.Write(buf); err != nil {
		return 0, fmt.Errorf("%w: appending payload: %v", ErrIO, err)
	}
	return uint64(off), nil
}

// readExtent reads exactly size bytes at off.
func (s *Store) readExtent(off uint64, size uint32) ([]byte, error) {
	buf := make([]byte, size)
	if _, err := s.file.ReadAt(buf, int64(off)); err != nil {
		return nil, fmt.Errorf("%w: reading extent at %d: %v", ErrIO, off, err)
	}
	return buf, nil
}
