package imgfs

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/behrlich/imgfs/internal/testutil"
)

func openTestStore(t *testing.T, maxFiles uint32) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.imgfs")
	cfg := Config{MaxFiles: maxFiles, ThumbRes: [2]uint32{64, 64}, SmallRes: [2]uint32{256, 256}}
	s, err := Create(path, cfg)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInsertThenRead(t *testing.T) {
	t.Parallel()
	s := openTestStore(t, 4)

	buf := testutil.JPEG(40, 30, 1)
	if err := s.Insert(buf, "photo-a"); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := s.Read("photo-a", OrigRes)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(buf) {
		t.Errorf("Read returned %d bytes, want the %d bytes inserted", len(got), len(buf))
	}
	if s.header.Version != 1 {
		t.Errorf("Version = %d, want 1", s.header.Version)
	}
	if s.header.NbFiles != 1 {
		t.Errorf("NbFiles = %d, want 1", s.header.NbFiles)
	}
}

func TestInsertDedupByContent(t *testing.T) {
	t.Parallel()
	s := openTestStore(t, 4)

	buf := testutil.JPEG(40, 30, 7)
	sizeBefore := fileSize(t, s)

	if err := s.Insert(buf, "A"); err != nil {
		t.Fatalf("Insert A: %v", err)
	}
	if err := s.Insert(buf, "B"); err != nil {
		t.Fatalf("Insert B: %v", err)
	}

	sizeAfter := fileSize(t, s)
	if sizeAfter-sizeBefore != int64(len(buf)) {
		t.Errorf("file grew by %d bytes, want exactly %d (one append, not two)", sizeAfter-sizeBefore, len(buf))
	}

	idxA := s.findValid("A")
	idxB := s.findValid("B")
	if idxA < 0 || idxB < 0 {
		t.Fatalf("both A and B should be valid slots, got idxA=%d idxB=%d", idxA, idxB)
	}
	if s.metadata[idxA].Offset[OrigRes] != s.metadata[idxB].Offset[OrigRes] {
		t.Errorf("aliased slots have different OrigRes offsets: %d vs %d",
			s.metadata[idxA].Offset[OrigRes], s.metadata[idxB].Offset[OrigRes])
	}
}

func TestInsertDuplicateIDRejected(t *testing.T) {
	t.Parallel()
	s := openTestStore(t, 4)

	buf1 := testutil.JPEG(40, 30, 1)
	buf2 := testutil.JPEG(50, 50, 2)

	if err := s.Insert(buf1, "A"); err != nil {
		t.Fatalf("Insert A: %v", err)
	}
	versionBefore := s.header.Version
	sizeBefore := fileSize(t, s)

	err := s.Insert(buf2, "A")
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("Insert duplicate id: got %v, want ErrDuplicateID", err)
	}
	if s.header.Version != versionBefore {
		t.Errorf("Version changed on rejected insert: %d -> %d", versionBefore, s.header.Version)
	}
	if fileSize(t, s) != sizeBefore {
		t.Errorf("file size changed on rejected insert: %d -> %d", sizeBefore, fileSize(t, s))
	}
}

func TestInsertStoreFull(t *testing.T) {
	t.Parallel()
	s := openTestStore(t, 1)

	if err := s.Insert(testutil.JPEG(10, 10, 1), "A"); err != nil {
		t.Fatalf("Insert A: %v", err)
	}

	sizeBefore := fileSize(t, s)
	err := s.Insert(testutil.JPEG(10, 10, 2), "B")
	if !errors.Is(err, ErrStoreFull) {
		t.Fatalf("Insert into full store: got %v, want ErrStoreFull", err)
	}
	if fileSize(t, s) != sizeBefore {
		t.Errorf("file grew on a rejected insert: %d -> %d", sizeBefore, fileSize(t, s))
	}
}

func TestInsertRejectsNonJPEG(t *testing.T) {
	t.Parallel()
	s := openTestStore(t, 4)

	err := s.Insert([]byte("not an image"), "A")
	if !errors.Is(err, ErrImglib) {
		t.Fatalf("Insert garbage bytes: got %v, want ErrImglib", err)
	}
}

func TestDeleteThenReinsert(t *testing.T) {
	t.Parallel()
	s := openTestStore(t, 4)
	buf := testutil.JPEG(20, 20, 3)

	if err := s.Insert(buf, "A"); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := s.Delete("A"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s.header.NbFiles != 0 {
		t.Errorf("NbFiles = %d, want 0", s.header.NbFiles)
	}

	if err := s.Insert(buf, "A"); err != nil {
		t.Fatalf("re-Insert after delete: %v", err)
	}
	if s.findValid("A") < 0 {
		t.Error("re-inserted image A should be found")
	}
}

func fileSize(t *testing.T, s *Store) int64 {
	t.Helper()
	fi, err := s.file.Stat()
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	return fi.Size()
}
