package imgfs

import (
	"bytes"
	"errors"
	"image"
	_ "image/jpeg"
	"testing"

	"github.com/behrlich/imgfs/internal/testutil"
)

func TestReadInvalidResolution(t *testing.T) {
	t.Parallel()
	s := openTestStore(t, 4)

	if _, err := s.Read("anything", -1); !errors.Is(err, ErrResolutions) {
		t.Errorf("Read(-1): got %v, want ErrResolutions", err)
	}
	if _, err := s.Read("anything", NbRes); !errors.Is(err, ErrResolutions) {
		t.Errorf("Read(NbRes): got %v, want ErrResolutions", err)
	}
}

func TestReadUnknownImage(t *testing.T) {
	t.Parallel()
	s := openTestStore(t, 4)

	if _, err := s.Read("missing", OrigRes); !errors.Is(err, ErrImageNotFound) {
		t.Errorf("Read missing image: got %v, want ErrImageNotFound", err)
	}
}

func TestReadThumbMaterializesOnce(t *testing.T) {
	t.Parallel()
	s := openTestStore(t, 4)
	if err := s.Insert(testutil.JPEG(400, 300, 2), "A"); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	sizeBefore := fileSize(t, s)
	thumb, err := s.Read("A", ThumbRes)
	if err != nil {
		t.Fatalf("Read thumb: %v", err)
	}
	sizeAfterFirst := fileSize(t, s)
	if sizeAfterFirst <= sizeBefore {
		t.Errorf("file did not grow after first thumb read: %d -> %d", sizeBefore, sizeAfterFirst)
	}

	cfg, _, err := image.Decode(bytes.NewReader(thumb))
	if err != nil {
		t.Fatalf("decoding derived thumbnail: %v", err)
	}
	b := cfg.Bounds()
	if b.Dx() > int(DefaultThumbWidth) || b.Dy() > int(DefaultThumbHeight) {
		t.Errorf("thumbnail dimensions %dx%d exceed configured %dx%d", b.Dx(), b.Dy(), DefaultThumbWidth, DefaultThumbHeight)
	}

	if _, err := s.Read("A", ThumbRes); err != nil {
		t.Fatalf("second Read thumb: %v", err)
	}
	sizeAfterSecond := fileSize(t, s)
	if sizeAfterSecond != sizeAfterFirst {
		t.Errorf("file grew again on second thumb read: %d -> %d", sizeAfterFirst, sizeAfterSecond)
	}
}
