package imgfs

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/behrlich/imgfs/internal/testutil"
)

func TestListTextEmptyStore(t *testing.T) {
	t.Parallel()
	s := openTestStore(t, 4)

	var buf bytes.Buffer
	if err := s.List(&buf, Text); err != nil {
		t.Fatalf("List: %v", err)
	}
	if !strings.Contains(buf.String(), "<< empty imgFS >>") {
		t.Errorf("List(Text) on empty store missing marker, got:\n%s", buf.String())
	}
}

func TestListJSONIndexOrder(t *testing.T) {
	t.Parallel()
	s := openTestStore(t, 4)

	if err := s.Insert(testutil.JPEG(10, 10, 1), "first"); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := s.Insert(testutil.JPEG(10, 10, 2), "second"); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	var buf bytes.Buffer
	if err := s.List(&buf, JSON); err != nil {
		t.Fatalf("List: %v", err)
	}

	var got listJSON
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	want := []string{"first", "second"}
	if len(got.Images) != len(want) {
		t.Fatalf("Images = %v, want %v", got.Images, want)
	}
	for i := range want {
		if got.Images[i] != want[i] {
			t.Errorf("Images[%d] = %q, want %q", i, got.Images[i], want[i])
		}
	}
}
