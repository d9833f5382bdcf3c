package imgfs

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
)

// ListMode selects the output shape of List.
type ListMode int

const (
	// Text pretty-prints the header and each valid record.
	Text ListMode = iota
	// JSON emits {"Images": [img_id, ...]} in index order.
	JSON
)

// listJSON is the wire shape emitted by List(JSON, ...).
type listJSON struct {
	Images []string `json:"Images"`
}

// List writes a representation of the store to w: either a
// human-readable dump (Text) or a JSON object naming the valid images
// in index order (JSON).
func (s *Store) List(w io.Writer, mode ListMode) error {
	switch mode {
	case Text:
		return s.writeText(w)
	case JSON:
		return s.writeJSON(w)
	default:
		return fmt.Errorf("%w: unknown list mode %d", ErrInvalidArgument, mode)
	}
}

// writeText renders the header followed by every valid metadata
// record, in the field order the original CLI's printer used.
func (s *Store) writeText(w io.Writer) error {
	h := s.header
	fmt.Fprintf(w, "*****************************************\n")
	fmt.Fprintf(w, "**********IMGFS HEADER START*************\n")
	fmt.Fprintf(w, "TYPE: %31s\n", nulTrim(h.Name[:]))
	fmt.Fprintf(w, "VERSION: %28d\n", h.Version)
	fmt.Fprintf(w, "IMAGE COUNT: %19d\tMAX IMAGES: %d\n", h.NbFiles, h.MaxFiles)
	fmt.Fprintf(w, "THUMBNAIL: %4d x %-4d\tSMALL: %4d x %-4d\n",
		h.ResizedRes[ThumbRes][0], h.ResizedRes[ThumbRes][1],
		h.ResizedRes[SmallRes][0], h.ResizedRes[SmallRes][1])
	fmt.Fprintf(w, "**********IMGFS HEADER END*************\n")

	if h.NbFiles == 0 {
		fmt.Fprintf(w, "<< empty imgFS >>\n")
		return nil
	}

	for i := range s.metadata {
		m := s.metadata[i]
		if m.IsValid != NonEmpty {
			continue
		}
		fmt.Fprintf(w, "IMAGE ID: %s\n", m.imgIDString())
		fmt.Fprintf(w, "\tSHA: %s\n", hex.EncodeToString(m.SHA[:]))
		fmt.Fprintf(w, "\tORIGINAL: %d x %d\n", m.OrigRes[0], m.OrigRes[1])
		fmt.Fprintf(w, "\tSIZE: thumb=%d small=%d orig=%d\n",
			m.Size[ThumbRes], m.Size[SmallRes], m.Size[OrigRes])
		fmt.Fprintf(w, "*****************************************\n")
	}
	return nil
}

// writeJSON emits {"Images": [img_id, ...]} for every valid slot, in
// index order (the implementer's choice permitted by spec.md §9).
func (s *Store) writeJSON(w io.Writer) error {
	out := listJSON{Images: []string{}}
	for i := range s.metadata {
		if s.metadata[i].IsValid == NonEmpty {
			out.Images = append(out.Images, s.metadata[i].imgIDString())
		}
	}
	enc := json.NewEncoder(w)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("%w: encoding image list: %v", ErrRuntime, err)
	}
	return nil
}

// nulTrim returns b up to its first NUL byte, as a string.
func nulTrim(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
