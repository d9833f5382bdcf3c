// Package imgfs implements a single-file, append-oriented image store.
//
// A store file holds a fixed-width header, a contiguous table of
// fixed-width metadata records, and a sequence of packed JPEG payload
// extents. Images are deduplicated by content hash, and image ids must
// be unique among valid records; lower
// resolutions are derived lazily on first read rather than
// precomputed at insert time.
package imgfs

import "errors"

// Error kinds returned by store operations. Callers should use
// errors.Is against these sentinels rather than matching on message
// text; wrapped context is added with fmt.Errorf("%w: ...", Err...).
var (
	ErrInvalidArgument    = errors.New("imgfs: invalid argument")
	ErrNotEnoughArguments = errors.New("imgfs: not enough arguments")
	ErrIO                 = errors.New("imgfs: io error")
	ErrOutOfMemory        = errors.New("imgfs: out of memory")
	ErrImageNotFound      = errors.New("imgfs: image not found")
	ErrDuplicateID        = errors.New("imgfs: duplicate image id")
	ErrStoreFull          = errors.New("imgfs: store is full")
	ErrResolutions        = errors.New("imgfs: invalid resolution")
	ErrInvalidImgID       = errors.New("imgfs: invalid image id")
	ErrImglib             = errors.New("imgfs: image codec error")
	ErrRuntime            = errors.New("imgfs: internal error")
)
