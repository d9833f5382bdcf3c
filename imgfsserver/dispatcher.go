// Package imgfsserver routes parsed requests to store operations and
// builds the corresponding responses. It holds both the request
// dispatcher and the single-threaded accept loop (Serve, in
// listen.go); cmd/imgfsd opens the store, listens, and calls Serve.
package imgfsserver

import (
	"errors"
	"net/url"
	"strings"

	"github.com/behrlich/imgfs"
	"github.com/behrlich/imgfs/imgfsproto"
)

// ErrInvalidCommand is returned when no route matches a request's
// verb/URI pair.
var ErrInvalidCommand = errors.New("imgfsserver: invalid command")

const indexPage = "/index.html"

// Dispatcher routes requests to a single store.
type Dispatcher struct {
	Store *imgfs.Store
}

// New wraps store in a Dispatcher.
func New(store *imgfs.Store) *Dispatcher {
	return &Dispatcher{Store: store}
}

// Dispatch routes req to the matching store operation and returns the
// response to send back. It never returns an error itself: failures
// from the store are folded into a response at the request boundary
// (404 for ErrImageNotFound, 500 for every other error).
func (d *Dispatcher) Dispatch(req *imgfsproto.Request) *imgfsproto.Response {
	method := string(req.Method)
	path, query := splitURI(string(req.URI))

	switch {
	case method == "GET" && path == "/imgfs/list":
		return d.list(query)
	case method == "GET" && path == "/imgfs/read":
		return d.read(query)
	case method == "GET" && path == "/imgfs/delete":
		return d.delete(query)
	case method == "POST" && path == "/imgfs/insert":
		return d.insert(query, req.Body)
	case method == "GET" && (path == "/" || path == indexPage):
		return d.index()
	default:
		return errorResponse(ErrInvalidCommand)
	}
}

func (d *Dispatcher) list(_ url.Values) *imgfsproto.Response {
	var buf strings.Builder
	if err := d.Store.List(&buf, imgfs.JSON); err != nil {
		return errorResponse(err)
	}
	return imgfsproto.NewResponse(imgfsproto.StatusOK, "application/json", []byte(buf.String()))
}

func (d *Dispatcher) read(query url.Values) *imgfsproto.Response {
	imgID := query.Get("img_id")
	resolution, err := parseResolution(query.Get("res"))
	if err != nil {
		return errorResponse(err)
	}

	buf, err := d.Store.Read(imgID, resolution)
	if err != nil {
		return errorResponse(err)
	}
	return imgfsproto.NewResponse(imgfsproto.StatusOK, "image/jpeg", buf)
}

func (d *Dispatcher) delete(query url.Values) *imgfsproto.Response {
	if err := d.Store.Delete(query.Get("img_id")); err != nil {
		return errorResponse(err)
	}
	return imgfsproto.Redirect(indexPage)
}

func (d *Dispatcher) insert(query url.Values, body []byte) *imgfsproto.Response {
	if err := d.Store.Insert(body, query.Get("img_id")); err != nil {
		return errorResponse(err)
	}
	return imgfsproto.Redirect(indexPage)
}

func (d *Dispatcher) index() *imgfsproto.Response {
	return imgfsproto.NewResponse(imgfsproto.StatusOK, "text/html; charset=utf-8", indexHTML)
}

// parseResolution maps the res query parameter to a resolution index.
func parseResolution(res string) (int, error) {
	switch res {
	case "orig", "original", "":
		return imgfs.OrigRes, nil
	case "small":
		return imgfs.SmallRes, nil
	case "thumb", "thumbnail":
		return imgfs.ThumbRes, nil
	default:
		return 0, imgfs.ErrResolutions
	}
}

// splitURI separates a request URI's path from its parsed query
// string.
func splitURI(uri string) (path string, query url.Values) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return uri, url.Values{}
	}
	return parsed.Path, parsed.Query()
}

// errorResponse folds any error into a response carrying the error's
// message: 404 for ErrImageNotFound, 500 for everything else. Errors
// reach the boundary unchanged and are converted here, never before.
func errorResponse(err error) *imgfsproto.Response {
	if errors.Is(err, imgfs.ErrImageNotFound) {
		return imgfsproto.NewResponse(imgfsproto.StatusNotFound, "text/plain", []byte(err.Error()))
	}
	return imgfsproto.NewResponse(imgfsproto.StatusInternalServerError, "text/plain", []byte(err.Error()))
}
