package imgfsserver

import (
	"bytes"
	"fmt"
	"net"

	"github.com/behrlich/imgfs/imgfsproto"
)

// DefaultPort is used when the caller does not specify one.
const DefaultPort = "8000"

// maxHeaderSize bounds how many bytes are read looking for the header
// terminator before a connection is abandoned as malformed.
const maxHeaderSize = 64 * 1024

// Serve accepts connections on ln in a single-threaded loop, parsing
// one request per connection, dispatching it, and writing back the
// response before closing. It returns when ln is closed (the expected
// shutdown path: the caller closes ln from a signal handler).
func (d *Dispatcher) Serve(ln net.Listener) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		d.serveOne(conn)
	}
}

// serveOne reads, dispatches, and responds to exactly one request on
// conn, then closes it. Errors reading or parsing the request produce
// a best-effort response rather than propagating to the caller, since
// one bad connection must not take down the accept loop.
func (d *Dispatcher) serveOne(conn net.Conn) {
	defer conn.Close()

	req, err := readRequest(conn)
	if err != nil {
		writeResponse(conn, errorResponse(err))
		return
	}

	writeResponse(conn, d.Dispatch(req))
}

// readRequest reads from conn, growing buf and reparsing until
// imgfsproto.Parse succeeds or the header-size limit is exceeded.
func readRequest(conn net.Conn) (*imgfsproto.Request, error) {
	buf := make([]byte, 0, 4096)
	chunk := make([]byte, 4096)

	for {
		req, err := imgfsproto.Parse(buf)
		if err == nil {
			return req, nil
		}
		if err != imgfsproto.ErrNeedMore {
			return nil, err
		}
		if len(buf) > maxHeaderSize && !bytes.Contains(buf, []byte("\r\n\r\n")) {
			return nil, fmt.Errorf("imgfsserver: request exceeds max header size")
		}

		n, err := conn.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
		}
		if err != nil {
			return nil, err
		}
	}
}

func writeResponse(conn net.Conn, resp *imgfsproto.Response) {
	conn.Write(resp.Encode())
}
