package imgfsproto

import (
	"bytes"
	"strconv"
)

// StatusCode identifies a response's status line.
type StatusCode int

const (
	StatusOK                  StatusCode = 200
	StatusFound               StatusCode = 302
	StatusNotFound            StatusCode = 404
	StatusInternalServerError StatusCode = 500
)

func (c StatusCode) reason() string {
	switch c {
	case StatusOK:
		return "OK"
	case StatusFound:
		return "Found"
	case StatusNotFound:
		return "Not Found"
	case StatusInternalServerError:
		return "Internal Server Error"
	default:
		return "Unknown"
	}
}

// Response is a status line, an ordered header list, and a body. Build
// one with NewResponse and serialize it with Encode.
type Response struct {
	Status  StatusCode
	Headers []Header
	Body    []byte
}

// NewResponse builds a Response with Content-Length set from len(body)
// and contentType recorded as Content-Type (empty contentType omits
// the header).
func NewResponse(status StatusCode, contentType string, body []byte) *Response {
	r := &Response{Status: status, Body: body}
	if contentType != "" {
		r.Headers = append(r.Headers, Header{Key: []byte("Content-Type"), Value: []byte(contentType)})
	}
	r.Headers = append(r.Headers, Header{
		Key:   []byte("Content-Length"),
		Value: []byte(strconv.Itoa(len(body))),
	})
	return r
}

// Redirect builds a 302 Found response pointing at location.
func Redirect(location string) *Response {
	r := NewResponse(StatusFound, "", nil)
	r.Headers = append(r.Headers, Header{Key: []byte("Location"), Value: []byte(location)})
	return r
}

// Encode serializes r as:
//
//	<PROTOCOL-TAG> SP <code> SP <reason> CRLF
//	(Header-Name ": " value CRLF)*
//	CRLF
//	<body>
func (r *Response) Encode() []byte {
	var buf bytes.Buffer
	buf.WriteString(ProtocolTag)
	buf.WriteByte(' ')
	buf.WriteString(strconv.Itoa(int(r.Status)))
	buf.WriteByte(' ')
	buf.WriteString(r.Status.reason())
	buf.Write(crlf)
	for _, h := range r.Headers {
		buf.Write(h.Key)
		buf.Write(colonSP)
		buf.Write(h.Value)
		buf.Write(crlf)
	}
	buf.Write(crlf)
	buf.Write(r.Body)
	return buf.Bytes()
}
