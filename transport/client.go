// Package transport is the HTTP client collaborator: it owns the raw
// TCP connection and hand-built request line, handing the raw response
// bytes to package httpresp for parsing. Grounded on
// original_source/net/wasabi/src/http.rs, which builds its request by
// hand because its run-time has no HTTP client library available; this
// port keeps that shape rather than routing through net/http, so
// httpresp.Parse stays the one place response parsing actually happens.
package transport

import (
	"io"
	"net"
	"strings"

	"github.com/pkg/errors"

	"github.com/lukehoban/saba-go/httpresp"
	"github.com/lukehoban/saba-go/log"
)

// Client issues GET requests over a fresh TCP connection per call.
type Client struct{}

// NewClient creates a Client.
func NewClient() *Client {
	return &Client{}
}

// Get resolves host, dials port, sends a bare HTTP/1.1 GET request for
// path with Connection: close, reads the full response, and parses it.
func (c *Client) Get(host, port, path string) (httpresp.Response, error) {
	log.Debugf("transport: GET http://%s:%s/%s", host, port, path)

	conn, err := net.Dial("tcp", net.JoinHostPort(host, port))
	if err != nil {
		return httpresp.Response{}, errors.Wrap(err, "failed to connect to TCP stream")
	}
	defer conn.Close()

	request := buildRequest(host, path)
	if _, err := conn.Write([]byte(request)); err != nil {
		return httpresp.Response{}, errors.Wrap(err, "failed to send a request to TCP stream")
	}

	received, err := io.ReadAll(conn)
	if err != nil {
		return httpresp.Response{}, errors.Wrap(err, "failed to receive a response from TCP stream")
	}

	return httpresp.Parse(string(received))
}

func buildRequest(host, path string) string {
	var b strings.Builder
	b.WriteString("GET /")
	b.WriteString(path)
	b.WriteString(" HTTP/1.1\n")
	b.WriteString("Host: ")
	b.WriteString(host)
	b.WriteString("\n")
	b.WriteString("Accept: text/html\n")
	b.WriteString("Connection: close\n")
	b.WriteString("\n")
	return b.String()
}
