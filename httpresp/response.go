// Package httpresp parses a raw HTTP response octet stream (already
// UTF-8 decoded) into a structured Response: status line, headers, and
// body. It is deliberately not a general-purpose HTTP client — see
// package transport for that — only the response-parsing half of the
// fetch pipeline.
package httpresp

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/lukehoban/saba-go/log"
)

// defaultStatusCode is substituted, silently, for a status line whose
// status token fails to parse as an unsigned integer: a malformed
// status code does not fail the parse.
const defaultStatusCode = 404

// Header is a single "Name: Value" line from a response header block,
// kept in insertion order rather than coalesced, unlike net/http.Header.
type Header struct {
	Name  string
	Value string
}

// Response is the parsed form of an HTTP response.
type Response struct {
	Version    string
	StatusCode uint
	Reason     string
	Headers    []Header
	Body       string
}

// Parse parses a full HTTP response text into a Response. The line-
// terminator normalization is deliberately "\n\r" -> "\n", not the
// conventional "\r\n" -> "\n" — a quirk preserved rather than silently
// corrected.
func Parse(text string) (Response, error) {
	preprocessed := strings.ReplaceAll(strings.TrimLeftFunc(text, unicode.IsSpace), "\n\r", "\n")

	statusLine, remaining, ok := strings.Cut(preprocessed, "\n")
	if !ok {
		return Response{}, errors.Errorf("invalid http response: %s", preprocessed)
	}

	headers, body := parseHeadersAndBody(remaining)

	version, statusCode, reason, err := parseStatusLine(statusLine, preprocessed)
	if err != nil {
		return Response{}, err
	}

	return Response{
		Version:    version,
		StatusCode: statusCode,
		Reason:     reason,
		Headers:    headers,
		Body:       body,
	}, nil
}

func parseHeadersAndBody(remaining string) ([]Header, string) {
	headerBlock, body, ok := strings.Cut(remaining, "\n\n")
	if !ok {
		return nil, remaining
	}
	if headerBlock == "" {
		return nil, body
	}

	var headers []Header
	for _, line := range strings.Split(headerBlock, "\n") {
		name, value, _ := strings.Cut(line, ":")
		headers = append(headers, Header{
			Name:  strings.TrimSpace(name),
			Value: strings.TrimSpace(value),
		})
	}
	return headers, body
}

func parseStatusLine(statusLine, original string) (version string, statusCode uint, reason string, err error) {
	parts := strings.Split(statusLine, " ")
	if len(parts) != 3 {
		return "", 0, "", errors.Errorf("invalid http response: %s", original)
	}

	code, parseErr := strconv.ParseUint(parts[1], 10, 32)
	if parseErr != nil {
		log.Warnf("non-numeric status code %q in response, defaulting to %d", parts[1], defaultStatusCode)
		code = defaultStatusCode
	}

	return parts[0], uint(code), parts[2], nil
}

// HeaderValue returns the value of the first header matching name,
// compared case-sensitively, or an error if no such header exists.
func (r Response) HeaderValue(name string) (string, error) {
	for _, h := range r.Headers {
		if h.Name == name {
			return h.Value, nil
		}
	}
	return "", errors.Errorf("failed to find %s in headers", name)
}
