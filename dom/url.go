// URL parsing for the Document Object Model's navigation entry point.
//
// This intentionally does far less than net/url: only the http://
// scheme used by this browser's transport collaborator is supported,
// matching the pragmatic subset the rest of this module implements
// (SPEC_FULL.md §6.1, grounded on
// original_source/saba_core/src/url.rs).
package dom

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnsupportedScheme is returned by ParseURL for any input that does
// not begin with "http://".
var ErrUnsupportedScheme = errors.New("Only HTTP scheme is supported.")

const httpScheme = "http://"
const defaultPort = "80"

// URL is the parsed form of a raw "http://" URL string: scheme prefix
// stripped, authority split into host/port, and the remainder split
// into path/query.
type URL struct {
	Raw   string
	Host  string
	Port  string
	Path  string
	Query string
}

// ParseURL parses raw into a URL, validating that it uses the http://
// scheme. Query strings are preserved verbatim, including embedded
// spaces.
func ParseURL(raw string) (URL, error) {
	if !strings.HasPrefix(raw, httpScheme) {
		return URL{}, ErrUnsupportedScheme
	}

	rest := strings.TrimPrefix(raw, httpScheme)

	authority, remainder, hasPath := strings.Cut(rest, "/")

	host, port := splitAuthority(authority)

	var path, query string
	if hasPath {
		path, query = splitPathAndQuery(remainder)
	}

	return URL{
		Raw:   raw,
		Host:  host,
		Port:  port,
		Path:  path,
		Query: query,
	}, nil
}

func splitAuthority(authority string) (host, port string) {
	if h, p, ok := strings.Cut(authority, ":"); ok {
		return h, p
	}
	return authority, defaultPort
}

func splitPathAndQuery(remainder string) (path, query string) {
	if p, q, ok := strings.Cut(remainder, "?"); ok {
		return p, q
	}
	return remainder, ""
}

// PortNumber parses Port as a base-10 integer, for transport
// collaborators that need a numeric port to dial. Malformed ports fall
// back to 80, mirroring the defaulting behavior of the port field
// itself rather than surfacing a parse error. ParseURL copies whatever
// follows the ':' into Port unchecked, so Port need not be numeric.
func (u URL) PortNumber() int {
	n, err := strconv.Atoi(u.Port)
	if err != nil {
		return 80
	}
	return n
}
