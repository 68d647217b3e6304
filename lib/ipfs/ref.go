package ipfs

import (
	"net/url"
	"strings"

	"github.com/ipfs/go-cid"
	logging "github.com/ipfs/go-log/v2"
	"golang.org/x/xerrors"
)

var log = logging.Logger("ipfs")

const Scheme = "ipfs://"

var ErrNotIPFS = xerrors.New("not an ipfs reference")

// Ref is a content id with an optional path inside it.
type Ref struct {
	Cid  cid.Cid
	Path string
}

// String renders r as an ipfs:// URI.
func (r Ref) String() string {
	s := Scheme + r.Cid.String()
	if r.Path != "" {
		s += "/" + r.Path
	}
	return s
}

// ParseRef accepts a bare content id, an ipfs:// URI or a gateway URL of the
// form https://<host>/ipfs/<cid>[/path].
func ParseRef(ref string) (Ref, error) {
	ref = strings.TrimSpace(ref)

	var rest string
	switch {
	case strings.HasPrefix(ref, Scheme):
		rest = strings.TrimPrefix(ref, Scheme)
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		u, err := url.Parse(ref)
		if err != nil {
			return Ref{}, xerrors.Errorf("parsing url: %w", err)
		}
		p, ok := strings.CutPrefix(u.Path, "/ipfs/")
		if !ok {
			return Ref{}, xerrors.Errorf("%s: %w", ref, ErrNotIPFS)
		}
		rest = p
	default:
		rest = ref
	}

	id, path, _ := strings.Cut(strings.Trim(rest, "/"), "/")
	c, err := cid.Decode(id)
	if err != nil {
		return Ref{}, xerrors.Errorf("%q: %w", ref, ErrNotIPFS)
	}
	return Ref{Cid: c, Path: path}, nil
}

// Resolve returns one fetchable URL per mirror for ref. Mirrors are gateway
// prefixes ending in /ipfs/.
func Resolve(ref string, mirrors []string) ([]string, error) {
	r, err := ParseRef(ref)
	if err != nil {
		return nil, err
	}
	if len(mirrors) == 0 {
		return nil, xerrors.New("no gateway mirrors configured")
	}

	suffix := r.Cid.String()
	if r.Path != "" {
		suffix += "/" + r.Path
	}

	urls := make([]string, 0, len(mirrors))
	for _, m := range mirrors {
		if !strings.HasSuffix(m, "/") {
			m += "/"
		}
		urls = append(urls, m+suffix)
	}
	return urls, nil
}
