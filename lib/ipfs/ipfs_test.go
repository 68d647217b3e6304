package ipfs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"github.com/stretchr/testify/require"
)

func rawCid(t *testing.T, data []byte) cid.Cid {
	t.Helper()
	mh, err := multihash.Sum(data, multihash.SHA2_256, -1)
	require.NoError(t, err)
	return cid.NewCidV1(cid.Raw, mh)
}

func TestParseRef(t *testing.T) {
	c := rawCid(t, []byte("image"))

	for _, in := range []string{
		c.String(),
		"ipfs://" + c.String(),
		"https://ipfs.io/ipfs/" + c.String(),
		"  ipfs://" + c.String() + "/  ",
	} {
		r, err := ParseRef(in)
		require.NoError(t, err, in)
		require.True(t, r.Cid.Equals(c), in)
		require.Empty(t, r.Path, in)
		require.Equal(t, "ipfs://"+c.String(), r.String())
	}

	r, err := ParseRef("ipfs://" + c.String() + "/photos/1.png")
	require.NoError(t, err)
	require.Equal(t, "photos/1.png", r.Path)

	for _, in := range []string{"", "not-a-cid", "https://example.com/image.png", "ipfs://"} {
		_, err := ParseRef(in)
		require.ErrorIs(t, err, ErrNotIPFS, in)
	}
}

func TestResolve(t *testing.T) {
	c := rawCid(t, []byte("image"))

	urls, err := Resolve("ipfs://"+c.String(), []string{"https://a.example/ipfs/", "https://b.example/ipfs"})
	require.NoError(t, err)
	require.Equal(t, []string{
		"https://a.example/ipfs/" + c.String(),
		"https://b.example/ipfs/" + c.String(),
	}, urls)

	_, err = Resolve("ipfs://"+c.String(), nil)
	require.Error(t, err)
}

func TestFetchFallsBackToNextMirror(t *testing.T) {
	data := []byte("product photo")
	c := rawCid(t, data)

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer down.Close()

	var hits int
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		require.Equal(t, "/ipfs/"+c.String(), r.URL.Path)
		_, _ = w.Write(data)
	}))
	defer up.Close()

	f := NewFetcher([]string{down.URL + "/ipfs/", up.URL + "/ipfs/"}, time.Second)
	got, from, err := f.Fetch(context.Background(), "ipfs://"+c.String())
	require.NoError(t, err)
	require.Equal(t, data, got)
	require.Equal(t, up.URL+"/ipfs/"+c.String(), from)
	require.Equal(t, 1, hits)
}

func TestFetchRejectsTamperedContent(t *testing.T) {
	c := rawCid(t, []byte("original"))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("tampered"))
	}))
	defer srv.Close()

	f := NewFetcher([]string{srv.URL + "/ipfs/"}, time.Second)
	_, _, err := f.Fetch(context.Background(), c.String())
	require.ErrorIs(t, err, ErrContentMismatch)
}

// kuboAPI serves the parts of the kubo RPC API the uploader talks to.
func kuboAPI(add http.HandlerFunc) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v0/version":
			w.Header().Set("Content-Type", "application/json")
			_, _ = fmt.Fprint(w, `{"Version":"0.32.1","Commit":"","Repo":"16","System":"amd64/linux","Golang":"go1.23.3"}`)
		case "/api/v0/add":
			add(w, r)
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestUpload(t *testing.T) {
	data := "png bytes"
	c := rawCid(t, []byte(data))

	var (
		query    url.Values
		received []byte
	)
	srv := kuboAPI(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()

		mr, err := r.MultipartReader()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		part, err := mr.NextPart()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		received, _ = io.ReadAll(part)

		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"Name":"%s","Hash":"%s","Size":"%d"}`, c, c, len(received))
	})
	defer srv.Close()

	up, err := NewUploader(srv.URL+"/", nil)
	require.NoError(t, err)

	got, err := up.Upload(context.Background(), "photo.png", strings.NewReader(data))
	require.NoError(t, err)
	require.True(t, got.Equals(c))
	require.Equal(t, data, string(received))
	require.Equal(t, "1", query.Get("cid-version"))
	require.Equal(t, "true", query.Get("raw-leaves"))
}

func TestUploadError(t *testing.T) {
	srv := kuboAPI(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no space left", http.StatusInternalServerError)
	})
	defer srv.Close()

	up, err := NewUploader(srv.URL, nil)
	require.NoError(t, err)

	_, err = up.Upload(context.Background(), "photo.png", strings.NewReader("x"))
	require.ErrorContains(t, err, "no space left")
}
