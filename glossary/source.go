package glossary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/ZaguanLabs/sarf"
)

// Source is a read-only static resource.
type Source interface {
	// Name identifies the resource in logs and errors.
	Name() string

	// Open returns the resource body. The caller closes it.
	Open(ctx context.Context) (io.ReadCloser, error)
}

// FileSource reads a resource from disk.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return s.Path }

func (s FileSource) Open(_ context.Context) (io.ReadCloser, error) {
	return os.Open(s.Path) // #nosec G304 - path comes from configuration
}

// FSSource reads a resource from an fs.FS, typically the embedded web assets.
type FSSource struct {
	FS   fs.FS
	Path string
}

func (s FSSource) Name() string { return "fs:" + s.Path }

func (s FSSource) Open(_ context.Context) (io.ReadCloser, error) {
	return s.FS.Open(s.Path)
}

// HTTPSource fetches a resource with a single GET request. There is no retry
// and no timeout beyond the caller's context.
type HTTPSource struct {
	URL    string
	Client *http.Client // defaults to http.DefaultClient
}

func (s HTTPSource) Name() string { return s.URL }

func (s HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", sarf.UserAgent())

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// Decode opens src and decodes its JSON body into v. The body must hold
// exactly one non-null value. Failures are reported as *sarf.LoadError.
func Decode(ctx context.Context, src Source, v any) error {
	if src == nil {
		return &sarf.LoadError{Resource: "<nil>", Cause: fmt.Errorf("no source configured")}
	}

	rc, err := src.Open(ctx)
	if err != nil {
		return &sarf.LoadError{Resource: src.Name(), Cause: err}
	}
	defer rc.Close()

	dec := json.NewDecoder(rc)
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return &sarf.LoadError{Resource: src.Name(), Cause: fmt.Errorf("decoding JSON: %w", err)}
	}
	if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		return &sarf.LoadError{Resource: src.Name(), Cause: errors.New("decoding JSON: trailing data after top-level value")}
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return &sarf.LoadError{Resource: src.Name(), Cause: errors.New("decoding JSON: top-level value is null")}
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &sarf.LoadError{Resource: src.Name(), Cause: fmt.Errorf("decoding JSON: %w", err)}
	}
	return nil
}

// ResolveSource picks a Source for a configured location: an http(s) URL
// becomes an HTTPSource, any other non-empty value a FileSource, and an
// empty location falls back to path inside fallback.
func ResolveSource(location string, fallback fs.FS, path string) Source {
	switch {
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return HTTPSource{URL: location}
	case location != "":
		return FileSource{Path: location}
	default:
		return FSSource{FS: fallback, Path: path}
	}
}
