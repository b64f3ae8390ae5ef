// Package snapshot exports and imports the whole contract state as a
// deterministic TAR archive.
//
// Layout:
//
//	entries/<key path>   one file per persisted key, holding the raw value
//	index.json           version, state root, and the raw CID of every entry
//
// Equal state always exports to identical bytes: entries are written in key
// order and TAR headers are normalized.
package snapshot

import (
	"archive/tar"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/ipfs/go-cid"

	"xdao.co/jumpring/cidutil"
	"xdao.co/jumpring/state"
	"xdao.co/jumpring/storage"
)

// FormatVersion is the current index schema version.
const FormatVersion = 1

const (
	indexName     = "index.json"
	entriesPrefix = "entries/"
)

var epoch0 = time.Unix(0, 0).UTC()

// Export writes every entry of s to w and returns the state root recorded in
// the index.
func Export(ctx context.Context, w io.Writer, s *state.Store) (cid.Cid, error) {
	if s == nil {
		return cid.Undef, storage.ErrNoBackend
	}
	entries, err := s.Entries(ctx)
	if err != nil {
		return cid.Undef, err
	}
	root, err := state.RootOf(entries)
	if err != nil {
		return cid.Undef, err
	}

	tw := tar.NewWriter(w)
	idx := indexJSON{
		Version: FormatVersion,
		Root:    root.String(),
		Entries: make([]indexEntry, 0, len(entries)),
	}
	for _, e := range entries {
		id, err := cidutil.RawSHA256(e.Value)
		if err != nil {
			_ = tw.Close()
			return cid.Undef, err
		}
		if err := writeFile(tw, entryPath(e.Key), e.Value); err != nil {
			_ = tw.Close()
			return cid.Undef, err
		}
		idx.Entries = append(idx.Entries, indexEntry{Key: e.Key, CID: id.String(), Size: len(e.Value)})
	}

	b, err := json.Marshal(idx)
	if err != nil {
		_ = tw.Close()
		return cid.Undef, err
	}
	if err := writeFile(tw, indexName, append(b, '\n')); err != nil {
		_ = tw.Close()
		return cid.Undef, err
	}
	return root, tw.Close()
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	// ExpectRoot, when defined, must equal the root in the index.
	ExpectRoot cid.Cid
}

// Import reads a snapshot from r into the empty store s and returns its root.
//
// Every entry is checked against its indexed CID and the recomputed state
// root must match the index before anything is written. Unknown entries and
// non-regular files are rejected.
func Import(ctx context.Context, r io.Reader, s *state.Store, opts ImportOptions) (cid.Cid, error) {
	if s == nil {
		return cid.Undef, storage.ErrNoBackend
	}

	tr := tar.NewReader(r)
	values := map[string][]byte{}
	var idx *indexJSON

	for {
		h, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return cid.Undef, err
		}
		name := cleanTarPath(h.Name)
		if name == "" {
			return cid.Undef, fmt.Errorf("snapshot: invalid entry path: %q", h.Name)
		}
		if h.Typeflag != tar.TypeReg {
			return cid.Undef, fmt.Errorf("snapshot: unexpected tar entry type: %v (%s)", h.Typeflag, name)
		}

		payload, err := io.ReadAll(tr)
		if err != nil {
			return cid.Undef, err
		}

		switch {
		case name == indexName:
			if idx != nil {
				return cid.Undef, fmt.Errorf("snapshot: duplicate %s", indexName)
			}
			idx = new(indexJSON)
			if err := json.Unmarshal(payload, idx); err != nil {
				return cid.Undef, fmt.Errorf("snapshot: decode %s: %w", indexName, err)
			}
		case strings.HasPrefix(name, entriesPrefix):
			key := "/" + strings.TrimPrefix(name, entriesPrefix)
			if _, dup := values[key]; dup {
				return cid.Undef, fmt.Errorf("snapshot: duplicate entry: %s", key)
			}
			values[key] = payload
		default:
			return cid.Undef, fmt.Errorf("snapshot: unknown entry: %s", name)
		}
	}

	if idx == nil {
		return cid.Undef, fmt.Errorf("snapshot: missing %s", indexName)
	}
	if idx.Version != FormatVersion {
		return cid.Undef, fmt.Errorf("snapshot: unsupported version %d", idx.Version)
	}
	if len(idx.Entries) != len(values) {
		return cid.Undef, fmt.Errorf("snapshot: index lists %d entries, archive has %d", len(idx.Entries), len(values))
	}

	entries := make([]state.Entry, 0, len(values))
	seen := make(map[string]struct{}, len(idx.Entries))
	for _, ie := range idx.Entries {
		if !state.ValidKey(ie.Key) {
			return cid.Undef, fmt.Errorf("snapshot: indexed key outside the state layout: %q", ie.Key)
		}
		if _, dup := seen[ie.Key]; dup {
			return cid.Undef, fmt.Errorf("snapshot: duplicate indexed key: %s", ie.Key)
		}
		seen[ie.Key] = struct{}{}
		v, ok := values[ie.Key]
		if !ok {
			return cid.Undef, fmt.Errorf("snapshot: indexed entry %s missing", ie.Key)
		}
		got, err := cidutil.RawSHA256(v)
		if err != nil {
			return cid.Undef, err
		}
		if got.String() != ie.CID {
			return cid.Undef, fmt.Errorf("snapshot: entry %s: %w", ie.Key, storage.ErrCorrupt)
		}
		entries = append(entries, state.Entry{Key: ie.Key, Value: v})
	}
	for key := range values {
		if _, ok := seen[key]; !ok {
			return cid.Undef, fmt.Errorf("snapshot: archive entry %s is not indexed", key)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })

	root, err := state.RootOf(entries)
	if err != nil {
		return cid.Undef, err
	}
	if root.String() != idx.Root {
		return cid.Undef, storage.ErrRootMismatch
	}
	if opts.ExpectRoot.Defined() && !opts.ExpectRoot.Equals(root) {
		return cid.Undef, storage.ErrRootMismatch
	}

	if err := s.Restore(ctx, entries); err != nil {
		return cid.Undef, err
	}
	return root, nil
}

type indexJSON struct {
	Version int          `json:"version"`
	Root    string       `json:"root"`
	Entries []indexEntry `json:"entries"`
}

type indexEntry struct {
	Key  string `json:"key"`
	CID  string `json:"cid"`
	Size int    `json:"size"`
}

func entryPath(key string) string {
	return entriesPrefix + strings.TrimPrefix(key, "/")
}

func writeFile(tw *tar.Writer, name string, content []byte) error {
	hdr := &tar.Header{
		Name:     name,
		Mode:     0o644,
		Size:     int64(len(content)),
		ModTime:  epoch0,
		Typeflag: tar.TypeReg,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	_, err := io.Copy(tw, bytes.NewReader(content))
	return err
}

func cleanTarPath(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.TrimPrefix(name, "./")
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		return ""
	}
	for _, part := range strings.Split(name, "/") {
		if part == "" || part == "." || part == ".." {
			return ""
		}
	}
	return name
}
