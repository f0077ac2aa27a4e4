package gitrepo

import (
	"bytes"
	"compress/zlib"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/multiformats/go-multihash"

	"github.com/dhruvpatel-05/Git-Topo-Sort/internal/dag"
)

// ObjectStore reads loose commit objects from a .git/objects directory.
// Objects are zlib-compressed files at objects/<id[:2]>/<id[2:]>, named by
// the SHA-1 of their decompressed bytes.
type ObjectStore struct {
	dir string // path to objects/ directory
}

// NewObjectStore creates an ObjectStore over the given objects directory.
func NewObjectStore(dir string) *ObjectStore {
	return &ObjectStore{dir: dir}
}

// ReadParents implements dag.ParentReader. It returns the parent IDs
// recorded in the commit's header lines, in recorded order. A missing
// object fails with dag.ErrObjectNotFound; an object that exists but does
// not decompress, parse, or hash correctly fails with a distinct error.
func (s *ObjectStore) ReadParents(id string) ([]string, error) {
	data, err := s.read(id)
	if err != nil {
		return nil, err
	}
	return parseCommitParents(id, data)
}

// read loads and decompresses the object, then checks that the content
// actually hashes to the requested ID. A store that has been tampered with
// or corrupted surfaces here instead of silently mis-linking history.
func (s *ObjectStore) read(id string) ([]byte, error) {
	if len(id) < 3 {
		return nil, fmt.Errorf("commit %q: %w", id, dag.ErrObjectNotFound)
	}
	path := filepath.Join(s.dir, id[:2], id[2:])
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("commit %s: %w", id, dag.ErrObjectNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("open object %s: %w", id, err)
	}
	defer f.Close()

	zr, err := zlib.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decompress object %s: %w", id, err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("decompress object %s: %w", id, err)
	}

	got, err := ObjectID(data)
	if err != nil {
		return nil, fmt.Errorf("hash object %s: %w", id, err)
	}
	if got != id {
		return nil, fmt.Errorf("object %s: content hashes to %s", id, got)
	}
	return data, nil
}

// ObjectID computes the loose-object name (hex SHA-1) for the given
// decompressed object bytes, header included.
func ObjectID(data []byte) (string, error) {
	mh, err := multihash.Sum(data, multihash.SHA1, -1)
	if err != nil {
		return "", fmt.Errorf("multihash: %w", err)
	}
	dec, err := multihash.Decode(mh)
	if err != nil {
		return "", fmt.Errorf("decode multihash: %w", err)
	}
	return hex.EncodeToString(dec.Digest), nil
}

// parseCommitParents validates the "commit <len>\0" header and collects the
// "parent <id>" header lines. Commit headers end at the first blank line;
// nothing in the message body is inspected.
func parseCommitParents(id string, data []byte) ([]string, error) {
	nul := bytes.IndexByte(data, 0)
	if nul < 0 {
		return nil, fmt.Errorf("object %s: missing header terminator", id)
	}
	header := string(data[:nul])
	body := data[nul+1:]

	typ, size, ok := strings.Cut(header, " ")
	if !ok || typ != "commit" {
		return nil, fmt.Errorf("object %s: not a commit (header %q)", id, header)
	}
	if n, err := strconv.Atoi(size); err != nil || n != len(body) {
		return nil, fmt.Errorf("object %s: header length %q does not match %d body bytes", id, size, len(body))
	}

	var parents []string
	for _, line := range strings.Split(string(body), "\n") {
		if line == "" {
			break
		}
		if rest, found := strings.CutPrefix(line, "parent "); found {
			parents = append(parents, rest)
		}
	}
	return parents, nil
}
