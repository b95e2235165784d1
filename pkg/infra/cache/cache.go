package cache

import (
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tigerline/pkg/domain/types"
)

// Store is a plain on-disk cache of downloaded archives, keyed by the
// trailing path segment of the resource URL. There is no eviction and no
// locking: a file, once written, is assumed valid until a read failure
// proves otherwise.
type Store struct {
	dir string
}

// New creates a Store rooted at dir. When dir is empty the user cache
// directory is used (e.g. ~/.cache/tigerline on Linux).
func New(dir string) (*Store, error) {
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, goerr.Wrap(err, "resolving user cache directory")
		}
		dir = filepath.Join(base, types.AppName)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, goerr.Wrap(err, "creating cache directory", goerr.Value("dir", dir))
	}
	return &Store{dir: dir}, nil
}

// Dir returns the cache directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path derives the local cache path for a resource URL: the URL's
// trailing path segment under the cache directory. Query strings do not
// contribute to the key, so the same resource always maps to the same
// file.
func (s *Store) Path(rawURL string) string {
	base := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		base = u.Path
	}
	return filepath.Join(s.dir, path.Base(base))
}

// Has reports whether a cached copy for url exists.
func (s *Store) Has(rawURL string) bool {
	_, err := os.Stat(s.Path(rawURL))
	return err == nil
}

// Put writes the content of r to the cache entry for url. The write is
// atomic (temp file + rename) so a failed download never leaves a
// partial cache entry behind. It returns the cache path and byte count.
func (s *Store) Put(rawURL string, r io.Reader) (string, int64, error) {
	dst := s.Path(rawURL)

	tmp, err := os.CreateTemp(s.dir, path.Base(dst)+".tmp-*")
	if err != nil {
		return "", 0, goerr.Wrap(err, "creating temp file", goerr.Value("dir", s.dir))
	}
	tmpName := tmp.Name()

	n, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", 0, goerr.Wrap(err, "writing cache entry", goerr.Value("url", rawURL))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", 0, goerr.Wrap(err, "closing cache entry", goerr.Value("path", tmpName))
	}
	if err := os.Rename(tmpName, dst); err != nil {
		os.Remove(tmpName)
		return "", 0, goerr.Wrap(err, "committing cache entry", goerr.Value("path", dst))
	}
	return dst, n, nil
}

// Remove deletes the cache entry for url. Removing a missing entry is
// not an error.
func (s *Store) Remove(rawURL string) error {
	if err := os.Remove(s.Path(rawURL)); err != nil && !os.IsNotExist(err) {
		return goerr.Wrap(err, "removing cache entry", goerr.Value("url", rawURL))
	}
	return nil
}
