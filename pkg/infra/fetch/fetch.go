package fetch

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jlaffaye/ftp"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tigerline/pkg/domain/interfaces"
	"github.com/m-mizutani/tigerline/pkg/domain/model"
	"github.com/m-mizutani/tigerline/pkg/infra/cache"
	"github.com/m-mizutani/tigerline/pkg/infra/shapefile"
)

// ftpMirrors maps web download hosts to their FTP mirrors. The Census
// Bureau publishes the TIGER tree on both.
var ftpMirrors = map[string]string{
	"www2.census.gov": "ftp2.census.gov",
}

var errNoFTPMirror = goerr.New("no FTP mirror for host")

// Client implements the shared download/cache/subset pipeline behind
// every dataset accessor. It is not safe against concurrent processes
// sharing one cache directory; that race is accepted for a single-user
// interactive tool.
type Client struct {
	store *cache.Store
	http  *resty.Client
}

var _ interfaces.Fetcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying resty client, mainly for tests.
func WithHTTPClient(hc *resty.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New creates a fetch client writing into store.
func New(store *cache.Store, opts ...Option) *Client {
	c := &Client{
		store: store,
		http:  resty.New().SetHeader("User-Agent", "tigerline"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store returns the underlying cache store.
func (c *Client) Store() *cache.Store {
	return c.store
}

// LoadShapefile retrieves a zipped shapefile archive and decodes it.
//
// With caching enabled the archive is keyed by its URL basename in the
// cache directory; a cached copy that fails to decode is deleted and
// re-fetched exactly once, and a second decode failure is fatal. With
// caching disabled the archive is downloaded to a temp file and removed
// after decoding.
func (c *Client) LoadShapefile(ctx context.Context, rawURL string, opt model.FetchOptions) (*model.FeatureCollection, error) {
	logger := ctxlog.From(ctx)

	if !opt.Cache {
		data, err := c.download(ctx, rawURL, opt)
		if err != nil {
			return nil, err
		}
		tmp, err := os.CreateTemp("", "tigerline-*.zip")
		if err != nil {
			return nil, goerr.Wrap(err, "creating temp file")
		}
		defer os.Remove(tmp.Name())
		if _, err := tmp.Write(data); err != nil {
			tmp.Close()
			return nil, goerr.Wrap(err, "writing temp archive", goerr.Value("url", rawURL))
		}
		if err := tmp.Close(); err != nil {
			return nil, goerr.Wrap(err, "closing temp archive", goerr.Value("url", rawURL))
		}
		fc, err := shapefile.Decode(tmp.Name())
		if err != nil {
			return nil, goerr.Wrap(err, "decoding downloaded archive", goerr.Value("url", rawURL))
		}
		return opt.Subset.Apply(fc), nil
	}

	res, err := c.ensure(ctx, rawURL, opt)
	if err != nil {
		return nil, err
	}
	path := res.Path

	fc, err := shapefile.Decode(path)
	if err != nil {
		// Cached copy is corrupt: delete it and re-fetch once.
		logger.Warn("cached archive failed to decode, re-downloading",
			"url", rawURL, "path", path, "error", err)
		if err := c.store.Remove(rawURL); err != nil {
			return nil, err
		}
		if _, err := c.fill(ctx, rawURL, opt); err != nil {
			return nil, err
		}
		fc, err = shapefile.Decode(path)
		if err != nil {
			return nil, goerr.Wrap(err, "archive unreadable after re-download",
				goerr.Value("url", rawURL), goerr.Value("path", path))
		}
	}
	return opt.Subset.Apply(fc), nil
}

// FetchFile retrieves a raw published file, from cache when enabled.
func (c *Client) FetchFile(ctx context.Context, rawURL string, opt model.FetchOptions) ([]byte, error) {
	if !opt.Cache {
		return c.download(ctx, rawURL, opt)
	}
	res, err := c.ensure(ctx, rawURL, opt)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(res.Path)
	if err != nil {
		return nil, goerr.Wrap(err, "reading cached file", goerr.Value("url", rawURL))
	}
	return data, nil
}

// Invalidate removes the cached copy for url.
func (c *Client) Invalidate(rawURL string) error {
	return c.store.Remove(rawURL)
}

// ensure reports the cached copy for url, downloading it first on a
// cache miss.
func (c *Client) ensure(ctx context.Context, rawURL string, opt model.FetchOptions) (model.FetchResult, error) {
	if c.store.Has(rawURL) {
		path := c.store.Path(rawURL)
		ctxlog.From(ctx).Debug("using cached file", "url", rawURL, "path", path)
		return model.FetchResult{URL: rawURL, Path: path, FromCache: true}, nil
	}
	return c.fill(ctx, rawURL, opt)
}

// fill downloads url into the cache store.
func (c *Client) fill(ctx context.Context, rawURL string, opt model.FetchOptions) (model.FetchResult, error) {
	data, err := c.download(ctx, rawURL, opt)
	if err != nil {
		return model.FetchResult{}, err
	}
	path, n, err := c.store.Put(rawURL, bytes.NewReader(data))
	if err != nil {
		return model.FetchResult{}, err
	}
	result := model.FetchResult{URL: rawURL, Path: path, Size: n}
	ctxlog.From(ctx).Info("downloaded archive",
		"url", result.URL, "path", result.Path, "size_bytes", result.Size)
	return result, nil
}

// download retrieves url over the requested transport, falling back to
// the other transport on failure. Failure of both is surfaced with the
// primary error.
func (c *Client) download(ctx context.Context, rawURL string, opt model.FetchOptions) ([]byte, error) {
	logger := ctxlog.From(ctx)

	order := []model.Protocol{model.ProtocolHTTP, model.ProtocolFTP}
	if opt.Protocol == model.ProtocolFTP {
		order = []model.Protocol{model.ProtocolFTP, model.ProtocolHTTP}
	}

	var firstErr error
	for i, proto := range order {
		var data []byte
		var err error
		switch proto {
		case model.ProtocolFTP:
			data, err = c.ftpGet(ctx, rawURL, opt.EffectiveTimeout())
		default:
			data, err = c.httpGet(ctx, rawURL, opt.EffectiveTimeout())
		}
		if err == nil {
			return data, nil
		}
		if firstErr == nil {
			firstErr = err
		}
		if i+1 < len(order) {
			logger.Warn("download attempt failed, trying fallback transport",
				"url", rawURL, "transport", string(proto), "error", err)
		}
	}
	return nil, goerr.Wrap(firstErr, "download failed over all transports",
		goerr.Value("url", rawURL))
}

func (c *Client) httpGet(ctx context.Context, rawURL string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := c.http.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		return nil, goerr.Wrap(err, "HTTP GET failed", goerr.Value("url", rawURL))
	}
	if resp.StatusCode() != 200 {
		return nil, goerr.New("unexpected HTTP status",
			goerr.Value("url", rawURL),
			goerr.Value("status", resp.StatusCode()))
	}
	return resp.Body(), nil
}

func (c *Client) ftpGet(ctx context.Context, rawURL string, timeout time.Duration) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, goerr.Wrap(err, "parsing URL", goerr.Value("url", rawURL))
	}

	host := u.Host
	if u.Scheme != "ftp" {
		mirror, ok := ftpMirrors[u.Host]
		if !ok {
			return nil, goerr.Wrap(errNoFTPMirror, "FTP transfer unavailable",
				goerr.Value("host", u.Host))
		}
		host = mirror
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, err := ftp.Dial(host+":21", ftp.DialWithContext(ctx))
	if err != nil {
		return nil, goerr.Wrap(err, "FTP dial failed", goerr.Value("host", host))
	}
	defer conn.Quit()

	if err := conn.Login("anonymous", "anonymous"); err != nil {
		return nil, goerr.Wrap(err, "FTP login failed", goerr.Value("host", host))
	}
	r, err := conn.Retr(u.Path)
	if err != nil {
		return nil, goerr.Wrap(err, "FTP retrieve failed",
			goerr.Value("host", host), goerr.Value("path", u.Path))
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, goerr.Wrap(err, "reading FTP response", goerr.Value("url", rawURL))
	}
	return data, nil
}
