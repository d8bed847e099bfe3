package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/hioder/internal/core/domain"
	"github.com/custodia-labs/hioder/internal/core/ports/driven"
	"github.com/custodia-labs/hioder/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.DatasetLoader = (*Loader)(nil)

// maxDocumentSize bounds a single dataset document.
const maxDocumentSize = 64 << 20

// errTooLarge reports a document over maxDocumentSize.
var (
	errTooLarge     = errors.New("document too large")
	errTrailingData = errors.New("unexpected data after the JSON document")
)

// Loader fetches dataset documents.
type Loader struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewLoader creates a loader with the given timeout and request rate.
// A non-positive rate disables limiting.
func NewLoader(settings domain.LoaderSettings) *Loader {
	limit := rate.Inf
	if settings.RateLimit > 0 {
		limit = rate.Limit(settings.RateLimit)
	}
	return &Loader{
		client:  &http.Client{Timeout: settings.Timeout},
		limiter: rate.NewLimiter(limit, 1),
	}
}

// SetHTTPClient replaces the HTTP client.
func (l *Loader) SetHTTPClient(c *http.Client) {
	l.client = c
}

// Load fetches src and returns its records with string values trimmed.
func (l *Loader) Load(ctx context.Context, src domain.Source) ([]domain.Record, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, &domain.LoadError{URL: src.URL, Err: err}
	}

	start := time.Now()
	data, name, err := l.read(ctx, src.URL)
	if err != nil {
		return nil, err
	}
	logger.Debug("Fetched %s (%d bytes) in %s", src.URL, len(data), time.Since(start))

	doc, err := decode(data, name)
	if err != nil {
		return nil, &domain.LoadError{URL: src.URL, Err: fmt.Errorf("decode: %w", err)}
	}

	records, err := extract(doc, src)
	if err != nil {
		return nil, &domain.LoadError{URL: src.URL, Err: err}
	}
	return records, nil
}

// read returns the document bytes and the path used to pick a decoder.
func (l *Loader) read(ctx context.Context, location string) ([]byte, string, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, "", &domain.LoadError{URL: location, Err: err}
	}

	switch u.Scheme {
	case "http", "https":
		data, err := l.fetch(ctx, location)
		return data, u.Path, err
	case "file":
		data, err := readFile(u.Path)
		if err != nil {
			return nil, "", &domain.LoadError{URL: location, Err: err}
		}
		return data, u.Path, nil
	case "":
		data, err := readFile(location)
		if err != nil {
			return nil, "", &domain.LoadError{URL: location, Err: err}
		}
		return data, location, nil
	default:
		return nil, "", &domain.LoadError{URL: location, Err: fmt.Errorf("unsupported scheme %q", u.Scheme)}
	}
}

func (l *Loader) fetch(ctx context.Context, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, &domain.LoadError{URL: location, Err: err}
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.1")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &domain.LoadError{URL: location, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.LoadError{URL: location, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, &domain.LoadError{URL: location, Err: err}
	}
	if len(data) > maxDocumentSize {
		return nil, &domain.LoadError{URL: location, Err: errTooLarge}
	}
	return data, nil
}

func readFile(name string) ([]byte, error) {
	info, err := os.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxDocumentSize {
		return nil, errTooLarge
	}
	return os.ReadFile(name)
}

// IsLocal reports whether location names a local file.
func IsLocal(location string) bool {
	u, err := url.Parse(location)
	if err != nil {
		return false
	}
	return u.Scheme == "" || u.Scheme == "file"
}

// LocalPath returns the filesystem path of a local location.
func LocalPath(location string) string {
	if u, err := url.Parse(location); err == nil && u.Scheme == "file" {
		return u.Path
	}
	return location
}

func decode(data []byte, name string) (any, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return normalize(doc), nil
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		var doc any
		if err := dec.Decode(&doc); err != nil {
			return nil, err
		}
		if _, err := dec.Token(); !errors.Is(err, io.EOF) {
			return nil, errTrailingData
		}
		return doc, nil
	}
}

// normalize converts YAML values to the shapes JSON decoding produces.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, item := range t {
			t[k] = normalize(item)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[fmt.Sprint(k)] = normalize(item)
		}
		return out
	case []any:
		for i, item := range t {
			t[i] = normalize(item)
		}
		return t
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return v
	}
}

func extract(doc any, src domain.Source) ([]domain.Record, error) {
	if src.Shape == domain.ShapeGrouped {
		obj, ok := doc.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("expected an object: %w", domain.ErrInvalidInput)
		}
		return domain.FlattenGroups(obj, src.Grouping)
	}

	items, ok := doc.([]any)
	if !ok {
		return nil, fmt.Errorf("expected an array: %w", domain.ErrInvalidInput)
	}
	records := make([]domain.Record, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			logger.Warn("Skipping non-object element %d in %s", i, src.URL)
			continue
		}
		records = append(records, domain.Record(obj).Trimmed())
	}
	return records, nil
}
