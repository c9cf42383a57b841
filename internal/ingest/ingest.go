// Package ingest loads RAG evaluation batches from JSON and JSONL
// sources and normalizes the historical shapes into model.Batch.
package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sprite-ai/daf/internal/model"
)

var (
	// ErrNotJSON marks a payload that is not machine-shaped, e.g. an
	// HTML error page served in place of data.
	ErrNotJSON = errors.New("payload is not JSON")

	// ErrEmptyBatch marks a load that produced zero valid samples.
	ErrEmptyBatch = errors.New("no valid samples in payload")
)

// Format is the detected input format of a payload.
type Format int

const (
	FormatJSON Format = iota
	FormatJSONL
)

func (f Format) String() string {
	if f == FormatJSONL {
		return "jsonl"
	}
	return "json"
}

// Loader fetches and parses evaluation batches. The zero value is
// usable; set Cache to memoize loads by locator.
type Loader struct {
	Cache  *Cache
	Client *http.Client
}

// Load fetches the locator (file path or http(s) URL), parses it, and
// returns a batch of structurally valid samples in input order.
func (l *Loader) Load(locator string) (*model.Batch, error) {
	if l.Cache != nil {
		if b, ok := l.Cache.get(locator); ok {
			return b, nil
		}
	}

	data, err := l.fetch(locator)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", locator, err)
	}

	b, err := Parse(data, locator)
	if err != nil {
		return nil, err
	}

	if l.Cache != nil {
		l.Cache.put(locator, b)
	}
	return b, nil
}

func (l *Loader) fetch(locator string) ([]byte, error) {
	if strings.HasPrefix(locator, "http://") || strings.HasPrefix(locator, "https://") {
		client := l.Client
		if client == nil {
			client = &http.Client{Timeout: 30 * time.Second}
		}
		resp, err := client.Get(locator)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %s", resp.Status)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(locator)
}

// Parse parses a raw payload. The locator is used for format hints and
// error messages only.
func Parse(data []byte, locator string) (*model.Batch, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%s: %w", locator, ErrEmptyBatch)
	}
	if trimmed[0] != '{' && trimmed[0] != '[' {
		return nil, fmt.Errorf("%s: %w", locator, ErrNotJSON)
	}

	if sniffFormat(locator, trimmed) == FormatJSONL {
		return parseJSONL(trimmed, locator)
	}
	return parseDocument(trimmed, locator)
}

// sniffFormat decides between a single JSON document and JSONL. File
// extensions win; otherwise a payload whose first line is a complete
// document with more lines following is treated as JSONL.
func sniffFormat(locator string, data []byte) Format {
	if strings.HasSuffix(locator, ".jsonl") {
		return FormatJSONL
	}
	if strings.HasSuffix(locator, ".json") {
		return FormatJSON
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		first := bytes.TrimSpace(data[:i])
		rest := bytes.TrimSpace(data[i+1:])
		if len(rest) > 0 && json.Valid(first) {
			return FormatJSONL
		}
	}
	return FormatJSON
}
