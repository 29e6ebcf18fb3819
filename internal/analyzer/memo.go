package analyzer

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"

	gocache "github.com/patrickmn/go-cache"
)

// memo remembers the findings of file contents already analyzed in this
// run. Entries never expire; the memo lives as long as its Analyzer.
type memo struct {
	cache *gocache.Cache
}

func newMemo() *memo {
	return &memo{cache: gocache.New(gocache.NoExpiration, 0)}
}

// contentKey identifies content by hash. The extension is part of the key
// because it selects the parser.
func contentKey(path string, content []byte) string {
	sum := sha256.Sum256(content)
	return strings.ToLower(filepath.Ext(path)) + ":" + hex.EncodeToString(sum[:])
}

func (m *memo) put(key string, res FileResult) {
	m.cache.SetDefault(key, res)
}

// get returns the stored result relabelled with path.
func (m *memo) get(key, path string) (FileResult, bool) {
	v, ok := m.cache.Get(key)
	if !ok {
		return FileResult{}, false
	}
	res := v.(FileResult)
	res.Path = path
	res.Cached = true

	findings := make([]Finding, len(res.Findings))
	for i, f := range res.Findings {
		f.Span.File = path
		findings[i] = f
	}
	res.Findings = findings
	return res, true
}

func (m *memo) len() int {
	return m.cache.ItemCount()
}
