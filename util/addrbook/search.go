package addrbook

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

type Entry struct {
	Name    string
	Address string
	Score   int
}

// fuzzySource matches a query against "name_address" so both parts count.
type fuzzySource []Entry

func (s fuzzySource) Len() int {
	return len(s)
}

func (s fuzzySource) String(i int) string {
	return strings.ReplaceAll(s[i].Name, " ", "_") + "_" + strings.ToLower(s[i].Address)
}

// Search returns at most limit entries fuzzy matching query, best first.
// An empty query lists every entry by name.
func (m Map) Search(query string, limit int) []Entry {
	source := make(fuzzySource, 0, len(m))
	for name, addr := range m {
		source = append(source, Entry{Name: name, Address: addr})
	}
	sort.Slice(source, func(i, j int) bool { return source[i].Name < source[j].Name })

	query = strings.ToLower(strings.TrimSpace(query))
	var result []Entry
	if query == "" {
		result = source
	} else {
		for _, match := range fuzzy.FindFrom(query, source) {
			e := source[match.Index]
			e.Score = match.Score
			result = append(result, e)
		}
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}
