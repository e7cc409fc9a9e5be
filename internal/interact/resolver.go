package interact

import (
	"strings"

	"github.com/hot7585325/WebVR/internal/engine/scene"
)

// ParseFilter splits a comma-separated name list into filter tokens.
// Tokens are trimmed and empty ones dropped, so "A, ,B," yields [A B].
func ParseFilter(spec string) []string {
	var names []string
	for _, tok := range strings.Split(spec, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			names = append(names, tok)
		}
	}
	return names
}

// Resolve derives the interactive subset of records. An empty name list
// makes every mesh interactive; otherwise a record is included iff its name
// exactly matches one of the names (case-sensitive, no wildcards).
// Discovery order is preserved and duplicate names all resolve. Pure over
// its inputs, so callers re-run it whenever the filter or records change.
func Resolve(records []MeshRecord, names []string) []*scene.Node {
	if len(names) == 0 {
		nodes := make([]*scene.Node, len(records))
		for i, r := range records {
			nodes[i] = r.Node
		}
		return nodes
	}

	allowed := make(map[string]bool, len(names))
	for _, n := range names {
		allowed[n] = true
	}
	var nodes []*scene.Node
	for _, r := range records {
		if allowed[r.Name] {
			nodes = append(nodes, r.Node)
		}
	}
	return nodes
}
