package document

import (
	"sort"
	"strings"
)

// Token weights for endpoint relevance scoring. OperationID and tag hits
// rank above path hits, which rank above prose hits.
const (
	scoreOperationID = 4
	scoreTag         = 3
	scorePath        = 3
	scoreSummary     = 2
	scoreDescription = 1
)

// SearchResult pairs an endpoint with its relevance score for one query.
type SearchResult struct {
	Endpoint Endpoint
	Score    int
}

// SearchEndpoints performs a case-insensitive relevance search over the
// endpoint table. The query is split on whitespace and every token is
// matched as a substring against path, operationId, summary, description,
// and tags; an endpoint's score is the sum over all tokens. Endpoints with
// a zero score are omitted. Results are ordered by descending score, ties
// broken by path then method. A non-positive limit returns all matches.
func (d *Document) SearchEndpoints(query string, limit int) []SearchResult {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return nil
	}

	var results []SearchResult
	for _, ep := range d.endpoints {
		score := scoreEndpoint(ep, tokens)
		if score > 0 {
			results = append(results, SearchResult{Endpoint: ep, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].Endpoint.Path != results[j].Endpoint.Path {
			return results[i].Endpoint.Path < results[j].Endpoint.Path
		}
		return results[i].Endpoint.Method < results[j].Endpoint.Method
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

func scoreEndpoint(ep Endpoint, tokens []string) int {
	path := strings.ToLower(ep.Path)
	opID := strings.ToLower(ep.OperationID)
	summary := strings.ToLower(ep.Summary)
	desc := strings.ToLower(ep.Description)

	score := 0
	for _, token := range tokens {
		if opID != "" && strings.Contains(opID, token) {
			score += scoreOperationID
		}
		if strings.Contains(path, token) {
			score += scorePath
		}
		for _, tag := range ep.Tags {
			if strings.Contains(strings.ToLower(tag), token) {
				score += scoreTag
				break
			}
		}
		if summary != "" && strings.Contains(summary, token) {
			score += scoreSummary
		}
		if desc != "" && strings.Contains(desc, token) {
			score += scoreDescription
		}
	}
	return score
}
