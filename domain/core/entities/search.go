package entities

// NoArticlesAnswer is returned when the knowledge base has nothing matching the search
const NoArticlesAnswer = "I couldn't find any articles related to your search."

// SearchResult is a synthesized answer and the articles it was drawn from
type SearchResult struct {
	Answer  string
	Sources []ArticleSummary
}

// NoMatches is the result for a search without candidate articles
func NoMatches() SearchResult {
	return SearchResult{
		Answer:  NoArticlesAnswer,
		Sources: []ArticleSummary{},
	}
}
