// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

// englishStopWords lists common English function words excluded from the
// vocabulary. They carry no topical signal and would otherwise dominate
// document frequency.
var englishStopWords = map[string]bool{}

func init() {
	words := []string{
		"about", "above", "after", "again", "against", "all", "also", "and",
		"any", "are", "because", "been", "before", "being", "below", "between",
		"both", "but", "can", "cannot", "could", "did", "does", "doing",
		"down", "during", "each", "few", "for", "from", "further", "had",
		"has", "have", "having", "her", "here", "hers", "herself", "him",
		"himself", "his", "how", "however", "into", "its", "itself", "may",
		"might", "more", "most", "must", "not", "now", "off", "once", "only",
		"other", "our", "ours", "ourselves", "out", "over", "own", "same",
		"she", "should", "some", "such", "than", "that", "the", "their",
		"theirs", "them", "themselves", "then", "there", "these", "they",
		"this", "those", "through", "too", "under", "until", "upon", "very",
		"was", "were", "what", "when", "where", "which", "while", "who",
		"whom", "why", "will", "with", "within", "without", "would", "you",
		"your", "yours", "yourself", "yourselves",
	}
	for _, w := range words {
		englishStopWords[w] = true
	}
}
