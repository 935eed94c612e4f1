// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// vectorizer fits a TF-IDF model over a corpus and transforms each
// document into a dense L2-normalized weight vector over the capped
// vocabulary. Terms are word unigrams plus, optionally, bigrams; the
// vocabulary is capped at maxFeatures terms chosen by corpus frequency
// (ties broken lexicographically).
//
// All floating-point accumulation (norms, dot products) runs in
// ascending vocabulary-index order, so identical input always produces
// bit-identical vectors. Summing in map iteration order would differ in
// the last ULPs from run to run and break exact-score comparisons.
type vectorizer struct {
	maxFeatures int
	bigrams     bool
}

// fitTransform vectorizes the whole corpus at once. It returns one
// vector per input document, or an error for a degenerate corpus with
// no usable terms.
func (v vectorizer) fitTransform(docs []string) ([][]float64, error) {
	counts := make([]map[string]int, len(docs))
	docFreq := make(map[string]int)
	corpusFreq := make(map[string]int)

	for i, doc := range docs {
		c := make(map[string]int)
		for _, term := range v.terms(doc) {
			c[term]++
		}
		counts[i] = c
		for term, n := range c {
			docFreq[term]++
			corpusFreq[term] += n
		}
	}

	if len(docFreq) == 0 {
		return nil, fmt.Errorf("empty vocabulary: no usable terms in corpus")
	}

	vocab := make([]string, 0, len(docFreq))
	for term := range docFreq {
		vocab = append(vocab, term)
	}
	sort.Slice(vocab, func(i, j int) bool {
		if corpusFreq[vocab[i]] != corpusFreq[vocab[j]] {
			return corpusFreq[vocab[i]] > corpusFreq[vocab[j]]
		}
		return vocab[i] < vocab[j]
	})
	if v.maxFeatures > 0 && len(vocab) > v.maxFeatures {
		vocab = vocab[:v.maxFeatures]
	}

	index := make(map[string]int, len(vocab))
	idf := make([]float64, len(vocab))
	n := float64(len(docs))
	for i, term := range vocab {
		index[term] = i
		// Smoothed IDF: every term behaves as if seen in one extra document.
		idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	vectors := make([][]float64, len(docs))
	for i, c := range counts {
		vec := make([]float64, len(vocab))
		for term, tf := range c {
			if j, ok := index[term]; ok {
				vec[j] = float64(tf) * idf[j]
			}
		}

		var norm float64
		for _, w := range vec {
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for j := range vec {
				vec[j] /= norm
			}
		}
		vectors[i] = vec
	}
	return vectors, nil
}

// terms tokenizes a normalized document into vocabulary terms: stop-word
// filtered unigrams, then bigrams over the filtered sequence.
func (v vectorizer) terms(doc string) []string {
	words := strings.Fields(doc)
	kept := words[:0:0]
	for _, w := range words {
		if !englishStopWords[w] {
			kept = append(kept, w)
		}
	}

	out := make([]string, 0, 2*len(kept))
	out = append(out, kept...)
	if v.bigrams {
		for i := 0; i+1 < len(kept); i++ {
			out = append(out, kept[i]+" "+kept[i+1])
		}
	}
	return out
}

// cosine returns the cosine similarity of two L2-normalized vectors
// over the same vocabulary, clamped to [0, 1].
func cosine(a, b []float64) float64 {
	var dot float64
	for j, w := range a {
		dot += w * b[j]
	}
	return math.Max(0, math.Min(1, dot))
}
