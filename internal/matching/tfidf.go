package matching

import (
	"math"
	"regexp"
	"strings"

	"github.com/jonathan/resume-fit/internal/parsing"
)

// wordPattern selects tokens of two or more letters, digits or underscores.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// terms returns the unigrams and bigrams of text. Stop words are removed before bigrams are formed.
func terms(text string) []string {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)

	kept := words[:0]
	for _, w := range words {
		if !parsing.IsStopWord(w) {
			kept = append(kept, w)
		}
	}

	out := make([]string, 0, 2*len(kept))
	out = append(out, kept...)
	for i := 1; i < len(kept); i++ {
		out = append(out, kept[i-1]+" "+kept[i])
	}
	return out
}

// tfidfCosine fits a TF-IDF model on the two documents and returns the cosine similarity of
// their rows. Weights are raw term counts times the smoothed idf ln((1+n)/(1+df))+1, and rows
// are L2-normalized. ok is false when the documents share no vocabulary at all.
func tfidfCosine(a, b string) (sim float64, ok bool) {
	countsA := countTerms(terms(a))
	countsB := countTerms(terms(b))
	if len(countsA) == 0 && len(countsB) == 0 {
		return 0, false
	}

	const n = 2.0
	idf := func(term string) float64 {
		df := 0.0
		if countsA[term] > 0 {
			df++
		}
		if countsB[term] > 0 {
			df++
		}
		return math.Log((1+n)/(1+df)) + 1
	}

	weigh := func(counts map[string]int) map[string]float64 {
		w := make(map[string]float64, len(counts))
		var norm float64
		for term, c := range counts {
			v := float64(c) * idf(term)
			w[term] = v
			norm += v * v
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			return w
		}
		for term := range w {
			w[term] /= norm
		}
		return w
	}

	wa, wb := weigh(countsA), weigh(countsB)
	for term, va := range wa {
		sim += va * wb[term]
	}
	return sim, true
}

func countTerms(ts []string) map[string]int {
	counts := make(map[string]int, len(ts))
	for _, t := range ts {
		counts[t]++
	}
	return counts
}
