// Package vectorize turns pipe-delimited attribute strings into token-count
// vectors over a vocabulary fitted on a candidate pool.
package vectorize

import (
	"errors"
	"math"
	"strings"
)

// ErrEmptyVocabulary is returned by Fit when the pool yields no tokens.
var ErrEmptyVocabulary = errors.New("empty vocabulary")

// Vector is a dense count vector indexed by vocabulary position.
type Vector []float64

// Vectorizer maps attribute strings onto a fitted vocabulary.
type Vectorizer struct {
	sep   string
	index map[string]int
	terms []string
}

// Option applies a configuration option to the Vectorizer.
type Option func(*Vectorizer)

// WithSeparator overrides the token separator ("|").
func WithSeparator(sep string) Option {
	return func(v *Vectorizer) {
		if sep != "" {
			v.sep = sep
		}
	}
}

// Fit builds the vocabulary from docs in first-seen order. Tokens are split
// strictly on the separator and case-folded. The empty token between two
// adjacent separators is a term like any other; an empty doc has no tokens.
func Fit(docs []string, opts ...Option) (*Vectorizer, error) {
	v := &Vectorizer{sep: "|", index: make(map[string]int)}
	for _, opt := range opts {
		opt(v)
	}

	for _, doc := range docs {
		for _, tok := range v.tokenize(doc) {
			if _, ok := v.index[tok]; !ok {
				v.index[tok] = len(v.terms)
				v.terms = append(v.terms, tok)
			}
		}
	}
	if len(v.terms) == 0 {
		return nil, ErrEmptyVocabulary
	}
	return v, nil
}

func (v *Vectorizer) tokenize(doc string) []string {
	if doc == "" {
		return nil
	}
	parts := strings.Split(doc, v.sep)
	for i, p := range parts {
		parts[i] = strings.ToLower(p)
	}
	return parts
}

// Vocabulary returns the fitted terms in index order.
func (v *Vectorizer) Vocabulary() []string {
	return append([]string(nil), v.terms...)
}

// Index returns the vocabulary position of token, if any.
func (v *Vectorizer) Index(token string) (int, bool) {
	i, ok := v.index[strings.ToLower(token)]
	return i, ok
}

// Transform counts the tokens of doc in the fitted space. Tokens outside the
// vocabulary are ignored.
func (v *Vectorizer) Transform(doc string) Vector {
	vec := make(Vector, len(v.terms))
	for _, tok := range v.tokenize(doc) {
		if i, ok := v.index[tok]; ok {
			vec[i]++
		}
	}
	return vec
}

// TransformAll transforms every doc.
func (v *Vectorizer) TransformAll(docs []string) []Vector {
	out := make([]Vector, len(docs))
	for i, d := range docs {
		out[i] = v.Transform(d)
	}
	return out
}

// Norm is the Euclidean length of vec.
func (vec Vector) Norm() float64 {
	var sum float64
	for _, x := range vec {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Dot is the inner product; vectors must come from the same Vectorizer.
func (vec Vector) Dot(other Vector) float64 {
	var sum float64
	for i := range vec {
		sum += vec[i] * other[i]
	}
	return sum
}

// Cosine returns the cosine similarity of a and b, or 0 when either has zero
// length.
func Cosine(a, b Vector) float64 {
	sa, sb := a.Dot(a), b.Dot(b)
	if sa == 0 || sb == 0 {
		return 0
	}
	// One square root of the product keeps identical count vectors at exactly 1.
	return a.Dot(b) / math.Sqrt(sa*sb)
}
