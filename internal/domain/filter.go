package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Matches reports whether a single attribute value satisfies the condition.
func (c Condition) Matches(value any) bool {
	if c.Equals != nil {
		return valuesEqual(value, c.Equals)
	}
	if len(c.OneOf) > 0 {
		for _, candidate := range c.OneOf {
			if valuesEqual(value, candidate) {
				return true
			}
		}
		return false
	}
	if c.Min != nil || c.Max != nil {
		num, ok := toFloat(value)
		if !ok {
			return false
		}
		if c.Min != nil && num < *c.Min {
			return false
		}
		if c.Max != nil && num > *c.Max {
			return false
		}
		return true
	}
	return false
}

// MatchesProduct reports whether every condition in the predicate holds for
// the product. A product missing a referenced attribute does not match.
// An empty predicate matches all products.
func (p FilterPredicate) MatchesProduct(product Product) bool {
	for attr, cond := range p {
		value, ok := product.Attributes[attr]
		if !ok {
			return false
		}
		if !cond.Matches(value) {
			return false
		}
	}
	return true
}

// MatchesAll reports whether the product satisfies every predicate (logical AND).
func MatchesAll(predicates []FilterPredicate, product Product) bool {
	for _, pred := range predicates {
		if !pred.MatchesProduct(product) {
			return false
		}
	}
	return true
}

// CanonicalKey derives a stable cache key from a predicate set: element order
// and map iteration order do not affect the result. Used by candidate caches.
func CanonicalKey(predicates []FilterPredicate) string {
	parts := make([]string, 0, len(predicates))
	for _, pred := range predicates {
		attrs := make([]string, 0, len(pred))
		for attr := range pred {
			attrs = append(attrs, attr)
		}
		sort.Strings(attrs)
		var b strings.Builder
		for _, attr := range attrs {
			raw, _ := json.Marshal(pred[attr])
			b.WriteString(attr)
			b.WriteByte('=')
			b.Write(raw)
			b.WriteByte(';')
		}
		parts = append(parts, b.String())
	}
	sort.Strings(parts)
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:16])
}

// valuesEqual compares attribute values across the types JSON decoding can
// produce: numbers compare numerically, everything else by formatted value.
func valuesEqual(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
		return false
	}
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
