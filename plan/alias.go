package plan

// aliasGen hands out source aliases in a fixed order: a, b, ..., z, aa,
// ab, ... (bijective base-26). A fresh generator is created per rendering
// scope, so the same plan always renders with the same aliases and nested
// subqueries restart from "a" in their own scope.
type aliasGen struct {
	n int
}

// next returns the next alias in sequence.
func (g *aliasGen) next() string {
	g.n++
	n := g.n
	var buf []byte
	for n > 0 {
		n--
		buf = append([]byte{byte('a' + n%26)}, buf...)
		n /= 26
	}
	return string(buf)
}
