package router

// Wildcard matches every path.
const Wildcard = "*"

// Route pairs a static pattern with a value, usually a view.
type Route[V any] struct {
	Pattern string
	View    V
}

// Match returns the view of the first route whose pattern equals path or
// is Wildcard.
func Match[V any](routes []Route[V], path string) (V, bool) {
	for _, rt := range routes {
		if rt.Pattern == path || rt.Pattern == Wildcard {
			return rt.View, true
		}
	}
	var zero V
	return zero, false
}
