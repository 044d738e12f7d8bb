package marquee

import "go.uber.org/zap"

// Thresholds for debug-mode tree warnings.
const (
	debugMaxTreeDepth  = 32
	debugMaxChildCount = 1000
)

// treeStats summarizes a region tree for debug logging.
type treeStats struct {
	regions    int
	depth      int
	widest     string
	widestKids int
}

func measureTree(root *Region) treeStats {
	var st treeStats
	var walk func(r *Region, depth int)
	walk = func(r *Region, depth int) {
		if r.IsDisposed() {
			return
		}
		st.regions++
		st.depth = max(st.depth, depth)
		if n := len(r.children); n > st.widestKids {
			st.widest, st.widestKids = r.Name, n
		}
		for _, c := range r.children {
			walk(c, depth+1)
		}
	}
	walk(root, 1)
	return st
}

// debugCheckTree warns when a mounted tree is deeper or wider than any page
// should be. Only called in debug mode.
func debugCheckTree(log *zap.Logger, root *Region) treeStats {
	st := measureTree(root)
	if st.depth > debugMaxTreeDepth {
		log.Warn("region tree is deep",
			zap.Int("depth", st.depth),
			zap.Int("threshold", debugMaxTreeDepth))
	}
	if st.widestKids > debugMaxChildCount {
		log.Warn("region has many children",
			zap.String("region", st.widest),
			zap.Int("children", st.widestKids),
			zap.Int("threshold", debugMaxChildCount))
	}
	return st
}
