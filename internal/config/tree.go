package config

import "strings"

// Tree is a nested configuration mapping. Branch nodes are Tree values,
// anything else is a leaf. A dotted key addresses one leaf or subtree.
type Tree map[string]any

// set writes value at the dotted key, creating intermediate branches as
// needed. A leaf in the way of a branch segment is replaced by a branch;
// sibling keys are never touched.
func (t Tree) set(key string, value any) {
	segments := strings.Split(key, ".")
	node := t
	for _, seg := range segments[:len(segments)-1] {
		child, ok := node[seg].(Tree)
		if !ok {
			child = Tree{}
			node[seg] = child
		}
		node = child
	}
	node[segments[len(segments)-1]] = value
}

// lookup resolves the dotted key. The second return reports presence.
func (t Tree) lookup(key string) (any, bool) {
	segments := strings.Split(key, ".")
	node := t
	for i, seg := range segments {
		value, ok := node[seg]
		if !ok {
			return nil, false
		}
		if i == len(segments)-1 {
			return value, true
		}
		node, ok = value.(Tree)
		if !ok {
			return nil, false
		}
	}
	return nil, false
}

// merge applies src over t key-wise: leaves in src overwrite leaves in t at
// the same position, but siblings only present in t survive. Subtrees are
// descended into, not replaced wholesale.
func (t Tree) merge(src Tree) {
	for key, srcVal := range src {
		srcSub, srcIsTree := srcVal.(Tree)
		if !srcIsTree {
			t[key] = srcVal
			continue
		}
		dstSub, dstIsTree := t[key].(Tree)
		if !dstIsTree {
			dstSub = Tree{}
			t[key] = dstSub
		}
		dstSub.merge(srcSub)
	}
}

// clone returns a deep copy of the tree's branch structure. Leaf values are
// shared; they are treated as immutable after load.
func (t Tree) clone() Tree {
	out := make(Tree, len(t))
	for key, value := range t {
		if sub, ok := value.(Tree); ok {
			out[key] = sub.clone()
			continue
		}
		out[key] = value
	}
	return out
}

// fromJSONValue converts a decoded JSON document (map[string]any and friends)
// into a Tree so merge semantics apply uniformly across sources.
func fromJSONValue(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	out := make(Tree, len(m))
	for key, value := range m {
		out[key] = fromJSONValue(value)
	}
	return out
}

// toPlainMap converts a subtree back into plain map[string]any for callers
// that should not see the internal Tree type.
func toPlainMap(t Tree) map[string]any {
	out := make(map[string]any, len(t))
	for key, value := range t {
		if sub, ok := value.(Tree); ok {
			out[key] = toPlainMap(sub)
			continue
		}
		out[key] = value
	}
	return out
}
