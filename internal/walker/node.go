package walker

// Node is an Entry together with its visible children
type Node struct {
	Entry
	Children []*Node
	Elided   int  // Children cut by the max-items limit
	Expanded bool // Whether the children were listed at all
}

// VisitFunc is called for every node below the root in display order.
// isLast reports whether the node is the final visible sibling.
type VisitFunc func(n *Node, depth int, isLast bool) error

// Visit walks the tree depth-first in display order, excluding the root
// itself. It stops at the first error returned by fn.
func (n *Node) Visit(fn VisitFunc) error {
	return n.visit(fn, 1)
}

func (n *Node) visit(fn VisitFunc, depth int) error {
	for i, child := range n.Children {
		if err := fn(child, depth, i == len(n.Children)-1); err != nil {
			return err
		}
		if err := child.visit(fn, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// Files returns every file entry in display order
func (n *Node) Files() []Entry {
	var files []Entry
	_ = n.Visit(func(node *Node, _ int, _ bool) error {
		if !node.IsDir {
			files = append(files, node.Entry)
		}
		return nil
	})
	return files
}

// Paths returns the relative path of every node in display order, with a
// trailing slash on directories
func (n *Node) Paths() []string {
	var paths []string
	_ = n.Visit(func(node *Node, _ int, _ bool) error {
		p := node.RelPath
		if node.IsDir {
			p += "/"
		}
		paths = append(paths, p)
		return nil
	})
	return paths
}

// Counts returns the number of visible directories and files below n
func (n *Node) Counts() (dirs, files int) {
	_ = n.Visit(func(node *Node, _ int, _ bool) error {
		if node.IsDir {
			dirs++
		} else {
			files++
		}
		return nil
	})
	return dirs, files
}
