// Package dataset loads the graph shown on the canvas from CSV files.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/graph/simple"

	"touchviz/internal/domain"
)

// ErrMissingFile is returned when a configured CSV file does not exist
var ErrMissingFile = errors.New("dataset file missing")

// Node is one element that can be selected
type Node struct {
	ID    string
	Label string
	Pos   domain.Point
}

// Graph is a thin wrapper over an undirected gonum graph keyed by node ids
type Graph struct {
	g     *simple.UndirectedGraph
	nodes []Node
	index map[string]int64
}

func newGraph() *Graph {
	return &Graph{
		g:     simple.NewUndirectedGraph(),
		index: make(map[string]int64),
	}
}

// Load reads nodes and, when edgesPath is not empty, edges
func Load(nodesPath, edgesPath string) (*Graph, error) {
	nf, err := open(nodesPath)
	if err != nil {
		return nil, err
	}
	defer nf.Close()

	var edges io.Reader
	if edgesPath != "" {
		ef, err := open(edgesPath)
		if err != nil {
			return nil, err
		}
		defer ef.Close()
		edges = ef
	}

	g, err := Parse(nf, edges)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", nodesPath, err)
	}
	return g, nil
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingFile, path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, nil
}

// Parse reads a nodes CSV (id,x,y[,label]) and an optional edges CSV (source,target)
func Parse(nodes, edges io.Reader) (*Graph, error) {
	g := newGraph()

	rows, cols, err := readCSV(nodes, "id", "x", "y")
	if err != nil {
		return nil, fmt.Errorf("nodes: %w", err)
	}
	label, hasLabel := cols["label"]
	for i, row := range rows {
		id := strings.TrimSpace(row[cols["id"]])
		x, errX := strconv.ParseFloat(strings.TrimSpace(row[cols["x"]]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(row[cols["y"]]), 64)
		if errX != nil || errY != nil {
			return nil, fmt.Errorf("nodes: line %d: invalid position", i+2)
		}
		n := Node{ID: id, Label: id, Pos: domain.Point{X: x, Y: y}}
		if hasLabel && strings.TrimSpace(row[label]) != "" {
			n.Label = strings.TrimSpace(row[label])
		}
		if err := g.addNode(n); err != nil {
			return nil, fmt.Errorf("nodes: line %d: %w", i+2, err)
		}
	}

	if edges == nil {
		return g, nil
	}
	rows, cols, err = readCSV(edges, "source", "target")
	if err != nil {
		return nil, fmt.Errorf("edges: %w", err)
	}
	for i, row := range rows {
		if err := g.addEdge(strings.TrimSpace(row[cols["source"]]), strings.TrimSpace(row[cols["target"]])); err != nil {
			return nil, fmt.Errorf("edges: line %d: %w", i+2, err)
		}
	}
	return g, nil
}

func readCSV(r io.Reader, required ...string) ([][]string, map[string]int, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, errors.New("empty file")
	}
	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, nil, fmt.Errorf("missing column %q", name)
		}
	}
	return records[1:], cols, nil
}

func (g *Graph) addNode(n Node) error {
	if n.ID == "" {
		return errors.New("empty node id")
	}
	if _, exists := g.index[n.ID]; exists {
		return fmt.Errorf("duplicate node %q", n.ID)
	}
	gid := int64(len(g.nodes))
	g.g.AddNode(simple.Node(gid))
	g.index[n.ID] = gid
	g.nodes = append(g.nodes, n)
	return nil
}

func (g *Graph) addEdge(source, target string) error {
	from, ok := g.index[source]
	if !ok {
		return fmt.Errorf("unknown node %q", source)
	}
	to, ok := g.index[target]
	if !ok {
		return fmt.Errorf("unknown node %q", target)
	}
	if from == to {
		return nil
	}
	g.g.SetEdge(g.g.NewEdge(simple.Node(from), simple.Node(to)))
	return nil
}

// Len returns the number of nodes
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Nodes returns the nodes in file order
func (g *Graph) Nodes() []Node {
	nodes := make([]Node, len(g.nodes))
	copy(nodes, g.nodes)
	return nodes
}

// Node looks up a node by id
func (g *Graph) Node(id string) (Node, bool) {
	gid, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[gid], true
}

// Neighbors returns the ids adjacent to id in file order
func (g *Graph) Neighbors(id string) []string {
	gid, ok := g.index[id]
	if !ok {
		return nil
	}
	var gids []int64
	it := g.g.From(gid)
	for it.Next() {
		gids = append(gids, it.Node().ID())
	}
	sort.Slice(gids, func(i, j int) bool { return gids[i] < gids[j] })

	ids := make([]string, len(gids))
	for i, n := range gids {
		ids[i] = g.nodes[n].ID
	}
	return ids
}

// Edges returns every edge once as a pair of ids, lower file position first
func (g *Graph) Edges() [][2]string {
	var pairs [][2]int64
	it := g.g.Edges()
	for it.Next() {
		e := it.Edge()
		a, b := e.From().ID(), e.To().ID()
		if a > b {
			a, b = b, a
		}
		pairs = append(pairs, [2]int64{a, b})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})

	edges := make([][2]string, len(pairs))
	for i, p := range pairs {
		edges[i] = [2]string{g.nodes[p[0]].ID, g.nodes[p[1]].ID}
	}
	return edges
}

// Bounds returns the smallest box holding every node
func (g *Graph) Bounds() (lo, hi domain.Point) {
	if len(g.nodes) == 0 {
		return lo, hi
	}
	lo, hi = g.nodes[0].Pos, g.nodes[0].Pos
	for _, n := range g.nodes[1:] {
		lo.X = math.Min(lo.X, n.Pos.X)
		lo.Y = math.Min(lo.Y, n.Pos.Y)
		hi.X = math.Max(hi.X, n.Pos.X)
		hi.Y = math.Max(hi.Y, n.Pos.Y)
	}
	return lo, hi
}

// Demo returns two rings of nodes joined by spokes, used when no dataset is configured
func Demo() *Graph {
	g := newGraph()
	const ring = 12
	for r, radius := range []float64{40, 20} {
		for i := 0; i < ring; i++ {
			angle := 2 * math.Pi * float64(i) / ring
			_ = g.addNode(Node{
				ID:    fmt.Sprintf("n%d", r*ring+i),
				Label: fmt.Sprintf("n%d", r*ring+i),
				Pos: domain.Point{
					X: 50 + radius*math.Cos(angle),
					Y: 50 + radius*math.Sin(angle),
				},
			})
		}
	}
	for r := 0; r < 2; r++ {
		for i := 0; i < ring; i++ {
			_ = g.addEdge(fmt.Sprintf("n%d", r*ring+i), fmt.Sprintf("n%d", r*ring+(i+1)%ring))
		}
	}
	for i := 0; i < ring; i += 3 {
		_ = g.addEdge(fmt.Sprintf("n%d", i), fmt.Sprintf("n%d", ring+i))
	}
	return g
}
