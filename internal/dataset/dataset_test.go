package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"touchviz/internal/domain"
)

const nodesCSV = `id,x,y,label
a,0,0,Alpha
b, 10, 0,
c,10,10,Gamma
d,0,10,Delta
`

const edgesCSV = `source,target
a,b
b,c
c,a
d,d
`

func TestParseNodesAndEdges(t *testing.T) {
	g, err := Parse(strings.NewReader(nodesCSV), strings.NewReader(edgesCSV))
	require.NoError(t, err)

	assert.Equal(t, 4, g.Len())
	n, ok := g.Node("b")
	require.True(t, ok)
	assert.Equal(t, Node{ID: "b", Label: "b", Pos: domain.Point{X: 10, Y: 0}}, n)

	a, _ := g.Node("a")
	assert.Equal(t, "Alpha", a.Label)

	assert.Equal(t, []string{"b", "c"}, g.Neighbors("a"))
	assert.Empty(t, g.Neighbors("d"), "self loops are dropped")
	assert.Nil(t, g.Neighbors("zzz"))
	assert.Equal(t, [][2]string{{"a", "b"}, {"a", "c"}, {"b", "c"}}, g.Edges())

	lo, hi := g.Bounds()
	assert.Equal(t, domain.Point{X: 0, Y: 0}, lo)
	assert.Equal(t, domain.Point{X: 10, Y: 10}, hi)
}

func TestParseWithoutEdges(t *testing.T) {
	g, err := Parse(strings.NewReader(nodesCSV), nil)
	require.NoError(t, err)
	assert.Empty(t, g.Edges())
	ids := make([]string, 0, g.Len())
	for _, n := range g.Nodes() {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids)
}

func TestParseErrors(t *testing.T) {
	cases := map[string][2]string{
		"missing column": {"id,x\na,1\n", ""},
		"bad position":   {"id,x,y\na,1,north\n", ""},
		"duplicate node": {"id,x,y\na,1,1\na,2,2\n", ""},
		"empty node id":  {"id,x,y\n,1,1\n", ""},
		"empty file":     {"", ""},
		"unknown edge":   {"id,x,y\na,1,1\n", "source,target\na,b\n"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			var edges *strings.Reader
			if c[1] != "" {
				edges = strings.NewReader(c[1])
			}
			var err error
			if edges != nil {
				_, err = Parse(strings.NewReader(c[0]), edges)
			} else {
				_, err = Parse(strings.NewReader(c[0]), nil)
			}
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFileIsFatal(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "nodes.csv"), "")
	assert.ErrorIs(t, err, ErrMissingFile)

	nodes := filepath.Join(dir, "present.csv")
	require.NoError(t, os.WriteFile(nodes, []byte(nodesCSV), 0644))
	_, err = Load(nodes, filepath.Join(dir, "edges.csv"))
	assert.ErrorIs(t, err, ErrMissingFile)
}

func TestLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	nodes := filepath.Join(dir, "nodes.csv")
	edges := filepath.Join(dir, "edges.csv")
	require.NoError(t, os.WriteFile(nodes, []byte(nodesCSV), 0644))
	require.NoError(t, os.WriteFile(edges, []byte(edgesCSV), 0644))

	g, err := Load(nodes, edges)
	require.NoError(t, err)
	assert.Equal(t, 4, g.Len())
	assert.Len(t, g.Edges(), 3)
}

func TestDemo(t *testing.T) {
	g := Demo()
	assert.Equal(t, 24, g.Len())
	assert.Len(t, g.Edges(), 28)
	assert.Equal(t, []string{"n1", "n11", "n12"}, g.Neighbors("n0"))

	lo, hi := g.Bounds()
	assert.InDelta(t, 10, lo.X, 1e-9)
	assert.InDelta(t, 90, hi.X, 1e-9)
}
