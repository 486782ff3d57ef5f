//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CreateTestWorkspace creates the directory the app runs in
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	dir, err := os.MkdirTemp("", "touchviz-e2e-*")
	if err != nil {
		return "", err
	}
	tf.workspace = dir
	return dir, nil
}

// WriteDataset writes nodes.csv and edges.csv into the workspace
func (tf *TUITestFramework) WriteDataset(nodes [][3]string, edges [][2]string) (string, string, error) {
	var nb strings.Builder
	nb.WriteString("id,x,y\n")
	for _, n := range nodes {
		fmt.Fprintf(&nb, "%s,%s,%s\n", n[0], n[1], n[2])
	}
	var eb strings.Builder
	eb.WriteString("source,target\n")
	for _, e := range edges {
		fmt.Fprintf(&eb, "%s,%s\n", e[0], e[1])
	}

	nodesPath := filepath.Join(tf.workspace, "nodes.csv")
	edgesPath := filepath.Join(tf.workspace, "edges.csv")
	if err := os.WriteFile(nodesPath, []byte(nb.String()), 0644); err != nil {
		return "", "", err
	}
	if err := os.WriteFile(edgesPath, []byte(eb.String()), 0644); err != nil {
		return "", "", err
	}
	return nodesPath, edgesPath, nil
}

// WriteConfig writes a .touchviz.toml into the workspace
func (tf *TUITestFramework) WriteConfig(content string) error {
	return os.WriteFile(filepath.Join(tf.workspace, ".touchviz.toml"), []byte(content), 0644)
}

// cornersAndCenter is a dataset with one node in the middle of the canvas
var cornersAndCenter = [][3]string{
	{"tl", "0", "0"},
	{"tr", "100", "0"},
	{"bl", "0", "100"},
	{"br", "100", "100"},
	{"mid", "50", "50"},
}
