// Package network renders the illustrative "brain network" animation: a small
// fixed 3D graph whose edges light up at random, with the amount and color of
// activity set by the detected mood.
package network

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/muesli/clusters"
)

// Sentinel errors.
var (
	// ErrEmptyGraph is returned when a graph has no nodes or no edges.
	ErrEmptyGraph = errors.New("graph has no nodes or edges")

	// ErrNoFrames is returned when an animation is configured with zero frames.
	ErrNoFrames = errors.New("animation has no frames")
)

// Fixed topology parameters. The seed only fixes the layout and the chord
// set; it is never used for per-frame selection.
const (
	nodeCount       = 10
	edgeProbability = 0.3
	topologySeed    = 10
)

// Node is a labelled point in 3D space.
type Node struct {
	ID  string
	Pos clusters.Coordinates // x, y, z in [0, 1)
}

// Coordinates implements clusters.Observation.
func (n Node) Coordinates() clusters.Coordinates {
	return n.Pos
}

// Distance implements clusters.Observation.
func (n Node) Distance(point clusters.Coordinates) float64 {
	return n.Pos.Distance(point)
}

// Edge connects two nodes by index into Graph.Nodes.
type Edge struct {
	From, To int
}

// Graph is an undirected graph with positioned nodes.
type Graph struct {
	Nodes []Node
	Edges []Edge
}

// Topology returns the fixed network used by every animation.
//
// Ten nodes N0..N9 are placed at constant pseudo-random positions in the unit
// cube. Every node is joined to its successor in a ring so the graph is
// connected, and each remaining pair is joined with probability 0.3 drawn
// from a constant-seeded source. Repeated calls return identical graphs.
func Topology() Graph {
	rng := rand.New(rand.NewSource(topologySeed))

	g := Graph{Nodes: make([]Node, nodeCount)}
	for i := range g.Nodes {
		g.Nodes[i] = Node{
			ID:  fmt.Sprintf("N%d", i),
			Pos: clusters.Coordinates{rng.Float64(), rng.Float64(), rng.Float64()},
		}
	}

	for i := 0; i < nodeCount; i++ {
		g.Edges = append(g.Edges, Edge{From: i, To: (i + 1) % nodeCount})
	}

	// Stable trial order: i ascending, then j ascending, skipping ring pairs
	for i := 0; i < nodeCount; i++ {
		for j := i + 2; j < nodeCount; j++ {
			if i == 0 && j == nodeCount-1 {
				continue
			}
			if rng.Float64() < edgeProbability {
				g.Edges = append(g.Edges, Edge{From: i, To: j})
			}
		}
	}

	return g
}

// Validate checks that the graph has nodes, edges, and only valid endpoints.
func (g Graph) Validate() error {
	if len(g.Nodes) == 0 || len(g.Edges) == 0 {
		return ErrEmptyGraph
	}
	for i, e := range g.Edges {
		if e.From < 0 || e.From >= len(g.Nodes) || e.To < 0 || e.To >= len(g.Nodes) {
			return fmt.Errorf("edge %d (%d-%d) references a missing node", i, e.From, e.To)
		}
	}
	return nil
}

// Center returns the centroid of the node positions.
func (g Graph) Center() (clusters.Coordinates, error) {
	obs := make(clusters.Observations, len(g.Nodes))
	for i, n := range g.Nodes {
		obs[i] = n
	}
	return obs.Center()
}
