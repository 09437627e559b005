package graph

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	commitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "baudgraph",
		Name:      "commits_total",
		Help:      "Transaction commits by result.",
	}, []string{"result"})

	committedVertices = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "baudgraph",
		Name:      "committed_vertices_total",
		Help:      "Vertices written by successful commits.",
	})

	committedEdges = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "baudgraph",
		Name:      "committed_edges_total",
		Help:      "Logical edges written by successful commits, each as two keys.",
	})
)

func observeCommit(err error, vertices, edges int) {
	if err != nil {
		commitsTotal.WithLabelValues("error").Inc()
		return
	}
	commitsTotal.WithLabelValues("ok").Inc()
	committedVertices.Add(float64(vertices))
	committedEdges.Add(float64(edges))
}
