package profile

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector adapts a Recorder and its tree's allocator statistics to a
// prometheus.Collector. All metrics are read on scrape; nothing is added to
// the recording hot path.
type Collector struct {
	recorder *Recorder

	samples        *prometheus.Desc
	distinctPaths  *prometheus.Desc
	internedFrames *prometheus.Desc
	liveNodes      *prometheus.Desc
	nodesAllocated *prometheus.Desc
	nodesDiscarded *prometheus.Desc
	growths        *prometheus.Desc
}

func NewCollector(r *Recorder) *Collector {
	return &Collector{
		recorder: r,
		samples: prometheus.NewDesc(
			"profile_samples_total", "Call paths recorded.", nil, nil),
		distinctPaths: prometheus.NewDesc(
			"profile_distinct_paths", "Distinct call paths seen.", nil, nil),
		internedFrames: prometheus.NewDesc(
			"profile_interned_frames", "Frame names interned.", nil, nil),
		liveNodes: prometheus.NewDesc(
			"prefixtree_live_nodes", "Nodes currently allocated in the tree.", nil, nil),
		nodesAllocated: prometheus.NewDesc(
			"prefixtree_nodes_allocated_total", "Nodes handed out, speculative losers included.", nil, nil),
		nodesDiscarded: prometheus.NewDesc(
			"prefixtree_nodes_discarded_total", "Speculative nodes returned to the pool.", nil, nil),
		growths: prometheus.NewDesc(
			"prefixtree_child_array_growths_total", "Published child-array growths by successor kind.",
			[]string{"kind"}, nil),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.samples
	ch <- c.distinctPaths
	ch <- c.internedFrames
	ch <- c.liveNodes
	ch <- c.nodesAllocated
	ch <- c.nodesDiscarded
	ch <- c.growths
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	r := c.recorder
	st := r.tree.Allocator().Stats()

	ch <- prometheus.MustNewConstMetric(c.samples, prometheus.CounterValue, float64(r.Samples()))
	ch <- prometheus.MustNewConstMetric(c.distinctPaths, prometheus.GaugeValue, float64(r.DistinctPaths()))
	ch <- prometheus.MustNewConstMetric(c.internedFrames, prometheus.GaugeValue, float64(r.InternedFrames()))
	ch <- prometheus.MustNewConstMetric(c.liveNodes, prometheus.GaugeValue, float64(st.LiveNodes))
	ch <- prometheus.MustNewConstMetric(c.nodesAllocated, prometheus.CounterValue, float64(st.NodesAllocated))
	ch <- prometheus.MustNewConstMetric(c.nodesDiscarded, prometheus.CounterValue, float64(st.NodesDiscarded))
	ch <- prometheus.MustNewConstMetric(c.growths, prometheus.CounterValue, float64(st.LinearGrowths), "linear")
	ch <- prometheus.MustNewConstMetric(c.growths, prometheus.CounterValue, float64(st.HashGrowths), "hash")
}
