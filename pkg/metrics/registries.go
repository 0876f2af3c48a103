package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FeedTypeListRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "manifold_feed_type_list_ops_total",
		Help: "The total number of processed feed type list requests",
	})
	FeedCreateRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "manifold_feed_create_ops_total",
		Help: "The total number of feed descriptors created",
	})
	FeedPreviewRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "manifold_feed_preview_ops_total",
		Help: "The total number of processed feed content preview requests",
	})
	ContentFetchRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "manifold_feed_fetch_ops_total",
		Help: "The total number of processed feed content fetch requests",
	})
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "manifold_cache_hits_ops_total",
		Help: "The total number of cache hits",
	})
	CacheMiss = promauto.NewCounter(prometheus.CounterOpts{
		Name: "manifold_cache_miss_ops_total",
		Help: "The total number of cache misses",
	})
	AppErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "manifold_errors_total",
		Help: "Number of errors for the app.",
	}, []string{"type"})
	PluginStateChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "manifold_plugin_state_changes_total",
		Help: "Number of plugin lifecycle state changes by resulting state.",
	}, []string{"state"})
	RefreshResults = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "manifold_feed_refresh_results",
		Help: "Feed refresh results of the latest run",
	}, []string{"result"})
)
