package transform

import (
	"slices"
	"strings"

	"github.com/argmaplab/argmap/pkg/graph"
)

// Default clustering parameters.
const (
	DefaultMinClusterSize = 2
	DefaultMaxClusterSize = 10
	DefaultMaxSeqGap      = 3
	DefaultMinSimilarity  = 0.3
	DefaultMinCoherence   = 0.3
)

// ClusterConfig controls premise clustering.
type ClusterConfig struct {
	// MinClusterSize and MaxClusterSize bound the premises per cluster.
	MinClusterSize int
	MaxClusterSize int
	// MaxSeqGap is the maximum document distance between a cluster's seed
	// premise and a member.
	MaxSeqGap int
	// MinSimilarity is the minimum text similarity between a member and
	// the seed.
	MinSimilarity float64
	// MinCoherence is the minimum mean pairwise similarity for a cluster
	// to qualify for synthesis.
	MinCoherence float64
}

func (c ClusterConfig) withDefaults() ClusterConfig {
	if c.MinClusterSize == 0 {
		c.MinClusterSize = DefaultMinClusterSize
	}
	if c.MaxClusterSize == 0 {
		c.MaxClusterSize = DefaultMaxClusterSize
	}
	if c.MaxSeqGap == 0 {
		c.MaxSeqGap = DefaultMaxSeqGap
	}
	if c.MinSimilarity == 0 {
		c.MinSimilarity = DefaultMinSimilarity
	}
	if c.MinCoherence == 0 {
		c.MinCoherence = DefaultMinCoherence
	}
	return c
}

// Cluster is a group of related premises supporting the same target,
// candidate input for synthetic claim generation.
type Cluster struct {
	// PremiseIDs are the member ids, sorted.
	PremiseIDs []string
	// TargetID is the claim the members support.
	TargetID string
	// Coherence is the mean pairwise text similarity of the members.
	Coherence float64
}

// ClusterStats aggregates cluster shape for the output meta block.
type ClusterStats struct {
	TotalClusters  int     `json:"total_clusters" bson:"total_clusters"`
	TotalPremises  int     `json:"total_premises" bson:"total_premises"`
	AvgClusterSize float64 `json:"avg_cluster_size" bson:"avg_cluster_size"`
	MinClusterSize int     `json:"min_cluster_size" bson:"min_cluster_size"`
	MaxClusterSize int     `json:"max_cluster_size" bson:"max_cluster_size"`
	AvgCoherence   float64 `json:"avg_coherence" bson:"avg_coherence"`
}

// ClusterPremises groups non-synthetic premises that support a shared
// target, sit close together in the document, and read alike.
//
// Premises are grouped by their first (smallest-id) support target, then
// greedily clustered within each group: the earliest remaining premise
// seeds a cluster and absorbs every premise within MaxSeqGap of it whose
// label is at least MinSimilarity similar to the seed's. Clusters outside
// the size bounds or below MinCoherence are discarded.
//
// Results are ordered by target id, then by the cluster's first premise
// id.
func ClusterPremises(g *graph.Graph, cfg ClusterConfig) []Cluster {
	cfg = cfg.withDefaults()

	byTarget := make(map[string][]string)
	for _, id := range g.NodeIDs() {
		n, _ := g.Node(id)
		if n.Role != graph.RolePremise || n.Synthetic {
			continue
		}
		targets := slices.Clone(g.SupportTargets(id))
		if len(targets) == 0 {
			continue
		}
		slices.Sort(targets)
		byTarget[targets[0]] = append(byTarget[targets[0]], id)
	}

	targetIDs := make([]string, 0, len(byTarget))
	for t := range byTarget {
		targetIDs = append(targetIDs, t)
	}
	slices.Sort(targetIDs)

	var clusters []Cluster
	for _, target := range targetIDs {
		members := byTarget[target]
		if len(members) < cfg.MinClusterSize {
			continue
		}
		// Seed clusters in document order. Id breaks Seq ties.
		slices.SortFunc(members, func(a, b string) int {
			na, _ := g.Node(a)
			nb, _ := g.Node(b)
			if d := na.Seq - nb.Seq; d != 0 {
				return d
			}
			return strings.Compare(a, b)
		})

		for _, group := range greedyClusters(g, members, cfg) {
			if len(group) < cfg.MinClusterSize || len(group) > cfg.MaxClusterSize {
				continue
			}
			coherence := clusterCoherence(g, group)
			if coherence < cfg.MinCoherence {
				continue
			}
			slices.Sort(group)
			clusters = append(clusters, Cluster{
				PremiseIDs: group,
				TargetID:   target,
				Coherence:  coherence,
			})
		}
	}
	return clusters
}

// greedyClusters splits a document-ordered premise list into clusters
// around successive seeds.
func greedyClusters(g *graph.Graph, members []string, cfg ClusterConfig) [][]string {
	var out [][]string
	remaining := slices.Clone(members)
	for len(remaining) > 0 {
		seedID := remaining[0]
		seed, _ := g.Node(seedID)
		cluster := []string{seedID}
		var next []string
		for _, id := range remaining[1:] {
			n, _ := g.Node(id)
			gap := n.Seq - seed.Seq
			if gap < 0 {
				gap = -gap
			}
			if gap > cfg.MaxSeqGap || TextSimilarity(seed.Label, n.Label) < cfg.MinSimilarity {
				next = append(next, id)
				continue
			}
			cluster = append(cluster, id)
		}
		out = append(out, cluster)
		remaining = next
	}
	return out
}

// clusterCoherence is the mean pairwise text similarity of the members.
// A singleton is perfectly coherent.
func clusterCoherence(g *graph.Graph, members []string) float64 {
	if len(members) < 2 {
		return 1.0
	}
	var sum float64
	var pairs int
	for i := 0; i < len(members); i++ {
		a, _ := g.Node(members[i])
		for j := i + 1; j < len(members); j++ {
			b, _ := g.Node(members[j])
			sum += TextSimilarity(a.Label, b.Label)
			pairs++
		}
	}
	return sum / float64(pairs)
}

// ComputeClusterStats aggregates cluster sizes and coherence.
func ComputeClusterStats(clusters []Cluster) ClusterStats {
	if len(clusters) == 0 {
		return ClusterStats{}
	}
	stats := ClusterStats{
		TotalClusters:  len(clusters),
		MinClusterSize: len(clusters[0].PremiseIDs),
	}
	var coherenceSum float64
	for _, c := range clusters {
		size := len(c.PremiseIDs)
		stats.TotalPremises += size
		if size < stats.MinClusterSize {
			stats.MinClusterSize = size
		}
		if size > stats.MaxClusterSize {
			stats.MaxClusterSize = size
		}
		coherenceSum += c.Coherence
	}
	stats.AvgClusterSize = float64(stats.TotalPremises) / float64(len(clusters))
	stats.AvgCoherence = coherenceSum / float64(len(clusters))
	return stats
}
