package gap

// RecordIndex aggregates one pass over a clustered records file. It
// keeps the record count per name, the cluster ids each name was seen
// with, and the reverse map from cluster id to names. The two cluster
// maps stay symmetric: a name-cluster pairing present in one is always
// present in the other.
//
// Memory grows with the number of distinct names and clusters, not
// with the number of records.
type RecordIndex struct {
	// NameCount is the number of records per normalized name.
	NameCount map[string]int

	// NameClusters maps a normalized name to the cluster ids its
	// records were assigned to.
	NameClusters map[string]map[string]struct{}

	// ClusterNames maps a cluster id to the normalized names found
	// inside it.
	ClusterNames map[string]map[string]struct{}
}

// NewRecordIndex returns an empty index.
func NewRecordIndex() *RecordIndex {
	ri := &RecordIndex{}
	ri.Reset()
	return ri
}

// Add indexes one record. The name is normalized, its record count is
// incremented, and every cluster id is linked to it in both
// directions. Records without cluster assignments still count toward
// the name. Filtering of empty names and placeholder cluster ids is
// the caller's responsibility.
func (ri *RecordIndex) Add(name string, clusterIDs ...string) {
	name = Normalize(name)
	ri.NameCount[name]++

	for _, id := range clusterIDs {
		clusters, ok := ri.NameClusters[name]
		if !ok {
			clusters = make(map[string]struct{})
			ri.NameClusters[name] = clusters
		}
		clusters[id] = struct{}{}

		names, ok := ri.ClusterNames[id]
		if !ok {
			names = make(map[string]struct{})
			ri.ClusterNames[id] = names
		}
		names[name] = struct{}{}
	}
}

// Reset drops all accumulated state. It is called when an input file
// has to be scanned again from the beginning, for example after a
// character encoding fallback.
func (ri *RecordIndex) Reset() {
	ri.NameCount = make(map[string]int)
	ri.NameClusters = make(map[string]map[string]struct{})
	ri.ClusterNames = make(map[string]map[string]struct{})
}

// Names returns the number of distinct names in the index.
func (ri *RecordIndex) Names() int {
	return len(ri.NameCount)
}

// Clusters returns the number of distinct cluster ids in the index.
func (ri *RecordIndex) Clusters() int {
	return len(ri.ClusterNames)
}
