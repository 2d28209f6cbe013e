package cluster

var pdTemplate = [...]Node{
	{ID: "pd1", Kind: KindPD, IsLeader: true, Status: StatusUp, Position: Position{X: "25%", Y: "15%"}, Label: "PD 1"},
	{ID: "pd2", Kind: KindPD, IsLeader: false, Status: StatusUp, Position: Position{X: "50%", Y: "15%"}, Label: "PD 2"},
	{ID: "pd3", Kind: KindPD, IsLeader: false, Status: StatusUp, Position: Position{X: "75%", Y: "15%"}, Label: "PD 3"},
}

var storageTemplate = [...]Node{
	{ID: "tikv1", Kind: KindStorage, IsLeader: true, Status: StatusUp, Position: Position{X: "50%", Y: "50%"}, Label: "TiKV 1"},
	{ID: "tikv2", Kind: KindStorage, IsLeader: false, Status: StatusUp, Position: Position{X: "25%", Y: "75%"}, Label: "TiKV 2"},
	{ID: "tikv3", Kind: KindStorage, IsLeader: false, Status: StatusUp, Position: Position{X: "75%", Y: "75%"}, Label: "TiKV 3"},
}

// InitialNodes returns a fresh copy of the starting node list for kind.
// Unknown kinds yield nil.
func InitialNodes(kind Kind) []Node {
	switch kind {
	case KindPD:
		nodes := pdTemplate
		return nodes[:]
	case KindStorage:
		nodes := storageTemplate
		return nodes[:]
	default:
		return nil
	}
}
