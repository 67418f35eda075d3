package component

// Lineage records how many cuts produced a body. Scene bodies start at 0.
type Lineage struct {
	Generation int
	Parent     uint64
}

var LineageComponent = NewComponent[Lineage]()
