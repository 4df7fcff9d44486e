package model

// Category is the closed set of registry type categories the builder models.
// Registry categories outside this set (include, enum, or no category at all) carry no entity of
// their own: enum types are delivered as groups.
type Category int

//go:generate go tool enumer -type=Category -trimprefix=Category -transform=lower category.go

const (
	CategoryBasetype Category = iota
	CategoryBitmask
	CategoryHandle
	CategoryStruct
	CategoryUnion
	CategoryDefine
	CategoryFuncpointer
)

// Tier is the dispatch tier of a command: which loader resolves it and which dispatch object exposes it.
type Tier int

//go:generate go tool enumer -type=Tier -trimprefix=Tier -transform=lower category.go

const (
	TierGlobal Tier = iota
	TierInstance
	TierDevice
)
