package codec

// DataType identifies which in-memory structure an Entry belongs to.
// Values are persisted on disk and must stay stable (spec §3.1).
type DataType uint16

const (
	DataTypeString DataType = 1
	DataTypeList   DataType = 2
	DataTypeSet    DataType = 3
	DataTypeZSet   DataType = 4
)

// EntryStatus marks whether an Entry's owning transaction has
// committed. The transaction façade is an external collaborator
// (spec §1); this engine only persists the field.
type EntryStatus uint16

const (
	StatusUncommitted EntryStatus = 1
	StatusCommitted   EntryStatus = 2
)

// Operate is the operation tag recorded in an Entry's header
// (spec §3.5). Values are persisted numerically and must be stable.
type Operate uint16

const (
	OpPut Operate = iota + 1
	OpDel
	OpTTL
	OpLLpush
	OpLLpop
	OpLRpush
	OpLRpop
	OpLLpushx
	OpLRpushx
	OpLRem
	OpLLen
	OpLIndex
	OpLPos
	OpLSet
	OpLRange
	OpSAdd
	OpSCard
	OpSDiff
	OpSUnion
	OpSInter
	OpSIsmember
	OpSMembers
	OpSRem
	OpZPut
	OpZRem
	OpZGetByRankRange
	OpZGetByRank
	OpZGetByKey
	OpZFindRank
	OpZFindRevRank
	OpZGetByScoreRange
)

// ZESTKeyValSplitChar separates "<member>|<score>" in the Entry key
// of a sorted-set mutation (spec §6).
const ZESTKeyValSplitChar = '|'
