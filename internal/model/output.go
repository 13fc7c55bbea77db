// Package model defines the domain types shared by the chain and content layers.
package model

// Output is a single ledger output observed by the chain ingestion pipeline.
// Rows are append-only: the only mutation an output ever sees is the one-time
// transition of SpentSlot from nil to a concrete slot.
type Output struct {
	ID          uint64
	TxID        string
	OutputIndex uint32
	Address     string
	Value       uint64
	CreatedSlot uint64
	SpentSlot   *uint64
	ScriptHash  *string
	ScriptType  *string
	ScriptHex   *string
}

// Spent reports whether the output has been consumed.
func (o Output) Spent() bool {
	return o.SpentSlot != nil
}

// ProjectScriptLink ties a project to the staking script hash carried by one
// of its outputs. A project accumulates links over its lifetime as it
// re-stakes; the live link is the one whose output is still unspent.
type ProjectScriptLink struct {
	ProjectID         string
	StakingScriptHash string
	OutputID          uint64
}

// ChainBackingStats aggregates the backer outputs of a single project as
// currently visible on chain.
type ChainBackingStats struct {
	NumSupporters         int
	NumLovelacesStaked    int64
	NumLovelacesWithdrawn int64
}

// BackingEvent is one backer output lifecycle: funds locked at the created
// slot and, if the output was spent, released again at the spent slot.
type BackingEvent struct {
	ID             uint64
	ProjectID      string
	Address        string
	LovelaceAmount int64
	CreatedSlot    uint64
	CreatedTime    int64
	CreatedTx      string
	SpentSlot      *uint64
	SpentTime      *int64
	SpentTx        *string
	Message        *string
	ModeratedTags  []string
}

// ProjectCreationEvent records the on-chain creation of a project.
type ProjectCreationEvent struct {
	ProjectID         string
	CreatedSlot       uint64
	CreatedTime       int64
	CreatedBy         string
	CreatedTx         string
	SponsorshipAmount *int64
}

// ProtocolMilestoneEvent records a project crossing a protocol-wide
// funding milestone.
type ProtocolMilestoneEvent struct {
	ProjectID          string
	MilestonesSnapshot int
	Slot               uint64
	Time               int64
}
