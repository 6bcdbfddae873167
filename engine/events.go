package engine

// Event types emitted by the engine. Daily-limit rejections are not
// separately eventable, they surface only as the operation error.
const (
	EventInitialized        = "initialized"
	EventOwnerAdded         = "owner_added"
	EventOwnerRemoved       = "owner_removed"
	EventOwnerReplaced      = "owner_replaced"
	EventRequirementChanged = "requirement_changed"
	EventMaxOwnersChanged   = "max_owners_changed"
	EventDailyLimitChanged  = "daily_limit_changed"
	EventDeposit            = "deposit"
	EventTokenDeposit       = "token_deposit"
	EventSubmission         = "submission"
	EventExecution          = "execution"
	EventExecutionFailure   = "execution_failure"
)
