package types

// Event types for the zkrollup module, module_action format.
const (
	EventTypeZkappRegistered   = "zkapp_registered"
	EventTypeAssetSupportAdded = "zkapp_asset_support_added"
	EventTypeSubmitterChanged  = "zkapp_submitter_changed"
	EventTypeZkappDeactivated  = "zkapp_deactivated"
	EventTypeDeposited         = "zkapp_deposited"
	EventTypeWithdrawn         = "zkapp_withdrawn"
	EventTypeAssetMoved        = "zkapp_asset_moved"
	EventTypeExited            = "zkapp_exited"
	EventTypeBatchSubmitted    = "zkapp_batch_submitted"
)

// Event attribute keys for the zkrollup module.
const (
	AttributeKeyProgramHash     = "program_hash"
	AttributeKeyDestProgramHash = "dest_program_hash"
	AttributeKeyVerifierKind    = "verifier_kind"
	AttributeKeyOwner           = "owner"
	AttributeKeySubmitter       = "submitter"
	AttributeKeyUser            = "user"
	AttributeKeyAsset           = "asset"
	AttributeKeyAssetValue      = "asset_value"
	AttributeKeyOldStateRoot    = "old_state_root"
	AttributeKeyNewStateRoot    = "new_state_root"
	AttributeKeyOperationCount  = "operation_count"
	AttributeKeyL1OperationsPos = "l1_operations_pos"
)
