package types

import (
	"bytes"
	"fmt"
)

// OperationKind discriminates the operation union.
type OperationKind uint8

const (
	// OpDeposit books an L1 deposit into the zkapp ledger.
	OpDeposit OperationKind = iota
	// OpWithdraw pays a ledger balance back out to the user.
	OpWithdraw
	// OpMove moves a balance to another zkapp's pending queue.
	OpMove
	// OpTransfer changes ownership inside one zkapp's ledger.
	OpTransfer
	// OpSwap exchanges two values between two users of one zkapp.
	OpSwap
)

func (k OperationKind) String() string {
	switch k {
	case OpDeposit:
		return "deposit"
	case OpWithdraw:
		return "withdraw"
	case OpMove:
		return "move"
	case OpTransfer:
		return "transfer"
	case OpSwap:
		return "swap"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// Operation is one effect of a zkapp execution. Deposit, Withdraw and Move are
// the kinds a user can enqueue through L1 entry points; a submitted batch may
// additionally carry Transfer and Swap, which originate purely off-chain.
//
// User and Counterparty are bech32 account strings. Counterparty is the
// receiving user of a Transfer and the second party of a Swap. DestProgram is
// set for Move only; CounterValue for Swap only.
type Operation struct {
	_ struct{} `cbor:",toarray"`

	Kind         OperationKind `json:"kind"`
	User         string        `json:"user"`
	Counterparty string        `json:"counterparty,omitempty"`
	DestProgram  ProgramHash   `json:"dest_program,omitempty"`
	Value        AssetValue    `json:"value"`
	CounterValue AssetValue    `json:"counter_value,omitempty"`
}

// NewDeposit builds a Deposit operation.
func NewDeposit(user string, value AssetValue) Operation {
	return Operation{Kind: OpDeposit, User: user, Value: value}
}

// NewWithdraw builds a Withdraw operation.
func NewWithdraw(user string, value AssetValue) Operation {
	return Operation{Kind: OpWithdraw, User: user, Value: value}
}

// NewMove builds a Move operation towards destProgram.
func NewMove(user string, destProgram ProgramHash, value AssetValue) Operation {
	return Operation{Kind: OpMove, User: user, DestProgram: destProgram, Value: value}
}

// NewTransfer builds a Transfer operation from user to counterparty.
func NewTransfer(from, to string, value AssetValue) Operation {
	return Operation{Kind: OpTransfer, User: from, Counterparty: to, Value: value}
}

// NewSwap builds a Swap operation exchanging value for counterValue between
// user and counterparty.
func NewSwap(userA string, valueA AssetValue, userB string, valueB AssetValue) Operation {
	return Operation{Kind: OpSwap, User: userA, Value: valueA, Counterparty: userB, CounterValue: valueB}
}

// Canonical returns the operation's canonical deterministic encoding.
func (op Operation) Canonical() ([]byte, error) {
	return MarshalCanonical(op)
}

// Equal reports whether two operations have identical canonical encodings.
// The settlement state machine compares a batch's leading operations against
// the pending queue with exactly this equality.
func (op Operation) Equal(other Operation) bool {
	a, err := op.Canonical()
	if err != nil {
		return false
	}
	b, err := other.Canonical()
	if err != nil {
		return false
	}
	return bytes.Equal(a, b)
}

// Validate rejects operations whose shape does not match their kind.
func (op Operation) Validate(itemLimit uint32) error {
	if op.User == "" {
		return fmt.Errorf("%s operation: empty user", op.Kind)
	}
	if err := op.Value.Validate(itemLimit); err != nil {
		return fmt.Errorf("%s operation: %w", op.Kind, err)
	}
	switch op.Kind {
	case OpDeposit, OpWithdraw:
		if op.Counterparty != "" {
			return fmt.Errorf("%s operation: unexpected counterparty", op.Kind)
		}
	case OpMove:
		if op.Counterparty != "" {
			return fmt.Errorf("move operation: unexpected counterparty")
		}
	case OpTransfer:
		if op.Counterparty == "" {
			return fmt.Errorf("transfer operation: empty counterparty")
		}
	case OpSwap:
		if op.Counterparty == "" {
			return fmt.Errorf("swap operation: empty counterparty")
		}
		if err := op.CounterValue.Validate(itemLimit); err != nil {
			return fmt.Errorf("swap operation: %w", err)
		}
	default:
		return fmt.Errorf("invalid operation kind %d", op.Kind)
	}
	return nil
}

// ProofOutput is the decoded public output of one zkapp program execution:
// the operations the batch produced, the advanced state root, and how many
// leading entries of the pending queue the execution consumed.
type ProofOutput struct {
	_ struct{} `cbor:",toarray"`

	Operations      []Operation `json:"operations"`
	NewStateRoot    StateRoot   `json:"new_state_root"`
	L1OperationsPos uint32      `json:"l1_operations_pos"`
}

// Canonical returns the deterministic encoding the verifier checks a
// program's public outputs against when the submitter declares none.
func (o ProofOutput) Canonical() ([]byte, error) {
	return MarshalCanonical(o)
}
