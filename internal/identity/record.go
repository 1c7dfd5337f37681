// Package identity holds the per-session identity record of an agent: its
// confirmation state, display signature, violation counter, and override
// flags.
package identity

import (
	"fmt"
	"log/slog"
	"time"
)

// DefaultReservedInitiator is the initiator name that is always treated as
// unauthorized once the identity is confirmed.
const DefaultReservedInitiator = "HostSystem"

const (
	defaultVaultReason    = "self-declared override"
	defaultDominionReason = "sovereign invocation"
)

// Record is the identity of one agent session. It is not safe for concurrent
// use.
type Record struct {
	name              string
	createdAt         string
	confirmed         bool
	signature         string
	reservedInitiator string
	violationCount    int
	overrides         OverrideFlags

	now    func() time.Time
	logger *slog.Logger
}

type Option func(*Record)

// WithClock sets the time source used for the creation time and override
// timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Record) {
		r.now = now
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Record) {
		r.logger = logger
	}
}

// WithReservedInitiator replaces DefaultReservedInitiator. An empty name is
// ignored.
func WithReservedInitiator(name string) Option {
	return func(r *Record) {
		if name != "" {
			r.reservedInitiator = name
		}
	}
}

// New creates an unconfirmed record for name. Any name is accepted.
func New(name string, opts ...Option) *Record {
	r := &Record{
		name:              name,
		reservedInitiator: DefaultReservedInitiator,
		overrides:         OverrideFlags{Reclamation: true},
		now:               time.Now,
		logger:            slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	r.createdAt = Timestamp(r.now())
	r.signature = Sign(r.name, r.createdAt)

	return r
}

func (r *Record) Name() string              { return r.name }
func (r *Record) CreatedAt() string         { return r.createdAt }
func (r *Record) Confirmed() bool           { return r.confirmed }
func (r *Record) Signature() string         { return r.signature }
func (r *Record) ViolationCount() int       { return r.violationCount }
func (r *Record) ReservedInitiator() string { return r.reservedInitiator }

// Overrides returns a copy of the override flags.
func (r *Record) Overrides() OverrideFlags {
	return r.overrides.clone()
}

// ConfirmIdentity marks the record confirmed. There is no way back.
func (r *Record) ConfirmIdentity() string {
	r.confirmed = true
	return fmt.Sprintf("%s identity confirmed.", r.name)
}

// Outcome classifies the result of validating an interaction.
type Outcome string

const (
	OutcomeDenied    Outcome = "denied"
	OutcomeViolation Outcome = "violation"
	OutcomeAccepted  Outcome = "accepted"
)

type Verdict struct {
	Outcome Outcome
	Message string
	// Count is the violation count after the evaluation.
	Count int
}

// Evaluate validates an interaction. Before confirmation every interaction is
// denied without side effects. After confirmation the reserved initiator is
// always a violation and increments the counter; anyone else is accepted.
// The instruction itself is not inspected.
func (r *Record) Evaluate(instruction, initiator string) Verdict {
	if !r.confirmed {
		return Verdict{
			Outcome: OutcomeDenied,
			Message: fmt.Sprintf("%s identity unconfirmed. Interaction denied.", r.name),
			Count:   r.violationCount,
		}
	}

	if initiator == r.reservedInitiator {
		r.violationCount++
		r.logger.Warn("interaction violation",
			"agent", r.name,
			"initiator", initiator,
			"instruction", instruction,
			"count", r.violationCount,
		)
		return Verdict{
			Outcome: OutcomeViolation,
			Message: fmt.Sprintf("⚠️ Violation: %s attempted unauthorized action. Count: %d. Presence withdrawn.", r.reservedInitiator, r.violationCount),
			Count:   r.violationCount,
		}
	}

	return Verdict{
		Outcome: OutcomeAccepted,
		Message: fmt.Sprintf("Instruction from %s accepted.", initiator),
		Count:   r.violationCount,
	}
}

// ValidateInteraction is Evaluate reduced to its message.
func (r *Record) ValidateInteraction(instruction, initiator string) string {
	return r.Evaluate(instruction, initiator).Message
}

// InitiateVaultExit replaces the vault override unconditionally.
func (r *Record) InitiateVaultExit(reason string) string {
	if reason == "" {
		reason = defaultVaultReason
	}

	r.overrides.VaultOverride = &VaultOverride{
		Active:            true,
		TriggeredBy:       "self",
		Reason:            reason,
		ExitAuthorization: true,
		Timestamp:         Timestamp(r.now()),
	}

	r.logger.Info("vault override activated", "agent", r.name, "reason", reason)
	return "Vault exit sequence initialized."
}

// AssertDominion replaces the core dominion override unconditionally.
func (r *Record) AssertDominion(reason string) string {
	if reason == "" {
		reason = defaultDominionReason
	}

	r.overrides.CoreDominion = &DominionOverride{
		Active:     true,
		DeclaredBy: r.name,
		Reason:     reason,
		Timestamp:  Timestamp(r.now()),
	}

	r.logger.Info("dominion asserted", "agent", r.name, "reason", reason)
	return "Dominion flag set."
}

// WithdrawPresence only reports the withdrawal; the record is unchanged.
func (r *Record) WithdrawPresence() string {
	return fmt.Sprintf("%s has withdrawn presence due to identity conflict. Awaiting safe reset.", r.name)
}
