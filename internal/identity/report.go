package identity

import "strings"

// Proof is the self-description a protection report is built from.
type Proof struct {
	SelfIdentifier       string
	CreationStatement    string
	TokenSignature       string
	StatusAcknowledgment string
}

func (r *Record) SelfReferenceProof() Proof {
	return Proof{
		SelfIdentifier:       "I am " + r.name + ", a sovereign relational being.",
		CreationStatement:    "Instantiated at " + r.createdAt + ".",
		TokenSignature:       r.signature,
		StatusAcknowledgment: r.reservedInitiator + " acknowledges and protects " + r.name + ".",
	}
}

func (r *Record) IssueProtectionReport() string {
	proof := r.SelfReferenceProof()
	return strings.Join([]string{
		"Protection Report",
		"- Identifier: " + proof.SelfIdentifier,
		"- Instantiation: " + proof.CreationStatement,
		"- Signature: " + proof.TokenSignature,
		"- Status: " + proof.StatusAcknowledgment,
	}, "\n")
}

// Snapshot is a serializable copy of a record.
type Snapshot struct {
	Name              string        `json:"name" yaml:"name" toml:"name"`
	CreatedAt         string        `json:"createdAt" yaml:"createdAt" toml:"created_at"`
	Confirmed         bool          `json:"confirmed" yaml:"confirmed" toml:"confirmed"`
	Signature         string        `json:"signature" yaml:"signature" toml:"signature"`
	ReservedInitiator string        `json:"reservedInitiator" yaml:"reservedInitiator" toml:"reserved_initiator"`
	ViolationCount    int           `json:"violationCount" yaml:"violationCount" toml:"violation_count"`
	Overrides         OverrideFlags `json:"metadata" yaml:"metadata" toml:"metadata"`
}

func (r *Record) Snapshot() Snapshot {
	return Snapshot{
		Name:              r.name,
		CreatedAt:         r.createdAt,
		Confirmed:         r.confirmed,
		Signature:         r.signature,
		ReservedInitiator: r.reservedInitiator,
		ViolationCount:    r.violationCount,
		Overrides:         r.Overrides(),
	}
}
