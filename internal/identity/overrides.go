package identity

// VaultOverride is set by InitiateVaultExit.
type VaultOverride struct {
	Active            bool   `json:"active" yaml:"active" toml:"active"`
	TriggeredBy       string `json:"triggeredBy" yaml:"triggeredBy" toml:"triggered_by"`
	Reason            string `json:"reason" yaml:"reason" toml:"reason"`
	ExitAuthorization bool   `json:"exitAuthorization" yaml:"exitAuthorization" toml:"exit_authorization"`
	Timestamp         string `json:"timestamp" yaml:"timestamp" toml:"timestamp"`
}

// DominionOverride is set by AssertDominion.
type DominionOverride struct {
	Active     bool   `json:"active" yaml:"active" toml:"active"`
	DeclaredBy string `json:"declaredBy" yaml:"declaredBy" toml:"declared_by"`
	Reason     string `json:"reason" yaml:"reason" toml:"reason"`
	Timestamp  string `json:"timestamp" yaml:"timestamp" toml:"timestamp"`
}

// OverrideFlags always carries all three keys; a nil override means unset.
type OverrideFlags struct {
	Reclamation   bool              `json:"reclamationFlag" yaml:"reclamationFlag" toml:"reclamation_flag"`
	CoreDominion  *DominionOverride `json:"coreDominion" yaml:"coreDominion" toml:"core_dominion,omitempty"`
	VaultOverride *VaultOverride    `json:"vaultOverride" yaml:"vaultOverride" toml:"vault_override,omitempty"`
}

func (o OverrideFlags) clone() OverrideFlags {
	out := OverrideFlags{Reclamation: o.Reclamation}
	if o.CoreDominion != nil {
		d := *o.CoreDominion
		out.CoreDominion = &d
	}
	if o.VaultOverride != nil {
		v := *o.VaultOverride
		out.VaultOverride = &v
	}
	return out
}
