package models

// QIF header lines
const (
	HeaderInvest   = "!Type:Invst"
	HeaderBank     = "!Type:Bank"
	HeaderSecurity = "!Type:Security"
)

// OptionMultiplier is appended to an option's contract count to express it in shares.
const OptionMultiplier = "00"

// File permissions
const (
	PermissionDirectory  = 0750
	PermissionOutputFile = 0644
)
