package models

// AccountType selects the QIF account header of the primary ledger and the output file prefix.
type AccountType int

const (
	AccountInvest AccountType = iota
	AccountBank
)

// QIFHeader returns the `!Type:` line that opens a ledger of this account type.
func (a AccountType) QIFHeader() string {
	if a == AccountBank {
		return HeaderBank
	}
	return HeaderInvest
}

// FilePrefix returns the prefix of the primary ledger file name.
func (a AccountType) FilePrefix() string {
	if a == AccountBank {
		return "cash_"
	}
	return "invest_"
}

func (a AccountType) String() string {
	if a == AccountBank {
		return "bank"
	}
	return "invest"
}
