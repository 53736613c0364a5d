// Package models provides the data structures shared by the broker parsers, the
// symbol registry and the QIF emitter.
package models

import "fmt"

// SecurityType is the kind of instrument a security is.
type SecurityType int

const (
	Stock SecurityType = iota
	Option
	MutualFund
	MarketIndex
)

var securityTypeTokens = map[SecurityType]string{
	Stock:       "Stock",
	Option:      "Option",
	MutualFund:  "Mutual Fund",
	MarketIndex: "Market Index",
}

// String returns the QIF `T` token of the type.
func (t SecurityType) String() string {
	if s, ok := securityTypeTokens[t]; ok {
		return s
	}
	return fmt.Sprintf("SecurityType(%d)", int(t))
}

// ParseSecurityType maps a QIF `T` token back to a SecurityType.
func ParseSecurityType(token string) (SecurityType, bool) {
	for t, s := range securityTypeTokens {
		if s == token {
			return t, true
		}
	}
	return Stock, false
}

// Security is a tradable instrument. Its identity is the symbol.
type Security struct {
	Symbol string
	Name   string
	Type   SecurityType
}
