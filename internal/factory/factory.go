// Package factory builds the broker profiles known to the converter.
package factory

import (
	"fmt"

	"fjacquet/broker-qif/internal/formatid"
	"fjacquet/broker-qif/internal/logging"
	"fjacquet/broker-qif/internal/schwabparser"
	"fjacquet/broker-qif/internal/sofiparser"
)

// Kinds lists every broker format the factory can build, in registration order.
var Kinds = []formatid.Kind{formatid.Schwab, formatid.SoFi}

// NewProfile returns the profile for the given broker format with a parser
// using the provided logger.
func NewProfile(kind formatid.Kind, logger logging.Logger) (formatid.Profile, error) {
	switch kind {
	case formatid.Schwab:
		p := schwabparser.NewParser(logger)
		return formatid.Profile{Kind: kind, Header: schwabparser.Header, Account: p.AccountType(), Parser: p}, nil
	case formatid.SoFi:
		p := sofiparser.NewParser(logger)
		return formatid.Profile{Kind: kind, Header: sofiparser.Header, Account: p.AccountType(), Parser: p}, nil
	default:
		return formatid.Profile{}, fmt.Errorf("unknown broker format: %s", kind)
	}
}

// DefaultProfiles returns a profile for every supported broker format.
func DefaultProfiles(logger logging.Logger) []formatid.Profile {
	profiles := make([]formatid.Profile, 0, len(Kinds))
	for _, k := range Kinds {
		p, err := NewProfile(k, logger)
		if err != nil {
			// Kinds only holds formats NewProfile knows
			panic(err)
		}
		profiles = append(profiles, p)
	}
	return profiles
}

// NewFormatRegistry returns a header registry holding the default profiles.
func NewFormatRegistry(logger logging.Logger) *formatid.Registry {
	return formatid.NewRegistry(logger, DefaultProfiles(logger)...)
}
