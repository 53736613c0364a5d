// Package formatid identifies which broker produced a CSV export by looking for
// the broker's literal header line.
package formatid

import (
	"fmt"
	"io"
	"sort"

	"fjacquet/broker-qif/internal/logging"
	"fjacquet/broker-qif/internal/models"
	"fjacquet/broker-qif/internal/parser"
)

// Kind enumerates the supported broker export formats.
type Kind int

const (
	Schwab Kind = iota + 1
	SoFi
)

func (k Kind) String() string {
	switch k {
	case Schwab:
		return "schwab"
	case SoFi:
		return "sofi"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Profile ties a header line to the parser that understands the rows below it
// and to the ledger account type the rows belong to.
type Profile struct {
	Kind    Kind
	Header  string
	Account models.AccountType
	Parser  parser.Parser
}

// Name returns the short name of the profile's broker.
func (p Profile) Name() string {
	return p.Kind.String()
}

// Registry maps header lines to profiles. Registering a header a second time
// replaces the earlier profile.
type Registry struct {
	profiles map[string]Profile
	logger   logging.Logger
}

// NewRegistry returns a registry holding the given profiles, registered in order.
func NewRegistry(logger logging.Logger, profiles ...Profile) *Registry {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	r := &Registry{
		profiles: make(map[string]Profile, len(profiles)),
		logger:   logger,
	}
	for _, p := range profiles {
		r.Register(p)
	}
	return r
}

// Register adds p under its header line.
func (r *Registry) Register(p Profile) {
	if prev, ok := r.profiles[p.Header]; ok {
		r.logger.Debug("Header already registered, replacing profile",
			logging.F("previous", prev.Name()),
			logging.F(logging.FieldProfile, p.Name()))
	}
	r.profiles[p.Header] = p
}

// Identify scans rs for a registered header line and returns its profile with rs
// positioned at the header. ok is false when no header occurs in the stream.
func (r *Registry) Identify(rs io.ReadSeeker) (Profile, bool, error) {
	p, ok, err := FindMatchingLine(rs, r.profiles)
	if err != nil {
		return Profile{}, false, err
	}
	if ok {
		r.logger.Debug("Identified input format", logging.F(logging.FieldProfile, p.Name()))
	}
	return p, ok, nil
}

// Lookup returns the registered profile with the given name.
func (r *Registry) Lookup(name string) (Profile, bool) {
	for _, p := range r.profiles {
		if p.Name() == name {
			return p, true
		}
	}
	return Profile{}, false
}

// Profiles returns the registered profiles sorted by name.
func (r *Registry) Profiles() []Profile {
	out := make([]Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}
