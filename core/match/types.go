package match

import (
	"fmt"
	"time"
)

// PrimaryRecord is an intake or lead record being resolved.
type PrimaryRecord struct {
	// ID is the opaque identifier, unique within the primary collection.
	ID string `json:"id"`

	// Name is the free text client name. May be empty.
	Name string `json:"name"`

	// Email is the raw email address. May be empty or malformed.
	Email string `json:"email"`

	// Phone is the raw phone number. May be empty or malformed.
	Phone string `json:"phone"`

	// AltPhone is a second number (e.g. a mobile) tried when Phone finds
	// nothing in the phone tier.
	AltPhone string `json:"alt_phone,omitempty"`

	// Timestamp is when the record was submitted. The zero value means absent.
	Timestamp time.Time `json:"timestamp"`

	// Attributes holds extra source fields carried through for consumers
	// (e.g. a lead status). The engine never reads it.
	Attributes map[string]string `json:"attributes,omitempty"`
}

// SecondaryRecord is an appointment or booking record matched against.
type SecondaryRecord struct {
	// ID is the opaque identifier of the appointment.
	ID string `json:"id"`

	// BackReferenceID is the primary ID this record claims to originate from.
	// Empty means absent.
	BackReferenceID string `json:"back_reference_id,omitempty"`

	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`

	// StartTime is when the appointment takes place. The zero value means absent.
	StartTime time.Time `json:"start_time"`
}

// Tier is one ranked matching strategy. Lower values are more trusted.
type Tier int

const (
	// TierExactReference matches on a secondary back reference to the primary ID.
	TierExactReference Tier = iota
	// TierEmail matches on normalized email.
	TierEmail
	// TierPhone matches on normalized phone.
	TierPhone
	// TierNameDate matches on shared name tokens within the date window.
	TierNameDate
	// TierNone marks an unmatched record.
	TierNone
)

var tierLabels = [...]string{
	TierExactReference: "reference",
	TierEmail:          "email",
	TierPhone:          "phone",
	TierNameDate:       "name_date",
	TierNone:           "none",
}

// Tiers lists the matching tiers in the order they are attempted.
func Tiers() []Tier {
	return []Tier{TierExactReference, TierEmail, TierPhone, TierNameDate}
}

// String returns the stable label of the tier.
func (t Tier) String() string {
	if t < TierExactReference || t > TierNone {
		return fmt.Sprintf("tier(%d)", int(t))
	}
	return tierLabels[t]
}

// MarshalText encodes the tier as its label.
func (t Tier) MarshalText() ([]byte, error) {
	if t < TierExactReference || t > TierNone {
		return nil, fmt.Errorf("unknown tier %d", int(t))
	}
	return []byte(tierLabels[t]), nil
}

// UnmarshalText decodes a tier label.
func (t *Tier) UnmarshalText(text []byte) error {
	tier, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = tier
	return nil
}

// ParseTier returns the tier for a label produced by Tier.String.
func ParseTier(label string) (Tier, error) {
	for i, l := range tierLabels {
		if l == label {
			return Tier(i), nil
		}
	}
	return TierNone, fmt.Errorf("unknown tier %q", label)
}

// LowConfidence reports whether matches from this tier are heuristic.
func (t Tier) LowConfidence() bool {
	return t == TierNameDate
}

// MatchResult is the outcome for a single primary record.
type MatchResult struct {
	// PrimaryID echoes the primary record ID.
	PrimaryID string `json:"primary_id"`

	// Matched is true iff at least one secondary record was found.
	Matched bool `json:"matched"`

	// Tier is the winning tier, or TierNone when unmatched.
	Tier Tier `json:"tier"`

	// Tiers holds the tiers that produced the result. It is empty iff Matched is false.
	Tiers []Tier `json:"tiers"`

	// Matches are the matched secondary records, deduplicated, in the order found.
	Matches []SecondaryRecord `json:"matches"`

	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone"`
	Timestamp  time.Time         `json:"timestamp"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// MatchedIDs returns the IDs of the matched secondary records.
func (r MatchResult) MatchedIDs() []string {
	ids := make([]string, 0, len(r.Matches))
	for _, m := range r.Matches {
		ids = append(ids, m.ID)
	}
	return ids
}

// Summary provides aggregate counts for a run.
// ByReference + ByEmail + ByPhone + ByNameDate + Unmatched == TotalPrimary.
type Summary struct {
	TotalPrimary   int `json:"total_primary"`
	TotalSecondary int `json:"total_secondary"`
	ByReference    int `json:"matched_by_reference"`
	ByEmail        int `json:"matched_by_email"`
	ByPhone        int `json:"matched_by_phone"`
	ByNameDate     int `json:"matched_by_name_date"`
	Unmatched      int `json:"unmatched"`
}

// Matched returns the number of primary records matched by any tier.
func (s Summary) Matched() int {
	return s.ByReference + s.ByEmail + s.ByPhone + s.ByNameDate
}

// Count returns the number of records whose winning tier is t.
func (s Summary) Count(t Tier) int {
	switch t {
	case TierExactReference:
		return s.ByReference
	case TierEmail:
		return s.ByEmail
	case TierPhone:
		return s.ByPhone
	case TierNameDate:
		return s.ByNameDate
	default:
		return s.Unmatched
	}
}

func (s *Summary) add(t Tier) {
	switch t {
	case TierExactReference:
		s.ByReference++
	case TierEmail:
		s.ByEmail++
	case TierPhone:
		s.ByPhone++
	case TierNameDate:
		s.ByNameDate++
	default:
		s.Unmatched++
	}
}

// Report is the output of a reconciliation run.
type Report struct {
	Summary Summary       `json:"summary"`
	Results []MatchResult `json:"results"`
}
