package match

import (
	"strings"
	"time"
)

// Matcher applies the tiered strategy to single primary records.
// It only reads from its index, so one Matcher may serve many goroutines.
type Matcher struct {
	index  *Index
	window time.Duration
}

// NewMatcher creates a matcher over a built index. window bounds the
// NameDate tier and must not be negative.
func NewMatcher(index *Index, window time.Duration) *Matcher {
	return &Matcher{index: index, window: window}
}

// Match returns the winning tier and the matched secondary records for p.
// Tiers are tried strictly in order and the first non-empty tier wins.
// Unusable fields never fail; they simply contribute no key.
func (m *Matcher) Match(p PrimaryRecord) (Tier, []SecondaryRecord) {
	// 1) direct back reference
	if p.ID != "" {
		if pos := m.index.ByReference[p.ID]; len(pos) > 0 {
			return TierExactReference, m.collect(pos)
		}
	}

	// 2) email
	if email := NormalizeEmail(p.Email); email != "" {
		if pos := m.index.ByEmail[email]; len(pos) > 0 {
			return TierEmail, m.collect(pos)
		}
	}

	// 3) phone, then the alternate number
	for _, raw := range [...]string{p.Phone, p.AltPhone} {
		if phone := NormalizePhone(raw); phone != "" {
			if pos := m.index.ByPhone[phone]; len(pos) > 0 {
				return TierPhone, m.collect(pos)
			}
		}
	}

	// 4) name + date proximity
	if pos := m.scanNameDate(p); len(pos) > 0 {
		return TierNameDate, m.collect(pos)
	}

	return TierNone, nil
}

// scanNameDate walks the whole secondary collection and returns every
// position within the date window whose name overlaps the primary name.
func (m *Matcher) scanNameDate(p PrimaryRecord) []int {
	if p.Timestamp.IsZero() {
		return nil
	}

	name := NormalizeName(p.Name)
	if name == "" {
		return nil
	}
	tokens := make(map[string]struct{})
	for _, t := range NameTokens(name) {
		tokens[t] = struct{}{}
	}

	var out []int
	for i, rec := range m.index.records {
		if rec.StartTime.IsZero() || !m.withinWindow(p.Timestamp, rec.StartTime) {
			continue
		}
		if sharesToken(tokens, m.index.scan[i].tokens) || emailLocalOverlaps(m.index.scan[i].emailLocal, name) {
			out = append(out, i)
		}
	}
	return out
}

func (m *Matcher) withinWindow(a, b time.Time) bool {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d <= m.window
}

func sharesToken(set map[string]struct{}, tokens []string) bool {
	for _, t := range tokens {
		if _, ok := set[t]; ok {
			return true
		}
	}
	return false
}

// emailLocalOverlaps reports whether the email local part is contained in the
// normalized name or contains it. Both sides must be non-empty.
func emailLocalOverlaps(local, name string) bool {
	if local == "" || name == "" {
		return false
	}
	return strings.Contains(name, local) || strings.Contains(local, name)
}

// collect resolves positions to records, dropping repeated secondary IDs.
// Records without an ID are kept as-is since each position occurs once per key.
func (m *Matcher) collect(positions []int) []SecondaryRecord {
	out := make([]SecondaryRecord, 0, len(positions))
	seen := make(map[string]struct{}, len(positions))
	for _, p := range positions {
		rec := m.index.records[p]
		if rec.ID != "" {
			if _, dup := seen[rec.ID]; dup {
				continue
			}
			seen[rec.ID] = struct{}{}
		}
		out = append(out, rec)
	}
	return out
}
