package match

// DefaultSampleSize is how many secondary records an OverlapReport samples.
const DefaultSampleSize = 20

// OverlapReport describes how much key evidence two collections share,
// counted from the secondary side. It is a diagnostic for choosing mappings
// before a full run and does not apply tier precedence.
type OverlapReport struct {
	TotalPrimary   int `json:"total_primary"`
	TotalSecondary int `json:"total_secondary"`

	// WithReference counts secondary records carrying any back reference.
	WithReference int `json:"with_reference"`
	// ReferencingPrimary counts secondary records whose back reference is a known primary ID.
	ReferencingPrimary int `json:"referencing_primary"`
	// UniquePrimaryReferenced counts distinct primary IDs named by back references.
	UniquePrimaryReferenced int `json:"unique_primary_referenced"`
	// EmailMatches counts secondary records whose normalized email appears among primary emails.
	EmailMatches int `json:"email_matches"`
	// PhoneMatches counts secondary records whose normalized phone appears among primary phones.
	PhoneMatches int `json:"phone_matches"`

	Sample []SecondaryRecord `json:"sample"`
}

// Overlap computes key overlap statistics. A non-positive sampleSize uses
// DefaultSampleSize.
func Overlap(primary []PrimaryRecord, secondary []SecondaryRecord, sampleSize int) OverlapReport {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}

	ids := make(map[string]struct{}, len(primary))
	emails := make(map[string]struct{})
	phones := make(map[string]struct{})
	for _, p := range primary {
		if p.ID != "" {
			ids[p.ID] = struct{}{}
		}
		if e := NormalizeEmail(p.Email); e != "" {
			emails[e] = struct{}{}
		}
		if ph := NormalizePhone(p.Phone); ph != "" {
			phones[ph] = struct{}{}
		}
	}

	report := OverlapReport{
		TotalPrimary:   len(primary),
		TotalSecondary: len(secondary),
	}
	referenced := make(map[string]struct{})
	for _, s := range secondary {
		if s.BackReferenceID != "" {
			report.WithReference++
			if _, ok := ids[s.BackReferenceID]; ok {
				report.ReferencingPrimary++
				referenced[s.BackReferenceID] = struct{}{}
			}
		}
		if e := NormalizeEmail(s.Email); e != "" {
			if _, ok := emails[e]; ok {
				report.EmailMatches++
			}
		}
		if ph := NormalizePhone(s.Phone); ph != "" {
			if _, ok := phones[ph]; ok {
				report.PhoneMatches++
			}
		}
	}
	report.UniquePrimaryReferenced = len(referenced)

	n := min(sampleSize, len(secondary))
	report.Sample = append([]SecondaryRecord{}, secondary[:n]...)

	return report
}
