package match

// Index holds lookup structures over a secondary collection.
// Each map goes from a normalized key to positions in the indexed slice,
// in input order. Empty keys are never indexed.
type Index struct {
	records []SecondaryRecord
	scan    []scanKey

	// ByReference is keyed by the raw back-reference ID.
	ByReference map[string][]int
	// ByEmail is keyed by NormalizeEmail.
	ByEmail map[string][]int
	// ByPhone is keyed by NormalizePhone.
	ByPhone map[string][]int
}

// BuildIndex indexes the secondary collection in a single pass. A record with
// several usable keys is indexed under each of them.
func BuildIndex(records []SecondaryRecord) *Index {
	idx := &Index{
		records:     records,
		ByReference: make(map[string][]int),
		ByEmail:     make(map[string][]int),
		ByPhone:     make(map[string][]int),
		scan:        make([]scanKey, len(records)),
	}

	for i, rec := range records {
		if rec.BackReferenceID != "" {
			idx.ByReference[rec.BackReferenceID] = append(idx.ByReference[rec.BackReferenceID], i)
		}
		if e := NormalizeEmail(rec.Email); e != "" {
			idx.ByEmail[e] = append(idx.ByEmail[e], i)
		}
		if p := NormalizePhone(rec.Phone); p != "" {
			idx.ByPhone[p] = append(idx.ByPhone[p], i)
		}
		idx.scan[i] = scanKey{
			tokens:     NameTokens(NormalizeName(rec.Name)),
			emailLocal: EmailLocalPart(rec.Email),
		}
	}

	return idx
}

// Len returns the number of indexed secondary records.
func (idx *Index) Len() int {
	return len(idx.records)
}

// Records returns the indexed secondary collection.
func (idx *Index) Records() []SecondaryRecord {
	return idx.records
}

// Reference returns the records whose back reference equals id.
func (idx *Index) Reference(id string) []SecondaryRecord {
	if id == "" {
		return nil
	}
	return idx.resolve(idx.ByReference[id])
}

// Email returns the records whose normalized email equals key.
func (idx *Index) Email(key string) []SecondaryRecord {
	if key == "" {
		return nil
	}
	return idx.resolve(idx.ByEmail[key])
}

// Phone returns the records whose normalized phone equals key.
func (idx *Index) Phone(key string) []SecondaryRecord {
	if key == "" {
		return nil
	}
	return idx.resolve(idx.ByPhone[key])
}

func (idx *Index) resolve(positions []int) []SecondaryRecord {
	if len(positions) == 0 {
		return nil
	}
	out := make([]SecondaryRecord, 0, len(positions))
	for _, p := range positions {
		out = append(out, idx.records[p])
	}
	return out
}

// scanKey caches the normalized fields read by the name and date scan.
type scanKey struct {
	tokens     []string
	emailLocal string
}
