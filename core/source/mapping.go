package source

import (
	"fmt"
	"sort"

	"github.com/jmespath/go-jmespath"
)

// Canonical field names a Mapping can populate.
const (
	FieldID            = "id"
	FieldBackReference = "back_reference_id"
	FieldName          = "name"
	FieldEmail         = "email"
	FieldPhone         = "phone"
	FieldAltPhone      = "alt_phone"
	FieldTimestamp     = "timestamp"
	FieldStartTime     = "start_time"
)

// Preset names.
const (
	PresetIntakes      = "intakeq-intakes"
	PresetAppointments = "intakeq-appointments"
	PresetLeads        = "vtiger-leads"
)

// BareCollection selects a document that is itself the record array.
const BareCollection = "@"

// Mapping adapts a source JSON document to canonical records.
// Every field holds JMESPath expressions tried in order; the first one that
// yields a non-empty value wins.
type Mapping struct {
	// Preset is the mapping name.
	Preset string

	// Collection selects the record array within the document.
	Collection string

	// Fields maps canonical field names to candidate expressions.
	Fields map[string][]string

	// Extras maps attribute names to candidate expressions. Values land in
	// PrimaryRecord.Attributes.
	Extras map[string][]string
}

// IntakesMapping reads IntakeQ intake summaries (a bare array).
func IntakesMapping() Mapping {
	return Mapping{
		Preset:     PresetIntakes,
		Collection: BareCollection,
		Fields: map[string][]string{
			FieldID:        {"Id", "IntakeId"},
			FieldName:      {"ClientName"},
			FieldEmail:     {"ClientEmail"},
			FieldPhone:     {"ClientPhone"},
			FieldTimestamp: {"DateSubmitted", "DateCreated", "LastModified"},
		},
	}
}

// AppointmentsMapping reads IntakeQ appointments wrapped in {"appointments": [...]}.
func AppointmentsMapping() Mapping {
	return Mapping{
		Preset:     PresetAppointments,
		Collection: "appointments",
		Fields: map[string][]string{
			FieldID:            {"Id"},
			FieldBackReference: {"IntakeId"},
			FieldName:          {"ClientName"},
			FieldEmail:         {"ClientEmail"},
			FieldPhone:         {"ClientPhone"},
			FieldStartTime:     {"StartDate"},
		},
	}
}

// LeadsMapping reads vtiger leads wrapped in {"leads": [...]}. The mobile number
// is the alternate phone and the status custom field is kept as an attribute.
func LeadsMapping() Mapping {
	return Mapping{
		Preset:     PresetLeads,
		Collection: "leads",
		Fields: map[string][]string{
			FieldID:        {"id"},
			FieldName:      {"join(' ', [firstname || '', lastname || ''])"},
			FieldEmail:     {"email"},
			FieldPhone:     {"phone"},
			FieldAltPhone:  {"mobile"},
			FieldTimestamp: {"createdtime", "modifiedtime"},
		},
		Extras: map[string][]string{
			"status":  {"cf_941"},
			"lead_no": {"lead_no"},
		},
	}
}

// MappingByName returns a preset mapping.
func MappingByName(name string) (Mapping, error) {
	switch name {
	case PresetIntakes:
		return IntakesMapping(), nil
	case PresetAppointments:
		return AppointmentsMapping(), nil
	case PresetLeads:
		return LeadsMapping(), nil
	default:
		return Mapping{}, fmt.Errorf("unknown mapping preset %q (available: %v)", name, Presets())
	}
}

// Presets lists the preset names.
func Presets() []string {
	names := []string{PresetIntakes, PresetAppointments, PresetLeads}
	sort.Strings(names)
	return names
}

// compiledMapping holds parsed expressions for one decode pass.
type compiledMapping struct {
	collection *jmespath.JMESPath
	fields     map[string][]*jmespath.JMESPath
	extras     map[string][]*jmespath.JMESPath
}

func (m Mapping) compile() (*compiledMapping, error) {
	cm := &compiledMapping{
		fields: make(map[string][]*jmespath.JMESPath, len(m.Fields)),
		extras: make(map[string][]*jmespath.JMESPath, len(m.Extras)),
	}

	if m.Collection != "" && m.Collection != BareCollection {
		expr, err := jmespath.Compile(m.Collection)
		if err != nil {
			return nil, fmt.Errorf("invalid collection expression %q: %w", m.Collection, err)
		}
		cm.collection = expr
	}

	compileAll := func(dst map[string][]*jmespath.JMESPath, src map[string][]string) error {
		for field, exprs := range src {
			for _, e := range exprs {
				compiled, err := jmespath.Compile(e)
				if err != nil {
					return fmt.Errorf("invalid expression %q for %s: %w", e, field, err)
				}
				dst[field] = append(dst[field], compiled)
			}
		}
		return nil
	}
	if err := compileAll(cm.fields, m.Fields); err != nil {
		return nil, err
	}
	if err := compileAll(cm.extras, m.Extras); err != nil {
		return nil, err
	}

	return cm, nil
}
