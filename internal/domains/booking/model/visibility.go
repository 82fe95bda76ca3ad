package model

import (
	"database/sql/driver"
	"slices"
)

// Visibility records, per shareable field, whether it may appear on the public listing.
// A missing field is treated as not shared.
type Visibility map[ShareableField]bool

// ParseVisibility turns raw confirm input into settings. Always-private names are dropped,
// unknown names are rejected.
func ParseVisibility(input map[string]bool) (Visibility, error) {
	settings := make(Visibility, len(input))

	for name, shared := range input {
		if IsAlwaysPrivate(name) {
			continue
		}

		field, err := ParseShareableField(name)
		if err != nil {
			return nil, err
		}

		settings[field] = shared
	}

	return settings, nil
}

// Merge combines the stored settings with a party's settings. An explicit false from
// either party wins over a true.
func (v Visibility) Merge(other Visibility) Visibility {
	merged := make(Visibility, len(v)+len(other))

	for field, shared := range v {
		merged[field] = shared
	}

	for field, shared := range other {
		current, ok := merged[field]
		if !ok {
			merged[field] = shared

			continue
		}

		merged[field] = current && shared
	}

	return merged
}

func (v Visibility) IsPublic(field ShareableField) bool {
	return v[field]
}

func (v Visibility) AnyPublic() bool {
	for _, shared := range v {
		if shared {
			return true
		}
	}

	return false
}

// PublicFields lists shared fields in declaration order.
func (v Visibility) PublicFields() []ShareableField {
	fields := []ShareableField{}

	for _, field := range shareableFields {
		if v[field] {
			fields = append(fields, field)
		}
	}

	return fields
}

// PublicFieldNames lists shared fields in declaration order as plain names.
func (v Visibility) PublicFieldNames() []string {
	names := []string{}
	for _, field := range v.PublicFields() {
		names = append(names, string(field))
	}

	return names
}

func (v Visibility) ToMap() map[string]bool {
	res := make(map[string]bool, len(v))
	for field, shared := range v {
		res[string(field)] = shared
	}

	return res
}

func (v Visibility) Clone() Visibility {
	if v == nil {
		return nil
	}

	clone := make(Visibility, len(v))
	for field, shared := range v {
		clone[field] = shared
	}

	return clone
}

func (v Visibility) Value() (driver.Value, error) {
	if v == nil {
		return jsonValue(map[string]bool{})
	}

	return jsonValue(v.ToMap())
}

func (v *Visibility) Scan(src any) error {
	raw := map[string]bool{}
	if err := scanJSON(src, &raw); err != nil {
		return err
	}

	settings := make(Visibility, len(raw))

	for name, shared := range raw {
		field := ShareableField(name)
		if !slices.Contains(shareableFields, field) {
			continue
		}

		settings[field] = shared
	}

	*v = settings

	return nil
}
