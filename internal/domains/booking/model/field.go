package model

import (
	"fmt"
	"slices"
)

// ShareableField names a negotiable field that may be disclosed on a public listing.
type ShareableField string

// PrivateField names data that never leaves the two parties.
type PrivateField string

const (
	FieldNameTitle            ShareableField = "title"
	FieldNameDescription      ShareableField = "description"
	FieldNameEventDate        ShareableField = "event_date"
	FieldNameVenue            ShareableField = "venue"
	FieldNameAddress          ShareableField = "address"
	FieldNameAudienceEstimate ShareableField = "audience_estimate"
	FieldNameTicketPrice      ShareableField = "ticket_price"
	FieldNameConcept          ShareableField = "concept"
)

const (
	FieldNameFee              PrivateField = "fee"
	FieldNameContactInfo      PrivateField = "contact_info"
	FieldNamePersonalMessage  PrivateField = "personal_message"
	FieldNameTechSpec         PrivateField = "tech_spec"
	FieldNameHospitalityRider PrivateField = "hospitality_rider"
)

var shareableFields = []ShareableField{
	FieldNameTitle,
	FieldNameDescription,
	FieldNameEventDate,
	FieldNameVenue,
	FieldNameAddress,
	FieldNameAudienceEstimate,
	FieldNameTicketPrice,
	FieldNameConcept,
}

// privateAliases maps every input spelling of an always-private field to its identifier.
var privateAliases = map[string]PrivateField{
	string(FieldNameFee):              FieldNameFee,
	"price":                           FieldNameFee,
	"pricing":                         FieldNameFee,
	"door_percentage":                 FieldNameFee,
	string(FieldNameContactInfo):      FieldNameContactInfo,
	"contact":                         FieldNameContactInfo,
	string(FieldNamePersonalMessage):  FieldNamePersonalMessage,
	string(FieldNameTechSpec):         FieldNameTechSpec,
	string(FieldNameHospitalityRider): FieldNameHospitalityRider,
}

func ShareableFields() []ShareableField {
	return slices.Clone(shareableFields)
}

func PrivateFields() []PrivateField {
	return []PrivateField{
		FieldNameFee,
		FieldNameContactInfo,
		FieldNamePersonalMessage,
		FieldNameTechSpec,
		FieldNameHospitalityRider,
	}
}

// AllFieldNames lists every field a party can see, shareable first.
func AllFieldNames() []string {
	names := make([]string, 0, len(shareableFields)+len(privateAliases))
	for _, field := range shareableFields {
		names = append(names, string(field))
	}

	for _, field := range PrivateFields() {
		names = append(names, string(field))
	}

	return names
}

func ParseShareableField(name string) (ShareableField, error) {
	field := ShareableField(name)
	if !slices.Contains(shareableFields, field) {
		return "", fmt.Errorf("%w: %q is not a shareable field", ErrValidation, name)
	}

	return field, nil
}

func IsAlwaysPrivate(name string) bool {
	_, ok := privateAliases[name]

	return ok
}
