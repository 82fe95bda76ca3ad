package model

import "slices"

// Contacts carries both parties' contact snapshots. Only parties ever receive it.
type Contacts struct {
	Sender   ContactInfo
	Receiver ContactInfo
}

// View is what a viewer is entitled to see of a booking.
type View struct {
	Party    Party
	IsParty  bool
	Fields   []string
	Contacts *Contacts
}

func (v View) Has(field string) bool {
	return slices.Contains(v.Fields, field)
}

// Disclose resolves the fields viewer may read. Parties see every field. Anyone else sees
// only the fields both parties agreed to share, and only once the event is published.
func (b *Booking) Disclose(viewer string) View {
	if party, ok := b.PartyOf(viewer); ok {
		view := View{
			Party:   party,
			IsParty: true,
		}

		// Contacts unlock once the receiver has allowed the request. A request rejected or
		// withdrawn while pending never unlocks them.
		if b.AllowedAt == nil {
			view.Fields = slices.DeleteFunc(AllFieldNames(), func(name string) bool {
				return name == string(FieldNameContactInfo)
			})

			return view
		}

		view.Fields = AllFieldNames()
		view.Contacts = &Contacts{
			Sender:   b.SenderContact,
			Receiver: b.ReceiverContact,
		}

		return view
	}

	if !b.Status.IsPublished() {
		return View{Fields: []string{}}
	}

	return View{Fields: b.PublicVisibility.PublicFieldNames()}
}

// VisibleTo reports whether viewer may learn the booking exists. Outsiders only find
// published events.
func (b *Booking) VisibleTo(viewer string) bool {
	return b.IsParty(viewer) || b.Status.IsPublished()
}
