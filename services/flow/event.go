package flow

import "turfacademy/models"

// Event is anything Transition accepts. The set is closed.
type Event interface {
	eventName() string
}

// SelectSport chooses or changes the sport and issues a facility query.
type SelectSport struct{ SportID string }

// FacilitiesLoaded answers the facility query issued with Seq.
type FacilitiesLoaded struct {
	Seq        uint64
	Facilities []models.Facility
}

// FacilitiesFailed reports that the facility query issued with Seq failed.
type FacilitiesFailed struct {
	Seq    uint64
	Reason string
}

type SelectFacility struct{ FacilityID string }

// SelectDate sets the date and issues an availability query. Selecting the
// current date again retries the query.
type SelectDate struct{ Date string }

// RequestSlots re-issues the availability query for the current facility and date.
type RequestSlots struct{}

type SlotsLoaded struct {
	Seq   uint64
	Slots []models.Slot
}

type SlotsFailed struct {
	Seq    uint64
	Reason string
}

// SelectSlots replaces the chosen slot times. An empty list is ignored.
type SelectSlots struct{ Times []string }

type SetParticipant struct{ Participant models.Participant }

// Back undoes exactly one dimension of the selection.
type Back struct{}

// SubmitStarted validates the participant and marks a submission in flight.
type SubmitStarted struct{}

type SubmitSucceeded struct {
	Seq           uint64
	ReservationID string
	Status        string
	Amount        float64
}

// SubmitConflict reports slot times that were taken before the reservation committed.
type SubmitConflict struct {
	Seq   uint64
	Times []string
}

// SubmitFailed is a retryable submission failure.
type SubmitFailed struct {
	Seq    uint64
	Reason string
}

// SubmitFatal is an unclassified submission failure; the flow starts over.
type SubmitFatal struct {
	Seq    uint64
	Reason string
}

// Reset starts a new booking.
type Reset struct{}

type DismissNotice struct{}

func (SelectSport) eventName() string      { return "select_sport" }
func (FacilitiesLoaded) eventName() string { return "facilities_loaded" }
func (FacilitiesFailed) eventName() string { return "facilities_failed" }
func (SelectFacility) eventName() string   { return "select_facility" }
func (SelectDate) eventName() string       { return "select_date" }
func (RequestSlots) eventName() string     { return "request_slots" }
func (SlotsLoaded) eventName() string      { return "slots_loaded" }
func (SlotsFailed) eventName() string      { return "slots_failed" }
func (SelectSlots) eventName() string      { return "select_slots" }
func (SetParticipant) eventName() string   { return "set_participant" }
func (Back) eventName() string             { return "back" }
func (SubmitStarted) eventName() string    { return "submit_started" }
func (SubmitSucceeded) eventName() string  { return "submit_succeeded" }
func (SubmitConflict) eventName() string   { return "submit_conflict" }
func (SubmitFailed) eventName() string     { return "submit_failed" }
func (SubmitFatal) eventName() string      { return "submit_fatal" }
func (Reset) eventName() string            { return "reset" }
func (DismissNotice) eventName() string    { return "dismiss_notice" }
