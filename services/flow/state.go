// Package flow implements the booking selection state machine. It is pure:
// callers feed events through Transition and persist the returned State
// wherever they like.
package flow

import "turfacademy/models"

type Step string

const (
	StepChoosingSport           Step = "choosing_sport"
	StepChoosingFacilityAndDate Step = "choosing_facility_and_date"
	StepChoosingSlot            Step = "choosing_slot"
	StepReadyToSubmit           Step = "ready_to_submit"
	StepConfirmation            Step = "confirmation"
)

// QueryStatus tracks the last query of one class.
type QueryStatus string

const (
	QueryIdle    QueryStatus = "idle"
	QueryLoading QueryStatus = "loading"
	QueryLoaded  QueryStatus = "loaded"
	QueryFailed  QueryStatus = "failed"
)

// Tokens are the latest sequence numbers issued per query class. A response
// carrying an older number is stale.
type Tokens struct {
	Facilities uint64 `json:"facilities"`
	Slots      uint64 `json:"slots"`
	Submit     uint64 `json:"submit"`
}

// Selection is the sport/facility/date/slots part of the state.
type Selection struct {
	SportID    string   `json:"sportId,omitempty"`
	FacilityID string   `json:"facilityId,omitempty"`
	Date       string   `json:"date,omitempty"`
	SlotTimes  []string `json:"slotTimes,omitempty"`
}

// Complete reports whether every dimension is chosen.
func (s Selection) Complete() bool {
	return s.SportID != "" && s.FacilityID != "" && s.Date != "" && len(s.SlotTimes) > 0
}

// Outcome is the confirmation summary.
type Outcome struct {
	ReservationID string  `json:"reservationId"`
	Status        string  `json:"status"`
	ParentName    string  `json:"parentName"`
	PlayerName    string  `json:"playerName"`
	Mobile        string  `json:"mobile"`
	Amount        float64 `json:"amount"`
}

// Notice is a dismissible message about the last failure.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

type NoticeKind string

const (
	NoticeTransient NoticeKind = "transient"
	NoticeConflict  NoticeKind = "conflict"
	NoticeFatal     NoticeKind = "fatal"
)

// State is the full flow state. The zero value is not valid, use New.
type State struct {
	Step      Step      `json:"step"`
	Selection Selection `json:"selection"`

	Facilities       []models.Facility `json:"facilities,omitempty"`
	FacilitiesStatus QueryStatus       `json:"facilitiesStatus"`
	Slots            []models.Slot     `json:"slots,omitempty"`
	SlotsStatus      QueryStatus       `json:"slotsStatus"`

	Participant models.Participant `json:"participant"`
	Submitting  bool               `json:"submitting"`
	Outcome     *Outcome           `json:"outcome,omitempty"`
	Notice      *Notice            `json:"notice,omitempty"`

	Tokens Tokens `json:"tokens"`
}

// New returns the initial state.
func New() State {
	return State{
		Step:             StepChoosingSport,
		FacilitiesStatus: QueryIdle,
		SlotsStatus:      QueryIdle,
	}
}

// Facility returns the selected facility from the loaded list.
func (s State) Facility() (models.Facility, bool) {
	return s.findFacility(s.Selection.FacilityID)
}

func (s State) findFacility(id string) (models.Facility, bool) {
	if id == "" {
		return models.Facility{}, false
	}
	for _, f := range s.Facilities {
		if f.ID == id {
			return f, true
		}
	}
	return models.Facility{}, false
}

func (s State) findSlot(t string) (models.Slot, bool) {
	for _, sl := range s.Slots {
		if sl.Time == t {
			return sl, true
		}
	}
	return models.Slot{}, false
}

// clone copies the slices so a transition never mutates its input.
func (s State) clone() State {
	out := s
	out.Selection.SlotTimes = append([]string(nil), s.Selection.SlotTimes...)
	out.Facilities = append([]models.Facility(nil), s.Facilities...)
	out.Slots = append([]models.Slot(nil), s.Slots...)
	if s.Outcome != nil {
		o := *s.Outcome
		out.Outcome = &o
	}
	if s.Notice != nil {
		n := *s.Notice
		out.Notice = &n
	}
	return out
}

func (s *State) clearSlots() {
	s.Slots = nil
	s.SlotsStatus = QueryIdle
	s.Selection.SlotTimes = nil
	// Anything still in flight belongs to the old facility/date.
	s.Tokens.Slots++
}

func (s *State) clearDate() {
	s.Selection.Date = ""
	s.clearSlots()
}

func (s *State) clearFacility() {
	s.Selection.FacilityID = ""
	s.clearDate()
}

func (s *State) clearSport() {
	s.Selection.SportID = ""
	s.Facilities = nil
	s.FacilitiesStatus = QueryIdle
	s.Tokens.Facilities++
	s.clearFacility()
}

func (s *State) issueFacilitiesQuery() {
	s.Facilities = nil
	s.FacilitiesStatus = QueryLoading
	s.Tokens.Facilities++
}

func (s *State) issueSlotsQuery() {
	s.Slots = nil
	s.Selection.SlotTimes = nil
	s.SlotsStatus = QueryLoading
	s.Tokens.Slots++
}
