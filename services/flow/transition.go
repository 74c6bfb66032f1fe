package flow

import (
	"fmt"
	"strings"
	"time"

	"turfacademy/models"
	"turfacademy/utils"
)

// Transition applies e to s. On error the returned state is s unchanged.
// Slices in s are never mutated.
func Transition(s State, e Event) (State, error) {
	if s.Step == "" {
		s = New()
	}
	if s.Step == StepConfirmation {
		switch e.(type) {
		case Reset, DismissNotice:
		default:
			return s, reject(s, e, "booking is already confirmed")
		}
	}
	if s.Submitting {
		switch e.(type) {
		case SubmitSucceeded, SubmitConflict, SubmitFailed, SubmitFatal, Reset, DismissNotice:
		default:
			return s, reject(s, e, "a submission is in progress")
		}
	}

	var (
		next = s.clone()
		err  error
	)
	switch ev := e.(type) {
	case SelectSport:
		err = next.selectSport(ev)
	case FacilitiesLoaded:
		err = next.facilitiesLoaded(ev)
	case FacilitiesFailed:
		err = next.facilitiesFailed(ev)
	case SelectFacility:
		err = next.selectFacility(ev)
	case SelectDate:
		err = next.selectDate(ev)
	case RequestSlots:
		err = next.requestSlots(ev)
	case SlotsLoaded:
		err = next.slotsLoaded(ev)
	case SlotsFailed:
		err = next.slotsFailed(ev)
	case SelectSlots:
		err = next.selectSlots(ev)
	case SetParticipant:
		next.Participant = trimParticipant(ev.Participant)
	case Back:
		err = next.back(ev)
	case SubmitStarted:
		err = next.submitStarted(ev)
	case SubmitSucceeded:
		err = next.submitSucceeded(ev)
	case SubmitConflict:
		err = next.submitConflict(ev)
	case SubmitFailed:
		err = next.submitFailed(ev)
	case SubmitFatal:
		if err = next.checkSubmitToken(ev.Seq); err == nil {
			next.restart()
			next.Notice = &Notice{Kind: NoticeFatal, Message: ev.Reason}
		}
	case Reset:
		next.restart()
	case DismissNotice:
		next.Notice = nil
	default:
		return s, reject(s, e, "unknown event")
	}
	if err != nil {
		return s, err
	}
	return next, nil
}

func (s *State) selectSport(ev SelectSport) error {
	if ev.SportID == "" {
		return reject(*s, ev, "sport is required")
	}
	if ev.SportID == s.Selection.SportID {
		if s.FacilitiesStatus == QueryFailed {
			s.issueFacilitiesQuery()
			s.Notice = nil
		}
		return nil
	}
	s.clearSport()
	s.Selection.SportID = ev.SportID
	s.issueFacilitiesQuery()
	s.Step = StepChoosingFacilityAndDate
	s.Notice = nil
	return nil
}

func (s *State) facilitiesLoaded(ev FacilitiesLoaded) error {
	if ev.Seq != s.Tokens.Facilities || s.FacilitiesStatus != QueryLoading {
		return ErrStaleResponse
	}
	s.Facilities = nil
	for _, f := range ev.Facilities {
		if f.IsActive() && f.Supports(s.Selection.SportID) {
			s.Facilities = append(s.Facilities, f)
		}
	}
	s.FacilitiesStatus = QueryLoaded
	return nil
}

func (s *State) facilitiesFailed(ev FacilitiesFailed) error {
	if ev.Seq != s.Tokens.Facilities || s.FacilitiesStatus != QueryLoading {
		return ErrStaleResponse
	}
	s.Facilities = nil
	s.FacilitiesStatus = QueryFailed
	s.Notice = &Notice{Kind: NoticeTransient, Message: failureMessage("facilities could not be loaded", ev.Reason)}
	return nil
}

func (s *State) selectFacility(ev SelectFacility) error {
	if s.Selection.SportID == "" {
		return reject(*s, ev, "choose a sport first")
	}
	if s.FacilitiesStatus != QueryLoaded {
		return reject(*s, ev, "facilities are not loaded")
	}
	if _, ok := s.findFacility(ev.FacilityID); !ok {
		return reject(*s, ev, fmt.Sprintf("facility %q is not offered for the selected sport", ev.FacilityID))
	}
	if ev.FacilityID == s.Selection.FacilityID {
		return nil
	}
	s.clearFacility()
	s.Selection.FacilityID = ev.FacilityID
	s.Step = StepChoosingFacilityAndDate
	s.Notice = nil
	return nil
}

func (s *State) selectDate(ev SelectDate) error {
	if s.Selection.FacilityID == "" {
		return reject(*s, ev, "choose a facility before a date")
	}
	if _, err := time.Parse(models.DateLayout, ev.Date); err != nil {
		return &utils.ValidationError{Fields: map[string]string{"date": "Must match the format " + models.DateLayout}}
	}
	s.Selection.Date = ev.Date
	s.issueSlotsQuery()
	s.Step = StepChoosingSlot
	s.Notice = nil
	return nil
}

func (s *State) requestSlots(ev RequestSlots) error {
	if s.Selection.Date == "" {
		return reject(*s, ev, "choose a date first")
	}
	s.issueSlotsQuery()
	s.Step = StepChoosingSlot
	s.Notice = nil
	return nil
}

func (s *State) slotsLoaded(ev SlotsLoaded) error {
	if ev.Seq != s.Tokens.Slots || s.SlotsStatus != QueryLoading {
		return ErrStaleResponse
	}
	s.Slots = append([]models.Slot(nil), ev.Slots...)
	s.SlotsStatus = QueryLoaded
	s.Selection.SlotTimes = nil
	s.Step = StepChoosingSlot
	return nil
}

func (s *State) slotsFailed(ev SlotsFailed) error {
	if ev.Seq != s.Tokens.Slots || s.SlotsStatus != QueryLoading {
		return ErrStaleResponse
	}
	s.Slots = nil
	s.SlotsStatus = QueryFailed
	s.Selection.SlotTimes = nil
	s.Step = StepChoosingSlot
	s.Notice = &Notice{Kind: NoticeTransient, Message: failureMessage("availability could not be loaded", ev.Reason)}
	return nil
}

func (s *State) selectSlots(ev SelectSlots) error {
	if s.Step != StepChoosingSlot && s.Step != StepReadyToSubmit {
		return reject(*s, ev, "choose a facility and date first")
	}
	if s.SlotsStatus != QueryLoaded {
		return reject(*s, ev, "availability is not loaded")
	}
	if len(ev.Times) == 0 {
		return nil
	}

	wanted := make(map[string]bool, len(ev.Times))
	for _, t := range ev.Times {
		slot, ok := s.findSlot(t)
		if !ok {
			return reject(*s, ev, fmt.Sprintf("slot %s does not exist", t))
		}
		if !slot.IsAvailable() {
			return reject(*s, ev, fmt.Sprintf("slot %s is %s", t, slot.Status))
		}
		wanted[t] = true
	}

	// Keep the chosen times in the order the facility lists them.
	times := make([]string, 0, len(wanted))
	for _, slot := range s.Slots {
		if wanted[slot.Time] {
			times = append(times, slot.Time)
		}
	}
	s.Selection.SlotTimes = times
	s.Step = StepReadyToSubmit
	s.Notice = nil
	return nil
}

func (s *State) back(ev Back) error {
	s.Notice = nil
	switch {
	case len(s.Selection.SlotTimes) > 0:
		s.Selection.SlotTimes = nil
		s.Step = StepChoosingSlot
	case s.Selection.Date != "":
		s.clearDate()
		s.Step = StepChoosingFacilityAndDate
	case s.Selection.FacilityID != "":
		s.clearFacility()
		s.Step = StepChoosingFacilityAndDate
	case s.Selection.SportID != "":
		s.clearSport()
		s.Step = StepChoosingSport
	default:
		return reject(*s, ev, "nothing to go back from")
	}
	return nil
}

func (s *State) submitStarted(ev SubmitStarted) error {
	if s.Step != StepReadyToSubmit || !s.Selection.Complete() {
		return reject(*s, ev, "selection is not complete")
	}
	// Missing participant details block the submission before anything is sent.
	if err := utils.Validate(s.Participant); err != nil {
		return err
	}
	s.Submitting = true
	s.Tokens.Submit++
	s.Notice = nil
	return nil
}

func (s *State) checkSubmitToken(seq uint64) error {
	if !s.Submitting || seq != s.Tokens.Submit {
		return ErrStaleResponse
	}
	return nil
}

func (s *State) submitSucceeded(ev SubmitSucceeded) error {
	if err := s.checkSubmitToken(ev.Seq); err != nil {
		return err
	}
	s.Submitting = false
	s.Step = StepConfirmation
	s.Notice = nil
	s.Outcome = &Outcome{
		ReservationID: ev.ReservationID,
		Status:        ev.Status,
		ParentName:    s.Participant.ParentName,
		PlayerName:    s.Participant.PlayerName,
		Mobile:        s.Participant.Mobile,
		Amount:        ev.Amount,
	}
	return nil
}

// submitConflict marks the taken slots and issues a refresh of the list. The
// current list stays visible until the refresh lands.
func (s *State) submitConflict(ev SubmitConflict) error {
	if err := s.checkSubmitToken(ev.Seq); err != nil {
		return err
	}
	taken := make(map[string]bool, len(ev.Times))
	for _, t := range ev.Times {
		taken[t] = true
	}
	for i := range s.Slots {
		if taken[s.Slots[i].Time] {
			s.Slots[i].Status = models.SlotBooked
		}
	}
	s.Submitting = false
	s.Selection.SlotTimes = nil
	s.SlotsStatus = QueryLoading
	s.Tokens.Slots++
	s.Step = StepChoosingSlot
	s.Notice = &Notice{
		Kind:    NoticeConflict,
		Message: "no longer available: " + strings.Join(ev.Times, ", "),
	}
	return nil
}

func (s *State) submitFailed(ev SubmitFailed) error {
	if err := s.checkSubmitToken(ev.Seq); err != nil {
		return err
	}
	s.Submitting = false
	s.Notice = &Notice{Kind: NoticeTransient, Message: failureMessage("booking could not be submitted", ev.Reason)}
	return nil
}

// restart returns to the first step. Tokens keep counting so responses to
// earlier queries stay stale.
func (s *State) restart() {
	tokens := s.Tokens
	*s = New()
	s.Tokens = Tokens{
		Facilities: tokens.Facilities + 1,
		Slots:      tokens.Slots + 1,
		Submit:     tokens.Submit + 1,
	}
}

func trimParticipant(p models.Participant) models.Participant {
	return models.Participant{
		ParentName: strings.TrimSpace(p.ParentName),
		Mobile:     strings.TrimSpace(p.Mobile),
		PlayerName: strings.TrimSpace(p.PlayerName),
		Age:        strings.TrimSpace(p.Age),
	}
}

func failureMessage(what, reason string) string {
	if reason == "" {
		return what
	}
	return what + ": " + reason
}
