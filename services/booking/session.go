package booking

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	slotRepo "turfacademy/database/repository/slot"
	"turfacademy/models"
	"turfacademy/services/catalog"
	"turfacademy/services/flow"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// SessionService drives a server side booking flow. Every call feeds one
// event to flow.Transition; queries run between two session updates and
// their results are applied by sequence token.
type SessionService interface {
	Start(ctx context.Context, userID string) (*Session, error)
	Get(ctx context.Context, userID, sessionID string) (*Session, error)
	Cancel(ctx context.Context, userID, sessionID string) error

	SelectSport(ctx context.Context, userID, sessionID, sportID string) (*Session, error)
	SelectFacility(ctx context.Context, userID, sessionID, facilityID string) (*Session, error)
	SelectDate(ctx context.Context, userID, sessionID, date string) (*Session, error)
	RefreshSlots(ctx context.Context, userID, sessionID string) (*Session, error)
	SelectSlots(ctx context.Context, userID, sessionID string, times []string) (*Session, error)
	SetParticipant(ctx context.Context, userID, sessionID string, participant models.Participant) (*Session, error)
	Back(ctx context.Context, userID, sessionID string) (*Session, error)
	Reset(ctx context.Context, userID, sessionID string) (*Session, error)
	DismissNotice(ctx context.Context, userID, sessionID string) (*Session, error)

	// Submit sends exactly one reservation request for the current selection.
	Submit(ctx context.Context, userID, sessionID string) (*Session, error)
}

// FacilityLister is the catalog query used for the facility list.
type FacilityLister interface {
	ListFacilities(ctx context.Context, sportID string) ([]models.Facility, error)
}

// ReservationCreator is the reservation request used on submit.
type ReservationCreator interface {
	Create(ctx context.Context, userID string, req models.ReservationRequest) (*models.Reservation, error)
}

type DefaultSessionService struct {
	Store         SessionStore
	Catalog       FacilityLister
	Availability  AvailabilityService
	Reservations  ReservationCreator
	QueryTimeout  time.Duration
	SubmitTimeout time.Duration
	Logger        *zap.Logger
}

const resultApplyTimeout = 5 * time.Second

func (s *DefaultSessionService) Start(ctx context.Context, userID string) (*Session, error) {
	now := time.Now().UTC()
	session := &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		State:     flow.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Create(ctx, session); err != nil {
		return nil, err
	}
	s.Logger.Info("Booking session started", zap.String("sessionID", session.ID), zap.String("userID", userID))
	return session, nil
}

func (s *DefaultSessionService) Get(ctx context.Context, userID, sessionID string) (*Session, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *DefaultSessionService) Cancel(ctx context.Context, userID, sessionID string) error {
	if _, err := s.Get(ctx, userID, sessionID); err != nil {
		return err
	}
	return s.Store.Delete(ctx, sessionID)
}

func (s *DefaultSessionService) SelectSport(ctx context.Context, userID, sessionID, sportID string) (*Session, error) {
	session, err := s.apply(ctx, userID, sessionID, flow.SelectSport{SportID: sportID})
	if err != nil {
		return nil, err
	}
	return s.loadFacilities(ctx, userID, session)
}

func (s *DefaultSessionService) SelectFacility(ctx context.Context, userID, sessionID, facilityID string) (*Session, error) {
	return s.apply(ctx, userID, sessionID, flow.SelectFacility{FacilityID: facilityID})
}

func (s *DefaultSessionService) SelectDate(ctx context.Context, userID, sessionID, date string) (*Session, error) {
	session, err := s.apply(ctx, userID, sessionID, flow.SelectDate{Date: date})
	if err != nil {
		return nil, err
	}
	return s.loadSlots(ctx, userID, session)
}

func (s *DefaultSessionService) RefreshSlots(ctx context.Context, userID, sessionID string) (*Session, error) {
	session, err := s.apply(ctx, userID, sessionID, flow.RequestSlots{})
	if err != nil {
		return nil, err
	}
	return s.loadSlots(ctx, userID, session)
}

func (s *DefaultSessionService) SelectSlots(ctx context.Context, userID, sessionID string, times []string) (*Session, error) {
	return s.apply(ctx, userID, sessionID, flow.SelectSlots{Times: times})
}

func (s *DefaultSessionService) SetParticipant(ctx context.Context, userID, sessionID string, participant models.Participant) (*Session, error) {
	return s.apply(ctx, userID, sessionID, flow.SetParticipant{Participant: participant})
}

func (s *DefaultSessionService) Back(ctx context.Context, userID, sessionID string) (*Session, error) {
	return s.apply(ctx, userID, sessionID, flow.Back{})
}

func (s *DefaultSessionService) Reset(ctx context.Context, userID, sessionID string) (*Session, error) {
	return s.apply(ctx, userID, sessionID, flow.Reset{})
}

func (s *DefaultSessionService) DismissNotice(ctx context.Context, userID, sessionID string) (*Session, error) {
	return s.apply(ctx, userID, sessionID, flow.DismissNotice{})
}

func (s *DefaultSessionService) Submit(ctx context.Context, userID, sessionID string) (*Session, error) {
	// SubmitStarted validates the participant and blocks a second submit
	// while this one is in flight.
	session, err := s.apply(ctx, userID, sessionID, flow.SubmitStarted{})
	if err != nil {
		return nil, err
	}
	state := session.State
	seq := state.Tokens.Submit
	req := models.ReservationRequest{
		SportID:     state.Selection.SportID,
		FacilityID:  state.Selection.FacilityID,
		Date:        state.Selection.Date,
		SlotTimes:   state.Selection.SlotTimes,
		Participant: state.Participant,
	}

	submitCtx, cancel := withTimeout(ctx, s.SubmitTimeout)
	reservation, err := s.Reservations.Create(submitCtx, userID, req)
	cancel()

	var (
		ev       flow.Event
		conflict *ConflictError
	)
	switch {
	case err == nil:
		ev = flow.SubmitSucceeded{Seq: seq, ReservationID: reservation.ID, Status: reservation.Status, Amount: reservation.Amount}
	case errors.As(err, &conflict):
		ev = flow.SubmitConflict{Seq: seq, Times: conflict.Times}
	case IsTransient(err):
		ev = flow.SubmitFailed{Seq: seq, Reason: reason(err)}
	default:
		ev = flow.SubmitFatal{Seq: seq, Reason: reason(err)}
	}
	if err != nil {
		s.Logger.Warn("Booking submission failed",
			zap.String("sessionID", sessionID),
			zap.String("outcome", fmt.Sprintf("%T", ev)),
			zap.Error(err),
		)
	}

	session, err = s.applyResult(ctx, userID, sessionID, ev)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return s.loadSlots(ctx, userID, session)
	}
	return session, nil
}

// loadFacilities runs the facility query issued by the last transition.
func (s *DefaultSessionService) loadFacilities(ctx context.Context, userID string, session *Session) (*Session, error) {
	if session.State.FacilitiesStatus != flow.QueryLoading {
		return session, nil
	}
	seq := session.State.Tokens.Facilities

	queryCtx, cancel := withTimeout(ctx, s.QueryTimeout)
	facilities, err := s.Catalog.ListFacilities(queryCtx, session.State.Selection.SportID)
	cancel()

	var ev flow.Event = flow.FacilitiesLoaded{Seq: seq, Facilities: facilities}
	if err != nil {
		s.Logger.Warn("Facility query failed", zap.String("sessionID", session.ID), zap.Error(err))
		ev = flow.FacilitiesFailed{Seq: seq, Reason: reason(err)}
	}
	return s.applyResult(ctx, userID, session.ID, ev)
}

// loadSlots runs the availability query issued by the last transition.
func (s *DefaultSessionService) loadSlots(ctx context.Context, userID string, session *Session) (*Session, error) {
	if session.State.SlotsStatus != flow.QueryLoading {
		return session, nil
	}
	seq := session.State.Tokens.Slots
	sel := session.State.Selection

	queryCtx, cancel := withTimeout(ctx, s.QueryTimeout)
	slots, err := s.Availability.GetSlots(queryCtx, sel.FacilityID, sel.Date)
	cancel()

	var ev flow.Event = flow.SlotsLoaded{Seq: seq, Slots: slots}
	if err != nil {
		s.Logger.Warn("Availability query failed",
			zap.String("sessionID", session.ID),
			zap.String("facilityID", sel.FacilityID),
			zap.String("date", sel.Date),
			zap.Error(err),
		)
		ev = flow.SlotsFailed{Seq: seq, Reason: reason(err)}
	}
	return s.applyResult(ctx, userID, session.ID, ev)
}

// applyResult stores a query result even if the caller went away, so a
// session never stays stuck in a loading or submitting state.
func (s *DefaultSessionService) applyResult(ctx context.Context, userID, sessionID string, ev flow.Event) (*Session, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), resultApplyTimeout)
	defer cancel()
	return s.apply(ctx, userID, sessionID, ev)
}

func (s *DefaultSessionService) apply(ctx context.Context, userID, sessionID string, ev flow.Event) (*Session, error) {
	return s.Store.Update(ctx, sessionID, func(session *Session) error {
		if session.UserID != userID {
			return ErrSessionNotFound
		}
		next, err := flow.Transition(session.State, ev)
		if err != nil {
			if errors.Is(err, flow.ErrStaleResponse) {
				s.Logger.Debug("Discarded stale response", zap.String("sessionID", sessionID), zap.String("event", fmt.Sprintf("%T", ev)))
				return nil
			}
			return err
		}
		session.State = next
		return nil
	})
}

// IsTransient reports failures worth retrying with the same input.
func IsTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	if errors.Is(err, ErrSessionBusy) || errors.Is(err, slotRepo.ErrWriteConflict) {
		return true
	}
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func reason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "the request timed out"
	case errors.Is(err, context.Canceled):
		return "the request was interrupted"
	case errors.Is(err, slotRepo.ErrWriteConflict):
		return "another booking was saved at the same moment, please try again"
	case errors.Is(err, ErrFacilityNotFound), errors.Is(err, ErrFacilityInactive),
		errors.Is(err, ErrSportMismatch), errors.Is(err, ErrInvalidDate),
		errors.Is(err, catalog.ErrSportNotFound):
		return err.Error()
	case IsTransient(err):
		return "the service is temporarily unavailable"
	default:
		return "something went wrong"
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
