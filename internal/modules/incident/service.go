package incident

import (
	"context"
	"fmt"

	"reservasalas/internal/domain"
	"reservasalas/internal/repository"
)

type Service struct {
	incidents    IncidentRepository
	alerts       AlertRepository
	reservations ReservationReader
	pusher       AlertPusher

	// notifyReporter controls whether the reporter also gets an alert about
	// their own report.
	notifyReporter bool
}

func NewService(incidents IncidentRepository, alerts AlertRepository, reservations ReservationReader, pusher AlertPusher, notifyReporter bool) *Service {
	return &Service{
		incidents:      incidents,
		alerts:         alerts,
		reservations:   reservations,
		pusher:         pusher,
		notifyReporter: notifyReporter,
	}
}

// Report opens an incident and fans out one unread alert per participant of
// the referenced reservation, all in one transaction. Room and building are
// denormalized from the reservation so the incident survives its deletion.
func (s *Service) Report(ctx context.Context, actor domain.Identity, req ReportIncidentRequest) (*ReportResult, error) {
	incType := domain.IncidentType(req.Type)
	severity := domain.IncidentSeverity(req.Severity)
	if !incType.Valid() || !severity.Valid() || req.Description == "" {
		return nil, ErrValidation
	}

	r, err := s.reservations.GetByID(ctx, req.ReservationID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}

	if !actor.IsAdmin && !r.HasParticipant(actor.CI) {
		return nil, ErrForbidden
	}

	inc := &domain.Incident{
		ReservationID: r.ID,
		RoomName:      r.RoomName,
		Building:      r.Building,
		Reporter:      actor.CI,
		Type:          incType,
		Severity:      severity,
		Description:   req.Description,
		Status:        domain.IncidentOpen,
	}

	recipients := make([]string, 0, len(r.Participants))
	for _, ci := range r.Participants {
		if ci == actor.CI && !s.notifyReporter {
			continue
		}
		recipients = append(recipients, ci)
	}

	message := fmt.Sprintf("%s incident (%s) reported for %s, %s: %s",
		incType, severity, r.RoomName, r.Building, req.Description)

	alerts, err := s.incidents.CreateWithAlerts(ctx, inc, recipients, message)
	if err != nil {
		return nil, err
	}

	if s.pusher != nil {
		for _, a := range alerts {
			s.pusher.Push(a)
		}
	}

	return &ReportResult{Incident: *inc, Alerts: alerts}, nil
}

// Resolve closes the incident directly, without passing through in_progress.
// That shortcut is intentional; only terminal incidents reject it.
func (s *Service) Resolve(ctx context.Context, actor domain.Identity, id int64) (*domain.Incident, error) {
	inc, err := s.incidents.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !actor.IsAdmin && inc.Reporter != actor.CI {
		return nil, ErrForbidden
	}
	if inc.Status.Terminal() {
		return nil, ErrIncidentClosed
	}

	if err := s.incidents.UpdateStatus(ctx, id, domain.IncidentResolved); err != nil {
		return nil, err
	}
	inc.Status = domain.IncidentResolved
	return inc, nil
}

// AdminChangeStatus moves the incident to any status in the enum without
// adjacency restrictions. Administrator only.
func (s *Service) AdminChangeStatus(ctx context.Context, actor domain.Identity, id int64, newStatus domain.IncidentStatus) (*domain.Incident, error) {
	if !actor.IsAdmin {
		return nil, ErrForbidden
	}
	if !newStatus.Valid() {
		return nil, ErrValidation
	}

	inc, err := s.incidents.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.incidents.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}
	inc.Status = newStatus
	return inc, nil
}

// Delete removes the incident and cascades to exactly its alerts.
func (s *Service) Delete(ctx context.Context, actor domain.Identity, id int64) error {
	if !actor.IsAdmin {
		return ErrForbidden
	}

	found, err := s.incidents.DeleteCascade(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

func (s *Service) ListMine(ctx context.Context, actor domain.Identity) ([]domain.Incident, error) {
	return s.incidents.ListByReporter(ctx, actor.CI)
}

func (s *Service) ListByRoom(ctx context.Context, actor domain.Identity, building, roomName string) ([]domain.Incident, error) {
	if !actor.IsAdmin {
		return nil, ErrForbidden
	}
	return s.incidents.ListByRoom(ctx, building, roomName)
}

// MarkAlertRead sets read=true for the recipient. Idempotent: re-marking an
// already read alert succeeds and changes nothing.
func (s *Service) MarkAlertRead(ctx context.Context, actor domain.Identity, alertID int64) (*domain.Alert, error) {
	a, err := s.alerts.GetByID(ctx, alertID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrAlertNotFound
		}
		return nil, err
	}

	if a.Recipient != actor.CI {
		return nil, ErrForbidden
	}

	if !a.Read {
		if err := s.alerts.MarkRead(ctx, alertID); err != nil {
			return nil, err
		}
		a.Read = true
	}
	return a, nil
}

func (s *Service) ListMyAlerts(ctx context.Context, actor domain.Identity) ([]domain.Alert, int64, error) {
	list, err := s.alerts.ListByRecipient(ctx, actor.CI)
	if err != nil {
		return nil, 0, err
	}

	unread, err := s.alerts.CountUnread(ctx, actor.CI)
	if err != nil {
		unread = 0
	}
	return list, unread, nil
}
