package focus

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/lockin/backend/internal/domain/circle"
	"github.com/lockin/backend/internal/domain/focus"
	"github.com/lockin/backend/internal/domain/shared"
)

// SessionService handles focus session lifecycle and time logging
type SessionService struct {
	sessionRepo     focus.SessionRepository
	participantRepo focus.ParticipantRepository
	timeLogRepo     focus.TimeLogRepository
	groupRepo       circle.GroupRepository
	memberRepo      circle.MemberRepository
	eventPublisher  shared.EventPublisher
}

// NewSessionService creates a new SessionService
func NewSessionService(
	sessionRepo focus.SessionRepository,
	participantRepo focus.ParticipantRepository,
	timeLogRepo focus.TimeLogRepository,
	groupRepo circle.GroupRepository,
	memberRepo circle.MemberRepository,
) *SessionService {
	return &SessionService{
		sessionRepo:     sessionRepo,
		participantRepo: participantRepo,
		timeLogRepo:     timeLogRepo,
		groupRepo:       groupRepo,
		memberRepo:      memberRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *SessionService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a focus session. Group sessions require the host to be
// a member of a non-archived group; solo sessions have no group.
func (s *SessionService) Create(ctx context.Context, hostUserID uuid.UUID, req *CreateSessionRequest) (*SessionResponse, error) {
	if req.GroupID != nil {
		group, err := s.groupRepo.FindByID(ctx, *req.GroupID)
		if err != nil {
			return nil, err
		}
		if group.StatusAt(time.Now().UTC()) == circle.GroupStatusArchived {
			return nil, shared.NewDomainError("GROUP_ARCHIVED", "Cannot create sessions in an archived group")
		}
		if _, err := s.memberRepo.Find(ctx, *req.GroupID, hostUserID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("FORBIDDEN", "User is not a member of this group")
			}
			return nil, err
		}
	}

	title := req.Title
	if title == "" {
		title = "Focus session"
	}
	scheduledAt := time.Now().UTC()
	if req.ScheduledStart != nil {
		scheduledAt = req.ScheduledStart.UTC()
	}

	session, err := focus.NewSession(req.GroupID, hostUserID, title, scheduledAt)
	if err != nil {
		return nil, err
	}

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}

	host, err := focus.NewParticipant(session.ID, hostUserID, focus.ParticipantRoleHost)
	if err != nil {
		return nil, err
	}
	if _, err := s.participantRepo.GetOrCreate(ctx, host); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, session)

	resp := ToSessionResponse(session, time.Now().UTC())
	return &resp, nil
}

// Get returns a session together with its participants. Solo sessions
// are visible to the host only; group sessions to any group member.
func (s *SessionService) Get(ctx context.Context, sessionID, userID uuid.UUID) (*SessionDetailResponse, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.requireVisibility(ctx, session, userID); err != nil {
		return nil, err
	}

	participants, err := s.participantRepo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	resp := &SessionDetailResponse{
		SessionResponse: ToSessionResponse(session, time.Now().UTC()),
		Participants:    make([]ParticipantResponse, 0, len(participants)),
	}
	for _, p := range participants {
		resp.Participants = append(resp.Participants, ToParticipantResponse(p))
	}
	return resp, nil
}

// ListByGroup returns all sessions of a group, newest first. Requires
// group membership.
func (s *SessionService) ListByGroup(ctx context.Context, groupID, userID uuid.UUID) ([]SessionResponse, error) {
	if _, err := s.memberRepo.Find(ctx, groupID, userID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("FORBIDDEN", "User is not a member of this group")
		}
		return nil, err
	}

	sessions, err := s.sessionRepo.FindByGroupID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	responses := make([]SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		responses = append(responses, ToSessionResponse(session, now))
	}
	return responses, nil
}

// ListByUser returns sessions the user participates in, newest first
func (s *SessionService) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]SessionResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	sessions, err := s.sessionRepo.FindByUserID(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	responses := make([]SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		responses = append(responses, ToSessionResponse(session, now))
	}
	return responses, nil
}

// EnsureParticipant idempotently attaches the user to the session: the
// creator as host, anyone else as participant. Calling twice returns
// the same record. Only group members may join someone else's session;
// solo sessions admit the host alone.
func (s *SessionService) EnsureParticipant(ctx context.Context, sessionID, userID uuid.UUID) (*ParticipantResponse, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	role := focus.ParticipantRoleParticipant
	if session.HostUserID == userID {
		role = focus.ParticipantRoleHost
	}

	if role != focus.ParticipantRoleHost {
		if session.IsSolo() {
			return nil, shared.NewDomainError("FORBIDDEN", "Solo sessions cannot be joined")
		}
		if session.Status.IsTerminal() {
			return nil, shared.ErrTerminalState
		}
		if _, err := s.memberRepo.Find(ctx, *session.GroupID, userID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("FORBIDDEN", "User is not a member of this group")
			}
			return nil, err
		}
	}

	participant, err := focus.NewParticipant(sessionID, userID, role)
	if err != nil {
		return nil, err
	}
	participant, err = s.participantRepo.GetOrCreate(ctx, participant)
	if err != nil {
		return nil, err
	}

	resp := ToParticipantResponse(participant)
	return &resp, nil
}

// UpdateStatus moves a session through its lifecycle. Only the host may
// drive the session. When two writers race, the stored status is
// re-read and the loser's transition is re-validated against it, so the
// caller sees the same error it would have seen arriving second.
func (s *SessionService) UpdateStatus(ctx context.Context, sessionID, userID uuid.UUID, req *UpdateStatusRequest) (*SessionResponse, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.HostUserID != userID {
		return nil, shared.NewDomainError("FORBIDDEN", "Only the session host can change its status")
	}

	target := focus.SessionStatus(req.Status)
	at := time.Now().UTC()
	if req.Timestamp != nil {
		at = req.Timestamp.UTC()
	}

	expectedStatus := session.Status
	if err := session.ApplyTransition(target, at); err != nil {
		return nil, err
	}

	if err := s.sessionRepo.SaveWithStatusCheck(ctx, session, expectedStatus); err != nil {
		if errors.Is(err, shared.ErrConcurrencyConflict) {
			return nil, s.resolveConflict(ctx, sessionID, target)
		}
		return nil, err
	}

	if target == focus.SessionStatusEnded {
		if err := s.recordSessionTime(ctx, session); err != nil {
			return nil, err
		}
	}

	s.publishDomainEvents(ctx, session)

	resp := ToSessionResponse(session, at)
	return &resp, nil
}

// resolveConflict maps a lost status race to the error the caller would
// have received had its request arrived after the winner's.
func (s *SessionService) resolveConflict(ctx context.Context, sessionID uuid.UUID, target focus.SessionStatus) error {
	current, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return shared.ErrConcurrencyConflict
	}
	if current.Status.IsTerminal() {
		return shared.ErrTerminalState
	}
	if !current.Status.CanTransitionTo(target) {
		return shared.ErrInvalidTransition
	}
	return shared.ErrConcurrencyConflict
}

// recordSessionTime writes one time log per participant of an ended
// session. Each log spans the accumulated focus time ending at the
// session's end instant, so pauses shorten the interval rather than
// splitting it.
func (s *SessionService) recordSessionTime(ctx context.Context, session *focus.Session) error {
	if session.AccumulatedSeconds <= 0 || session.EndedAt == nil {
		return nil
	}

	endedAt := *session.EndedAt
	startedAt := endedAt.Add(-time.Duration(session.AccumulatedSeconds) * time.Second)
	sessionID := session.ID

	participants, err := s.participantRepo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return err
	}

	for _, p := range participants {
		participantID := p.ID
		log, err := focus.NewTimeLog(p.UserID, session.GroupID, &sessionID, &participantID, startedAt, endedAt, focus.TimeLogSourceSession)
		if err != nil {
			return err
		}
		if err := s.timeLogRepo.Save(ctx, log); err != nil {
			return err
		}
		if s.eventPublisher != nil {
			_ = s.eventPublisher.Publish(ctx, focus.NewTimeLogRecordedEvent(log))
		}
	}
	return nil
}

// AddTimeLog records a client-measured interval against a session,
// bypassing the session's own timer. The wrapped interval check still
// applies. Callers may log their own time; the host may log anyone's.
func (s *SessionService) AddTimeLog(ctx context.Context, callerID, sessionID uuid.UUID, req *AddTimeLogRequest) (*TimeLogResponse, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if callerID != req.UserID && callerID != session.HostUserID {
		return nil, shared.NewDomainError("FORBIDDEN", "Only the host may log time for other participants")
	}

	if session.GroupID != nil {
		group, err := s.groupRepo.FindByID(ctx, *session.GroupID)
		if err != nil {
			return nil, err
		}
		if group.StatusAt(time.Now().UTC()) == circle.GroupStatusArchived {
			return nil, shared.NewDomainError("GROUP_ARCHIVED", "Cannot log time against an archived group")
		}
		if _, err := s.memberRepo.Find(ctx, *session.GroupID, req.UserID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("FORBIDDEN", "User is not a member of this group")
			}
			return nil, err
		}
	}

	log, err := focus.NewTimeLog(req.UserID, session.GroupID, &sessionID, nil, req.StartedAt, req.EndedAt, focus.TimeLogSourceManual)
	if err != nil {
		return nil, err
	}
	if err := s.timeLogRepo.Save(ctx, log); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, focus.NewTimeLogRecordedEvent(log))
	}

	resp := ToTimeLogResponse(log)
	return &resp, nil
}

// requireVisibility checks that the user may view the session
func (s *SessionService) requireVisibility(ctx context.Context, session *focus.Session, userID uuid.UUID) error {
	if session.IsSolo() {
		if session.HostUserID != userID {
			return shared.NewDomainError("FORBIDDEN", "Solo sessions are visible to their host only")
		}
		return nil
	}
	if _, err := s.memberRepo.Find(ctx, *session.GroupID, userID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("FORBIDDEN", "User is not a member of this group")
		}
		return err
	}
	return nil
}

// publishDomainEvents publishes all domain events from the session
func (s *SessionService) publishDomainEvents(ctx context.Context, session *focus.Session) {
	if s.eventPublisher == nil {
		return
	}
	events := session.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	session.ClearDomainEvents()
}
