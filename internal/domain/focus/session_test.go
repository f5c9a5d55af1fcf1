package focus

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockin/backend/internal/domain/shared"
)

func newScheduled(t *testing.T) *Session {
	t.Helper()
	session, err := NewSession(nil, uuid.New(), "Deep work", time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return session
}

func TestNewSession(t *testing.T) {
	groupID := uuid.New()
	host := uuid.New()
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	session, err := NewSession(&groupID, host, "Sprint block", at)
	require.NoError(t, err)
	assert.Equal(t, SessionStatusScheduled, session.Status)
	assert.Equal(t, &groupID, session.GroupID)
	assert.Equal(t, host, session.HostUserID)
	assert.False(t, session.IsSolo())
	assert.Nil(t, session.StartedAt)
	assert.Len(t, session.GetDomainEvents(), 1)

	_, err = NewSession(nil, host, "", at)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_TITLE")
}

func TestSessionStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    SessionStatus
		to      SessionStatus
		allowed bool
	}{
		{"scheduled to running", SessionStatusScheduled, SessionStatusRunning, true},
		{"scheduled to cancelled", SessionStatusScheduled, SessionStatusCancelled, true},
		{"scheduled to paused", SessionStatusScheduled, SessionStatusPaused, false},
		{"scheduled to ended", SessionStatusScheduled, SessionStatusEnded, false},
		{"running to paused", SessionStatusRunning, SessionStatusPaused, true},
		{"running to ended", SessionStatusRunning, SessionStatusEnded, true},
		{"running to cancelled", SessionStatusRunning, SessionStatusCancelled, true},
		{"running to scheduled", SessionStatusRunning, SessionStatusScheduled, false},
		{"paused to running", SessionStatusPaused, SessionStatusRunning, true},
		{"paused to ended", SessionStatusPaused, SessionStatusEnded, true},
		{"paused to cancelled", SessionStatusPaused, SessionStatusCancelled, true},
		{"ended to running", SessionStatusEnded, SessionStatusRunning, false},
		{"ended to cancelled", SessionStatusEnded, SessionStatusCancelled, false},
		{"cancelled to running", SessionStatusCancelled, SessionStatusRunning, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestApplyTransitionAccumulatesRunningTime(t *testing.T) {
	session := newScheduled(t)
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	require.NoError(t, session.ApplyTransition(SessionStatusRunning, base))
	require.NotNil(t, session.StartedAt)
	assert.Equal(t, base, *session.StartedAt)

	// run 25 minutes, pause 5, run 10, end
	require.NoError(t, session.ApplyTransition(SessionStatusPaused, base.Add(25*time.Minute)))
	assert.Equal(t, int64(25*60), session.AccumulatedSeconds)
	assert.Nil(t, session.RunningSince)

	require.NoError(t, session.ApplyTransition(SessionStatusRunning, base.Add(30*time.Minute)))
	require.NoError(t, session.ApplyTransition(SessionStatusEnded, base.Add(40*time.Minute)))

	assert.Equal(t, int64(35*60), session.AccumulatedSeconds)
	assert.Equal(t, SessionStatusEnded, session.Status)
	require.NotNil(t, session.EndedAt)
	assert.Equal(t, base.Add(40*time.Minute), *session.EndedAt)
}

func TestApplyTransitionRejectsInvalid(t *testing.T) {
	session := newScheduled(t)
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	err := session.ApplyTransition(SessionStatusPaused, at)
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)

	require.NoError(t, session.ApplyTransition(SessionStatusRunning, at))
	require.NoError(t, session.ApplyTransition(SessionStatusEnded, at.Add(time.Hour)))

	err = session.ApplyTransition(SessionStatusRunning, at.Add(2*time.Hour))
	assert.ErrorIs(t, err, shared.ErrTerminalState)
}

func TestApplyTransitionRejectsNonMonotonicTime(t *testing.T) {
	session := newScheduled(t)
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	require.NoError(t, session.ApplyTransition(SessionStatusRunning, at))

	err := session.ApplyTransition(SessionStatusPaused, at.Add(-time.Minute))
	assert.ErrorIs(t, err, shared.ErrNonMonotonicTime)
	assert.Equal(t, SessionStatusRunning, session.Status)

	// equal timestamps are allowed
	require.NoError(t, session.ApplyTransition(SessionStatusPaused, at))
	assert.Equal(t, int64(0), session.AccumulatedSeconds)
}

func TestCancelDiscardsRunningStretch(t *testing.T) {
	session := newScheduled(t)
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	require.NoError(t, session.ApplyTransition(SessionStatusRunning, at))
	require.NoError(t, session.ApplyTransition(SessionStatusCancelled, at.Add(10*time.Minute)))

	assert.Equal(t, int64(0), session.AccumulatedSeconds)
	assert.Equal(t, SessionStatusCancelled, session.Status)
	require.NotNil(t, session.EndedAt)
}

func TestElapsedSecondsIncludesRunningStretch(t *testing.T) {
	session := newScheduled(t)
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	require.NoError(t, session.ApplyTransition(SessionStatusRunning, at))
	assert.Equal(t, int64(15*60), session.ElapsedSeconds(at.Add(15*time.Minute)))

	require.NoError(t, session.ApplyTransition(SessionStatusPaused, at.Add(20*time.Minute)))
	assert.Equal(t, int64(20*60), session.ElapsedSeconds(at.Add(30*time.Minute)))
}

func TestNewTimeLog(t *testing.T) {
	userID := uuid.New()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)

	log, err := NewTimeLog(userID, nil, nil, nil, start, end, TimeLogSourceManual)
	require.NoError(t, err)
	assert.Equal(t, int64(45*60), log.Seconds)
	assert.Equal(t, TimeLogSourceManual, log.Source)

	_, err = NewTimeLog(userID, nil, nil, nil, end, start, TimeLogSourceManual)
	assert.ErrorIs(t, err, shared.ErrInvalidRange)

	_, err = NewTimeLog(userID, nil, nil, nil, start, start, TimeLogSourceManual)
	assert.ErrorIs(t, err, shared.ErrInvalidRange)
}
