package notification

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockin/backend/internal/domain/shared"
)

func TestNew(t *testing.T) {
	userID := uuid.New()
	groupID := uuid.New()

	n, err := New(userID, KindGroupInvite, "Invitation", "Join us", &groupID, nil)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, n.Status)
	assert.Equal(t, KindGroupInvite, n.Kind)
	assert.Equal(t, &groupID, n.GroupID)

	_, err = New(userID, Kind("spam"), "t", "b", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_KIND")

	_, err = New(userID, KindGeneric, "", "b", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_TITLE")
}

func TestMarkRead(t *testing.T) {
	n, err := New(uuid.New(), KindGeneric, "Hello", "", nil, nil)
	require.NoError(t, err)

	assert.True(t, n.MarkRead())
	assert.Equal(t, StatusRead, n.Status)

	// second read is a no-op
	assert.False(t, n.MarkRead())
	assert.Equal(t, StatusRead, n.Status)
}

func TestAcceptDecline(t *testing.T) {
	groupID := uuid.New()

	n, err := New(uuid.New(), KindGroupInvite, "Invitation", "", &groupID, nil)
	require.NoError(t, err)

	require.NoError(t, n.Accept())
	assert.Equal(t, StatusAccepted, n.Status)

	// resolving twice fails
	err = n.Decline()
	assert.ErrorIs(t, err, shared.ErrAlreadyResolved)
	assert.Equal(t, StatusAccepted, n.Status)
}

func TestAcceptAfterRead(t *testing.T) {
	groupID := uuid.New()

	n, err := New(uuid.New(), KindGroupInvite, "Invitation", "", &groupID, nil)
	require.NoError(t, err)

	// reading an invite does not resolve it
	assert.True(t, n.MarkRead())
	require.NoError(t, n.Decline())
	assert.Equal(t, StatusDeclined, n.Status)
}

func TestNonActionableKindsCannotBeResolved(t *testing.T) {
	for _, kind := range []Kind{KindMilestoneMember, KindMilestoneGroup, KindSessionReminder, KindGeneric} {
		n, err := New(uuid.New(), kind, "Title", "", nil, nil)
		require.NoError(t, err)

		err = n.Accept()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "NOT_ACTIONABLE")
	}
}

func TestMilestoneKeys(t *testing.T) {
	groupID := uuid.New()
	userID := uuid.New()
	window := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	memberKey := MemberMilestoneKey(groupID, userID, window)
	groupKey := GroupMilestoneKey(groupID, userID, window)
	assert.NotEqual(t, memberKey, groupKey)

	// same inputs produce the same key
	assert.Equal(t, memberKey, MemberMilestoneKey(groupID, userID, window))

	// a different window produces a different key
	nextDay := window.AddDate(0, 0, 1)
	assert.NotEqual(t, memberKey, MemberMilestoneKey(groupID, userID, nextDay))
}
