package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockin/backend/internal/domain/focus"
)

func TestGormParticipantRepository_GetOrCreate(t *testing.T) {
	t.Run("inserts new participant and returns stored row", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormParticipantRepository(gormDB)

		participant, err := focus.NewParticipant(uuid.New(), uuid.New(), focus.ParticipantRoleHost)
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO "session_participants" .+ ON CONFLICT \("session_id","user_id"\) DO NOTHING`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT \* FROM "session_participants" WHERE session_id = \$1 AND user_id = \$2`).
			WithArgs(participant.SessionID, participant.UserID, 1).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "created_at", "updated_at", "session_id", "user_id", "role", "joined_at",
			}).AddRow(
				participant.ID, participant.CreatedAt, participant.UpdatedAt,
				participant.SessionID, participant.UserID, "host", participant.JoinedAt,
			))

		stored, err := repo.GetOrCreate(context.Background(), participant)

		assert.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, participant.ID, stored.ID)
		assert.Equal(t, focus.ParticipantRoleHost, stored.Role)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second call yields the first participant id", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormParticipantRepository(gormDB)

		sessionID := uuid.New()
		userID := uuid.New()
		firstID := uuid.New()
		joinedAt := time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)

		retry, err := focus.NewParticipant(sessionID, userID, focus.ParticipantRoleParticipant)
		require.NoError(t, err)

		// conflict on (session_id, user_id): the insert is a no-op and
		// the re-read returns the row the first call created
		mock.ExpectExec(`INSERT INTO "session_participants" .+ ON CONFLICT \("session_id","user_id"\) DO NOTHING`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT \* FROM "session_participants" WHERE session_id = \$1 AND user_id = \$2`).
			WithArgs(sessionID, userID, 1).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "created_at", "updated_at", "session_id", "user_id", "role", "joined_at",
			}).AddRow(
				firstID, joinedAt, joinedAt, sessionID, userID, "participant", joinedAt,
			))

		stored, err := repo.GetOrCreate(context.Background(), retry)

		assert.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, firstID, stored.ID)
		assert.NotEqual(t, retry.ID, stored.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
