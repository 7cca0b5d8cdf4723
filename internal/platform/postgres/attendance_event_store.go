package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/attendance-api/internal/domain"
	"github.com/phrazzld/attendance-api/internal/platform/logger"
	"github.com/phrazzld/attendance-api/internal/redact"
	"github.com/phrazzld/attendance-api/internal/store"
)

const attendanceEventColumns = `id, user_id, event_type, event_time, recorded_at, created_at`

const (
	// The insert only succeeds for a live user. A soft-deleted user still
	// satisfies the foreign key, so the guard is needed in addition to it.
	insertAttendanceEventQuery = `
		INSERT INTO attendance_events (` + attendanceEventColumns + `)
		SELECT $1::uuid, $2::uuid, $3::varchar, $4::timestamptz, $5::timestamptz, $6::timestamptz
		WHERE EXISTS (SELECT 1 FROM users WHERE id = $2::uuid AND ` + liveUserPredicate + `)
		RETURNING ` + attendanceEventColumns

	selectAttendanceEventByIDQuery = `
		SELECT ` + attendanceEventColumns + `
		FROM attendance_events
		WHERE id = $1`

	selectAttendanceEventsByUserQuery = `
		SELECT ` + attendanceEventColumns + `
		FROM attendance_events
		WHERE user_id = $1
		ORDER BY event_time DESC, id`
)

// PostgresAttendanceEventStore implements store.AttendanceEventStore on PostgreSQL.
type PostgresAttendanceEventStore struct {
	db      store.DBTX
	timeout time.Duration
	now     func() time.Time
	logger  *slog.Logger
}

// NewPostgresAttendanceEventStore creates an attendance event store over db.
func NewPostgresAttendanceEventStore(db store.DBTX, timeout time.Duration, logger *slog.Logger) *PostgresAttendanceEventStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAttendanceEventStore{
		db:      db,
		timeout: timeout,
		now:     func() time.Time { return time.Now().UTC() },
		logger:  logger.With(slog.String("component", "attendance_event_store")),
	}
}

var _ store.AttendanceEventStore = (*PostgresAttendanceEventStore)(nil)

func scanAttendanceEvent(row rowScanner) (*domain.AttendanceEvent, error) {
	var e domain.AttendanceEvent
	if err := row.Scan(&e.ID, &e.UserID, &e.EventType, &e.EventTime, &e.RecordedAt, &e.CreatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

// Create implements store.AttendanceEventStore.Create. RecordedAt and
// CreatedAt are overwritten with the ingestion time.
func (s *PostgresAttendanceEventStore) Create(ctx context.Context, event *domain.AttendanceEvent) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	recordedAt := s.now()
	row := s.db.QueryRowContext(ctx, insertAttendanceEventQuery,
		event.ID, event.UserID, event.EventType, event.EventTime, recordedAt, recordedAt)

	created, err := scanAttendanceEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || IsForeignKeyViolation(err) {
			log.Debug("attendance event references unknown user",
				slog.String("user_id", event.UserID.String()))
			return store.ErrUserNotFound
		}
		log.Error("failed to create attendance event",
			slog.String("error", redact.Error(err)),
			slog.String("event_id", event.ID.String()))
		return store.NewStoreError("attendance_event", "create", "failed to insert attendance event", MapError(err))
	}

	*event = *created
	log.Info("Created attendance event",
		slog.String("event_id", event.ID.String()),
		slog.String("user_id", event.UserID.String()),
		slog.String("event_type", event.EventType))
	return nil
}

// GetByID implements store.AttendanceEventStore.GetByID.
func (s *PostgresAttendanceEventStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.AttendanceEvent, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	event, err := scanAttendanceEvent(s.db.QueryRowContext(ctx, selectAttendanceEventByIDQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("attendance event not found", slog.String("event_id", id.String()))
			return nil, store.ErrAttendanceEventNotFound
		}
		log.Error("failed to get attendance event",
			slog.String("error", redact.Error(err)),
			slog.String("event_id", id.String()))
		return nil, store.NewStoreError("attendance_event", "get_by_id", "failed to query attendance event", MapError(err))
	}
	return event, nil
}

// ListByUserID implements store.AttendanceEventStore.ListByUserID.
func (s *PostgresAttendanceEventStore) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.AttendanceEvent, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, selectAttendanceEventsByUserQuery, userID)
	if err != nil {
		log.Error("failed to list attendance events",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		return nil, store.NewStoreError("attendance_event", "list_by_user", "failed to query attendance events", MapError(err))
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	events := make([]*domain.AttendanceEvent, 0)
	for rows.Next() {
		e, err := scanAttendanceEvent(rows)
		if err != nil {
			return nil, store.NewStoreError("attendance_event", "list_by_user", "failed to scan attendance event", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("attendance_event", "list_by_user", "failed to iterate attendance events", MapError(err))
	}

	log.Debug("listed attendance events",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(events)))
	return events, nil
}
