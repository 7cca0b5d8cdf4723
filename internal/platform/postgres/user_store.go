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

// liveUserPredicate hides soft-deleted users. Every user query except
// GetByIDIncludingDeleted, and every query that must only see live users
// (such as the attendance event insert guard), is built from it.
const liveUserPredicate = `deleted_at IS NULL`

const userColumns = `id, name, email, picture, created_at, updated_at, deleted_at`

const (
	insertUserQuery = `
		INSERT INTO users (id, name, email, picture, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns

	selectLiveUserByIDQuery = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1 AND ` + liveUserPredicate

	selectLiveUserByEmailQuery = `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1 AND ` + liveUserPredicate

	selectAnyUserByIDQuery = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1`

	selectLiveUsersQuery = `
		SELECT ` + userColumns + `
		FROM users
		WHERE ` + liveUserPredicate + `
		ORDER BY created_at, id`

	// updated_at never moves backwards, even if this host's clock trails the
	// one that wrote the previous value.
	updateLiveUserQuery = `
		UPDATE users
		SET name = COALESCE($2, name),
			email = COALESCE($3, email),
			picture = COALESCE($4, picture),
			updated_at = GREATEST($5, updated_at + INTERVAL '1 microsecond')
		WHERE id = $1 AND ` + liveUserPredicate + `
		RETURNING ` + userColumns

	softDeleteLiveUserQuery = `
		UPDATE users
		SET deleted_at = $2
		WHERE id = $1 AND ` + liveUserPredicate
)

// PostgresUserStore implements store.UserStore on PostgreSQL.
type PostgresUserStore struct {
	db      store.DBTX
	timeout time.Duration
	logger  *slog.Logger
}

// NewPostgresUserStore creates a user store over db, which may be a *sql.DB
// or a *sql.Tx. Each call runs under timeout; zero disables the deadline.
func NewPostgresUserStore(db store.DBTX, timeout time.Duration, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:      db,
		timeout: timeout,
		logger:  logger.With(slog.String("component", "user_store")),
	}
}

var _ store.UserStore = (*PostgresUserStore)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u         domain.User
		picture   sql.NullString
		deletedAt sql.NullTime
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &picture, &u.CreatedAt, &u.UpdatedAt, &deletedAt); err != nil {
		return nil, err
	}
	if picture.Valid {
		u.Picture = &picture.String
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		u.DeletedAt = &t
	}
	return &u, nil
}

// Create implements store.UserStore.Create.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	row := s.db.QueryRowContext(ctx, insertUserQuery,
		user.ID, user.Name, user.Email, user.Picture, user.CreatedAt, user.UpdatedAt)
	created, err := scanUser(row)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("email already in use", slog.String("user_id", user.ID.String()))
			return store.NewStoreError("user", "create", "email already in use", store.ErrEmailExists)
		}
		log.Error("failed to create user",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", user.ID.String()))
		return store.NewStoreError("user", "create", "failed to insert user", MapError(err))
	}

	*user = *created
	log.Info("Created new user", slog.String("user_id", user.ID.String()))
	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.getOne(ctx, "get_by_id", selectLiveUserByIDQuery, id, slog.String("user_id", id.String()))
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getOne(ctx, "get_by_email", selectLiveUserByEmailQuery, email, slog.String("lookup", "email"))
}

// GetByIDIncludingDeleted implements store.UserStore.GetByIDIncludingDeleted.
func (s *PostgresUserStore) GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.getOne(ctx, "get_by_id_including_deleted", selectAnyUserByIDQuery, id, slog.String("user_id", id.String()))
}

func (s *PostgresUserStore) getOne(ctx context.Context, op, query string, key any, keyAttr slog.Attr) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	user, err := scanUser(s.db.QueryRowContext(ctx, query, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", keyAttr)
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user", slog.String("operation", op), slog.String("error", redact.Error(err)), keyAttr)
		return nil, store.NewStoreError("user", op, "failed to query user", MapError(err))
	}
	return user, nil
}

// List implements store.UserStore.List.
func (s *PostgresUserStore) List(ctx context.Context) ([]*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, selectLiveUsersQuery)
	if err != nil {
		log.Error("failed to list users", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("user", "list", "failed to query users", MapError(err))
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	users := make([]*domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, store.NewStoreError("user", "list", "failed to scan user", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("user", "list", "failed to iterate users", MapError(err))
	}

	log.Debug("listed users", slog.Int("count", len(users)))
	return users, nil
}

// Update implements store.UserStore.Update. The whole patch is applied by a
// single UPDATE ... RETURNING; a missing live row yields no returned row,
// which is reported as store.ErrUserNotFound.
func (s *PostgresUserStore) Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	row := s.db.QueryRowContext(ctx, updateLiveUserQuery,
		id, patch.Name, patch.Email, patch.Picture, time.Now().UTC())
	updated, err := scanUser(row)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			log.Debug("no live user to update", slog.String("user_id", id.String()))
			return nil, store.ErrUserNotFound
		case IsUniqueViolation(err):
			log.Warn("email already in use", slog.String("user_id", id.String()))
			return nil, store.NewStoreError("user", "update", "email already in use", store.ErrEmailExists)
		default:
			log.Error("failed to update user",
				slog.String("error", redact.Error(err)),
				slog.String("user_id", id.String()))
			return nil, store.NewStoreError("user", "update", "failed to update user", MapError(err))
		}
	}

	log.Info("Updated user",
		slog.String("user_id", id.String()),
		slog.Bool("empty_patch", patch.IsEmpty()))
	return updated, nil
}

// Delete implements store.UserStore.Delete by setting deleted_at on a live row.
func (s *PostgresUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.db.ExecContext(ctx, softDeleteLiveUserQuery, id, time.Now().UTC())
	if err != nil {
		log.Error("failed to delete user",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", id.String()))
		return store.NewStoreError("user", "soft_delete", "failed to delete user", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("no live user to delete", slog.String("user_id", id.String()))
			return err
		}
		return store.NewStoreError("user", "soft_delete", "failed to read affected rows", err)
	}

	log.Info("Deleted user", slog.String("user_id", id.String()))
	return nil
}
