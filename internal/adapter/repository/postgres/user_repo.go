package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/user-management-backend/internal/domain"
	"github.com/marcos-nsantos/user-management-backend/internal/domain/entity"
	"github.com/marcos-nsantos/user-management-backend/internal/infrastructure/auth"
)

const uniqueViolation = "23505"

const userColumns = "id, name, email, password, created_at, updated_at"

// Querier is the subset of pgxpool.Pool the repositories run queries through.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type UserRepo struct {
	db     Querier
	hasher *auth.PasswordHasher
	logger *zap.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewUserRepo(db Querier, hasher *auth.PasswordHasher, logger *zap.Logger) *UserRepo {
	return &UserRepo{
		db:     db,
		hasher: hasher,
		logger: logger.With(zap.String("repository", "user")),
	}
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, r.persistenceError("querying user by email", err)
	}
	return user, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, r.persistenceError("querying user by id", err)
	}
	return user, nil
}

// Create stores a new user with a hashed password. The email pre-check is an
// optimization; the users_email_key constraint decides concurrent registrations.
func (r *UserRepo) Create(ctx context.Context, name, email, password string) (*entity.User, error) {
	existing, err := r.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	if !auth.ValidateStrength(password) {
		return nil, domain.ErrWeakPassword
	}

	hash, err := r.hashPassword(password)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO users (name, email, password)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRow(ctx, query, name, email, hash))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, r.persistenceError("inserting user", err)
	}

	r.logger.Info("user created", zap.Int64("user_id", user.ID))
	return user, nil
}

func (r *UserRepo) ListAll(ctx context.Context) ([]entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, r.persistenceError("listing users", err)
	}
	defer rows.Close()

	users := make([]entity.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, r.persistenceError("scanning user", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, r.persistenceError("iterating users", err)
	}

	return users, nil
}

// Update writes only the supplied fields and re-reads the row. A row deleted
// between the write and the re-read is reported as absent.
func (r *UserRepo) Update(ctx context.Context, id int64, fields entity.UpdateFields) (*entity.User, error) {
	if fields.IsEmpty() {
		return nil, domain.ErrNoFieldsToUpdate
	}

	var (
		sets []string
		args []any
	)
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if fields.Name != nil {
		set("name", *fields.Name)
	}
	if fields.Email != nil {
		set("email", *fields.Email)
	}
	if fields.Password != nil {
		if !auth.ValidateStrength(*fields.Password) {
			return nil, domain.ErrWeakPassword
		}
		hash, err := r.hashPassword(*fields.Password)
		if err != nil {
			return nil, err
		}
		set("password", hash)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE users SET %s, updated_at = NOW() WHERE id = $%d",
		strings.Join(sets, ", "), len(args),
	)

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, r.persistenceError("updating user", err)
	}
	if result.RowsAffected() == 0 {
		return nil, nil
	}

	return r.FindByID(ctx, id)
}

func (r *UserRepo) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, r.persistenceError("deleting user", err)
	}
	return result.RowsAffected() > 0, nil
}

// Login returns the user whose stored hash matches password. Unknown emails and
// wrong passwords both yield (nil, nil), and both pay for one bcrypt comparison.
func (r *UserRepo) Login(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := r.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		r.hasher.Verify(password, r.dummyPasswordHash())
		return nil, nil
	}

	if !r.hasher.Verify(password, user.PasswordHash) {
		return nil, nil
	}

	return user, nil
}

func (r *UserRepo) hashPassword(password string) (string, error) {
	hash, err := r.hasher.Hash(password)
	if err != nil {
		r.logger.Warn("password hashing failed", zap.Error(err))
		return "", fmt.Errorf("hashing password: %w", domain.ErrInvalidInput)
	}
	return hash, nil
}

func (r *UserRepo) dummyPasswordHash() string {
	r.dummyOnce.Do(func() {
		hash, err := r.hasher.Hash("dummy-Passw0rd!")
		if err != nil {
			r.logger.Error("computing dummy password hash, unknown-email logins will answer faster", zap.Error(err))
			return
		}
		r.dummyHash = hash
	})
	return r.dummyHash
}

// persistenceError logs the storage error and hides it behind domain.ErrPersistence.
func (r *UserRepo) persistenceError(op string, err error) error {
	r.logger.Error("query failed", zap.String("operation", op), zap.Error(err))
	return fmt.Errorf("%s: %w", op, domain.ErrPersistence)
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
