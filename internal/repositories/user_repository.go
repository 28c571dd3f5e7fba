package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/dashboardhq/auth-service/internal/models"
	"github.com/dashboardhq/auth-service/internal/utils"
)

const uniqueViolationCode = "23505"

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error

	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// SetOTP overwrites any prior unconsumed code; only the latest
	// code is ever valid.
	SetOTP(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error

	// MarkEmailVerified sets email_verified=TRUE and clears the
	// pending code in one statement.
	MarkEmailVerified(ctx context.Context, id uuid.UUID) error

	Delete(ctx context.Context, id uuid.UUID) error

	// CleanupExpiredOTPs nulls out codes whose expiry has passed.
	CleanupExpiredOTPs(ctx context.Context) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type userRepo struct {
	db DB
}

func NewUserRepository(db DB) UserRepository {
	return &userRepo{db: db}
}

func baseSelectUser() string {
	return `
		SELECT id, name, email, email_verified, otp, otp_expiry, created_at, updated_at
		FROM users
	`
}

/* ---------- Create ---------- */

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (
			id, name, email, email_verified, otp, otp_expiry,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, FALSE, $4, $5,
			NOW(), NOW()
		)`,
		user.ID, user.Name, user.Email, user.OTP, user.OTPExpiry,
	)
	if err != nil {
		// The unique index on email is the last line of defense against
		// two concurrent signups for the same address.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return utils.ErrEmailExists
		}
		return err
	}
	return nil
}

/* ---------- Reads ---------- */

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRow(ctx, baseSelectUser()+" WHERE email=$1", email)
	return r.scanUser(row)
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	row := r.db.QueryRow(ctx, baseSelectUser()+" WHERE id=$1", id)
	user, err := r.scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		utils.Logger.WithError(err).Errorf("Unexpected error fetching user by ID %s", id)
		return nil, err
	}
	return user, nil
}

/* ---------- Mutations ---------- */

func (r *userRepo) SetOTP(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET otp = $2,
		    otp_expiry = $3,
		    updated_at = NOW()
		WHERE id = $1`,
		id, code, expiresAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepo) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET email_verified = TRUE,
		    otp = NULL,
		    otp_expiry = NULL,
		    updated_at = NOW()
		WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

func (r *userRepo) CleanupExpiredOTPs(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET otp = NULL,
		    otp_expiry = NULL,
		    updated_at = NOW()
		WHERE otp IS NOT NULL AND otp_expiry < NOW()`,
	)
	return err
}

/* ---------- scanning ---------- */

func (r *userRepo) scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.EmailVerified,
		&u.OTP,
		&u.OTPExpiry,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
