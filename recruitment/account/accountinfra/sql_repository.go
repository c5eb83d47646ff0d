package accountinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Abraxas-365/shiftboard/internal/database"
	"github.com/Abraxas-365/shiftboard/pkg/iam/auth"
	"github.com/Abraxas-365/shiftboard/pkg/kernel"
	"github.com/Abraxas-365/shiftboard/recruitment/account"
)

// SQLAccountRepository implements account.Repository on postgres, pgx or sqlite
type SQLAccountRepository struct {
	db *sqlx.DB
}

var _ account.Repository = (*SQLAccountRepository)(nil)

// NewSQLAccountRepository creates a new SQL account repository
func NewSQLAccountRepository(db *sqlx.DB) *SQLAccountRepository {
	return &SQLAccountRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type accountModel struct {
	ID           string    `db:"id"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	Email        string    `db:"email"`
	Phone        string    `db:"phone"`
	Location     string    `db:"location"`
	Bio          string    `db:"bio"`
	Skills       string    `db:"skills"` // JSON array
	ResumeURL    string    `db:"resume_url"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// toEntity converts database model to domain entity
func (m *accountModel) toEntity() (account.UserAccount, error) {
	var skills []string
	if m.Skills != "" {
		if err := json.Unmarshal([]byte(m.Skills), &skills); err != nil {
			return account.UserAccount{}, fmt.Errorf("failed to decode skills of %s: %w", m.ID, err)
		}
	}
	return account.UserAccount{
		ID:           kernel.UserID(m.ID),
		FirstName:    kernel.FirstName(m.FirstName),
		LastName:     kernel.LastName(m.LastName),
		Email:        kernel.Email(m.Email),
		Phone:        kernel.Phone(m.Phone),
		Location:     kernel.Location(m.Location),
		Bio:          m.Bio,
		Skills:       skills,
		ResumeURL:    m.ResumeURL,
		PasswordHash: m.PasswordHash,
		Role:         auth.Role(m.Role),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}

// fromEntity converts domain entity to database model
func fromEntity(u *account.UserAccount) (*accountModel, error) {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	encoded, err := json.Marshal(skills)
	if err != nil {
		return nil, fmt.Errorf("failed to encode skills: %w", err)
	}
	return &accountModel{
		ID:           u.ID.String(),
		FirstName:    string(u.FirstName),
		LastName:     string(u.LastName),
		Email:        string(u.Email.Normalize()),
		Phone:        string(u.Phone),
		Location:     string(u.Location),
		Bio:          u.Bio,
		Skills:       string(encoded),
		ResumeURL:    u.ResumeURL,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt.UTC(),
		UpdatedAt:    u.UpdatedAt.UTC(),
	}, nil
}

const accountColumns = `id, first_name, last_name, email, phone, location, bio,
	skills, resume_url, password_hash, role, created_at, updated_at`

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new account
func (r *SQLAccountRepository) Create(ctx context.Context, u *account.UserAccount) error {
	model, err := fromEntity(u)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO users (` + accountColumns + `) VALUES (
			:id, :first_name, :last_name, :email, :phone, :location, :bio,
			:skills, :resume_url, :password_hash, :role, :created_at, :updated_at
		)
	`
	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		if database.IsUniqueViolation(err) {
			return account.ErrEmailAlreadyExists().WithDetail("email", model.Email)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// Update updates an existing account
func (r *SQLAccountRepository) Update(ctx context.Context, id kernel.UserID, u *account.UserAccount) error {
	model, err := fromEntity(u)
	if err != nil {
		return err
	}
	model.ID = id.String()

	query := `
		UPDATE users SET
			first_name = :first_name, last_name = :last_name, email = :email,
			phone = :phone, location = :location, bio = :bio, skills = :skills,
			resume_url = :resume_url, password_hash = :password_hash, role = :role,
			updated_at = :updated_at
		WHERE id = :id
	`
	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return account.ErrEmailAlreadyExists().WithDetail("email", model.Email)
		}
		return fmt.Errorf("failed to update account: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return account.ErrAccountNotFound().WithDetail("user_id", id.String())
	}
	return nil
}

// GetByID retrieves an account by ID
func (r *SQLAccountRepository) GetByID(ctx context.Context, id kernel.UserID) (*account.UserAccount, error) {
	return r.getOne(ctx, "id", id.String())
}

// GetByEmail retrieves an account by email
func (r *SQLAccountRepository) GetByEmail(ctx context.Context, email kernel.Email) (*account.UserAccount, error) {
	return r.getOne(ctx, "email", string(email.Normalize()))
}

func (r *SQLAccountRepository) getOne(ctx context.Context, column, value string) (*account.UserAccount, error) {
	var model accountModel
	query := r.db.Rebind(`SELECT ` + accountColumns + ` FROM users WHERE ` + column + ` = ?`)
	if err := r.db.GetContext(ctx, &model, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, account.ErrAccountNotFound().WithDetail(column, value)
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	u, err := model.toEntity()
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns every account, oldest first
func (r *SQLAccountRepository) List(ctx context.Context) ([]account.UserAccount, error) {
	var models []accountModel
	query := `SELECT ` + accountColumns + ` FROM users ORDER BY created_at ASC, id ASC`
	if err := r.db.SelectContext(ctx, &models, query); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	accounts := make([]account.UserAccount, 0, len(models))
	for i := range models {
		u, err := models[i].toEntity()
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, u)
	}
	return accounts, nil
}
