package accountsrv

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Abraxas-365/shiftboard/pkg/errx"
	"github.com/Abraxas-365/shiftboard/pkg/iam/auth"
	"github.com/Abraxas-365/shiftboard/pkg/kernel"
	"github.com/Abraxas-365/shiftboard/pkg/listx"
	"github.com/Abraxas-365/shiftboard/pkg/logx"
	"github.com/Abraxas-365/shiftboard/pkg/validatex"
	"github.com/Abraxas-365/shiftboard/recruitment/account"
)

// AccountService handles registration, login and profile management
type AccountService struct {
	accountRepo account.Repository
	tokens      auth.TokenService
	clock       func() time.Time
}

// NewAccountService creates a new instance of the account service
func NewAccountService(accountRepo account.Repository, tokens auth.TokenService) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		tokens:      tokens,
		clock:       time.Now,
	}
}

// Register creates a student account and signs it in
func (s *AccountService) Register(ctx context.Context, req account.RegisterRequest) (*account.AuthResponse, error) {
	req.Email = req.Email.Normalize()
	if err := validatex.Struct(req); err != nil {
		return nil, err
	}
	email := req.Email

	existing, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil && !errx.IsCode(err, account.CodeAccountNotFound) {
		return nil, errx.Wrap(err, "failed to check email", errx.TypeInternal)
	}
	if existing != nil {
		return nil, account.ErrEmailAlreadyExists().WithDetail("email", string(email))
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	newAccount := &account.UserAccount{
		ID:           kernel.NewUserID(uuid.NewString()),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		Phone:        req.Phone,
		Location:     req.Location,
		PasswordHash: hash,
		Role:         auth.RoleStudent,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.accountRepo.Create(ctx, newAccount); err != nil {
		if errx.IsCode(err, account.CodeEmailAlreadyExists) {
			return nil, err
		}
		return nil, errx.Wrap(err, "failed to create account", errx.TypeInternal)
	}

	logx.Info("account registered", "user_id", newAccount.ID, "role", newAccount.Role)
	return s.session(newAccount)
}

// Login verifies credentials and issues an access token. Unknown emails and
// wrong passwords fail the same way.
func (s *AccountService) Login(ctx context.Context, req account.LoginRequest) (*account.AuthResponse, error) {
	req.Email = req.Email.Normalize()
	if err := validatex.Struct(req); err != nil {
		return nil, err
	}

	acc, err := s.accountRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errx.IsCode(err, account.CodeAccountNotFound) {
			return nil, auth.ErrInvalidCredentials()
		}
		return nil, errx.Wrap(err, "failed to load account", errx.TypeInternal)
	}
	if err := auth.CheckPassword(acc.PasswordHash, req.Password); err != nil {
		return nil, err
	}
	return s.session(acc)
}

// Me returns the caller's own account
func (s *AccountService) Me(ctx context.Context, id kernel.UserID) (*account.UserResponse, error) {
	acc, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := acc.ToResponse()
	return &resp, nil
}

// UpdateProfile edits the caller's own profile
func (s *AccountService) UpdateProfile(ctx context.Context, id kernel.UserID, req account.UpdateProfileRequest) (*account.UserAccount, error) {
	if err := validatex.Struct(req); err != nil {
		return nil, err
	}

	acc, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if acc.UpdateProfile(req, s.clock()) {
		if err := validatex.Struct(acc); err != nil {
			return nil, err
		}
		if err := s.accountRepo.Update(ctx, id, acc); err != nil {
			return nil, errx.Wrap(err, "failed to update profile", errx.TypeInternal)
		}
	}
	return acc, nil
}

// ListUsers filters every account then slices the requested page
func (s *AccountService) ListUsers(ctx context.Context, req account.ListUsersRequest) (*account.PaginatedUsersResponse, error) {
	all, err := s.accountRepo.List(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list accounts", errx.TypeInternal)
	}

	filtered := listx.Filter(all, account.Schema, req.Filters)
	page := kernel.Paginate(filtered, req.Pagination.Normalize(kernel.DefaultPageSize))

	return &account.PaginatedUsersResponse{
		Paginated: kernel.MapPaginated(page, account.UserAccount.ToResponse),
		Filters:   req.Filters,
		Query:     listx.Encode(req.Filters),
	}, nil
}

// ChangeRole promotes or demotes another account
func (s *AccountService) ChangeRole(ctx context.Context, actor, id kernel.UserID, role auth.Role) (*account.UserAccount, error) {
	if !role.IsValid() {
		return nil, account.ErrInvalidRole().WithDetail("role", string(role))
	}
	if actor == id {
		return nil, account.ErrSelfRoleChange().WithDetail("user_id", id.String())
	}

	acc, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if acc.Role == role {
		return acc, nil
	}
	if err := acc.ChangeRole(role, s.clock()); err != nil {
		return nil, err
	}
	if err := s.accountRepo.Update(ctx, id, acc); err != nil {
		return nil, errx.Wrap(err, "failed to change role", errx.TypeInternal)
	}

	logx.Info("account role changed", "user_id", id, "role", role, "by", actor)
	return acc, nil
}

func (s *AccountService) session(acc *account.UserAccount) (*account.AuthResponse, error) {
	token, err := s.tokens.GenerateAccessToken(acc.ID, acc.Email, acc.Role)
	if err != nil {
		return nil, errx.Wrap(err, "failed to generate access token", errx.TypeInternal)
	}
	return &account.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		User:        acc.ToResponse(),
	}, nil
}
