package identity

import (
	"context"
	"time"

	auditapp "github.com/fleetcore/backend/internal/application/audit"
	"github.com/fleetcore/backend/internal/domain/audit"
	"github.com/fleetcore/backend/internal/domain/identity"
	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/fleetcore/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserService handles user management operations. Every mutation runs the
// global-admin guard hook inside its transaction and appends an audit entry
// afterwards.
type UserService struct {
	db           *persistence.Database
	userRepo     identity.UserRepository
	auditService *auditapp.AuditService
	logger       *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	db *persistence.Database,
	userRepo identity.UserRepository,
	auditService *auditapp.AuditService,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		db:           db,
		userRepo:     userRepo,
		auditService: auditService,
		logger:       logger,
	}
}

// CreateUserInput contains input for creating a user
type CreateUserInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	CompanyID *uuid.UUID
}

// UpdateUserInput contains input for updating a user
type UpdateUserInput struct {
	ID            uuid.UUID
	FirstName     *string
	LastName      *string
	Phone         *string
	IsGlobalAdmin *bool
	CompanyID     *uuid.UUID
}

// UserDTO represents user data returned to callers
type UserDTO struct {
	ID            uuid.UUID  `json:"id"`
	Email         string     `json:"email"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	IsGlobalAdmin bool       `json:"is_global_admin"`
	CompanyID     *uuid.UUID `json:"company_id,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func toUserDTO(u *identity.User) *UserDTO {
	return &UserDTO{
		ID:            u.ID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		IsGlobalAdmin: u.IsGlobalAdmin,
		CompanyID:     u.CompanyID,
		Phone:         u.Phone,
		LastLoginAt:   u.LastLoginAt,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

// Create creates a new user
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	s.logger.Info("Creating user", zap.String("email", input.Email))

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Error("Failed to check email existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check email availability")
	}
	if exists {
		return nil, shared.ErrAlreadyExists
	}

	user, err := identity.NewUser(input.Email, input.Password)
	if err != nil {
		return nil, err
	}
	if input.FirstName != "" || input.LastName != "" {
		if err := user.SetName(input.FirstName, input.LastName); err != nil {
			return nil, err
		}
	}
	if input.Phone != "" {
		if err := user.SetPhone(input.Phone); err != nil {
			return nil, err
		}
	}
	if input.CompanyID != nil {
		user.AssignCompany(*input.CompanyID)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user",
			zap.String("email", input.Email),
			zap.Error(err))
		return nil, err
	}

	s.auditService.RecordUserChange(ctx, audit.OperationInsert, nil, user)

	return toUserDTO(user), nil
}

// Update updates a user. Changing is_global_admin requires the platform
// admin actor; updated_at is refreshed on every update.
func (s *UserService) Update(ctx context.Context, input UpdateUserInput) (*UserDTO, error) {
	user, err := s.userRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	old := *user

	firstName := user.FirstName
	if input.FirstName != nil {
		firstName = *input.FirstName
	}
	lastName := user.LastName
	if input.LastName != nil {
		lastName = *input.LastName
	}
	if err := user.SetName(firstName, lastName); err != nil {
		return nil, err
	}
	if input.Phone != nil {
		if err := user.SetPhone(*input.Phone); err != nil {
			return nil, err
		}
	}
	if input.CompanyID != nil {
		user.AssignCompany(*input.CompanyID)
	}
	if input.IsGlobalAdmin != nil {
		user.IsGlobalAdmin = *input.IsGlobalAdmin
	}

	// updated_at is refreshed on every update path
	user.UpdatedAt = time.Now()
	user.IncrementVersion()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := UserGuardHook(ctx, tx, &old, user); err != nil {
			return err
		}

		userRepo := persistence.NewGormUserRepository(tx)
		return userRepo.Update(ctx, user)
	})
	if err != nil {
		if !shared.IsCode(err, "PERMISSION_DENIED") {
			s.logger.Error("Failed to update user",
				zap.String("user_id", input.ID.String()),
				zap.Error(err))
		}
		return nil, err
	}

	s.auditService.RecordUserChange(ctx, audit.OperationUpdate, &old, user)

	return toUserDTO(user), nil
}

// Delete deletes a user and records the prior state in the audit trail
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete user",
			zap.String("user_id", id.String()),
			zap.Error(err))
		return err
	}

	s.auditService.RecordUserChange(ctx, audit.OperationDelete, user, nil)

	return nil
}

// GetByID returns a user by ID
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserDTO(user), nil
}

// GetByEmail returns a user by email
func (s *UserService) GetByEmail(ctx context.Context, email string) (*UserDTO, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return toUserDTO(user), nil
}
