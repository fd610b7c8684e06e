package service

import (
	"errors"

	"go-boutique-ws/internal/model"
	"go-boutique-ws/internal/repository"
	"go-boutique-ws/pkg/jwt"
	"go-boutique-ws/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrOwnRole            = errors.New("you cannot change your own role")
	ErrProfileNotFound    = errors.New("profile not found")
)

// Credentials is the sign-in/sign-up form. Email format and the 8-character
// password minimum are enforced here, before anything reaches the database.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type AuthResponse struct {
	Token   string         `json:"token"`
	UserID  uuid.UUID      `json:"user_id"`
	Email   string         `json:"email"`
	Profile *model.Profile `json:"profile"`
}

type AuthService interface {
	SignUp(creds *Credentials) (*AuthResponse, error)
	SignIn(creds *Credentials) (*AuthResponse, error)
	Profile(userID uuid.UUID) (*model.Profile, error)
	AllProfiles() ([]model.Profile, error)
	ToggleRole(actorID, targetID uuid.UUID) (*model.Profile, error)
}

type authService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
}

func NewAuthService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository) AuthService {
	return &authService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

// SignUp registers a new account with role=user. Admin promotion only happens
// through ToggleRole.
func (s *authService) SignUp(creds *Credentials) (*AuthResponse, error) {
	if err := validator.FirstError(validator.ValidateStruct(creds)); err != nil {
		return nil, err
	}

	if existing, _ := s.userRepo.FindByEmail(creds.Email); existing != nil {
		return nil, ErrEmailTaken
	}

	user := &model.User{Email: creds.Email}
	if err := user.SetPassword(creds.Password); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	profile, err := s.Profile(user.ID)
	if err != nil {
		return nil, err
	}

	return s.respond(user, profile)
}

func (s *authService) SignIn(creds *Credentials) (*AuthResponse, error) {
	if err := validator.FirstError(validator.ValidateStruct(creds)); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(creds.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.CheckPassword(creds.Password) {
		return nil, ErrInvalidCredentials
	}

	profile, err := s.Profile(user.ID)
	if err != nil {
		return nil, err
	}

	return s.respond(user, profile)
}

func (s *authService) respond(user *model.User, profile *model.Profile) (*AuthResponse, error) {
	token, err := jwt.GenerateToken(user.ID, user.Email, string(profile.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Token:   token,
		UserID:  user.ID,
		Email:   user.Email,
		Profile: profile,
	}, nil
}

// Profile looks up the role record for an auth identity, auto-creating it
// with role=user when missing. A missing profile is a normal first-access
// condition, not an error.
func (s *authService) Profile(userID uuid.UUID) (*model.Profile, error) {
	profile, err := s.profileRepo.FindByID(userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	profile = &model.Profile{ID: userID, Role: model.RoleUser}
	if err := s.profileRepo.Create(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *authService) AllProfiles() ([]model.Profile, error) {
	return s.profileRepo.FindAll()
}

// ToggleRole flips user<->admin. Changing your own role is rejected.
func (s *authService) ToggleRole(actorID, targetID uuid.UUID) (*model.Profile, error) {
	if actorID == targetID {
		return nil, ErrOwnRole
	}

	target, err := s.profileRepo.FindByID(targetID)
	if err != nil {
		return nil, ErrProfileNotFound
	}

	newRole := model.RoleAdmin
	if target.Role == model.RoleAdmin {
		newRole = model.RoleUser
	}
	if err := s.profileRepo.UpdateRole(targetID, newRole); err != nil {
		return nil, err
	}

	target.Role = newRole
	return target, nil
}
