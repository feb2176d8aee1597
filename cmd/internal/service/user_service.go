package service

import (
	"slotswap/cmd/internal/domain/entity"
	"slotswap/cmd/internal/utils"
	"slotswap/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	FindByID(id int) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	ExistsByEmail(email string) (bool, error)
	Save(user *entity.User) error
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=80"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=64,nospaces"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResponse is returned by both signup and login: a signed token
// plus the public identity of its holder.
type AuthResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

type DefaultUserService struct {
	UserRepo  UserRepository
	Validate  *validator.Validate
	JWTSecret string
}

func NewUserService(userRepo UserRepository, validate *validator.Validate, jwtSecret string) *DefaultUserService {
	return &DefaultUserService{UserRepo: userRepo, Validate: validate, JWTSecret: jwtSecret}
}

func (u *DefaultUserService) Signup(req *SignupRequest) (*AuthResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := u.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	found, err := u.UserRepo.ExistsByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to check if user already exists: %v", err)
		return nil, apierror.InternalServerError
	}

	if found {
		return nil, apierror.EmailInUseError
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Errorf("failed to hash password: %v", err)
		return nil, apierror.InternalServerError
	}

	now := utils.NowUTC()
	user := &entity.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = u.UserRepo.Save(user)
	if err != nil {
		log.Errorf("failed to create user: %v", err)
		return nil, apierror.InternalServerError
	}
	return u.authResponse(user)
}

func (u *DefaultUserService) Login(req *LoginRequest) (*AuthResponse, apierror.ErrorResponse) {
	if err := u.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	user, err := u.UserRepo.FindByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to fetch user from database: %v", err)
		return nil, apierror.InternalServerError
	}

	// Unknown email and wrong password are indistinguishable on purpose.
	if user == nil {
		return nil, apierror.InvalidCredentialsError
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password))
	if err != nil {
		return nil, apierror.InvalidCredentialsError
	}
	return u.authResponse(user)
}

func (u *DefaultUserService) authResponse(user *entity.User) (*AuthResponse, apierror.ErrorResponse) {
	token, err := utils.SignToken(u.JWTSecret, user.ID)
	if err != nil {
		log.Errorf("failed to sign token for user (%d): %v", user.ID, err)
		return nil, apierror.InternalServerError
	}
	return &AuthResponse{Token: token, User: toUserResponse(user)}, nil
}

func toUserResponse(user *entity.User) *UserResponse {
	return &UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}
