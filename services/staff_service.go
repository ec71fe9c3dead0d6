package services

import (
	"context"
	"strings"

	"github.com/faressmahmoud/DeliciousBites-RMS/database"
	"github.com/faressmahmoud/DeliciousBites-RMS/models"
	"github.com/faressmahmoud/DeliciousBites-RMS/utils"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type StaffService struct {
	staff  *database.StaffStore
	tokens *utils.TokenManager
	cost   int
}

func NewStaffService(staff *database.StaffStore, tokens *utils.TokenManager) *StaffService {
	return &StaffService{staff: staff, tokens: tokens, cost: bcrypt.DefaultCost}
}

// WithHashCost lowers the bcrypt cost, for tests.
func (s *StaffService) WithHashCost(cost int) *StaffService {
	s.cost = cost
	return s
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

func (s *StaffService) Register(ctx context.Context, in RegisterInput) (*models.StaffUser, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" {
		return nil, utils.Validation("Name and email are required")
	}
	if len(in.Password) < minPasswordLength {
		return nil, utils.Validation("Password must be at least %d characters", minPasswordLength)
	}
	role := models.Role(strings.ToLower(strings.TrimSpace(in.Role)))
	if role == "" {
		role = models.RoleWaiter
	}
	if !role.Staff() {
		return nil, utils.Validation("Invalid role '%s'. Must be one of: kitchen, waiter, delivery, reception, manager", in.Role)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, utils.Internal(err)
	}

	user := &models.StaffUser{Name: name, Email: email, Password: string(hashed), Role: role}
	if err := s.staff.Create(ctx, user); err != nil {
		return nil, err
	}
	utils.InfoLogger.Infof("New staff registered: %s (role=%s)", user.Email, user.Role)
	return user, nil
}

// Login checks the password and issues a session token.
func (s *StaffService) Login(ctx context.Context, email, password string) (string, *models.StaffUser, error) {
	user, err := s.staff.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if utils.IsKind(err, utils.KindNotFound) {
			return "", nil, utils.Unauthorized("Invalid credentials")
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, utils.Unauthorized("Invalid credentials")
	}

	token, err := s.tokens.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return "", nil, utils.Internal(err)
	}
	utils.InfoLogger.Infof("Staff logged in: %s", user.Email)
	return token, user, nil
}

func (s *StaffService) Logout(token string) {
	s.tokens.Revoke(token)
}

func (s *StaffService) Profile(ctx context.Context, id uint) (*models.StaffUser, error) {
	return s.staff.Get(ctx, id)
}
