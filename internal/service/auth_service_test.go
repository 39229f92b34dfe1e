package service_test

import (
	"testing"
	"time"

	"driveschool_backend/internal/config"
	"driveschool_backend/internal/model"
	"driveschool_backend/internal/repository"
	"driveschool_backend/internal/service"
	"driveschool_backend/internal/testutil"
	"driveschool_backend/internal/util"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type AuthServiceSuite struct {
	suite.Suite
	db  *gorm.DB
	svc *service.AuthService
}

func (s *AuthServiceSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour

	s.svc = service.NewAuthService(repository.NewUserRepository(s.db), cfg)
}

func (s *AuthServiceSuite) register(email string) *model.User {
	user := &model.User{Name: "Sam", Email: email, Password: "password123"}
	s.Require().NoError(s.svc.Register(user))
	return user
}

func (s *AuthServiceSuite) TestRegisterHashesPasswordAndForcesStudentRole() {
	user := &model.User{Name: "Sam", Email: "sam@example.com", Password: "password123", Role: model.Admin}
	s.Require().NoError(s.svc.Register(user))

	s.Equal(model.Student, user.Role)
	s.NotEqual("password123", user.Password)
}

func (s *AuthServiceSuite) TestRegisterRejectsDuplicateEmail() {
	s.register("sam@example.com")

	err := s.svc.Register(&model.User{Name: "Other", Email: "sam@example.com", Password: "x"})
	s.ErrorIs(err, util.ErrEmailRegistered)
}

func (s *AuthServiceSuite) TestLogin() {
	user := s.register("sam@example.com")

	token, err := s.svc.Login("sam@example.com", "password123")
	s.Require().NoError(err)
	s.NotEmpty(token)

	claims, err := util.ParseJWT(token, "test-secret")
	s.Require().NoError(err)
	s.Equal(user.ID, claims.UserID)
	s.Equal(model.Student, claims.Role)
}

func (s *AuthServiceSuite) TestLoginWrongPassword() {
	s.register("sam@example.com")

	_, err := s.svc.Login("sam@example.com", "wrong")
	s.Error(err)
}

func (s *AuthServiceSuite) TestLoginUnknownEmail() {
	_, err := s.svc.Login("nobody@example.com", "password123")
	s.Error(err)
}

func (s *AuthServiceSuite) TestLoginDisabledAccount() {
	user := s.register("sam@example.com")
	s.Require().NoError(s.db.Model(&model.User{}).
		Where("id = ?", user.ID).
		Update("disabled", true).Error)

	_, err := s.svc.Login("sam@example.com", "password123")
	s.Error(err)
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}
