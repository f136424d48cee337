package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/ivanmalyar/url-alias/internal/database"
	"github.com/ivanmalyar/url-alias/internal/models"
)

type UserServiceTestSuite struct {
	suite.Suite
	errUnknown error
	repoMock   *MockUserRepository
	svc        *UserService
}

func (suite *UserServiceTestSuite) SetupSuite() {
	suite.errUnknown = errors.New("unknown error")
}

func (suite *UserServiceTestSuite) SetupSubTest() {
	suite.repoMock = new(MockUserRepository)
	suite.svc = NewUserService(suite.repoMock)
	suite.svc.hashCost = bcrypt.MinCost
}

func (suite *UserServiceTestSuite) TearDownSubTest() {
	suite.repoMock.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegister() {
	suite.Run("username taken", func() {
		suite.repoMock.
			On("Create", context.Background(), "alice", mock.Anything).
			Once().
			Return(nil, database.ErrUserExists)

		user, err := suite.svc.Register(context.Background(), "alice", "qwerty123")

		suite.Error(err)
		suite.ErrorIs(err, database.ErrUserExists)
		suite.Nil(user)
	})

	suite.Run("unknown error", func() {
		suite.repoMock.
			On("Create", context.Background(), "alice", mock.Anything).
			Once().
			Return(nil, suite.errUnknown)

		user, err := suite.svc.Register(context.Background(), "alice", "qwerty123")

		suite.Error(err)
		suite.ErrorIs(err, suite.errUnknown)
		suite.Nil(user)
	})

	suite.Run("success", func() {
		var storedHash string
		suite.repoMock.
			On("Create", context.Background(), "alice", mock.Anything).
			Once().
			Run(func(args mock.Arguments) {
				storedHash = args.String(2)
			}).
			Return(&models.User{Username: "alice", IsActive: true}, nil)

		user, err := suite.svc.Register(context.Background(), "alice", "qwerty123")

		suite.NoError(err)
		suite.NotNil(user)
		suite.Equal("alice", user.Username)
		suite.NotEqual("qwerty123", storedHash)
		suite.NoError(bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("qwerty123")))
	})
}

func (suite *UserServiceTestSuite) TestAuthenticate() {
	hash, err := bcrypt.GenerateFromPassword([]byte("qwerty123"), bcrypt.MinCost)
	suite.Require().NoError(err)

	suite.Run("unknown username", func() {
		suite.repoMock.
			On("GetByUsername", context.Background(), "alice").
			Once().
			Return(nil, database.ErrUserNotFound)

		user, err := suite.svc.Authenticate(context.Background(), "alice", "qwerty123")

		suite.Error(err)
		suite.ErrorIs(err, ErrInvalidCredentials)
		suite.Nil(user)
	})

	suite.Run("unknown error", func() {
		suite.repoMock.
			On("GetByUsername", context.Background(), "alice").
			Once().
			Return(nil, suite.errUnknown)

		user, err := suite.svc.Authenticate(context.Background(), "alice", "qwerty123")

		suite.Error(err)
		suite.ErrorIs(err, suite.errUnknown)
		suite.NotErrorIs(err, ErrInvalidCredentials)
		suite.Nil(user)
	})

	suite.Run("wrong password", func() {
		suite.repoMock.
			On("GetByUsername", context.Background(), "alice").
			Once().
			Return(&models.User{Username: "alice", PasswordHash: string(hash), IsActive: true}, nil)

		user, err := suite.svc.Authenticate(context.Background(), "alice", "hunter2")

		suite.Error(err)
		suite.ErrorIs(err, ErrInvalidCredentials)
		suite.Nil(user)
	})

	suite.Run("inactive user", func() {
		suite.repoMock.
			On("GetByUsername", context.Background(), "alice").
			Once().
			Return(&models.User{Username: "alice", PasswordHash: string(hash), IsActive: false}, nil)

		user, err := suite.svc.Authenticate(context.Background(), "alice", "qwerty123")

		suite.Error(err)
		suite.ErrorIs(err, ErrInactiveUser)
		suite.Nil(user)
	})

	suite.Run("success", func() {
		suite.repoMock.
			On("GetByUsername", context.Background(), "alice").
			Once().
			Return(&models.User{Username: "alice", PasswordHash: string(hash), IsActive: true}, nil)

		user, err := suite.svc.Authenticate(context.Background(), "alice", "qwerty123")

		suite.NoError(err)
		suite.NotNil(user)
		suite.Equal("alice", user.Username)
	})
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
