package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, name, email, password, phone, role string) (User, error) {
	args := m.Called(ctx, name, email, password, phone, role)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id uint) (User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(User), args.Error(1)
}

func TestService_Register(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", ctx, "Ali", "ali@example.com", mock.AnythingOfType("string"), "", string(RoleCustomer)).
			Return(User{ID: 1, Name: "Ali", Email: "ali@example.com", Role: RoleCustomer}, nil)

		token, u, err := svc.Register(ctx, RegisterInput{
			Name:     "Ali",
			Email:    "ali@example.com",
			Password: "password123",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, uint(1), u.ID)
		repo.AssertExpectations(t)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(User{}, errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`))

		_, _, err := svc.Register(ctx, RegisterInput{
			Name:     "Ali",
			Email:    "ali@example.com",
			Password: "password123",
		})

		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	hash, err := HashPassword("password123")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByEmail", ctx, "ali@example.com").
			Return(User{ID: 1, Email: "ali@example.com", Password: hash, Role: RoleCustomer}, nil)

		token, u, err := svc.Login(ctx, "ali@example.com", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, uint(1), u.ID)
	})

	t.Run("Unknown email", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByEmail", ctx, "ghost@example.com").
			Return(User{}, ErrUserNotFound)

		_, _, err := svc.Login(ctx, "ghost@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Wrong password", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByEmail", ctx, "ali@example.com").
			Return(User{ID: 1, Email: "ali@example.com", Password: hash}, nil)

		_, _, err := svc.Login(ctx, "ali@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
