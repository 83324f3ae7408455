package auth

import (
	"context"
	"testing"
	"time"

	"booko/internal/shared/config"
	"booko/internal/users"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	usersByID    map[string]*users.User
	usersByEmail map[string]*users.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		usersByID:    make(map[string]*users.User),
		usersByEmail: make(map[string]*users.User),
	}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *users.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.usersByID[user.ID.String()] = user
	f.usersByEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*users.User, error) {
	user, ok := f.usersByEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id string) (*users.User, error) {
	user, ok := f.usersByID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) UpdateUserPassword(ctx context.Context, userID, hashedPassword string) error {
	user, ok := f.usersByID[userID]
	if !ok {
		return ErrUserNotFound
	}
	user.Password = hashedPassword
	return nil
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := f.usersByEmail[email]
	return ok, nil
}

func newAuthTestService(t *testing.T) (Service, *fakeUserRepo) {
	t.Helper()

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			JWTExpiresIn:     15 * time.Minute,
			RefreshExpiresIn: 24 * time.Hour,
		},
	}
	repo := newFakeUserRepo()
	return NewService(repo, cfg), repo
}

func TestRegister_Success(t *testing.T) {
	service, repo := newAuthTestService(t)

	resp, err := service.Register(context.Background(), &RegisterRequest{
		Name:     "Alice Example",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.Equal(t, "USER", resp.User.Role)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	// Password must land hashed, never plaintext
	stored := repo.usersByEmail["alice@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "password123", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("password123")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	service, _ := newAuthTestService(t)
	ctx := context.Background()

	req := &RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "password123"}
	_, err := service.Register(ctx, req)
	require.NoError(t, err)

	_, err = service.Register(ctx, req)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegister_UnknownRoleFallsBackToUser(t *testing.T) {
	service, _ := newAuthTestService(t)

	resp, err := service.Register(context.Background(), &RegisterRequest{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "password123",
		Role:     "superuser",
	})
	require.NoError(t, err)
	assert.Equal(t, "USER", resp.User.Role)
}

func TestLogin(t *testing.T) {
	service, _ := newAuthTestService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, &RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid credentials", "alice@example.com", "password123", nil},
		{"wrong password", "alice@example.com", "letmein", ErrInvalidCredentials},
		{"unknown email", "nobody@example.com", "password123", ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := service.Login(ctx, &LoginRequest{Email: tt.email, Password: tt.password})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, resp.AccessToken)
		})
	}
}

func TestRefreshToken(t *testing.T) {
	service, _ := newAuthTestService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, &RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	pair, err := service.RefreshToken(ctx, registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestRefreshToken_RejectsAccessToken(t *testing.T) {
	service, _ := newAuthTestService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, &RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	// An access token is not a refresh token, even though it verifies
	_, err = service.RefreshToken(ctx, registered.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshToken_Garbage(t *testing.T) {
	service, _ := newAuthTestService(t)

	_, err := service.RefreshToken(context.Background(), "not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Claims(t *testing.T) {
	service, _ := newAuthTestService(t)

	registered, err := service.Register(context.Background(), &RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	claims, err := service.ValidateToken(registered.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "access", claims.Type)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, registered.User.ID, claims.UserID)
}

func TestChangePassword(t *testing.T) {
	service, _ := newAuthTestService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, &RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	userID := registered.User.ID

	err = service.ChangePassword(ctx, userID, &ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newpassword456",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = service.ChangePassword(ctx, userID, &ChangePasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     "newpassword456",
	})
	require.NoError(t, err)

	_, err = service.Login(ctx, &LoginRequest{Email: "alice@example.com", Password: "newpassword456"})
	assert.NoError(t, err)
}
