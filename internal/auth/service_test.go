package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/pville/moodlog/internal/apperror"
)

// --- Mock Repository ---

// mockUserRepo implements UserRepository for testing.
type mockUserRepo struct {
	createFn          func(ctx context.Context, user *User) error
	findByIDFn        func(ctx context.Context, id string) (*User, error)
	findByEmailFn     func(ctx context.Context, email string) (*User, error)
	emailExistsFn     func(ctx context.Context, email string) (bool, error)
	updateLastLoginFn func(ctx context.Context, id string) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, apperror.NewNotFound("user not found")
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, apperror.NewNotFound("user not found")
}

func (m *mockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	if m.emailExistsFn != nil {
		return m.emailExistsFn(ctx, email)
	}
	return false, nil
}

func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, id string) error {
	if m.updateLastLoginFn != nil {
		return m.updateLastLoginFn(ctx, id)
	}
	return nil
}

// newTestService builds an AuthService over a miniredis instance.
func newTestService(t *testing.T, repo UserRepository) AuthService {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewAuthService(repo, rdb, time.Hour)
}

// assertAppError checks that err is an *apperror.AppError with the expected code.
func assertAppError(t *testing.T, err error, expectedCode int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %d, got nil", expectedCode)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != expectedCode {
		t.Errorf("expected status %d, got %d (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// --- Register Tests ---

func TestRegister_Success(t *testing.T) {
	var created *User
	repo := &mockUserRepo{
		createFn: func(ctx context.Context, user *User) error {
			created = user
			return nil
		},
	}
	svc := newTestService(t, repo)

	user, err := svc.Register(context.Background(), RegisterInput{
		Email:       "Alice@Example.com",
		DisplayName: "Alice",
		Password:    "correct horse battery",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("expected lowercased email, got %s", user.Email)
	}
	if user.ID == "" {
		t.Error("expected generated user ID")
	}
	if created == nil {
		t.Fatal("expected Create to be called")
	}
	if created.PasswordHash == "" || created.PasswordHash == "correct horse battery" {
		t.Error("expected password to be hashed")
	}
}

func TestRegister_InvalidEmail(t *testing.T) {
	svc := newTestService(t, &mockUserRepo{})

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:       "not-an-email",
		DisplayName: "Alice",
		Password:    "longenough",
	})
	assertAppError(t, err, 400)
}

func TestRegister_ShortDisplayName(t *testing.T) {
	svc := newTestService(t, &mockUserRepo{})

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:       "alice@example.com",
		DisplayName: "A",
		Password:    "longenough",
	})
	assertAppError(t, err, 400)
}

func TestRegister_ShortPassword(t *testing.T) {
	svc := newTestService(t, &mockUserRepo{})

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:       "alice@example.com",
		DisplayName: "Alice",
		Password:    "short",
	})
	assertAppError(t, err, 400)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepo{
		emailExistsFn: func(ctx context.Context, email string) (bool, error) {
			return true, nil
		},
	}
	svc := newTestService(t, repo)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:       "alice@example.com",
		DisplayName: "Alice",
		Password:    "longenough",
	})
	assertAppError(t, err, 409)
}

// --- Login Tests ---

// registeredUser returns a repo whose FindByEmail serves a user with the
// given password hashed for real.
func registeredUser(t *testing.T, email, password string) *mockUserRepo {
	t.Helper()
	hash, err := hashPassword(password)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	user := &User{
		ID:           "user-1",
		Email:        email,
		DisplayName:  "Alice",
		PasswordHash: hash,
	}
	return &mockUserRepo{
		findByEmailFn: func(ctx context.Context, e string) (*User, error) {
			if e == email {
				return user, nil
			}
			return nil, apperror.NewNotFound("user not found")
		},
	}
}

func TestLogin_Success(t *testing.T) {
	repo := registeredUser(t, "alice@example.com", "longenough")
	svc := newTestService(t, repo)

	token, user, err := svc.Login(context.Background(), LoginInput{
		Email:    "alice@example.com",
		Password: "longenough",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Error("expected session token")
	}
	if user.ID != "user-1" {
		t.Errorf("expected user-1, got %s", user.ID)
	}

	session, err := svc.ValidateSession(context.Background(), token)
	if err != nil {
		t.Fatalf("expected valid session: %v", err)
	}
	if session.UserID != "user-1" {
		t.Errorf("expected session for user-1, got %s", session.UserID)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := registeredUser(t, "alice@example.com", "longenough")
	svc := newTestService(t, repo)

	_, _, err := svc.Login(context.Background(), LoginInput{
		Email:    "alice@example.com",
		Password: "wrong password",
	})
	assertAppError(t, err, 401)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newTestService(t, &mockUserRepo{})

	_, _, err := svc.Login(context.Background(), LoginInput{
		Email:    "nobody@example.com",
		Password: "longenough",
	})
	// Same 401 as a wrong password so the response doesn't leak which
	// emails are registered.
	assertAppError(t, err, 401)
}

// --- Session Tests ---

func TestValidateSession_UnknownToken(t *testing.T) {
	svc := newTestService(t, &mockUserRepo{})

	_, err := svc.ValidateSession(context.Background(), "deadbeef")
	assertAppError(t, err, 401)
}

func TestDestroySession(t *testing.T) {
	repo := registeredUser(t, "alice@example.com", "longenough")
	svc := newTestService(t, repo)

	token, _, err := svc.Login(context.Background(), LoginInput{
		Email:    "alice@example.com",
		Password: "longenough",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.DestroySession(context.Background(), token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.ValidateSession(context.Background(), token)
	assertAppError(t, err, 401)
}

// --- Password Hashing Tests ---

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := hashPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !verifyPassword("hunter2hunter2", hash) {
		t.Error("expected password to verify against its own hash")
	}
	if verifyPassword("different", hash) {
		t.Error("expected wrong password to fail verification")
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	h1, err := hashPassword("same password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h2, err := hashPassword("same password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h1 == h2 {
		t.Error("expected different salts to produce different hashes")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	if verifyPassword("anything", "not-a-phc-string") {
		t.Error("expected malformed hash to fail verification")
	}
}
