package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobboard/pkg/validation"
)

type memUserRepo struct {
	byEmail map[string]User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: map[string]User{}}
}

func (m *memUserRepo) Create(_ context.Context, u User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return ErrUserAlreadyExists
	}
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (User, error) {
	for _, u := range m.byEmail {
		if u.ID.String() == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

type staticTokens struct{}

func (staticTokens) Generate(_ context.Context, _ User) (string, error) { return "token-123", nil }

func validRegister() RegisterInput {
	return RegisterInput{
		Email:     "Jane.Doe@Example.com",
		Password:  "s3cret",
		FirstName: "Jane",
		LastName:  "Doe",
	}
}

func TestRegister(t *testing.T) {
	svc := NewAuthService(newMemUserRepo(), staticTokens{})

	res, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)
	assert.Equal(t, "jane.doe@example.com", res.User.Email)
	assert.Equal(t, "Jane Doe", res.User.FullName())
	assert.Equal(t, "token-123", res.Token)
	assert.NotEqual(t, "s3cret", res.User.PasswordHash)
}

func TestRegisterMissingFields(t *testing.T) {
	svc := NewAuthService(newMemUserRepo(), staticTokens{})

	_, err := svc.Register(context.Background(), RegisterInput{Email: "  ", Password: ""})
	var ve *validation.Error
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "email")
	assert.Contains(t, ve.Fields, "password")
	assert.Contains(t, ve.Fields, "first_name")
	assert.Contains(t, ve.Fields, "last_name")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newMemUserRepo(), staticTokens{})

	_, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), validRegister())
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestMe(t *testing.T) {
	svc := NewAuthService(newMemUserRepo(), staticTokens{})

	res, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	u, err := svc.Me(context.Background(), res.User.ID.String())
	require.NoError(t, err)
	assert.Equal(t, res.User.Email, u.Email)

	_, err = svc.Me(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLogin(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewAuthService(repo, staticTokens{})

	_, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	res, err := svc.Login(context.Background(), " jane.doe@example.com ", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "token-123", res.Token)

	_, err = svc.Login(context.Background(), "jane.doe@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
