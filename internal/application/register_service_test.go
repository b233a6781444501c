package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bakemart/backend/internal/application"
	"github.com/bakemart/backend/internal/domain/entity"
)

func TestRegisterBuyerNormalizesEmailAndHashesPassword(t *testing.T) {
	var created *entity.Profile
	profiles := &stubProfiles{createFn: func(_ context.Context, p *entity.Profile) error {
		p.ID = "new-id"
		created = p
		return nil
	}}
	svc := application.NewRegisterService(profiles, &noteRecorder{}, testLogger())

	p, err := svc.RegisterBuyer(context.Background(), application.RegisterInput{
		Email:    "  Buyer@Example.COM ",
		Password: "secret123",
		FullName: "Demo Buyer",
	})
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", p.Email)
	assert.Equal(t, entity.RoleBuyer, p.Role)

	require.NotNil(t, created)
	assert.NotEqual(t, "secret123", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret123")))
}

func TestRegisterRejectsWeakInput(t *testing.T) {
	svc := application.NewRegisterService(&stubProfiles{}, &noteRecorder{}, testLogger())

	cases := []application.RegisterInput{
		{Email: "", Password: "secret123", FullName: "Demo"},
		{Email: "a@b.dev", Password: "short", FullName: "Demo"},
		{Email: "a@b.dev", Password: "secret123", FullName: "D"},
	}
	for _, in := range cases {
		_, err := svc.RegisterBuyer(context.Background(), in)
		assert.ErrorIs(t, err, application.ErrInvalidInput)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	profiles := &stubProfiles{getByEmailFn: func(_ context.Context, email string) (*entity.Profile, error) {
		return &entity.Profile{ID: "existing", Email: email}, nil
	}}
	svc := application.NewRegisterService(profiles, &noteRecorder{}, testLogger())

	_, err := svc.RegisterBuyer(context.Background(), application.RegisterInput{
		Email: "taken@x.dev", Password: "secret123", FullName: "Demo",
	})
	assert.ErrorIs(t, err, application.ErrEmailTaken)
}

func TestRegisterBakerPromotesAfterSignup(t *testing.T) {
	var promotedID, promotedPhone string
	var promotedRole entity.Role
	profiles := &stubProfiles{
		createFn: func(_ context.Context, p *entity.Profile) error {
			p.ID = "new-baker"
			return nil
		},
		setRoleFn: func(_ context.Context, id string, role entity.Role, phone string) error {
			promotedID, promotedRole, promotedPhone = id, role, phone
			return nil
		},
	}
	rec := &noteRecorder{}
	svc := application.NewRegisterService(profiles, rec, testLogger())

	p, err := svc.RegisterBaker(context.Background(), application.RegisterInput{
		Email: "baker@x.dev", Password: "secret123", FullName: "Demo Baker", Phone: "0812345678",
	})
	require.NoError(t, err)
	assert.Equal(t, "new-baker", promotedID)
	assert.Equal(t, entity.RoleBaker, promotedRole)
	assert.Equal(t, "0812345678", promotedPhone)
	assert.Equal(t, entity.RoleBaker, p.Role)

	n, ok := rec.last()
	require.True(t, ok)
	assert.Equal(t, "Registration successful!", n.Title)
}

func TestRegisterBakerRequiresPhone(t *testing.T) {
	svc := application.NewRegisterService(&stubProfiles{}, &noteRecorder{}, testLogger())

	_, err := svc.RegisterBaker(context.Background(), application.RegisterInput{
		Email: "baker@x.dev", Password: "secret123", FullName: "Demo Baker", Phone: "123",
	})
	assert.ErrorIs(t, err, application.ErrInvalidInput)
}
