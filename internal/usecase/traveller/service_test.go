package traveller

import (
	"context"
	"testing"

	"github.com/frontandrew/crosspass/internal/domain"
	"github.com/frontandrew/crosspass/internal/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTravellerLinkRepository struct {
	mock.Mock
}

func (m *MockTravellerLinkRepository) Create(ctx context.Context, link *domain.TravellerLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockTravellerLinkRepository) GetTravellersByCreator(ctx context.Context, creatorID uuid.UUID) ([]*domain.Identity, error) {
	args := m.Called(ctx, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Identity), args.Error(1)
}

type MockIdentityRepository struct {
	mock.Mock
}

func (m *MockIdentityRepository) Create(ctx context.Context, identity *domain.Identity) error {
	args := m.Called(ctx, identity)
	return args.Error(0)
}

func (m *MockIdentityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Identity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

func (m *MockIdentityRepository) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

func (m *MockIdentityRepository) GetByPassportNumber(ctx context.Context, passportNumber string) (*domain.Identity, error) {
	args := m.Called(ctx, passportNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

func (m *MockIdentityRepository) Update(ctx context.Context, identity *domain.Identity) error {
	args := m.Called(ctx, identity)
	return args.Error(0)
}

func (m *MockIdentityRepository) List(ctx context.Context, limit, offset int) ([]*domain.Identity, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Identity), args.Error(1)
}

func TestService_AddKnownTraveller(t *testing.T) {
	creatorID := uuid.New()
	creator := &domain.Identity{ID: creatorID, FirstName: "Alice", LastName: "Wong"}
	bob := &domain.Identity{ID: uuid.New(), FirstName: "Bob", LastName: "Tan", PassportNumber: "C98765432"}

	t.Run("успешное добавление по паспорту", func(t *testing.T) {
		links := new(MockTravellerLinkRepository)
		identities := new(MockIdentityRepository)

		identities.On("GetByID", mock.Anything, creatorID).Return(creator, nil)
		identities.On("GetByPassportNumber", mock.Anything, "C98765432").Return(bob, nil)
		links.On("Create", mock.Anything, mock.MatchedBy(func(l *domain.TravellerLink) bool {
			return l.CreatorID == creatorID && l.TravellerID == bob.ID
		})).Return(nil)

		svc := NewService(links, identities, logger.NewNoop())

		link, err := svc.AddKnownTraveller(context.Background(), &AddTravellerRequest{
			CreatorID:      creatorID,
			PassportNumber: "C98765432",
		})
		require.NoError(t, err)
		assert.Equal(t, bob.ID, link.TravellerID)
		assert.Equal(t, "Bob", link.Traveller.FirstName)
	})

	t.Run("повторное добавление того же путешественника", func(t *testing.T) {
		links := new(MockTravellerLinkRepository)
		identities := new(MockIdentityRepository)

		identities.On("GetByID", mock.Anything, creatorID).Return(creator, nil)
		identities.On("GetByPassportNumber", mock.Anything, "C98765432").Return(bob, nil)
		links.On("Create", mock.Anything, mock.Anything).Return(domain.ErrTravellerLinkExists)

		svc := NewService(links, identities, logger.NewNoop())

		_, err := svc.AddKnownTraveller(context.Background(), &AddTravellerRequest{
			CreatorID:      creatorID,
			PassportNumber: "C98765432",
		})
		assert.ErrorIs(t, err, domain.ErrTravellerLinkExists)
	})

	t.Run("неизвестный паспорт", func(t *testing.T) {
		links := new(MockTravellerLinkRepository)
		identities := new(MockIdentityRepository)

		identities.On("GetByID", mock.Anything, creatorID).Return(creator, nil)
		identities.On("GetByPassportNumber", mock.Anything, "ZZZ000").Return(nil, domain.ErrIdentityNotFound)

		svc := NewService(links, identities, logger.NewNoop())

		_, err := svc.AddKnownTraveller(context.Background(), &AddTravellerRequest{
			CreatorID:      creatorID,
			PassportNumber: "ZZZ000",
		})
		assert.ErrorIs(t, err, domain.ErrTravellerNotFound)

		links.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestService_ListKnownTravellers(t *testing.T) {
	creatorID := uuid.New()
	creator := &domain.Identity{ID: creatorID, FirstName: "Alice", LastName: "Wong"}

	t.Run("список знакомых", func(t *testing.T) {
		known := []*domain.Identity{
			{ID: uuid.New(), FirstName: "Bob", LastName: "Tan"},
			{ID: uuid.New(), FirstName: "Charlie", LastName: "Lim"},
		}

		links := new(MockTravellerLinkRepository)
		identities := new(MockIdentityRepository)

		identities.On("GetByID", mock.Anything, creatorID).Return(creator, nil)
		links.On("GetTravellersByCreator", mock.Anything, creatorID).Return(known, nil)

		svc := NewService(links, identities, logger.NewNoop())

		result, err := svc.ListKnownTravellers(context.Background(), creatorID)
		require.NoError(t, err)
		assert.Len(t, result, 2)
	})
}
