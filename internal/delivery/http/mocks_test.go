package http

import (
	"context"

	"github.com/frontandrew/crosspass/internal/domain"
	"github.com/frontandrew/crosspass/internal/repository"
	"github.com/frontandrew/crosspass/internal/usecase/identity"
	"github.com/frontandrew/crosspass/internal/usecase/pass"
	"github.com/frontandrew/crosspass/internal/usecase/preset"
	"github.com/frontandrew/crosspass/internal/usecase/traveller"
	"github.com/frontandrew/crosspass/internal/usecase/vehicle"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockIdentityService - mock сервиса личностей
type MockIdentityService struct {
	mock.Mock
}

func (m *MockIdentityService) Register(ctx context.Context, req *identity.RegisterRequest) (*domain.Identity, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

func (m *MockIdentityService) Login(ctx context.Context, req *identity.LoginRequest) (*identity.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.LoginResponse), args.Error(1)
}

func (m *MockIdentityService) GetProfile(ctx context.Context, identityID uuid.UUID) (*domain.Identity, error) {
	args := m.Called(ctx, identityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

// MockVehicleService - mock сервиса реестра автомобилей
type MockVehicleService struct {
	mock.Mock
}

func (m *MockVehicleService) RegisterVehicle(ctx context.Context, req *vehicle.RegisterVehicleRequest) (*domain.VehicleRegistration, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehicleRegistration), args.Error(1)
}

func (m *MockVehicleService) ListVehiclesForUser(ctx context.Context, userID uuid.UUID) ([]*domain.VehicleRegistration, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.VehicleRegistration), args.Error(1)
}

// MockTravellerService - mock сервиса знакомых путешественников
type MockTravellerService struct {
	mock.Mock
}

func (m *MockTravellerService) AddKnownTraveller(ctx context.Context, req *traveller.AddTravellerRequest) (*domain.TravellerLink, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TravellerLink), args.Error(1)
}

func (m *MockTravellerService) ListKnownTravellers(ctx context.Context, creatorID uuid.UUID) ([]*domain.Identity, error) {
	args := m.Called(ctx, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Identity), args.Error(1)
}

// MockPresetService - mock сервиса пресетов
type MockPresetService struct {
	mock.Mock
}

func (m *MockPresetService) CreatePreset(ctx context.Context, req *preset.CreatePresetRequest) (*preset.CreatePresetResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*preset.CreatePresetResponse), args.Error(1)
}

func (m *MockPresetService) ListPresetsForUser(ctx context.Context, ownerID uuid.UUID) ([]*domain.Preset, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Preset), args.Error(1)
}

func (m *MockPresetService) ListPresetMembers(ctx context.Context, presetID uuid.UUID) ([]*domain.Identity, error) {
	args := m.Called(ctx, presetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Identity), args.Error(1)
}

// MockPassService - mock сервиса пропусков
type MockPassService struct {
	mock.Mock
}

func (m *MockPassService) CreatePass(ctx context.Context, req *pass.CreatePassRequest) (*domain.Pass, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pass), args.Error(1)
}

func (m *MockPassService) ListPasses(ctx context.Context, creatorID uuid.UUID, filter repository.PassFilter, limit, offset int) ([]*domain.Pass, error) {
	args := m.Called(ctx, creatorID, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Pass), args.Error(1)
}

func (m *MockPassService) GetPassByID(ctx context.Context, passID uuid.UUID) (*domain.Pass, error) {
	args := m.Called(ctx, passID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pass), args.Error(1)
}

func (m *MockPassService) MarkUtilized(ctx context.Context, passID uuid.UUID) error {
	args := m.Called(ctx, passID)
	return args.Error(0)
}

// MockCheckpointService - mock сервиса пункта пропуска
type MockCheckpointService struct {
	mock.Mock
}

func (m *MockCheckpointService) ScanImage(ctx context.Context, image []byte) (*domain.CheckpointDecision, error) {
	args := m.Called(ctx, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckpointDecision), args.Error(1)
}

func (m *MockCheckpointService) DecideByPlate(ctx context.Context, plate string) (*domain.CheckpointDecision, error) {
	args := m.Called(ctx, plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckpointDecision), args.Error(1)
}

func (m *MockCheckpointService) ListCrossings(ctx context.Context, limit, offset int) ([]*domain.CrossingLog, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CrossingLog), args.Error(1)
}
