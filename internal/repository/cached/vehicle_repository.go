package cached

import (
	"context"
	"encoding/json"
	"time"

	"github.com/frontandrew/crosspass/internal/domain"
	"github.com/frontandrew/crosspass/internal/pkg/redis"
	"github.com/frontandrew/crosspass/internal/repository"
	"github.com/google/uuid"
	redisv9 "github.com/redis/go-redis/v9"
)

const (
	vehicleCachePrefix = "vehicle:number:"
	vehicleCacheTTL    = 1 * time.Hour
)

// VehicleRepository добавляет кэширование выборки по номеру к vehicle repository
// Выборка по номеру - горячий путь КПП: каждый скан начинается с нее
type VehicleRepository struct {
	repo  repository.VehicleRepository
	cache *redis.Client
}

// NewVehicleRepository создает новый кэшируемый vehicle repository
func NewVehicleRepository(repo repository.VehicleRepository, cache *redis.Client) *VehicleRepository {
	return &VehicleRepository{
		repo:  repo,
		cache: cache,
	}
}

// GetByNumber возвращает автомобиль по номеру (с кэшированием)
func (r *VehicleRepository) GetByNumber(ctx context.Context, vehicleNumber string) (*domain.Vehicle, error) {
	cacheKey := vehicleCachePrefix + domain.NormalizeVehicleNumber(vehicleNumber)

	// 1. Проверяем кэш
	cachedValue, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		vehicle := &domain.Vehicle{}
		if err := json.Unmarshal([]byte(cachedValue), vehicle); err == nil {
			return vehicle, nil
		}
		// Битое значение в кэше - идем в БД
	} else if err != redisv9.Nil {
		// Ошибка кэша не должна ронять проверку на КПП - продолжаем с БД
	}

	// 2. Cache miss - идем в БД
	vehicle, err := r.repo.GetByNumber(ctx, vehicleNumber)
	if err != nil {
		return nil, err
	}

	// 3. Сохраняем результат в кэш (ошибку записи игнорируем - не критично)
	if data, err := json.Marshal(vehicle); err == nil {
		_ = r.cache.Set(ctx, cacheKey, string(data), vehicleCacheTTL)
	}

	return vehicle, nil
}

// GetByID возвращает автомобиль по ID
func (r *VehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	return r.repo.GetByID(ctx, id)
}

// Register создает автомобиль и метку, инвалидируя кэш номера
func (r *VehicleRepository) Register(ctx context.Context, userID uuid.UUID, vehicleNumber, label string) (*domain.VehicleRegistration, error) {
	registration, err := r.repo.Register(ctx, userID, vehicleNumber, label)
	if err != nil {
		return nil, err
	}

	cacheKey := vehicleCachePrefix + domain.NormalizeVehicleNumber(vehicleNumber)
	_ = r.cache.Del(ctx, cacheKey)

	return registration, nil
}

// GetRegistrationsByUser возвращает автомобили пользователя
func (r *VehicleRepository) GetRegistrationsByUser(ctx context.Context, userID uuid.UUID) ([]*domain.VehicleRegistration, error) {
	// Списки не кэшируем - используются редко
	return r.repo.GetRegistrationsByUser(ctx, userID)
}

// GetRegisteredUserIDs возвращает пользователей автомобиля
func (r *VehicleRepository) GetRegisteredUserIDs(ctx context.Context, vehicleID uuid.UUID) ([]uuid.UUID, error) {
	return r.repo.GetRegisteredUserIDs(ctx, vehicleID)
}
