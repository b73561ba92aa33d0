package repository

import (
	"context"
	"time"

	"github.com/frontandrew/crosspass/internal/domain"
	"github.com/google/uuid"
)

// PassFilter - фильтр для выборки пропусков пользователя
type PassFilter string

const (
	PassFilterAll      PassFilter = "all"
	PassFilterUtilized PassFilter = "utilized"
)

// IdentityRepository определяет методы для работы с путешественниками
type IdentityRepository interface {
	// Create создает нового путешественника
	Create(ctx context.Context, identity *domain.Identity) error

	// GetByID возвращает путешественника по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Identity, error)

	// GetByEmail возвращает путешественника по email
	GetByEmail(ctx context.Context, email string) (*domain.Identity, error)

	// GetByPassportNumber возвращает путешественника по номеру паспорта
	// Номер паспорта уникален, выборка всегда однозначна
	GetByPassportNumber(ctx context.Context, passportNumber string) (*domain.Identity, error)

	// Update обновляет данные путешественника
	Update(ctx context.Context, identity *domain.Identity) error

	// List возвращает список путешественников с пагинацией
	List(ctx context.Context, limit, offset int) ([]*domain.Identity, error)
}

// VehicleRepository определяет методы для работы с автомобилями
type VehicleRepository interface {
	// GetByID возвращает автомобиль по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error)

	// GetByNumber возвращает автомобиль по нормализованному номеру
	GetByNumber(ctx context.Context, vehicleNumber string) (*domain.Vehicle, error)

	// Register атомарно создает автомобиль при первом упоминании номера
	// и создает либо обновляет метку (user, vehicle)
	Register(ctx context.Context, userID uuid.UUID, vehicleNumber, label string) (*domain.VehicleRegistration, error)

	// GetRegistrationsByUser возвращает все автомобили пользователя с метками
	GetRegistrationsByUser(ctx context.Context, userID uuid.UUID) ([]*domain.VehicleRegistration, error)

	// GetRegisteredUserIDs возвращает пользователей, зарегистрировавших автомобиль
	GetRegisteredUserIDs(ctx context.Context, vehicleID uuid.UUID) ([]uuid.UUID, error)
}

// TravellerLinkRepository определяет методы для работы со списком знакомых путешественников
type TravellerLinkRepository interface {
	// Create создает связь (creator, traveller)
	// Возвращает domain.ErrTravellerLinkExists при повторном добавлении
	Create(ctx context.Context, link *domain.TravellerLink) error

	// GetTravellersByCreator возвращает путешественников из списка пользователя
	GetTravellersByCreator(ctx context.Context, creatorID uuid.UUID) ([]*domain.Identity, error)
}

// PresetRepository определяет методы для работы с группами путешественников
type PresetRepository interface {
	// CreateWithMembers создает группу вместе со всеми участниками одной транзакцией
	// При любой ошибке не остается частично созданной группы
	CreateWithMembers(ctx context.Context, preset *domain.Preset, memberIDs []uuid.UUID) error

	// GetByID возвращает группу по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Preset, error)

	// GetByOwner возвращает группы пользователя с количеством участников
	GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Preset, error)

	// GetMembers возвращает участников группы
	GetMembers(ctx context.Context, presetID uuid.UUID) ([]*domain.Identity, error)
}

// PassRepository определяет методы для работы с пропусками
type PassRepository interface {
	// CreateWithTravellers создает пропуск вместе со всеми путешественниками
	// одной транзакцией; частично созданный пропуск невозможен
	CreateWithTravellers(ctx context.Context, pass *domain.Pass, travellerIDs []uuid.UUID) error

	// GetByID возвращает пропуск по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Pass, error)

	// GetByCreator возвращает пропуска, созданные пользователем
	GetByCreator(ctx context.Context, creatorID uuid.UUID, filter PassFilter, limit, offset int) ([]*domain.Pass, error)

	// GetTravellers возвращает путешественников пропуска
	GetTravellers(ctx context.Context, passID uuid.UUID) ([]*domain.Identity, error)

	// FindMatchable - КЛЮЧЕВОЙ МЕТОД для КПП
	// Возвращает непогашенные пропуска автомобиля, чье окно действия содержит now,
	// отсортированные по pass_date (первый запланированный - первый обслуженный)
	FindMatchable(ctx context.Context, vehicleID uuid.UUID, now time.Time) ([]*domain.Pass, error)

	// Consume атомарно переводит пропуск PENDING -> UTILIZED (compare-and-set)
	// Возвращает domain.ErrPassAlreadyUtilized, если пропуск уже погашен,
	// и domain.ErrPassNotFound, если пропуск не существует
	Consume(ctx context.Context, passID uuid.UUID) error
}

// CrossingLogRepository определяет методы для журнала пересечений
type CrossingLogRepository interface {
	// Create создает запись о попытке пересечения
	Create(ctx context.Context, log *domain.CrossingLog) error

	// List возвращает журнал с пагинацией
	List(ctx context.Context, limit, offset int) ([]*domain.CrossingLog, error)

	// GetByVehicleID возвращает историю пересечений автомобиля
	GetByVehicleID(ctx context.Context, vehicleID uuid.UUID, limit, offset int) ([]*domain.CrossingLog, error)
}
