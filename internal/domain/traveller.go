package domain

import (
	"time"

	"github.com/google/uuid"
)

// TravellerLink - запись о том, что пользователь добавил другого путешественника
// в свой список для быстрого переиспользования без повторного ввода паспортных данных
// Инвариант: не более одной связи на пару (creator, traveller)
type TravellerLink struct {
	ID          uuid.UUID `json:"id"`
	CreatorID   uuid.UUID `json:"creator_id"`
	TravellerID uuid.UUID `json:"traveller_id"`
	CreatedAt   time.Time `json:"created_at"`

	// Связанные данные (не хранятся в БД, заполняются при необходимости)
	Traveller *Identity `json:"traveller,omitempty"`
}
