package domain

import (
	"time"

	"github.com/google/uuid"
)

// Preset - именованная переиспользуемая группа путешественников
// Принадлежит одному пользователю; пустая группа допустима
type Preset struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`

	// Связанные данные (не хранятся в БД, заполняются при необходимости)
	Members     []*Identity `json:"members,omitempty"`
	MemberCount int         `json:"member_count"`
}

// Validate проверяет корректность данных группы
func (p *Preset) Validate() error {
	if p.OwnerID == uuid.Nil {
		return ErrInvalidIdentityData
	}
	if p.Name == "" {
		return ErrInvalidPresetName
	}
	return nil
}
