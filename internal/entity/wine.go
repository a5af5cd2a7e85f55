package entity

import (
	"time"

	"github.com/google/uuid"
)

// WineRecord represents a wine in the owner's cellar for data transfer
// between layers. The matching pipeline only ever reads these.
type WineRecord struct {
	ID             uuid.UUID `json:"id"`
	OwnerID        uuid.UUID `json:"owner_id"`
	Name           string    `json:"name"`
	Producer       *string   `json:"producer,omitempty"`
	Vintage        *string   `json:"vintage,omitempty"`
	Type           string    `json:"type"`
	Region         *string   `json:"region,omitempty"`
	Country        *string   `json:"country,omitempty"`
	AlcoholContent *float64  `json:"alcohol_content,omitempty"`
	Grapes         []string  `json:"grapes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
