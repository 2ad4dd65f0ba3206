package direction

import "time"

// Direction is a top-level organisational branch. Managers are attached to
// one or more directions and supervise every department inside them.
type Direction struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Direction) TableName() string {
	return "directions"
}

type ServiceAPI interface {
	ListDirections() ([]Direction, error)
	GetDirection(id int64) (*Direction, error)
}

type Repository interface {
	List() ([]Direction, error)
	GetByID(id int64) (*Direction, error)
}
