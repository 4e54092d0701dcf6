package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"time"
)

// Comment is one entry in an event's comment thread. Comments have no row
// of their own; the whole thread lives in a jsonb column and moderation
// removes entries by index.
type Comment struct {
	Username string    `json:"username"`
	Comment  string    `json:"comment"`
	Time     time.Time `json:"time"`
}

type CommentList []Comment

func (cl CommentList) Value() (driver.Value, error) {
	return json.Marshal(cl)
}

func (cl *CommentList) Scan(value interface{}) error {
	if value == nil {
		*cl = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("unexpected comment list column type %T", value)
	}
	return json.Unmarshal(bytes, cl)
}

type Event struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title       string          `gorm:"column:title" json:"title"`
	Description string          `gorm:"column:description" json:"description"`
	Date        string          `gorm:"column:date" json:"date"`
	Address     string          `gorm:"column:address" json:"address"`
	Coordinates pq.Float64Array `gorm:"column:coordinates;type:float8[]" json:"coordinates"` // lng/lat pair from the client geocoder

	Username  string         `gorm:"column:username" json:"username"`              // creator username at creation time
	UserID    uuid.UUID      `gorm:"column:user_id;type:uuid;index" json:"userId"` // creator account
	Attendees pq.StringArray `gorm:"column:attendees;type:text[]" json:"attendees"`
	Comments  CommentList    `gorm:"column:comments;type:jsonb" json:"comments"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
