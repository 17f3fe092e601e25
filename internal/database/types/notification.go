package types

import (
	"errors"
	"time"

	"github.com/belgahub/hub/internal/database/types/enum"
	"github.com/google/uuid"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Notification is a feed entry delivered to a single user.
// Metadata carries type-specific context such as the software ID
// a vote or view refers to.
type Notification struct {
	ID        int64                 `bun:",pk,autoincrement"      json:"id"`
	UserID    uuid.UUID             `bun:",notnull"               json:"userId"`
	Type      enum.NotificationType `bun:",notnull"               json:"type"`
	Title     string                `bun:",notnull"               json:"title"`
	Message   string                `bun:",notnull"               json:"message"`
	Read      bool                  `bun:",notnull,default:false" json:"read"`
	Metadata  map[string]any        `bun:",type:jsonb"            json:"metadata"`
	CreatedAt time.Time             `bun:",notnull"               json:"createdAt"`
}
