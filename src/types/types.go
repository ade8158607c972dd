package types

import "time"

// SourceType is the origin of a LINE identity.
type SourceType string

const (
	SourceUser  SourceType = "user"
	SourceGroup SourceType = "group"
	SourceRoom  SourceType = "room"
)

// FollowState flag stored per subscriber row.
type FollowState int

const (
	Unfollowed FollowState = 0
	Following  FollowState = 1
)

// FAQKind selects the outbound message shape for an entry.
type FAQKind string

const (
	KindMessage FAQKind = "message"
	KindConfirm FAQKind = "confirm"
)

// Subscribers
type Subscriber struct {
	RowID       uint64      `gorm:"column:row_id;primaryKey;autoIncrement" json:"-"`
	SourceType  SourceType  `gorm:"size:16;not null" json:"sourceType"`
	UserID      string      `gorm:"size:64;uniqueIndex;not null" json:"userId"`
	FollowState FollowState `gorm:"not null;default:0" json:"followState"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func (Subscriber) TableName() string { return "subscribers" }

// Choice is one selectable follow-up of a confirm entry.
type Choice struct {
	ID   string `gorm:"column:id;size:64" json:"id"`
	Text string `gorm:"column:text;size:255" json:"text"`
}

// FAQ rows, kept in table order by RowID
type FAQEntry struct {
	RowID uint64  `gorm:"column:row_id;primaryKey;autoIncrement" json:"-"`
	ID    string  `gorm:"column:faq_id;size:64;index;not null" json:"id"`
	Kind  FAQKind `gorm:"size:16;not null" json:"kind"`
	Text  string  `gorm:"type:text" json:"text"`
	Yes   Choice  `gorm:"embedded;embeddedPrefix:yes_" json:"yes"`
	No    Choice  `gorm:"embedded;embeddedPrefix:no_" json:"no"`
}

func (FAQEntry) TableName() string { return "faq" }

// Runtime settings
type Setting struct {
	Name  string `gorm:"primaryKey;size:64"`
	Value string `gorm:"type:text"`
}

// SubscriberChange describes a follow-state transition handed to observers.
type SubscriberChange struct {
	Event      string      `json:"event"`
	UserID     string      `json:"userId"`
	SourceType SourceType  `json:"sourceType"`
	State      FollowState `json:"followState"`
	Created    bool        `json:"created"`
	At         time.Time   `json:"at"`
}
