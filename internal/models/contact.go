package models

import "time"

type ContactMessageStatus string

const (
	ContactStatusNew      ContactMessageStatus = "new"
	ContactStatusRead     ContactMessageStatus = "read"
	ContactStatusReplied  ContactMessageStatus = "replied"
	ContactStatusArchived ContactMessageStatus = "archived"
)

// ContactMessage is a contact form submission. It has no media slots and no order.
type ContactMessage struct {
	BaseModel
	Name      string               `gorm:"size:100;not null" json:"name"`
	Email     string               `gorm:"size:254;not null" json:"email"`
	Phone     string               `gorm:"size:20" json:"phone"`
	Subject   string               `gorm:"size:200;not null" json:"subject"`
	Message   string               `gorm:"type:text;not null" json:"message"`
	Status    ContactMessageStatus `gorm:"size:20;default:new;index" json:"status"`
	RepliedAt *time.Time           `json:"replied_at"`
}

// IsValid reports whether s is one of the known statuses
func (s ContactMessageStatus) IsValid() bool {
	switch s {
	case ContactStatusNew, ContactStatusRead, ContactStatusReplied, ContactStatusArchived:
		return true
	}
	return false
}
