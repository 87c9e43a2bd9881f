package models

import "time"

// PushEndpoint is the registered push target for this device. Like the
// profile it is a singleton row, replaced whenever the device re-registers.
type PushEndpoint struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	Platform    string    `gorm:"type:varchar(16)" json:"platform"` // "android" | "ios"
	TokenHash   string    `gorm:"type:varchar(64)" json:"-"`
	EndpointARN string    `json:"-"`
	UpdatedAt   time.Time `json:"updated_at"`
}
