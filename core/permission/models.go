package permission

import "time"

// Role is an access role. AllLocations roles act on every location.
type Role struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:100;uniqueIndex"`
	AllLocations bool   `gorm:"not null;default:false"`
	Status       int    `gorm:"not null;default:1"`
}

// UserLocation grants a user, acting in a role, access to one location.
type UserLocation struct {
	ID         uint `gorm:"primaryKey"`
	UserID     uint `gorm:"not null;index:idx_user_locations_user_role"`
	RoleID     uint `gorm:"not null;index:idx_user_locations_user_role"`
	LocationID uint `gorm:"not null"`
	Status     int  `gorm:"not null;default:1"`
	CreatedAt  time.Time
}

// UserPermission allows a user an action on a module, optionally bound to an access key.
type UserPermission struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"not null;index"`
	Module      string `gorm:"size:100;not null"`
	Action      string `gorm:"size:50;not null"`
	AccessKeyID *uint
	Status      int `gorm:"not null;default:1"`
}

// Models returns the tables owned by this package, for migrations.
func Models() []any {
	return []any{&Role{}, &UserLocation{}, &UserPermission{}}
}
