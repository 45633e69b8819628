package permission

import (
	"context"
	"errors"
	"fmt"

	"store-ops/core/reconcile"

	"gorm.io/gorm"
)

const statusActive = 1

// Store answers permission and location-scope questions from the database.
type Store struct {
	db *gorm.DB
}

// NewStore creates a new permission store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ResolveScope returns the locations userID may act on in roleID. Active roles
// flagged AllLocations grant every location; otherwise the active user_locations
// rows decide, which may be none.
func (s *Store) ResolveScope(ctx context.Context, userID, roleID uint) (reconcile.Grant, error) {
	db := s.db.WithContext(ctx)

	if roleID != 0 {
		var role Role
		err := db.Where("id = ? AND status = ?", roleID, statusActive).First(&role).Error
		switch {
		case err == nil && role.AllLocations:
			return reconcile.Grant{All: true}, nil
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return reconcile.Grant{}, fmt.Errorf("load role %d: %w", roleID, err)
		}
	}

	q := db.Model(&UserLocation{}).Where("user_id = ? AND status = ?", userID, statusActive)
	if roleID != 0 {
		q = q.Where("role_id = ?", roleID)
	}

	var ids []uint
	if err := q.Distinct().Order("location_id").Pluck("location_id", &ids).Error; err != nil {
		return reconcile.Grant{}, fmt.Errorf("load user locations: %w", err)
	}
	return reconcile.Grant{Locations: ids}, nil
}

// CheckPermission reports whether userID may perform action on module.
// Grants without an access key apply to every key.
func (s *Store) CheckPermission(ctx context.Context, userID uint, module, action string, accessKeyID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&UserPermission{}).
		Where("user_id = ? AND module = ? AND action = ? AND status = ?", userID, module, action, statusActive).
		Where("access_key_id IS NULL OR access_key_id = ?", accessKeyID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check permission %s.%s: %w", module, action, err)
	}
	return count > 0, nil
}
