package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/seminar-portal/portal-service/internal/repositories"
)

// getDB prefers the caller's transaction when one is given
func getDB(db, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}

func handleDBError(err error, operation string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", operation, repositories.ErrNotFound)
	}
	return fmt.Errorf("%s failed: %w", operation, err)
}

// distinctNonEmpty keeps the first occurrence of each non-empty id
func distinctNonEmpty(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
