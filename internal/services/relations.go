package services

import (
	"errors"
	"fmt"

	"github.com/ladle-dev/ladle/internal/models"
	"gorm.io/gorm"
)

type RelationKind string

const (
	RelationFavorite RelationKind = "favorite"
	RelationCart     RelationKind = "shopping_cart"
	RelationFollow   RelationKind = "follow"
)

// RelationToggle manages an at-most-once (user, target) edge. The
// target is a recipe for favorite/cart and an author for follow. Each
// pair is either ABSENT or PRESENT; Add and Remove are the only
// transitions and both reject no-ops explicitly.
type RelationToggle struct {
	DB   *gorm.DB
	Kind RelationKind
}

func NewRelationToggle(db *gorm.DB, kind RelationKind) *RelationToggle {
	return &RelationToggle{DB: db, Kind: kind}
}

func (t *RelationToggle) Add(userID, targetID uint) error {
	if t.Kind == RelationFollow && userID == targetID {
		return ErrSelfRelationForbidden
	}

	return t.DB.Transaction(func(tx *gorm.DB) error {
		if err := t.resolveTarget(tx, targetID); err != nil {
			return err
		}

		exists, err := t.exists(tx, userID, targetID)

		if err != nil {
			return err
		}

		if exists {
			return ErrDuplicateRelation
		}

		err = tx.Create(t.edge(userID, targetID)).Error

		// The pair's unique index closes the race between the check
		// above and this insert.
		if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateRelation
		}

		return err
	})
}

func (t *RelationToggle) Remove(userID, targetID uint) error {
	return t.DB.Transaction(func(tx *gorm.DB) error {
		if err := t.resolveTarget(tx, targetID); err != nil {
			return err
		}

		result := tx.Where(t.pairCondition(), userID, targetID).Delete(t.edge(0, 0))

		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return ErrRelationNotFound
		}

		return nil
	})
}

func (t *RelationToggle) Exists(userID, targetID uint) (bool, error) {
	return t.exists(t.DB, userID, targetID)
}

func (t *RelationToggle) exists(tx *gorm.DB, userID, targetID uint) (bool, error) {
	var count int64

	err := tx.Model(t.edge(0, 0)).Where(t.pairCondition(), userID, targetID).Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (t *RelationToggle) edge(userID, targetID uint) interface{} {
	switch t.Kind {
	case RelationFavorite:
		return &models.Favorite{UserID: userID, RecipeID: targetID}
	case RelationCart:
		return &models.ShoppingCart{UserID: userID, RecipeID: targetID}
	case RelationFollow:
		return &models.Follow{UserID: userID, AuthorID: targetID}
	}
	panic(fmt.Sprintf("unknown relation kind %q", t.Kind))
}

func (t *RelationToggle) pairCondition() string {
	if t.Kind == RelationFollow {
		return "user_id = ? AND author_id = ?"
	}
	return "user_id = ? AND recipe_id = ?"
}

func (t *RelationToggle) resolveTarget(tx *gorm.DB, targetID uint) error {
	var err error

	if t.Kind == RelationFollow {
		err = tx.First(&models.User{}, targetID).Error
	} else {
		err = tx.First(&models.Recipe{}, targetID).Error
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	return err
}
