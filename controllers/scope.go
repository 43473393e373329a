package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Oshondoi/wb-service-sub000/ledger"
	"github.com/Oshondoi/wb-service-sub000/models"
)

func currentAccountID(c *gin.Context) (uint, error) {
	v, ok := c.Get("account_id")
	if !ok {
		return 0, errors.New("account_id missing from context")
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		return 0, errors.New("account_id invalid")
	}
	return id, nil
}

// ensureBusinessOwned verifies the business scope belongs to the caller's
// account before the engine touches anything. nil means account-wide scope.
func ensureBusinessOwned(db *gorm.DB, accountID uint, businessID *uint) error {
	if businessID == nil || *businessID == 0 {
		return nil
	}
	var count int64
	err := db.Model(&models.Business{}).
		Where("id = ? AND account_id = ?", *businessID, accountID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return &ledger.AuthorizationError{Msg: "business does not belong to this account"}
	}
	return nil
}
