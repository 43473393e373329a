package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Oshondoi/wb-service-sub000/config"
	"github.com/Oshondoi/wb-service-sub000/ledger"
	"github.com/Oshondoi/wb-service-sub000/utils"
)

// ledgerError maps the engine's error taxonomy onto HTTP statuses.
func ledgerError(c *gin.Context, err error) {
	var (
		validation    *ledger.ValidationError
		authorization *ledger.AuthorizationError
		precondition  *ledger.PreconditionError
	)
	switch {
	case errors.As(err, &validation):
		utils.Error(c, http.StatusBadRequest, validation.Msg)
	case errors.As(err, &authorization):
		utils.Error(c, http.StatusForbidden, authorization.Msg)
	case errors.As(err, &precondition):
		utils.Error(c, http.StatusConflict, precondition.Msg)
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.Error(c, http.StatusNotFound, "entry not found")
	default:
		utils.Error(c, http.StatusInternalServerError, err.Error())
	}
}

// GET /api/debts?status=open|closed
func DebtList(c *gin.Context) {
	aid, err := currentAccountID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}

	entries, err := ledger.ListEntries(config.DB, aid, c.Query("status"))
	if err != nil {
		ledgerError(c, err)
		return
	}
	utils.Success(c, gin.H{"items": entries})
}

// GET /api/debts/summary
func DebtSummary(c *gin.Context) {
	aid, err := currentAccountID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}

	entries, err := ledger.ListEntries(config.DB, aid, "")
	if err != nil {
		ledgerError(c, err)
		return
	}
	summary := ledger.Summarize(entries)
	utils.Success(c, gin.H{"items": summary.Groups})
}

type debtCreateInput struct {
	DebtDate      *time.Time      `json:"debt_date"`
	DebtType      string          `json:"debt_type"`
	Amount        decimal.Decimal `json:"amount"`
	Counterparty  string          `json:"counterparty"`
	DueDate       *time.Time      `json:"due_date"`
	Note          string          `json:"note"`
	BusinessID    *uint           `json:"business_id"`
	OperationType string          `json:"operation_type"`
}

// POST /api/debts
func DebtCreate(c *gin.Context) {
	aid, err := currentAccountID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}

	var in debtCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := ensureBusinessOwned(config.DB, aid, in.BusinessID); err != nil {
		ledgerError(c, err)
		return
	}

	params := ledger.PostEntryParams{
		AccountID:     aid,
		BusinessID:    in.BusinessID,
		Counterparty:  in.Counterparty,
		DebtType:      in.DebtType,
		Amount:        in.Amount,
		OperationType: in.OperationType,
		DueDate:       in.DueDate,
		Note:          in.Note,
	}
	if in.DebtDate != nil {
		params.DebtDate = *in.DebtDate
	}

	res, err := ledger.PostEntry(config.DB, params)
	if err != nil {
		ledgerError(c, err)
		return
	}

	if res.Split {
		utils.Success(c, gin.H{"items": res.Entries, "split": true})
		return
	}
	utils.Success(c, gin.H{"item": res.Entries[0]})
}

type debtRecalculateInput struct {
	Counterparty string           `json:"counterparty"`
	BusinessID   *uint            `json:"business_id"`
	Amount       *decimal.Decimal `json:"amount"`
	DebtDate     *time.Time       `json:"debt_date"`
	Note         string           `json:"note"`
}

// POST /api/debts/recalculate
func DebtRecalculate(c *gin.Context) {
	aid, err := currentAccountID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}

	var in debtRecalculateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := ensureBusinessOwned(config.DB, aid, in.BusinessID); err != nil {
		ledgerError(c, err)
		return
	}

	res, err := ledger.Recalculate(config.DB, ledger.RecalculateParams{
		AccountID:    aid,
		BusinessID:   in.BusinessID,
		Counterparty: in.Counterparty,
		Amount:       in.Amount,
		DebtDate:     in.DebtDate,
		Note:         in.Note,
	})
	if err != nil {
		ledgerError(c, err)
		return
	}

	utils.Success(c, gin.H{
		"items":  []any{res.Receivable, res.Payable},
		"amount": res.Amount,
	})
}

type debtUpdateInput struct {
	DebtDate      *time.Time       `json:"debt_date"`
	DueDate       *time.Time       `json:"due_date"`
	Note          *string          `json:"note"`
	Amount        *decimal.Decimal `json:"amount"`
	OperationType *string          `json:"operation_type"`
	Counterparty  *string          `json:"counterparty"`
	DebtType      *string          `json:"debt_type"`
	BusinessID    *uint            `json:"business_id"`
}

// PUT /api/debts/:id
func DebtUpdate(c *gin.Context) {
	aid, err := currentAccountID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		utils.Error(c, http.StatusBadRequest, "invalid id")
		return
	}

	var in debtUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}
	if in.BusinessID != nil && *in.BusinessID != 0 {
		if err := ensureBusinessOwned(config.DB, aid, in.BusinessID); err != nil {
			ledgerError(c, err)
			return
		}
	}

	err = ledger.UpdateEntry(config.DB, aid, uint(id), ledger.UpdateEntryParams{
		DebtDate:      in.DebtDate,
		DueDate:       in.DueDate,
		Note:          in.Note,
		Amount:        in.Amount,
		OperationType: in.OperationType,
		Counterparty:  in.Counterparty,
		DebtType:      in.DebtType,
		BusinessID:    in.BusinessID,
	})
	if err != nil {
		ledgerError(c, err)
		return
	}
	utils.Success(c, gin.H{"success": true})
}

// DELETE /api/debts/:id
func DebtDelete(c *gin.Context) {
	aid, err := currentAccountID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		utils.Error(c, http.StatusBadRequest, "invalid id")
		return
	}

	if err := ledger.DeleteEntry(config.DB, aid, uint(id)); err != nil {
		ledgerError(c, err)
		return
	}
	utils.Success(c, gin.H{"success": true})
}

type debtBulkDeleteInput struct {
	IDs []uint `json:"ids"`
}

// DELETE /api/debts/bulk
func DebtBulkDelete(c *gin.Context) {
	aid, err := currentAccountID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}

	var in debtBulkDeleteInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}

	deleted, err := ledger.DeleteEntries(config.DB, aid, in.IDs)
	if err != nil {
		ledgerError(c, err)
		return
	}
	utils.Success(c, gin.H{"success": true, "deleted": deleted})
}
