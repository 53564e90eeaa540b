package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/mmdatafocus/procurement_backend/auditor"
	"github.com/mmdatafocus/procurement_backend/config"
	"github.com/mmdatafocus/procurement_backend/middlewares"
	"github.com/mmdatafocus/procurement_backend/models"
	"github.com/mmdatafocus/procurement_backend/utils"
	"github.com/mmdatafocus/procurement_backend/workflow"
	"github.com/sirupsen/logrus"
)

type handler struct {
	store   *models.Store
	auditor *auditor.Auditor
	logger  *logrus.Logger
}

type inventoryView struct {
	models.InventoryItem
	LowStock bool `json:"low_stock"`
}

func newInventoryView(item models.InventoryItem) inventoryView {
	return inventoryView{InventoryItem: item, LowStock: item.IsLowStock()}
}

type orderDetail struct {
	models.Order
	Supplier     *models.Supplier       `json:"supplier,omitempty"`
	Stock        map[string]int         `json:"stock"`
	Journals     []*models.JournalEntry `json:"journals"`
	NextStatuses []models.OrderStatus   `json:"next_statuses"`
}

type queueView struct {
	models.RoleQueue
	Inventory []inventoryView `json:"inventory,omitempty"`
}

type roleRequest struct {
	Role models.Role `json:"role" binding:"required"`
}

type purchaseRequest struct {
	Lines []models.NewOrderLine `json:"lines"`
}

type receiveRequest struct {
	Lines []workflow.ReceivedLine `json:"lines"`
}

// respondError maps domain errors onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrors):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation failed",
			"fields": utils.ProcessValidationErrors(err),
		})
	case errors.Is(err, utils.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, utils.ErrorRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, utils.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *handler) getRole(c *gin.Context) {
	role := h.store.Role()
	c.JSON(http.StatusOK, gin.H{"role": role, "department": role.Department()})
}

func (h *handler) setRole(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	h.store.SetRole(req.Role)
	c.JSON(http.StatusOK, gin.H{"role": req.Role, "department": req.Role.Department()})
}

func (h *handler) dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Dashboard())
}

func (h *handler) inventoryViews() []inventoryView {
	items := h.store.Inventory()
	views := make([]inventoryView, 0, len(items))
	for _, item := range items {
		views = append(views, newInventoryView(item))
	}
	return views
}

func (h *handler) inventory(c *gin.Context) {
	c.JSON(http.StatusOK, h.inventoryViews())
}

func (h *handler) listSuppliers(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Suppliers())
}

func (h *handler) addSupplier(c *gin.Context) {
	var input models.NewSupplier
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	supplier, err := h.store.AddSupplier(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, supplier)
}

func (h *handler) listOrders(c *gin.Context) {
	var statuses []models.OrderStatus
	for _, s := range utils.SplitAndTrim(c.Query("status")) {
		st, err := models.ParseOrderStatus(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error() + ": " + s})
			return
		}
		statuses = append(statuses, st)
	}
	c.JSON(http.StatusOK, h.store.Orders(utils.UniqueSlice(statuses)...))
}

func (h *handler) getOrder(c *gin.Context) {
	ctx := c.Request.Context()
	order, err := h.store.Order(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	detail := orderDetail{
		Order:        *order,
		Stock:        make(map[string]int, len(order.Items)),
		NextStatuses: models.NextStatuses(order.Status),
	}
	if order.SupplierId != "" {
		supplier, err := middlewares.GetSupplier(ctx, order.SupplierId)
		if err != nil && !errors.Is(err, utils.ErrorRecordNotFound) {
			respondError(c, err)
			return
		}
		detail.Supplier = supplier
	}

	ids := make([]string, 0, len(order.Items))
	for _, it := range order.Items {
		ids = append(ids, it.ItemId)
	}
	items, errs := middlewares.GetInventoryItems(ctx, ids)
	for _, err := range errs {
		if err != nil && !errors.Is(err, utils.ErrorRecordNotFound) {
			respondError(c, err)
			return
		}
	}
	for _, item := range items {
		// items no longer stocked resolve to nil
		if item != nil {
			detail.Stock[item.ID] = item.Stock
		}
	}

	journals, err := middlewares.GetOrderJournals(ctx, order.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	detail.Journals = journals
	if detail.Journals == nil {
		detail.Journals = []*models.JournalEntry{}
	}
	c.JSON(http.StatusOK, detail)
}

func (h *handler) listJournals(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Journals())
}

func (h *handler) queue(c *gin.Context) {
	role, err := models.ParseRole(c.Param("role"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	view := queueView{RoleQueue: h.store.Queue(role)}
	if role == models.RoleProduction {
		view.Inventory = h.inventoryViews()
	}
	c.JSON(http.StatusOK, view)
}

func (h *handler) requestPurchase(c *gin.Context) {
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	order, err := h.store.RequestPurchase(c.Request.Context(), req.Lines)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *handler) createOrder(c *gin.Context) {
	var input models.NewOrder
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	order, err := h.store.CreateOrder(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// transition returns a handler applying one side-effect free status change.
func (h *handler) transition(status models.OrderStatus, note string) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := h.store.UpdateOrderStatus(c.Request.Context(), c.Param("id"), status, note)
		if err != nil {
			respondError(c, err)
			return
		}
		role, _ := utils.GetRoleFromContext(c.Request.Context())
		h.logger.WithFields(logrus.Fields{
			"order":  order.ID,
			"status": order.Status,
			"role":   role,
		}).Info(note)
		c.JSON(http.StatusOK, order)
	}
}

func (h *handler) receiveGoods(c *gin.Context) {
	var req receiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	order, err := workflow.ReceiveGoods(c.Request.Context(), h.store, h.logger, c.Param("id"), req.Lines)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *handler) payInvoice(c *gin.Context) {
	order, journal, err := workflow.PayInvoice(c.Request.Context(), h.store, h.logger, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order, "journal": journal})
}

func (h *handler) accountingReport(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.AccountingReport())
}

func (h *handler) audit(c *gin.Context) {
	if !config.AuditorEnabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "auditor is disabled"})
		return
	}
	snap := h.store.Snapshot()
	res := h.auditor.Audit(c.Request.Context(), snap.Orders, snap.Journals)
	c.JSON(http.StatusOK, res)
}

func (h *handler) reset(c *gin.Context) {
	h.store.Reset()
	h.logger.WithFields(logrus.Fields{"field": "reset"}).Info("system state reset")
	c.Status(http.StatusNoContent)
}
