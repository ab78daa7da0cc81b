package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/expensetracker/expense-service/internal/core/ports"
)

// ExpenseHandler handles HTTP requests for expenses.
type ExpenseHandler struct {
	service ports.ExpenseService
}

func NewExpenseHandler(service ports.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

func (r expenseRequest) input() ports.ExpenseInput {
	return ports.ExpenseInput{
		Amount:    *r.Amount,
		UserID:    *r.UserID,
		Timestamp: r.Timestamp.Time,
	}
}

// Create handles POST /api/expenses.
//
// @Summary      Create an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      expenseRequest  true  "Amount, owner and timestamp"
// @Success      200   {object}  expenseResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/expenses [post]
func (h *ExpenseHandler) Create(c echo.Context) error {
	var req expenseRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	expense, err := h.service.Create(c.Request().Context(), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toExpenseResponse(expense))
}

// List handles GET /api/expenses.
//
// @Summary      List expenses
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        offset  query     int  false  "Rows to skip"           default(0)
// @Param        limit   query     int  false  "Maximum rows (0..100)"  default(100)
// @Success      200     {array}   expenseResponse
// @Failure      401     {object}  errorResponse
// @Failure      422     {object}  errorResponse
// @Router       /api/expenses [get]
func (h *ExpenseHandler) List(c echo.Context) error {
	page, err := pageQuery(c)
	if err != nil {
		return err
	}

	expenses, err := h.service.List(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toExpenseResponses(expenses))
}

// Get handles GET /api/expenses/:id.
//
// @Summary      Get an expense
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Expense ID"
// @Success      200  {object}  expenseResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/expenses/{id} [get]
func (h *ExpenseHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	expense, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toExpenseResponse(expense))
}

// Update handles PUT /api/expenses/:id.
//
// @Summary      Replace an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Expense ID"
// @Param        body  body      expenseRequest  true  "Amount, owner and timestamp"
// @Success      200   {object}  expenseResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/expenses/{id} [put]
func (h *ExpenseHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req expenseRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	expense, err := h.service.Update(c.Request().Context(), id, req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toExpenseResponse(expense))
}

// Delete handles DELETE /api/expenses/:id.
//
// @Summary      Delete an expense
// @Tags         expenses
// @Security     BearerAuth
// @Param        id   path  int  true  "Expense ID"
// @Success      200
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}
