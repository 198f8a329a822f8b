package handlers

import (
	"net/http"

	"github.com/fyb-funds/fund-service/middleware"
	"github.com/fyb-funds/fund-service/services"
	"github.com/fyb-funds/fund-service/utils"
)

// Services bundles everything the router needs.
type Services struct {
	Members      *services.MemberService
	Ledger       *services.LedgerService
	Transactions *services.TransactionService
	Catalog      *services.CatalogService
	Fund         *services.FundService
}

// NewRouter builds the API mux. Reads are open to any caller, mutations
// require the admin key, except the order surface which members may use.
func NewRouter(svc Services) *http.ServeMux {
	memberHandler := NewMemberHandler(svc.Members)
	auditHandler := NewAuditHandler(svc.Ledger)
	transactionHandler := NewTransactionHandler(svc.Transactions)
	itemHandler := NewItemHandler(svc.Catalog)
	orderHandler := NewOrderHandler(svc.Catalog)
	fundHandler := NewFundHandler(svc.Fund)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	member := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireRole(middleware.RoleMember, h)
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireRole(middleware.RoleAdmin, h)
	}

	mux.HandleFunc("GET /api/members", memberHandler.ListMembers)
	mux.Handle("POST /api/members", admin(memberHandler.CreateMember))
	mux.HandleFunc("GET /api/members/{id}", memberHandler.GetMember)
	mux.Handle("PUT /api/members/{id}", admin(memberHandler.UpdateMember))
	mux.Handle("DELETE /api/members/{id}", admin(memberHandler.DeleteMember))
	mux.Handle("POST /api/members/{id}/move", admin(memberHandler.MoveMember))

	mux.HandleFunc("GET /api/audit/weekly", auditHandler.GetWeeklyLedger)
	mux.Handle("POST /api/payments/mark", admin(auditHandler.MarkPayment))

	mux.HandleFunc("GET /api/transactions", transactionHandler.ListTransactions)
	mux.Handle("POST /api/transactions", admin(transactionHandler.CreateTransaction))
	mux.Handle("DELETE /api/transactions/{id}", admin(transactionHandler.DeleteTransaction))

	mux.HandleFunc("GET /api/items", itemHandler.ListItems)
	mux.Handle("POST /api/items", admin(itemHandler.CreateItem))
	mux.Handle("PUT /api/items/{id}", admin(itemHandler.UpdateItem))
	mux.Handle("DELETE /api/items/{id}", admin(itemHandler.DeleteItem))

	mux.Handle("GET /api/orders", member(orderHandler.ListOrders))
	mux.Handle("POST /api/orders", member(orderHandler.CreateOrder))
	mux.Handle("PUT /api/orders/{id}/status", admin(orderHandler.UpdateOrderStatus))

	mux.HandleFunc("GET /api/fund", fundHandler.GetFund)
	mux.Handle("PUT /api/fund", admin(fundHandler.UpdateFund))

	return mux
}
