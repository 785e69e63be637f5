package routes

import (
	"github.com/gorilla/mux"

	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/handlers"
	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/middleware"
	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/websocket"
)

// HTTP method constants for better maintainability
var (
	MethodsGetOnly  = []string{"GET", "OPTIONS"}
	MethodsPostOnly = []string{"POST", "OPTIONS"}
	MethodsPutOnly  = []string{"PUT", "OPTIONS"}
)

func RegisterRoutes(r *mux.Router, hub *websocket.Hub) {
	// ====================
	// HEALTH CHECK (Public)
	// ====================
	r.HandleFunc("/health", handlers.HealthCheck).Methods(MethodsGetOnly...)

	// ====================
	// AUTHENTICATION (Public)
	// ====================
	r.HandleFunc("/api/auth/login", handlers.Login).Methods(MethodsPostOnly...)

	// ====================
	// REALTIME (token handshake inside the hub)
	// ====================
	r.HandleFunc("/ws", hub.ServeWS)

	// ====================
	// PROTECTED API ROUTES
	// ====================
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.AuthMiddleware)

	// Users
	api.HandleFunc("/users", handlers.RegisterUser).Methods(MethodsPostOnly...)
	api.HandleFunc("/user/me", handlers.Me).Methods(MethodsGetOnly...)

	// Sites
	api.HandleFunc("/sites", handlers.ListSites).Methods(MethodsGetOnly...)
	api.HandleFunc("/sites", handlers.CreateSite).Methods(MethodsPostOnly...)
	api.HandleFunc("/sites/{id}", handlers.GetSite).Methods(MethodsGetOnly...)

	// Assets & stock ledger
	api.HandleFunc("/assets", handlers.ListAssets).Methods(MethodsGetOnly...)
	api.HandleFunc("/assets", handlers.AddAsset).Methods(MethodsPostOnly...)
	api.HandleFunc("/assets/import", handlers.BulkImportAssets).Methods(MethodsPostOnly...)
	api.HandleFunc("/assets/stock", handlers.AvailableStock).Methods(MethodsGetOnly...)
	api.HandleFunc("/assets/{id}", handlers.GetAsset).Methods(MethodsGetOnly...)
	api.HandleFunc("/assets/{id}/status", handlers.SetAssetStatus).Methods(MethodsPutOnly...)
	api.HandleFunc("/assets/{id}/history", handlers.AssetHistory).Methods(MethodsGetOnly...)

	// Tickets
	api.HandleFunc("/tickets", handlers.ListTickets).Methods(MethodsGetOnly...)
	api.HandleFunc("/tickets", handlers.CreateTicket).Methods(MethodsPostOnly...)
	api.HandleFunc("/tickets/{id}", handlers.GetTicket).Methods(MethodsGetOnly...)
	api.HandleFunc("/tickets/{id}/assign", handlers.AssignTicket).Methods(MethodsPutOnly...)
	api.HandleFunc("/tickets/{id}/status", handlers.TransitionTicket).Methods(MethodsPutOnly...)
	api.HandleFunc("/tickets/{id}/escalate", handlers.EscalateTicket).Methods(MethodsPostOnly...)
	api.HandleFunc("/tickets/{id}/severity", handlers.UpdateTicketSeverity).Methods(MethodsPutOnly...)
	api.HandleFunc("/tickets/{id}/rmas", handlers.ListTicketRMAs).Methods(MethodsGetOnly...)

	// RMAs
	api.HandleFunc("/rmas", handlers.CreateRMA).Methods(MethodsPostOnly...)
	api.HandleFunc("/rmas/{id}", handlers.GetRMA).Methods(MethodsGetOnly...)
	api.HandleFunc("/rmas/{id}/status", handlers.TransitionRMA).Methods(MethodsPutOnly...)
	api.HandleFunc("/rmas/{id}/install", handlers.InstallRMA).Methods(MethodsPostOnly...)

	// Requisitions
	api.HandleFunc("/requisitions", handlers.CreateRequisition).Methods(MethodsPostOnly...)
	api.HandleFunc("/requisitions/{id}", handlers.GetRequisition).Methods(MethodsGetOnly...)
	api.HandleFunc("/requisitions/{id}/approve", handlers.ApproveRequisition).Methods(MethodsPutOnly...)
	api.HandleFunc("/requisitions/{id}/reject", handlers.RejectRequisition).Methods(MethodsPutOnly...)
	api.HandleFunc("/requisitions/{id}/fulfill", handlers.FulfillRequisition).Methods(MethodsPostOnly...)

	// Stock transfers
	api.HandleFunc("/transfers", handlers.InitiateTransfer).Methods(MethodsPostOnly...)
	api.HandleFunc("/transfers/{id}", handlers.GetTransfer).Methods(MethodsGetOnly...)
	api.HandleFunc("/transfers/{id}/approve", handlers.ApproveTransfer).Methods(MethodsPutOnly...)
	api.HandleFunc("/transfers/{id}/cancel", handlers.CancelTransfer).Methods(MethodsPutOnly...)
	api.HandleFunc("/transfers/{id}/dispatch", handlers.DispatchTransfer).Methods(MethodsPostOnly...)
	api.HandleFunc("/transfers/{id}/receive", handlers.ReceiveTransfer).Methods(MethodsPostOnly...)

	// Direct stock replacement
	api.HandleFunc("/replacements", handlers.ReplaceStock).Methods(MethodsPostOnly...)
}
