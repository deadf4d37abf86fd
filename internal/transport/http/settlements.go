package http

import (
	"net/http"

	"github.com/jricardo27/trip-explorer2-sub002/internal/domain"
)

// Settler reduces balances to transfers.
type Settler func(balances []domain.MemberBalance) []domain.Transfer

// HandleSettle returns an HTTP handler for POST /settlements.
func HandleSettle(settle Settler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req settleRequest
		if !decodeBody(w, r, &req, false) {
			return
		}

		balances := make([]domain.MemberBalance, 0, len(req.Balances))
		for _, b := range req.Balances {
			balances = append(balances, domain.MemberBalance{MemberID: b.MemberID, Balance: b.Balance})
		}

		transfers := settle(balances)
		resp := settleResponse{Transfers: make([]transferDTO, 0, len(transfers))}
		for _, t := range transfers {
			resp.Transfers = append(resp.Transfers, transferDTO{From: t.From, To: t.To, Amount: t.Amount})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

type settleRequest struct {
	Balances []balanceDTO `json:"balances" validate:"required,dive"`
}

type balanceDTO struct {
	MemberID string  `json:"member_id" validate:"required"`
	Balance  float64 `json:"balance"`
}

type transferDTO struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

type settleResponse struct {
	Transfers []transferDTO `json:"transfers"`
}
