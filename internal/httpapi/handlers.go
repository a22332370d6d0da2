package httpapi

import (
	"net/http"
	"time"

	"github.com/evenup/evenup/internal/middleware"
	"github.com/evenup/evenup/internal/models"
)

type registerRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token       string `json:"token"`
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	session, err := s.auths.Register(r.Context(), req.Email, req.DisplayName, req.Password)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{
		Token:       session.Token,
		UserID:      session.User.ID,
		Email:       session.User.Email,
		DisplayName: session.User.DisplayName,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	session, err := s.auths.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		Token:       session.Token,
		UserID:      session.User.ID,
		Email:       session.User.Email,
		DisplayName: session.User.DisplayName,
	})
}

type groupRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

type groupResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Members   []string `json:"members"`
	CreatedAt int64    `json:"created_at"`
}

func toGroupResponse(g *models.Group) groupResponse {
	return groupResponse{ID: g.ID, Name: g.Name, Members: g.Members, CreatedAt: g.CreatedAt}
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	group, err := s.groups.CreateGroup(r.Context(), req.Name, req.Members, middleware.GetUserID(r.Context()))
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGroupResponse(group))
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.groups.ListGroups(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}
	out := make([]groupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, toGroupResponse(g))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := s.groups.GetGroup(r.Context(), r.PathValue("id"))
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupResponse(group))
}

func (s *Server) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := s.groups.DeleteGroup(r.Context(), r.PathValue("id")); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type membersRequest struct {
	Members []string `json:"members"`
}

func (s *Server) handleAddMembers(w http.ResponseWriter, r *http.Request) {
	var req membersRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	group, err := s.groups.AddMembers(r.Context(), r.PathValue("id"), req.Members)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupResponse(group))
}

type expenseRequest struct {
	Description  string             `json:"description"`
	Amount       float64            `json:"amount"`
	PaidBy       string             `json:"paid_by"`
	Split        string             `json:"split"`
	Participants []string           `json:"participants"`
	Shares       map[string]float64 `json:"shares,omitempty"`
}

type expenseResponse struct {
	ID           string             `json:"id"`
	GroupID      string             `json:"group_id"`
	Description  string             `json:"description"`
	Amount       float64            `json:"amount"`
	PaidBy       string             `json:"paid_by"`
	Split        string             `json:"split"`
	Participants []string           `json:"participants"`
	Shares       map[string]float64 `json:"shares,omitempty"`
	CreatedAt    int64              `json:"created_at"`
}

func toExpenseResponse(e *models.Expense) expenseResponse {
	return expenseResponse{
		ID:           e.ID,
		GroupID:      e.GroupID,
		Description:  e.Description,
		Amount:       e.Amount,
		PaidBy:       e.PaidBy,
		Split:        string(e.Split),
		Participants: e.Participants,
		Shares:       e.Shares,
		CreatedAt:    e.CreatedAt,
	}
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	expense := &models.Expense{
		GroupID:      r.PathValue("id"),
		Description:  req.Description,
		Amount:       req.Amount,
		PaidBy:       req.PaidBy,
		Split:        models.SplitMode(req.Split),
		Participants: req.Participants,
		Shares:       req.Shares,
		CreatedBy:    middleware.GetUserID(r.Context()),
	}
	expense, err := s.expenses.CreateExpense(r.Context(), expense)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseResponse(expense))
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.expenses.ListExpenses(r.Context(), r.PathValue("id"))
	if err != nil {
		serviceError(w, err)
		return
	}
	out := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseResponse(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.expenses.DeleteExpense(r.Context(), r.PathValue("id")); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type balanceEntry struct {
	Person string  `json:"person"`
	Paid   float64 `json:"paid"`
	Owed   float64 `json:"owed"`
	Net    float64 `json:"net"`
}

type transferEntry struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

type balancesResponse struct {
	GroupID   string          `json:"group_id"`
	Balances  []balanceEntry  `json:"balances"`
	Transfers []transferEntry `json:"transfers"`
}

func (s *Server) handleGroupBalances(w http.ResponseWriter, r *http.Request) {
	report, err := s.expenses.GroupBalances(r.Context(), r.PathValue("id"))
	if err != nil {
		serviceError(w, err)
		return
	}

	resp := balancesResponse{
		GroupID:   report.GroupID,
		Balances:  make([]balanceEntry, 0, len(report.Balances)),
		Transfers: make([]transferEntry, 0, len(report.Transfers)),
	}
	for _, bal := range report.Balances {
		resp.Balances = append(resp.Balances, balanceEntry{
			Person: bal.Person, Paid: bal.Paid, Owed: bal.Owed, Net: bal.Net,
		})
	}
	for _, tr := range report.Transfers {
		resp.Transfers = append(resp.Transfers, transferEntry{
			From: tr.From, To: tr.To, Amount: tr.Amount,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type settlementRequest struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
	Note   string  `json:"note,omitempty"`
}

type settlementResponse struct {
	ID        string  `json:"id"`
	GroupID   string  `json:"group_id"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Amount    float64 `json:"amount"`
	Note      string  `json:"note,omitempty"`
	CreatedAt int64   `json:"created_at"`
}

func toSettlementResponse(s *models.Settlement) settlementResponse {
	return settlementResponse{
		ID:        s.ID,
		GroupID:   s.GroupID,
		From:      s.From,
		To:        s.To,
		Amount:    s.Amount,
		Note:      s.Note,
		CreatedAt: s.CreatedAt,
	}
}

func (s *Server) handleRecordSettlement(w http.ResponseWriter, r *http.Request) {
	var req settlementRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	settlement := &models.Settlement{
		GroupID:   r.PathValue("id"),
		From:      req.From,
		To:        req.To,
		Amount:    req.Amount,
		Note:      req.Note,
		CreatedBy: middleware.GetUserID(r.Context()),
	}
	settlement, err := s.expenses.RecordSettlement(r.Context(), settlement)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSettlementResponse(settlement))
}

func (s *Server) handleListSettlements(w http.ResponseWriter, r *http.Request) {
	settlements, err := s.expenses.ListSettlements(r.Context(), r.PathValue("id"))
	if err != nil {
		serviceError(w, err)
		return
	}
	out := make([]settlementResponse, 0, len(settlements))
	for _, st := range settlements {
		out = append(out, toSettlementResponse(st))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteSettlement(w http.ResponseWriter, r *http.Request) {
	if err := s.expenses.DeleteSettlement(r.Context(), r.PathValue("id")); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
