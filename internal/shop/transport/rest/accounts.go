package rest

import (
	"net/http"

	"github.com/zhiidetopchubaeva/shop/internal/shop/service"
	"github.com/zhiidetopchubaeva/shop/pkg/web"
)

type registerResponse struct {
	Message  string `json:"message"`
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Register creates a new account.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var registerDto service.RegisterDto
	if !h.decodeValid(w, r, mLogger, &registerDto) {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to register account", "username", registerDto.Username)

	user, err := h.accounts.Register(r.Context(), registerDto)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "create account")
		return
	}
	mLogger.InfoContext(r.Context(), "Account created successfully", "ID", user.ID, "username", user.Username)
	web.RespondJSON(w, mLogger, http.StatusCreated, registerResponse{
		Message:  "Account created",
		ID:       user.ID.String(),
		Username: user.Username,
	})
}

// Login exchanges username and password for an access token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var loginDto service.LoginDto
	if !h.decodeValid(w, r, mLogger, &loginDto) {
		return
	}
	mLogger.DebugContext(r.Context(), "Received login request", "username", loginDto.Username)

	token, err := h.accounts.Login(r.Context(), loginDto)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "log in")
		return
	}
	mLogger.InfoContext(r.Context(), "Login succeeded", "username", loginDto.Username)
	web.RespondJSON(w, mLogger, http.StatusOK, token)
}
