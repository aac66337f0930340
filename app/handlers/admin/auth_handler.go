package admin

import (
	"crypto/subtle"
	"net/http"

	"github.com/Rakhulsr/rainy-catalog/app/helpers"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type loginForm struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AdminHandler) checkCredentials(username, password string) bool {
	if h.credentials.PasswordHash == "" {
		h.logger.Warn("checkCredentials: ADMIN_PASSWORD_HASH not set, admin login disabled")
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(h.credentials.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(h.credentials.PasswordHash), []byte(password))
	return userOK && passErr == nil
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	p, err := readPayload(w, r)
	if err != nil {
		h.invalidInput(w, err)
		return
	}

	form := loginForm{
		Username: p.string("username", ""),
		Password: p.values["password"],
	}
	if fieldErrs := h.validate(form, p.typeErrors); len(fieldErrs) > 0 {
		h.validationFailed(w, fieldErrs)
		return
	}

	if !h.checkCredentials(form.Username, form.Password) {
		h.logger.Info("Login: invalid credentials", zap.String("username", form.Username), zap.String("remote", r.RemoteAddr))
		h.respondError(w, http.StatusUnauthorized, helpers.CodeInvalidCredentials, "Invalid username or password.", nil)
		return
	}

	if err := h.sessions.SetStaffUser(w, r, form.Username); err != nil {
		h.logger.Error("Login: failed to save session", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, helpers.CodeInternal, "Could not start session.", nil)
		return
	}

	h.logger.Info("Login: staff signed in", zap.String("username", form.Username))
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"username": form.Username})
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.ClearSession(w, r); err != nil {
		h.logger.Error("Logout: failed to clear session", zap.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}

// CSRFToken hands the token to API clients; send it back as X-CSRF-Token.
func (h *AdminHandler) CSRFToken(w http.ResponseWriter, r *http.Request) {
	token := csrf.Token(r)
	w.Header().Set("X-CSRF-Token", token)
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"csrf_token": token})
}
