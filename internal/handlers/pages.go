package handlers

import (
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// PagesHandler renders the server-side auth screens. The pages submit to the
// JSON API, so no business logic lives here.
type PagesHandler struct {
	templatesDir string
}

// NewPagesHandler creates a new PagesHandler
func NewPagesHandler(templatesDir string) *PagesHandler {
	return &PagesHandler{templatesDir: templatesDir}
}

type pageViewModel struct {
	Title string
	Token string
}

// LoginPage renders the login screen
func (h *PagesHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "login.html", pageViewModel{Title: "Log in"})
}

// RegisterPage renders the account registration screen
func (h *PagesHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "register.html", pageViewModel{Title: "Create account"})
}

// ConfirmAccountPage renders the token entry screen shown after registration
func (h *PagesHandler) ConfirmAccountPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "confirm.html", pageViewModel{Title: "Confirm your account"})
}

// ForgotPasswordPage renders the reset request screen
func (h *PagesHandler) ForgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "forgot-password.html", pageViewModel{Title: "Forgot password"})
}

// ResetPasswordPage renders the new-password screen; the token arrives as a
// query parameter from the emailed link
func (h *PagesHandler) ResetPasswordPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "reset-password.html", pageViewModel{
		Title: "Reset password",
		Token: r.URL.Query().Get("token"),
	})
}

// RootPage redirects to the login screen
func (h *PagesHandler) RootPage(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (h *PagesHandler) render(w http.ResponseWriter, viewName string, data pageViewModel) {
	tmpl, err := template.ParseFiles(
		filepath.Join(h.templatesDir, "base.html"),
		filepath.Join(h.templatesDir, viewName),
	)
	if err != nil {
		logrus.WithError(err).WithField("view", viewName).Error("parse template")
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		logrus.WithError(err).WithField("view", viewName).Error("execute template")
	}
}
