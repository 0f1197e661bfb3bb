package web

import (
	"errors"
	"net/http"

	"github.com/webchat-dev/webchat/internal/common"
)

type pageData struct {
	Flash    string
	Username string
}

func (s *Server) indexPage(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	s.render(w, "index.html", pageData{Username: sess.Username})
}

func (s *Server) loginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "login.html", pageData{Flash: popFlash(w, r)})
}

func (s *Server) loginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	form := credentialsForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	if err := s.validate.Struct(form); err != nil {
		setFlash(w, "Неверный логин или пароль")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	token, _, err := s.users.Login(r.Context(), form.Username, form.Password)
	if err != nil {
		if !errors.Is(err, common.ErrorUnauthorized) {
			s.logger.Error(r.Context(), "login failed", "error", err)
		}
		setFlash(w, "Неверный логин или пароль")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	s.sessions.SetCookie(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) registerPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "register.html", pageData{Flash: popFlash(w, r)})
}

func (s *Server) registerSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	form := credentialsForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	if err := s.validate.Struct(form); err != nil {
		setFlash(w, "Заполните все поля.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	_, err := s.users.Register(r.Context(), form.Username, form.Password)
	switch {
	case errors.Is(err, common.ErrorUsernameTaken):
		setFlash(w, "Такой логин уже занят.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	case errors.Is(err, common.ErrorValidation):
		setFlash(w, "Заполните все поля.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	case err != nil:
		s.logger.Error(r.Context(), "registration failed", "error", err)
		setFlash(w, "Ошибка регистрации. Попробуйте ещё раз.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	setFlash(w, "Регистрация успешна! Теперь войдите.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	s.sessions.ClearCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
