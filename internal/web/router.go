package web

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Router wires all routes. Static assets are served from ./static like the
// rest of the site, below every named route.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestID)

	r.HandleFunc("/", h.Index).Methods("GET")
	r.HandleFunc("/category/{name}", h.Category).Methods("GET")
	r.HandleFunc("/search", h.Search).Methods("GET")
	r.HandleFunc("/topic/{id}", h.Topic).Methods("GET")

	r.HandleFunc("/register", h.RegisterForm).Methods("GET")
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.LoginForm).Methods("GET")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/logout", h.Logout).Methods("GET")

	r.HandleFunc("/forgot", h.ForgotForm).Methods("GET")
	r.HandleFunc("/forgot", h.Forgot).Methods("POST")
	r.HandleFunc("/reset/{token}", h.ResetForm).Methods("GET")
	r.HandleFunc("/reset/{token}", h.Reset).Methods("POST")

	r.HandleFunc("/otp/request", h.OTPRequestForm).Methods("GET")
	r.HandleFunc("/otp/request", h.OTPRequest).Methods("POST")
	r.HandleFunc("/otp/verify", h.OTPVerifyForm).Methods("GET")
	r.HandleFunc("/otp/verify", h.OTPVerify).Methods("POST")
	r.HandleFunc("/otp/reset", h.OTPResetForm).Methods("GET")
	r.HandleFunc("/otp/reset", h.OTPReset).Methods("POST")

	r.HandleFunc("/admin", h.AdminForm).Methods("GET")
	r.HandleFunc("/admin", h.Admin).Methods("POST")

	r.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir("./static"))))

	return r
}
