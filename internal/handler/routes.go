package handler

import (
	"net/http"

	"github.com/msomdec/connectrandom/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	auth *service.AuthService,
	signup *service.SignupService,
	messaging *service.MessagingService,
	directory *service.DirectoryService,
	cookieSecure bool,
) {
	authHandler := NewAuthHandler(auth, cookieSecure)
	signupHandler := NewSignupHandler(signup)
	messageHandler := NewMessageHandler(messaging)
	userHandler := NewUserHandler(directory)

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.HandleFunc("POST /api/signup", signupHandler.HandleBegin)
	mux.HandleFunc("POST /api/signup/verify", signupHandler.HandleVerify)

	mux.HandleFunc("POST /api/auth/login", authHandler.HandleLogin)
	mux.HandleFunc("POST /api/auth/logout", authHandler.HandleLogout)
	mux.Handle("GET /api/auth/me", RequireAuth(auth, http.HandlerFunc(authHandler.HandleMe)))

	mux.Handle("GET /api/users/nearby", RequireAuth(auth, http.HandlerFunc(userHandler.HandleNearby)))

	mux.Handle("POST /api/messages", RequireAuth(auth, http.HandlerFunc(messageHandler.HandleSend)))
	mux.Handle("GET /api/messages/{username}", RequireAuth(auth, http.HandlerFunc(messageHandler.HandleConversation)))
}
