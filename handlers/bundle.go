// File: turfacademy/handlers/bundle.go
package handlers

import (
	"time"

	userRepoPkg "turfacademy/database/repository/user"
	"turfacademy/utils"
)

// HandlerBundle groups all endpoint handlers plus what the auth middleware needs.
type HandlerBundle struct {
	UserRepo  userRepoPkg.UserRepository
	AuthCache utils.AuthSessionCache
	TokenTTL  time.Duration

	Catalog      *CatalogHandler
	Reservations *ReservationHandler
	Sessions     *SessionHandler
	Auth         *AuthHandler
	Admin        *AdminHandler
}
