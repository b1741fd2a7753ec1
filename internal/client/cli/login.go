package cli

import (
	"context"
	"errors"
	"log"

	"github.com/dkomarov/garagehub/internal/common"
)

// Login prompts for a bearer token (no echo), verifies it against the store
// by fetching the user's garage, and persists it on success.
func (a *App) Login(ctx context.Context) error {
	token, err := GetToken(a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if token == "" {
		log.Println("empty token")
		return common.ErrValidation
	}

	a.api.SetToken(token)

	if err := a.refresh(ctx); err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			log.Println("Login unsuccessful: token rejected by the store")
		} else {
			log.Printf("Login unsuccessful: %s", err.Error())
		}
		a.api.SetToken("")
		return err
	}

	if err := a.session.Set(sessionTokenKey, token); err != nil {
		log.Printf("warning: could not persist session: %v", err)
	}

	a.loggedIn = true
	log.Println("Login successful")
	return nil
}

// Logout drops the session token and the cached garage.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Delete(sessionTokenKey); err != nil && !errors.Is(err, common.ErrNotFound) {
		log.Printf("warning: %v", err)
	}
	a.api.SetToken("")
	a.cars = nil
	a.loggedIn = false
	log.Println("Logged out")
	return nil
}
