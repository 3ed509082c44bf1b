// Package auth signs a session in to the subtitle site. The session cookie
// is kept by the cookie jar of the client that performed the POST.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hyperifyio/opensubs/internal/fetch"
)

// ErrAuthentication is returned when the site refuses the credentials.
var ErrAuthentication = errors.New("authentication failed")

// Poster submits an urlencoded form.
type Poster interface {
	PostForm(ctx context.Context, target string, form url.Values) (*fetch.Page, error)
}

// LoginURL returns the address the login form is posted to.
func LoginURL(baseURL, locale string) string {
	return strings.TrimRight(baseURL, "/") + "/" + locale + "/login/redirect-%7C" + locale
}

// Form returns the login form fields.
func Form(locale, user, password string) url.Values {
	v := url.Values{}
	v.Set("a", "login")
	v.Set("redirect", "/"+locale)
	v.Set("user", user)
	v.Set("password", password)
	v.Set("remember", "on")
	return v
}

// Login posts the credentials with poster. log may be nil.
func Login(ctx context.Context, poster Poster, baseURL, locale, user, password string, log *zerolog.Logger) error {
	if log == nil {
		l := zerolog.Nop()
		log = &l
	}
	if strings.TrimSpace(user) == "" {
		return errors.New("login: user is empty")
	}
	if poster == nil {
		return errors.New("login: no client configured")
	}
	target := LoginURL(baseURL, locale)
	log.Debug().Str("url", target).Str("user", user).Msg("login")

	page, err := poster.PostForm(ctx, target, Form(locale, user, password))
	if err != nil {
		var se *fetch.StatusError
		if errors.As(err, &se) {
			log.Error().Int("status", se.StatusCode).Str("user", user).Msg("login rejected")
			return fmt.Errorf("%w: status %d", ErrAuthentication, se.StatusCode)
		}
		log.Error().Err(err).Msg("login request failed")
		return fmt.Errorf("login: %w", err)
	}
	if page.Status != http.StatusOK {
		log.Error().Int("status", page.Status).Str("user", user).Msg("login rejected")
		return fmt.Errorf("%w: status %d", ErrAuthentication, page.Status)
	}
	log.Info().Str("user", user).Msg("logged in")
	return nil
}
