// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizForge Contributors

package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

// flashCookie carries a one-shot notification across a redirect.
const flashCookie = "quizforge_flash"

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// setFlash queues a flash message for the next request.
func setFlash(w http.ResponseWriter, category, message string) {
	payload, err := json.Marshal(Flash{Category: category, Message: message})
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash returns the pending flash message, if any, and clears it.
// Undecodable cookies are discarded.
func popFlash(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	payload, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var flash Flash
	if err := json.Unmarshal(payload, &flash); err != nil {
		return nil
	}
	return &flash
}
