package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestProtectedRoutesRequireLoginWhenPasswordConfigured(t *testing.T) {
	t.Parallel()
	env := newTestApp(t, testAppOptions{password: "hunter2!"})

	response := doJSON(t, env.app, http.MethodGet, "/api/dreams", nil)
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a session, got %d", response.StatusCode)
	}
	response.Body.Close()
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	t.Parallel()
	env := newTestApp(t, testAppOptions{password: "hunter2!"})

	response := doJSON(t, env.app, http.MethodPost, "/api/login", map[string]any{"password": "wrong"})
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", response.StatusCode)
	}
	response.Body.Close()
}

func TestLoginIssuesSessionCookieAcceptedByMiddleware(t *testing.T) {
	t.Parallel()
	env := newTestApp(t, testAppOptions{password: "hunter2!"})

	response := doJSON(t, env.app, http.MethodPost, "/api/login", map[string]any{"password": "hunter2!"})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}
	response.Body.Close()

	cookie := ""
	for _, header := range response.Header.Values("Set-Cookie") {
		if strings.HasPrefix(header, authCookieName+"=") {
			cookie = strings.SplitN(header, ";", 2)[0]
		}
	}
	if cookie == "" {
		t.Fatal("login did not set the session cookie")
	}

	request := httptest.NewRequest(http.MethodGet, "/api/dreams", nil)
	request.Header.Set("Cookie", cookie)
	authed, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("authenticated request failed: %v", err)
	}
	defer authed.Body.Close()
	if authed.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with session cookie, got %d", authed.StatusCode)
	}
}

func TestTamperedSessionCookieIsRejected(t *testing.T) {
	t.Parallel()
	env := newTestApp(t, testAppOptions{password: "hunter2!"})

	request := httptest.NewRequest(http.MethodGet, "/api/dreams", nil)
	request.Header.Set("Cookie", authCookieName+"=not-a-real-token")
	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for tampered token, got %d", response.StatusCode)
	}
}

func TestAPIIsOpenWithoutConfiguredPassword(t *testing.T) {
	t.Parallel()
	env := newTestApp(t, testAppOptions{})

	response := doJSON(t, env.app, http.MethodGet, "/api/dreams", nil)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected open access, got %d", response.StatusCode)
	}
	response.Body.Close()
}
