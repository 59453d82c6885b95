package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pribylovaa/go-lawfirm-cms/internal/service"
	"github.com/stretchr/testify/require"
)

// fakeValidator принимает единственный токен "good" от администратора "admin-1".
type fakeValidator struct {
	got string
}

func (f *fakeValidator) ValidateToken(_ context.Context, token string) (string, error) {
	f.got = token
	switch token {
	case "":
		return "", fmt.Errorf("validate: %w", service.ErrUnauthenticated)
	case "good":
		return "admin-1", nil
	default:
		return "", fmt.Errorf("validate: %w", service.ErrInvalidToken)
	}
}

func protected(t *testing.T, v TokenValidator) (http.Handler, *string) {
	t.Helper()

	var seen string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := AdminID(r.Context())
		require.True(t, ok)
		seen = id
		w.WriteHeader(http.StatusNoContent)
	})

	return Chain(h, Auth(v, AuthOptions{})), &seen
}

func TestAuth_CookieAndBearer(t *testing.T) {
	v := &fakeValidator{}
	h, seen := protected(t, v)

	req := makeReq("/api")
	req.AddCookie(&http.Cookie{Name: "token", Value: "good"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNoContent, rr.Code)
	require.Equal(t, "admin-1", *seen)

	req = makeReq("/api")
	req.Header.Set("Authorization", "Bearer good")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNoContent, rr.Code)

	// Cookie имеет приоритет над заголовком.
	req = makeReq("/api")
	req.AddCookie(&http.Cookie{Name: "token", Value: "good"})
	req.Header.Set("Authorization", "Bearer bad")
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, "good", v.got)
}

func TestAuth_JSONFailures(t *testing.T) {
	h, _ := protected(t, &fakeValidator{})

	tcs := []struct {
		name       string
		setup      func(r *http.Request)
		wantStatus int
		wantMsg    string
	}{
		{"missing", func(r *http.Request) {}, http.StatusUnauthorized, "Acesso Bloqueado!"},
		{"basic_header", func(r *http.Request) { r.Header.Set("Authorization", "Basic abc") }, http.StatusUnauthorized, "Acesso Bloqueado!"},
		{"invalid_cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "token", Value: "bad"}) }, http.StatusBadRequest, "Token inválido"},
		{"json_preferred", func(r *http.Request) {
			r.Header.Set("Accept", "text/html;q=0.5, application/json")
		}, http.StatusUnauthorized, "Acesso Bloqueado!"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			req := makeReq("/artigos")
			tc.setup(req)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			require.Equal(t, tc.wantStatus, rr.Code)

			var body errBody
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			require.Equal(t, tc.wantMsg, body.Msg)
		})
	}
}

func TestAuth_HTMLRedirects(t *testing.T) {
	h := Chain(http.NotFoundHandler(), Auth(&fakeValidator{}, AuthOptions{LoginPath: "/entrar"}))

	for _, token := range []string{"", "bad"} {
		req := makeReq("/sistema/sistema.html")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		if token != "" {
			req.AddCookie(&http.Cookie{Name: "token", Value: token})
		}

		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		require.Equal(t, http.StatusSeeOther, rr.Code, token)
		require.Equal(t, "/entrar", rr.Header().Get("Location"))
	}
}

func TestWantsHTML(t *testing.T) {
	tcs := map[string]bool{
		"":                                  false,
		"*/*":                               false,
		"application/json":                  false,
		"text/html":                         true,
		"TEXT/HTML":                         true,
		"text/html, application/json":       true,
		"application/json, text/html;q=0.9": false,
		"text/html;q=0.9, application/json;q=0.1": true,
		"text/html;q=0": false,
	}

	for accept, want := range tcs {
		req := makeReq("/")
		req.Header.Set("Accept", accept)
		require.Equal(t, want, WantsHTML(req), accept)
	}
}

func TestAdminID_Empty(t *testing.T) {
	_, ok := AdminID(context.Background())
	require.False(t, ok)

	_, ok = AdminID(WithAdminID(context.Background(), ""))
	require.False(t, ok)
}
