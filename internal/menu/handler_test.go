package menu

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/appetiteclub/apt"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/snacktrackhq/snacktrack/internal/auth"
)

func newMenuRouter(repo SnackRepo) chi.Router {
	h := NewHandler(repo, nil, apt.NewConfig(), nil)
	router := chi.NewRouter()
	h.RegisterRoutes(router)
	return router
}

func doAs(router chi.Router, role auth.Role, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
	identity := auth.Identity{ID: apt.GenerateNewID(), Email: "someone@stall.local", Role: role}
	req = req.WithContext(auth.WithIdentity(req.Context(), identity))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func seedSnack(t *testing.T, repo SnackRepo, name string, price int64, active bool) *Snack {
	t.Helper()

	s := NewSnack()
	s.Name = name
	s.Price = price
	s.Active = active
	s.BeforeCreate()

	if err := repo.Create(context.Background(), s); err != nil {
		t.Fatalf("cannot seed snack: %v", err)
	}
	return s
}

func TestHandlerListSnacks(t *testing.T) {
	repo := NewMockSnackRepo()
	seedSnack(t, repo, "Samosa", 15, true)
	seedSnack(t, repo, "Kachori", 20, true)
	router := newMenuRouter(repo)

	for _, role := range []auth.Role{auth.RoleOwner, auth.RoleStaff} {
		rec := doAs(router, role, http.MethodGet, "/menu/snacks", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("ListSnacks as %s status = %d, body %s", role, rec.Code, rec.Body.String())
		}

		var resp struct {
			Data []*Snack `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("cannot decode response: %v", err)
		}
		if len(resp.Data) != 2 {
			t.Errorf("ListSnacks returned %d snacks, want 2", len(resp.Data))
		}
	}
}

func TestHandlerCreateSnack(t *testing.T) {
	tests := []struct {
		name       string
		role       auth.Role
		body       string
		seed       bool
		wantStatus int
	}{
		{
			name:       "ownerCreatesSnack",
			role:       auth.RoleOwner,
			body:       `{"name":"Dhokla","price":35}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "staffForbidden",
			role:       auth.RoleStaff,
			body:       `{"name":"Dhokla","price":35}`,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "blankName",
			role:       auth.RoleOwner,
			body:       `{"name":"  ","price":35}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "negativePrice",
			role:       auth.RoleOwner,
			body:       `{"name":"Dhokla","price":-5}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "duplicateName",
			role:       auth.RoleOwner,
			body:       `{"name":"Dhokla","price":35}`,
			seed:       true,
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewMockSnackRepo()
			if tt.seed {
				seedSnack(t, repo, "Dhokla", 35, true)
			}
			router := newMenuRouter(repo)

			rec := doAs(router, tt.role, http.MethodPost, "/menu/snacks", tt.body)

			if rec.Code != tt.wantStatus {
				t.Errorf("CreateSnack status = %d, want %d, body %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestHandlerUpdateSnack(t *testing.T) {
	repo := NewMockSnackRepo()
	snack := seedSnack(t, repo, "Samosa", 15, true)
	router := newMenuRouter(repo)

	rec := doAs(router, auth.RoleOwner, http.MethodPut, "/menu/snacks/"+snack.ID.String(), `{"name":"Samosa","price":18,"active":false}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("UpdateSnack status = %d, body %s", rec.Code, rec.Body.String())
	}

	stored, err := repo.Get(context.Background(), snack.ID)
	if err != nil {
		t.Fatalf("cannot reload snack: %v", err)
	}
	if stored.Price != 18 {
		t.Errorf("price = %d, want 18", stored.Price)
	}
	if stored.Active {
		t.Error("snack should be inactive after update")
	}
}

func TestHandlerUpdateSnackNotFound(t *testing.T) {
	router := newMenuRouter(NewMockSnackRepo())

	rec := doAs(router, auth.RoleOwner, http.MethodPut, "/menu/snacks/"+uuid.NewString(), `{"name":"Samosa","price":18}`)

	if rec.Code != http.StatusNotFound {
		t.Errorf("UpdateSnack status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHandlerDeleteSnack(t *testing.T) {
	repo := NewMockSnackRepo()
	snack := seedSnack(t, repo, "Samosa", 15, true)
	router := newMenuRouter(repo)

	rec := doAs(router, auth.RoleOwner, http.MethodDelete, "/menu/snacks/"+snack.ID.String(), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("DeleteSnack status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp struct {
		Data DeleteConfirmation `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("cannot decode response: %v", err)
	}
	if resp.Data.Message == "" {
		t.Error("DeleteSnack should return a confirmation message")
	}

	rec = doAs(router, auth.RoleOwner, http.MethodDelete, "/menu/snacks/"+snack.ID.String(), "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("DeleteSnack on missing snack status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHandlerRequiresIdentity(t *testing.T) {
	router := newMenuRouter(NewMockSnackRepo())

	req := httptest.NewRequest(http.MethodGet, "/menu/snacks", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("ListSnacks without identity status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
