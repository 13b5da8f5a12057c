package handlers

import (
	"net/http"
	"testing"

	"github.com/dgrijalva/jwt-go"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bhojon-backend/models"
)

func newTestUserHandler() (*UserHandler, *fakeUsers) {
	store := newFakeUsers()
	h := NewUserHandler(store, []byte("test-secret"))
	h.Now = fixedClock
	return h, store
}

func TestRegister(t *testing.T) {
	h, store := newTestUserHandler()
	body := `{"name":" Asha ","email":"Asha@Example.com","password":"pw123","role":"admin"}`

	code, out := perform(t, http.MethodPost, "/api/register", h.Register, "/api/register", body)
	wantReply(t, code, out, http.StatusCreated, "User registered successfully")
	if out["userId"] == nil {
		t.Fatalf("userId missing: %v", out)
	}

	code, out = perform(t, http.MethodPost, "/api/register", h.Register, "/api/register", body)
	wantReply(t, code, out, http.StatusBadRequest, "User already exists")

	users := store.all()
	if len(users) != 1 {
		t.Fatalf("stored %d users, want 1", len(users))
	}
	u := users[0]
	if u.Email != "asha@example.com" || u.Name != "Asha" {
		t.Errorf("stored user = %+v", u)
	}
	if u.Role != models.RoleUser {
		t.Errorf("role = %q, want %q", u.Role, models.RoleUser)
	}
	if u.Password == "" || u.Password == "pw123" {
		t.Errorf("password not hashed: %q", u.Password)
	}
}

func TestRegisterValidation(t *testing.T) {
	h, _ := newTestUserHandler()
	tests := []struct {
		name string
		body string
	}{
		{"missing email", `{"name":"x"}`},
		{"blank email", `{"email":""}`},
		{"not json", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out := perform(t, http.MethodPost, "/api/register", h.Register, "/api/register", tt.body)
			wantReply(t, code, out, http.StatusBadRequest, "")
		})
	}
}

func TestRegisterAcceptsAnyEmailString(t *testing.T) {
	h, store := newTestUserHandler()
	code, out := perform(t, http.MethodPost, "/api/register", h.Register, "/api/register", `{"email":"table-7 walk-in"}`)
	wantReply(t, code, out, http.StatusCreated, "")
	if u := store.all(); len(u) != 1 || u[0].Email != "table-7 walk-in" {
		t.Errorf("stored users = %+v", u)
	}
}

func TestLogin(t *testing.T) {
	h, _ := newTestUserHandler()
	code, out := perform(t, http.MethodPost, "/api/register", h.Register, "/api/register",
		`{"email":"chef@bhojon.test","password":"secret"}`)
	wantReply(t, code, out, http.StatusCreated, "")

	code, out = perform(t, http.MethodPost, "/api/login", h.Login, "/api/login",
		`{"email":"CHEF@bhojon.test","password":"secret"}`)
	wantReply(t, code, out, http.StatusOK, "Login successful")

	raw, _ := out["token"].(string)
	claims := &JWTClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	// expiry validation depends on the wall clock; only the claims matter here
	if claims.Email != "chef@bhojon.test" || claims.Role != models.RoleUser {
		t.Errorf("claims = %+v (parse err %v)", claims, err)
	}
	if claims.ExpiresAt-claims.IssuedAt != int64(tokenTTL.Seconds()) {
		t.Errorf("token lifetime = %ds", claims.ExpiresAt-claims.IssuedAt)
	}

	for _, body := range []string{
		`{"email":"chef@bhojon.test","password":"wrong"}`,
		`{"email":"nobody@bhojon.test","password":"secret"}`,
	} {
		code, out = perform(t, http.MethodPost, "/api/login", h.Login, "/api/login", body)
		wantReply(t, code, out, http.StatusUnauthorized, "Invalid email or password")
	}
}

func TestGetByEmailMissingUser(t *testing.T) {
	h, _ := newTestUserHandler()
	code, out := perform(t, http.MethodGet, "/users/:email", h.GetByEmail, "/users/ghost@bhojon.test", "")
	wantReply(t, code, out, http.StatusOK, "")
	user, ok := out["user"].(map[string]interface{})
	if !ok || len(user) != 0 {
		t.Errorf("user = %v, want {}", out["user"])
	}
}

func TestUpdateProfile(t *testing.T) {
	h, store := newTestUserHandler()
	id := primitive.NewObjectID()
	store.put(id, models.User{ID: id, Name: "Old", Email: "a@b.test", Role: models.RoleUser})
	path := "/users/" + id.Hex()

	code, out := perform(t, http.MethodPut, "/users/:id", h.UpdateProfile, path, `{"name":"New"}`)
	wantReply(t, code, out, http.StatusOK, "")
	if out["modifiedCount"] != float64(1) {
		t.Errorf("modifiedCount = %v", out["modifiedCount"])
	}

	// same value again modifies nothing
	code, out = perform(t, http.MethodPut, "/users/:id", h.UpdateProfile, path, `{"name":"New"}`)
	wantReply(t, code, out, http.StatusNotFound, "No changes made or user not found")

	// role is ignored on the self-service route
	code, out = perform(t, http.MethodPut, "/users/:id", h.UpdateProfile, path, `{"role":"admin"}`)
	wantReply(t, code, out, http.StatusBadRequest, "No fields to update")

	code, out = perform(t, http.MethodPut, "/users/:id", h.AdminUpdate, path, `{"role":"admin"}`)
	wantReply(t, code, out, http.StatusOK, "")
	if u, _ := store.get(id); u.Role != models.RoleAdmin {
		t.Errorf("role = %q after admin update", u.Role)
	}

	code, out = perform(t, http.MethodPut, "/users/:id", h.UpdateProfile, "/users/xyz", `{"name":"x"}`)
	wantReply(t, code, out, http.StatusBadRequest, "Invalid ID")

	code, out = perform(t, http.MethodPut, "/users/:id", h.UpdateProfile, "/users/"+primitive.NewObjectID().Hex(), `{"name":"x"}`)
	wantReply(t, code, out, http.StatusNotFound, "No changes made or user not found")
}

func TestUpdateRole(t *testing.T) {
	h, store := newTestUserHandler()
	id := primitive.NewObjectID()
	store.put(id, models.User{ID: id, Email: "a@b.test", Role: models.RoleUser})
	path := "/api/admin/users/" + id.Hex() + "/role"

	code, out := perform(t, http.MethodPatch, "/api/admin/users/:id/role", h.UpdateRole, path, `{}`)
	wantReply(t, code, out, http.StatusBadRequest, "Role is required")

	code, out = perform(t, http.MethodPatch, "/api/admin/users/:id/role", h.UpdateRole, path, `{"role":"admin"}`)
	wantReply(t, code, out, http.StatusOK, "User updated successfully")
}

func TestDeleteUser(t *testing.T) {
	h, store := newTestUserHandler()
	id := primitive.NewObjectID()
	store.put(id, models.User{ID: id, Email: "a@b.test"})

	code, out := perform(t, http.MethodDelete, "/api/admin/users/:id", h.Delete, "/api/admin/users/"+primitive.NewObjectID().Hex(), "")
	wantReply(t, code, out, http.StatusNotFound, "User not found")

	code, out = perform(t, http.MethodDelete, "/api/admin/users/:id", h.Delete, "/api/admin/users/"+id.Hex(), "")
	wantReply(t, code, out, http.StatusOK, "")
	if store.len() != 0 {
		t.Errorf("user still stored")
	}

	store.err = errBoom
	code, out = perform(t, http.MethodDelete, "/api/admin/users/:id", h.Delete, "/api/admin/users/"+id.Hex(), "")
	wantReply(t, code, out, http.StatusInternalServerError, "Server Error")
}
