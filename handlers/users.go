package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"bhojon-backend/models"
)

const tokenTTL = 24 * time.Hour

type JWTClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

type UserHandler struct {
	Store     UserStore
	JWTSecret []byte
	Now       func() time.Time
}

func NewUserHandler(store UserStore, secret []byte) *UserHandler {
	return &UserHandler{Store: store, JWTSecret: secret, Now: time.Now}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register inserts a user unless the email is already taken.
func (h *UserHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, bindMessage(err))
		return
	}
	ctx := c.Request.Context()
	email := normalizeEmail(req.Email)

	_, err := h.Store.FindByEmail(ctx, email)
	if err == nil {
		fail(c, http.StatusBadRequest, "User already exists")
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		serverError(c, err, "register: lookup failed")
		return
	}

	user := models.User{
		Name:      strings.TrimSpace(req.Name),
		Email:     email,
		Phone:     req.Phone,
		Address:   req.Address,
		PhotoURL:  req.PhotoURL,
		Role:      models.RoleUser,
		CreatedAt: h.Now(),
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			serverError(c, err, "register: hash password")
			return
		}
		user.Password = string(hashed)
	}

	id, err := h.Store.Insert(ctx, &user)
	if mongo.IsDuplicateKeyError(err) {
		fail(c, http.StatusBadRequest, "User already exists")
		return
	}
	if err != nil {
		serverError(c, err, "register: insert failed")
		return
	}
	reply(c, http.StatusCreated, "User registered successfully", gin.H{"userId": id})
}

// Login checks the password and hands back a signed token. Nothing in the
// API requires the token; it is for the client's own use.
func (h *UserHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, bindMessage(err))
		return
	}

	user, err := h.Store.FindByEmail(c.Request.Context(), normalizeEmail(req.Email))
	if errors.Is(err, mongo.ErrNoDocuments) {
		fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		serverError(c, err, "login: lookup failed")
		return
	}
	if user.Password == "" || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	now := h.Now()
	claims := JWTClaims{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		Role:   user.Role,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(tokenTTL).Unix(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.JWTSecret)
	if err != nil {
		serverError(c, err, "login: sign token")
		return
	}
	reply(c, http.StatusOK, "Login successful", gin.H{"token": token, "user": user})
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Store.List(c.Request.Context())
	if err != nil {
		serverError(c, err, "list users")
		return
	}
	reply(c, http.StatusOK, "", gin.H{"users": users})
}

// GetByEmail answers with an empty user object when nobody matches.
func (h *UserHandler) GetByEmail(c *gin.Context) {
	user, err := h.Store.FindByEmail(c.Request.Context(), normalizeEmail(c.Param("email")))
	if errors.Is(err, mongo.ErrNoDocuments) {
		reply(c, http.StatusOK, "", gin.H{"user": gin.H{}})
		return
	}
	if err != nil {
		serverError(c, err, "get user by email")
		return
	}
	reply(c, http.StatusOK, "", gin.H{"user": user})
}

// UpdateProfile is the self-service update; the role cannot change here.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	h.update(c, false)
}

// AdminUpdate may also change the role.
func (h *UserHandler) AdminUpdate(c *gin.Context) {
	h.update(c, true)
}

func (h *UserHandler) update(c *gin.Context, allowRole bool) {
	id, valid := objectID(c)
	if !valid {
		return
	}
	var req models.UserUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, bindMessage(err))
		return
	}

	set := bson.M{}
	if req.Name != nil {
		set["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		set["email"] = normalizeEmail(*req.Email)
	}
	if req.Phone != nil {
		set["phone"] = *req.Phone
	}
	if req.Address != nil {
		set["address"] = *req.Address
	}
	if req.PhotoURL != nil {
		set["photoURL"] = *req.PhotoURL
	}
	if allowRole && req.Role != nil {
		set["role"] = *req.Role
	}
	if len(set) == 0 {
		fail(c, http.StatusBadRequest, "No fields to update")
		return
	}
	h.applyUpdate(c, id, set)
}

// UpdateRole handles PATCH /api/admin/users/:id/role.
func (h *UserHandler) UpdateRole(c *gin.Context) {
	id, valid := objectID(c)
	if !valid {
		return
	}
	var req models.RoleUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Role is required")
		return
	}
	h.applyUpdate(c, id, bson.M{"role": strings.TrimSpace(req.Role)})
}

func (h *UserHandler) applyUpdate(c *gin.Context, id primitive.ObjectID, set bson.M) {
	res, err := h.Store.Update(c.Request.Context(), id, set)
	if mongo.IsDuplicateKeyError(err) {
		fail(c, http.StatusBadRequest, "Email already in use")
		return
	}
	if err != nil {
		serverError(c, err, "update user")
		return
	}
	if res.ModifiedCount == 0 {
		fail(c, http.StatusNotFound, "No changes made or user not found")
		return
	}
	reply(c, http.StatusOK, "User updated successfully", gin.H{"modifiedCount": res.ModifiedCount})
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, valid := objectID(c)
	if !valid {
		return
	}
	res, err := h.Store.Delete(c.Request.Context(), id)
	if err != nil {
		serverError(c, err, "delete user")
		return
	}
	if res.DeletedCount == 0 {
		fail(c, http.StatusNotFound, "User not found")
		return
	}
	reply(c, http.StatusOK, "User deleted successfully", nil)
}
