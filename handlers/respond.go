package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bhojon-backend/middleware"
	"bhojon-backend/models"
	"bhojon-backend/reservation"
)

// reply writes a success envelope with the payload keys merged in.
func reply(c *gin.Context, status int, message string, payload gin.H) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, models.Response{Success: false, Message: message})
}

// serverError logs the store failure and replies with a generic 500.
func serverError(c *gin.Context, err error, what string) {
	middleware.Logger(c).WithError(err).Error(what)
	_ = c.Error(err)
	fail(c, http.StatusInternalServerError, "Server Error")
}

// objectID parses the :id path parameter, replying 400 when it is malformed.
func objectID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid ID")
		return primitive.NilObjectID, false
	}
	return id, true
}

// bindMessage turns a binding error into a short client-facing message
// naming the offending JSON fields.
func bindMessage(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make([]string, 0, len(ve))
		for _, fe := range ve {
			fields = append(fields, fe.Field())
		}
		return "Missing or invalid fields: " + strings.Join(fields, ", ")
	}
	return "Invalid request body"
}

var registerOnce sync.Once

// RegisterValidators adds the clock and isodate binding tags and makes
// validation errors report JSON field names.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
			_, err := reservation.ParseClock(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
			_, err := reservation.ParseDate(fl.Field().String())
			return err == nil
		})
	})
}
