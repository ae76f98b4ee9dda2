// Package validation wires request schema checks into gin's binding engine and turns
// binding failures into client-facing BadRequest messages.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/asaskevich/govalidator"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/v2/bson"

	"around_backend/internal/shared/apperror"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// Register installs the custom validators on gin's validator engine and makes the
// JSON decoder reject unknown fields. It is safe to call more than once.
func Register() error {
	registerOnce.Do(func() {
		binding.EnableDecoderDisallowUnknownFields = true

		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		v.RegisterTagNameFunc(fieldName)
		v.RegisterCustomTypeFunc(optionalStringValue, OptionalString{})
		if err := v.RegisterValidation("weburl", validateWebURL); err != nil {
			registerErr = fmt.Errorf("register weburl: %w", err)
			return
		}
		if err := v.RegisterValidation("objectid", validateObjectID); err != nil {
			registerErr = fmt.Errorf("register objectid: %w", err)
		}
	})
	return registerErr
}

// BindJSON decodes and validates the request body into obj.
func BindJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return apperror.Wrap(apperror.KindBadRequest, Describe(err), err)
	}
	return nil
}

// BindURI validates path parameters into obj.
func BindURI(c *gin.Context, obj any) error {
	if err := c.ShouldBindUri(obj); err != nil {
		return apperror.Wrap(apperror.KindBadRequest, Describe(err), err)
	}
	return nil
}

var unknownFieldRe = regexp.MustCompile(`json: unknown field "([^"]+)"`)

// Describe renders a binding failure as a message listing every violated constraint.
func Describe(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, describeField(fe))
		}
		return strings.Join(msgs, ". ")
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("%q must be a %s", lastSegment(typeErr.Field), typeName(typeErr.Type))
	}

	if m := unknownFieldRe.FindStringSubmatch(err.Error()); m != nil {
		return fmt.Sprintf("%q is not allowed", m[1])
	}

	if errors.Is(err, io.EOF) {
		return "Request body is required"
	}
	return "Request body must be valid JSON"
}

func describeField(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "min":
		return fmt.Sprintf("%q length must be at least %s characters long", field, fe.Param())
	case "max":
		return fmt.Sprintf("%q length must be less than or equal to %s characters long", field, fe.Param())
	case "email":
		return fmt.Sprintf("%q must be a valid email", field)
	case "weburl":
		return fmt.Sprintf("%q must be a valid uri", field)
	case "objectid":
		return fmt.Sprintf("%q must be a 24 character hex id", field)
	default:
		return fmt.Sprintf("%q is invalid", field)
	}
}

// fieldName reports struct fields under their wire names so messages match the request.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "uri"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			continue
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

func lastSegment(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[i+1:]
	}
	return path
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	switch t.Kind() {
	case reflect.Pointer:
		return typeName(t.Elem())
	case reflect.String:
		return "string"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.Bool:
		return "boolean"
	default:
		return "number"
	}
}

func validateObjectID(fl validator.FieldLevel) bool {
	_, err := bson.ObjectIDFromHex(fl.Field().String())
	return err == nil
}

func validateWebURL(fl validator.FieldLevel) bool {
	return IsWebURL(fl.Field().String())
}

// webSchemes are the schemes a link may carry; scheme-less links are read as http.
var webSchemes = map[string]bool{"http": true, "https": true, "ftp": true}

// IsWebURL reports whether s is a web address in the sense of govalidator.IsURL,
// limited to http, https or ftp, a valid port, and a host that is an IP or a dotted domain.
func IsWebURL(s string) bool {
	if !govalidator.IsURL(s) {
		return false
	}

	raw := s
	if !strings.Contains(s, "://") {
		raw = "http://" + s
	}
	u, err := url.Parse(raw)
	if err != nil || !webSchemes[strings.ToLower(u.Scheme)] {
		return false
	}
	if port := u.Port(); port != "" && !govalidator.IsPort(port) {
		return false
	}

	host := u.Hostname()
	if govalidator.IsIP(host) {
		return true
	}
	return strings.Contains(host, ".") && govalidator.IsDNSName(host)
}
