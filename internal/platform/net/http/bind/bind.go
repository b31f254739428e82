// Package bind decodes request bodies and validates them with go-playground/validator
// failures come back as *errors.Error carrying ErrorCodeJSON or ErrorCodeValidation
package bind

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "chimera/internal/platform/errors"
	"chimera/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
)

// Validator pairs the shared validate instance with its english translator
type Validator struct {
	V     *validator.Validate
	Trans ut.Translator
}

// messages overrides the stock english text, {0} is the json field name
var messages = map[string]string{
	"min":    "{0} must be at least {1}",
	"max":    "{0} must be at most {1}",
	"sha256": "{0} must be a 64 character hex sha256 digest",
}

// Get returns the process-wide validator
var Get = sync.OnceValue(func() *Validator {
	loc := en.New()
	trans, _ := ut.New(loc, loc).GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	_ = v.RegisterValidation("sha256", isSHA256)
	_ = entrans.RegisterDefaultTranslations(v, trans)

	for tag, text := range messages {
		_ = v.RegisterTranslation(tag, trans,
			func(t ut.Translator) error { return t.Add(tag, text, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				msg, _ := t.T(tag, fe.Field(), fe.Param())
				return msg
			},
		)
	}
	return &Validator{V: v, Trans: trans}
})

// jsonName reports fields by their json name, falling back to the Go name
func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

func isSHA256(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	_, err := hex.DecodeString(s)
	return len(s) == 64 && err == nil
}

// Struct validates v, the first failing field becomes the error's Field
func Struct(v any) error {
	err := Get().V.Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		logger.Get().Error().Err(inv).Msg("validator called with a non-struct")
		return perr.JSONErrf("validation error")
	}
	field, msg := FieldMessage(err)
	return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s", msg), field)
}

// FieldMessage returns the first failing field and its translated message
func FieldMessage(err error) (field, msg string) {
	var verrs validator.ValidationErrors
	switch {
	case err == nil:
		return "", ""
	case errors.As(err, &verrs) && len(verrs) > 0:
		return verrs[0].Field(), verrs[0].Translate(Get().Trans)
	default:
		return "", err.Error()
	}
}

type options struct {
	maxBytes     int64
	allowUnknown bool
	allowEmpty   bool
}

// Option tunes JSON
type Option func(*options)

// MaxBytes caps the body, zero or less reads it all
func MaxBytes(n int64) Option { return func(o *options) { o.maxBytes = n } }

// AllowUnknown accepts fields T does not declare
func AllowUnknown() Option { return func(o *options) { o.allowUnknown = true } }

// AllowEmpty returns the zero T for an empty body on any method
func AllowEmpty() Option { return func(o *options) { o.allowEmpty = true } }

// DefaultMaxBytes is the body cap when MaxBytes is not given
const DefaultMaxBytes = 1 << 20

// bodyless methods tolerate an empty body without AllowEmpty
var bodyless = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodDelete:  true,
	http.MethodOptions: true,
}

// more reports trailing tokens after the first value
var more = func(dec *json.Decoder) bool { return dec.More() }

// JSON decodes exactly one JSON value from the body into T and validates it
func JSON[T any](r *http.Request, opts ...Option) (T, error) {
	var zero T
	o := options{maxBytes: DefaultMaxBytes}
	for _, fn := range opts {
		fn(&o)
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.C(r.Context()).Warn().Err(err).Msg("closing request body")
		}
	}()

	var body io.Reader = r.Body
	if o.maxBytes > 0 {
		// one extra byte tells an exact fit from an overflow
		body = io.LimitReader(r.Body, o.maxBytes+1)
	}
	lr := &countingReader{r: body}
	dec := json.NewDecoder(lr)
	if !o.allowUnknown {
		dec.DisallowUnknownFields()
	}

	var dst T
	if err := dec.Decode(&dst); err != nil {
		switch {
		case errors.Is(err, io.EOF) && lr.n == 0:
			if o.allowEmpty || bodyless[r.Method] {
				return zero, nil
			}
			return zero, perr.JSONErrf("empty body")
		case o.maxBytes > 0 && lr.n > o.maxBytes:
			return zero, perr.JSONErrf("body exceeds %d bytes", o.maxBytes)
		}
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if more(dec) {
		return zero, perr.JSONErrf("unexpected trailing data")
	}
	if err := Struct(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
