package handler

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"bookshelf/pkg/apierror"
)

const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("whole", isWholeNumber); err != nil {
		panic(err)
	}

	return v
}

// isWholeNumber accepts integral floats such as 4 or 4.0.
func isWholeNumber(fl validator.FieldLevel) bool {
	field := fl.Field()
	if !field.CanFloat() {
		return field.CanInt()
	}

	f := field.Float()
	return !math.IsInf(f, 0) && f == math.Trunc(f)
}

type normalizer interface {
	Normalize()
}

// messages maps "Field.tag" of a failed rule to the client-facing message.
// The "*" entry is used for anything not listed.
type messages map[string]string

func (m messages) lookup(fe validator.FieldError) string {
	if msg, ok := m[fe.StructField()+"."+fe.Tag()]; ok {
		return msg
	}
	if msg, ok := m[fe.StructField()]; ok {
		return msg
	}

	return m["*"]
}

// bind decodes a JSON body into dst and validates it twice: once as sent, so
// presence and format checks see what the client wrote, and once after
// Normalize, so length checks see trimmed values.
func bind(r *http.Request, dst normalizer, msgs messages) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := decoder.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			if msg, ok := msgs[typeErr.Field]; ok {
				return apierror.Validation(msg, typeErr.Field)
			}
		}
		return apierror.Validation("Invalid JSON body", "")
	}

	if err := check(dst, msgs); err != nil {
		return err
	}

	dst.Normalize()
	return check(dst, msgs)
}

func check(dst any, msgs messages) error {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	first := fieldErrs[0]
	return apierror.Validation(msgs.lookup(first), first.Field())
}

var signupMessages = messages{
	"Name.required":     "Name, email and password are required",
	"Email.required":    "Name, email and password are required",
	"Password.required": "Name, email and password are required",
	"Name.max":          "Name must be at most 100 characters long",
	"Email":             "Invalid email format",
	"Password.min":      "Password must be at least 6 characters long",
	"*":                 "Invalid signup request",
}

var loginMessages = messages{
	"Email.required":    "Email and password are required",
	"Password.required": "Email and password are required",
	"Email":             "Invalid email format",
	"*":                 "Invalid login request",
}

var reviewMessages = messages{
	"BookTitle.required": "All fields are required (book_title, rating, review, mood)",
	"Rating.required":    "All fields are required (book_title, rating, review, mood)",
	"Review.required":    "All fields are required (book_title, rating, review, mood)",
	"Mood.required":      "All fields are required (book_title, rating, review, mood)",
	"BookTitle.notblank": "Book title cannot be empty",
	"BookTitle.max":      "Book title must be at most 255 characters long",
	"Rating":             "Rating must be an integer between 1 and 5",
	"rating":             "Rating must be an integer between 1 and 5",
	"Review.min":         "Review must be at least 10 characters long",
	"Mood.notblank":      "Mood field is required and cannot be empty",
	"Mood.max":           "Mood must be at most 50 characters long",
	"*":                  "Invalid review",
}
