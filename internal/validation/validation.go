// Package validation checks event, event location and user payloads and reports
// every failing rule as a client-facing message.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"eventsplatform/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// messages maps "<Struct>.<Field>.<tag>" to the message shown for that failure.
var messages = map[string]string{
	"EventInput.Name.min":              "El nombre debe tener al menos 3 caracteres",
	"EventInput.Name.max":              "El nombre no puede superar los 200 caracteres",
	"EventInput.EventLocationID.lte":   "La ubicación del evento no es válida",
	"EventInput.DurationInMinutes.lte": "La duración es demasiado grande",
	"EventInput.Price.lte":             "El precio no puede superar 99999999.99",
	"EventInput.MaxAssistance.lte":     "La asistencia máxima es demasiado grande",
	"EventInput.Description.min":       "La descripción debe tener al menos 3 caracteres",
	"EventInput.EventLocationID.gt":    "La ubicación del evento es requerida",
	"EventInput.DurationInMinutes.gte": "La duración no puede ser negativa",
	"EventInput.Price.gte":             "El precio no puede ser negativo",
	"EventInput.MaxAssistance.gt":      "La asistencia máxima debe ser mayor a 0",
	"EventInput.Tags.min":              "Las etiquetas deben tener entre 1 y 100 caracteres",
	"EventInput.Tags.max":              "Las etiquetas deben tener entre 1 y 100 caracteres",

	"EventLocationInput.Name.min":           "El nombre debe tener al menos 3 caracteres",
	"EventLocationInput.Name.max":           "El nombre no puede superar los 200 caracteres",
	"EventLocationInput.FullAddress.max":    "La dirección no puede superar los 300 caracteres",
	"EventLocationInput.LocationID.lte":     "La ubicación especificada no es válida",
	"EventLocationInput.MaxCapacity.lte":    "La capacidad máxima es demasiado grande",
	"EventLocationInput.FullAddress.min":    "La dirección debe tener al menos 3 caracteres",
	"EventLocationInput.LocationID.gt":      "La ubicación especificada no es válida",
	"EventLocationInput.MaxCapacity.gt":     "La capacidad máxima debe ser mayor a 0",
	"EventLocationInput.Latitude.required":  "La latitud es requerida",
	"EventLocationInput.Latitude.gte":       "La latitud debe ser un número válido entre -90 y 90",
	"EventLocationInput.Latitude.lte":       "La latitud debe ser un número válido entre -90 y 90",
	"EventLocationInput.Longitude.required": "La longitud es requerida",
	"EventLocationInput.Longitude.gte":      "La longitud debe ser un número válido entre -180 y 180",
	"EventLocationInput.Longitude.lte":      "La longitud debe ser un número válido entre -180 y 180",

	"RegisterInput.FirstName.min":     "El nombre debe tener al menos 3 caracteres",
	"RegisterInput.FirstName.max":     "El nombre no puede superar los 100 caracteres",
	"RegisterInput.LastName.max":      "El apellido no puede superar los 100 caracteres",
	"RegisterInput.Username.max":      "El email no puede superar los 255 caracteres",
	"RegisterInput.Password.max":      msgPasswordTooLong,
	"RegisterInput.LastName.min":      "El apellido debe tener al menos 3 caracteres",
	"RegisterInput.Username.required": domain.MsgInvalidEmail,
	"RegisterInput.Username.email":    domain.MsgInvalidEmail,
	"RegisterInput.Password.min":      "La contraseña debe tener al menos 3 caracteres",
}

const (
	msgStartDateRequired = "La fecha de inicio es requerida"
	msgPasswordTooLong   = "La contraseña no puede superar los 72 caracteres"
	maxPasswordBytes     = 72
)

// ValidateEventData returns the messages of every rule the event payload breaks.
// An empty result means the payload is valid.
func ValidateEventData(in *domain.EventInput) []string {
	errs := check(in)
	if in.StartDate.IsZero() {
		errs = append(errs, msgStartDateRequired)
	}
	return errs
}

// ValidateEventLocationData returns the messages of every rule the location payload breaks.
func ValidateEventLocationData(in *domain.EventLocationInput) []string {
	return check(in)
}

// ValidateRegistration returns the messages of every rule the sign up payload breaks.
func ValidateRegistration(in *domain.RegisterInput) []string {
	errs := check(in)
	// bcrypt reads at most 72 bytes, and multibyte runes can pass max=72.
	if len(in.Password) > maxPasswordBytes && !slices.Contains(errs, msgPasswordTooLong) {
		errs = append(errs, msgPasswordTooLong)
	}
	return errs
}

// ValidateEmail reports whether s looks like an email address.
func ValidateEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

func check(s any) []string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	var out []string
	seen := make(map[string]struct{}, len(verrs))
	for _, fe := range verrs {
		msg := messageFor(fe)
		if _, dup := seen[msg]; dup {
			continue
		}
		seen[msg] = struct{}{}
		out = append(out, msg)
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	if i := strings.IndexByte(ns, '['); i >= 0 {
		ns = ns[:i]
	}
	if msg, ok := messages[ns+"."+fe.Tag()]; ok {
		return msg
	}
	return fmt.Sprintf("El campo %s es inválido", fe.Field())
}
