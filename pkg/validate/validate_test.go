package validate_test

import (
	"testing"

	"github.com/lacantina/backend/pkg/validate"
)

type registerInput struct {
	Nombre   string `json:"nombre"   validate:"required,min=2,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Rol      string `json:"rol"      validate:"nullable,in=estudiante,admin"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(registerInput{
		Nombre:   "Belen Ferreiro",
		Email:    "bferreiro@correo.um.edu.uy",
		Password: "test1234",
		Rol:      "", // nullable — allowed to be empty
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(registerInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["nombre"]; !ok {
		t.Error("expected nombre to be required")
	}
	if _, ok := errs["email"]; !ok {
		t.Error("expected email to be required")
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs := validate.Struct(in{Email: "not-an-email"})
	if _, ok := errs["email"]; !ok {
		t.Error("expected email validation error")
	}
	errs = validate.Struct(in{Email: "valid@example.com"})
	if validate.HasErrors(errs) {
		t.Errorf("expected valid email to pass, got: %v", errs)
	}
}

func TestInRule(t *testing.T) {
	type in struct {
		MetodoPago string `json:"metodoPago" validate:"required,in=efectivo,tarjeta,mercadopago"`
	}
	if errs := validate.Struct(in{MetodoPago: "bitcoin"}); !validate.HasErrors(errs) {
		t.Error("expected unknown payment method to fail")
	}
	if errs := validate.Struct(in{MetodoPago: "tarjeta"}); validate.HasErrors(errs) {
		t.Errorf("expected tarjeta to pass, got: %v", errs)
	}
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Puntaje int `json:"puntaje" validate:"required,gte=1,lte=5"`
	}
	if errs := validate.Struct(in{Puntaje: 6}); !validate.HasErrors(errs) {
		t.Error("expected puntaje > 5 to fail")
	}
	if errs := validate.Struct(in{Puntaje: 3}); validate.HasErrors(errs) {
		t.Errorf("expected puntaje 3 to pass, got: %v", errs)
	}
}

func TestGtRule(t *testing.T) {
	type in struct {
		Precio float64 `json:"precio" validate:"required,gt=0"`
	}
	if errs := validate.Struct(in{Precio: -10}); !validate.HasErrors(errs) {
		t.Error("expected negative price to fail")
	}
	if errs := validate.Struct(in{Precio: 280}); validate.HasErrors(errs) {
		t.Errorf("expected positive price to pass, got: %v", errs)
	}
}
