package validator

import (
	"piwork_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerDomainRules adds the closed-enum rules used by request DTOs.
func registerDomainRules(v *validator.Validate) {
	// Validators registered at startup; a registration error is a programming
	// mistake, so panic is fine here.
	must(v.RegisterValidation("subscription_plan", func(fl validator.FieldLevel) bool {
		return models.SubscriptionPlan(fl.Field().String()).Valid()
	}))

	must(v.RegisterValidation("case_status", func(fl validator.FieldLevel) bool {
		return models.CaseStatus(fl.Field().String()).Valid()
	}))

	must(v.RegisterValidation("billing_cycle", func(fl validator.FieldLevel) bool {
		return models.BillingCycle(fl.Field().String()).Valid()
	}))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
