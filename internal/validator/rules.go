package validator

import (
	"log"

	"broadcast_backend/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// ошибка конфигурации, приложение не должно стартовать
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'notblank': строка не из одних пробелов
	mustRegister("notblank", validators.NotBlank)

	// 'is-broadcast-mode': Modal, Notification или Both
	mustRegister("is-broadcast-mode", validateBroadcastMode)

	// 'is-scope': переключатель области (сайт / категория / курс)
	mustRegister("is-scope", validateScope)

	// 'is-role': роль из models.RoleName
	mustRegister("is-role", validateRole)
}

// --- Функции валидации ---

func validateBroadcastMode(fl validator.FieldLevel) bool {
	return models.BroadcastMode(fl.Field().Int()).Valid()
}

func validateScope(fl validator.FieldLevel) bool {
	return models.ScopeSelector(fl.Field().Int()).Valid()
}

func validateRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Не проверяем пустые значения, для этого есть 'required'
	}
	return models.RoleName(value).Valid()
}
