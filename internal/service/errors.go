package service

import "fmt"

// BusinessError — отказ, который должен увидеть пользователь; всё
// остальное деградирует до записи в лог
type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

func NewValidationError(field, reason string) *BusinessError {
	return &BusinessError{
		Code:    "VALIDATION_ERROR",
		Message: fmt.Sprintf("Неверное значение поля '%s': %s", field, reason),
		Details: map[string]any{
			"field":  field,
			"reason": reason,
		},
	}
}

func NewCategoryInUse(categoryID string, taskCount int) *BusinessError {
	return &BusinessError{
		Code:    "CATEGORY_IN_USE",
		Message: fmt.Sprintf("Категория %s используется задачами и не может быть удалена", categoryID),
		Details: map[string]any{
			"category_id": categoryID,
			"task_count":  taskCount,
		},
	}
}

func NewImportError(err error) *BusinessError {
	return &BusinessError{
		Code:    "IMPORT_FAILED",
		Message: "Импорт отклонён: документ не может быть разобран",
		Err:     err,
	}
}
