package validation

import (
	"todo-sync/internal/config"
	"todo-sync/internal/domain"
)

// TaskValidator provides validation for task arguments before they are sent to the API
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWithConfig creates a task validator using configured limits
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// ValidateLabel validates a task label for creation or update
func (tv *TaskValidator) ValidateLabel(label string) error {
	validationError := NewValidationError()

	trimmed := tv.validator.TrimAndValidateString(label)
	if !tv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError("label")
		return validationError
	}

	if !tv.validator.IsValidLabelLength(trimmed) {
		validationError.AddInvalidLengthError("label", trimmed, 1, tv.validator.getLabelMaxLength())
	}

	if tv.validator.HasControlCharacters(trimmed) {
		validationError.AddInvalidCharacterError("label", trimmed)
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ValidateTaskID validates a task ID
func (tv *TaskValidator) ValidateTaskID(id int64) error {
	if !tv.validator.IsValidTaskID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("task_id", id, "must be a positive integer")
		return validationError
	}
	return nil
}

// ParseTaskID parses and validates a task id given on the command line
func (tv *TaskValidator) ParseTaskID(arg string) (int64, error) {
	id, ok := tv.validator.ParseID(arg)
	if !ok {
		validationError := NewValidationError()
		validationError.AddInvalidFormatError("task_id", arg, "a positive integer")
		return 0, validationError
	}
	if err := tv.ValidateTaskID(id); err != nil {
		return 0, err
	}
	return id, nil
}

// ValidateTasks validates a full task list before it replaces the server copy.
// Ids may be zero for tasks the server has not seen yet, but must not repeat.
func (tv *TaskValidator) ValidateTasks(tasks []domain.Task) error {
	validationError := NewValidationError()
	seen := make(map[int64]bool, len(tasks))

	for _, task := range tasks {
		validationError.Merge(tv.ValidateLabel(task.Label))
		if task.ID < 0 {
			validationError.AddInvalidValueError("task_id", task.ID, "must not be negative")
		}
		if task.ID > 0 {
			if seen[task.ID] {
				validationError.AddInvalidValueError("task_id", task.ID, "appears more than once")
			}
			seen[task.ID] = true
		}
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}
