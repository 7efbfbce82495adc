package common

type Validator struct {
	Errors map[string]string
	// order records fields in the order their first error was added.
	order []string
}

func NewValidator() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

func (v *Validator) AddError(field, message string) {
	if _, ok := v.Errors[field]; !ok {
		v.Errors[field] = message
		v.order = append(v.order, field)
	}
}

func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

func (v *Validator) CheckStringLength(s string, min, max int) bool {
	return len(s) >= min && len(s) <= max
}

// First returns the message of the earliest failed check, or "" when valid.
func (v *Validator) First() string {
	if len(v.order) == 0 {
		return ""
	}
	return v.Errors[v.order[0]]
}

// ValidationError returns the first failure as a client facing *Error.
func (v *Validator) ValidationError() error {
	return NewValidationError(v.First())
}
