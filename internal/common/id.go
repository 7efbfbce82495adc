package common

import "github.com/google/uuid"

// ParseID checks that id is a well formed identifier and returns its canonical form.
func ParseID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", NewMalformedIDError()
	}
	return u.String(), nil
}
