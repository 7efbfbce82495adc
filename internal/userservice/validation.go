package userservice

import (
	"github.com/sushihentaime/bloglist/internal/common"
)

// MaxPasswordBytes is the longest password bcrypt will hash.
const MaxPasswordBytes = 72

func validatePassword(v *common.Validator, password string) {
	v.Check(password != "", "password", "Password required")
	v.Check(v.CheckStringLength(password, 1, MaxPasswordBytes), "password", "Password must not be more than 72 bytes")
}

func validateUsername(v *common.Validator, username string) {
	v.Check(username != "", "username", "Username required")
}

func validateName(v *common.Validator, name string) {
	v.Check(name != "", "name", "Name required")
}
