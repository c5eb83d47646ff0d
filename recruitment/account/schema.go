package account

import "github.com/Abraxas-365/shiftboard/pkg/listx"

// FieldRole filters user lists by role
const FieldRole = "role"

// Schema searches first name, last name and email
var Schema = listx.Schema[UserAccount]{
	Search: []func(UserAccount) string{
		func(u UserAccount) string { return string(u.FirstName) },
		func(u UserAccount) string { return string(u.LastName) },
		func(u UserAccount) string { return string(u.Email) },
	},
	Fields: map[string]listx.Accessor[UserAccount]{
		FieldRole: func(u UserAccount) (string, bool) { return string(u.Role), u.Role != "" },
	},
}
