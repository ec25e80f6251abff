package model

const RoleAdmin = "admin"

type User struct {
	ID   string `json:"id" bson:"_id" validate:"required"`
	Name string `json:"name" bson:"name" validate:"required,min=1,max=100"`
	Role string `json:"role" bson:"role" validate:"required,oneof=admin user"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
