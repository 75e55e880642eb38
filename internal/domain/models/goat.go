package models

// Gender of a goat.
type Gender string

// Known genders.
const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Status captures the health state of a goat.
type Status string

// Known statuses.
const (
	StatusHealthy Status = "healthy"
	StatusSick    Status = "sick"
	StatusDead    Status = "dead"
)

// Goat is a herd member as returned by the livestock API.
type Goat struct {
	ID     string  `json:"id"`
	Tag    string  `json:"tag"`
	Weight float64 `json:"weight"`
	Age    int     `json:"age"` // months
	Gender Gender  `json:"gender"`
	Status Status  `json:"status"`
	Barn   Barn    `json:"barn"`
}

// GoatCreate is the client-settable portion of a goat, used for both create
// and full-replace update requests. Weight and age are pointers so that a
// missing field is distinguishable from an explicit zero.
type GoatCreate struct {
	Tag    string   `json:"tag" validate:"required"`
	Weight *float64 `json:"weight" validate:"required,gte=0"`
	Age    *int     `json:"age" validate:"required,gte=0"`
	Gender Gender   `json:"gender" validate:"required,oneof=male female"`
	Status Status   `json:"status" validate:"required,oneof=healthy sick dead"`
	Barn   Barn     `json:"barn" validate:"required,oneof=barat timur"`
}

// GoatStats aggregates herd counts per barn. The wire keys keep the legacy
// barn names; total must always equal the sum of both barns.
type GoatStats struct {
	Total int `json:"total"`
	West  int `json:"barat"`
	East  int `json:"timur"`
}
