package model

// Department is a managed picklist entry. Requests reference departments by
// name as free text, not by foreign key (documented tech debt).
type Department struct {
	BaseModel
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`
}

func (Department) TableName() string {
	return "departments"
}

// DefaultDepartments are seeded on first boot so the request form is usable
// before an admin configures anything.
var DefaultDepartments = []string{
	"Production",
	"Quality",
	"Maintenance",
	"Warehouse",
	"Office",
}
