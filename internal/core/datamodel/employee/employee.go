package employee

import "time"

type Employee struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	FirstName string    `gorm:"column:firstname;size:100;not null"`
	LastName  string    `gorm:"column:lastname;size:100;not null"`
	Email     string    `gorm:"column:email;size:120;uniqueIndex;not null"`
	Age       int       `gorm:"column:age;not null"`
	HireDate  time.Time `gorm:"column:hire_date;type:date;not null"`
	Active    bool      `gorm:"column:active;not null"`
}

// TableName returns the table name for GORM
func (Employee) TableName() string {
	return "employee"
}
