package employee

import "time"

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Fixtures returns the nine records the seed command loads.
func Fixtures() []CreateEmployeeDTO {
	return []CreateEmployeeDTO{
		{FirstName: "John", LastName: "Doe", Email: "jd@example.com", Age: 23, HireDate: date(2021, time.March, 15), Active: true},
		{FirstName: "Jane", LastName: "Tanaka", Email: "jt@example.com", Age: 38, HireDate: date(2016, time.July, 1), Active: true},
		{FirstName: "Alex", LastName: "Brown", Email: "ab@example.com", Age: 45, HireDate: date(2012, time.January, 9), Active: false},
		{FirstName: "Mia", LastName: "Wong", Email: "mw@example.com", Age: 29, HireDate: date(2020, time.October, 19), Active: true},
		{FirstName: "Rafael", LastName: "Silva", Email: "rs@example.com", Age: 51, HireDate: date(2009, time.May, 4), Active: true},
		{FirstName: "Priya", LastName: "Nair", Email: "pn@example.com", Age: 34, HireDate: date(2018, time.February, 26), Active: false},
		{FirstName: "Tom", LastName: "Keller", Email: "tk@example.com", Age: 27, HireDate: date(2022, time.August, 8), Active: true},
		{FirstName: "Sara", LastName: "Lindqvist", Email: "sl@example.com", Age: 42, HireDate: date(2014, time.November, 3), Active: true},
		{FirstName: "Omar", LastName: "Haddad", Email: "oh@example.com", Age: 31, HireDate: date(2019, time.June, 17), Active: false},
	}
}
