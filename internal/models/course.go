package models

// Courses is the catalogue offered by the registration form. The API does not
// reject other values.
var Courses = []string{
	"Computer Science",
	"Information Technology",
	"Data Science",
	"Cybersecurity",
	"Software Engineering",
	"Artificial Intelligence",
	"Web Development",
	"Mobile Development",
	"Cloud Computing",
	"Business Administration",
}
