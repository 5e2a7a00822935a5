package generator

import (
	"slices"
	"strings"
)

type Course struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Kind string `json:"type"` // Course | Module
}

var catalog = []Course{
	{1, "Mathematics", "Course"},
	{2, "Physics", "Course"},
	{3, "Chemistry", "Course"},
	{4, "Biology", "Course"},
	{5, "English Literature", "Course"},
	{6, "History", "Course"},
	{7, "Geography", "Course"},
	{8, "Computer Science", "Course"},
	{9, "Algebra", "Module"},
	{10, "Calculus", "Module"},
	{11, "Trigonometry", "Module"},
	{12, "Mechanics", "Module"},
	{13, "Thermodynamics", "Module"},
	{14, "Organic Chemistry", "Module"},
	{15, "Inorganic Chemistry", "Module"},
	{16, "Cell Biology", "Module"},
	{17, "Genetics", "Module"},
	{18, "Shakespeare", "Module"},
	{19, "Modern Literature", "Module"},
	{20, "World War II", "Module"},
	{21, "Ancient Civilizations", "Module"},
	{22, "Climate Change", "Module"},
	{23, "Programming Fundamentals", "Module"},
	{24, "Data Structures", "Module"},
}

func Courses() []Course { return slices.Clone(catalog) }

func CourseByID(id int) (Course, bool) {
	for _, c := range catalog {
		if c.ID == id {
			return c, true
		}
	}
	return Course{}, false
}

// Search returns catalog entries whose name contains q (case-insensitive),
// leaving out ones already selected.
func Search(q string, selected []int) []Course {
	q = strings.ToLower(strings.TrimSpace(q))
	out := []Course{}
	for _, c := range catalog {
		if slices.Contains(selected, c.ID) {
			continue
		}
		if q == "" || strings.Contains(strings.ToLower(c.Name), q) {
			out = append(out, c)
		}
	}
	return out
}
