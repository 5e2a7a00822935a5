package rbac

const (
	PermExamCreate        = "exam:create"
	PermExamView          = "exam:view"
	PermParticipants      = "participants:manage"
	PermQuestionsImport   = "questions:import"
	PermResultsView       = "results:view"
	PermResultsExport     = "results:export"
	PermQuestionsGenerate = "questions:generate"
	PermPrefsSelf         = "prefs:self"
)

// Default policy. Teachers author exams; students only see exams and keep
// their own preferences.
var RolePermissions = map[string][]string{
	"student": {
		PermExamView,
		PermPrefsSelf,
	},
	"teacher": {
		"exam:*",
		PermParticipants,
		"questions:*",
		"results:*",
		PermPrefsSelf,
	},
	"admin": {
		"*", // everything
	},
}
