package repository

// Storage keys. Every collection is one JSON document owned exclusively by
// its key.
const (
	keyUsers              = "educode_users"
	keyCurrentUser        = "educode_current_user"
	keyCourses            = "educode_courses"
	keyNotifications      = "educode_notifications"
	keySubmissions        = "educode_submissions"
	keyProgress           = "educode_progress"
	keyGrades             = "educode_grades"
	keyJournal            = "educode_journal"
	keyGroups             = "educode_groups"
	keyTeacherAssignments = "educode_teacher_assignments"
	keyLessonAssignments  = "educode_lesson_assignments"
	keyLessonMaterials    = "educode_lesson_materials"
	keyLessonMaterialData = "educode_lesson_material_files"
)
