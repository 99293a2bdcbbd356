package models

type ContextLevel int
type BroadcastMode int
type ScopeSelector int
type RoleName string

const (
	ContextLevelSystem   ContextLevel = 10
	ContextLevelCategory ContextLevel = 40
	ContextLevelCourse   ContextLevel = 50
	ContextLevelModule   ContextLevel = 70

	BroadcastModeModal        BroadcastMode = 1
	BroadcastModeNotification BroadcastMode = 2
	BroadcastModeBoth         BroadcastMode = 3

	// Значения переключателя области в форме рассылки
	ScopeSite     ScopeSelector = 0
	ScopeCategory ScopeSelector = 1
	ScopeCourse   ScopeSelector = 2

	RoleManager        RoleName = "manager"
	RoleEditingTeacher RoleName = "editingteacher"
	RoleTeacher        RoleName = "teacher"
	RoleStudent        RoleName = "student"
)

// Форматы тела сообщения
const (
	FormatMoodle   = 0
	FormatHTML     = 1
	FormatPlain    = 2
	FormatMarkdown = 4
)

func (l ContextLevel) String() string {
	switch l {
	case ContextLevelSystem:
		return "system"
	case ContextLevelCategory:
		return "category"
	case ContextLevelCourse:
		return "course"
	case ContextLevelModule:
		return "module"
	default:
		return "unknown"
	}
}

func (m BroadcastMode) Valid() bool {
	return m == BroadcastModeModal || m == BroadcastModeNotification || m == BroadcastModeBoth
}

// ShowsModal - показывать модальное окно
func (m BroadcastMode) ShowsModal() bool {
	return m == BroadcastModeModal || m == BroadcastModeBoth
}

// ShowsNotification - показывать баннер уведомления
func (m BroadcastMode) ShowsNotification() bool {
	return m == BroadcastModeNotification || m == BroadcastModeBoth
}

func (s ScopeSelector) Valid() bool {
	return s == ScopeSite || s == ScopeCategory || s == ScopeCourse
}

func (r RoleName) Valid() bool {
	switch r {
	case RoleManager, RoleEditingTeacher, RoleTeacher, RoleStudent:
		return true
	}
	return false
}
