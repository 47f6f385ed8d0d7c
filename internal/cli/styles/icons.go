package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconVersion   = "" // tag
	IconGitBranch = "" // git branch
	IconCalendar  = "" // calendar
	IconGo        = "" // go gopher

	IconCheck   = "" // check
	IconX       = "" // x
	IconWarning = "" // warning
	IconInfo    = "" // info

	IconTrash    = "" // trash
	IconConfig   = "" // config
	IconDatabase = "" // database

	IconCursor = "" // chevron-right
	IconAnchor = "" // anchor
)
