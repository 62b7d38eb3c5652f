package usecase

type Intent = intent

const (
	IntentUnknown = intentUnknown
	IntentAssign  = intentAssign
	IntentTasks   = intentTasks
)

type ParsedAssignment = parsedAssignment

var (
	ClassifyIntent  = classifyIntent
	ParseAssignment = parseAssignment
)
