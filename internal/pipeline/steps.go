package pipeline

// Step names reported in progress events
const (
	StepSkills          = "skills"
	StepRoles           = "roles"
	StepRecommendations = "recommendations"
	StepMatch           = "match"
)

// Step categories group steps by the path that runs them
const (
	CategoryProfile = "profile"
	CategoryMatch   = "match"
)

// StepDefinition defines metadata for a pipeline step
type StepDefinition struct {
	Name         string
	Category     string
	Dependencies []string
}

// StepRegistry holds all step definitions
var StepRegistry = map[string]StepDefinition{
	StepSkills: {
		Name:         StepSkills,
		Category:     CategoryProfile,
		Dependencies: []string{},
	},
	StepRoles: {
		Name:         StepRoles,
		Category:     CategoryProfile,
		Dependencies: []string{StepSkills},
	},
	StepRecommendations: {
		Name:         StepRecommendations,
		Category:     CategoryProfile,
		Dependencies: []string{StepRoles},
	},
	StepMatch: {
		Name:         StepMatch,
		Category:     CategoryMatch,
		Dependencies: []string{},
	},
}

// GetStepDefinition returns the definition for a step name
func GetStepDefinition(name string) (StepDefinition, bool) {
	def, ok := StepRegistry[name]
	return def, ok
}
