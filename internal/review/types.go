package review

// CritiqueResult is the fixed-shape critique of a system design. Every field
// is a list of flat strings in model output order; a field the model omitted
// is an empty list, never nil and never a nested structure.
type CritiqueResult struct {
	BlindSpots                    []string `json:"blindSpots"`
	TradeOffs                     []string `json:"tradeOffs"`
	Bottlenecks                   []string `json:"bottlenecks"`
	InfrastructureRecommendations []string `json:"infrastructureRecommendations"`
	FailureModes                  []string `json:"failureModes"`
	DeepDiveQuestions             []string `json:"deepDiveQuestions"`
}

// CritiqueReport pairs a critique with its best-effort architecture diagram.
// Diagram is Mermaid source and may be empty when diagram generation failed.
type CritiqueReport struct {
	Feedback CritiqueResult `json:"feedback"`
	Diagram  string         `json:"diagram"`
}

// EvaluationResult is the scored evaluation of a candidate response.
// Score is always an integer in [1,10]; an evaluation without a valid score
// is never returned.
type EvaluationResult struct {
	Score             int      `json:"score"`
	Strengths         []string `json:"strengths"`
	Improvements      []string `json:"improvements"`
	MissingComponents []string `json:"missingComponents"`
	DeepDiveQuestions []string `json:"deepDiveQuestions"`
}

// critiqueFields declares the normalized critique record. Uncapped.
var critiqueFields = []Field{
	{Name: "blindSpots"},
	{Name: "tradeOffs"},
	{Name: "bottlenecks"},
	{Name: "infrastructureRecommendations"},
	{Name: "failureModes"},
	{Name: "deepDiveQuestions"},
}

// evaluationFields declares the normalized evaluation record with the
// per-field cardinality caps applied after normalization.
var evaluationFields = []Field{
	{Name: "strengths", Max: 5},
	{Name: "improvements", Max: 5},
	{Name: "missingComponents", Max: 5},
	{Name: "deepDiveQuestions", Max: 3},
}
