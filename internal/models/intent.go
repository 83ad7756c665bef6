package models

type IntentName string

const (
	IntentGreetings      IntentName = "greetings"
	IntentProductInquiry IntentName = "product_inquiry"
	IntentOrderStatus    IntentName = "order_status"
	IntentReturns        IntentName = "returns"
	IntentHelp           IntentName = "help"
)

// IntentRule maps keywords to an intent. Rules are checked in order and the
// first rule with a keyword contained in the input wins.
type IntentRule struct {
	Name     IntentName `yaml:"name" json:"name" validate:"required"`
	Keywords []string   `yaml:"keywords" json:"keywords" validate:"required,min=1,dive,required"`
}

// IntentTable is the full intent configuration: ordered rules, a default
// intent for unmatched input and the candidate replies per intent.
type IntentTable struct {
	Default   IntentName              `yaml:"default" json:"default" validate:"required"`
	Rules     []IntentRule            `yaml:"rules" json:"rules" validate:"required,min=1,dive"`
	Responses map[IntentName][]string `yaml:"responses" json:"responses" validate:"required,min=1,dive,min=1,dive,required"`
}
