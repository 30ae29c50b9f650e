package domain

type OptionsSource string

const (
	OptionsFromModel OptionsSource = "model"
	OptionsFallback  OptionsSource = "fallback"
)

// DropdownOptions lists selectable values per categorical feature, in Schema order.
// Source is OptionsFallback when the model's categories could not be read; Reason
// then says why.
type DropdownOptions struct {
	Source OptionsSource `json:"source"`
	Lists  [][]string    `json:"lists"`
	Reason string        `json:"reason,omitempty"`
}

func (o DropdownOptions) Degraded() bool { return o.Source == OptionsFallback }

// FallbackOptions returns sample values shown when the model cannot be introspected.
// They are not guaranteed to match the categories the model was trained on.
func FallbackOptions(reason string) DropdownOptions {
	return DropdownOptions{
		Source: OptionsFallback,
		Reason: reason,
		Lists: [][]string{
			{"Super built-up Area", "Built-up Area", "Plot Area"},
			{"Ready To Move", "Immediate Possession", "19-Dec", "New Launch"},
			{"Electronic City Phase II", "Chikka Tirupathi", "Uttarahalli", "Lingadheeranahalli", "Kothanur"},
			{"1 BHK", "2 BHK", "3 BHK", "4 BHK"},
			{"Coomee", "Theanmp", "Soiewre", "GreenVille", "LotusPark"},
		},
	}
}
