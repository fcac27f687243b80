package models

// Payload is the columnar time series built from one run file.
//
// Each entry of Series grows only on records that carry that field, so a
// series may be shorter than T. Series are indexed independently and are not
// positionally aligned with T.
type Payload struct {
	T      []float64            `json:"t" yaml:"t"`
	Series map[string][]float64 `json:"series" yaml:"series"`
	TUnit  string               `json:"tUnit,omitempty" yaml:"tUnit,omitempty"`
}

// NewPayload returns an empty payload whose slices encode as [] and {}.
func NewPayload() *Payload {
	return &Payload{
		T:      []float64{},
		Series: map[string][]float64{},
	}
}
