package entities

// RowRecord is one data row extracted from the results table.
type RowRecord struct {
	Radicado        string `json:"radicado"`
	FechaRadicacion string `json:"fecha_radicacion"`
	Despacho        string `json:"despacho"`
	Clase           string `json:"clase"`
	Sujetos         string `json:"sujetos"`
}

// ResultRecord is the persisted outcome of one complete search path:
// the path itself, the name that was searched, and the rows the remote
// system returned for it.
type ResultRecord struct {
	SearchParams map[string]string `json:"search_params"`
	SearchName   string            `json:"search_name"`
	Rows         []RowRecord       `json:"results"`
}
