package output

import (
	"encoding/json"

	"github.com/ecovaluate/esgval/internal/domain"
)

// JSONFormatter renders the report as JSON.
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// Format implements Formatter.
func (jf *JSONFormatter) Format(report *domain.ValuationReport) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(report, "", "  ")
	} else {
		data, err = json.Marshal(report)
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}
