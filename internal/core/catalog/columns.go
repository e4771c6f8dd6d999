package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed columns.yaml
var defaultColumns []byte

// ColumnMap names the zero-based column of each mapped field. A negative
// index means unassigned
type ColumnMap struct {
	ProductName int `yaml:"product_name"`
	BatchCode   int `yaml:"batch_code"`
	TestDate    int `yaml:"test_date"`
	ReportURL   int `yaml:"report_url"`
}

// rawColumns tells a missing key apart from column 0
type rawColumns struct {
	ProductName *int `yaml:"product_name"`
	BatchCode   *int `yaml:"batch_code"`
	TestDate    *int `yaml:"test_date"`
	ReportURL   *int `yaml:"report_url"`
}

// ErrInvalidColumns is wrapped by every Validate failure
var ErrInvalidColumns = errors.New("catalog: invalid column map")

// DefaultColumns is the published sheet layout: product B, batch D, date E, report K
func DefaultColumns() ColumnMap {
	cm, err := DecodeColumns(bytes.NewReader(defaultColumns))
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded columns.yaml: %v", err))
	}
	return cm
}

// DecodeColumns reads a YAML column map. Keys left out stay unassigned
func DecodeColumns(r io.Reader) (ColumnMap, error) {
	var raw rawColumns
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return ColumnMap{}, fmt.Errorf("decode columns: %w", err)
	}
	pick := func(p *int) int {
		if p == nil {
			return -1
		}
		return *p
	}
	return ColumnMap{
		ProductName: pick(raw.ProductName),
		BatchCode:   pick(raw.BatchCode),
		TestDate:    pick(raw.TestDate),
		ReportURL:   pick(raw.ReportURL),
	}, nil
}

// LoadColumnsFile decodes the YAML file at path
func LoadColumnsFile(path string) (ColumnMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return ColumnMap{}, err
	}
	defer f.Close()
	return DecodeColumns(f)
}

// Validate requires every field assigned and no field reading the batch
// code column
func (c ColumnMap) Validate() error {
	fields := []struct {
		name string
		idx  int
	}{
		{"product_name", c.ProductName},
		{"batch_code", c.BatchCode},
		{"test_date", c.TestDate},
		{"report_url", c.ReportURL},
	}
	for _, f := range fields {
		if f.idx < 0 {
			return fmt.Errorf("%w: %s unassigned", ErrInvalidColumns, f.name)
		}
	}
	for _, f := range fields {
		if f.name != "batch_code" && f.idx == c.BatchCode {
			return fmt.Errorf("%w: %s shares column %d with batch_code", ErrInvalidColumns, f.name, f.idx)
		}
	}
	return nil
}

// MinWidth is the number of cells a row needs to be mapped
func (c ColumnMap) MinWidth() int {
	return max(c.ProductName, c.BatchCode, c.TestDate, c.ReportURL) + 1
}
