package module

import (
	"time"

	"batchtrace/internal/adapters/sheets"
	"batchtrace/internal/core/catalog"
	"batchtrace/internal/platform/config"
	"batchtrace/internal/services/catalog/service"
)

// Options controls the catalog feed and row mapping
type Options struct {
	Feed sheets.Options

	// ColumnsFile is a YAML column map, empty for the built in layout
	ColumnsFile string
	// Overrides replace single columns of the file or default map, -1 keeps
	Overrides catalog.ColumnMap

	ProductName    string
	LabName        string
	TestDateLayout string
	Location       *time.Location
}

// FromConfig reads with CORE_CATALOG_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_CATALOG_")
	return Options{
		Feed: sheets.Options{
			FeedURL:   c.MayString("FEED_URL", ""),
			SheetID:   c.MayString("SHEET_ID", "15CMTLDg-Ltz2PBEpnHku-mc7Q5iD1RzX"),
			SheetName: c.MayString("SHEET_NAME", "Final Batch Code"),
			Timeout:   c.MayDuration("FETCH_TIMEOUT", 15*time.Second),
			MaxBytes:  int64(c.MayInt("MAX_BYTES", 8<<20)),
		},
		ColumnsFile: c.MayString("COLUMNS_FILE", ""),
		Overrides: catalog.ColumnMap{
			ProductName: c.MayInt("COL_PRODUCT_NAME", -1),
			BatchCode:   c.MayInt("COL_BATCH_CODE", -1),
			TestDate:    c.MayInt("COL_TEST_DATE", -1),
			ReportURL:   c.MayInt("COL_REPORT_URL", -1),
		},
		ProductName:    c.MayString("PRODUCT_NAME", "ADI Verified Product"),
		LabName:        c.MayString("LAB_NAME", "NABL Accredited Lab"),
		TestDateLayout: c.MayString("TEST_DATE_LAYOUT", "02/01/2006"),
		Location:       cfg.Prefix("CORE_").MayLocation("TZ", time.Local),
	}
}

// Columns resolves the column map: file or built in layout, then overrides
func (o Options) Columns() service.ColumnSource {
	return func() (catalog.ColumnMap, error) {
		cm := catalog.DefaultColumns()
		if o.ColumnsFile != "" {
			var err error
			if cm, err = catalog.LoadColumnsFile(o.ColumnsFile); err != nil {
				return cm, err
			}
		}
		return overlay(cm, o.Overrides), nil
	}
}

func overlay(cm, over catalog.ColumnMap) catalog.ColumnMap {
	if over.ProductName >= 0 {
		cm.ProductName = over.ProductName
	}
	if over.BatchCode >= 0 {
		cm.BatchCode = over.BatchCode
	}
	if over.TestDate >= 0 {
		cm.TestDate = over.TestDate
	}
	if over.ReportURL >= 0 {
		cm.ReportURL = over.ReportURL
	}
	return cm
}
